package output

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SchemaDraft идентификатор версии JSON Schema, которую понимает хост
const SchemaDraft = "http://json-schema.org/draft-04/schema#"

// RowKeyProperty фиксированное свойство строки в EditedRows
const RowKeyProperty = "rowKey"

// cellProperties свойства записи EditedCells
var cellProperties = []string{"rowId", "field", "oldValue", "newValue", RowKeyProperty}

type schema struct {
	Schema     string     `json:"$schema,omitempty"`
	Type       string     `json:"type"`
	Items      *schema    `json:"items,omitempty"`
	Properties properties `json:"properties,omitempty"`
}

type property struct {
	Schema schema
	Name   string
}

// properties сериализуется как JSON объект с сохранением порядка свойств
type properties []property

func (p properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, prop := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(prop.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(prop.Schema)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// arraySchema строит схему массива объектов со строковыми свойствами
func arraySchema(names []string) (string, error) {
	props := make(properties, 0, len(names))
	for _, name := range names {
		props = append(props, property{Name: name, Schema: schema{Type: "string"}})
	}

	s := schema{
		Schema: SchemaDraft,
		Type:   "array",
		Items: &schema{
			Type:       "object",
			Properties: props,
		},
	}

	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema: %w", err)
	}
	return string(data), nil
}

// shadowPrefix добавляется к свойству колонки, чье имя занято фиксированным свойством строки
const shadowPrefix = "column_"

// rowColumn связывает колонку с именем ее свойства в EditedRows
type rowColumn struct {
	Column   string
	Property string
}

// rowColumns сопоставляет колонкам свойства EditedRows в порядке колонок.
// Колонка с именем rowKey получает префикс, повторяющиеся колонки пропускаются.
func rowColumns(columns []string) []rowColumn {
	out := make([]rowColumn, 0, len(columns))
	taken := map[string]bool{RowKeyProperty: true}
	seen := make(map[string]bool, len(columns))
	for _, name := range columns {
		if seen[name] {
			continue
		}
		seen[name] = true

		prop := name
		for taken[prop] {
			prop = shadowPrefix + prop
		}
		taken[prop] = true
		out = append(out, rowColumn{Column: name, Property: prop})
	}
	return out
}

// rowProperties возвращает свойства схемы EditedRows: rowKey и по одному на колонку
func rowProperties(columns []string) []string {
	cols := rowColumns(columns)
	names := make([]string, 0, len(cols)+1)
	names = append(names, RowKeyProperty)
	for _, c := range cols {
		names = append(names, c.Property)
	}
	return names
}
