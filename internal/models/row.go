package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Fields представляет упорядоченное отображение имя поля -> значение.
// Порядок полей - порядок первой вставки; он сохраняется при сериализации.
type Fields struct {
	values map[string]Value
	order  []string
}

// NewFields создает пустой набор полей
func NewFields() *Fields {
	return &Fields{values: make(map[string]Value)}
}

// Get возвращает значение поля и признак его наличия
func (f *Fields) Get(field string) (Value, bool) {
	if f == nil {
		return Value{}, false
	}
	v, ok := f.values[field]
	return v, ok
}

// Set устанавливает значение поля, сохраняя позицию существующего поля
func (f *Fields) Set(field string, v Value) {
	if f.values == nil {
		f.values = make(map[string]Value)
	}
	if _, exists := f.values[field]; !exists {
		f.order = append(f.order, field)
	}
	f.values[field] = v
}

// Delete удаляет поле
func (f *Fields) Delete(field string) {
	if _, exists := f.values[field]; !exists {
		return
	}
	delete(f.values, field)
	for i, name := range f.order {
		if name == field {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
}

// Names возвращает имена полей в порядке вставки
func (f *Fields) Names() []string {
	if f == nil {
		return nil
	}
	names := make([]string, len(f.order))
	copy(names, f.order)
	return names
}

// Len возвращает количество полей
func (f *Fields) Len() int {
	if f == nil {
		return 0
	}
	return len(f.order)
}

// Clone создает копию набора полей. Value неизменяемы, поэтому копия полная.
func (f *Fields) Clone() *Fields {
	clone := &Fields{
		values: make(map[string]Value, f.Len()),
		order:  make([]string, 0, f.Len()),
	}
	if f == nil {
		return clone
	}
	for _, name := range f.order {
		clone.Set(name, f.values[name])
	}
	return clone
}

// MarshalJSON кодирует поля как JSON объект в порядке вставки
func (f *Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if f != nil {
		for i, name := range f.order {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(name)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal field name: %w", err)
			}
			val, err := f.values[name].MarshalJSON()
			if err != nil {
				return nil, fmt.Errorf("failed to marshal field %q: %w", name, err)
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON декодирует JSON объект, сохраняя порядок ключей
func (f *Fields) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read fields object: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("fields must be a JSON object")
	}

	*f = Fields{values: make(map[string]Value)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read field name: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v in fields object", tok)
		}

		var v Value
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("failed to decode field %q: %w", name, err)
		}
		f.Set(name, v)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to close fields object: %w", err)
	}

	return nil
}

// Row представляет строку набора данных хоста
type Row struct {
	Values *Fields `json:"values"` // Values значения полей в порядке колонок
	ID     string  `json:"id"`     // ID Row Identity, назначенный хостом
}

// NewRow создает строку с пустым набором полей
func NewRow(id string) Row {
	return Row{ID: id, Values: NewFields()}
}

// Get возвращает значение поля строки
func (r Row) Get(field string) (Value, bool) {
	return r.Values.Get(field)
}

// Key вычисляет Row Key: значение указанного поля или Row Identity,
// если поле не задано или отсутствует в строке.
func (r Row) Key(keyField string) string {
	if keyField == "" {
		return r.ID
	}
	v, ok := r.Values.Get(keyField)
	if !ok || v.IsNull() {
		return r.ID
	}
	return v.String()
}

// Clone создает копию строки
func (r Row) Clone() Row {
	return Row{ID: r.ID, Values: r.Values.Clone()}
}
