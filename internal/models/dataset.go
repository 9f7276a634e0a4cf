package models

// Column описывает колонку набора данных хоста
type Column struct {
	Name        string `json:"name"`         // Name системное имя поля
	DisplayName string `json:"display_name"` // DisplayName отображаемое имя
	DataType    string `json:"data_type"`    // DataType объявленный тип данных
}

// Dataset представляет полную поставку данных от хоста.
// Хост передает весь набор при каждом изменении, а не дельты.
type Dataset struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// ColumnNames возвращает имена колонок в порядке объявления
func (d *Dataset) ColumnNames() []string {
	names := make([]string, 0, len(d.Columns))
	for _, col := range d.Columns {
		names = append(names, col.Name)
	}
	return names
}

// Column возвращает описание колонки по имени
func (d *Dataset) Column(name string) (Column, bool) {
	for _, col := range d.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// Normalize приводит значения строк к объявленным типам колонок (даты, числа, boolean)
func (d *Dataset) Normalize() {
	for _, row := range d.Rows {
		if row.Values == nil {
			continue
		}
		for _, col := range d.Columns {
			if v, ok := row.Values.Get(col.Name); ok {
				row.Values.Set(col.Name, ParseValue(col.DataType, v))
			}
		}
	}
}
