package validation

import (
	"fmt"
	"regexp"
)

// DatasetNamePattern определяет допустимый формат имени набора данных
// Только латинские буквы, цифры, нижнее подчеркивание и дефис
var DatasetNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_\-]+$`)

// FieldNamePattern определяет допустимый формат имени поля (колонки)
// Начинается с буквы или подчеркивания; далее буквы, цифры, '_', '.', '-'
var FieldNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.\-]*$`)

const (
	// MaxDatasetNameLen максимальная длина имени набора данных
	MaxDatasetNameLen = 64
	// MaxFieldNameLen максимальная длина имени поля
	MaxFieldNameLen = 128
)

// ValidateDatasetName проверяет имя набора данных
func ValidateDatasetName(name string) error {
	if name == "" {
		return fmt.Errorf("dataset name cannot be empty")
	}

	if len(name) > MaxDatasetNameLen {
		return fmt.Errorf("dataset name must not exceed %d characters", MaxDatasetNameLen)
	}

	if !DatasetNamePattern.MatchString(name) {
		return fmt.Errorf("dataset name can only contain letters (a-z, A-Z), numbers (0-9), underscores (_) and dashes (-)")
	}

	return nil
}

// ValidateFieldName проверяет имя поля набора данных
func ValidateFieldName(name string) error {
	if name == "" {
		return fmt.Errorf("field name cannot be empty")
	}

	if len(name) > MaxFieldNameLen {
		return fmt.Errorf("field name must not exceed %d characters", MaxFieldNameLen)
	}

	if !FieldNamePattern.MatchString(name) {
		return fmt.Errorf("field name %q must start with a letter or underscore and contain only letters, numbers, '_', '.', '-'", name)
	}

	return nil
}

// ValidateRowKeyField проверяет, что поле Row Key есть среди колонок.
// Пустое имя допустимо: тогда ключом служит Row Identity.
func ValidateRowKeyField(field string, columns []string) error {
	if field == "" {
		return nil
	}
	for _, name := range columns {
		if name == field {
			return nil
		}
	}
	return fmt.Errorf("row key field %q is not a dataset column", field)
}
