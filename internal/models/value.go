package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Kind определяет тип значения ячейки
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindDate
)

// DateLayout каноническое представление даты/времени ячейки:
// локальное время без зоны, с точностью до минуты (секунды всегда 00).
const DateLayout = "2006-01-02T15:04:05"

// Column data types, как их объявляет хост в наборе данных
const (
	DataTypeString   = "SingleLine.Text"
	DataTypeNumber   = "Decimal"
	DataTypeWhole    = "Whole.None"
	DataTypeBool     = "TwoOptions"
	DataTypeDateTime = "DateAndTime.DateAndTime"
	DataTypeDateOnly = "DateAndTime.DateOnly"
)

// Value представляет значение ячейки: null, строка, число, boolean или дата.
// Нулевое значение Value - это null.
type Value struct {
	str  string  // str строковое значение (для KindString и KindDate)
	num  float64 // num числовое значение (для KindNumber)
	kind Kind    // kind тип значения
	b    bool    // b значение для KindBool
}

// Null возвращает пустое значение
func Null() Value { return Value{} }

// String создает строковое значение
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number создает числовое значение
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool создает boolean значение
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Date создает значение даты, нормализуя его к локальному времени с точностью до минуты
func Date(t time.Time) Value {
	return Value{kind: KindDate, str: NormalizeDate(t)}
}

// NormalizeDate приводит время к каноническому виду DateLayout
func NormalizeDate(t time.Time) string {
	return t.Local().Truncate(time.Minute).Format(DateLayout)
}

// Kind возвращает тип значения
func (v Value) Kind() Kind { return v.kind }

// IsNull проверяет, что значение пустое
func (v Value) IsNull() bool { return v.kind == KindNull }

// String возвращает строковое представление значения.
// null представляется пустой строкой, числа - в кратчайшей десятичной форме.
func (v Value) String() string {
	switch v.kind {
	case KindString, KindDate:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Identical проверяет строгое равенство: тот же тип и то же значение
func (v Value) Identical(other Value) bool {
	return v == other
}

// MarshalJSON кодирует значение в нативный JSON тип; дата кодируется строкой
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString, KindDate:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON декодирует нативный JSON тип в значение.
// Строки остаются строками: типизация дат выполняется через ParseValue по типу колонки.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Null()
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("failed to unmarshal string value: %w", err)
		}
		*v = String(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return fmt.Errorf("failed to unmarshal bool value: %w", err)
		}
		*v = Bool(b)
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("unsupported cell value %s: %w", string(data), err)
		}
		*v = Number(n)
	}

	return nil
}

// ParseValue приводит значение, пришедшее от хоста или от грида, к типу колонки.
// Нераспознаваемые значения остаются как есть: сравнение значений все равно строковое.
func ParseValue(dataType string, v Value) Value {
	if v.IsNull() {
		return v
	}

	switch dataType {
	case DataTypeDateTime, DataTypeDateOnly:
		if v.kind == KindDate || v.kind != KindString {
			return v
		}
		if t, ok := parseDate(v.str); ok {
			return Date(t)
		}
	case DataTypeNumber, DataTypeWhole:
		if v.kind == KindString {
			if n, err := strconv.ParseFloat(v.str, 64); err == nil {
				return Number(n)
			}
		}
	case DataTypeBool:
		if v.kind == KindString {
			if b, err := strconv.ParseBool(v.str); err == nil {
				return Bool(b)
			}
		}
	}

	return v
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	DateLayout,
	"2006-01-02T15:04",
	time.DateOnly,
}

// parseDate разбирает дату в одном из поддерживаемых форматов.
// Значения без зоны трактуются как локальное время.
func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
