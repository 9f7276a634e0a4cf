package selection

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/iudanet/gridedit/internal/models"
)

// ToRowIDs переводит список Row Key в Row Identity текущих строк.
// Ключи без соответствующей строки молча отбрасываются: строка может
// отсутствовать на текущей странице или под фильтром.
// При неуникальных ключах побеждает последняя строка с этим ключом.
func ToRowIDs(rowKeys []string, rows []models.Row, keyField string) []string {
	byKey := make(map[string]string, len(rows))
	for _, row := range rows {
		byKey[row.Key(keyField)] = row.ID
	}

	result := make([]string, 0, len(rowKeys))
	for _, key := range rowKeys {
		if id, ok := byKey[key]; ok {
			result = append(result, id)
		}
	}
	return result
}

// ToRowKeys переводит Row Identity в Row Key для отчета хосту.
// Идентификаторы, которых нет среди текущих строк, отбрасываются.
func ToRowKeys(rowIDs []string, rows []models.Row, keyField string) []string {
	byID := make(map[string]string, len(rows))
	for _, row := range rows {
		byID[row.ID] = row.Key(keyField)
	}

	result := make([]string, 0, len(rowIDs))
	for _, id := range rowIDs {
		if key, ok := byID[id]; ok {
			result = append(result, key)
		}
	}
	return result
}

// Remap переносит выделение на новую поставку строк.
// Идентификатор, который есть среди новых строк, сохраняется. Иначе строка ищется
// по своему Row Key из предыдущей поставки. Строки, пропавшие из поставки, отбрасываются.
func Remap(rowIDs []string, prevRows []models.Row, prevKeyField string, rows []models.Row, keyField string) []string {
	if len(rowIDs) == 0 {
		return nil
	}

	current := make(map[string]bool, len(rows))
	byKey := make(map[string]string, len(rows))
	for _, row := range rows {
		current[row.ID] = true
		byKey[row.Key(keyField)] = row.ID
	}
	prevKeys := make(map[string]string, len(prevRows))
	for _, row := range prevRows {
		prevKeys[row.ID] = row.Key(prevKeyField)
	}

	result := make([]string, 0, len(rowIDs))
	seen := make(map[string]bool, len(rowIDs))
	for _, id := range rowIDs {
		if !current[id] {
			key, ok := prevKeys[id]
			if !ok {
				continue
			}
			if id, ok = byKey[key]; !ok {
				continue
			}
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}

// ParseKeys разбирает список ключей, переданный хостом в виде JSON массива.
// Элементы-числа и boolean приводятся к строкам, null пропускается.
func ParseKeys(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var items []any
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("selected keys must be a JSON array: %w", err)
	}

	keys := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			keys = append(keys, v)
		case float64:
			keys = append(keys, strconv.FormatFloat(v, 'f', -1, 64))
		case bool:
			keys = append(keys, strconv.FormatBool(v))
		case nil:
			continue
		default:
			return nil, fmt.Errorf("unsupported selected key %v", v)
		}
	}
	return keys, nil
}

// Limit ограничивает выделение одной строкой, если множественный выбор выключен
func Limit(rowIDs []string, multiSelect bool) []string {
	if multiSelect || len(rowIDs) <= 1 {
		return rowIDs
	}
	return rowIDs[:1]
}
