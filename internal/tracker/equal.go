package tracker

import "github.com/iudanet/gridedit/internal/models"

// Equal решает, считаются ли два значения ячейки одинаковыми для отслеживания правок.
//  1. Строго равные значения равны.
//  2. Два пустых значения (null или пустая строка) равны.
//  3. Иначе сравниваются строковые представления: число 5 и строка "5" равны.
//
// Сравнение намеренно нестрогое: грид может вернуть отредактированное значение
// в другом представлении, чем хост передал в наборе данных.
func Equal(a, b models.Value) bool {
	if a.Identical(b) {
		return true
	}
	if isEmpty(a) && isEmpty(b) {
		return true
	}
	return a.String() == b.String()
}

func isEmpty(v models.Value) bool {
	return v.IsNull() || (v.Kind() == models.KindString && v.String() == "")
}
