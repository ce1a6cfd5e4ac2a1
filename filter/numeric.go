package filter

import (
	"fmt"

	"hermannm.dev/candlestick/table"
)

func numericRangeConditions(data table.Table, spec NumericRange) ([]table.Mask, error) {
	values, column, err := data.Values(spec.Column)
	if err != nil {
		return nil, err
	}
	if !column.DataType.IsNumeric() {
		return nil, fmt.Errorf(
			"numerical filter requires an INTEGER or FLOAT column, got %v",
			column.DataType,
		)
	}

	var conditions []table.Mask

	if min, ok := activeBound(spec.Min); ok {
		conditions = append(conditions, numericCondition(values, func(value float64) bool {
			return value >= min
		}))
	}
	if max, ok := activeBound(spec.Max); ok {
		conditions = append(conditions, numericCondition(values, func(value float64) bool {
			return value <= max
		}))
	}

	return conditions, nil
}

// A bound of 0 is treated the same as no bound, since clients send 0 for cleared range inputs.
func activeBound(bound *float64) (value float64, ok bool) {
	if bound == nil || *bound == 0 {
		return 0, false
	}
	return *bound, true
}

// Missing values never satisfy a numeric condition.
func numericCondition(values []any, predicate func(float64) bool) table.Mask {
	mask := make(table.Mask, len(values))
	for i, value := range values {
		if number, ok := table.ToFloat(value); ok {
			mask[i] = predicate(number)
		}
	}
	return mask
}
