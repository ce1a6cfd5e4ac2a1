package filter

import (
	"strconv"

	"hermannm.dev/candlestick/table"
	"hermannm.dev/wrap"
)

func exclusionConditions(data table.Table, spec Exclusion) ([]table.Mask, error) {
	values, _, err := data.Values(spec.Column)
	if err != nil {
		return nil, err
	}

	var conditions []table.Mask
	var excludedValues []string

	for key, excluded := range spec.ExcludedValues {
		if !excluded {
			continue
		}

		if key == NoValueKey {
			conditions = append(conditions, notMissingCondition(values))
		} else {
			excludedValues = append(excludedValues, key)
		}
	}

	if len(excludedValues) == 0 {
		return conditions, nil
	}

	set, err := newExcludedSet(excludedValues, spec.ColumnType)
	if err != nil {
		return nil, err
	}

	mask := make(table.Mask, len(values))
	for i, value := range values {
		mask[i] = !set.contains(value)
	}
	conditions = append(conditions, mask)

	return conditions, nil
}

func notMissingCondition(values []any) table.Mask {
	mask := make(table.Mask, len(values))
	for i, value := range values {
		mask[i] = !table.IsMissing(value)
	}
	return mask
}

// excludedSet holds either text or numeric values, depending on the client's column type.
type excludedSet struct {
	strings map[string]struct{}
	numbers map[float64]struct{}
}

func newExcludedSet(values []string, columnType ColumnType) (excludedSet, error) {
	if columnType != ColumnTypeNumerical {
		set := excludedSet{strings: make(map[string]struct{}, len(values))}
		for _, value := range values {
			set.strings[value] = struct{}{}
		}
		return set, nil
	}

	set := excludedSet{numbers: make(map[float64]struct{}, len(values))}
	for _, value := range values {
		number, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return excludedSet{}, wrap.Errorf(err, "invalid numerical value '%s' to exclude", value)
		}
		set.numbers[number] = struct{}{}
	}
	return set, nil
}

// Missing values are never contained in the set; they are only excluded through NoValueKey.
func (set excludedSet) contains(value any) bool {
	if table.IsMissing(value) {
		return false
	}

	if text, ok := value.(string); ok {
		_, contained := set.strings[text]
		return contained
	}

	if number, ok := table.ToFloat(value); ok {
		_, contained := set.numbers[number]
		return contained
	}

	return false
}
