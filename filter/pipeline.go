package filter

import (
	"hermannm.dev/candlestick/log"
	"hermannm.dev/candlestick/table"
)

// Apply filters the table with each spec in order, so that every filter narrows the result of the
// previous ones. Specs of type Unrecognized are skipped.
//
// Returns a *Error if a filter fails, and a *table.ValidationError if no rows remain.
func Apply(data table.Table, specs []Spec) (table.Table, error) {
	for _, spec := range specs {
		var conditions []table.Mask
		var err error

		switch spec := spec.(type) {
		case NumericRange:
			conditions, err = numericRangeConditions(data, spec)
		case Exclusion:
			conditions, err = exclusionConditions(data, spec)
		case DateFilter:
			conditions, err = dateConditions(data, spec)
		case Unrecognized:
			log.Debugf("skipping filter of unrecognized type on column '%s'", spec.Column)
			continue
		default:
			continue
		}

		if err != nil {
			return table.Table{}, &Error{Column: spec.ColumnName(), Err: err}
		}

		data = ApplyConditions(data, conditions)
	}

	if data.Len() == 0 {
		return table.Table{}, table.NewValidationError("table is empty after filtering")
	}

	return data, nil
}

// ApplyConditions returns the rows of the table that satisfy all the given conditions. With no
// conditions, the table is returned unchanged.
func ApplyConditions(data table.Table, conditions []table.Mask) table.Table {
	switch len(conditions) {
	case 0:
		return data
	case 1:
		return data.Filter(conditions[0])
	default:
		combined := conditions[0]
		for _, condition := range conditions[1:] {
			combined = table.And(combined, condition)
		}
		return data.Filter(combined)
	}
}
