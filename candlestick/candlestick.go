package candlestick

import (
	"log/slog"

	"hermannm.dev/candlestick/filter"
	"hermannm.dev/candlestick/log"
	"hermannm.dev/candlestick/table"
)

// Compute filters the dataset, sums the value column per category, and returns the categories as
// stacked ranges ordered by descending sum.
//
// Returns a *table.ValidationError if the config is invalid, the dataset is empty (before or after
// filtering) or the value column is not numeric, a *filter.Error if a filter fails, and an
// *AggregationError if the dataset cannot be grouped by the category column.
func Compute(data table.Table, config Config, filters []filter.Spec) ([]Row, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if data.Len() == 0 {
		return nil, table.NewValidationError("dataset is empty")
	}

	valueColumn, _, err := data.Column(config.ValueColumn)
	if err != nil {
		return nil, table.NewValidationError("value column '%s' not found in dataset", config.ValueColumn)
	}
	if !valueColumn.DataType.IsNumeric() {
		return nil, table.NewValidationError(
			"values must be of numerical types, but column '%s' has type %v",
			valueColumn.Name,
			valueColumn.DataType,
		)
	}

	filtered, err := filter.Apply(data, filters)
	if err != nil {
		return nil, err
	}

	projected, err := filtered.Project(config.CategoryColumn, config.ValueColumn)
	if err != nil {
		return nil, &AggregationError{Column: config.CategoryColumn, Err: err}
	}

	log.Debug(
		"computing candlestick rows",
		slog.String("dataset", config.DatasetName),
		slog.Int("rows", data.Len()),
		slog.Int("filteredRows", projected.Len()),
	)

	switch valueColumn.DataType {
	case table.DataTypeInt:
		return computeRows[int64](projected, config)
	case table.DataTypeFloat:
		return computeRows[float64](projected, config)
	default:
		return nil, table.NewValidationError("unsupported value type %v", valueColumn.DataType)
	}
}

func computeRows[T number](data table.Table, config Config) ([]Row, error) {
	aggregates, err := aggregateByCategory[T](data, config.CategoryColumn, config.ValueColumn)
	if err != nil {
		return nil, err
	}

	aggregates = collapseTail(aggregates, config.MaxDisplayedValues, config.GroupOthers)
	return cumulativeRanges(aggregates), nil
}
