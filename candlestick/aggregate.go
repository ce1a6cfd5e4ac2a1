package candlestick

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"hermannm.dev/candlestick/table"
)

// OthersCategory is the category of the row that long-tail categories are merged into.
const OthersCategory = "others"

type number interface {
	int64 | float64
}

type aggregate[T number] struct {
	category any
	sum      T
	count    int
}

// aggregateByCategory sums and counts the value column per distinct category, in ascending order
// of category. Rows with a missing category are dropped, and missing values are neither summed
// nor counted.
func aggregateByCategory[T number](
	data table.Table,
	categoryColumn string,
	valueColumn string,
) ([]aggregate[T], error) {
	categories, _, err := data.Values(categoryColumn)
	if err != nil {
		return nil, &AggregationError{Column: categoryColumn, Err: err}
	}
	values, _, err := data.Values(valueColumn)
	if err != nil {
		return nil, err
	}

	indexByKey := make(map[any]int)
	var aggregates []aggregate[T]

	for i, category := range categories {
		if table.IsMissing(category) {
			continue
		}

		key, err := groupKey(category)
		if err != nil {
			return nil, &AggregationError{Column: categoryColumn, Err: err}
		}

		index, ok := indexByKey[key]
		if !ok {
			index = len(aggregates)
			indexByKey[key] = index
			aggregates = append(aggregates, aggregate[T]{category: category})
		}

		if table.IsMissing(values[i]) {
			continue
		}
		value, ok := values[i].(T)
		if !ok {
			return nil, fmt.Errorf(
				"value '%v' in column '%s' has unexpected type %T",
				values[i],
				valueColumn,
				values[i],
			)
		}

		aggregates[index].sum += value
		aggregates[index].count++
	}

	var compareErr error
	slices.SortFunc(aggregates, func(aggregate1 aggregate[T], aggregate2 aggregate[T]) int {
		result, err := table.Compare(aggregate1.category, aggregate2.category)
		if err != nil {
			compareErr = err
		}
		return result
	})
	if compareErr != nil {
		return nil, &AggregationError{Column: categoryColumn, Err: compareErr}
	}

	return aggregates, nil
}

// Timestamps are grouped by instant, since equal instants may differ in location.
type timeKey int64

func groupKey(category any) (any, error) {
	switch category := category.(type) {
	case string, int64, float64:
		return category, nil
	case time.Time:
		return timeKey(category.UnixNano()), nil
	default:
		return nil, fmt.Errorf("unsupported category value '%v' of type %T", category, category)
	}
}

// collapseTail keeps at most maxDisplayedValues categories, preferring those with the most rows.
// If groupOthers is set, the categories from rank maxDisplayedValues-1 and up are merged into a
// single OthersCategory row; otherwise, categories beyond maxDisplayedValues are dropped.
// Categories with equal counts keep their previous relative order.
func collapseTail[T number](
	aggregates []aggregate[T],
	maxDisplayedValues int,
	groupOthers bool,
) []aggregate[T] {
	if len(aggregates) <= maxDisplayedValues {
		return aggregates
	}

	ranked := slices.Clone(aggregates)
	slices.SortStableFunc(ranked, func(aggregate1 aggregate[T], aggregate2 aggregate[T]) int {
		return cmp.Compare(aggregate2.count, aggregate1.count)
	})

	if !groupOthers {
		return ranked[:maxDisplayedValues]
	}

	tailRank := maxDisplayedValues - 1
	collapsed := slices.Clone(ranked[:tailRank])

	others := aggregate[T]{category: OthersCategory}
	for _, tail := range ranked[tailRank:] {
		others.sum += tail.sum
		others.count += tail.count
	}

	return append(collapsed, others)
}
