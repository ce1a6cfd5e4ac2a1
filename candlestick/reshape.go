package candlestick

import (
	"cmp"
	"encoding/json"
	"slices"
)

// Row is a bar in a candlestick chart, spanning from RangeStart to RangeEnd.
type Row struct {
	Category   any
	RangeStart float64
	RangeEnd   float64
}

// Rows are encoded as [category, rangeStart, rangeEnd], the row format of the chart's data table.
func (row Row) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{row.Category, row.RangeStart, row.RangeEnd})
}

// cumulativeRanges orders the aggregates by descending sum, and stacks them so that each row
// starts where the previous one ended. The first row starts at 0.
func cumulativeRanges[T number](aggregates []aggregate[T]) []Row {
	sorted := slices.Clone(aggregates)
	slices.SortStableFunc(sorted, func(aggregate1 aggregate[T], aggregate2 aggregate[T]) int {
		return cmp.Compare(aggregate2.sum, aggregate1.sum)
	})

	rows := make([]Row, 0, len(sorted))

	var start T
	for _, aggregate := range sorted {
		end := start + aggregate.sum
		rows = append(rows, Row{
			Category:   aggregate.category,
			RangeStart: float64(start),
			RangeEnd:   float64(end),
		})
		start = end
	}

	return rows
}
