package filter

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"hermannm.dev/candlestick/table"
	"hermannm.dev/wrap"
)

func dateConditions(data table.Table, spec DateFilter) ([]table.Mask, error) {
	if !spec.Type.IsValid() {
		return nil, ErrUnknownDateFilter
	}

	values, column, err := data.Values(spec.Column)
	if err != nil {
		return nil, err
	}
	if column.DataType != table.DataTypeTimestamp {
		return nil, fmt.Errorf("date filter requires a TIMESTAMP column, got %v", column.DataType)
	}

	if spec.Type == DateFilterRange {
		return dateRangeConditions(values, spec), nil
	} else {
		return datePartConditions(values, spec)
	}
}

func dateRangeConditions(values []any, spec DateFilter) []table.Mask {
	var conditions []table.Mask

	if min, ok := activeBound(spec.Min); ok {
		minTime := timeFromUnixMilli(min)
		conditions = append(conditions, timestampCondition(values, func(value time.Time) bool {
			return !value.Before(minTime)
		}))
	}
	if max, ok := activeBound(spec.Max); ok {
		maxTime := timeFromUnixMilli(max)
		conditions = append(conditions, timestampCondition(values, func(value time.Time) bool {
			return !value.After(maxTime)
		}))
	}

	return conditions
}

func timeFromUnixMilli(millis float64) time.Time {
	whole, fraction := math.Modf(millis)
	return time.UnixMilli(int64(whole)).Add(time.Duration(fraction * float64(time.Millisecond)))
}

// Missing values never satisfy a timestamp condition.
func timestampCondition(values []any, predicate func(time.Time) bool) table.Mask {
	mask := make(table.Mask, len(values))
	for i, value := range values {
		if timestamp, ok := value.(time.Time); ok {
			mask[i] = predicate(timestamp)
		}
	}
	return mask
}

func datePartConditions(values []any, spec DateFilter) ([]table.Mask, error) {
	excludedParts := make(map[int]struct{}, len(spec.ExcludedValues))
	for key, excluded := range spec.ExcludedValues {
		if !excluded {
			continue
		}

		part, err := strconv.Atoi(key)
		if err != nil {
			return nil, wrap.Errorf(err, "invalid %v value '%s' to exclude", spec.Type, key)
		}

		// Clients send quarters, months, weeks and days of month starting from 0
		switch spec.Type {
		case DateFilterQuarterOfYear, DateFilterMonthOfYear, DateFilterWeekOfYear,
			DateFilterDayOfMonth:
			part++
		}

		excludedParts[part] = struct{}{}
	}

	if len(excludedParts) == 0 {
		return nil, nil
	}

	// Missing values have no date part, so they are never excluded here
	mask := make(table.Mask, len(values))
	for i, value := range values {
		timestamp, ok := value.(time.Time)
		if !ok {
			mask[i] = true
			continue
		}

		_, excluded := excludedParts[DatePart(timestamp, spec.Type)]
		mask[i] = !excluded
	}

	return []table.Mask{mask}, nil
}

// DatePart extracts the part of the timestamp (in UTC) given by the date filter type.
// Quarters, months, ISO weeks and days of month start from 1; days of week start from 0 on Monday.
func DatePart(timestamp time.Time, dateFilterType DateFilterType) int {
	timestamp = timestamp.UTC()

	switch dateFilterType {
	case DateFilterYear:
		return timestamp.Year()
	case DateFilterQuarterOfYear:
		return (int(timestamp.Month())-1)/3 + 1
	case DateFilterMonthOfYear:
		return int(timestamp.Month())
	case DateFilterWeekOfYear:
		_, week := timestamp.ISOWeek()
		return week
	case DateFilterDayOfMonth:
		return timestamp.Day()
	case DateFilterDayOfWeek:
		return (int(timestamp.Weekday()) + 6) % 7
	case DateFilterHourOfDay:
		return timestamp.Hour()
	default:
		return -1
	}
}
