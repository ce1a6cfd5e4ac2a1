package filter

import (
	"encoding/json"

	"hermannm.dev/enumnames"
)

type DateFilterType uint8

const (
	DateFilterRange DateFilterType = iota + 1
	DateFilterYear
	DateFilterQuarterOfYear
	DateFilterMonthOfYear
	DateFilterWeekOfYear
	DateFilterDayOfMonth
	DateFilterDayOfWeek
	DateFilterHourOfDay
)

var dateFilterTypeNames = enumnames.NewMap(map[DateFilterType]string{
	DateFilterRange:         "RANGE",
	DateFilterYear:          "YEAR",
	DateFilterQuarterOfYear: "QUARTER_OF_YEAR",
	DateFilterMonthOfYear:   "MONTH_OF_YEAR",
	DateFilterWeekOfYear:    "WEEK_OF_YEAR",
	DateFilterDayOfMonth:    "DAY_OF_MONTH",
	DateFilterDayOfWeek:     "DAY_OF_WEEK",
	DateFilterHourOfDay:     "HOUR_OF_DAY",
})

func (dateFilterType DateFilterType) IsValid() bool {
	return dateFilterTypeNames.ContainsEnumValue(dateFilterType)
}

func (dateFilterType DateFilterType) String() string {
	return dateFilterTypeNames.GetNameOrFallback(dateFilterType, "UNKNOWN_DATE_FILTER")
}

func (dateFilterType DateFilterType) MarshalJSON() ([]byte, error) {
	return dateFilterTypeNames.MarshalToNameJSON(dateFilterType)
}

// Unknown date filter types are accepted here and rejected with ErrUnknownDateFilter when the
// filter is evaluated, so that the error is attributed to the filter's column.
func (dateFilterType *DateFilterType) UnmarshalJSON(bytes []byte) error {
	var name string
	if err := json.Unmarshal(bytes, &name); err != nil {
		return err
	}

	if err := dateFilterTypeNames.UnmarshalFromNameJSON(bytes, dateFilterType); err != nil {
		*dateFilterType = 0
	}
	return nil
}
