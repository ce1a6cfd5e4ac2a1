package filter

import (
	"encoding/json"

	"hermannm.dev/enumnames"
)

type FilterType uint8

const (
	FilterTypeNumerical FilterType = iota + 1
	FilterTypeAlphanumerical
	FilterTypeDate
)

var filterTypeNames = enumnames.NewMap(map[FilterType]string{
	FilterTypeNumerical:      "NUMERICAL_FACET",
	FilterTypeAlphanumerical: "ALPHANUM_FACET",
	FilterTypeDate:           "DATE_FACET",
})

func (filterType FilterType) IsValid() bool {
	return filterTypeNames.ContainsEnumValue(filterType)
}

func (filterType FilterType) String() string {
	return filterTypeNames.GetNameOrFallback(filterType, "UNRECOGNIZED_FILTER_TYPE")
}

func (filterType FilterType) MarshalJSON() ([]byte, error) {
	return filterTypeNames.MarshalToNameJSON(filterType)
}

// Filter types that we do not recognize are left invalid instead of failing, since clients may
// send filters that are newer than this service. Such filters are skipped when filtering.
func (filterType *FilterType) UnmarshalJSON(bytes []byte) error {
	var name string
	if err := json.Unmarshal(bytes, &name); err != nil {
		return err
	}

	if err := filterTypeNames.UnmarshalFromNameJSON(bytes, filterType); err != nil {
		*filterType = 0
	}
	return nil
}
