package filter

// Spec is a predicate on a single column of a table. It is one of NumericRange, Exclusion,
// DateFilter or Unrecognized.
type Spec interface {
	ColumnName() string
	isSpec()
}

// NumericRange keeps rows whose value in Column lies within the inclusive bounds. A nil or zero
// bound is unbounded.
type NumericRange struct {
	Column string
	Min    *float64
	Max    *float64
}

// Exclusion removes rows whose value in Column is one of the keys in ExcludedValues that map to
// true. The NoValueKey key removes rows with a missing value.
type Exclusion struct {
	Column     string
	ColumnType ColumnType
	// If ColumnType is NUMERICAL, keys are parsed as floats before comparison.
	ExcludedValues map[string]bool
}

// DateFilter either keeps rows within a timestamp range (Type is DateFilterRange), or removes rows
// whose date part (given by Type) is one of the keys in ExcludedValues that map to true.
type DateFilter struct {
	Column string
	Type   DateFilterType
	// Milliseconds since the Unix epoch. Only used if Type is DateFilterRange.
	Min *float64
	Max *float64
	// Only used if Type is not DateFilterRange.
	ExcludedValues map[string]bool
}

// Unrecognized is a filter of a type that this service does not know. It is never applied.
type Unrecognized struct {
	Column string
}

func (spec NumericRange) ColumnName() string { return spec.Column }
func (spec Exclusion) ColumnName() string    { return spec.Column }
func (spec DateFilter) ColumnName() string   { return spec.Column }
func (spec Unrecognized) ColumnName() string { return spec.Column }

func (NumericRange) isSpec() {}
func (Exclusion) isSpec()    {}
func (DateFilter) isSpec()   {}
func (Unrecognized) isSpec() {}

// ColumnType is the column type as seen by the client that built an exclusion filter.
type ColumnType string

const (
	ColumnTypeNumerical      ColumnType = "NUMERICAL"
	ColumnTypeAlphanumerical ColumnType = "ALPHANUM"
	ColumnTypeDate           ColumnType = "DATE"
)

// NoValueKey is the key in an exclusion map that stands for a missing value.
const NoValueKey = "___dku_no_value___"

// Filter is the JSON representation of a filter sent by clients.
type Filter struct {
	Type           FilterType      `json:"filterType"`
	Column         string          `json:"column"`
	ColumnType     ColumnType      `json:"columnType,omitempty"`
	MinValue       *float64        `json:"minValue,omitempty"`
	MaxValue       *float64        `json:"maxValue,omitempty"`
	ExcludedValues map[string]bool `json:"excludedValues,omitempty"`
	DateFilterType DateFilterType  `json:"dateFilterType,omitempty"`
}

func (filter Filter) Spec() Spec {
	switch filter.Type {
	case FilterTypeNumerical:
		return NumericRange{Column: filter.Column, Min: filter.MinValue, Max: filter.MaxValue}
	case FilterTypeAlphanumerical:
		return Exclusion{
			Column:         filter.Column,
			ColumnType:     filter.ColumnType,
			ExcludedValues: filter.ExcludedValues,
		}
	case FilterTypeDate:
		return DateFilter{
			Column:         filter.Column,
			Type:           filter.DateFilterType,
			Min:            filter.MinValue,
			Max:            filter.MaxValue,
			ExcludedValues: filter.ExcludedValues,
		}
	default:
		return Unrecognized{Column: filter.Column}
	}
}

func Specs(filters []Filter) []Spec {
	specs := make([]Spec, 0, len(filters))
	for _, filter := range filters {
		specs = append(specs, filter.Spec())
	}
	return specs
}
