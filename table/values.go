package table

import (
	"cmp"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// IsMissing reports whether the given cell holds no value. NaN floats count as missing, so that
// float columns read from sources without a null representation behave like nullable columns.
func IsMissing(value any) bool {
	switch value := value.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(value)
	default:
		return false
	}
}

// ToFloat converts a numeric cell to float64. Returns ok=false for missing and non-numeric cells.
func ToFloat(value any) (converted float64, ok bool) {
	switch value := value.(type) {
	case int64:
		return float64(value), true
	case float64:
		if math.IsNaN(value) {
			return 0, false
		}
		return value, true
	default:
		return 0, false
	}
}

// Compare orders two non-missing cells of the same column. Numbers of different kinds are compared
// as floats.
func Compare(value1 any, value2 any) (int, error) {
	switch first := value1.(type) {
	case string:
		if second, ok := value2.(string); ok {
			return cmp.Compare(first, second), nil
		}
	case int64:
		if second, ok := value2.(int64); ok {
			return cmp.Compare(first, second), nil
		}
	case time.Time:
		if second, ok := value2.(time.Time); ok {
			return first.Compare(second), nil
		}
	}

	if first, ok := ToFloat(value1); ok {
		if second, ok := ToFloat(value2); ok {
			return cmp.Compare(first, second), nil
		}
	}

	return 0, fmt.Errorf("cannot compare values '%v' (%T) and '%v' (%T)", value1, value1, value2, value2)
}

// normalizeValue converts the given cell to the canonical Go type for the data type, so that
// tables built from different sources hold comparable values.
func normalizeValue(dataType DataType, value any) (any, error) {
	if value == nil {
		return nil, nil
	}

	switch dataType {
	case DataTypeInt:
		switch value := value.(type) {
		case int64:
			return value, nil
		case int:
			return int64(value), nil
		case int32:
			return int64(value), nil
		case int16:
			return int64(value), nil
		case int8:
			return int64(value), nil
		case uint64:
			if value > math.MaxInt64 {
				return nil, fmt.Errorf("value %d overflows INTEGER", value)
			}
			return int64(value), nil
		case uint32:
			return int64(value), nil
		case uint16:
			return int64(value), nil
		case uint8:
			return int64(value), nil
		}
	case DataTypeFloat:
		switch value := value.(type) {
		case float64:
			return value, nil
		case float32:
			return float64(value), nil
		case int64:
			return float64(value), nil
		case int:
			return float64(value), nil
		}
	case DataTypeText:
		if value, ok := value.(string); ok {
			return value, nil
		}
	case DataTypeUUID:
		switch value := value.(type) {
		case string:
			return value, nil
		case uuid.UUID:
			return value.String(), nil
		}
	case DataTypeTimestamp:
		if value, ok := value.(time.Time); ok {
			return value, nil
		}
	default:
		return nil, fmt.Errorf("unrecognized data type %v", dataType)
	}

	return nil, fmt.Errorf("value '%v' of type %T is not valid for data type %v", value, value, dataType)
}
