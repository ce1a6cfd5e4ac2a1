package elasticsearch

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/google/uuid"
	"hermannm.dev/candlestick/table"
	"hermannm.dev/wrap"
)

func dataTypeFromElasticProperty(property types.Property) (dataType table.DataType, ok bool) {
	switch property.(type) {
	case *types.KeywordProperty, *types.TextProperty, *types.ConstantKeywordProperty,
		*types.WildcardProperty, *types.BooleanProperty, *types.IpProperty:
		return table.DataTypeText, true
	case *types.LongNumberProperty, *types.IntegerNumberProperty, *types.ShortNumberProperty,
		*types.ByteNumberProperty:
		return table.DataTypeInt, true
	case *types.DoubleNumberProperty, *types.FloatNumberProperty,
		*types.HalfFloatNumberProperty, *types.ScaledFloatNumberProperty:
		return table.DataTypeFloat, true
	case *types.DateProperty, *types.DateNanosProperty:
		return table.DataTypeTimestamp, true
	default:
		return 0, false
	}
}

// convertElasticValue converts a field decoded from document JSON (with json.Number for numbers)
// to a table cell of the given data type.
func convertElasticValue(value any, dataType table.DataType) (any, error) {
	if value == nil {
		return nil, nil
	}

	switch dataType {
	case table.DataTypeInt:
		switch value := value.(type) {
		case json.Number:
			if integer, err := value.Int64(); err == nil {
				return integer, nil
			}
			// Elasticsearch accepts floats in integer fields, truncating them
			float, err := value.Float64()
			if err != nil {
				return nil, wrap.Errorf(err, "invalid integer '%s'", value)
			}
			return int64(math.Trunc(float)), nil
		case string:
			return strconv.ParseInt(value, 10, 64)
		}
	case table.DataTypeFloat:
		switch value := value.(type) {
		case json.Number:
			return value.Float64()
		case string:
			return strconv.ParseFloat(value, 64)
		}
	case table.DataTypeTimestamp:
		switch value := value.(type) {
		case json.Number:
			millis, err := value.Int64()
			if err != nil {
				return nil, wrap.Errorf(err, "invalid epoch milliseconds '%s'", value)
			}
			return time.UnixMilli(millis).UTC(), nil
		case string:
			return table.ParseTimestamp(value)
		}
	case table.DataTypeUUID:
		if value, ok := value.(string); ok {
			if _, err := uuid.Parse(value); err != nil {
				return nil, err
			}
			return value, nil
		}
	case table.DataTypeText:
		switch value := value.(type) {
		case string:
			return value, nil
		case json.Number:
			return value.String(), nil
		case bool:
			return strconv.FormatBool(value), nil
		}
	}

	return nil, fmt.Errorf("unexpected value '%v' of type %T for data type %v", value, value, dataType)
}
