package clickhouse

import (
	"fmt"
	"slices"
	"strings"

	"hermannm.dev/candlestick/table"
)

var integerTypes = []string{
	"Int8", "Int16", "Int32", "Int64",
	"UInt8", "UInt16", "UInt32", "UInt64",
}

var largeIntegerTypes = []string{"Int128", "Int256", "UInt128", "UInt256"}

// dataTypeFromClickHouse maps a ClickHouse column type to a table data type.
// See https://clickhouse.com/docs/en/sql-reference/data-types
func dataTypeFromClickHouse(typeName string) (dataType table.DataType, optional bool, err error) {
	typeName, optional = unwrapTypeModifier(typeName, "Nullable")
	typeName, _ = unwrapTypeModifier(typeName, "LowCardinality")
	if !optional {
		typeName, optional = unwrapTypeModifier(typeName, "Nullable")
	}

	switch {
	case slices.Contains(integerTypes, typeName):
		return table.DataTypeInt, optional, nil
	case slices.Contains(largeIntegerTypes, typeName):
		return 0, false, fmt.Errorf("integer type %s is too large", typeName)
	case strings.HasPrefix(typeName, "Float"):
		return table.DataTypeFloat, optional, nil
	case strings.HasPrefix(typeName, "DateTime"), strings.HasPrefix(typeName, "Date"):
		return table.DataTypeTimestamp, optional, nil
	case typeName == "UUID":
		return table.DataTypeUUID, optional, nil
	case typeName == "String", strings.HasPrefix(typeName, "FixedString"),
		strings.HasPrefix(typeName, "Enum"):
		return table.DataTypeText, optional, nil
	default:
		return 0, false, fmt.Errorf("unrecognized ClickHouse type '%s'", typeName)
	}
}

func unwrapTypeModifier(typeName string, modifier string) (inner string, ok bool) {
	prefix := modifier + "("
	if strings.HasPrefix(typeName, prefix) && strings.HasSuffix(typeName, ")") {
		return typeName[len(prefix) : len(typeName)-1], true
	}
	return typeName, false
}
