package table

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"hermannm.dev/wrap"
)

// Layouts tried in order when deducing TIMESTAMP columns from text. Layouts without a zone are
// parsed as UTC.
var TimestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseRecords builds a table from text records (e.g. CSV rows), deducing each column's data type
// from the first maxRowsToCheck records (all records if maxRowsToCheck <= 0).
func ParseRecords(header []string, records [][]string, maxRowsToCheck int) (Table, error) {
	columns := NewColumns(header)

	for i, record := range records {
		if maxRowsToCheck > 0 && i >= maxRowsToCheck {
			break
		}

		if err := DeduceDataTypesFromRow(columns, record); err != nil {
			return Table{}, wrap.Errorf(err, "failed to deduce data types from row %d", i+1)
		}
	}

	for i, column := range columns {
		// Columns with only blank fields carry no type information, so we fall back to text
		if !column.DataType.IsValid() {
			columns[i].DataType = DataTypeText
			columns[i].Optional = true
		}
	}

	rows := make([][]any, 0, len(records))
	for i, record := range records {
		row, err := ConvertRow(columns, record)
		if err != nil {
			return Table{}, wrap.Errorf(
				err,
				"failed to convert row %d to data types deduced for table",
				i+1,
			)
		}
		rows = append(rows, row)
	}

	return New(columns, rows)
}

func NewColumns(columnNames []string) []Column {
	columns := make([]Column, 0, len(columnNames))
	for _, columnName := range columnNames {
		columns = append(columns, Column{Name: strings.TrimSpace(columnName)})
	}
	return columns
}

func DeduceDataTypesFromRow(columns []Column, row []string) error {
	if len(row) > len(columns) {
		return errors.New("row contains more fields than there are columns")
	}

	for i, field := range row {
		column := columns[i]

		deducedType, isBlank := deduceDataTypeFromField(field)
		switch {
		case isBlank:
			column.Optional = true
		case !column.DataType.IsValid():
			column.DataType = deducedType
		case column.DataType == deducedType:
		case column.DataType == DataTypeInt && deducedType == DataTypeFloat:
			column.DataType = DataTypeFloat
		case column.DataType == DataTypeFloat && deducedType == DataTypeInt:
		default:
			return fmt.Errorf(
				"found incompatible data types '%s' and '%s' in column '%s'",
				column.DataType,
				deducedType,
				column.Name,
			)
		}

		columns[i] = column
	}

	// Short rows leave the remaining columns blank
	for i := len(row); i < len(columns); i++ {
		columns[i].Optional = true
	}

	return nil
}

func deduceDataTypeFromField(field string) (deducedType DataType, isBlank bool) {
	field = strings.TrimSpace(field)
	if field == "" {
		return 0, true
	}
	if _, err := strconv.ParseInt(field, 10, 64); err == nil {
		return DataTypeInt, false
	}
	if _, err := strconv.ParseFloat(field, 64); err == nil {
		return DataTypeFloat, false
	}
	if _, err := ParseTimestamp(field); err == nil {
		return DataTypeTimestamp, false
	}
	if _, err := uuid.Parse(field); err == nil {
		return DataTypeUUID, false
	}
	return DataTypeText, false
}

func ConvertRow(columns []Column, rawRow []string) ([]any, error) {
	if len(rawRow) > len(columns) {
		return nil, errors.New("given row has more fields than there are columns in the table")
	}

	row := make([]any, len(columns))
	for i, field := range rawRow {
		column := columns[i]

		convertedField, err := convertField(field, column)
		if err != nil {
			return nil, wrap.Errorf(
				err,
				"failed to convert field '%s' to %s for column '%s'",
				field,
				column.DataType,
				column.Name,
			)
		}

		row[i] = convertedField
	}

	return row, nil
}

func convertField(field string, column Column) (convertedField any, err error) {
	if column.DataType != DataTypeText {
		field = strings.TrimSpace(field)
	}
	if field == "" {
		return nil, nil
	}

	switch column.DataType {
	case DataTypeInt:
		return strconv.ParseInt(field, 10, 64)
	case DataTypeFloat:
		return strconv.ParseFloat(field, 64)
	case DataTypeTimestamp:
		return ParseTimestamp(field)
	case DataTypeUUID:
		if _, err := uuid.Parse(field); err != nil {
			return nil, err
		}
		return field, nil
	case DataTypeText:
		return field, nil
	default:
		return nil, fmt.Errorf("unrecognized data type %v", column.DataType)
	}
}

// ParseTimestamp parses a timestamp in any of the TimestampLayouts.
func ParseTimestamp(field string) (time.Time, error) {
	var err error
	for _, layout := range TimestampLayouts {
		var timestamp time.Time
		if timestamp, err = time.Parse(layout, field); err == nil {
			return timestamp, nil
		}
	}
	return time.Time{}, err
}
