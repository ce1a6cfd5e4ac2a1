package dataset

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/parquet-go"
	"github.com/segmentio/parquet-go/format"
	"hermannm.dev/candlestick/table"
	"hermannm.dev/wrap"
)

const parquetRowBufferSize = 128

// ReadParquet reads a Parquet file with a flat schema into a table. Column data types are taken
// from the file's schema.
func ReadParquet(file io.ReaderAt, size int64) (table.Table, error) {
	parquetFile, err := parquet.OpenFile(file, size)
	if err != nil {
		return table.Table{}, wrap.Error(err, "failed to open parquet file")
	}

	fields := parquetFile.Schema().Fields()
	columns := make([]table.Column, len(fields))
	for i, field := range fields {
		dataType, err := parquetDataType(field)
		if err != nil {
			return table.Table{}, wrap.Errorf(err, "unsupported parquet column '%s'", field.Name())
		}
		columns[i] = table.Column{Name: field.Name(), DataType: dataType, Optional: field.Optional()}
	}

	reader := parquet.NewReader(parquetFile)
	defer reader.Close()

	var rows [][]any
	buffer := make([]parquet.Row, parquetRowBufferSize)
	for {
		n, readErr := reader.ReadRows(buffer)

		for _, parquetRow := range buffer[:n] {
			row := make([]any, len(columns))
			for _, value := range parquetRow {
				columnIndex := value.Column()
				if columnIndex < 0 || columnIndex >= len(columns) {
					continue
				}

				row[columnIndex], err = convertParquetValue(value, fields[columnIndex])
				if err != nil {
					return table.Table{}, wrap.Errorf(
						err,
						"failed to read value in column '%s'",
						columns[columnIndex].Name,
					)
				}
			}
			rows = append(rows, row)
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return table.Table{}, wrap.Error(readErr, "failed to read parquet rows")
		}
	}

	return table.New(columns, rows)
}

func parquetDataType(field parquet.Field) (table.DataType, error) {
	if !field.Leaf() {
		return 0, errors.New("nested columns are not supported")
	}
	if field.Repeated() {
		return 0, errors.New("repeated columns are not supported")
	}

	fieldType := field.Type()
	logicalType := fieldType.LogicalType()

	switch fieldType.Kind() {
	case parquet.Boolean, parquet.ByteArray:
		return table.DataTypeText, nil
	case parquet.FixedLenByteArray:
		if logicalType != nil && logicalType.UUID != nil {
			return table.DataTypeUUID, nil
		}
		return table.DataTypeText, nil
	case parquet.Int32, parquet.Int64:
		if logicalType != nil && (logicalType.Timestamp != nil || logicalType.Date != nil) {
			return table.DataTypeTimestamp, nil
		}
		return table.DataTypeInt, nil
	case parquet.Float, parquet.Double:
		return table.DataTypeFloat, nil
	default:
		return 0, fmt.Errorf("unsupported physical type %v", fieldType.Kind())
	}
}

func convertParquetValue(value parquet.Value, field parquet.Field) (any, error) {
	if value.IsNull() {
		return nil, nil
	}

	logicalType := field.Type().LogicalType()

	switch value.Kind() {
	case parquet.Boolean:
		if value.Boolean() {
			return "true", nil
		}
		return "false", nil
	case parquet.Int32:
		if logicalType != nil && logicalType.Date != nil {
			return time.Unix(int64(value.Int32())*24*60*60, 0).UTC(), nil
		}
		return int64(value.Int32()), nil
	case parquet.Int64:
		if logicalType != nil && logicalType.Timestamp != nil {
			return timestampFromParquet(value.Int64(), logicalType.Timestamp.Unit), nil
		}
		return value.Int64(), nil
	case parquet.Float:
		return float64(value.Float()), nil
	case parquet.Double:
		return value.Double(), nil
	case parquet.FixedLenByteArray:
		if logicalType != nil && logicalType.UUID != nil {
			id, err := uuid.FromBytes(value.ByteArray())
			if err != nil {
				return nil, wrap.Error(err, "invalid UUID")
			}
			return id.String(), nil
		}
		return string(value.ByteArray()), nil
	case parquet.ByteArray:
		return string(value.ByteArray()), nil
	default:
		return nil, fmt.Errorf("unsupported value kind %v", value.Kind())
	}
}

func timestampFromParquet(timestamp int64, unit format.TimeUnit) time.Time {
	switch {
	case unit.Nanos != nil:
		return time.Unix(0, timestamp).UTC()
	case unit.Micros != nil:
		return time.UnixMicro(timestamp).UTC()
	default:
		return time.UnixMilli(timestamp).UTC()
	}
}
