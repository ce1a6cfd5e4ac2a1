package clickhouse

import (
	"context"
	"errors"
	"reflect"

	"github.com/ClickHouse/clickhouse-go/v2/lib/proto"
	"hermannm.dev/candlestick/dataset"
	"hermannm.dev/candlestick/table"
	"hermannm.dev/wrap"
)

// See https://github.com/ClickHouse/ClickHouse/blob/bd387f6d2c30f67f2822244c0648f2169adab4d3/src/Common/ErrorCodes.cpp#L66
const clickhouseUnknownTableErrorCode = 60

func (clickhouse ClickHouseDB) LoadDataset(ctx context.Context, name string) (table.Table, error) {
	if err := ValidateIdentifier(name); err != nil {
		return table.Table{}, wrap.Error(err, "invalid table name")
	}

	var query QueryBuilder
	query.WriteString("SELECT * FROM ")
	query.WriteIdentifier(name)

	rows, err := clickhouse.conn.Query(ctx, query.String())
	if err != nil {
		var clickHouseErr *proto.Exception
		if errors.As(err, &clickHouseErr) && clickHouseErr.Code == clickhouseUnknownTableErrorCode {
			return table.Table{}, wrap.Errorf(dataset.ErrNotFound, "no table found for dataset '%s'", name)
		}

		return table.Table{}, wrap.Error(err, "dataset query failed")
	}
	defer rows.Close()

	columnTypes := rows.ColumnTypes()
	columns := make([]table.Column, len(columnTypes))
	for i, columnType := range columnTypes {
		dataType, optional, err := dataTypeFromClickHouse(columnType.DatabaseTypeName())
		if err != nil {
			return table.Table{}, wrap.Errorf(err, "unsupported type for column '%s'", columnType.Name())
		}
		columns[i] = table.Column{Name: columnType.Name(), DataType: dataType, Optional: optional}
	}

	var data [][]any
	for rows.Next() {
		scanTargets := make([]any, len(columnTypes))
		for i, columnType := range columnTypes {
			scanTargets[i] = reflect.New(columnType.ScanType()).Interface()
		}

		if err := rows.Scan(scanTargets...); err != nil {
			return table.Table{}, wrap.Error(err, "failed to scan dataset row")
		}

		row := make([]any, len(scanTargets))
		for i, target := range scanTargets {
			row[i] = dereferenceScanned(target)
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return table.Table{}, wrap.Error(err, "failed to read dataset rows")
	}

	return table.New(columns, data)
}

// Nullable columns are scanned into pointers, where nil is a missing value.
func dereferenceScanned(target any) any {
	value := reflect.ValueOf(target).Elem()
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil
		}
		value = value.Elem()
	}
	return value.Interface()
}
