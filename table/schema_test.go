package table_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hermannm.dev/candlestick/table"
)

func TestParseRecordsDeducesDataTypes(t *testing.T) {
	header := []string{"name", "count", "amount", "date", "id", "empty"}
	records := [][]string{
		{"Alice", "1", "2", "2023-05-01", "8c1a5c2e-3f0c-4bc5-9b54-4b7bbd0f6b7a", ""},
		{"Bob", "2", "2.5", "2023-05-02 10:30:00", "1bd1e1ad-8a8c-4d5d-8a57-2a2b9e0c3c11", ""},
		{"", "", "3", "2023-05-03T10:30:00Z", "", ""},
	}

	data, err := table.ParseRecords(header, records, 100)
	require.NoError(t, err)

	assert.Equal(t, []table.Column{
		{Name: "name", DataType: table.DataTypeText, Optional: true},
		{Name: "count", DataType: table.DataTypeInt, Optional: true},
		{Name: "amount", DataType: table.DataTypeFloat, Optional: false},
		{Name: "date", DataType: table.DataTypeTimestamp, Optional: false},
		{Name: "id", DataType: table.DataTypeUUID, Optional: true},
		{Name: "empty", DataType: table.DataTypeText, Optional: true},
	}, data.Columns())

	require.Equal(t, 3, data.Len())
	assert.Equal(t, int64(1), data.Row(0)[1])
	assert.Equal(t, 2.0, data.Row(0)[2], "integers in float column should be converted to float")
	assert.Equal(t, time.Date(2023, 5, 2, 10, 30, 0, 0, time.UTC), data.Row(1)[3])
	assert.Nil(t, data.Row(2)[0])
	assert.Nil(t, data.Row(2)[1])
}

func TestParseRecordsWithShortRows(t *testing.T) {
	data, err := table.ParseRecords([]string{"a", "b"}, [][]string{{"x", "1"}, {"y"}}, 0)
	require.NoError(t, err)

	columns := data.Columns()
	assert.True(t, columns[1].Optional)
	assert.Nil(t, data.Row(1)[1])
}

func TestParseRecordsWithIncompatibleTypes(t *testing.T) {
	_, err := table.ParseRecords(
		[]string{"value"},
		[][]string{{"1"}, {"2023-01-01"}},
		0,
	)
	assert.ErrorContains(t, err, "incompatible data types")
}

func TestParseRecordsOutsideCheckedRows(t *testing.T) {
	_, err := table.ParseRecords(
		[]string{"value"},
		[][]string{{"1"}, {"2"}, {"not a number"}},
		2,
	)
	assert.ErrorContains(t, err, "row 3")
}

func TestParseRecordsWithTooManyFields(t *testing.T) {
	_, err := table.ParseRecords([]string{"a"}, [][]string{{"1", "2"}}, 0)
	assert.Error(t, err)
}

func TestParseTimestamp(t *testing.T) {
	timestamp, err := table.ParseTimestamp("2024-02-29T12:00:00+01:00")
	require.NoError(t, err)
	assert.True(t, timestamp.Equal(time.Date(2024, 2, 29, 11, 0, 0, 0, time.UTC)))

	_, err = table.ParseTimestamp("yesterday")
	assert.Error(t, err)
}
