package table_test

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hermannm.dev/candlestick/table"
)

var testColumns = []table.Column{
	{Name: "category", DataType: table.DataTypeText},
	{Name: "value", DataType: table.DataTypeInt},
	{Name: "price", DataType: table.DataTypeFloat, Optional: true},
}

func newTestTable(t *testing.T) table.Table {
	t.Helper()

	data, err := table.New(testColumns, [][]any{
		{"A", 1, 1.5},
		{"B", int32(2), nil},
		{"A", int64(3), float32(2.5)},
	})
	require.NoError(t, err)
	return data
}

func TestNewNormalizesValues(t *testing.T) {
	data := newTestTable(t)

	require.Equal(t, 3, data.Len())
	assert.Equal(t, []any{"A", int64(1), 1.5}, data.Row(0))
	assert.Equal(t, []any{"B", int64(2), nil}, data.Row(1))
	assert.Equal(t, []any{"A", int64(3), 2.5}, data.Row(2))
}

func TestNewNormalizesUUIDs(t *testing.T) {
	id := uuid.New()

	data, err := table.New(
		[]table.Column{{Name: "id", DataType: table.DataTypeUUID}},
		[][]any{{id}, {id.String()}},
	)
	require.NoError(t, err)

	assert.Equal(t, id.String(), data.Row(0)[0])
	assert.Equal(t, id.String(), data.Row(1)[0])
}

func TestNewRejectsInvalidInput(t *testing.T) {
	testCases := []struct {
		name    string
		columns []table.Column
		rows    [][]any
	}{
		{
			name:    "duplicate column",
			columns: []table.Column{{Name: "a", DataType: table.DataTypeText}, {Name: "a", DataType: table.DataTypeInt}},
		},
		{
			name:    "unnamed column",
			columns: []table.Column{{Name: "", DataType: table.DataTypeText}},
		},
		{
			name:    "invalid data type",
			columns: []table.Column{{Name: "a"}},
		},
		{
			name:    "row length mismatch",
			columns: []table.Column{{Name: "a", DataType: table.DataTypeText}},
			rows:    [][]any{{"x", "y"}},
		},
		{
			name:    "value of wrong type",
			columns: []table.Column{{Name: "a", DataType: table.DataTypeInt}},
			rows:    [][]any{{"x"}},
		},
		{
			name:    "unsigned overflow",
			columns: []table.Column{{Name: "a", DataType: table.DataTypeInt}},
			rows:    [][]any{{uint64(math.MaxUint64)}},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := table.New(testCase.columns, testCase.rows)
			assert.Error(t, err)
		})
	}
}

func TestFilter(t *testing.T) {
	data := newTestTable(t)

	filtered := data.Filter(table.Mask{true, false, true})

	require.Equal(t, 2, filtered.Len())
	assert.Equal(t, "A", filtered.Row(0)[0])
	assert.Equal(t, int64(3), filtered.Row(1)[1])
	assert.Equal(t, data.Columns(), filtered.Columns())
	assert.Equal(t, 3, data.Len(), "original table should be unchanged")
}

func TestFilterWithShortMask(t *testing.T) {
	data := newTestTable(t)

	filtered := data.Filter(table.Mask{true})
	assert.Equal(t, 1, filtered.Len())
}

func TestProject(t *testing.T) {
	data := newTestTable(t)

	projected, err := data.Project("value", "category")
	require.NoError(t, err)

	columns := projected.Columns()
	require.Len(t, columns, 2)
	assert.Equal(t, "value", columns[0].Name)
	assert.Equal(t, "category", columns[1].Name)
	assert.Equal(t, []any{int64(2), "B"}, projected.Row(1))
}

func TestProjectErrors(t *testing.T) {
	data := newTestTable(t)

	_, err := data.Project("category", "missing")
	assert.ErrorContains(t, err, "column 'missing' not found")

	_, err = data.Project("category", "category")
	assert.Error(t, err)
}

func TestValues(t *testing.T) {
	data := newTestTable(t)

	values, column, err := data.Values("price")
	require.NoError(t, err)
	assert.Equal(t, table.DataTypeFloat, column.DataType)
	assert.Equal(t, []any{1.5, nil, 2.5}, values)
}

func TestAnd(t *testing.T) {
	combined := table.And(table.Mask{true, true, false, false}, table.Mask{true, false, true, false})
	assert.Equal(t, table.Mask{true, false, false, false}, combined)
}

func TestIsMissing(t *testing.T) {
	assert.True(t, table.IsMissing(nil))
	assert.True(t, table.IsMissing(math.NaN()))
	assert.False(t, table.IsMissing(0.0))
	assert.False(t, table.IsMissing(""))
	assert.False(t, table.IsMissing(int64(0)))
}

func TestCompare(t *testing.T) {
	testCases := []struct {
		name     string
		value1   any
		value2   any
		expected int
	}{
		{"strings", "a", "b", -1},
		{"integers", int64(3), int64(2), 1},
		{"mixed numbers", int64(2), 2.0, 0},
		{
			"timestamps",
			time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			-1,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result, err := table.Compare(testCase.value1, testCase.value2)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, result)
		})
	}

	_, err := table.Compare("a", int64(1))
	assert.Error(t, err)
}

func TestDataTypeJSON(t *testing.T) {
	encoded, err := table.DataTypeTimestamp.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"TIMESTAMP"`, string(encoded))

	var decoded table.DataType
	require.NoError(t, decoded.UnmarshalJSON([]byte(`"FLOAT"`)))
	assert.Equal(t, table.DataTypeFloat, decoded)

	assert.Error(t, decoded.UnmarshalJSON([]byte(`"BOOLEAN"`)))
}
