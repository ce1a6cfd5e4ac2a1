package elasticsearch

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/totalhitsrelation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hermannm.dev/candlestick/dataset"
	"hermannm.dev/candlestick/table"
)

func TestDataTypeFromElasticProperty(t *testing.T) {
	testCases := []struct {
		name     string
		property types.Property
		expected table.DataType
	}{
		{"keyword", types.NewKeywordProperty(), table.DataTypeText},
		{"text", types.NewTextProperty(), table.DataTypeText},
		{"long", types.NewLongNumberProperty(), table.DataTypeInt},
		{"integer", types.NewIntegerNumberProperty(), table.DataTypeInt},
		{"double", types.NewDoubleNumberProperty(), table.DataTypeFloat},
		{"float", types.NewFloatNumberProperty(), table.DataTypeFloat},
		{"date", types.NewDateProperty(), table.DataTypeTimestamp},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			dataType, ok := dataTypeFromElasticProperty(testCase.property)
			require.True(t, ok)
			assert.Equal(t, testCase.expected, dataType)
		})
	}

	_, ok := dataTypeFromElasticProperty(types.NewObjectProperty())
	assert.False(t, ok, "object properties should be unsupported")
}

func TestDocumentToRow(t *testing.T) {
	columns := []table.Column{
		{Name: "category", DataType: table.DataTypeText, Optional: true},
		{Name: "count", DataType: table.DataTypeInt, Optional: true},
		{Name: "amount", DataType: table.DataTypeFloat, Optional: true},
		{Name: "created", DataType: table.DataTypeTimestamp, Optional: true},
		{Name: "updated", DataType: table.DataTypeTimestamp, Optional: true},
	}

	row, err := documentToRow(json.RawMessage(`{
		"category": "A",
		"count": 9007199254740993,
		"amount": 2.5,
		"created": "2023-05-01T12:00:00Z",
		"updated": 1682942400000,
		"ignored": {"nested": true}
	}`), columns)
	require.NoError(t, err)

	expectedTime := time.Date(2023, time.May, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "A", row[0])
	assert.Equal(t, int64(9007199254740993), row[1], "large integers should not lose precision")
	assert.Equal(t, 2.5, row[2])
	assert.True(t, expectedTime.Equal(row[3].(time.Time)))
	assert.True(t, expectedTime.Equal(row[4].(time.Time)))

	row, err = documentToRow(json.RawMessage(`{"category": "B"}`), columns)
	require.NoError(t, err)
	assert.Equal(t, []any{"B", nil, nil, nil, nil}, row)

	_, err = documentToRow(json.RawMessage(`{"count": "many"}`), columns)
	assert.Error(t, err)
}

func TestWrapDatasetError(t *testing.T) {
	reason := "no such index [sales]"
	notFound := &types.ElasticsearchError{
		ErrorCause: types.ErrorCause{Type: elasticIndexNotFoundException, Reason: &reason},
		Status:     404,
	}
	assert.ErrorIs(t, wrapDatasetError(notFound, "sales", "search failed"), dataset.ErrNotFound)

	otherErr := wrapDatasetError(errors.New("connection refused"), "sales", "search failed")
	assert.NotErrorIs(t, otherErr, dataset.ErrNotFound)
	assert.ErrorContains(t, otherErr, "search failed")
}

func TestExceedsDocumentLimit(t *testing.T) {
	testCases := []struct {
		name     string
		total    *types.TotalHits
		expected bool
	}{
		{"missing total", nil, false},
		{"below limit", &types.TotalHits{Value: 9999, Relation: totalhitsrelation.Eq}, false},
		{"at limit", &types.TotalHits{Value: 10000, Relation: totalhitsrelation.Eq}, false},
		{"above limit", &types.TotalHits{Value: 10001, Relation: totalhitsrelation.Eq}, true},
		{
			"lower bound at limit",
			&types.TotalHits{Value: 10000, Relation: totalhitsrelation.Gte},
			true,
		},
		{
			"lower bound below limit",
			&types.TotalHits{Value: 5000, Relation: totalhitsrelation.Gte},
			false,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, exceedsDocumentLimit(testCase.total, 10000))
		})
	}
}
