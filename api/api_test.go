package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hermannm.dev/candlestick/api"
	"hermannm.dev/candlestick/config"
	"hermannm.dev/candlestick/dataset"
	"hermannm.dev/candlestick/table"
	"hermannm.dev/wrap"
)

type fakeDatasets map[string]table.Table

func (datasets fakeDatasets) LoadDataset(_ context.Context, name string) (table.Table, error) {
	data, ok := datasets[name]
	if !ok {
		return table.Table{}, wrap.Errorf(dataset.ErrNotFound, "no dataset '%s'", name)
	}
	return data, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	data, err := table.New(
		[]table.Column{
			{Name: "category", DataType: table.DataTypeText},
			{Name: "value", DataType: table.DataTypeInt},
			{Name: "label", DataType: table.DataTypeText},
		},
		[][]any{
			{"A", 1, "x"},
			{"A", 2, "x"},
			{"B", 10, "y"},
			{"C", 4, "z"},
			{"D", 6, "w"},
		},
	)
	require.NoError(t, err)

	candlestickAPI := api.NewCandlestickAPI(
		fakeDatasets{"sales": data},
		http.NewServeMux(),
		config.API{Port: "0"},
	)

	server := httptest.NewServer(candlestickAPI.Handler())
	t.Cleanup(server.Close)
	return server
}

func get(t *testing.T, server *httptest.Server, path string, params map[string]string) *http.Response {
	t.Helper()

	query := url.Values{}
	for key, value := range params {
		query.Set(key, value)
	}

	res, err := http.Get(server.URL + path + "?" + query.Encode())
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func TestReformatData(t *testing.T) {
	server := newTestServer(t)

	res := get(t, server, "/reformat_data", map[string]string{
		"config": `{
			"dataset_name": "sales",
			"category_column": "category",
			"value_column": "value",
			"max_displayed_values": "2",
			"group_others": true
		}`,
		"filters": `[{"filterType": "ALPHANUM_FACET", "column": "label", "excludedValues": {"z": true}}]`,
	})

	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/json", res.Header.Get("Content-Type"))
	assert.NotEmpty(t, res.Header.Get("X-Request-ID"))

	var body struct {
		Result [][]any `json:"result"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, [][]any{{"others", 0.0, 16.0}, {"A", 16.0, 19.0}}, body.Result)
}

func TestReformatDataWithoutFilters(t *testing.T) {
	server := newTestServer(t)

	for _, maxDisplayedValues := range []string{`5`, `5.0`, `"5"`} {
		t.Run(maxDisplayedValues, func(t *testing.T) {
			res := get(t, server, "/reformat_data", map[string]string{
				"config": `{"dataset_name": "sales", "category_column": "category", ` +
					`"value_column": "value", "max_displayed_values": ` + maxDisplayedValues +
					`, "group_others": false}`,
			})

			require.Equal(t, http.StatusOK, res.StatusCode)

			var body struct {
				Result [][]any `json:"result"`
			}
			require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
			assert.Equal(t, [][]any{
				{"B", 0.0, 10.0},
				{"D", 10.0, 16.0},
				{"C", 16.0, 20.0},
				{"A", 20.0, 23.0},
			}, body.Result)
		})
	}
}

func TestReformatDataErrors(t *testing.T) {
	server := newTestServer(t)

	validConfig := `{"dataset_name": "sales", "category_column": "category", ` +
		`"value_column": "value", "max_displayed_values": 5}`

	testCases := []struct {
		name           string
		params         map[string]string
		expectedStatus int
	}{
		{
			name:           "missing config",
			params:         map[string]string{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid config JSON",
			params:         map[string]string{"config": "{"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "invalid max displayed values",
			params: map[string]string{
				"config": `{"dataset_name": "sales", "max_displayed_values": "many"}`,
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "fractional max displayed values",
			params: map[string]string{
				"config": `{"dataset_name": "sales", "category_column": "category", ` +
					`"value_column": "value", "max_displayed_values": 2.5}`,
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid filters JSON",
			params:         map[string]string{"config": validConfig, "filters": "not json"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown dataset",
			params: map[string]string{
				"config": `{"dataset_name": "missing", "category_column": "category", ` +
					`"value_column": "value", "max_displayed_values": 5}`,
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name: "non-numeric value column",
			params: map[string]string{
				"config": `{"dataset_name": "sales", "category_column": "category", ` +
					`"value_column": "label", "max_displayed_values": 5}`,
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name: "unknown date filter",
			params: map[string]string{
				"config":  validConfig,
				"filters": `[{"filterType": "DATE_FACET", "column": "category"}]`,
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			res := get(t, server, "/reformat_data", testCase.params)
			assert.Equal(t, testCase.expectedStatus, res.StatusCode)
		})
	}
}

func TestGetDatasetSchema(t *testing.T) {
	server := newTestServer(t)

	res := get(t, server, "/dataset_schema", map[string]string{"dataset": "sales"})
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))

	assert.Equal(t, "sales", body["name"])
	assert.Equal(t, 5.0, body["rowCount"])
	assert.Equal(t, []any{
		map[string]any{"name": "category", "dataType": "TEXT", "optional": false},
		map[string]any{"name": "value", "dataType": "INTEGER", "optional": false},
		map[string]any{"name": "label", "dataType": "TEXT", "optional": false},
	}, body["columns"])
}

func TestGetDatasetSchemaErrors(t *testing.T) {
	server := newTestServer(t)

	res := get(t, server, "/dataset_schema", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = get(t, server, "/dataset_schema", map[string]string{"dataset": "missing"})
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
}

func TestMethodNotAllowed(t *testing.T) {
	server := newTestServer(t)

	res, err := http.Post(server.URL+"/reformat_data", "application/json", nil)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}
