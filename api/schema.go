package api

import (
	"net/http"

	"hermannm.dev/candlestick/table"
)

type datasetSchema struct {
	Name     string         `json:"name"`
	Columns  []table.Column `json:"columns"`
	RowCount int            `json:"rowCount"`
}

// Expects:
//   - query parameter 'dataset': name of dataset to get schema for
//
// Returns:
//   - JSON-encoded dataset schema, with the name, data type and optionality of each column
func (api CandlestickAPI) GetDatasetSchema(res http.ResponseWriter, req *http.Request) {
	name := req.URL.Query().Get("dataset")
	if name == "" {
		sendClientError(res, req, nil, "missing 'dataset' query parameter in request")
		return
	}

	data, err := api.datasets.LoadDataset(req.Context(), name)
	if err != nil {
		sendServerError(res, req, err, "failed to load dataset")
		return
	}

	sendJSON(res, datasetSchema{Name: name, Columns: data.Columns(), RowCount: data.Len()})
}
