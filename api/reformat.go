package api

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"hermannm.dev/candlestick/candlestick"
	"hermannm.dev/candlestick/filter"
)

type reformatResponse struct {
	Result []candlestick.Row `json:"result"`
}

// Expects:
//   - query parameter 'config': JSON-encoded chart config (dataset_name, category_column,
//     value_column, max_displayed_values, group_others)
//   - query parameter 'filters' (optional): JSON-encoded list of filter.Filter
//
// Returns:
//   - JSON object with 'result': list of [category, rangeStart, rangeEnd] rows
func (api CandlestickAPI) ReformatData(res http.ResponseWriter, req *http.Request) {
	query := req.URL.Query()

	rawConfig := query.Get("config")
	if rawConfig == "" {
		sendClientError(res, req, nil, "missing 'config' query parameter in request")
		return
	}

	var config chartConfig
	if err := json.Unmarshal([]byte(rawConfig), &config); err != nil {
		sendClientError(res, req, err, "failed to parse 'config' query parameter")
		return
	}

	var filters []filter.Filter
	if rawFilters := query.Get("filters"); rawFilters != "" {
		if err := json.Unmarshal([]byte(rawFilters), &filters); err != nil {
			sendClientError(res, req, err, "failed to parse 'filters' query parameter")
			return
		}
	}

	data, err := api.datasets.LoadDataset(req.Context(), config.DatasetName)
	if err != nil {
		sendServerError(res, req, err, fmt.Sprintf("failed to load dataset '%s'", config.DatasetName))
		return
	}

	rows, err := candlestick.Compute(data, config.toCandlestickConfig(), filter.Specs(filters))
	if err != nil {
		sendServerError(res, req, err, "")
		return
	}

	sendJSON(res, reformatResponse{Result: rows})
}

type chartConfig struct {
	DatasetName        string         `json:"dataset_name"`
	CategoryColumn     string         `json:"category_column"`
	ValueColumn        string         `json:"value_column"`
	MaxDisplayedValues displayedCount `json:"max_displayed_values"`
	GroupOthers        bool           `json:"group_others"`
}

func (config chartConfig) toCandlestickConfig() candlestick.Config {
	return candlestick.Config{
		DatasetName:        config.DatasetName,
		CategoryColumn:     config.CategoryColumn,
		ValueColumn:        config.ValueColumn,
		MaxDisplayedValues: int(config.MaxDisplayedValues),
		GroupOthers:        config.GroupOthers,
	}
}

// The chart editor sends max_displayed_values either as a number or as a numeric string. Integral
// floats such as 5.0 are accepted.
type displayedCount int

func (count *displayedCount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}

		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid max_displayed_values '%s'", value)
		}

		*count = displayedCount(parsed)
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}

	if parsed, err := number.Int64(); err == nil {
		*count = displayedCount(parsed)
		return nil
	}

	value, err := number.Float64()
	if err != nil || value != math.Trunc(value) || math.Abs(value) > math.MaxInt32 {
		return fmt.Errorf("max_displayed_values must be an integer, got %s", number)
	}

	*count = displayedCount(value)
	return nil
}
