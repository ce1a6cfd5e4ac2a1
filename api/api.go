package api

import (
	"fmt"
	"net/http"

	"hermannm.dev/candlestick/config"
	"hermannm.dev/candlestick/dataset"
)

type CandlestickAPI struct {
	datasets dataset.Provider
	router   *http.ServeMux
	config   config.API
}

func NewCandlestickAPI(
	datasets dataset.Provider,
	router *http.ServeMux,
	config config.API,
) CandlestickAPI {
	api := CandlestickAPI{datasets: datasets, router: router, config: config}

	api.router.HandleFunc("GET /reformat_data", api.ReformatData)
	api.router.HandleFunc("GET /dataset_schema", api.GetDatasetSchema)

	return api
}

func (api CandlestickAPI) Handler() http.Handler {
	return withRequestID(api.router)
}

func (api CandlestickAPI) ListenAndServe() error {
	return http.ListenAndServe(fmt.Sprintf(":%s", api.config.Port), api.Handler())
}
