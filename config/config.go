package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"hermannm.dev/wrap"
)

type Config struct {
	BaseConfig
	ClickHouse    ClickHouse
	Elasticsearch Elasticsearch
	Files         Files
}

type BaseConfig struct {
	IsProduction bool       `env:"PRODUCTION" envDefault:"false"`
	DataSource   DataSource `env:"DATA_SOURCE"`
	API          API
}

type API struct {
	Port string `env:"API_PORT"`
}

type ClickHouse struct {
	Address      string `env:"CLICKHOUSE_ADDRESS"`
	DatabaseName string `env:"CLICKHOUSE_DB_NAME"`
	Username     string `env:"CLICKHOUSE_USERNAME"`
	Password     string `env:"CLICKHOUSE_PASSWORD"`
	Debug        bool   `env:"CLICKHOUSE_DEBUG_ENABLED" envDefault:"false"`
}

type Elasticsearch struct {
	Address string `env:"ELASTICSEARCH_ADDRESS"`
	Debug   bool   `env:"ELASTICSEARCH_DEBUG_ENABLED" envDefault:"false"`
	// Upper limit on documents fetched from an index when loading it as a dataset.
	MaxDocuments int `env:"ELASTICSEARCH_MAX_DOCUMENTS" envDefault:"10000"`
}

type Files struct {
	Dir            string `env:"DATASET_DIR"`
	CSVRowsToCheck int    `env:"CSV_ROWS_TO_CHECK" envDefault:"100"`
}

type DataSource string

const (
	DataSourceClickHouse    DataSource = "clickhouse"
	DataSourceElasticsearch DataSource = "elasticsearch"
	DataSourceFiles         DataSource = "files"
)

// ReadFromEnv loads the config from environment variables, first loading a .env file in the
// working directory if one exists. Only the section of the selected data source is parsed.
func ReadFromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, wrap.Error(err, "failed to load .env file")
	}

	parseOptions := env.Options{RequiredIfNoDef: true}

	var config Config

	if err := env.ParseWithOptions(&config.BaseConfig, parseOptions); err != nil {
		return Config{}, err
	}

	var err error
	switch config.DataSource {
	case DataSourceClickHouse:
		err = env.ParseWithOptions(&config.ClickHouse, parseOptions)
	case DataSourceElasticsearch:
		err = env.ParseWithOptions(&config.Elasticsearch, parseOptions)
		if err == nil && config.Elasticsearch.MaxDocuments <= 0 {
			err = fmt.Errorf(
				"ELASTICSEARCH_MAX_DOCUMENTS must be positive, got %d",
				config.Elasticsearch.MaxDocuments,
			)
		}
	case DataSourceFiles:
		err = env.ParseWithOptions(&config.Files, parseOptions)
		if err == nil && config.Files.CSVRowsToCheck <= 0 {
			err = fmt.Errorf(
				"CSV_ROWS_TO_CHECK must be positive, got %d",
				config.Files.CSVRowsToCheck,
			)
		}
	default:
		err = fmt.Errorf(
			"must be one of: '%s', '%s', '%s'",
			DataSourceClickHouse,
			DataSourceElasticsearch,
			DataSourceFiles,
		)
		err = wrap.Errorf(err, "unsupported value '%s' for DATA_SOURCE in env", config.DataSource)
	}
	if err != nil {
		return Config{}, err
	}

	return config, nil
}
