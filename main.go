package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"hermannm.dev/candlestick/api"
	"hermannm.dev/candlestick/config"
	"hermannm.dev/candlestick/dataset"
	"hermannm.dev/candlestick/db/clickhouse"
	"hermannm.dev/candlestick/db/elasticsearch"
	"hermannm.dev/candlestick/log"
	"hermannm.dev/devlog"
	"hermannm.dev/wrap"
)

func main() {
	initializeLogger(false)

	log.Info("loading config from environment")
	conf, err := config.ReadFromEnv()
	if err != nil {
		log.Error(err, "failed to read config from env")
		os.Exit(1)
	}
	initializeLogger(conf.IsProduction)

	datasets, err := initializeDatasetProvider(conf)
	if err != nil {
		log.Error(err, "failed to initialize dataset provider")
		os.Exit(1)
	}

	candlestickAPI := api.NewCandlestickAPI(datasets, http.NewServeMux(), conf.API)

	log.Infof("listening on port %s", conf.API.Port)
	if err := candlestickAPI.ListenAndServe(); err != nil {
		log.Error(err, "server stopped")
		os.Exit(1)
	}
}

func initializeLogger(isProduction bool) {
	var logHandler slog.Handler
	if isProduction {
		logHandler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		logHandler = devlog.NewHandler(os.Stdout, &devlog.Options{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(logHandler))
}

const connectionTimeout = 10 * time.Second

func initializeDatasetProvider(conf config.Config) (dataset.Provider, error) {
	switch conf.DataSource {
	case config.DataSourceClickHouse:
		log.Info("connecting to ClickHouse")
		db, err := clickhouse.NewClickHouseDB(conf.ClickHouse)
		if err != nil {
			return nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			return nil, err
		}

		return db, nil
	case config.DataSourceElasticsearch:
		log.Info("connecting to Elasticsearch")
		db, err := elasticsearch.NewElasticsearchDB(conf.Elasticsearch)
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.DataSourceFiles:
		info, err := os.Stat(conf.Files.Dir)
		if err != nil {
			return nil, wrap.Errorf(err, "failed to access dataset directory '%s'", conf.Files.Dir)
		}
		if !info.IsDir() {
			return nil, wrap.Errorf(
				os.ErrInvalid,
				"dataset path '%s' is not a directory",
				conf.Files.Dir,
			)
		}

		log.Infof("loading datasets from directory '%s'", conf.Files.Dir)
		return dataset.NewFiles(conf.Files.Dir, conf.Files.CSVRowsToCheck), nil
	default:
		return nil, wrap.Errorf(os.ErrInvalid, "unsupported data source '%s'", conf.DataSource)
	}
}
