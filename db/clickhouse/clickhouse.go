package clickhouse

import (
	"context"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"hermannm.dev/candlestick/config"
	"hermannm.dev/candlestick/log"
	"hermannm.dev/wrap"
)

// Implements dataset.Provider for ClickHouse, where each dataset is a table.
type ClickHouseDB struct {
	conn driver.Conn
}

func NewClickHouseDB(config config.ClickHouse) (ClickHouseDB, error) {
	// Options docs: https://clickhouse.com/docs/en/integrations/go#connection-settings
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{config.Address},
		Auth: clickhouse.Auth{
			Database: config.DatabaseName,
			Username: config.Username,
			Password: config.Password,
		},
		Debug: config.Debug,
		Debugf: func(format string, v ...any) {
			log.Debugf(format, v...)
		},
		Compression: &clickhouse.Compression{Method: clickhouse.CompressionLZ4},
	})
	if err != nil {
		return ClickHouseDB{}, wrap.Error(err, "failed to connect to ClickHouse")
	}

	return ClickHouseDB{conn: conn}, nil
}

func (clickhouse ClickHouseDB) Ping(ctx context.Context) error {
	if err := clickhouse.conn.Ping(ctx); err != nil {
		return wrap.Error(err, "failed to ping ClickHouse")
	}
	return nil
}
