package elasticsearch

import (
	"github.com/elastic/go-elasticsearch/v8"
	"hermannm.dev/candlestick/config"
	"hermannm.dev/wrap"
)

// Implements dataset.Provider for Elasticsearch, where each dataset is an index.
type ElasticsearchDB struct {
	client       *elasticsearch.TypedClient
	maxDocuments int
}

func NewElasticsearchDB(config config.Elasticsearch) (ElasticsearchDB, error) {
	client, err := elasticsearch.NewTypedClient(elasticsearch.Config{
		Addresses:         []string{config.Address},
		EnableDebugLogger: config.Debug,
	})
	if err != nil {
		return ElasticsearchDB{}, wrap.Error(err, "failed to connect to Elasticsearch")
	}

	return ElasticsearchDB{client: client, maxDocuments: config.MaxDocuments}, nil
}
