package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/elastic/go-elasticsearch/v8/typedapi/core/closepointintime"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/totalhitsrelation"
	"hermannm.dev/candlestick/log"
	"hermannm.dev/candlestick/table"
	"hermannm.dev/wrap"
)

const (
	searchPageSize         = 1000
	pointInTimeKeepAlive   = "1m"
	shardDocumentSortField = "_shard_doc"
)

// LoadDataset reads every document in the index with the given name, paging through a point in
// time with search_after. Columns are taken from the index mappings, and every column is optional,
// since documents may omit fields. Indices with more than the configured maximum number of
// documents are rejected rather than truncated.
func (elastic ElasticsearchDB) LoadDataset(ctx context.Context, index string) (table.Table, error) {
	columns, err := elastic.getColumns(ctx, index)
	if err != nil {
		return table.Table{}, err
	}

	pit, err := elastic.client.OpenPointInTime(index).KeepAlive(pointInTimeKeepAlive).Do(ctx)
	if err != nil {
		return table.Table{}, wrapDatasetError(err, index, "open point in time request failed")
	}
	pitID := pit.Id
	defer func() {
		elastic.closePointInTime(ctx, pitID)
	}()

	var rows [][]any
	var searchAfter []types.FieldValue
	for {
		size := min(searchPageSize, elastic.maxDocuments-len(rows))
		if size <= 0 {
			break
		}

		request := &search.Request{
			Size:        &size,
			Query:       &types.Query{MatchAll: &types.MatchAllQuery{}},
			Pit:         &types.PointInTimeReference{Id: pitID, KeepAlive: pointInTimeKeepAlive},
			Sort:        []types.SortCombinations{shardDocumentSortField},
			SearchAfter: searchAfter,
		}
		firstPage := searchAfter == nil
		if firstPage {
			// Counts accurately up to one past the limit, so the limit check is exact.
			request.TrackTotalHits = elastic.maxDocuments + 1
		}

		response, err := elastic.client.Search().Request(request).Do(ctx)
		if err != nil {
			return table.Table{}, wrapDatasetError(err, index, "search request failed")
		}

		if firstPage && exceedsDocumentLimit(response.Hits.Total, elastic.maxDocuments) {
			return table.Table{}, fmt.Errorf(
				"index '%s' has more than the maximum of %d documents",
				index,
				elastic.maxDocuments,
			)
		}

		for _, hit := range response.Hits.Hits {
			row, err := documentToRow(hit.Source_, columns)
			if err != nil {
				return table.Table{}, wrap.Errorf(err, "failed to parse document in index '%s'", index)
			}
			rows = append(rows, row)
		}

		if response.PitId != nil {
			pitID = *response.PitId
		}

		hits := response.Hits.Hits
		if len(hits) < size {
			break
		}
		searchAfter = hits[len(hits)-1].Sort
	}

	log.Debugf("loaded %d documents from index '%s'", len(rows), index)
	return table.New(columns, rows)
}

// exceedsDocumentLimit reports whether the total hits of a search are known to go past the given
// limit. A lower bound (relation "gte") at or above the limit counts as exceeding it, since
// Elasticsearch stops counting once it reaches its tracking threshold.
func exceedsDocumentLimit(total *types.TotalHits, limit int) bool {
	if total == nil {
		return false
	}
	if total.Relation == totalhitsrelation.Gte {
		return total.Value >= int64(limit)
	}
	return total.Value > int64(limit)
}

func (elastic ElasticsearchDB) closePointInTime(ctx context.Context, pitID string) {
	_, err := elastic.client.ClosePointInTime().
		Request(&closepointintime.Request{Id: pitID}).
		Do(context.WithoutCancel(ctx))
	if err != nil {
		log.Warnf("failed to close Elasticsearch point in time: %v", formatElasticError(err))
	}
}

func (elastic ElasticsearchDB) getColumns(ctx context.Context, index string) ([]table.Column, error) {
	response, err := elastic.client.Indices.GetMapping().Index(index).Do(ctx)
	if err != nil {
		return nil, wrapDatasetError(err, index, "get mapping request failed")
	}

	record, ok := response[index]
	if !ok {
		return nil, fmt.Errorf("index '%s' missing from mapping response", index)
	}

	columnNames := make([]string, 0, len(record.Mappings.Properties))
	for name := range record.Mappings.Properties {
		columnNames = append(columnNames, name)
	}
	slices.Sort(columnNames)

	columns := make([]table.Column, 0, len(columnNames))
	for _, name := range columnNames {
		dataType, ok := dataTypeFromElasticProperty(record.Mappings.Properties[name])
		if !ok {
			log.Debugf("skipping field '%s' in index '%s' with unsupported mapping", name, index)
			continue
		}
		columns = append(columns, table.Column{Name: name, DataType: dataType, Optional: true})
	}

	return columns, nil
}

func documentToRow(source json.RawMessage, columns []table.Column) ([]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(source))
	decoder.UseNumber()

	var document map[string]any
	if err := decoder.Decode(&document); err != nil {
		return nil, wrap.Error(err, "invalid document JSON")
	}

	row := make([]any, len(columns))
	for i, column := range columns {
		value, err := convertElasticValue(document[column.Name], column.DataType)
		if err != nil {
			return nil, wrap.Errorf(err, "invalid value for field '%s'", column.Name)
		}
		row[i] = value
	}

	return row, nil
}
