package elasticsearch

import (
	"errors"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"hermannm.dev/candlestick/dataset"
	"hermannm.dev/wrap"
)

const elasticIndexNotFoundException = "index_not_found_exception"

func wrapElasticError(wrapped error, message string) error {
	return wrap.Error(formatElasticError(wrapped), message)
}

// wrapDatasetError wraps dataset.ErrNotFound if the index for the dataset does not exist.
func wrapDatasetError(wrapped error, index string, message string) error {
	var elasticErr *types.ElasticsearchError
	if errors.As(wrapped, &elasticErr) &&
		elasticErr.ErrorCause.Type == elasticIndexNotFoundException {
		return wrap.Errorf(dataset.ErrNotFound, "no index found for dataset '%s'", index)
	}

	return wrapElasticError(wrapped, message)
}

func formatElasticError(err error) error {
	elasticErr, ok := err.(*types.ElasticsearchError)
	if !ok {
		return err
	}

	var errMessage string
	if elasticErr.ErrorCause.Reason == nil {
		errMessage = fmt.Sprintf("%s (status %d)", elasticErr.ErrorCause.Type, elasticErr.Status)
	} else {
		errMessage = fmt.Sprintf(
			"%s (%s, status %d)",
			*elasticErr.ErrorCause.Reason,
			elasticErr.ErrorCause.Type,
			elasticErr.Status,
		)
	}

	rootCause := make([]error, len(elasticErr.ErrorCause.RootCause))
	for i, cause := range elasticErr.ErrorCause.RootCause {
		if cause.Reason == nil {
			rootCause[i] = errors.New(cause.Type)
		} else {
			rootCause[i] = fmt.Errorf("%s (%s)", *cause.Reason, cause.Type)
		}
	}

	if len(rootCause) == 0 {
		return errors.New(errMessage)
	} else {
		return wrap.Errors(errMessage, rootCause...)
	}
}
