package candlestick

import (
	"hermannm.dev/candlestick/table"
)

type Config struct {
	DatasetName    string `json:"dataset_name"`
	CategoryColumn string `json:"category_column"`
	ValueColumn    string `json:"value_column"`
	// Categories beyond this count are merged into OthersCategory (if GroupOthers is set) or
	// dropped. Categories with the highest row counts are kept.
	MaxDisplayedValues int  `json:"max_displayed_values"`
	GroupOthers        bool `json:"group_others"`
}

func (config Config) Validate() error {
	if config.CategoryColumn == "" {
		return table.NewValidationError("missing category column in config")
	}
	if config.ValueColumn == "" {
		return table.NewValidationError("missing value column in config")
	}
	if config.MaxDisplayedValues < 1 {
		return table.NewValidationError(
			"max displayed values must be at least 1, got %d",
			config.MaxDisplayedValues,
		)
	}
	return nil
}
