package formatters

import (
	"encoding/json"

	"github.com/migratehq/depscope/objgraph"
)

// JSONFormatter formats analysis reports as JSON.
type JSONFormatter struct{}

// Format converts the report to JSON. The opts parameter is accepted for
// interface compatibility but not used.
func (f *JSONFormatter) Format(report objgraph.Report, opts FormatOptions) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
