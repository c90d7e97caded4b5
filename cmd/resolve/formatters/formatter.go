package formatters

import (
	"fmt"

	"github.com/migratehq/depscope/objgraph"
)

// FormatOptions contains optional parameters for formatting reports.
type FormatOptions struct {
	// Label is an optional title for the report
	Label string
}

// Formatter is the interface that all report formatters must implement.
type Formatter interface {
	// Format converts an analysis report to a formatted string representation.
	Format(report objgraph.Report, opts FormatOptions) (string, error)
}

// NewFormatter creates a Formatter for the specified format type.
// Supported formats: "text", "json", "dot"
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case "", "text":
		return &TextFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "dot":
		return &DOTFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s (valid options: text, json, dot)", format)
	}
}
