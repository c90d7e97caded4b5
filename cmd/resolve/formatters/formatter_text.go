package formatters

import (
	"fmt"
	"strings"

	"github.com/migratehq/depscope/objgraph"
)

// TextFormatter renders reports as the plain impact-analysis listing:
// each root, its leaf objects with kinds, and the chains reaching them.
type TextFormatter struct{}

func (f *TextFormatter) Format(report objgraph.Report, opts FormatOptions) (string, error) {
	var sb strings.Builder

	if opts.Label != "" {
		sb.WriteString(opts.Label + "\n\n")
	}

	for i, root := range report.Roots {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s (%s)\n", root.Root, root.Direction)
		if root.Truncated {
			sb.WriteString("  warning: traversal truncated at depth bound\n")
		}

		for _, leaf := range root.Leaves {
			fmt.Fprintf(&sb, "  %s [%s]\n", leaf.Terminal, leaf.Kind)
			for _, path := range leaf.Paths {
				fmt.Fprintf(&sb, "    %s\n", strings.Join(path, " -> "))
			}
		}
	}

	if len(report.AmbiguousResolutions) > 0 {
		sb.WriteString("\nAmbiguous resolutions:\n")
		for _, entry := range report.AmbiguousResolutions {
			fmt.Fprintf(&sb, "  %s\n", entry)
		}
	}
	if len(report.MalformedEdges) > 0 {
		sb.WriteString("\nSkipped malformed edges:\n")
		for _, entry := range report.MalformedEdges {
			fmt.Fprintf(&sb, "  %s\n", entry)
		}
	}

	return sb.String(), nil
}
