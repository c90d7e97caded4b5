package resolve

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/migratehq/depscope/cmd/resolve/formatters"
	"github.com/migratehq/depscope/ingest"
	"github.com/migratehq/depscope/ingest/catalog"
	"github.com/migratehq/depscope/ingest/javascan"
	"github.com/migratehq/depscope/objgraph"
)

// Options is everything one analysis run needs. The watch command reuses it
// to re-run the same analysis when inputs change.
type Options struct {
	EdgeFiles []string
	Catalogs  []string
	JavaTrees []string
	Roots     []string
	RootsFile string
	Source    string
	Container string
	Direction string
	MaxDepth  int
	Format    string
	Label     string
}

// InputPaths returns every filesystem path the analysis reads, for watchers.
func (o Options) InputPaths() []string {
	paths := make([]string, 0, len(o.EdgeFiles)+len(o.Catalogs)+len(o.JavaTrees)+1)
	paths = append(paths, o.EdgeFiles...)
	for _, arg := range o.Catalogs {
		_, path := parseSourceArg(arg)
		paths = append(paths, path)
	}
	for _, arg := range o.JavaTrees {
		_, path := parseSourceArg(arg)
		paths = append(paths, path)
	}
	if o.RootsFile != "" {
		paths = append(paths, o.RootsFile)
	}
	return paths
}

// Run executes one full analysis: ingest, build, resolve, format.
func Run(ctx context.Context, opts Options) (string, error) {
	ingestors, err := buildIngestors(opts)
	if err != nil {
		return "", err
	}
	if len(ingestors) == 0 {
		return "", fmt.Errorf("no edge inputs specified (use --edges, --catalog, or --java)")
	}

	roots := append([]string{}, opts.Roots...)
	if opts.RootsFile != "" {
		fromFile, err := readRootsFile(opts.RootsFile)
		if err != nil {
			return "", err
		}
		roots = append(roots, fromFile...)
	}
	if len(roots) == 0 {
		return "", fmt.Errorf("no root objects specified (use --root or --roots-file)")
	}

	records, err := ingest.Collect(ctx, ingestors...)
	if err != nil {
		return "", fmt.Errorf("failed to collect edges: %w", err)
	}

	store, diags, err := objgraph.Build(records, objgraph.BuildOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to build dependency graph: %w", err)
	}

	report, err := objgraph.Analyze(ctx, store, objgraph.Request{
		Roots:     roots,
		Source:    opts.Source,
		Container: opts.Container,
		Direction: opts.Direction,
		MaxDepth:  opts.MaxDepth,
	}, diags)
	if err != nil {
		return "", fmt.Errorf("failed to resolve dependencies: %w", err)
	}

	formatter, err := formatters.NewFormatter(opts.Format)
	if err != nil {
		return "", err
	}
	return formatter.Format(report, formatters.FormatOptions{Label: opts.Label})
}

func buildIngestors(opts Options) ([]ingest.Ingestor, error) {
	var ingestors []ingest.Ingestor
	for _, path := range opts.EdgeFiles {
		ingestors = append(ingestors, ingest.NewCSVIngestor(path, opts.Source))
	}
	for _, arg := range opts.Catalogs {
		source, path := parseSourceArg(arg)
		if path == "" {
			return nil, fmt.Errorf("invalid --catalog argument %q (expected [source=]path)", arg)
		}
		ingestors = append(ingestors, catalog.NewSnapshotIngestor(path, source))
	}
	for _, arg := range opts.JavaTrees {
		source, path := parseSourceArg(arg)
		if path == "" {
			return nil, fmt.Errorf("invalid --java argument %q (expected [source=]path)", arg)
		}
		ingestors = append(ingestors, javascan.NewIngestor(path, source))
	}
	return ingestors, nil
}

// parseSourceArg splits a "[source=]path" argument. Without an explicit
// source the file's base name (minus extension) is used, so
// "snapshots/erp.db" reads as source "erp".
func parseSourceArg(arg string) (source, path string) {
	if idx := strings.Index(arg, "="); idx >= 0 {
		return strings.TrimSpace(arg[:idx]), strings.TrimSpace(arg[idx+1:])
	}
	base := filepath.Base(arg)
	return strings.TrimSuffix(base, filepath.Ext(base)), strings.TrimSpace(arg)
}

// readRootsFile loads root object names, one per line. Blank lines and
// #-comments are skipped.
func readRootsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roots file: %w", err)
	}
	defer f.Close()

	var roots []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		roots = append(roots, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read roots file: %w", err)
	}
	return roots, nil
}
