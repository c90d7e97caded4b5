// Package javascan traces stored-procedure usage through a Java codebase:
// DAO classes are scanned for JDBC call patterns, UI-layer classes
// (handlers, actions, controllers, services) for the DAOs they use, and the
// two are joined into ui-component → procedure dependency edges.
package javascan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/migratehq/depscope/objgraph"
)

// uiSuffixes classify a class as a UI-layer component.
var uiSuffixes = []string{"Handler", "Action", "Controller", "Service", "ServiceImpl"}

// Ingestor scans a Java source tree rooted at Root and attributes the
// resulting edges to Source.
type Ingestor struct {
	Root   string
	Source string
}

// NewIngestor returns a scanner for one Java source tree.
func NewIngestor(root, source string) *Ingestor {
	return &Ingestor{Root: root, Source: source}
}

func (j *Ingestor) Name() string {
	return "javascan:" + filepath.Base(j.Root)
}

// ReadEdges walks the tree, scans every .java file, and joins UI classes to
// the procedures their DAOs call.
func (j *Ingestor) ReadEdges(ctx context.Context) ([]objgraph.RawEdgeRecord, error) {
	daoProcedures := make(map[string][]string)
	type uiClass struct {
		name    string
		daoRefs []string
	}
	var uiClasses []uiClass

	err := filepath.WalkDir(j.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != j.Root {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".java" {
			return nil
		}

		sourceCode, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		facts, err := scanSource(sourceCode)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if facts.ClassName == "" {
			return nil
		}

		if strings.HasSuffix(facts.ClassName, "DAO") {
			daoProcedures[facts.ClassName] = append(daoProcedures[facts.ClassName], facts.Procedures...)
			return nil
		}
		if isUIClass(facts.ClassName) {
			uiClasses = append(uiClasses, uiClass{name: facts.ClassName, daoRefs: facts.DAORefs})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(uiClasses, func(i, k int) bool { return uiClasses[i].name < uiClasses[k].name })

	var records []objgraph.RawEdgeRecord
	for _, ui := range uiClasses {
		seen := make(map[string]bool)
		for _, dao := range ui.daoRefs {
			for _, proc := range daoProcedures[dao] {
				if seen[proc] {
					continue
				}
				seen[proc] = true
				records = append(records, objgraph.RawEdgeRecord{
					ReferencingName: ui.name,
					ReferencingKind: string(objgraph.KindUIComponent),
					ReferencedName:  proc,
					ReferencedKind:  string(objgraph.KindProcedure),
					Source:          j.Source,
				})
			}
		}
	}
	return records, nil
}

func isUIClass(className string) bool {
	for _, suffix := range uiSuffixes {
		if strings.HasSuffix(className, suffix) {
			return true
		}
	}
	return false
}
