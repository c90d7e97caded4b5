package javascan

import (
	"context"
	"regexp"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	tsjava "github.com/smacker/go-tree-sitter/java"
)

// callableMethods are the JDBC entry points whose string argument names a
// stored procedure.
var callableMethods = map[string]bool{
	"prepareCall":          true,
	"getCallableStatement": true,
}

// executeMethods take a bare procedure name; their argument only counts
// when it looks like one.
var executeMethods = map[string]bool{
	"execute": true,
}

var callStatementPattern = regexp.MustCompile(`(?i)call\s+(?:dbo\.)?([A-Za-z0-9_]+)`)

// classFacts is everything one Java source file contributes to the scan.
type classFacts struct {
	ClassName  string
	Procedures []string
	DAORefs    []string
}

func parseJava(sourceCode []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(tsjava.GetLanguage())
	return parser.ParseCtx(context.Background(), nil, sourceCode)
}

// scanSource extracts the class name, every stored-procedure call, and
// every DAO type the class touches (imports plus instantiations).
func scanSource(sourceCode []byte) (classFacts, error) {
	tree, err := parseJava(sourceCode)
	if err != nil {
		return classFacts{}, err
	}
	defer tree.Close()

	facts := classFacts{}
	procedures := map[string]bool{}
	daoRefs := map[string]bool{}

	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}

		switch node.Type() {
		case "class_declaration":
			if facts.ClassName == "" {
				if name := node.ChildByFieldName("name"); name != nil {
					facts.ClassName = name.Content(sourceCode)
				}
			}
		case "import_declaration":
			if imported := lastIdentifier(node.Content(sourceCode)); strings.HasSuffix(imported, "DAO") {
				daoRefs[imported] = true
			}
		case "object_creation_expression":
			if typ := node.ChildByFieldName("type"); typ != nil {
				if name := typ.Content(sourceCode); strings.HasSuffix(name, "DAO") {
					daoRefs[name] = true
				}
			}
		case "method_invocation":
			if name := node.ChildByFieldName("name"); name != nil {
				collectInvocationProcedures(name.Content(sourceCode), node, sourceCode, procedures)
			}
		case "explicit_constructor_invocation":
			// super(ds, "spName") in DAO base-class constructors.
			for _, arg := range stringArguments(node, sourceCode) {
				if isProcedureName(arg) {
					procedures[arg] = true
				}
			}
		case "assignment_expression":
			collectSQLAssignment(node, sourceCode, procedures)
		case "variable_declarator":
			collectSQLDeclarator(node, sourceCode, procedures)
		}

		for i := 0; i < int(node.NamedChildCount()); i++ {
			walk(node.NamedChild(i))
		}
	}
	walk(tree.RootNode())

	for proc := range procedures {
		facts.Procedures = append(facts.Procedures, proc)
	}
	for dao := range daoRefs {
		facts.DAORefs = append(facts.DAORefs, dao)
	}
	sort.Strings(facts.Procedures)
	sort.Strings(facts.DAORefs)
	return facts, nil
}

func collectInvocationProcedures(method string, node *sitter.Node, sourceCode []byte, procedures map[string]bool) {
	args := stringArguments(node, sourceCode)
	if len(args) == 0 {
		return
	}

	switch {
	case callableMethods[method]:
		if match := callStatementPattern.FindStringSubmatch(args[0]); match != nil {
			procedures[match[1]] = true
		}
	case executeMethods[method]:
		if isProcedureName(args[0]) {
			procedures[args[0]] = true
		}
	}
}

func collectSQLAssignment(node *sitter.Node, sourceCode []byte, procedures map[string]bool) {
	left := node.ChildByFieldName("left")
	right := node.ChildByFieldName("right")
	if left == nil || right == nil || right.Type() != "string_literal" {
		return
	}
	if !strings.HasSuffix(left.Content(sourceCode), "SQL") {
		return
	}
	if name := strings.TrimPrefix(unquote(right.Content(sourceCode)), "dbo."); isProcedureName(name) {
		procedures[name] = true
	}
}

func collectSQLDeclarator(node *sitter.Node, sourceCode []byte, procedures map[string]bool) {
	name := node.ChildByFieldName("name")
	value := node.ChildByFieldName("value")
	if name == nil || value == nil || value.Type() != "string_literal" {
		return
	}
	if !strings.HasSuffix(name.Content(sourceCode), "SQL") {
		return
	}
	if proc := strings.TrimPrefix(unquote(value.Content(sourceCode)), "dbo."); isProcedureName(proc) {
		procedures[proc] = true
	}
}

// stringArguments returns the unquoted string literal arguments of a call
// or constructor invocation node.
func stringArguments(node *sitter.Node, sourceCode []byte) []string {
	args := node.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}

	var literals []string
	for i := 0; i < int(args.NamedChildCount()); i++ {
		child := args.NamedChild(i)
		if child.Type() == "string_literal" {
			literals = append(literals, unquote(child.Content(sourceCode)))
		}
	}
	return literals
}

func unquote(literal string) string {
	return strings.Trim(literal, `"`)
}

// isProcedureName applies the tracer convention: bare names only count as
// stored procedures when they carry the sp prefix.
func isProcedureName(name string) bool {
	return strings.HasPrefix(strings.ToLower(name), "sp") && !strings.ContainsAny(name, " {}(")
}

func lastIdentifier(importDeclaration string) string {
	trimmed := strings.TrimSuffix(strings.TrimSpace(importDeclaration), ";")
	if idx := strings.LastIndex(trimmed, "."); idx >= 0 {
		return strings.TrimSpace(trimmed[idx+1:])
	}
	fields := strings.Fields(trimmed)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
