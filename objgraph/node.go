package objgraph

import "strings"

// NodeID is a dense internal identifier assigned by the Registry.
// IDs index directly into the Registry's node arena and the Store's
// adjacency lists.
type NodeID int

// Kind classifies a catalog object.
type Kind string

const (
	KindProcedure   Kind = "procedure"
	KindFunction    Kind = "function"
	KindView        Kind = "view"
	KindTable       Kind = "table"
	KindTrigger     Kind = "trigger"
	KindUIComponent Kind = "ui-component"
	KindUnknown     Kind = "unknown"
)

// kindAliases maps raw catalog type strings (including SQL Server sys.objects
// type codes) to canonical kinds. Lookup is case-insensitive.
var kindAliases = map[string]Kind{
	"p":            KindProcedure,
	"pc":           KindProcedure,
	"proc":         KindProcedure,
	"procedure":    KindProcedure,
	"fn":           KindFunction,
	"tf":           KindFunction,
	"if":           KindFunction,
	"function":     KindFunction,
	"v":            KindView,
	"view":         KindView,
	"u":            KindTable,
	"table":        KindTable,
	"tr":           KindTrigger,
	"trigger":      KindTrigger,
	"ui":           KindUIComponent,
	"ui-component": KindUIComponent,
	"uicomponent":  KindUIComponent,
}

// NormalizeKind maps a raw catalog type string to a canonical Kind.
// Unrecognized or empty values map to KindUnknown rather than failing,
// since an edge with an odd type string still describes a real reference.
func NormalizeKind(raw string) Kind {
	if kind, ok := kindAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return kind
	}
	return KindUnknown
}

// NodeKey is the canonical, source-qualified identity of one catalog object.
// All fields except Kind participate in identity; they are stored lowercased
// so that records differing only in case collapse to the same key.
type NodeKey struct {
	Source    string
	Container string
	Namespace string
	Name      string
	Kind      Kind
}

// SortKey returns the lexical ordering key used for deterministic neighbor
// expansion and stable report output.
func (k NodeKey) SortKey() string {
	return k.Source + "\x00" + k.Container + "\x00" + k.Namespace + "\x00" + k.Name
}

// Node is one registered catalog object. Display preserves the qualified
// name as it first appeared so reports keep the original casing.
type Node struct {
	ID      NodeID
	Key     NodeKey
	Display string
}

// Edge is one directed "references" relationship between two registered nodes.
type Edge struct {
	From NodeID
	To   NodeID
}

// ParseQualifiedName splits a possibly bracket- or quote-delimited qualified
// name into its parts. Supported shapes:
//
//	name
//	namespace.name
//	container.namespace.name
//
// Deeper qualification keeps the last three parts and folds the rest into
// the container. Parts are returned in original case.
func ParseQualifiedName(raw string) (container, namespace, name string) {
	parts := splitQualifiedName(raw)
	switch len(parts) {
	case 0:
		return "", "", ""
	case 1:
		return "", "", parts[0]
	case 2:
		return "", parts[0], parts[1]
	default:
		return strings.Join(parts[:len(parts)-2], "."), parts[len(parts)-2], parts[len(parts)-1]
	}
}

func splitQualifiedName(raw string) []string {
	var parts []string
	for _, part := range strings.Split(raw, ".") {
		part = trimIdentifier(part)
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// trimIdentifier removes SQL-style identifier delimiters: [name], "name", `name`.
func trimIdentifier(part string) string {
	part = strings.TrimSpace(part)
	for len(part) >= 2 {
		first, last := part[0], part[len(part)-1]
		if (first == '[' && last == ']') || (first == '"' && last == '"') || (first == '`' && last == '`') {
			part = strings.TrimSpace(part[1 : len(part)-1])
			continue
		}
		break
	}
	return part
}

// displayName joins non-empty qualification parts with dots, preserving case.
func displayName(container, namespace, name string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{container, namespace, name} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ".")
}
