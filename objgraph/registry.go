package objgraph

import (
	"fmt"
	"strings"
)

// RawObject is one object reference as supplied by an ingestor, before
// normalization. QualifiedName may carry up to container.namespace.name
// qualification; Source identifies the catalog it was seen in.
type RawObject struct {
	QualifiedName string
	Kind          string
	Source        string
	Container     string
}

// AmbiguousError reports a partial name that matched more than one
// registered node within its source/container scope. Callers record it as
// a diagnostic rather than guessing between candidates.
type AmbiguousError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous name %q matches %s", e.Name, strings.Join(e.Candidates, ", "))
}

// NotRegisteredError is returned by Resolve when no registered node matches.
type NotRegisteredError struct {
	Name string
}

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("no registered object matches %q", e.Name)
}

// Registry owns the authoritative mapping from normalized object identity to
// dense internal IDs. It only ever grows; its lifetime is one analysis run.
type Registry struct {
	nodes      []Node
	byIdentity map[string]NodeID
	byName     map[string][]NodeID
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byIdentity: make(map[string]NodeID),
		byName:     make(map[string][]NodeID),
	}
}

// Register normalizes a raw object reference and returns the internal ID for
// its identity, allocating a new node if the identity has not been seen.
// Two records describing the same object at the same qualification depth
// (differing only in case or delimiters) yield the same ID. A later
// registration with a concrete kind upgrades a node first seen as unknown.
func (r *Registry) Register(obj RawObject) (NodeID, error) {
	container, namespace, name := ParseQualifiedName(obj.QualifiedName)
	if name == "" {
		return 0, fmt.Errorf("empty qualified name in source %q", obj.Source)
	}
	if container == "" {
		container = obj.Container
	}

	key := NodeKey{
		Source:    strings.ToLower(strings.TrimSpace(obj.Source)),
		Container: strings.ToLower(container),
		Namespace: strings.ToLower(namespace),
		Name:      strings.ToLower(name),
		Kind:      NormalizeKind(obj.Kind),
	}

	identity := key.SortKey()
	if id, ok := r.byIdentity[identity]; ok {
		if r.nodes[id].Key.Kind == KindUnknown && key.Kind != KindUnknown {
			r.nodes[id].Key.Kind = key.Kind
		}
		return id, nil
	}

	id := NodeID(len(r.nodes))
	r.nodes = append(r.nodes, Node{
		ID:      id,
		Key:     key,
		Display: displayName(container, namespace, name),
	})
	r.byIdentity[identity] = id

	nameScope := key.Source + "\x00" + key.Container + "\x00" + key.Name
	r.byName[nameScope] = append(r.byName[nameScope], id)

	return id, nil
}

// Resolve looks up a possibly partially-qualified name against registered
// nodes within the given source/container scope. An exact namespace+name
// match wins; an unqualified name falls back to a name-only match iff
// exactly one candidate exists. Ambiguous partial matches return an
// *AmbiguousError, unknown names a *NotRegisteredError.
func (r *Registry) Resolve(qualifiedName, source, container string) (NodeID, error) {
	nameContainer, namespace, name := ParseQualifiedName(qualifiedName)
	if name == "" {
		return 0, fmt.Errorf("empty qualified name")
	}
	if nameContainer != "" {
		container = nameContainer
	}

	source = strings.ToLower(strings.TrimSpace(source))
	container = strings.ToLower(container)

	if namespace != "" {
		identity := NodeKey{
			Source:    source,
			Container: container,
			Namespace: strings.ToLower(namespace),
			Name:      strings.ToLower(name),
		}.SortKey()
		if id, ok := r.byIdentity[identity]; ok {
			return id, nil
		}
		return 0, &NotRegisteredError{Name: qualifiedName}
	}

	nameScope := source + "\x00" + container + "\x00" + strings.ToLower(name)
	candidates := r.byName[nameScope]
	switch len(candidates) {
	case 0:
		return 0, &NotRegisteredError{Name: qualifiedName}
	case 1:
		return candidates[0], nil
	default:
		displays := make([]string, len(candidates))
		for i, id := range candidates {
			displays[i] = r.nodes[id].Display
		}
		return 0, &AmbiguousError{Name: qualifiedName, Candidates: displays}
	}
}

// Node returns the node for an internal ID. The ID must have come from this
// registry.
func (r *Registry) Node(id NodeID) Node {
	return r.nodes[id]
}

// Len reports the number of registered nodes.
func (r *Registry) Len() int {
	return len(r.nodes)
}
