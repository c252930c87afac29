package gazeta

import "strings"

// MetaIdentifier is the reserved child key that preserves a value when a
// path holds both a value and children, as in og:image plus og:image:width.
const MetaIdentifier = "identifier"

// MetaNode is a node of the document metadata tree. It is either a
// MetaLeaf carrying a value or a MetaNamespace carrying named children.
type MetaNode interface {
	metaNode()
}

// MetaLeaf is a metadata value.
type MetaLeaf string

func (MetaLeaf) metaNode() {}

// String returns the leaf value.
func (l MetaLeaf) String() string { return string(l) }

// MetaNamespace is a group of metadata nodes keyed by name segment, such
// as the children of "og" or "twitter".
type MetaNamespace map[string]MetaNode

func (MetaNamespace) metaNode() {}

// splitMetaKey splits a meta tag name on colons into path segments, so
// og:image:width nests while dotted names like DC.date.issued stay whole.
func splitMetaKey(key string) []string {
	raw := strings.Split(key, ":")
	parts := raw[:0]
	for _, p := range raw {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// Insert folds one meta tag into the tree. The key is split into path
// segments and intermediate namespaces are created on demand. When a
// segment already holds a leaf and children must be attached to it, or a
// value arrives at a segment that already holds children, the value is
// kept under the MetaIdentifier child so no data is lost. A plain leaf at
// the same path is last-write-wins.
func (ns MetaNamespace) Insert(key, value string) {
	parts := splitMetaKey(key)
	if len(parts) == 0 {
		return
	}
	cur := ns
	for i, part := range parts {
		if i == len(parts)-1 {
			if existing, ok := cur[part].(MetaNamespace); ok {
				existing[MetaIdentifier] = MetaLeaf(value)
				return
			}
			cur[part] = MetaLeaf(value)
			return
		}
		switch existing := cur[part].(type) {
		case MetaNamespace:
			cur = existing
		case MetaLeaf:
			next := MetaNamespace{MetaIdentifier: existing}
			cur[part] = next
			cur = next
		default:
			next := MetaNamespace{}
			cur[part] = next
			cur = next
		}
	}
}

// Get returns the node at the given path.
func (ns MetaNamespace) Get(path ...string) (MetaNode, bool) {
	if len(path) == 0 {
		return nil, false
	}
	cur := ns
	for i, part := range path {
		node, ok := cur[part]
		if !ok {
			return nil, false
		}
		if i == len(path)-1 {
			return node, true
		}
		cur, ok = node.(MetaNamespace)
		if !ok {
			return nil, false
		}
	}
	return nil, false
}

// Leaf returns the value at the given path, or "" when the path is absent.
// A namespace at the path yields its MetaIdentifier value, so a promoted
// leaf like og:image stays reachable under its original path.
func (ns MetaNamespace) Leaf(path ...string) string {
	node, ok := ns.Get(path...)
	if !ok {
		return ""
	}
	switch n := node.(type) {
	case MetaLeaf:
		return string(n)
	case MetaNamespace:
		if id, ok := n[MetaIdentifier].(MetaLeaf); ok {
			return string(id)
		}
	}
	return ""
}

// Namespace returns the namespace at the given path, or nil when the path
// is absent or holds a leaf.
func (ns MetaNamespace) Namespace(path ...string) MetaNamespace {
	node, ok := ns.Get(path...)
	if !ok {
		return nil
	}
	sub, _ := node.(MetaNamespace)
	return sub
}
