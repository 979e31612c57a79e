package propedit

import (
	"fmt"
	"reflect"
	"strings"
)

// IndexKind identifies the addressing mode of a path segment.
type IndexKind int

const (
	IndexNone IndexKind = iota
	IndexNumeric
	IndexKeyed
)

// Segment is one step of a parsed property path: a field name with an
// optional numeric index or map key.
type Segment struct {
	Name  string
	Kind  IndexKind
	Index int    // valid when Kind == IndexNumeric
	Key   string // valid when Kind == IndexKeyed, taken verbatim
}

func (s Segment) String() string {
	switch s.Kind {
	case IndexNumeric:
		return fmt.Sprintf("%s[%d]", s.Name, s.Index)
	case IndexKeyed:
		return fmt.Sprintf("%s[%s]", s.Name, s.Key)
	default:
		return s.Name
	}
}

// PathExpression is a parsed property path. SlotRooted paths address the
// widget's slot attachment instead of the widget itself.
type PathExpression struct {
	Segments   []Segment
	SlotRooted bool
	Original   string
}

func (p *PathExpression) String() string {
	parts := make([]string, 0, len(p.Segments)+1)
	if p.SlotRooted {
		parts = append(parts, SlotRootName)
	}
	for _, s := range p.Segments {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, ".")
}

// ExternalKind tags the variant of an ExternalValue.
type ExternalKind int

const (
	KindAbsent ExternalKind = iota
	KindText
	KindNode
)

// ExternalValue is the caller-facing value representation: absent, a plain
// string, or a structured JSON-like node (map[string]any, []any, float64,
// bool, string, nil).
type ExternalValue struct {
	Kind ExternalKind
	Text string
	Node any
}

// Plain wraps a plain string value.
func Plain(s string) ExternalValue {
	return ExternalValue{Kind: KindText, Text: s}
}

// Node wraps a structured JSON-like node.
func Node(v any) ExternalValue {
	return ExternalValue{Kind: KindNode, Node: v}
}

// IsAbsent reports whether no value was supplied.
func (v ExternalValue) IsAbsent() bool {
	return v.Kind == KindAbsent
}

// raw returns the underlying representation for rules that accept both
// variants: the node tree, or the plain string as-is.
func (v ExternalValue) raw() any {
	if v.Kind == KindText {
		return v.Text
	}
	return v.Node
}

// FieldDescriptor carries the reflection metadata for one addressable
// field. Descriptors are read-only input produced by a TypeProvider.
type FieldDescriptor struct {
	Name     string
	Category FieldCategory
	Type     reflect.Type
	Index    []int // struct field index path within the owner

	Editable      bool
	Hidden        bool
	GenerationKey bool // participates in generated-identifier derivation

	Label   string // metadata category label
	Tooltip string

	Min, Max     *float64 // declared clamp bounds
	UIMin, UIMax *float64 // declared UI slider bounds

	EnumNames []string // legal names for enum categories, terminator excluded
}

// SyntheticKind identifies fields with no backing storage, computed from
// structural position.
type SyntheticKind int

const (
	SyntheticNone SyntheticKind = iota
	SyntheticChildOrder
)

// writeback re-installs a mutated copy of a map entry into its map.
// Needed because Go map entries are not addressable.
type writeback struct {
	m    reflect.Value
	key  reflect.Value
	elem reflect.Value
}

// ResolvedTarget is the outcome of walking a path from a root widget.
// Exactly one of Field, Synthetic, or Virtual identifies the variant.
// Targets hold raw storage addresses and must never be cached across
// calls; a structural mutation may relocate backing storage.
type ResolvedTarget struct {
	Entity any    // the widget the call addressed
	Path   string // original path text, for diagnostics

	// Field variant: a reflected field or container element.
	Field *FieldDescriptor
	Value reflect.Value // addressable storage for Field

	// Synthetic variant.
	Synthetic SyntheticKind

	// Virtual variant.
	Virtual string

	// Slot context, set for slot-rooted paths.
	Slot   any
	Family SlotFamily

	writebacks []writeback
}

// flush re-installs copied map entries after a successful mutation,
// innermost first.
func (t *ResolvedTarget) flush() {
	for i := len(t.writebacks) - 1; i >= 0; i-- {
		wb := t.writebacks[i]
		wb.m.SetMapIndex(wb.key, wb.elem)
	}
}

// OpKind identifies a structural collection-editing operation.
type OpKind int

const (
	OpClear OpKind = iota
	OpSet
	OpAppend
	OpInsert
	OpUpdateAt
	OpRemoveAt
)

var opKindNames = [...]string{"clear", "set", "append", "insert", "updateAt", "removeAt"}

func (k OpKind) String() string {
	if k < 0 || int(k) >= len(opKindNames) {
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
	return opKindNames[k]
}

// CollectionOperation is a structural edit request against a list field.
type CollectionOperation struct {
	Kind  OpKind
	Index int
	Value ExternalValue
}

// Constraints carries the declared editing bounds of a field. Absent
// bounds are omitted, not defaulted.
type Constraints struct {
	EnumValues []string `json:"enumValues,omitempty"`
	Min        *float64 `json:"min,omitempty"`
	Max        *float64 `json:"max,omitempty"`
	UIMin      *float64 `json:"uiMin,omitempty"`
	UIMax      *float64 `json:"uiMax,omitempty"`
	Length     *int     `json:"length,omitempty"`
}

// NestedHint names the inner types of composite fields so callers can
// build follow-up values without a second round trip.
type NestedHint struct {
	Record string `json:"record,omitempty"`
	Elem   string `json:"elem,omitempty"`
	Key    string `json:"key,omitempty"`
	Value  string `json:"value,omitempty"`
}

// SchemaReport describes a resolved field to a caller with no prior
// knowledge of the target's structure.
type SchemaReport struct {
	Type        string       `json:"type"`
	Editable    bool         `json:"editable"`
	Constraints *Constraints `json:"constraints,omitempty"`
	Nested      *NestedHint  `json:"nestedHint,omitempty"`
}

// ReadResult is the full read response: schema metadata plus the value in
// external representation.
type ReadResult struct {
	SchemaReport
	Value any `json:"value"`
}
