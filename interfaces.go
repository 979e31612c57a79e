package propedit

import "reflect"

// TypeProvider answers field existence and metadata queries for the
// resolver. Implementations must be side-effect free; the engine queries
// but never defines reflection metadata.
type TypeProvider interface {
	// Descriptor looks up a direct field of owner by exact name.
	Descriptor(owner reflect.Type, name string) (*FieldDescriptor, bool)

	// Fields lists the addressable fields of owner in declaration order.
	Fields(owner reflect.Type) []*FieldDescriptor
}

// SlotFamily performs family-specific access to virtual slot properties:
// addressable values backed by bespoke accessor logic rather than a
// reflected field. Availability varies by family.
type SlotFamily interface {
	// Name is the family's user-visible name, used in diagnostics.
	Name() string

	// VirtualProperties lists the virtual property names this family
	// supports, in a stable order.
	VirtualProperties() []string

	// ReadVirtual returns the current value of a virtual property in
	// external representation.
	ReadVirtual(slot any, name string) (any, error)

	// WriteVirtual coerces value and applies it to a virtual property.
	WriteVirtual(slot any, name string, value ExternalValue) error
}

// Slotted is implemented by widgets placed inside a parent container.
// Slot returns the attachment object, or nil when the widget is detached.
type Slotted interface {
	Slot() any
}

// ChildOrdered is implemented by slots whose parent container keeps an
// ordered child list. Backs the synthetic ChildOrder field.
type ChildOrdered interface {
	// ChildOrder returns the widget's current ordinal among its siblings.
	ChildOrder() int

	// SetChildOrder moves the widget to the given ordinal, shifting the
	// siblings between the old and new position by one.
	SetChildOrder(int) error
}

// AssetLoader resolves a resource path to a loaded asset. Used only by
// the brush conversion rule; loads are synchronous.
type AssetLoader interface {
	Load(path string) (any, error)
}

// ChangeSink receives mutation notifications. StructuralChanged fires for
// mutations affecting generated identifiers or ordinal arrangement,
// ValueChanged for everything else; RefreshViews fires after either so
// live views of the owning document can repaint.
type ChangeSink interface {
	StructuralChanged(entity any)
	ValueChanged(entity any)
	RefreshViews(entity any)
}

// AssetLoaderFunc adapts a function to the AssetLoader interface.
type AssetLoaderFunc func(path string) (any, error)

func (f AssetLoaderFunc) Load(path string) (any, error) { return f(path) }

// nopSink discards all notifications.
type nopSink struct{}

func (nopSink) StructuralChanged(any) {}
func (nopSink) ValueChanged(any)      {}
func (nopSink) RefreshViews(any)      {}
