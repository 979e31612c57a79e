package propedit

import (
	"fmt"
	"slices"
)

// Text is the localized-text field category. The engine treats it as a
// distinct category so tooling can route it through translation, but the
// external representation is a plain string.
type Text string

// Color is an RGBA color with float channels in [0,1]. Rich conversion
// accepts a 4-element array, a hex string, a named color, or a
// channel-keyed object; reads always canonicalize to the 4-element array.
type Color struct {
	R, G, B, A float32
}

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float32
}

// Anchors are the min/max anchor fractions of a canvas-placed widget.
type Anchors struct {
	Min, Max Vec2
}

// Margin is a four-edge inset. Array form uses the fixed order
// left, top, right, bottom.
type Margin struct {
	Left, Top, Right, Bottom float32
}

// AssetRef is a reference handle to a loadable resource.
type AssetRef struct {
	Path  string
	Asset any `prop:"-"`
}

// DrawMode selects how a brush paints its resource.
type DrawMode int

const (
	DrawNone DrawMode = iota
	DrawImage
	DrawBorder
	DrawRoundedBox
	drawModeMax // terminator sentinel, excluded from legal names
)

// TileMode selects how a brush repeats its resource.
type TileMode int

const (
	TileNone TileMode = iota
	TileHorizontal
	TileVertical
	TileBoth
)

// Visibility is the widget visibility byte enum.
type Visibility uint8

const (
	VisibilityVisible Visibility = iota
	VisibilityCollapsed
	VisibilityHidden
	VisibilityHitTestInvisible
	VisibilitySelfHitTestInvisible
)

// Brush is the paintable-brush record: a resource reference, draw and
// tiling modes, and a tint color. Rich conversion applies sub-fields in
// the fixed order Image, DrawAs, Tiling, TintColor.
type Brush struct {
	Image     AssetRef
	DrawAs    DrawMode
	Tiling    TileMode
	TintColor Color
}

// ButtonStyle is the multi-state style record. Rich conversion accepts a
// keyed object of state names, each parsed via the color rule into that
// state's brush tint.
type ButtonStyle struct {
	Normal  Brush
	Hovered Brush
	Pressed Brush
}

// defaultEnums registers the value vocabulary's enum name tables.
func defaultEnums() *EnumTable {
	et := NewEnumTable()
	et.RegisterWithTerminator(DrawMode(0), []string{
		"None", "Image", "Border", "RoundedBox", "DrawMode_MAX",
	})
	et.Register(TileMode(0), []string{
		"NoTile", "Horizontal", "Vertical", "Both",
	})
	et.Register(Visibility(0), []string{
		"Visible", "Collapsed", "Hidden", "HitTestInvisible", "SelfHitTestInvisible",
	})
	return et
}

// defaultAliases maps alternate spellings to canonical field names.
func defaultAliases() map[string]string {
	return map[string]string{
		"Colour":          "Color",
		"BackgroundColor": "Background",
		"Translation":     "Position",
		"ToolTip":         "Tooltip",
	}
}

// ChildList is an ordered sibling list. Built-in slots reorder through it
// to back the synthetic ChildOrder field.
type ChildList struct {
	Children []any
}

// indexOf finds a widget by identity.
func (cl *ChildList) indexOf(w any) int {
	return slices.IndexFunc(cl.Children, func(c any) bool { return c == w })
}

// SlotBase carries the container plumbing shared by the built-in slot
// types: the owning widget and the parent's ordered child list.
type SlotBase struct {
	Owner any        `prop:"-"`
	List  *ChildList `prop:"-"`
}

// ChildOrder returns the owner's ordinal among its siblings.
func (b *SlotBase) ChildOrder() int {
	if b.List == nil {
		return -1
	}
	return b.List.indexOf(b.Owner)
}

// SetChildOrder moves the owner to the given ordinal. The target is
// clamped to the sibling range; siblings between the old and new position
// shift by one.
func (b *SlotBase) SetChildOrder(order int) error {
	if b.List == nil {
		return fmt.Errorf("slot is not attached to a child list")
	}
	from := b.List.indexOf(b.Owner)
	if from < 0 {
		return fmt.Errorf("owner is not among its parent's children")
	}
	if order < 0 {
		order = 0
	}
	if max := len(b.List.Children) - 1; order > max {
		order = max
	}
	if order == from {
		return nil
	}
	w := b.List.Children[from]
	b.List.Children = slices.Delete(b.List.Children, from, from+1)
	b.List.Children = slices.Insert(b.List.Children, order, w)
	return nil
}

// CanvasSlot places a widget at an absolute position inside a canvas
// panel. All of its addressable properties are virtual: they go through
// the canvas family's accessors rather than reflected field lookup.
type CanvasSlot struct {
	SlotBase `prop:"-"`

	Alignment Vec2
	Anchors   Anchors
	Position  Vec2
	Size      Vec2
	AutoSize  bool
	ZOrder    int
}

// StackSlot places a widget in a stacking panel. Stacked children flow;
// only alignment is addressable.
type StackSlot struct {
	SlotBase `prop:"-"`

	Alignment Vec2
}

// canvasFamily exposes the full virtual property set of canvas slots.
type canvasFamily struct{}

func (canvasFamily) Name() string { return "Canvas" }

func (canvasFamily) VirtualProperties() []string {
	return []string{
		VirtualAlignment, VirtualAnchors, VirtualPosition,
		VirtualSize, VirtualAutoSize, VirtualZOrder,
	}
}

func (canvasFamily) ReadVirtual(slot any, name string) (any, error) {
	s, ok := slot.(*CanvasSlot)
	if !ok {
		return nil, fmt.Errorf("canvas family cannot read %T", slot)
	}
	switch name {
	case VirtualAlignment:
		return encodeVec2(s.Alignment), nil
	case VirtualAnchors:
		return map[string]any{
			"Min": encodeVec2(s.Anchors.Min),
			"Max": encodeVec2(s.Anchors.Max),
		}, nil
	case VirtualPosition:
		return encodeVec2(s.Position), nil
	case VirtualSize:
		return encodeVec2(s.Size), nil
	case VirtualAutoSize:
		return s.AutoSize, nil
	case VirtualZOrder:
		return int64(s.ZOrder), nil
	default:
		return nil, fmt.Errorf("canvas family has no virtual property '%s'", name)
	}
}

func (canvasFamily) WriteVirtual(slot any, name string, value ExternalValue) error {
	s, ok := slot.(*CanvasSlot)
	if !ok {
		return fmt.Errorf("canvas family cannot write %T", slot)
	}
	switch name {
	case VirtualAlignment:
		return decodeVec2Into(&s.Alignment, value)
	case VirtualAnchors:
		return decodeAnchorsInto(&s.Anchors, value)
	case VirtualPosition:
		return decodeVec2Into(&s.Position, value)
	case VirtualSize:
		return decodeVec2Into(&s.Size, value)
	case VirtualAutoSize:
		b, err := DecodeBool(value)
		if err != nil {
			return err
		}
		s.AutoSize = b
		return nil
	case VirtualZOrder:
		n, err := DecodeInt(value)
		if err != nil {
			return err
		}
		s.ZOrder = int(n)
		return nil
	default:
		return fmt.Errorf("canvas family has no virtual property '%s'", name)
	}
}

// stackFamily exposes alignment only; position and size are computed by
// the stacking layout and are not addressable.
type stackFamily struct{}

func (stackFamily) Name() string { return "Stack" }

func (stackFamily) VirtualProperties() []string {
	return []string{VirtualAlignment}
}

func (stackFamily) ReadVirtual(slot any, name string) (any, error) {
	s, ok := slot.(*StackSlot)
	if !ok {
		return nil, fmt.Errorf("stack family cannot read %T", slot)
	}
	if name != VirtualAlignment {
		return nil, fmt.Errorf("stack family has no virtual property '%s'", name)
	}
	return encodeVec2(s.Alignment), nil
}

func (stackFamily) WriteVirtual(slot any, name string, value ExternalValue) error {
	s, ok := slot.(*StackSlot)
	if !ok {
		return fmt.Errorf("stack family cannot write %T", slot)
	}
	if name != VirtualAlignment {
		return fmt.Errorf("stack family has no virtual property '%s'", name)
	}
	return decodeVec2Into(&s.Alignment, value)
}

func encodeVec2(v Vec2) []any {
	return []any{float64(v.X), float64(v.Y)}
}

func decodeVec2Into(dst *Vec2, value ExternalValue) error {
	v, err := DecodeVec2(value)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func decodeAnchorsInto(dst *Anchors, value ExternalValue) error {
	node, ok := value.raw().(map[string]any)
	if !ok {
		return fmt.Errorf("anchors require an object with Min and Max")
	}
	out := *dst
	if raw, ok := node["Min"]; ok {
		if err := decodeVec2Into(&out.Min, Node(raw)); err != nil {
			return err
		}
	}
	if raw, ok := node["Max"]; ok {
		if err := decodeVec2Into(&out.Max, Node(raw)); err != nil {
			return err
		}
	}
	*dst = out
	return nil
}
