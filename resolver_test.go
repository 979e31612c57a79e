package propedit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveFields(t *testing.T) {
	h := NewTestHelper(t)
	e, _, _ := newTestEngine()

	t.Run("top-level field", func(t *testing.T) {
		w := newTestWidget()
		tgt, err := e.Resolve(w, "Name")
		h.AssertNoError(err)
		h.AssertEqual("Name", tgt.Field.Name)
		h.AssertEqual(CategoryString, tgt.Field.Category)
	})

	t.Run("nested record field", func(t *testing.T) {
		w := newTestWidget()
		tgt, err := e.Resolve(w, "Background.TintColor")
		h.AssertNoError(err)
		h.AssertEqual("TintColor", tgt.Field.Name)
		h.AssertEqual(CategoryStruct, tgt.Field.Category)
	})

	t.Run("through object reference", func(t *testing.T) {
		w := newTestWidget()
		w.Child = newTestWidget()
		w.Child.Name = "inner"
		tgt, err := e.Resolve(w, "Child.Name")
		h.AssertNoError(err)
		h.AssertEqual("inner", tgt.Value.String())
	})

	t.Run("nil reference mid-path", func(t *testing.T) {
		w := newTestWidget()
		_, err := e.Resolve(w, "Child.Name")
		h.AssertErrorIs(err, ErrNotFound)
		h.AssertContains(err.Error(), "null reference before segment 'Name'")
	})

	t.Run("unknown field carries hints", func(t *testing.T) {
		w := newTestWidget()
		_, err := e.Resolve(w, "Nope")
		h.AssertErrorIs(err, ErrNotFound)
		var pe *PropError
		require.ErrorAs(t, err, &pe)
		h.AssertContains(pe.Error(), "has no field 'Nope'")
		require.NotEmpty(t, pe.Hints)
	})

	t.Run("alias retry after exact miss", func(t *testing.T) {
		w := newTestWidget()
		tgt, err := e.Resolve(w, "Colour")
		h.AssertNoError(err)
		h.AssertEqual("Color", tgt.Field.Name)
	})

	t.Run("root must be a pointer", func(t *testing.T) {
		_, err := e.Resolve(*newTestWidget(), "Name")
		h.AssertErrorIs(err, ErrUnsupported)
	})
}

func TestResolveContainers(t *testing.T) {
	h := NewTestHelper(t)
	e, _, _ := newTestEngine()

	t.Run("list element by index", func(t *testing.T) {
		w := newTestWidget()
		tgt, err := e.Resolve(w, "Items[1]")
		h.AssertNoError(err)
		h.AssertEqual("b", tgt.Value.String())
		h.AssertEqual(CategoryString, tgt.Field.Category)
	})

	t.Run("list index out of range", func(t *testing.T) {
		w := newTestWidget()
		_, err := e.Resolve(w, "Items[3]")
		h.AssertErrorIs(err, ErrOutOfRange)
	})

	t.Run("key on a list is a mismatch", func(t *testing.T) {
		w := newTestWidget()
		_, err := e.Resolve(w, "Items[first]")
		h.AssertErrorIs(err, ErrTypeMismatch)
		h.AssertContains(err.Error(), "requires a numeric index")
	})

	t.Run("bare list cannot be traversed deeper", func(t *testing.T) {
		w := newTestWidget()
		_, err := e.Resolve(w, "Items.Length")
		h.AssertErrorIs(err, ErrInvalidPath)
	})

	t.Run("index on a scalar is an invalid path", func(t *testing.T) {
		w := newTestWidget()
		_, err := e.Resolve(w, "Name[0]")
		h.AssertErrorIs(err, ErrInvalidPath)
		h.AssertContains(err.Error(), "does not accept an index")
	})

	t.Run("dictionary entry by exact key", func(t *testing.T) {
		w := newTestWidget()
		tgt, err := e.Resolve(w, "Lookup[alpha]")
		h.AssertNoError(err)
		h.AssertEqual(int64(1), tgt.Value.Int())
	})

	t.Run("dictionary match is case sensitive", func(t *testing.T) {
		w := newTestWidget()
		_, err := e.Resolve(w, "Lookup[Alpha]")
		h.AssertErrorIs(err, ErrOutOfRange)
		h.AssertContains(err.Error(), "no entry for key 'Alpha'")
	})

	t.Run("numeric token keys an integer dictionary", func(t *testing.T) {
		w := newTestWidget()
		tgt, err := e.Resolve(w, "Counts[7]")
		h.AssertNoError(err)
		h.AssertEqual("seven", tgt.Value.String())
	})

	t.Run("bare dictionary cannot be traversed deeper", func(t *testing.T) {
		w := newTestWidget()
		_, err := e.Resolve(w, "Lookup.alpha")
		h.AssertErrorIs(err, ErrInvalidPath)
		h.AssertContains(err.Error(), "requires a key")
	})

	t.Run("set members are not addressable", func(t *testing.T) {
		w := newTestWidget()
		_, err := e.Resolve(w, "Tags[ui]")
		h.AssertErrorIs(err, ErrUnsupported)
	})

	t.Run("traversal into dictionary records", func(t *testing.T) {
		w := newTestWidget()
		tgt, err := e.Resolve(w, "Shapes[big].X")
		h.AssertNoError(err)
		h.AssertEqual("X", tgt.Field.Name)
		h.AssertEqual(float64(3), tgt.Value.Float())
	})
}

func TestResolveSlotPaths(t *testing.T) {
	h := NewTestHelper(t)
	e, _, _ := newTestEngine()

	t.Run("virtual property on a canvas slot", func(t *testing.T) {
		w := newTestWidget()
		attachToCanvas(w)
		tgt, err := e.Resolve(w, "Slot.Position")
		h.AssertNoError(err)
		h.AssertEqual(VirtualPosition, tgt.Virtual)
		h.AssertEqual("Canvas", tgt.Family.Name())
	})

	t.Run("virtual missing from family names the family", func(t *testing.T) {
		w := newTestWidget()
		attachToStack(w)
		_, err := e.Resolve(w, "Slot.Position")
		h.AssertErrorIs(err, ErrNotFound)
		h.AssertContains(err.Error(), "slot family Stack has no property 'Position'")
	})

	t.Run("virtuals are leaves", func(t *testing.T) {
		w := newTestWidget()
		attachToCanvas(w)
		_, err := e.Resolve(w, "Slot.Position.X")
		h.AssertErrorIs(err, ErrNotFound)
	})

	t.Run("synthetic child order", func(t *testing.T) {
		w := newTestWidget()
		attachToCanvas(w)
		tgt, err := e.Resolve(w, "Slot.ChildOrder")
		h.AssertNoError(err)
		h.AssertEqual(SyntheticChildOrder, tgt.Synthetic)
	})

	t.Run("child order rejects an index", func(t *testing.T) {
		w := newTestWidget()
		attachToCanvas(w)
		_, err := e.Resolve(w, "Slot.ChildOrder[0]")
		h.AssertErrorIs(err, ErrInvalidPath)
	})

	t.Run("unattached widget has no slot", func(t *testing.T) {
		w := newTestWidget()
		_, err := e.Resolve(w, "Slot.Position")
		h.AssertErrorIs(err, ErrNotFound)
		h.AssertContains(err.Error(), "no slot attachment")
	})
}

func TestResolveIsRepeatable(t *testing.T) {
	h := NewTestHelper(t)
	e, _, _ := newTestEngine()
	w := newTestWidget()

	first, err := e.Resolve(w, "Opacity")
	h.AssertNoError(err)
	second, err := e.Resolve(w, "Opacity")
	h.AssertNoError(err)

	// Resolution is read-only; repeated walks land on the same storage.
	h.AssertEqual(first.Value.Addr().Pointer(), second.Value.Addr().Pointer())
	h.AssertEqual(0.5, w.Opacity)
}
