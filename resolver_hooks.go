package propedit

import "fmt"

// resolveHook is one escape hatch tried before ordinary field lookup.
// Returns done=true when the hook fully resolved the segment. Hooks keep
// the core walk closed: new attachment families or synthetic fields plug
// in here without touching the category branches.
type resolveHook func(e *Engine, st *walkState, seg Segment, first, final bool) (done bool, err error)

// resolveHooks run in a fixed order: the synthetic sibling ordinal first,
// then family virtual properties. Aliasing runs inside lookupField since
// it only applies once ordinary lookup has failed.
var resolveHooks = []resolveHook{
	syntheticOrdinalHook,
	virtualPropertyHook,
}

// syntheticOrdinalHook resolves the reserved sibling-ordinal name. It is
// addressable like a field but derived from the parent container's child
// order: slot root, final segment only, no field lookup.
func syntheticOrdinalHook(e *Engine, st *walkState, seg Segment, first, final bool) (bool, error) {
	if st.target.Slot == nil || seg.Name != ChildOrderName {
		return false, nil
	}
	if seg.Kind != IndexNone {
		return false, newPathError(st.target.Path,
			fmt.Sprintf("segment '%s' does not accept an index", seg.Name))
	}
	if !final {
		return false, newNotFoundError("resolve", st.target.Path,
			fmt.Sprintf("'%s' is a leaf property and cannot be traversed into", ChildOrderName))
	}
	st.target.Synthetic = SyntheticChildOrder
	return true, nil
}

// virtualPropertyHook resolves family virtual properties: slot root,
// first segment, availability decided by the slot's family. Virtual
// values are leaves; a deeper path through one is NotFound.
func virtualPropertyHook(e *Engine, st *walkState, seg Segment, first, final bool) (bool, error) {
	if st.target.Slot == nil || !first || st.target.Family == nil {
		return false, nil
	}
	if !hasVirtual(st.target.Family, seg.Name) {
		return false, nil
	}
	if seg.Kind != IndexNone {
		return false, newPathError(st.target.Path,
			fmt.Sprintf("segment '%s' does not accept an index", seg.Name))
	}
	if !final {
		return false, newNotFoundError("resolve", st.target.Path,
			fmt.Sprintf("virtual property '%s' is a leaf and cannot be traversed into", seg.Name))
	}
	st.target.Virtual = seg.Name
	return true, nil
}

func hasVirtual(family SlotFamily, name string) bool {
	for _, prop := range family.VirtualProperties() {
		if prop == name {
			return true
		}
	}
	return false
}
