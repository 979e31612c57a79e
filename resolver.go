package propedit

import (
	"fmt"
	"reflect"
)

// walkState carries the mutable cursor of one resolve call.
type walkState struct {
	target *ResolvedTarget
	cur    reflect.Value // current scope, a struct value
}

// resolve walks a parsed path from root to a ResolvedTarget. Resolution
// is side-effect free and computes fresh addresses on every call.
func (e *Engine) resolve(root any, expr *PathExpression) (*ResolvedTarget, error) {
	tgt := &ResolvedTarget{Entity: root, Path: expr.Original}

	var cur reflect.Value
	if expr.SlotRooted {
		slotted, ok := root.(Slotted)
		if !ok || slotted.Slot() == nil {
			return nil, newNotFoundError("resolve", expr.Original, "widget has no slot attachment")
		}
		tgt.Slot = slotted.Slot()
		tgt.Family = e.familyFor(tgt.Slot)
		cur = reflect.ValueOf(tgt.Slot)
	} else {
		cur = reflect.ValueOf(root)
		if !cur.IsValid() || cur.Kind() != reflect.Pointer || cur.IsNil() {
			return nil, newUnsupportedError("resolve", expr.Original, "root must be a non-nil pointer to a widget")
		}
	}

	st := &walkState{target: tgt, cur: cur}
	for i, seg := range expr.Segments {
		final := i == len(expr.Segments)-1

		if err := st.openScope(expr.Original, seg); err != nil {
			return nil, err
		}

		// Escape hatches run in a fixed order before ordinary lookup.
		matched := false
		for _, hook := range resolveHooks {
			done, err := hook(e, st, seg, i == 0, final)
			if err != nil {
				return nil, err
			}
			if done {
				matched = true
				break
			}
		}
		if matched {
			return tgt, nil
		}

		fd, err := e.lookupField(st, expr.Original, seg)
		if err != nil {
			return nil, err
		}
		fv := st.cur.FieldByIndex(fd.Index)

		if final {
			if err := e.finishAt(st, seg, fd, fv); err != nil {
				return nil, err
			}
			return tgt, nil
		}
		if err := e.descend(st, seg, fd, fv); err != nil {
			return nil, err
		}
	}

	// Unreachable: the parser guarantees at least one segment.
	return nil, newNotFoundError("resolve", expr.Original, "no segments to resolve")
}

// openScope normalizes the cursor before a lookup: pointers and
// interfaces are dereferenced so the next lookup sees a struct. A nil
// reference mid-path is NotFound.
func (st *walkState) openScope(path string, seg Segment) error {
	for {
		switch st.cur.Kind() {
		case reflect.Pointer, reflect.Interface:
			if st.cur.IsNil() {
				return newNotFoundError("resolve", path,
					fmt.Sprintf("null reference before segment '%s'", seg.Name))
			}
			st.cur = st.cur.Elem()
		case reflect.Struct:
			return nil
		default:
			return newUnsupportedError("resolve", path,
				fmt.Sprintf("cannot look up '%s' in %s scope", seg.Name, st.cur.Kind()))
		}
	}
}

// lookupField performs ordinary field lookup with the alias retry, and
// composes the NotFound diagnostic when both fail.
func (e *Engine) lookupField(st *walkState, path string, seg Segment) (*FieldDescriptor, error) {
	owner := st.cur.Type()
	if fd, ok := e.provider.Descriptor(owner, seg.Name); ok {
		return fd, nil
	}
	if canonical, ok := e.aliases[seg.Name]; ok {
		if fd, ok := e.provider.Descriptor(owner, canonical); ok {
			return fd, nil
		}
	}

	if st.target.Slot != nil {
		family := "unknown"
		var virtuals []string
		if st.target.Family != nil {
			family = st.target.Family.Name()
			virtuals = st.target.Family.VirtualProperties()
		}
		return nil, newNotFoundError("resolve", path,
			fmt.Sprintf("slot family %s has no property '%s'", family, seg.Name)).
			WithHints(virtuals...)
	}

	var names []string
	for _, fd := range e.provider.Fields(owner) {
		names = append(names, fd.Name)
	}
	return nil, newNotFoundError("resolve", path,
		fmt.Sprintf("%s has no field '%s'", owner.Name(), seg.Name)).
		WithHints(names...)
}

// finishAt terminates the walk at the final segment, honoring the
// end-of-path addressing rules of each container category.
func (e *Engine) finishAt(st *walkState, seg Segment, fd *FieldDescriptor, fv reflect.Value) error {
	tgt := st.target
	path := tgt.Path

	switch seg.Kind {
	case IndexNone:
		tgt.Field = fd
		tgt.Value = fv
		return nil

	case IndexNumeric:
		switch fd.Category {
		case CategoryArray:
			if seg.Index >= fv.Len() {
				return newRangeError("resolve", path,
					fmt.Sprintf("index %d out of range for '%s' of length %d", seg.Index, fd.Name, fv.Len()))
			}
			tgt.Field = elementDescriptor(fd, fd.Type.Elem(), e.enums)
			tgt.Value = fv.Index(seg.Index)
			return nil
		case CategoryMap:
			return e.enterMapEntry(st, seg, fd, fv, true)
		case CategorySet:
			return newUnsupportedError("resolve", path,
				fmt.Sprintf("set field '%s' elements are not addressable", fd.Name))
		default:
			return newPathError(path,
				fmt.Sprintf("segment '%s' does not accept an index", seg.Name))
		}

	case IndexKeyed:
		switch fd.Category {
		case CategoryMap:
			return e.enterMapEntry(st, seg, fd, fv, true)
		case CategoryArray:
			return newMismatchError("resolve", path,
				fmt.Sprintf("list field '%s' requires a numeric index, got key '%s'", fd.Name, seg.Key))
		case CategorySet:
			return newUnsupportedError("resolve", path,
				fmt.Sprintf("set field '%s' elements are not addressable", fd.Name))
		default:
			return newPathError(path,
				fmt.Sprintf("segment '%s' does not accept a key", seg.Name))
		}
	}
	return newPathError(path, fmt.Sprintf("segment '%s' has an unknown index kind", seg.Name))
}

// descend continues the walk through a mid-path segment. Only composite
// categories can be traversed into.
func (e *Engine) descend(st *walkState, seg Segment, fd *FieldDescriptor, fv reflect.Value) error {
	path := st.target.Path

	switch fd.Category {
	case CategoryStruct:
		if seg.Kind != IndexNone {
			return newPathError(path, fmt.Sprintf("segment '%s' does not accept an index", seg.Name))
		}
		st.cur = fv
		return nil

	case CategoryObject:
		if seg.Kind != IndexNone {
			return newPathError(path, fmt.Sprintf("segment '%s' does not accept an index", seg.Name))
		}
		// openScope dereferences on the next iteration; a nil reference
		// fails there with the next segment named.
		st.cur = fv
		return nil

	case CategoryArray:
		switch seg.Kind {
		case IndexNone:
			return newPathError(path,
				fmt.Sprintf("list field '%s' requires an index before deeper traversal", fd.Name))
		case IndexKeyed:
			return newMismatchError("resolve", path,
				fmt.Sprintf("list field '%s' requires a numeric index, got key '%s'", fd.Name, seg.Key))
		}
		if seg.Index >= fv.Len() {
			return newRangeError("resolve", path,
				fmt.Sprintf("index %d out of range for '%s' of length %d", seg.Index, fd.Name, fv.Len()))
		}
		st.cur = fv.Index(seg.Index)
		return nil

	case CategoryMap:
		if seg.Kind == IndexNone {
			return newPathError(path,
				fmt.Sprintf("dictionary field '%s' requires a key before deeper traversal", fd.Name))
		}
		return e.enterMapEntry(st, seg, fd, fv, false)

	case CategorySet:
		return newUnsupportedError("resolve", path,
			fmt.Sprintf("cannot traverse into set field '%s'", fd.Name))

	default:
		return newUnsupportedError("resolve", path,
			fmt.Sprintf("cannot traverse into non-composite field '%s'", fd.Name))
	}
}

// enterMapEntry addresses one dictionary entry. The native key is
// constructed from the segment's literal text per the declared key
// category, and entries are linear-scanned for an exact match. Because Go
// map entries are not addressable, the entry is copied into fresh storage
// and a write-back step is recorded for the mutation path.
func (e *Engine) enterMapEntry(st *walkState, seg Segment, fd *FieldDescriptor, fv reflect.Value, final bool) error {
	tgt := st.target
	path := tgt.Path

	literal := seg.Key
	if seg.Kind == IndexNumeric {
		literal = fmt.Sprintf("%d", seg.Index)
	}

	key, err := buildMapKey(fd.Type.Key(), literal)
	if err != nil {
		return newUnsupportedError("resolve", path,
			fmt.Sprintf("dictionary '%s': %s", fd.Name, err))
	}

	var entry reflect.Value
	found := false
	for _, existing := range fv.MapKeys() {
		if existing.Interface() == key.Interface() {
			entry = fv.MapIndex(existing)
			key = existing
			found = true
			break
		}
	}
	if !found {
		return newRangeError("resolve", path,
			fmt.Sprintf("dictionary '%s' has no entry for key '%s'", fd.Name, literal))
	}

	copied := reflect.New(fd.Type.Elem()).Elem()
	copied.Set(entry)
	tgt.writebacks = append(tgt.writebacks, writeback{m: fv, key: key, elem: copied})

	if final {
		tgt.Field = elementDescriptor(fd, fd.Type.Elem(), e.enums)
		tgt.Value = copied
		return nil
	}
	st.cur = copied
	return nil
}

// buildMapKey constructs a native dictionary key from literal path text.
func buildMapKey(keyType reflect.Type, literal string) (reflect.Value, error) {
	switch categorize(keyType, nil) {
	case CategoryString:
		key := reflect.New(keyType).Elem()
		key.SetString(literal)
		return key, nil
	case CategoryInt:
		n, ok := ConvertToInt64(literal)
		if !ok {
			return reflect.Value{}, fmt.Errorf("key '%s' is not a valid %s", literal, keyType)
		}
		key := reflect.New(keyType).Elem()
		switch keyType.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if n < 0 {
				return reflect.Value{}, fmt.Errorf("key '%s' is not a valid %s", literal, keyType)
			}
			key.SetUint(uint64(n))
		default:
			key.SetInt(n)
		}
		return key, nil
	default:
		return reflect.Value{}, fmt.Errorf("unsupported key category %s", categorize(keyType, nil))
	}
}
