package propedit

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// readTarget encodes a resolved target into external representation.
func (e *Engine) readTarget(tgt *ResolvedTarget) (any, error) {
	switch {
	case tgt.Synthetic == SyntheticChildOrder:
		ordered, ok := tgt.Slot.(ChildOrdered)
		if !ok {
			return nil, newUnsupportedError("read", tgt.Path, "slot does not track child order")
		}
		return int64(ordered.ChildOrder()), nil

	case tgt.Virtual != "":
		value, err := tgt.Family.ReadVirtual(tgt.Slot, tgt.Virtual)
		if err != nil {
			return nil, newNotFoundError("read", tgt.Path, err.Error())
		}
		return value, nil

	default:
		return e.readValue(tgt.Field, tgt.Value, tgt.Path)
	}
}

// writeTarget coerces an external value into a resolved target and
// applies it. Map-entry copies are flushed only on success.
func (e *Engine) writeTarget(tgt *ResolvedTarget, value ExternalValue) error {
	switch {
	case tgt.Synthetic == SyntheticChildOrder:
		ordered, ok := tgt.Slot.(ChildOrdered)
		if !ok {
			return newUnsupportedError("write", tgt.Path, "slot does not track child order")
		}
		n, err := DecodeInt(value)
		if err != nil {
			return newMismatchError("write", tgt.Path, err.Error())
		}
		if err := ordered.SetChildOrder(int(n)); err != nil {
			return newUnsupportedError("write", tgt.Path, err.Error())
		}
		return nil

	case tgt.Virtual != "":
		if err := tgt.Family.WriteVirtual(tgt.Slot, tgt.Virtual, value); err != nil {
			return newMismatchError("write", tgt.Path, err.Error())
		}
		return nil

	default:
		if !tgt.Field.Editable {
			return newUnsupportedError("write", tgt.Path,
				fmt.Sprintf("field '%s' is read-only", tgt.Field.Name))
		}
		if err := e.writeValue(tgt.Field, tgt.Value, value, tgt.Path); err != nil {
			return err
		}
		tgt.flush()
		return nil
	}
}

// readValue encodes one field per its category. One arm per category so
// an unhandled addition fails loudly.
func (e *Engine) readValue(fd *FieldDescriptor, v reflect.Value, path string) (any, error) {
	switch fd.Category {
	case CategoryBool:
		return v.Bool(), nil

	case CategoryInt:
		return intOf(v), nil

	case CategoryFloat:
		return v.Float(), nil

	case CategoryString, CategoryText:
		return v.String(), nil

	case CategoryByteEnum, CategoryEnum:
		if name, ok := e.enums.NameOf(fd.Type, intOf(v)); ok {
			return name, nil
		}
		return intOf(v), nil

	case CategoryStruct:
		if rule, ok := e.rich.lookup(fd.Type); ok {
			return rule.Read(e.richContext(path), v), nil
		}
		return e.readRecord(fd, v, path)

	case CategoryObject:
		return referenceMarker(v), nil

	case CategoryArray:
		elemDesc := elementDescriptor(fd, fd.Type.Elem(), e.enums)
		out := make([]any, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			entry, err := e.readValue(elemDesc, v.Index(i), path)
			if err != nil {
				return nil, err
			}
			out = append(out, entry)
		}
		return out, nil

	case CategoryMap:
		valDesc := elementDescriptor(fd, fd.Type.Elem(), e.enums)
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			entry, err := e.readValue(valDesc, iter.Value(), path)
			if err != nil {
				return nil, err
			}
			out[keyString(iter.Key())] = entry
		}
		return out, nil

	case CategorySet:
		memberDesc := elementDescriptor(fd, fd.Type.Key(), e.enums)
		out := make([]any, 0, v.Len())
		for _, member := range v.MapKeys() {
			entry, err := e.readValue(memberDesc, member, path)
			if err != nil {
				return nil, err
			}
			out = append(out, entry)
		}
		// Set iteration order is unspecified; sort for a stable encoding.
		sort.Slice(out, func(i, j int) bool {
			return fmt.Sprint(out[i]) < fmt.Sprint(out[j])
		})
		return out, nil

	case CategoryInvalid:
		return nil, newUnsupportedError("read", path,
			fmt.Sprintf("field '%s' has unsupported type %s", fd.Name, fd.Type))
	}
	return nil, newUnsupportedError("read", path,
		fmt.Sprintf("field '%s' has unknown category", fd.Name))
}

// readRecord encodes a record generically: visible sub-fields by name.
func (e *Engine) readRecord(fd *FieldDescriptor, v reflect.Value, path string) (any, error) {
	out := make(map[string]any)
	for _, sub := range e.provider.Fields(fd.Type) {
		if sub.Hidden {
			continue
		}
		entry, err := e.readValue(sub, v.FieldByIndex(sub.Index), path)
		if err != nil {
			return nil, err
		}
		out[sub.Name] = entry
	}
	return out, nil
}

// writeValue coerces an external value into one field per its category.
func (e *Engine) writeValue(fd *FieldDescriptor, v reflect.Value, value ExternalValue, path string) error {
	switch fd.Category {
	case CategoryBool:
		b, ok := ConvertToBool(value.raw())
		if !ok {
			return newMismatchError("write", path,
				fmt.Sprintf("field '%s' expects a boolean, got %s", fd.Name, describeValue(value)))
		}
		v.SetBool(b)
		return nil

	case CategoryInt:
		n, ok := ConvertToInt64(value.raw())
		if !ok {
			return newMismatchError("write", path,
				fmt.Sprintf("field '%s' expects an integer, got %s", fd.Name, describeValue(value)))
		}
		return setInt(fd, v, n, path)

	case CategoryFloat:
		f, ok := ConvertToFloat64(value.raw())
		if !ok {
			return newMismatchError("write", path,
				fmt.Sprintf("field '%s' expects a number, got %s", fd.Name, describeValue(value)))
		}
		v.SetFloat(f)
		return nil

	case CategoryString, CategoryText:
		s, ok := ConvertToString(value.raw())
		if !ok {
			return newMismatchError("write", path,
				fmt.Sprintf("field '%s' expects a string, got %s", fd.Name, describeValue(value)))
		}
		v.SetString(s)
		return nil

	case CategoryByteEnum, CategoryEnum:
		name, ok := value.raw().(string)
		if !ok {
			return newMismatchError("write", path,
				fmt.Sprintf("field '%s' expects an enum name, got %s", fd.Name, describeValue(value)))
		}
		n, ok := e.enums.ValueOf(fd.Type, name)
		if !ok {
			return newMismatchError("write", path,
				fmt.Sprintf("unknown enum name '%s' for field '%s'", name, fd.Name)).
				WithHints(e.enums.Names(fd.Type)...)
		}
		return setInt(fd, v, n, path)

	case CategoryStruct:
		if rule, ok := e.rich.lookup(fd.Type); ok {
			richErr := rule.Write(e.richContext(path), v, value)
			if richErr == nil {
				return nil
			}
			if genErr := e.writeRecord(fd, v, value, path); genErr == nil {
				return nil
			}
			// The bespoke rule's diagnostic is the more specific one.
			return newMismatchError("write", path,
				fmt.Sprintf("%s rule rejected value for '%s': %v", rule.Name, fd.Name, richErr))
		}
		return e.writeRecord(fd, v, value, path)

	case CategoryObject:
		return newUnsupportedError("write", path,
			fmt.Sprintf("field '%s' is an object reference; references are assigned outside the engine", fd.Name))

	case CategoryArray:
		return e.writeList(fd, v, value, path)

	case CategoryMap:
		return e.writeDictionary(fd, v, value, path)

	case CategorySet:
		return e.writeSet(fd, v, value, path)

	case CategoryInvalid:
		return newUnsupportedError("write", path,
			fmt.Sprintf("field '%s' has unsupported type %s", fd.Name, fd.Type))
	}
	return newUnsupportedError("write", path,
		fmt.Sprintf("field '%s' has unknown category", fd.Name))
}

// writeRecord applies a keyed object to a record's declared sub-fields.
// Entries apply in sorted key order; the first failure aborts the call.
func (e *Engine) writeRecord(fd *FieldDescriptor, v reflect.Value, value ExternalValue, path string) error {
	node, ok := value.raw().(map[string]any)
	if !ok {
		return newMismatchError("write", path,
			fmt.Sprintf("record field '%s' expects a keyed object, got %s", fd.Name, describeValue(value)))
	}
	keys := make([]string, 0, len(node))
	for key := range node {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		sub, ok := e.provider.Descriptor(fd.Type, key)
		if !ok {
			return newMismatchError("write", path,
				fmt.Sprintf("record '%s' has no sub-field '%s'", fd.Type.Name(), key))
		}
		if err := e.writeValue(sub, v.FieldByIndex(sub.Index), Node(node[key]), path); err != nil {
			return err
		}
	}
	return nil
}

// writeList replaces a whole list from an array payload. The replacement
// is fully built before the field mutates.
func (e *Engine) writeList(fd *FieldDescriptor, v reflect.Value, value ExternalValue, path string) error {
	node, ok := value.raw().([]any)
	if !ok {
		return newMismatchError("write", path,
			fmt.Sprintf("list field '%s' expects an array, got %s", fd.Name, describeValue(value)))
	}
	if fd.Type.Kind() != reflect.Slice {
		return newUnsupportedError("write", path,
			fmt.Sprintf("field '%s' is a fixed-size array and cannot be replaced", fd.Name))
	}
	elemDesc := elementDescriptor(fd, fd.Type.Elem(), e.enums)
	next := reflect.MakeSlice(fd.Type, len(node), len(node))
	for i, entry := range node {
		if err := e.writeValue(elemDesc, next.Index(i), Node(entry), path); err != nil {
			return err
		}
	}
	v.Set(next)
	return nil
}

// writeDictionary replaces a whole dictionary from a keyed payload.
func (e *Engine) writeDictionary(fd *FieldDescriptor, v reflect.Value, value ExternalValue, path string) error {
	node, ok := value.raw().(map[string]any)
	if !ok {
		return newMismatchError("write", path,
			fmt.Sprintf("dictionary field '%s' expects a keyed object, got %s", fd.Name, describeValue(value)))
	}
	valDesc := elementDescriptor(fd, fd.Type.Elem(), e.enums)
	next := reflect.MakeMapWithSize(fd.Type, len(node))
	for keyLiteral, entry := range node {
		key, err := buildMapKey(fd.Type.Key(), keyLiteral)
		if err != nil {
			return newUnsupportedError("write", path,
				fmt.Sprintf("dictionary '%s': %s", fd.Name, err))
		}
		elem := reflect.New(fd.Type.Elem()).Elem()
		if err := e.writeValue(valDesc, elem, Node(entry), path); err != nil {
			return err
		}
		next.SetMapIndex(key, elem)
	}
	v.Set(next)
	return nil
}

// writeSet replaces a whole set from an array of members.
func (e *Engine) writeSet(fd *FieldDescriptor, v reflect.Value, value ExternalValue, path string) error {
	node, ok := value.raw().([]any)
	if !ok {
		return newMismatchError("write", path,
			fmt.Sprintf("set field '%s' expects an array of members, got %s", fd.Name, describeValue(value)))
	}
	memberDesc := elementDescriptor(fd, fd.Type.Key(), e.enums)
	next := reflect.MakeMapWithSize(fd.Type, len(node))
	empty := reflect.New(fd.Type.Elem()).Elem()
	for _, entry := range node {
		member := reflect.New(fd.Type.Key()).Elem()
		if err := e.writeValue(memberDesc, member, Node(entry), path); err != nil {
			return err
		}
		next.SetMapIndex(member, empty)
	}
	v.Set(next)
	return nil
}

// intOf widens any integer kind to int64.
func intOf(v reflect.Value) int64 {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(v.Uint())
	default:
		return v.Int()
	}
}

// setInt stores an int64 into any integer kind, rejecting negatives for
// unsigned storage.
func setInt(fd *FieldDescriptor, v reflect.Value, n int64, path string) error {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n < 0 {
			return newMismatchError("write", path,
				fmt.Sprintf("field '%s' cannot store negative value %d", fd.Name, n))
		}
		v.SetUint(uint64(n))
	default:
		v.SetInt(n)
	}
	return nil
}

// referenceMarker encodes an object reference as a marker only, never
// its contents; the engine does not own referenced objects.
func referenceMarker(v reflect.Value) map[string]any {
	return map[string]any{
		"$type": v.Type().String(),
		"$nil":  v.IsNil(),
	}
}

// keyString formats a native dictionary key for external output.
func keyString(k reflect.Value) string {
	switch k.Kind() {
	case reflect.String:
		return k.String()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(k.Uint(), 10)
	default:
		return strconv.FormatInt(k.Int(), 10)
	}
}
