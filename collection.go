package propedit

import (
	"fmt"
	"reflect"
)

// applyCollection applies a structural edit to a list field. Every
// inserted or updated element is fully converted before the list mutates,
// so a conversion failure never leaves a partial edit behind.
func (e *Engine) applyCollection(tgt *ResolvedTarget, op CollectionOperation) error {
	if tgt.Field == nil || tgt.Field.Category != CategoryArray {
		return newUnsupportedError("apply", tgt.Path,
			fmt.Sprintf("%s operation requires a list field", op.Kind))
	}
	if tgt.Field.Type.Kind() != reflect.Slice {
		return newUnsupportedError("apply", tgt.Path,
			fmt.Sprintf("field '%s' is a fixed-size array and cannot be edited structurally", tgt.Field.Name))
	}
	if !tgt.Field.Editable {
		return newUnsupportedError("apply", tgt.Path,
			fmt.Sprintf("field '%s' is read-only", tgt.Field.Name))
	}

	v := tgt.Value
	elemDesc := elementDescriptor(tgt.Field, tgt.Field.Type.Elem(), e.enums)

	switch op.Kind {
	case OpClear:
		v.Set(reflect.MakeSlice(tgt.Field.Type, 0, 0))

	case OpSet:
		next, err := e.buildElements(tgt, elemDesc, op.Value)
		if err != nil {
			return err
		}
		v.Set(next)

	case OpAppend:
		appended, err := e.buildAppend(tgt, elemDesc, op.Value)
		if err != nil {
			return err
		}
		v.Set(reflect.AppendSlice(v, appended))

	case OpInsert:
		elem, err := e.buildElement(tgt, elemDesc, op.Value)
		if err != nil {
			return err
		}
		index := op.Index
		if index < 0 {
			index = 0
		}
		if index > v.Len() {
			index = v.Len()
		}
		next := reflect.MakeSlice(tgt.Field.Type, v.Len()+1, v.Len()+1)
		reflect.Copy(next, v.Slice(0, index))
		next.Index(index).Set(elem)
		reflect.Copy(next.Slice(index+1, next.Len()), v.Slice(index, v.Len()))
		v.Set(next)

	case OpUpdateAt:
		if op.Index < 0 || op.Index >= v.Len() {
			return newRangeError("apply", tgt.Path,
				fmt.Sprintf("index %d out of range for list of length %d", op.Index, v.Len()))
		}
		elem, err := e.buildElement(tgt, elemDesc, op.Value)
		if err != nil {
			return err
		}
		v.Index(op.Index).Set(elem)

	case OpRemoveAt:
		if op.Index < 0 || op.Index >= v.Len() {
			return newRangeError("apply", tgt.Path,
				fmt.Sprintf("index %d out of range for list of length %d", op.Index, v.Len()))
		}
		reflect.Copy(v.Slice(op.Index, v.Len()), v.Slice(op.Index+1, v.Len()))
		v.SetLen(v.Len() - 1)

	default:
		return newUnsupportedError("apply", tgt.Path,
			fmt.Sprintf("unknown collection operation %s", op.Kind))
	}

	tgt.flush()
	return nil
}

// buildElement converts one payload into a fresh element slot.
func (e *Engine) buildElement(tgt *ResolvedTarget, elemDesc *FieldDescriptor, value ExternalValue) (reflect.Value, error) {
	elem := reflect.New(elemDesc.Type).Elem()
	if err := e.writeValue(elemDesc, elem, value, tgt.Path); err != nil {
		return reflect.Value{}, err
	}
	return elem, nil
}

// buildElements converts an array payload into a fresh slice.
func (e *Engine) buildElements(tgt *ResolvedTarget, elemDesc *FieldDescriptor, value ExternalValue) (reflect.Value, error) {
	node, ok := value.raw().([]any)
	if !ok {
		return reflect.Value{}, newMismatchError("apply", tgt.Path,
			fmt.Sprintf("%s payload must be an array, got %s", OpSet, describeValue(value)))
	}
	next := reflect.MakeSlice(tgt.Field.Type, len(node), len(node))
	for i, entry := range node {
		if err := e.writeValue(elemDesc, next.Index(i), Node(entry), tgt.Path); err != nil {
			return reflect.Value{}, err
		}
	}
	return next, nil
}

// buildAppend converts an append payload: an array appends every element,
// anything else appends one converted element.
func (e *Engine) buildAppend(tgt *ResolvedTarget, elemDesc *FieldDescriptor, value ExternalValue) (reflect.Value, error) {
	if node, ok := value.raw().([]any); ok && elemDesc.Category != CategoryArray {
		next := reflect.MakeSlice(tgt.Field.Type, len(node), len(node))
		for i, entry := range node {
			if err := e.writeValue(elemDesc, next.Index(i), Node(entry), tgt.Path); err != nil {
				return reflect.Value{}, err
			}
		}
		return next, nil
	}
	elem, err := e.buildElement(tgt, elemDesc, value)
	if err != nil {
		return reflect.Value{}, err
	}
	single := reflect.MakeSlice(tgt.Field.Type, 1, 1)
	single.Index(0).Set(elem)
	return single, nil
}
