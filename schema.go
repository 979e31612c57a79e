package propedit

import (
	"fmt"
	"reflect"
)

// describeTarget emits the self-describing schema for a resolved field:
// type label and editability always, constraints and nested-type hints
// when the category has them.
func (e *Engine) describeTarget(tgt *ResolvedTarget) (*SchemaReport, error) {
	switch {
	case tgt.Synthetic == SyntheticChildOrder:
		_, ok := tgt.Slot.(ChildOrdered)
		return &SchemaReport{Type: CategoryInt.String(), Editable: ok}, nil

	case tgt.Virtual != "":
		return &SchemaReport{
			Type:     fmt.Sprintf("Virtual(%s)", tgt.Virtual),
			Editable: true,
		}, nil
	}

	fd := tgt.Field
	report := &SchemaReport{Type: fd.Category.String(), Editable: fd.Editable}

	switch fd.Category {
	case CategoryByteEnum, CategoryEnum:
		report.Constraints = &Constraints{EnumValues: e.enums.Names(fd.Type)}

	case CategoryInt, CategoryFloat:
		if fd.Min != nil || fd.Max != nil || fd.UIMin != nil || fd.UIMax != nil {
			report.Constraints = &Constraints{
				Min: fd.Min, Max: fd.Max, UIMin: fd.UIMin, UIMax: fd.UIMax,
			}
		}

	case CategoryStruct:
		report.Nested = &NestedHint{Record: fd.Type.Name()}

	case CategoryArray:
		length := tgt.Value.Len()
		report.Constraints = &Constraints{Length: &length}
		report.Nested = &NestedHint{Elem: typeLabel(fd.Type.Elem())}

	case CategorySet:
		length := tgt.Value.Len()
		report.Constraints = &Constraints{Length: &length}
		report.Nested = &NestedHint{Elem: typeLabel(fd.Type.Key())}

	case CategoryMap:
		length := tgt.Value.Len()
		report.Constraints = &Constraints{Length: &length}
		report.Nested = &NestedHint{
			Key:   typeLabel(fd.Type.Key()),
			Value: typeLabel(fd.Type.Elem()),
		}

	case CategoryBool, CategoryString, CategoryText, CategoryObject, CategoryInvalid:
		// Nothing beyond type and editability.
	}

	return report, nil
}

// typeLabel names a type for nested hints.
func typeLabel(t reflect.Type) string {
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
