package propedit

import "reflect"

// FieldCategory classifies a field for the resolver and codec. Every
// switch over categories carries one arm per value so new categories fail
// loudly instead of silently falling through.
type FieldCategory int

const (
	CategoryInvalid FieldCategory = iota
	CategoryBool
	CategoryInt
	CategoryFloat
	CategoryString
	CategoryText
	CategoryByteEnum
	CategoryEnum
	CategoryStruct
	CategoryObject
	CategoryArray
	CategoryMap
	CategorySet

	// CategoryTotal is the number of categories defined
	CategoryTotal = int(iota)
)

var categoryNames = [...]string{
	"Invalid", "Bool", "Int", "Float", "String", "Text",
	"ByteEnum", "Enum", "Struct", "Object", "Array", "Map", "Set",
}

func (c FieldCategory) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "Invalid"
	}
	return categoryNames[c]
}

var textType = reflect.TypeOf(Text(""))

// categorize maps a reflected type to its field category. Enum detection
// consults the registered enum table: a named integer type with a name
// table is an enum, byte-backed enums are split out because their wire
// size differs.
func categorize(t reflect.Type, enums *EnumTable) FieldCategory {
	if t == nil {
		return CategoryInvalid
	}
	if t == textType {
		return CategoryText
	}
	if enums != nil && enums.Has(t) {
		if t.Kind() == reflect.Uint8 {
			return CategoryByteEnum
		}
		return CategoryEnum
	}

	switch t.Kind() {
	case reflect.Bool:
		return CategoryBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return CategoryInt
	case reflect.Float32, reflect.Float64:
		return CategoryFloat
	case reflect.String:
		return CategoryString
	case reflect.Struct:
		return CategoryStruct
	case reflect.Pointer, reflect.Interface:
		return CategoryObject
	case reflect.Slice, reflect.Array:
		return CategoryArray
	case reflect.Map:
		// A map to empty struct is a set: membership only, no values.
		if t.Elem().Kind() == reflect.Struct && t.Elem().NumField() == 0 {
			return CategorySet
		}
		return CategoryMap
	default:
		return CategoryInvalid
	}
}
