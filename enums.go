package propedit

import "reflect"

// EnumTable maps named integer types to their legal value names. Tables
// are explicit configuration: construct one, register the enums your
// widget model uses, and hand it to the engine via Config.
type EnumTable struct {
	names map[reflect.Type][]string
}

// NewEnumTable creates an empty enum table.
func NewEnumTable() *EnumTable {
	return &EnumTable{names: make(map[reflect.Type][]string)}
}

// Register records the ordered value names for the enum type of sample.
// Names index by underlying integer value. A trailing terminator sentinel
// (a reserved "count" name some enums declare last) should be dropped via
// RegisterWithTerminator so it never leaks into schema output.
func (et *EnumTable) Register(sample any, names []string) {
	et.names[reflect.TypeOf(sample)] = names
}

// RegisterWithTerminator records names whose final entry is a terminator
// sentinel; the sentinel is excluded from the legal name set.
func (et *EnumTable) RegisterWithTerminator(sample any, names []string) {
	if len(names) > 0 {
		names = names[:len(names)-1]
	}
	et.Register(sample, names)
}

// Has reports whether t is a registered enum type.
func (et *EnumTable) Has(t reflect.Type) bool {
	if et == nil {
		return false
	}
	_, ok := et.names[t]
	return ok
}

// Names returns the legal names of enum type t in declaration order.
func (et *EnumTable) Names(t reflect.Type) []string {
	if et == nil {
		return nil
	}
	return et.names[t]
}

// NameOf returns the name for value v of enum type t.
func (et *EnumTable) NameOf(t reflect.Type, v int64) (string, bool) {
	names := et.Names(t)
	if v < 0 || v >= int64(len(names)) {
		return "", false
	}
	return names[v], true
}

// ValueOf returns the value for a name of enum type t. Matching is exact.
func (et *EnumTable) ValueOf(t reflect.Type, name string) (int64, bool) {
	for i, n := range et.Names(t) {
		if n == name {
			return int64(i), true
		}
	}
	return 0, false
}

// clone returns a deep copy so catalog merging never mutates a table
// shared with another engine.
func (et *EnumTable) clone() *EnumTable {
	out := NewEnumTable()
	if et == nil {
		return out
	}
	for t, names := range et.names {
		out.names[t] = append([]string(nil), names...)
	}
	return out
}
