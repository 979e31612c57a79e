package propedit

import (
	"reflect"
	"strconv"
	"strings"
)

// reflectProvider is the default TypeProvider: descriptors are derived
// from exported struct fields and their `prop`/`tooltip` tags.
//
// Tag grammar: `prop:"flag,key=value,..."` with flags readonly, hidden,
// genkey and keys min, max, uimin, uimax, label. `prop:"-"` excludes the
// field entirely.
type reflectProvider struct {
	enums *EnumTable

	// Descriptor memo per owner type. Descriptors are immutable once
	// built; the engine is single-session so no locking is needed.
	memo map[reflect.Type][]*FieldDescriptor
}

func newReflectProvider(enums *EnumTable) *reflectProvider {
	return &reflectProvider{
		enums: enums,
		memo:  make(map[reflect.Type][]*FieldDescriptor),
	}
}

func (rp *reflectProvider) Fields(owner reflect.Type) []*FieldDescriptor {
	if owner == nil || owner.Kind() != reflect.Struct {
		return nil
	}
	if cached, ok := rp.memo[owner]; ok {
		return cached
	}

	var fields []*FieldDescriptor
	for i := 0; i < owner.NumField(); i++ {
		sf := owner.Field(i)
		if !sf.IsExported() {
			continue
		}
		if sf.Tag.Get("prop") == "-" {
			continue
		}
		fields = append(fields, rp.describeField(sf))
	}
	rp.memo[owner] = fields
	return fields
}

func (rp *reflectProvider) Descriptor(owner reflect.Type, name string) (*FieldDescriptor, bool) {
	for _, fd := range rp.Fields(owner) {
		if fd.Name == name {
			return fd, true
		}
	}
	return nil, false
}

func (rp *reflectProvider) describeField(sf reflect.StructField) *FieldDescriptor {
	fd := &FieldDescriptor{
		Name:     sf.Name,
		Category: categorize(sf.Type, rp.enums),
		Type:     sf.Type,
		Index:    sf.Index,
		Editable: true,
		Tooltip:  sf.Tag.Get("tooltip"),
	}

	switch fd.Category {
	case CategoryEnum, CategoryByteEnum:
		fd.EnumNames = rp.enums.Names(sf.Type)
	}

	for _, opt := range strings.Split(sf.Tag.Get("prop"), ",") {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			continue
		}
		key, value, hasValue := strings.Cut(opt, "=")
		switch key {
		case "readonly":
			fd.Editable = false
		case "hidden":
			fd.Hidden = true
		case "genkey":
			fd.GenerationKey = true
		case "label":
			fd.Label = value
		case "min":
			fd.Min = parseBound(value, hasValue)
		case "max":
			fd.Max = parseBound(value, hasValue)
		case "uimin":
			fd.UIMin = parseBound(value, hasValue)
		case "uimax":
			fd.UIMax = parseBound(value, hasValue)
		}
	}
	return fd
}

func parseBound(s string, present bool) *float64 {
	if !present {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// elementDescriptor synthesizes a descriptor for one element of a
// container field, inheriting the container's editability.
func elementDescriptor(parent *FieldDescriptor, elem reflect.Type, enums *EnumTable) *FieldDescriptor {
	return &FieldDescriptor{
		Name:     parent.Name,
		Category: categorize(elem, enums),
		Type:     elem,
		Editable: parent.Editable,
		Hidden:   parent.Hidden,
	}
}
