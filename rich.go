package propedit

import (
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

// RichContext carries the collaborators a bespoke conversion rule may
// need: the asset loader for brush resources, the logger for tolerated
// failures, and the enum table for mode names.
type RichContext struct {
	Loader AssetLoader
	Logger *slog.Logger
	Enums  *EnumTable
	Path   string
}

// RichRule is a bespoke conversion rule for a record type whose generic
// field-by-field conversion is insufficient or ambiguous. Write is tried
// before the generic keyed rule; when both fail the rich diagnostic is
// surfaced.
type RichRule struct {
	Name  string
	Read  func(ctx *RichContext, v reflect.Value) any
	Write func(ctx *RichContext, v reflect.Value, value ExternalValue) error
}

// RichRules is the registry of bespoke rules, keyed by record type.
// Explicit configuration: construct, register, pass via Config.
type RichRules struct {
	rules map[reflect.Type]RichRule
}

// NewRichRules creates an empty rule registry.
func NewRichRules() *RichRules {
	return &RichRules{rules: make(map[reflect.Type]RichRule)}
}

// Register installs a rule for the record type of sample.
func (rr *RichRules) Register(sample any, rule RichRule) {
	rr.rules[reflect.TypeOf(sample)] = rule
}

func (rr *RichRules) lookup(t reflect.Type) (RichRule, bool) {
	if rr == nil {
		return RichRule{}, false
	}
	rule, ok := rr.rules[t]
	return rule, ok
}

func (rr *RichRules) clone() *RichRules {
	out := NewRichRules()
	if rr == nil {
		return out
	}
	for t, rule := range rr.rules {
		out.rules[t] = rule
	}
	return out
}

// defaultRichRules registers the rules for the canonical value
// vocabulary: color, 2D vector, margin, brush, and multi-state style.
func defaultRichRules() *RichRules {
	rr := NewRichRules()
	rr.Register(Color{}, RichRule{Name: "color", Read: readColor, Write: writeColor})
	rr.Register(Vec2{}, RichRule{Name: "vector", Read: readVec2, Write: writeVec2})
	rr.Register(Margin{}, RichRule{Name: "margin", Read: readMargin, Write: writeMargin})
	rr.Register(Brush{}, RichRule{Name: "brush", Read: readBrush, Write: writeBrush})
	rr.Register(ButtonStyle{}, RichRule{Name: "style", Read: readStyle, Write: writeStyle})
	return rr
}

// namedColors are the accepted color name strings.
var namedColors = map[string]Color{
	"black":       {0, 0, 0, 1},
	"white":       {1, 1, 1, 1},
	"red":         {1, 0, 0, 1},
	"green":       {0, 1, 0, 1},
	"blue":        {0, 0, 1, 1},
	"yellow":      {1, 1, 0, 1},
	"cyan":        {0, 1, 1, 1},
	"magenta":     {1, 0, 1, 1},
	"gray":        {0.5, 0.5, 0.5, 1},
	"transparent": {0, 0, 0, 0},
}

// readColor canonicalizes to the 4-element channel array.
func readColor(ctx *RichContext, v reflect.Value) any {
	return encodeColor(v.Interface().(Color))
}

func encodeColor(c Color) []any {
	return []any{float64(c.R), float64(c.G), float64(c.B), float64(c.A)}
}

func writeColor(ctx *RichContext, v reflect.Value, value ExternalValue) error {
	base := v.Interface().(Color)
	c, err := decodeColor(value, base)
	if err != nil {
		return err
	}
	v.Set(reflect.ValueOf(c))
	return nil
}

// decodeColor accepts a 4-element numeric array, a hex string, a named
// color, or a channel-keyed object. Keyed objects update only the
// channels they name, starting from base.
func decodeColor(value ExternalValue, base Color) (Color, error) {
	switch raw := value.raw().(type) {
	case []any:
		if len(raw) != 4 {
			return Color{}, fmt.Errorf("color array must have exactly 4 elements, got %d", len(raw))
		}
		var channels [4]float32
		for i, entry := range raw {
			f, ok := ConvertToFloat64(entry)
			if !ok {
				return Color{}, fmt.Errorf("color channel %d must be numeric", i)
			}
			channels[i] = float32(f)
		}
		return Color{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}, nil

	case string:
		return parseColorString(raw)

	case map[string]any:
		out := base
		seen := 0
		for key, entry := range raw {
			f, ok := ConvertToFloat64(entry)
			if !ok {
				return Color{}, fmt.Errorf("color channel '%s' must be numeric", key)
			}
			switch strings.ToLower(key) {
			case "r":
				out.R = float32(f)
			case "g":
				out.G = float32(f)
			case "b":
				out.B = float32(f)
			case "a":
				out.A = float32(f)
			default:
				return Color{}, fmt.Errorf("unknown color channel '%s'", key)
			}
			seen++
		}
		if seen == 0 {
			return Color{}, fmt.Errorf("color object has no channels")
		}
		return out, nil

	default:
		return Color{}, fmt.Errorf("expected a color array, hex string, color name, or channel object, got %s", describeValue(value))
	}
}

// parseColorString accepts "#RRGGBB", "#RRGGBBAA", or a named color.
func parseColorString(s string) (Color, error) {
	if c, ok := namedColors[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("'%s' is neither a known color name nor a hex color", s)
	}
	n, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return Color{}, fmt.Errorf("'%s' is neither a known color name nor a hex color", s)
	}
	if len(hex) == 6 {
		n = n<<8 | 0xFF
	}
	return Color{
		R: float32(n>>24&0xFF) / 255,
		G: float32(n>>16&0xFF) / 255,
		B: float32(n>>8&0xFF) / 255,
		A: float32(n&0xFF) / 255,
	}, nil
}

func readVec2(ctx *RichContext, v reflect.Value) any {
	return encodeVec2(v.Interface().(Vec2))
}

func writeVec2(ctx *RichContext, v reflect.Value, value ExternalValue) error {
	vec, err := DecodeVec2(value)
	if err != nil {
		return err
	}
	v.Set(reflect.ValueOf(vec))
	return nil
}

func readMargin(ctx *RichContext, v reflect.Value) any {
	m := v.Interface().(Margin)
	return []any{float64(m.Left), float64(m.Top), float64(m.Right), float64(m.Bottom)}
}

func writeMargin(ctx *RichContext, v reflect.Value, value ExternalValue) error {
	m, err := DecodeMargin(value)
	if err != nil {
		return err
	}
	v.Set(reflect.ValueOf(m))
	return nil
}

func readBrush(ctx *RichContext, v reflect.Value) any {
	b := v.Interface().(Brush)
	out := map[string]any{
		"DrawAs":    enumNameOr(ctx.Enums, DrawMode(0), int64(b.DrawAs)),
		"Tiling":    enumNameOr(ctx.Enums, TileMode(0), int64(b.Tiling)),
		"TintColor": encodeColor(b.TintColor),
	}
	if b.Image.Path != "" {
		out["Image"] = b.Image.Path
	}
	return out
}

// writeBrush applies brush sub-fields in the fixed order Image, DrawAs,
// Tiling, TintColor. A failed asset load is logged and that sub-field
// skipped; any successfully applied sub-field makes the write a success.
func writeBrush(ctx *RichContext, v reflect.Value, value ExternalValue) error {
	node, ok := value.raw().(map[string]any)
	if !ok {
		return fmt.Errorf("brush expects a keyed object, got %s", describeValue(value))
	}

	b := v.Addr().Interface().(*Brush)
	applied := 0
	var errs error

	if raw, ok := node["Image"]; ok {
		if path, ok := raw.(string); ok {
			asset := loadBrushAsset(ctx, path)
			if asset != nil || path == "" {
				b.Image = AssetRef{Path: path, Asset: asset}
				applied++
			}
		} else {
			errs = multierr.Append(errs, fmt.Errorf("brush Image must be a resource path string"))
		}
	}
	if raw, ok := node["DrawAs"]; ok {
		if err := setEnumByName(ctx.Enums, &b.DrawAs, raw); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("brush DrawAs: %w", err))
		} else {
			applied++
		}
	}
	if raw, ok := node["Tiling"]; ok {
		if err := setEnumByName(ctx.Enums, &b.Tiling, raw); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("brush Tiling: %w", err))
		} else {
			applied++
		}
	}
	if raw, ok := node["TintColor"]; ok {
		c, err := decodeColor(Node(raw), b.TintColor)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("brush TintColor: %w", err))
		} else {
			b.TintColor = c
			applied++
		}
	}

	for key := range node {
		switch key {
		case "Image", "DrawAs", "Tiling", "TintColor":
		default:
			errs = multierr.Append(errs, fmt.Errorf("unknown brush sub-field '%s'", key))
		}
	}

	if applied > 0 {
		return nil
	}
	if errs != nil {
		return errs
	}
	return fmt.Errorf("brush object named no recognized sub-fields")
}

// loadBrushAsset resolves a brush resource synchronously. Load failures
// are tolerated: logged, then the sub-field is skipped so the rest of the
// write proceeds.
func loadBrushAsset(ctx *RichContext, path string) any {
	if path == "" {
		return nil
	}
	if ctx.Loader == nil {
		ctx.Logger.Warn("no asset loader configured, skipping brush resource",
			"path", ctx.Path, "asset", path)
		return nil
	}
	asset, err := ctx.Loader.Load(path)
	if err != nil {
		ctx.Logger.Warn("brush resource failed to load, skipping",
			"path", ctx.Path, "asset", path, "error", err)
		return nil
	}
	return asset
}

// styleStates is the fixed processing order of multi-state sub-objects.
var styleStates = []string{"Normal", "Hovered", "Pressed"}

func readStyle(ctx *RichContext, v reflect.Value) any {
	s := v.Interface().(ButtonStyle)
	return map[string]any{
		"Normal":  encodeColor(s.Normal.TintColor),
		"Hovered": encodeColor(s.Hovered.TintColor),
		"Pressed": encodeColor(s.Pressed.TintColor),
	}
}

// writeStyle parses each named state via the color rule into that state's
// brush tint. Success requires at least one state modified.
func writeStyle(ctx *RichContext, v reflect.Value, value ExternalValue) error {
	node, ok := value.raw().(map[string]any)
	if !ok {
		return fmt.Errorf("style expects a keyed object of states, got %s", describeValue(value))
	}

	s := v.Addr().Interface().(*ButtonStyle)
	brushes := map[string]*Brush{
		"Normal":  &s.Normal,
		"Hovered": &s.Hovered,
		"Pressed": &s.Pressed,
	}

	modified := 0
	var errs error
	for _, state := range styleStates {
		raw, ok := node[state]
		if !ok {
			continue
		}
		brush := brushes[state]
		c, err := decodeColor(Node(raw), brush.TintColor)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("style %s: %w", state, err))
			continue
		}
		brush.TintColor = c
		modified++
	}

	for key := range node {
		if _, ok := brushes[key]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("unknown style state '%s'", key))
		}
	}

	if modified > 0 {
		return nil
	}
	if errs != nil {
		return errs
	}
	return fmt.Errorf("style object named no states")
}

// setEnumByName stores an enum value looked up by name.
func setEnumByName[E ~int](enums *EnumTable, dst *E, raw any) error {
	name, ok := raw.(string)
	if !ok {
		return fmt.Errorf("expected an enum name string, got %T", raw)
	}
	n, ok := enums.ValueOf(reflect.TypeOf(*dst), name)
	if !ok {
		return fmt.Errorf("unknown enum name '%s'", name)
	}
	*dst = E(n)
	return nil
}

// enumNameOr renders an enum value by name, falling back to the number.
func enumNameOr(enums *EnumTable, sample any, v int64) any {
	if name, ok := enums.NameOf(reflect.TypeOf(sample), v); ok {
		return name
	}
	return v
}
