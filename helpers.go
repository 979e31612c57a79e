package propedit

import (
	"fmt"
	"strconv"
	"strings"
)

// ConvertToInt64 converts a scalar external value to int64
func ConvertToInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	case float32:
		if float32(int64(v)) == v {
			return int64(v), true
		}
		return 0, false
	case float64:
		if float64(int64(v)) == v {
			return int64(v), true
		}
		return 0, false
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// ConvertToFloat64 converts a scalar external value to float64
func ConvertToFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// ConvertToBool converts a scalar external value to bool. String forms
// follow strconv.ParseBool.
func ConvertToBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, false
		}
		return b, true
	default:
		return false, false
	}
}

// ConvertToString converts a scalar external value to its string form
func ConvertToString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	default:
		return "", false
	}
}

// DecodeBool decodes an external value into a bool.
func DecodeBool(value ExternalValue) (bool, error) {
	if b, ok := ConvertToBool(value.raw()); ok {
		return b, nil
	}
	return false, fmt.Errorf("expected a boolean, got %v", describeValue(value))
}

// DecodeInt decodes an external value into an integer.
func DecodeInt(value ExternalValue) (int64, error) {
	if n, ok := ConvertToInt64(value.raw()); ok {
		return n, nil
	}
	return 0, fmt.Errorf("expected an integer, got %v", describeValue(value))
}

// DecodeFloat decodes an external value into a float.
func DecodeFloat(value ExternalValue) (float64, error) {
	if f, ok := ConvertToFloat64(value.raw()); ok {
		return f, nil
	}
	return 0, fmt.Errorf("expected a number, got %v", describeValue(value))
}

// DecodeVec2 decodes a 2-element array or an axis-keyed object into a
// Vec2. Axis keys are matched case-insensitively.
func DecodeVec2(value ExternalValue) (Vec2, error) {
	switch raw := value.raw().(type) {
	case []any:
		if len(raw) != 2 {
			return Vec2{}, fmt.Errorf("vector array must have exactly 2 elements, got %d", len(raw))
		}
		x, okX := ConvertToFloat64(raw[0])
		y, okY := ConvertToFloat64(raw[1])
		if !okX || !okY {
			return Vec2{}, fmt.Errorf("vector elements must be numeric")
		}
		return Vec2{X: float32(x), Y: float32(y)}, nil
	case map[string]any:
		var out Vec2
		seen := 0
		for key, entry := range raw {
			f, ok := ConvertToFloat64(entry)
			if !ok {
				return Vec2{}, fmt.Errorf("vector component '%s' must be numeric", key)
			}
			switch strings.ToLower(key) {
			case "x":
				out.X = float32(f)
			case "y":
				out.Y = float32(f)
			default:
				return Vec2{}, fmt.Errorf("unknown vector component '%s'", key)
			}
			seen++
		}
		if seen == 0 {
			return Vec2{}, fmt.Errorf("vector object has no components")
		}
		return out, nil
	default:
		return Vec2{}, fmt.Errorf("expected a 2-element array or {X,Y} object, got %v", describeValue(value))
	}
}

// DecodeMargin decodes a 4-element array in left,top,right,bottom order
// or an edge-keyed object into a Margin.
func DecodeMargin(value ExternalValue) (Margin, error) {
	switch raw := value.raw().(type) {
	case []any:
		if len(raw) != 4 {
			return Margin{}, fmt.Errorf("margin array must have exactly 4 elements, got %d", len(raw))
		}
		var edges [4]float32
		for i, entry := range raw {
			f, ok := ConvertToFloat64(entry)
			if !ok {
				return Margin{}, fmt.Errorf("margin element %d must be numeric", i)
			}
			edges[i] = float32(f)
		}
		return Margin{Left: edges[0], Top: edges[1], Right: edges[2], Bottom: edges[3]}, nil
	case map[string]any:
		var out Margin
		seen := 0
		for key, entry := range raw {
			f, ok := ConvertToFloat64(entry)
			if !ok {
				return Margin{}, fmt.Errorf("margin edge '%s' must be numeric", key)
			}
			switch strings.ToLower(key) {
			case "left":
				out.Left = float32(f)
			case "top":
				out.Top = float32(f)
			case "right":
				out.Right = float32(f)
			case "bottom":
				out.Bottom = float32(f)
			default:
				return Margin{}, fmt.Errorf("unknown margin edge '%s'", key)
			}
			seen++
		}
		if seen == 0 {
			return Margin{}, fmt.Errorf("margin object has no edges")
		}
		return out, nil
	default:
		return Margin{}, fmt.Errorf("expected a 4-element array or edge-keyed object, got %v", describeValue(value))
	}
}

// describeValue renders an external value for diagnostics.
func describeValue(value ExternalValue) string {
	switch value.Kind {
	case KindAbsent:
		return "no value"
	case KindText:
		return fmt.Sprintf("string %q", value.Text)
	default:
		return fmt.Sprintf("%T", value.Node)
	}
}
