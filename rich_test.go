package propedit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestColorConversion(t *testing.T) {
	h := NewTestHelper(t)
	e, _, _ := newTestEngine()

	t.Run("channel array roundtrip", func(t *testing.T) {
		w := newTestWidget()
		h.AssertNoError(e.Set(w, "Color", Node([]any{1.0, 0.0, 0.0, 1.0})))
		h.AssertEqual(Color{R: 1, A: 1}, w.Color)

		got, err := e.Get(w, "Color")
		h.AssertNoError(err)
		h.AssertEqual([]any{1.0, 0.0, 0.0, 1.0}, got.Value)
	})

	t.Run("hex string", func(t *testing.T) {
		w := newTestWidget()
		h.AssertNoError(e.Set(w, "Color", Plain("#FF0000")))
		h.AssertEqual(Color{R: 1, A: 1}, w.Color)
	})

	t.Run("hex string with alpha", func(t *testing.T) {
		w := newTestWidget()
		h.AssertNoError(e.Set(w, "Color", Plain("#00FF0080")))
		h.AssertEqual(float32(1), w.Color.G)
		h.AssertEqual(float32(0x80)/255, w.Color.A)
	})

	t.Run("named color", func(t *testing.T) {
		w := newTestWidget()
		h.AssertNoError(e.Set(w, "Color", Plain("Blue")))
		h.AssertEqual(Color{B: 1, A: 1}, w.Color)
	})

	t.Run("partial channel object keeps other channels", func(t *testing.T) {
		w := newTestWidget()
		w.Color = Color{R: 1, G: 1, B: 1, A: 1}
		h.AssertNoError(e.Set(w, "Color", Node(map[string]any{"g": 0.5})))
		h.AssertEqual(Color{R: 1, G: 0.5, B: 1, A: 1}, w.Color)
	})

	t.Run("wrong arity rejected with rule diagnostic", func(t *testing.T) {
		w := newTestWidget()
		err := e.Set(w, "Color", Node([]any{1.0, 0.0, 0.0}))
		h.AssertErrorIs(err, ErrTypeMismatch)
		h.AssertContains(err.Error(), "color rule rejected")
		h.AssertContains(err.Error(), "4 elements")
	})

	t.Run("unknown name rejected", func(t *testing.T) {
		w := newTestWidget()
		err := e.Set(w, "Color", Plain("chartreuse-ish"))
		h.AssertErrorIs(err, ErrTypeMismatch)
	})
}

func TestVectorAndMarginConversion(t *testing.T) {
	h := NewTestHelper(t)
	e, _, _ := newTestEngine()

	t.Run("vector array", func(t *testing.T) {
		w := newTestWidget()
		h.AssertNoError(e.Set(w, "Offset", Node([]any{3.0, 4.0})))
		h.AssertEqual(Vec2{X: 3, Y: 4}, w.Offset)
	})

	t.Run("vector object keys are case-insensitive", func(t *testing.T) {
		w := newTestWidget()
		h.AssertNoError(e.Set(w, "Offset", Node(map[string]any{"x": 1.0, "Y": 2.0})))
		h.AssertEqual(Vec2{X: 1, Y: 2}, w.Offset)
	})

	t.Run("margin array uses edge order", func(t *testing.T) {
		w := newTestWidget()
		h.AssertNoError(e.Set(w, "Padding", Node([]any{1.0, 2.0, 3.0, 4.0})))
		h.AssertEqual(Margin{Left: 1, Top: 2, Right: 3, Bottom: 4}, w.Padding)

		got, err := e.Get(w, "Padding")
		h.AssertNoError(err)
		h.AssertEqual([]any{1.0, 2.0, 3.0, 4.0}, got.Value)
	})

	t.Run("margin edge object", func(t *testing.T) {
		w := newTestWidget()
		h.AssertNoError(e.Set(w, "Padding", Node(map[string]any{"left": 5.0, "bottom": 6.0})))
		h.AssertEqual(Margin{Left: 5, Bottom: 6}, w.Padding)
	})
}

func TestBrushConversion(t *testing.T) {
	h := NewTestHelper(t)

	t.Run("full brush applies in order", func(t *testing.T) {
		e, _, loader := newTestEngine()
		w := newTestWidget()
		h.AssertNoError(e.Set(w, "Background", Node(map[string]any{
			"Image":     "/game/textures/sky",
			"DrawAs":    "Image",
			"Tiling":    "Both",
			"TintColor": "#FFFFFF",
		})))
		h.AssertEqual("/game/textures/sky", w.Background.Image.Path)
		h.AssertEqual("sky-texture", w.Background.Image.Asset)
		h.AssertEqual(DrawImage, w.Background.DrawAs)
		h.AssertEqual(TileBoth, w.Background.Tiling)
		h.AssertEqual(Color{R: 1, G: 1, B: 1, A: 1}, w.Background.TintColor)
		h.AssertEqual([]string{"/game/textures/sky"}, loader.loads)
	})

	t.Run("failed asset load is tolerated", func(t *testing.T) {
		e, _, _ := newTestEngine()
		w := newTestWidget()
		h.AssertNoError(e.Set(w, "Background", Node(map[string]any{
			"Image":  "/game/textures/missing",
			"DrawAs": "Border",
		})))
		h.AssertEqual("", w.Background.Image.Path)
		h.AssertEqual(DrawBorder, w.Background.DrawAs)
	})

	t.Run("nothing applied is a failure", func(t *testing.T) {
		e, _, _ := newTestEngine()
		w := newTestWidget()
		err := e.Set(w, "Background", Node(map[string]any{
			"DrawAs": "NotAMode",
			"Tiling": "NotATiling",
		}))
		h.AssertErrorIs(err, ErrTypeMismatch)
		h.AssertContains(err.Error(), "DrawAs")
		h.AssertContains(err.Error(), "Tiling")
	})

	t.Run("terminator sentinel is not a legal mode", func(t *testing.T) {
		e, _, _ := newTestEngine()
		w := newTestWidget()
		err := e.Set(w, "Background", Node(map[string]any{"DrawAs": "DrawMode_MAX"}))
		h.AssertErrorIs(err, ErrTypeMismatch)
	})

	t.Run("read names modes and omits empty image", func(t *testing.T) {
		e, _, _ := newTestEngine()
		w := newTestWidget()
		w.Background.DrawAs = DrawRoundedBox
		got, err := e.Get(w, "Background")
		h.AssertNoError(err)
		node, ok := got.Value.(map[string]any)
		require.True(t, ok)
		h.AssertEqual("RoundedBox", node["DrawAs"])
		h.AssertEqual("NoTile", node["Tiling"])
		_, hasImage := node["Image"]
		h.AssertEqual(false, hasImage)
	})
}

func TestStyleConversion(t *testing.T) {
	h := NewTestHelper(t)
	e, _, _ := newTestEngine()

	t.Run("states parse through the color rule", func(t *testing.T) {
		w := newTestWidget()
		h.AssertNoError(e.Set(w, "Style", Node(map[string]any{
			"Normal":  "red",
			"Hovered": []any{0.0, 1.0, 0.0, 1.0},
		})))
		h.AssertEqual(Color{R: 1, A: 1}, w.Style.Normal.TintColor)
		h.AssertEqual(Color{G: 1, A: 1}, w.Style.Hovered.TintColor)
		h.AssertEqual(Color{}, w.Style.Pressed.TintColor)
	})

	t.Run("one good state is enough", func(t *testing.T) {
		w := newTestWidget()
		h.AssertNoError(e.Set(w, "Style", Node(map[string]any{
			"Normal":  "nonsense",
			"Pressed": "white",
		})))
		h.AssertEqual(Color{R: 1, G: 1, B: 1, A: 1}, w.Style.Pressed.TintColor)
		h.AssertEqual(Color{}, w.Style.Normal.TintColor)
	})

	t.Run("read reports each state tint", func(t *testing.T) {
		w := newTestWidget()
		w.Style.Hovered.TintColor = Color{B: 1, A: 1}
		got, err := e.Get(w, "Style")
		h.AssertNoError(err)
		node := got.Value.(map[string]any)
		h.AssertEqual([]any{0.0, 0.0, 1.0, 1.0}, node["Hovered"])
	})
}
