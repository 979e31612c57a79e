package propedit

import "fmt"

// testWidget is the fixture widget used across the engine tests. Field
// shapes cover every category the resolver and codec dispatch on.
type testWidget struct {
	Name        string `prop:"genkey"`
	Visible     bool
	Opacity     float64 `prop:"min=0,max=1,uimin=0,uimax=1"`
	RenderScale float32
	DrawOrder   int
	Color       Color
	Padding     Margin
	Offset      Vec2
	Background  Brush
	Style       ButtonStyle
	Visibility  Visibility
	Label       Text
	Hint        string `tooltip:"Shown on hover"`
	Items       []string
	Points      []Vec2
	Lookup      map[string]int
	Shapes      map[string]Vec2
	Counts      map[int]string
	Tags        map[string]struct{}
	Child       *testWidget
	Locked      string `prop:"readonly"`
	Secret      string `prop:"hidden"`

	slot any
}

func (w *testWidget) Slot() any { return w.slot }

func newTestWidget() *testWidget {
	return &testWidget{
		Name:    "widget",
		Visible: true,
		Opacity: 0.5,
		Items:   []string{"a", "b", "c"},
		Lookup:  map[string]int{"alpha": 1, "beta": 2},
		Shapes:  map[string]Vec2{"big": {X: 3, Y: 4}},
		Counts:  map[int]string{7: "seven"},
		Tags:    map[string]struct{}{"ui": {}, "draft": {}},
		Locked:  "fixed",
		Secret:  "hidden",
	}
}

// attachToCanvas places widgets in a shared canvas child list and gives
// each a canvas slot. Returns the list for order assertions.
func attachToCanvas(widgets ...*testWidget) *ChildList {
	list := &ChildList{}
	for _, w := range widgets {
		list.Children = append(list.Children, w)
	}
	for _, w := range widgets {
		w.slot = &CanvasSlot{SlotBase: SlotBase{Owner: w, List: list}}
	}
	return list
}

func attachToStack(widgets ...*testWidget) *ChildList {
	list := &ChildList{}
	for _, w := range widgets {
		list.Children = append(list.Children, w)
	}
	for _, w := range widgets {
		w.slot = &StackSlot{SlotBase: SlotBase{Owner: w, List: list}}
	}
	return list
}

// recordingSink captures notifications for assertion.
type recordingSink struct {
	structural []any
	value      []any
	refreshed  []any
}

func (s *recordingSink) StructuralChanged(entity any) { s.structural = append(s.structural, entity) }
func (s *recordingSink) ValueChanged(entity any)      { s.value = append(s.value, entity) }
func (s *recordingSink) RefreshViews(entity any)      { s.refreshed = append(s.refreshed, entity) }

// fakeLoader serves assets from a fixed table and fails everything else.
type fakeLoader struct {
	assets map[string]any
	loads  []string
}

func (l *fakeLoader) Load(path string) (any, error) {
	l.loads = append(l.loads, path)
	if asset, ok := l.assets[path]; ok {
		return asset, nil
	}
	return nil, fmt.Errorf("asset '%s' not found", path)
}

// newTestEngine builds an engine over the default vocabulary with a
// recording sink and a loader that knows one texture.
func newTestEngine() (*Engine, *recordingSink, *fakeLoader) {
	sink := &recordingSink{}
	loader := &fakeLoader{assets: map[string]any{"/game/textures/sky": "sky-texture"}}
	cfg := DefaultConfig()
	cfg.Sink = sink
	cfg.Loader = loader
	return New(cfg), sink, loader
}
