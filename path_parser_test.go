package propedit

import "testing"

func TestParseBasicPaths(t *testing.T) {
	h := NewTestHelper(t)

	t.Run("single segment", func(t *testing.T) {
		expr, err := Parse("Name")
		h.AssertNoError(err)
		h.AssertEqual(1, len(expr.Segments))
		h.AssertEqual("Name", expr.Segments[0].Name)
		h.AssertEqual(IndexNone, expr.Segments[0].Kind)
		h.AssertEqual(false, expr.SlotRooted)
	})

	t.Run("dotted chain", func(t *testing.T) {
		expr, err := Parse("Child.Background.TintColor")
		h.AssertNoError(err)
		h.AssertEqual(3, len(expr.Segments))
		h.AssertEqual("Background", expr.Segments[1].Name)
	})

	t.Run("numeric index", func(t *testing.T) {
		expr, err := Parse("Items[12]")
		h.AssertNoError(err)
		h.AssertEqual(IndexNumeric, expr.Segments[0].Kind)
		h.AssertEqual(12, expr.Segments[0].Index)
	})

	t.Run("keyed index taken verbatim", func(t *testing.T) {
		expr, err := Parse("Lookup[alpha]")
		h.AssertNoError(err)
		h.AssertEqual(IndexKeyed, expr.Segments[0].Kind)
		h.AssertEqual("alpha", expr.Segments[0].Key)
	})

	t.Run("key may contain a dot", func(t *testing.T) {
		expr, err := Parse("Lookup[a.b].Next")
		h.AssertNoError(err)
		h.AssertEqual(2, len(expr.Segments))
		h.AssertEqual("a.b", expr.Segments[0].Key)
		h.AssertEqual("Next", expr.Segments[1].Name)
	})

	t.Run("mixed-digit token is a key", func(t *testing.T) {
		expr, err := Parse("Lookup[12abc]")
		h.AssertNoError(err)
		h.AssertEqual(IndexKeyed, expr.Segments[0].Kind)
		h.AssertEqual("12abc", expr.Segments[0].Key)
	})
}

func TestParseSlotRooting(t *testing.T) {
	h := NewTestHelper(t)

	t.Run("leading Slot switches the root", func(t *testing.T) {
		expr, err := Parse("Slot.Position")
		h.AssertNoError(err)
		h.AssertEqual(true, expr.SlotRooted)
		h.AssertEqual(1, len(expr.Segments))
		h.AssertEqual("Position", expr.Segments[0].Name)
	})

	t.Run("bare Slot is rejected", func(t *testing.T) {
		_, err := Parse("Slot")
		h.AssertErrorIs(err, ErrInvalidPath)
		h.AssertContains(err.Error(), "addresses nothing")
	})

	t.Run("Slot mid-path is an ordinary name", func(t *testing.T) {
		expr, err := Parse("Child.Slot")
		h.AssertNoError(err)
		h.AssertEqual(false, expr.SlotRooted)
		h.AssertEqual(2, len(expr.Segments))
	})

	t.Run("indexed Slot head is not a root marker", func(t *testing.T) {
		expr, err := Parse("Slot[0]")
		h.AssertNoError(err)
		h.AssertEqual(false, expr.SlotRooted)
		h.AssertEqual(IndexNumeric, expr.Segments[0].Kind)
	})
}

func TestParseMalformedPaths(t *testing.T) {
	h := NewTestHelper(t)

	cases := []struct {
		name string
		path string
		want string
	}{
		{"empty path", "", "empty path"},
		{"empty segment", "Items..Name", "empty segment"},
		{"trailing dot", "Items.", "empty segment"},
		{"unterminated bracket", "Items[2", "unterminated index"},
		{"unmatched close", "Items]2[", "unmatched ']'"},
		{"nested brackets", "Items[[0]]", "nested brackets"},
		{"empty index", "Items[]", "empty index"},
		{"bad name", "9Items", "invalid segment name"},
		{"bad name before bracket", "It-ems[0]", "invalid segment name"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.path)
			h.AssertErrorIs(err, ErrInvalidPath)
			h.AssertContains(err.Error(), tc.want)
		})
	}
}

func TestParseLimits(t *testing.T) {
	h := NewTestHelper(t)

	t.Run("path length cap", func(t *testing.T) {
		long := make([]byte, MaxPathLength+1)
		for i := range long {
			long[i] = 'a'
		}
		_, err := Parse(string(long))
		h.AssertErrorIs(err, ErrInvalidPath)
	})

	t.Run("depth cap", func(t *testing.T) {
		path := "a"
		for i := 0; i < MaxPathDepth; i++ {
			path += ".a"
		}
		_, err := Parse(path)
		h.AssertErrorIs(err, ErrInvalidPath)
		h.AssertContains(err.Error(), "segments")
	})
}
