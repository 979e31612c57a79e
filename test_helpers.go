package propedit

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

// TestHelper provides assertion utilities for engine tests
type TestHelper struct {
	t *testing.T
}

// NewTestHelper creates a new test helper
func NewTestHelper(t *testing.T) *TestHelper {
	return &TestHelper{t: t}
}

// AssertEqual checks if two values are equal
func (h *TestHelper) AssertEqual(expected, actual any, msgAndArgs ...any) {
	h.t.Helper()
	require.Equal(h.t, expected, actual, msgAndArgs...)
}

// AssertNoError checks that error is nil
func (h *TestHelper) AssertNoError(err error, msgAndArgs ...any) {
	h.t.Helper()
	require.NoError(h.t, err, msgAndArgs...)
}

// AssertError checks that error is not nil
func (h *TestHelper) AssertError(err error, msgAndArgs ...any) {
	h.t.Helper()
	require.Error(h.t, err, msgAndArgs...)
}

// AssertErrorIs checks that the error chain contains the given sentinel
func (h *TestHelper) AssertErrorIs(err, sentinel error, msgAndArgs ...any) {
	h.t.Helper()
	require.ErrorIs(h.t, err, sentinel, msgAndArgs...)
}

// AssertContains checks that a string contains a substring
func (h *TestHelper) AssertContains(s, substr string, msgAndArgs ...any) {
	h.t.Helper()
	require.Contains(h.t, s, substr, msgAndArgs...)
}

// Dump logs a deep dump of a value for debugging failed expectations
func (h *TestHelper) Dump(label string, v any) {
	h.t.Helper()
	h.t.Logf("%s:\n%s", label, spew.Sdump(v))
}
