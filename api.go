package propedit

import "sync"

// The package-level functions serve quick one-off edits through a shared
// engine built from DefaultConfig. Sessions that need their own sink,
// loader, or catalogs should construct an Engine with New.

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

func getDefaultEngine() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = New(DefaultConfig())
	})
	return defaultEngine
}

// Get retrieves the value and schema of the field at path.
func Get(root any, path string) (*ReadResult, error) {
	return getDefaultEngine().Get(root, path)
}

// Set writes a value to the field at path.
func Set(root any, path string, value ExternalValue) error {
	return getDefaultEngine().Set(root, path, value)
}

// SetString writes a plain-string value to the field at path.
func SetString(root any, path, value string) error {
	return getDefaultEngine().Set(root, path, Plain(value))
}

// Apply performs a structural collection edit on the list field at path.
func Apply(root any, path string, op CollectionOperation) error {
	return getDefaultEngine().Apply(root, path, op)
}

// Describe reports the schema of the field at path.
func Describe(root any, path string) (*SchemaReport, error) {
	return getDefaultEngine().Describe(root, path)
}
