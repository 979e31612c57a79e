package propedit

import (
	"log/slog"
	"reflect"
)

// Engine performs path-addressed reads and writes against live widget
// objects. It never owns the addressed graph; it computes addresses into
// externally-owned memory, fresh on every call. One engine serves one
// editing session; concurrent calls must be serialized by the caller.
type Engine struct {
	provider TypeProvider
	enums    *EnumTable
	aliases  map[string]string
	families map[reflect.Type]SlotFamily
	rich     *RichRules
	loader   AssetLoader
	sink     ChangeSink
	logger   *slog.Logger
}

// New creates an engine from a configuration. The catalogs are copied so
// later Config mutation does not leak into a running engine.
func New(config *Config) *Engine {
	if config == nil {
		config = DefaultConfig()
	}
	// ValidateConfig only fills defaults; it cannot fail on a non-nil config.
	_ = ValidateConfig(config)

	aliases := make(map[string]string, len(config.Aliases))
	for alt, canonical := range config.Aliases {
		aliases[alt] = canonical
	}
	families := make(map[reflect.Type]SlotFamily, len(config.Families))
	for t, family := range config.Families {
		families[t] = family
	}

	enums := config.Enums.clone()
	e := &Engine{
		provider: config.Provider,
		enums:    enums,
		aliases:  aliases,
		families: families,
		rich:     config.Rich.clone(),
		loader:   config.Loader,
		sink:     config.Sink,
		logger:   config.Logger,
	}
	// The default provider in a fresh config closes over the config's
	// table; rebuild it over the engine's copy.
	if rp, ok := e.provider.(*reflectProvider); ok && rp.enums != enums {
		e.provider = newReflectProvider(enums)
	}
	return e
}

// Get resolves a path and returns the field's value together with its
// schema metadata.
func (e *Engine) Get(root any, path string) (*ReadResult, error) {
	tgt, err := e.resolveText(root, path)
	if err != nil {
		return nil, err
	}
	value, err := e.readTarget(tgt)
	if err != nil {
		return nil, err
	}
	report, err := e.describeTarget(tgt)
	if err != nil {
		return nil, err
	}
	return &ReadResult{SchemaReport: *report, Value: value}, nil
}

// Set resolves a path and writes a value to the resolved field, then
// notifies the change sink.
func (e *Engine) Set(root any, path string, value ExternalValue) error {
	tgt, err := e.resolveText(root, path)
	if err != nil {
		return err
	}
	if err := e.writeTarget(tgt, value); err != nil {
		return err
	}
	e.notifyMutation(tgt)
	return nil
}

// Apply resolves a path to a list field and applies a structural
// collection edit, then notifies the change sink.
func (e *Engine) Apply(root any, path string, op CollectionOperation) error {
	tgt, err := e.resolveText(root, path)
	if err != nil {
		return err
	}
	if err := e.applyCollection(tgt, op); err != nil {
		return err
	}
	e.notifyMutation(tgt)
	return nil
}

// Describe resolves a path and reports the field's schema without
// reading its value.
func (e *Engine) Describe(root any, path string) (*SchemaReport, error) {
	tgt, err := e.resolveText(root, path)
	if err != nil {
		return nil, err
	}
	return e.describeTarget(tgt)
}

// Resolve parses and resolves a path, exposing the target for callers
// that need the raw address. The target must not be cached across calls.
func (e *Engine) Resolve(root any, path string) (*ResolvedTarget, error) {
	return e.resolveText(root, path)
}

func (e *Engine) resolveText(root any, path string) (*ResolvedTarget, error) {
	expr, err := Parse(path)
	if err != nil {
		return nil, err
	}
	return e.resolve(root, expr)
}

// familyFor looks up the slot family registered for a slot's concrete
// type.
func (e *Engine) familyFor(slot any) SlotFamily {
	return e.families[reflect.TypeOf(slot)]
}

// richContext bundles the collaborators rich rules may need.
func (e *Engine) richContext(path string) *RichContext {
	return &RichContext{
		Loader: e.loader,
		Logger: e.logger,
		Enums:  e.enums,
		Path:   path,
	}
}
