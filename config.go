package propedit

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"

	"github.com/blang/semver/v4"
	"gopkg.in/yaml.v3"
)

// Config is the explicit, test-constructible configuration of an engine.
// Every catalog the engine consults lives here; there is no shared
// mutable service state.
type Config struct {
	// Provider answers field metadata queries. Nil selects the default
	// reflection provider over Enums and `prop` tags.
	Provider TypeProvider

	// Enums maps named integer types to their legal value names.
	Enums *EnumTable

	// Aliases maps alternate spellings to canonical field names. Exact
	// match only; applied when ordinary lookup fails.
	Aliases map[string]string

	// Families maps slot concrete types to their virtual-property
	// families.
	Families map[reflect.Type]SlotFamily

	// Rich holds the bespoke record conversion rules.
	Rich *RichRules

	// Loader resolves brush resource paths. Nil tolerated: loads are
	// skipped with a warning.
	Loader AssetLoader

	// Sink receives mutation notifications. Nil discards them.
	Sink ChangeSink

	// Logger receives tolerated-failure diagnostics.
	Logger *slog.Logger
}

// DefaultConfig returns a configuration carrying the canonical value
// vocabulary: its enum tables, rich rules, aliases, and the built-in
// canvas and stack slot families.
func DefaultConfig() *Config {
	cfg := &Config{
		Enums:    defaultEnums(),
		Aliases:  defaultAliases(),
		Families: make(map[reflect.Type]SlotFamily),
		Rich:     defaultRichRules(),
		Sink:     nopSink{},
		Logger:   slog.Default(),
	}
	cfg.RegisterFamily(&CanvasSlot{}, canvasFamily{})
	cfg.RegisterFamily(&StackSlot{}, stackFamily{})
	return cfg
}

// RegisterFamily installs a slot family for the slot type of sample.
func (c *Config) RegisterFamily(sample any, family SlotFamily) {
	if c.Families == nil {
		c.Families = make(map[reflect.Type]SlotFamily)
	}
	c.Families[reflect.TypeOf(sample)] = family
}

// ValidateConfig validates configuration values and applies defaults for
// anything left unset.
func ValidateConfig(config *Config) error {
	if config == nil {
		return newUnsupportedError("validate_config", "", "config cannot be nil")
	}
	if config.Enums == nil {
		config.Enums = NewEnumTable()
	}
	if config.Aliases == nil {
		config.Aliases = make(map[string]string)
	}
	if config.Families == nil {
		config.Families = make(map[reflect.Type]SlotFamily)
	}
	if config.Rich == nil {
		config.Rich = NewRichRules()
	}
	if config.Provider == nil {
		config.Provider = newReflectProvider(config.Enums)
	}
	if config.Sink == nil {
		config.Sink = nopSink{}
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return nil
}

// Catalog is the declarative form of the name catalogs: aliases and enum
// tables loadable from a versioned YAML document, so editor deployments
// can extend the spelling and enum vocabulary without a rebuild.
type Catalog struct {
	Version string                 `yaml:"version"`
	Aliases map[string]string      `yaml:"aliases"`
	Enums   map[string]CatalogEnum `yaml:"enums"`
}

// CatalogEnum is one enum name table in a catalog. When Terminator is
// set the final name is a sentinel and is excluded from the legal set.
type CatalogEnum struct {
	Names      []string `yaml:"names"`
	Terminator bool     `yaml:"terminator"`
}

// LoadCatalog decodes a catalog document and gates it on the supported
// format version range.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var cat Catalog
	if err := yaml.NewDecoder(r).Decode(&cat); err != nil {
		return nil, newUnsupportedError("load_catalog", "", fmt.Sprintf("malformed catalog: %v", err))
	}
	if cat.Version == "" {
		return nil, newUnsupportedError("load_catalog", "", "catalog is missing a version")
	}
	v, err := semver.Parse(cat.Version)
	if err != nil {
		return nil, newUnsupportedError("load_catalog", "", fmt.Sprintf("invalid catalog version '%s': %v", cat.Version, err))
	}
	supported, err := semver.ParseRange(CatalogFormatRange)
	if err != nil {
		return nil, err
	}
	if !supported(v) {
		return nil, newUnsupportedError("load_catalog", "",
			fmt.Sprintf("catalog version %s outside supported range %s", cat.Version, CatalogFormatRange))
	}
	return &cat, nil
}

// LoadCatalogFile loads a catalog from disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadCatalog(f)
}

// ApplyCatalog merges a catalog into the configuration. Catalog enum
// tables override registered enum types matched by type name; entries
// naming no registered type are rejected so typos surface early.
func (c *Config) ApplyCatalog(cat *Catalog) error {
	if c.Enums == nil {
		c.Enums = NewEnumTable()
	}
	if c.Aliases == nil {
		c.Aliases = make(map[string]string)
	}
	for alt, canonical := range cat.Aliases {
		c.Aliases[alt] = canonical
	}

	for typeName, entry := range cat.Enums {
		var match reflect.Type
		for t := range c.Enums.names {
			if t.Name() == typeName {
				match = t
				break
			}
		}
		if match == nil {
			return newNotFoundError("apply_catalog", "",
				fmt.Sprintf("catalog names unknown enum type '%s'", typeName))
		}
		names := entry.Names
		if entry.Terminator && len(names) > 0 {
			names = names[:len(names)-1]
		}
		c.Enums.names[match] = append([]string(nil), names...)
	}
	return nil
}
