// Package propedit is the reflective property-addressing and mutation
// engine behind the editor automation layer. It reads and writes arbitrary
// fields on live in-memory widget objects, including fields nested inside
// record values, collection elements, and slot properties that have no
// direct storage and must go through family-specific accessors.
//
// A call runs parse -> resolve -> convert/mutate -> notify, synchronously
// on the caller's goroutine:
//
//	value, err := propedit.Get(widget, "Background.TintColor")
//	err = propedit.Set(widget, "Color", propedit.Node([]any{1, 0, 0, 1}))
//	err = propedit.Apply(widget, "Items", propedit.CollectionOperation{
//		Kind:  propedit.OpInsert,
//		Index: 1,
//		Value: propedit.Node("X"),
//	})
//
// Slot-rooted paths address the widget's attachment instead of the widget
// itself; "Slot.Position" goes through the slot family's virtual accessors
// and "Slot.ChildOrder" addresses the synthetic sibling-ordinal field.
//
// Resolution is side-effect free and never cached: a structural mutation
// can relocate backing storage, so every call re-resolves from path text.
// The engine does not own the widget graph; concurrent calls against the
// same widget must be serialized by the caller.
//
// # Configuration
//
// All catalogs are explicit configuration passed at construction:
//
//	cfg := propedit.DefaultConfig()
//	cfg.Sink = mySink
//	engine := propedit.New(cfg)
//
// Aliases and enum name tables can also be loaded from a versioned YAML
// catalog via LoadCatalog and merged with Config.ApplyCatalog.
package propedit
