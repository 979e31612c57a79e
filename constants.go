package propedit

const (
	// SlotRootName is the leading path segment that switches addressing
	// from the widget to its slot attachment.
	SlotRootName = "Slot"

	// ChildOrderName is the reserved synthetic field addressing a
	// widget's ordinal position among its siblings. Slot root, final
	// segment only.
	ChildOrderName = "ChildOrder"

	// Path validation limits
	MaxPathLength    = 4096
	MaxSegmentLength = 256
	MaxPathDepth     = 64
)

// Virtual property names exposed by slot families. Availability varies by
// family; see SlotFamily.VirtualProperties.
const (
	VirtualAlignment = "Alignment"
	VirtualAnchors   = "Anchors"
	VirtualPosition  = "Position"
	VirtualSize      = "Size"
	VirtualAutoSize  = "AutoSize"
	VirtualZOrder    = "ZOrder"
)

// CatalogFormatRange is the semver range of catalog file versions this
// engine accepts.
const CatalogFormatRange = ">=1.0.0 <2.0.0"
