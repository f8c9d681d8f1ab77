package corpus

import "fmt"

// Level is the scope a filter attribute applies to.
type Level string

// Type is the value type of a filter attribute.
type Type string

const (
	// LevelDocument attributes are attached once per uploaded document.
	LevelDocument Level = "document"
	// LevelPart attributes are attached per document part.
	LevelPart Level = "part"

	// TypeText is a free text attribute.
	TypeText Type = "text"
)

// FilterAttribute is an immutable, indexed metadata field declared at corpus creation.
type FilterAttribute struct {
	name        string
	description string
	level       Level
	attrType    Type
	indexed     bool
}

// NewTextAttribute validates and creates an indexed, document-level text attribute.
// Indexing is required for the attribute to be usable in metadata filters.
func NewTextAttribute(name, description string) (FilterAttribute, error) {
	if name == "" {
		return FilterAttribute{}, fmt.Errorf("attribute name is required")
	}
	if len(name) > 64 {
		return FilterAttribute{}, fmt.Errorf("attribute name %q too long (max 64)", name)
	}
	return FilterAttribute{
		name:        name,
		description: description,
		level:       LevelDocument,
		attrType:    TypeText,
		indexed:     true,
	}, nil
}

// ReconstructAttribute creates a FilterAttribute without validation (API hydration).
func ReconstructAttribute(name, description string, level Level, t Type, indexed bool) FilterAttribute {
	return FilterAttribute{name: name, description: description, level: level, attrType: t, indexed: indexed}
}

// Name returns the attribute name.
func (a FilterAttribute) Name() string { return a.name }

// Description returns the attribute description.
func (a FilterAttribute) Description() string { return a.description }

// Level returns the attribute scope.
func (a FilterAttribute) Level() Level { return a.level }

// Type returns the attribute value type.
func (a FilterAttribute) Type() Type { return a.attrType }

// Indexed reports whether the attribute can be used in filters.
func (a FilterAttribute) Indexed() bool { return a.indexed }
