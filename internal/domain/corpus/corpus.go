package corpus

import (
	"fmt"
	"regexp"

	"github.com/kailas-cloud/productindex/internal/domain"
)

var keyRegex = regexp.MustCompile(`^[a-zA-Z0-9_=-]+$`)

// Corpus is a remote, searchable document collection.
type Corpus struct {
	Key              string
	Name             string
	Description      string
	FilterAttributes []FilterAttribute
}

// Definition is a validated request to create a corpus.
type Definition struct {
	key         string
	name        string
	description string
	attributes  []FilterAttribute
}

func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("corpus key is required")
	}
	if len(key) > 50 {
		return fmt.Errorf("corpus key too long (max 50)")
	}
	if !keyRegex.MatchString(key) {
		return fmt.Errorf("corpus key must be alphanumeric with underscores, hyphens and '='")
	}
	return nil
}

func validateAttributes(attrs []FilterAttribute) error {
	seen := make(map[string]bool, len(attrs))
	for _, a := range attrs {
		if seen[a.Name()] {
			return fmt.Errorf("duplicate filter attribute: %s", a.Name())
		}
		seen[a.Name()] = true
	}
	return nil
}

// NewDefinition validates and creates a corpus Definition.
func NewDefinition(key, name, description string, attrs []FilterAttribute) (Definition, error) {
	if err := validateKey(key); err != nil {
		return Definition{}, err
	}
	if name == "" {
		return Definition{}, fmt.Errorf("corpus name is required")
	}
	if err := validateAttributes(attrs); err != nil {
		return Definition{}, err
	}
	return Definition{key: key, name: name, description: description, attributes: attrs}, nil
}

// Key returns the caller-assigned corpus key.
func (d Definition) Key() string { return d.key }

// Name returns the display name.
func (d Definition) Name() string { return d.name }

// Description returns the corpus description.
func (d Definition) Description() string { return d.description }

// Attributes returns the filter attribute definitions.
func (d Definition) Attributes() []FilterAttribute { return d.attributes }

// ProductAttributes returns the Product and Manufacturer filter attributes.
func ProductAttributes() []FilterAttribute {
	product, _ := NewTextAttribute(domain.AttrProduct, "This is the product name, unique within the manufacturer")
	manufacturer, _ := NewTextAttribute(domain.AttrManufacturer, "This is the product manufacturer")
	return []FilterAttribute{product, manufacturer}
}

// ExactMatches keeps only the corpora whose display name equals name.
// Remote name filters may match on prefix or substring.
func ExactMatches(corpora []Corpus, name string) []Corpus {
	var out []Corpus
	for _, c := range corpora {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// MaxListLimit is the largest page size accepted by a corpus listing.
const MaxListLimit = 100

// ListQuery selects a page of corpora.
type ListQuery struct {
	Limit int
	// NameFilter may match on prefix or substring; callers narrow with ExactMatches.
	NameFilter string
	PageKey    string
}

// Page is one page of a corpus listing. NextPageKey is empty on the last page.
type Page struct {
	Corpora     []Corpus
	NextPageKey string
}
