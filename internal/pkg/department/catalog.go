package department

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultNames is used when no catalog file or list is configured.
var DefaultNames = []string{
	"Engineering",
	"Design",
	"Marketing",
	"Sales",
	"HR",
	"Finance",
	"Operations",
	"Product",
	"Legal",
	"Support",
}

var ErrEmptyCatalog = errors.New("department catalog must contain at least one department")

// Catalog is the closed set of departments an employee may belong to.
// Lookups are case-insensitive and return the configured spelling.
type Catalog struct {
	names  []string
	folded map[string]string
}

type catalogFile struct {
	Departments []string `yaml:"departments"`
}

func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

func New(names []string) (*Catalog, error) {
	c := &Catalog{folded: make(map[string]string, len(names))}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := fold(name)
		if existing, ok := c.folded[key]; ok {
			return nil, fmt.Errorf("duplicate department %q (already configured as %q)", name, existing)
		}
		c.folded[key] = name
		c.names = append(c.names, name)
	}
	if len(c.names) == 0 {
		return nil, ErrEmptyCatalog
	}
	return c, nil
}

// Load reads a YAML document of the form `departments: [Engineering, Design]`.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read department catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse department catalog %s: %w", path, err)
	}
	return New(file.Departments)
}

// Canonical returns the configured spelling of name.
func (c *Catalog) Canonical(name string) (string, bool) {
	canonical, ok := c.folded[fold(name)]
	return canonical, ok
}

// Names returns the departments in configured order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Ordering compares department names under English collation, so "design" sorts next to
// "Design" rather than after every upper-case name. An Ordering is not safe for concurrent use.
type Ordering struct {
	col *collate.Collator
}

func NewOrdering() *Ordering {
	return &Ordering{col: collate.New(language.English)}
}

func (o *Ordering) Compare(a, b string) int {
	return o.col.CompareString(a, b)
}
