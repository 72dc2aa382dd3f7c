// Package catalog holds the fixed lookup tables: mock-translation languages,
// FreeToGame filter options and the sample countries and cities offered for
// prayer times. The tables are parsed once from an embedded YAML file and
// never change afterwards.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var raw []byte

type Language struct {
	Code string `yaml:"code" json:"code"`
	Name string `yaml:"name" json:"name"`
}

type Option struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

type Country struct {
	Value  string   `yaml:"value" json:"value"`
	Label  string   `yaml:"label" json:"label"`
	Cities []string `yaml:"cities" json:"cities"`
}

type Catalog struct {
	Languages   []Language `yaml:"languages" json:"languages"`
	Platforms   []Option   `yaml:"platforms" json:"platforms"`
	SortOptions []Option   `yaml:"sortOptions" json:"sortOptions"`
	Categories  []Option   `yaml:"categories" json:"categories"`
	Countries   []Country  `yaml:"countries" json:"countries"`

	languageNames map[string]string
}

// LanguageName returns the display name for a supported language code.
func (c *Catalog) LanguageName(code string) (string, bool) {
	name, ok := c.languageNames[code]
	return name, ok
}

// Parse decodes a catalog document and indexes its language table.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	c.languageNames = make(map[string]string, len(c.Languages))
	for _, l := range c.Languages {
		if l.Code == "" || l.Name == "" {
			return nil, fmt.Errorf("catalog language entry %q has empty code or name", l.Code)
		}
		if _, dup := c.languageNames[l.Code]; dup {
			return nil, fmt.Errorf("catalog language %q listed twice", l.Code)
		}
		c.languageNames[l.Code] = l.Name
	}
	return &c, nil
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the embedded catalog. It panics if the embedded file is
// invalid, which is a build defect rather than a runtime condition.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(raw)
		if err != nil {
			panic(err)
		}
		defaultCat = c
	})
	return defaultCat
}
