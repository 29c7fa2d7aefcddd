// Package seed holds the career path catalog and decodes alternate
// catalogs supplied on the command line.
package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// CareerPath is one catalog entry.
type CareerPath struct {
	Slug        string `yaml:"slug"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type Catalog struct {
	CareerPaths []CareerPath `yaml:"careerPaths"`
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return Decode(bytes.NewReader(defaultCatalog))
}

// LoadFile reads a catalog from path, or the built-in one when path is "".
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("seed: opening catalog: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses and validates a YAML catalog. Unknown keys are rejected so
// a typo in a field name does not silently seed empty values.
func Decode(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("seed: catalog is empty")
		}
		return nil, fmt.Errorf("seed: decoding catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.CareerPaths) == 0 {
		return fmt.Errorf("seed: catalog has no career paths")
	}
	seen := make(map[string]bool, len(c.CareerPaths))
	for i := range c.CareerPaths {
		p := &c.CareerPaths[i]
		p.Slug = strings.TrimSpace(p.Slug)
		p.Name = strings.TrimSpace(p.Name)
		p.Description = strings.TrimSpace(p.Description)

		if p.Slug == "" {
			return fmt.Errorf("seed: entry %d has no slug", i)
		}
		if p.Name == "" {
			return fmt.Errorf("seed: %s has no name", p.Slug)
		}
		if seen[p.Slug] {
			return fmt.Errorf("seed: duplicate slug %s", p.Slug)
		}
		seen[p.Slug] = true
	}
	return nil
}
