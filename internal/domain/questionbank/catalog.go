package questionbank

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Domain describes the source document behind one question domain.
type Domain struct {
	Name  string `yaml:"-"`
	File  string `yaml:"file"`
	Title string `yaml:"title"`
}

// Catalog maps domain names to their source documents.
type Catalog struct {
	domains map[string]Domain
}

type catalogFile struct {
	Domains map[string]Domain `yaml:"domains"`
}

// DefaultCatalog returns the three built-in domains.
func DefaultCatalog() Catalog {
	return Catalog{domains: map[string]Domain{
		"go":    {Name: "go", File: "gopardy-questions.md", Title: "Gopardy"},
		"k8s":   {Name: "k8s", File: "kuberpardy-questions.md", Title: "Kuberpardy"},
		"linux": {Name: "linux", File: "jeolinux-questions.md", Title: "Jeolinux"},
	}}
}

// LoadCatalog reads a YAML catalog file of the form
//
//	domains:
//	  go:
//	    file: gopardy-questions.md
//	    title: Gopardy
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates catalog YAML. Unknown fields are rejected.
func ParseCatalog(data []byte) (Catalog, error) {
	var file catalogFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return Catalog{}, errors.New("parse catalog: empty document")
		}
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	if len(file.Domains) == 0 {
		return Catalog{}, errors.New("parse catalog: no domains defined")
	}

	c := Catalog{domains: make(map[string]Domain, len(file.Domains))}
	for name, d := range file.Domains {
		if name == "" {
			return Catalog{}, errors.New("parse catalog: empty domain name")
		}
		if d.File == "" {
			return Catalog{}, fmt.Errorf("parse catalog: domain %q has no file", name)
		}
		if !fs.ValidPath(d.File) {
			return Catalog{}, fmt.Errorf("parse catalog: domain %q: invalid file path %q", name, d.File)
		}
		d.Name = name
		c.domains[name] = d
	}
	return c, nil
}

// Lookup returns the domain entry or ErrUnknownDomain.
func (c Catalog) Lookup(domain string) (Domain, error) {
	d, ok := c.domains[domain]
	if !ok {
		return Domain{}, fmt.Errorf("%w: %q", ErrUnknownDomain, domain)
	}
	return d, nil
}

// Has reports whether the domain is configured.
func (c Catalog) Has(domain string) bool {
	_, ok := c.domains[domain]
	return ok
}

// Domains returns the configured domain names in sorted order.
func (c Catalog) Domains() []string {
	names := make([]string, 0, len(c.domains))
	for name := range c.domains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse parses source as the bank of a configured domain.
func (c Catalog) Parse(source, domain string) ([]Question, error) {
	if _, err := c.Lookup(domain); err != nil {
		return nil, err
	}
	return parseBank(source, domain)
}
