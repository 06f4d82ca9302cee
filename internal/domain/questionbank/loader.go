package questionbank

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
)

// Loader reads question banks from a filesystem. Every call to Load reads and
// parses the source document again, so edits to a bank are visible on the
// next request.
type Loader struct {
	fsys    fs.FS
	catalog Catalog
}

// NewLoader creates a Loader resolving catalog files inside fsys.
func NewLoader(fsys fs.FS, catalog Catalog) *Loader {
	return &Loader{fsys: fsys, catalog: catalog}
}

// Catalog returns the loader's catalog.
func (l *Loader) Catalog() Catalog {
	return l.catalog
}

// Load returns the parsed bank for domain.
func (l *Loader) Load(ctx context.Context, domain string) (*QuestionBank, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d, err := l.catalog.Lookup(domain)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(l.fsys, d.File)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s (%s)", ErrBankNotFound, domain, d.File)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s bank: %w", domain, err)
	}

	questions, err := parseBank(string(data), domain)
	if err != nil {
		return nil, err
	}

	return &QuestionBank{
		Domain:    domain,
		Title:     d.Title,
		Questions: questions,
	}, nil
}
