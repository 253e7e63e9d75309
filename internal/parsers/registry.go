package parsers

import (
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/agricatalog/internal/core/domain"
	"github.com/custodia-labs/agricatalog/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ParserRegistry = (*Registry)(nil)

// Registry maps MIME types to parsers.
// A later registration for the same MIME type replaces the earlier one.
type Registry struct {
	mu      sync.RWMutex
	parsers map[string]driven.SheetParser
}

// NewRegistry creates a registry holding ps.
func NewRegistry(ps ...driven.SheetParser) *Registry {
	r := &Registry{parsers: make(map[string]driven.SheetParser)}
	for _, p := range ps {
		r.Register(p)
	}
	return r
}

// Register adds p under every MIME type it supports.
func (r *Registry) Register(p driven.SheetParser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, mt := range p.SupportedMIMETypes() {
		r.parsers[mt] = p
	}
}

// Get returns the parser for mimeType.
func (r *Registry) Get(mimeType string) (driven.SheetParser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	mt := domain.NormaliseMIMEType(mimeType)
	p, ok := r.parsers[mt]
	if !ok {
		if mt == domain.MIMETypeXLS {
			return nil, fmt.Errorf("%w: legacy .xls workbooks are not supported, save the file as .xlsx or .csv", domain.ErrUnsupportedType)
		}
		if mimeType == "" {
			mimeType = "unknown"
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, mimeType)
	}
	return p, nil
}

// SupportedTypes returns every registered MIME type, sorted.
func (r *Registry) SupportedTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.parsers))
	for mt := range r.parsers {
		types = append(types, mt)
	}
	sort.Strings(types)
	return types
}
