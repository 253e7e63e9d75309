package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/agricatalog/internal/core/domain"
	"github.com/custodia-labs/agricatalog/internal/core/ports/driven"
)

// mockConnector returns canned sheets or errors.
type mockConnector struct {
	mu    sync.Mutex
	kind  domain.SourceKind
	sheet *domain.RawSheet
	err   error
	calls int
}

func (m *mockConnector) Kind() domain.SourceKind { return m.kind }

func (m *mockConnector) Fetch(_ context.Context, ref domain.SourceRef) (*domain.RawSheet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	sheet := *m.sheet
	sheet.Source = ref
	return &sheet, nil
}

func (m *mockConnector) set(sheet *domain.RawSheet, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sheet, m.err = sheet, err
}

func (m *mockConnector) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockConnectorRegistry struct {
	connectors map[domain.SourceKind]driven.Connector
}

func newMockConnectorRegistry(cs ...driven.Connector) *mockConnectorRegistry {
	r := &mockConnectorRegistry{connectors: make(map[domain.SourceKind]driven.Connector)}
	for _, c := range cs {
		r.Register(c)
	}
	return r
}

func (r *mockConnectorRegistry) Register(c driven.Connector) { r.connectors[c.Kind()] = c }

func (r *mockConnectorRegistry) Get(ref domain.SourceRef) (driven.Connector, error) {
	c, ok := r.connectors[ref.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, ref.Kind)
	}
	return c, nil
}

func (r *mockConnectorRegistry) Kinds() []domain.SourceKind {
	kinds := make([]domain.SourceKind, 0, len(r.connectors))
	for k := range r.connectors {
		kinds = append(kinds, k)
	}
	return kinds
}

// mockParser splits content into lines and cells on "|".
// The first line is the header.
type mockParser struct {
	err error
}

func (p *mockParser) SupportedMIMETypes() []string { return []string{domain.MIMETypeCSV} }

func (p *mockParser) Parse(_ context.Context, raw *domain.RawSheet) ([]domain.Row, error) {
	if p.err != nil {
		return nil, p.err
	}
	lines := splitLines(string(raw.Content))
	if len(lines) == 0 {
		return nil, domain.ErrEmptySheet
	}
	header := splitCells(lines[0])
	rows := make([]domain.Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		rows = append(rows, domain.NewRow(header, splitCells(line)))
	}
	return rows, nil
}

type mockParserRegistry struct {
	parser driven.SheetParser
}

func (r *mockParserRegistry) Register(p driven.SheetParser) { r.parser = p }

func (r *mockParserRegistry) Get(mimeType string) (driven.SheetParser, error) {
	if mimeType != domain.MIMETypeCSV || r.parser == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, mimeType)
	}
	return r.parser, nil
}

func (r *mockParserRegistry) SupportedTypes() []string { return []string{domain.MIMETypeCSV} }

// mockFileWatcher hands out a channel controlled by the test.
type mockFileWatcher struct {
	ch   chan struct{}
	err  error
	path string
}

func (w *mockFileWatcher) Watch(_ context.Context, path string) (<-chan struct{}, error) {
	w.path = path
	if w.err != nil {
		return nil, w.err
	}
	return w.ch, nil
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '\n' {
			if line := s[start:i]; line != "" {
				out = append(out, line)
			}
			start = i + 1
		}
	}
	return out
}

func splitCells(line string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(line); i++ {
		if i == len(line) || line[i] == '|' {
			out = append(out, line[start:i])
			start = i + 1
		}
	}
	return out
}
