// Package filesystem implements a connector for catalogs stored on the
// local disk.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/agricatalog/internal/connectors"
	"github.com/custodia-labs/agricatalog/internal/core/domain"
	"github.com/custodia-labs/agricatalog/internal/core/ports/driven"
	"github.com/custodia-labs/agricatalog/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector reads a catalog file from the local filesystem.
type Connector struct{}

// New creates a filesystem connector.
func New() *Connector {
	return &Connector{}
}

// Kind returns domain.SourceFile.
func (c *Connector) Kind() domain.SourceKind {
	return domain.SourceFile
}

// Fetch reads the file at ref.Location. The returned sheet carries the
// absolute path so parsers that need a real file (SQLite) can open it.
func (c *Connector) Fetch(ctx context.Context, ref domain.SourceRef) (*domain.RawSheet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := expandPath(ref.Location)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, path)
	}
	if info.Size() > domain.MaxSheetSize {
		return nil, fmt.Errorf("%w: %s is %d bytes", domain.ErrTooLarge, path, info.Size())
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	content, err := connectors.ReadLimited(f)
	if err != nil {
		return nil, err
	}
	logger.Debug("Read %d bytes from %s", len(content), path)

	return &domain.RawSheet{
		Source:   ref,
		Name:     filepath.Base(path),
		MIMEType: domain.DetectMIMEType(path),
		Content:  content,
		Path:     path,
	}, nil
}

// expandPath resolves "~/" and makes the path absolute.
func expandPath(p string) (string, error) {
	if p == "~" || len(p) > 1 && p[0] == '~' && (p[1] == '/' || p[1] == filepath.Separator) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		p = filepath.Join(home, p[1:])
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", p, err)
	}
	return abs, nil
}
