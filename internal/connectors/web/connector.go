// Package web implements a connector for catalogs published at an
// http(s) URL, such as a "publish to web" CSV link.
package web

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/custodia-labs/agricatalog/internal/connectors"
	"github.com/custodia-labs/agricatalog/internal/core/domain"
	"github.com/custodia-labs/agricatalog/internal/core/ports/driven"
	"github.com/custodia-labs/agricatalog/internal/logger"
)

// DefaultTimeout bounds a whole download.
const DefaultTimeout = 30 * time.Second

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector downloads a catalog over HTTP.
type Connector struct {
	client *http.Client
}

// New creates a web connector. A nil client gets DefaultTimeout.
func New(client *http.Client) *Connector {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &Connector{client: client}
}

// Kind returns domain.SourceURL.
func (c *Connector) Kind() domain.SourceKind {
	return domain.SourceURL
}

// Fetch downloads ref.Location. The MIME type comes from Content-Type,
// falling back to the URL path extension when the server sends a generic
// type.
func (c *Connector) Fetch(ctx context.Context, ref domain.SourceRef) (*domain.RawSheet, error) {
	u, err := url.Parse(ref.Location)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: not an http(s) url: %q", domain.ErrInvalidInput, ref.Location)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, application/vnd.openxmlformats-officedocument.spreadsheetml.sheet, */*")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", u.Redacted(), err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, u.Redacted())
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: %s", domain.ErrRateLimited, u.Redacted())
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("get %s: unexpected status %d", u.Redacted(), resp.StatusCode)
	}

	if resp.ContentLength > domain.MaxSheetSize {
		return nil, fmt.Errorf("%w: %d bytes", domain.ErrTooLarge, resp.ContentLength)
	}

	content, err := connectors.ReadLimited(resp.Body)
	if err != nil {
		return nil, err
	}

	name := path.Base(u.Path)
	if name == "/" || name == "." {
		name = u.Host
	}
	mimeType := detectMIMEType(resp.Header.Get("Content-Type"), name)
	logger.Debug("Downloaded %d bytes from %s (%s)", len(content), u.Redacted(), mimeType)

	return &domain.RawSheet{
		Source:   ref,
		Name:     name,
		MIMEType: mimeType,
		Content:  content,
	}, nil
}

// detectMIMEType prefers a specific Content-Type and otherwise uses the
// file extension.
func detectMIMEType(contentType, name string) string {
	mt := domain.NormaliseMIMEType(contentType)
	switch mt {
	case "", "application/octet-stream", "text/plain", "binary/octet-stream":
		if byName := domain.DetectMIMEType(name); byName != "" {
			return byName
		}
	}
	return mt
}
