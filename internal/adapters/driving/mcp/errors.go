// Package mcp provides an MCP (Model Context Protocol) server adapter for
// agricatalog. It lets AI assistants load a product catalog, filter and
// group it, and read its facets.
package mcp

import "errors"

// ErrMissingCatalogService is returned when the catalog service is not provided.
var ErrMissingCatalogService = errors.New("mcp: catalog service is required")

// ErrNoDefaultSource is returned by load_catalog when no source is given
// and none is configured.
var ErrNoDefaultSource = errors.New("mcp: no source given and catalog.source is not set")
