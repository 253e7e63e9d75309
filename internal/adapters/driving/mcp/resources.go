package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for agricatalog resources.
	uriScheme = "agricatalog://"

	productsURI = uriScheme + "products"
	facetsURI   = uriScheme + "facets"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         productsURI,
		Name:        "products",
		Description: "Every product in the loaded catalog",
		MIMEType:    "application/json",
	}, s.handleProductsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         facetsURI,
		Name:        "facets",
		Description: "Distinct companies, product types and states of the loaded catalog",
		MIMEType:    "application/json",
	}, s.handleFacetsResource)
}

// handleProductsResource returns the loaded products, or [] before a load.
func (s *Server) handleProductsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	var products any = []any{}
	if catalog := s.ports.Catalog.Current(); catalog != nil && catalog.Products != nil {
		products = catalog.Products
	}
	return jsonResource(req.Params.URI, products)
}

// handleFacetsResource returns the facets of the loaded catalog.
func (s *Server) handleFacetsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.ports.Catalog.Facets())
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
