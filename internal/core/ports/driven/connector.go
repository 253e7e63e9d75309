package driven

import (
	"context"

	"github.com/custodia-labs/agricatalog/internal/core/domain"
)

// Connector fetches catalog content from one kind of source.
// Each source kind (file, url, github, gdrive) has one implementation.
type Connector interface {
	// Kind returns the source kind this connector serves.
	Kind() domain.SourceKind

	// Fetch retrieves the raw sheet referenced by ref.
	// Implementations must honour ctx cancellation and refuse content
	// larger than domain.MaxSheetSize.
	Fetch(ctx context.Context, ref domain.SourceRef) (*domain.RawSheet, error)
}

// ConnectorRegistry resolves source references to connectors.
type ConnectorRegistry interface {
	// Register adds a connector, replacing any with the same kind.
	Register(c Connector)

	// Get validates ref and returns the connector for its kind.
	// Returns domain.ErrUnsupportedType for unknown kinds.
	Get(ref domain.SourceRef) (Connector, error)

	// Kinds lists registered kinds.
	Kinds() []domain.SourceKind
}
