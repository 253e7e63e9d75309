package connectors

import (
	"fmt"
	"io"

	"github.com/custodia-labs/agricatalog/internal/core/domain"
)

// ReadLimited reads r fully, failing with domain.ErrTooLarge once more than
// domain.MaxSheetSize bytes have been seen.
func ReadLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, domain.MaxSheetSize+1))
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	if len(data) > domain.MaxSheetSize {
		return nil, fmt.Errorf("%w: more than %d bytes", domain.ErrTooLarge, domain.MaxSheetSize)
	}
	return data, nil
}
