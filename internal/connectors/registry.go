package connectors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/agricatalog/internal/core/domain"
	"github.com/custodia-labs/agricatalog/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ConnectorRegistry = (*Registry)(nil)

// Registry maps source kinds to connectors and validates source
// references before handing them out.
type Registry struct {
	mu         sync.RWMutex
	connectors map[domain.SourceKind]driven.Connector
	validate   *validator.Validate
}

// NewRegistry creates a registry holding the given connectors.
func NewRegistry(cs ...driven.Connector) *Registry {
	v := validator.New()
	_ = v.RegisterValidation("source_kind", func(fl validator.FieldLevel) bool {
		return domain.SourceKind(fl.Field().String()).IsValid()
	})

	r := &Registry{
		connectors: make(map[domain.SourceKind]driven.Connector),
		validate:   v,
	}
	for _, c := range cs {
		r.Register(c)
	}
	return r
}

// Register adds a connector, replacing any with the same kind.
func (r *Registry) Register(c driven.Connector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connectors[c.Kind()] = c
}

// Get validates ref and returns the connector for its kind.
func (r *Registry) Get(ref domain.SourceRef) (driven.Connector, error) {
	if err := r.validate.Struct(ref); err != nil {
		return nil, validationError(err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.connectors[ref.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: no connector for source kind %q", domain.ErrUnsupportedType, ref.Kind)
	}
	return c, nil
}

// Kinds lists registered kinds in sorted order.
func (r *Registry) Kinds() []domain.SourceKind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]domain.SourceKind, 0, len(r.connectors))
	for k := range r.connectors {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// validationError turns validator field errors into one ErrInvalidInput.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", strings.ToLower(fe.Field())))
		case "source_kind":
			msgs = append(msgs, fmt.Sprintf("unknown source kind %q", fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, ", "))
}
