package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/agricatalog/internal/core/domain"
)

func TestCredentials_ClientOptions(t *testing.T) {
	assert.Len(t, Credentials{}.ClientOptions(), 1)
	assert.Len(t, Credentials{APIKey: "k"}.ClientOptions(), 1)
	assert.Len(t, Credentials{AccessToken: "t", APIKey: "k"}.ClientOptions(), 1)
}

func TestNewDriveService(t *testing.T) {
	svc, err := NewDriveService(context.Background(), Credentials{APIKey: "k"})

	require.NoError(t, err)
	assert.NotNil(t, svc.Files)
}

func TestWrapError(t *testing.T) {
	tests := []struct {
		code   int
		check  func(error) bool
		domain error
	}{
		{http.StatusUnauthorized, IsUnauthorized, nil},
		{http.StatusForbidden, IsForbidden, nil},
		{http.StatusNotFound, IsNotFound, domain.ErrNotFound},
		{http.StatusTooManyRequests, IsRateLimited, domain.ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			err := WrapError(&googleapi.Error{Code: tt.code})
			assert.True(t, tt.check(err))
			if tt.domain != nil {
				assert.True(t, errors.Is(err, tt.domain))
			}
		})
	}

	assert.Nil(t, WrapError(nil))
	other := errors.New("boom")
	assert.Equal(t, other, WrapError(other))
}

func TestRateLimiter_Backoff(t *testing.T) {
	r := NewRateLimiter(DriveRateLimit)
	require.NoError(t, r.Wait(context.Background()))

	r.RecordRateLimitError(0)

	assert.True(t, errors.Is(r.Wait(context.Background()), ErrRateLimited))
}
