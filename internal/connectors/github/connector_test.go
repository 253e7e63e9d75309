package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/agricatalog/internal/core/domain"
)

const sheetCSV = "S.No,Company Name,Product Name\n1,AgroCo,GrowMax\n"

// newContentsServer serves the contents API for one file. Both the file
// endpoint and the directory listing are handled so the test does not
// depend on which lookup DownloadContents performs.
func newContentsServer(t *testing.T, wantRef string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	var srv *httptest.Server

	mux.HandleFunc("/repos/acme/catalog/contents/data/products.csv", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, wantRef, r.URL.Query().Get("ref"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"type":         "file",
			"name":         "products.csv",
			"path":         "data/products.csv",
			"encoding":     "base64",
			"content":      base64.StdEncoding.EncodeToString([]byte(sheetCSV)),
			"download_url": srv.URL + "/raw/products.csv",
		})
	})
	mux.HandleFunc("/repos/acme/catalog/contents/data", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]any{{
			"type":         "file",
			"name":         "products.csv",
			"path":         "data/products.csv",
			"download_url": srv.URL + "/raw/products.csv",
		}})
	})
	mux.HandleFunc("/raw/products.csv", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(sheetCSV))
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestConnector(t *testing.T, baseURL string) *Connector {
	t.Helper()
	client, err := NewClient(context.Background(), "", WithBaseURL(baseURL))
	require.NoError(t, err)
	return New(client)
}

func TestConnector_Kind(t *testing.T) {
	assert.Equal(t, domain.SourceGitHub, New(nil).Kind())
}

func TestConnector_Fetch(t *testing.T) {
	srv := newContentsServer(t, "v2")
	c := newTestConnector(t, srv.URL)

	ref := domain.SourceRef{Kind: domain.SourceGitHub, Location: "acme/catalog/data/products.csv", Ref: "v2"}
	sheet, err := c.Fetch(context.Background(), ref)

	require.NoError(t, err)
	assert.Equal(t, "products.csv", sheet.Name)
	assert.Equal(t, domain.MIMETypeCSV, sheet.MIMEType)
	assert.Equal(t, sheetCSV, string(sheet.Content))
	assert.Equal(t, ref, sheet.Source)
}

func TestConnector_Fetch_WithToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	}))
	defer srv.Close()

	client, err := NewClient(context.Background(), "ghp_test", WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = New(client).Fetch(context.Background(), domain.SourceRef{Kind: domain.SourceGitHub, Location: "acme/catalog/p.csv"})

	assert.Error(t, err)
	assert.Equal(t, "Bearer ghp_test", gotAuth)
}

func TestConnector_Fetch_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	}))
	defer srv.Close()

	_, err := newTestConnector(t, srv.URL).Fetch(context.Background(),
		domain.SourceRef{Kind: domain.SourceGitHub, Location: "acme/missing/p.csv"})

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestConnector_Fetch_RateLimited(t *testing.T) {
	reset := time.Now().Add(time.Hour).Unix()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set(HeaderRateLimit, "60")
		w.Header().Set(HeaderRateRemaining, "0")
		w.Header().Set(HeaderRateReset, strconv.FormatInt(reset, 10))
		w.WriteHeader(http.StatusForbidden)
		_, _ = fmt.Fprint(w, `{"message":"API rate limit exceeded for 127.0.0.1."}`)
	}))
	defer srv.Close()

	c := newTestConnector(t, srv.URL)
	_, err := c.Fetch(context.Background(), domain.SourceRef{Kind: domain.SourceGitHub, Location: "acme/catalog/p.csv"})

	assert.True(t, errors.Is(err, domain.ErrRateLimited))
	assert.True(t, IsRateLimited(err))
}

func TestConnector_Fetch_InvalidLocation(t *testing.T) {
	_, err := New(nil).Fetch(context.Background(), domain.SourceRef{Kind: domain.SourceGitHub, Location: "acme/catalog"})

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestRateLimiter_FailsFastWhenQuotaSpent(t *testing.T) {
	r := NewRateLimiter()
	assert.Equal(t, -1, r.Remaining())

	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set(HeaderRateLimit, "60")
	resp.Header.Set(HeaderRateRemaining, "1")
	resp.Header.Set(HeaderRateReset, strconv.FormatInt(time.Now().Add(time.Minute).Unix(), 10))
	r.UpdateFromResponse(resp)

	assert.Equal(t, 1, r.Remaining())
	assert.Equal(t, 60, r.Limit())

	err := r.Wait(context.Background())
	assert.True(t, IsRateLimited(err))
}

func TestRateLimiter_WaitHonoursContext(t *testing.T) {
	r := NewRateLimiter()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, r.Wait(ctx))
}

func TestErrorHelpers(t *testing.T) {
	assert.True(t, IsNotFound(&APIError{StatusCode: 404}))
	assert.True(t, IsUnauthorized(fmt.Errorf("wrap: %w", &APIError{StatusCode: 401})))
	assert.False(t, IsNotFound(errors.New("other")))
	assert.Contains(t, (&APIError{StatusCode: 500, Message: "boom"}).Error(), "boom")
}
