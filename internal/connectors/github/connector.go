package github

import (
	"context"
	"fmt"
	"path"

	"github.com/custodia-labs/agricatalog/internal/connectors"
	"github.com/custodia-labs/agricatalog/internal/core/domain"
	"github.com/custodia-labs/agricatalog/internal/core/ports/driven"
	"github.com/custodia-labs/agricatalog/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector fetches catalog files from GitHub repositories.
type Connector struct {
	client *Client
}

// New creates a GitHub connector using client.
func New(client *Client) *Connector {
	return &Connector{client: client}
}

// Kind returns domain.SourceGitHub.
func (c *Connector) Kind() domain.SourceKind {
	return domain.SourceGitHub
}

// Fetch downloads the file named by ref.Location ("owner/repo/path") at
// ref.Ref, or at the default branch when Ref is empty.
func (c *Connector) Fetch(ctx context.Context, ref domain.SourceRef) (*domain.RawSheet, error) {
	owner, repo, filePath, err := domain.SplitGitHubLocation(ref.Location)
	if err != nil {
		return nil, err
	}
	logger.Debug("GitHub download: %s/%s %s (ref %q)", owner, repo, filePath, ref.Ref)

	rc, err := c.client.DownloadContents(ctx, owner, repo, filePath, ref.Ref)
	if err != nil {
		return nil, mapError(err)
	}
	defer rc.Close()

	content, err := connectors.ReadLimited(rc)
	if err != nil {
		return nil, err
	}

	name := path.Base(filePath)
	return &domain.RawSheet{
		Source:   ref,
		Name:     name,
		MIMEType: domain.DetectMIMEType(name),
		Content:  content,
	}, nil
}

// mapError attaches domain sentinels to GitHub errors.
func mapError(err error) error {
	switch {
	case IsNotFound(err):
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	case IsRateLimited(err):
		return fmt.Errorf("%w: %w", domain.ErrRateLimited, err)
	default:
		return err
	}
}
