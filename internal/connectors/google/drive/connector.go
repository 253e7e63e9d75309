// Package drive implements a connector for catalogs stored in Google
// Drive, either as uploaded files or as native Google Sheets.
package drive

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"google.golang.org/api/drive/v3"

	"github.com/custodia-labs/agricatalog/internal/connectors"
	"github.com/custodia-labs/agricatalog/internal/connectors/google"
	"github.com/custodia-labs/agricatalog/internal/core/domain"
	"github.com/custodia-labs/agricatalog/internal/core/ports/driven"
	"github.com/custodia-labs/agricatalog/internal/logger"
)

// Drive MIME types handled specially.
const (
	MimeTypeGoogleSheet = domain.MIMETypeGoogleSheet
	MimeTypeFolder      = "application/vnd.google-apps.folder"
)

// ExportMimeCSV is the export format for native spreadsheets. Drive
// exports only the first worksheet in this format.
const ExportMimeCSV = "text/csv"

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector downloads a Drive file by ID.
type Connector struct {
	svc     *drive.Service
	limiter *google.RateLimiter
}

// New creates a Drive connector using svc.
func New(svc *drive.Service) *Connector {
	return &Connector{
		svc:     svc,
		limiter: google.NewRateLimiter(google.DriveRateLimit),
	}
}

// Kind returns domain.SourceGoogleDrive.
func (c *Connector) Kind() domain.SourceKind {
	return domain.SourceGoogleDrive
}

// Fetch reads file metadata, then exports native spreadsheets as CSV or
// downloads other files as they are.
func (c *Connector) Fetch(ctx context.Context, ref domain.SourceRef) (*domain.RawSheet, error) {
	fileID := ref.Location

	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	file, err := c.svc.Files.Get(fileID).
		Fields("id", "name", "mimeType", "size").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, c.wrap(fmt.Errorf("get file %s: %w", fileID, google.WrapError(err)), nil)
	}
	logger.Debug("Drive file %s: %q (%s, %d bytes)", file.Id, file.Name, file.MimeType, file.Size)

	switch {
	case file.MimeType == MimeTypeFolder:
		return nil, fmt.Errorf("%w: drive id %s is a folder", domain.ErrInvalidInput, fileID)
	case file.Size > domain.MaxSheetSize:
		return nil, fmt.Errorf("%w: %s is %d bytes", domain.ErrTooLarge, file.Name, file.Size)
	}

	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	var (
		resp     *http.Response
		name     = file.Name
		mimeType = domain.NormaliseMIMEType(file.MimeType)
	)
	if file.MimeType == MimeTypeGoogleSheet {
		resp, err = c.svc.Files.Export(fileID, ExportMimeCSV).Context(ctx).Download()
		name += ".csv"
		mimeType = domain.MIMETypeCSV
	} else {
		resp, err = c.svc.Files.Get(fileID).SupportsAllDrives(true).Context(ctx).Download()
		if byName := domain.DetectMIMEType(name); byName != "" && !isSheetMIME(mimeType) {
			mimeType = byName
		}
	}
	if err != nil {
		return nil, c.wrap(fmt.Errorf("download %s: %w", fileID, google.WrapError(err)), resp)
	}
	defer resp.Body.Close()

	content, err := connectors.ReadLimited(resp.Body)
	if err != nil {
		return nil, err
	}

	return &domain.RawSheet{
		Source:   ref,
		Name:     name,
		MIMEType: mimeType,
		Content:  content,
	}, nil
}

func (c *Connector) wait(ctx context.Context) error {
	err := c.limiter.Wait(ctx)
	if errors.Is(err, google.ErrRateLimited) {
		return fmt.Errorf("%w: %w", domain.ErrRateLimited, err)
	}
	return err
}

// wrap starts a backoff window on rate limit errors.
func (c *Connector) wrap(err error, resp *http.Response) error {
	if google.IsRateLimited(err) {
		c.limiter.RecordRateLimitError(retryAfter(resp))
	}
	return err
}

func retryAfter(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}
	secs, err := strconv.Atoi(resp.Header.Get("Retry-After"))
	if err != nil {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func isSheetMIME(mt string) bool {
	switch mt {
	case domain.MIMETypeCSV, domain.MIMETypeTSV, domain.MIMETypeXLSX, domain.MIMETypeXLSM, domain.MIMETypeSQLite:
		return true
	}
	return false
}
