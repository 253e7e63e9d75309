package domain

import (
	"path/filepath"
	"strings"
)

// MaxSheetSize caps the bytes a connector will read for one sheet (20 MiB).
const MaxSheetSize = 20 * 1024 * 1024

// MIME types understood by the sheet parsers.
const (
	MIMETypeCSV    = "text/csv"
	MIMETypeTSV    = "text/tab-separated-values"
	MIMETypeXLSX   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MIMETypeXLSM   = "application/vnd.ms-excel.sheet.macroEnabled.12"
	MIMETypeSQLite = "application/vnd.sqlite3"

	// MIMETypeXLS is the legacy binary Excel format. It is detected so the
	// parser registry can reject it with a clear message.
	MIMETypeXLS = "application/vnd.ms-excel"

	// MIMETypeGoogleSheet is the Drive type for native spreadsheets.
	MIMETypeGoogleSheet = "application/vnd.google-apps.spreadsheet"
)

// RawSheet is the opaque tabular content fetched by a connector,
// before it is parsed into rows.
type RawSheet struct {
	// Source is the reference that produced this sheet.
	Source SourceRef

	// Name is the file name (used for MIME detection and display).
	Name string

	// MIMEType selects the parser.
	MIMEType string

	// Content is the raw bytes.
	Content []byte

	// Path is set when the content is also available on local disk.
	Path string
}

// DetectMIMEType guesses a sheet MIME type from a file name.
// Returns "" for unknown extensions.
func DetectMIMEType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return MIMETypeCSV
	case ".tsv", ".tab":
		return MIMETypeTSV
	case ".xlsx":
		return MIMETypeXLSX
	case ".xlsm":
		return MIMETypeXLSM
	case ".xls":
		return MIMETypeXLS
	case ".db", ".sqlite", ".sqlite3":
		return MIMETypeSQLite
	default:
		return ""
	}
}

// NormaliseMIMEType strips parameters from a Content-Type header value
// and maps common aliases to the parser MIME types.
func NormaliseMIMEType(contentType string) string {
	mt := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	switch mt {
	case "application/csv", "text/comma-separated-values":
		return MIMETypeCSV
	case "application/x-sqlite3", "application/vnd.sqlite3":
		return MIMETypeSQLite
	case strings.ToLower(MIMETypeXLSM):
		return MIMETypeXLSM
	}
	return mt
}
