package domain

import (
	"fmt"
	"strings"
)

// SourceKind identifies where a catalog is fetched from.
type SourceKind string

// Available source kinds.
const (
	// SourceFile is a local file path.
	SourceFile SourceKind = "file"

	// SourceURL is an http(s) URL.
	SourceURL SourceKind = "url"

	// SourceGitHub is a file inside a GitHub repository.
	SourceGitHub SourceKind = "github"

	// SourceGoogleDrive is a Google Drive file or spreadsheet.
	SourceGoogleDrive SourceKind = "gdrive"
)

// Prefixes used in source strings.
const (
	githubPrefix = "github:"
	gdrivePrefix = "gdrive:"
)

// IsValid returns true if the source kind is recognised.
func (k SourceKind) IsValid() bool {
	switch k {
	case SourceFile, SourceURL, SourceGitHub, SourceGoogleDrive:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k SourceKind) String() string {
	return string(k)
}

// Description returns a human-readable description of the kind.
func (k SourceKind) Description() string {
	switch k {
	case SourceFile:
		return "Local file"
	case SourceURL:
		return "Web URL"
	case SourceGitHub:
		return "GitHub repository file"
	case SourceGoogleDrive:
		return "Google Drive file"
	default:
		return "Unknown"
	}
}

// SourceRef locates a catalog.
type SourceRef struct {
	// Kind selects the connector.
	Kind SourceKind `json:"kind" validate:"required,source_kind"`

	// Location is a path, URL, "owner/repo/path" or Drive file ID.
	Location string `json:"location" validate:"required"`

	// Ref is the git ref for GitHub sources. Empty means default branch.
	Ref string `json:"ref,omitempty"`

	// Sheet selects a worksheet in a workbook. Empty means the first sheet.
	Sheet string `json:"sheet,omitempty"`

	// Table selects the table in a SQLite database. Empty means "products".
	Table string `json:"table,omitempty"`
}

// ParseSourceRef parses a user-supplied source string.
//
//   - http:// or https:// prefix: SourceURL
//   - github:owner/repo/path/to/file.csv[@ref]: SourceGitHub
//   - gdrive:<fileID>: SourceGoogleDrive
//   - anything else: SourceFile
func ParseSourceRef(s string) (SourceRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return SourceRef{}, fmt.Errorf("%w: empty source", ErrInvalidInput)
	}

	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return SourceRef{Kind: SourceURL, Location: s}, nil

	case strings.HasPrefix(lower, githubPrefix):
		rest := s[len(githubPrefix):]
		ref := ""
		if at := strings.LastIndex(rest, "@"); at >= 0 {
			ref = rest[at+1:]
			rest = rest[:at]
		}
		if _, _, _, err := SplitGitHubLocation(rest); err != nil {
			return SourceRef{}, err
		}
		return SourceRef{Kind: SourceGitHub, Location: rest, Ref: ref}, nil

	case strings.HasPrefix(lower, gdrivePrefix):
		id := strings.TrimSpace(s[len(gdrivePrefix):])
		if id == "" {
			return SourceRef{}, fmt.Errorf("%w: empty drive file id", ErrInvalidInput)
		}
		return SourceRef{Kind: SourceGoogleDrive, Location: id}, nil

	default:
		return SourceRef{Kind: SourceFile, Location: s}, nil
	}
}

// SplitGitHubLocation splits "owner/repo/path/to/file" into its parts.
func SplitGitHubLocation(location string) (owner, repo, path string, err error) {
	parts := strings.SplitN(strings.Trim(location, "/"), "/", 3)
	if len(parts) < 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", fmt.Errorf("%w: github source must be owner/repo/path, got %q", ErrInvalidInput, location)
	}
	return parts[0], parts[1], parts[2], nil
}

// String returns the source in the form accepted by ParseSourceRef.
func (r SourceRef) String() string {
	switch r.Kind {
	case SourceGitHub:
		s := githubPrefix + r.Location
		if r.Ref != "" {
			s += "@" + r.Ref
		}
		return s
	case SourceGoogleDrive:
		return gdrivePrefix + r.Location
	default:
		return r.Location
	}
}

// IsZero reports whether the reference is unset.
func (r SourceRef) IsZero() bool {
	return r.Kind == "" && r.Location == ""
}
