// Package google provides shared infrastructure for Google API connectors.
//
// It contains:
//   - Service factories that pick API key, access token or anonymous auth
//   - Error handling for common Google API errors (401, 403, 404, 429)
//   - Rate limiting to respect Google API quotas
//
// # Usage
//
//	svc, err := google.NewDriveService(ctx, google.Credentials{APIKey: key})
//
// An access token needs the https://www.googleapis.com/auth/drive.readonly
// scope. An API key only reaches files shared as "anyone with the link".
package google
