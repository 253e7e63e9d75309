// Package github implements a connector for catalogs kept as files in a
// GitHub repository.
//
// A source is written github:owner/repo/path/to/file.csv, optionally
// followed by @ref to pin a branch, tag or commit. The file is downloaded
// through the contents API, which handles files of any size.
//
// # Authentication
//
// Public repositories work without a token, at GitHub's unauthenticated
// limit of 60 requests per hour. A personal access token (setting
// github.token or the GITHUB_TOKEN environment variable) raises that to
// 5,000 and grants access to private repositories.
//
// # Rate Limiting
//
// Every request waits on a token bucket and honours the X-RateLimit
// headers of the previous response; see [RateLimiter].
package github
