// Package cli implements the clientmock command: validating fixture files
// and dry-running requests against them.
package cli
