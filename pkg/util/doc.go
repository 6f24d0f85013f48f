// Package util provides small shared helpers used across clientmock packages.
//
//   - CompactJSON / PrettyJSON / NormalizeJSON: deterministic JSON rendering
//     and canonicalization for matching and diagnostics
//   - Truncate: cap rendered requests and bodies for debug logging
package util
