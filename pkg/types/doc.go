// Package types defines the stable, dependency-free vocabulary shared by the
// trophy decoders and their callers: the Grade mapping table, typed errors
// with stable categories, and the diagnostics collected while decoding.
//
// Design goals:
//   - One explicit table maps each Grade to its descriptor token, its numeric
//     code in the progress file, and its point value.
//   - Typed errors with stable categories (format/truncated/metadata/...).
//   - Non-fatal anomalies are reported as diagnostics, never swallowed.
//
// This package has no dependencies beyond the standard library.
package types
