// Package kiterr defines the failure taxonomy shared by the region extractor,
// the kit synthesizer, and the serializer.
//
// Key responsibilities:
//   - Sentinel markers (unsupported format, corrupt metadata, nothing to
//     generate, write failure) that callers classify with errors.Is.
//   - The Wrap helper that tags a cause with a marker plus operation context.
//   - FileError, which pins every per-file failure to the offending path so
//     batch runs can report failures independently.
//
// Build new failures through Wrap so summaries and exit codes stay consistent
// across the CLI and the engine.
package kiterr
