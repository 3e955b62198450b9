// Package textutil provides the text transformations applied to names that
// end up on the device or on disk.
//
// The primary use cases are:
//   - Transliterating region labels into the printable ASCII range the
//     Deluge displays, with deterministic truncation
//   - Appending collision suffixes without exceeding the name length limit
//   - Sanitizing user-supplied file names for safe filesystem use
package textutil
