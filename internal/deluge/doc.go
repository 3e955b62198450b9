// Package deluge renders kits in the XML layout the Deluge firmware writes
// and reads them back.
//
// Rendering is a pure function of the kit: attributes are emitted in a fixed
// order, one per line, with tab indentation and \n line endings, so the same
// kit always produces the same bytes. WriteKit replaces the target file
// atomically and leaves it untouched when its content would not change.
package deluge
