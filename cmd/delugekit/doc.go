// Package main hosts the delugekit CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into calls on the
// synthesis engine: generating kits from WAV region markers, listing the
// regions of files, inspecting existing kits, and scaffolding configuration.
// It centralizes configuration resolution, flag overrides, and structured
// logging setup so subcommands can focus on presenting results.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
