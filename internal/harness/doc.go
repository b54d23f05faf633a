// Package harness drives a plugin through the host framework's fixed
// lifecycle and checks its generated output.
//
// A run has four phases:
//
//  1. Resolve: load the plugin's package manifest and select the edition to
//     load (see package edition).
//  2. Register: hand the plugin implementation to the host framework.
//  3. Generate: run the framework's clean, install, and generate actions, in
//     that order. The action set is fixed.
//  4. Compare: diff the framework's output directory against the expected
//     fixture tree (see package compare). Each violation becomes an
//     independent failure entry so one missing file never hides another.
//
// The harness holds no global state. Anything historically global - the
// port counter used to keep concurrent harness instances off each other's
// ports - is explicit state owned by the caller (PortAllocator). Suites that
// run concurrently must use isolated output and fixture directories.
package harness
