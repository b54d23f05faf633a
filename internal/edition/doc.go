// Package edition resolves which source variant of a plugin package to load.
//
// A package may ship several "editions" - compiled variants of the same
// source targeting different runtime capability levels (for example a modern
// build and a broadly-compatible fallback). The package manifest declares the
// editions in preference order, most modern first; each edition names its
// directory, its entry point, and the engine versions it requires.
//
// Selection is a first-match walk over that list: the first edition whose
// every engine requirement is satisfied by the running environment wins.
// Declaration order is priority order - selection never tries to find a
// "best" match, because the manifest author already ranked the candidates.
//
// A manifest with no editions list at all describes a single-variant package
// rooted at the package directory; its declared main entry is used directly.
package edition
