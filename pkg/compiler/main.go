// Package compiler translates a subset of Python into C++.
//
// Pipeline: Python source → host parser (pyast.Parser) → Generate → C++ text
//
// Generate walks the tree once. Every function definition becomes a C++
// function with auto parameters, and the module body becomes EntryPoint,
// which the runtime header calls from main. Anything outside the supported
// subset fails the whole translation with an *UnsupportedError; nothing is
// approximated.
package compiler
