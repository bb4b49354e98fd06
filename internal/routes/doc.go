// Package routes holds the navigation table: an ordered list of path
// patterns bound to views, compiled once and matched by specificity.
//
// Patterns are slash-separated. A segment starting with ':' binds exactly one
// non-empty path segment under that name; every other segment must match
// literally. When several patterns match a path, the one with more literal
// segments wins and declaration order breaks ties. The root pattern "/" only
// matches the root path.
package routes
