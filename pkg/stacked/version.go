// Package stacked holds project-wide metadata for the stacked module.
package stacked

// Version is the current release of the stacked CLI and library.
const Version = "0.3.0"
