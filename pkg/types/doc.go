// Package types defines the Store interface, the stack entity types, and
// the standard errors shared by every stacked package.
package types
