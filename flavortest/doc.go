// Package flavortest provides a backend-agnostic contract suite for
// flavorcore.Store implementations.
package flavortest
