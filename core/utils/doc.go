// Package utils provides common utility functions for the catalog-manager application.
// It includes helpers for text matching and input conversion shared by the store
// backends and the console, which don't fit into a domain-specific package.
package utils
