// Package settings persists the repository registry and resolves the managed root.
package settings
