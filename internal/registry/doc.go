// Package registry builds the commands that edit and display the named
// repository registry persisted by the settings store.
package registry
