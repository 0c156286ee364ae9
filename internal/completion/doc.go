// Package completion supplies cobra ValidArgsFunction implementations for
// registered repository names and cloned branch names.
package completion
