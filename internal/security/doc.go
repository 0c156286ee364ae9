// Package security sanitizes user-supplied identifiers and remotes, confines filesystem
// mutations to the managed root, and redacts locations from error messages.
//
// Every function here is pure. Validation failures are ValidationError values that can be
// compared with errors.Is against ErrInvalidIdentifier, ErrInvalidRemote and ErrPathEscape.
package security
