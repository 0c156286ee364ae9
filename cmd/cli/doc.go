// Package cli assembles the cln command tree: the interactive root command,
// the registry commands and the clone commands, together with configuration
// loading, logger construction and the mapping from errors to exit codes.
package cli
