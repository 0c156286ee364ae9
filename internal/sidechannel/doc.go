// Package sidechannel passes a clone directory back to the shell that invoked the CLI.
//
// A child process cannot change its parent's working directory, so the path is written to a
// private temp file and a single marker line naming that file is printed for a shell wrapper to read.
package sidechannel
