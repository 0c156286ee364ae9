// Package clones creates, discovers and removes branch clones below the managed root.
//
// Every path the Service touches is built from sanitized identifiers, joined with
// filepath-securejoin, and checked by the security package before git runs or anything is
// created or deleted.
package clones
