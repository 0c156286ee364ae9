// Package pathutils expands user home shortcuts in configured paths.
package pathutils
