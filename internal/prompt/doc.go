// Package prompt reads interactive answers from line-oriented input.
package prompt
