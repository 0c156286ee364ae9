// Package ui renders human-facing console output.
//
// GitProgressLogger turns git lifecycle events into timed sentences for the console log
// format, and Printer renders status lines and the clone table with lipgloss.
package ui
