// Package flags binds the flags shared by several cln commands.
package flags

import "github.com/spf13/cobra"

const (
	// AssumeYesFlagName exposes the shared assume-yes flag name.
	AssumeYesFlagName = "yes"
	// AssumeYesFlagShorthand provides the shorthand for the assume-yes flag.
	AssumeYesFlagShorthand = "y"
	// AssumeYesFlagUsage describes the shared assume-yes flag purpose.
	AssumeYesFlagUsage = "Skip the confirmation prompt"
)

// BindAssumeYesFlag attaches --yes/-y to command.
func BindAssumeYesFlag(command *cobra.Command) {
	if command == nil {
		return
	}
	command.Flags().BoolP(AssumeYesFlagName, AssumeYesFlagShorthand, false, AssumeYesFlagUsage)
}

// AssumeYes reports whether --yes was given. Commands without the flag never assume yes.
func AssumeYes(command *cobra.Command) bool {
	if command == nil {
		return false
	}
	flag := command.Flags().Lookup(AssumeYesFlagName)
	if flag == nil {
		return false
	}
	assumeYes, parseError := command.Flags().GetBool(AssumeYesFlagName)
	if parseError != nil {
		return false
	}
	return assumeYes
}
