package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCommand returns a new instance of a flotilla command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "flotilla",
		Short: "flotilla compiles declarative fargate task definitions into a deployment template",
		Run: func(cmd *cobra.Command, args []string) {

		},
	}

	rootCmd.AddCommand(NewSynthCommand())
	rootCmd.AddCommand(NewValidateCommand())
	return rootCmd
}
