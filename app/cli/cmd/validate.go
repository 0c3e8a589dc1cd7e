package cmd

import (
	"fmt"
	"log"

	"flotilla/pkg/config"

	"github.com/spf13/cobra"
)

type validateOpts struct {
	configFile string // --config
}

// NewValidateCommand returns a new instance of the validate command
func NewValidateCommand() *cobra.Command {
	var opts validateOpts
	command := &cobra.Command{
		Use:   "validate",
		Short: "validate the service file without synthesizing",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load(opts.configFile)
			if err != nil {
				log.Fatal(err)
			}
			if err := cfg.Validate(); err != nil {
				log.Fatal(err)
			}
			for id, task := range cfg.Tasks {
				if err := task.Validate(id); err != nil {
					log.Fatal(err)
				}
			}
			fmt.Println("configuration is valid")
		},
	}
	command.Flags().StringVarP(&opts.configFile, "config", "c", "serverless.json", "service file to validate")

	return command
}
