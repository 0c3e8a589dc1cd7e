package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"flotilla/pkg/config"
	"flotilla/pkg/image"
	"flotilla/pkg/synth"
	"flotilla/pkg/util/context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type synthOpts struct {
	configFile string // --config
	output     string // --output
}

// NewSynthCommand returns a new instance of the synth command
func NewSynthCommand() *cobra.Command {
	var opts synthOpts
	command := &cobra.Command{
		Use:   "synth",
		Short: "synthesize the resource graph from the service file",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load(opts.configFile)
			if err != nil {
				log.Fatal(err)
			}

			ctx := context.Background()
			builder, err := image.NewECRBuilder(ctx)
			if err != nil {
				log.Fatal(err)
			}

			g, err := synth.New(builder).Synthesize(ctx, cfg)
			if err != nil {
				log.Fatal(err)
			}

			out, err := json.MarshalIndent(g, "", "  ")
			if err != nil {
				log.Fatal(errors.Wrap(err, "cannot serialize resource graph"))
			}
			if opts.output != "" {
				if err := os.WriteFile(opts.output, out, 0644); err != nil {
					log.Fatal(errors.Wrapf(err, "cannot write file %s", opts.output))
				}
			} else {
				fmt.Println(string(out))
			}
		},
	}
	command.Flags().StringVarP(&opts.configFile, "config", "c", "serverless.json", "service file to synthesize")
	command.Flags().StringVarP(&opts.output, "output", "o", "", "write the template to the given file instead of stdout")

	return command
}
