// Package cli implements the figlift command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/figlift/figlift/internal/kiwi"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "text" | "json" | "yaml"

	// Decoder overrides the registered kiwi decoder; tests inject fakes
	// here. Nil means use whatever the binary linked in.
	Decoder kiwi.Decoder
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for the figlift CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "figlift",
		Short: "figlift - design file container converter",
		Long:  "figlift converts proprietary design-tool document containers into a deterministic JSON document tree.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")

	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewInspectCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))
	cmd.AddCommand(NewIndexCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// decoder resolves the kiwi decoder for a run: the injected one if set,
// otherwise the registered implementation.
func (o *RootOptions) decoder() (kiwi.Decoder, error) {
	if o.Decoder != nil {
		return o.Decoder, nil
	}
	return kiwi.Registered()
}
