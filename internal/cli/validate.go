package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/figlift/figlift/internal/pipeline"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Input string `json:"input" yaml:"input"`
	Valid bool   `json:"valid" yaml:"valid"`
	Code  string `json:"code,omitempty" yaml:"code,omitempty"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// String renders the result for text output.
func (r ValidationResult) String() string {
	if r.Valid {
		return fmt.Sprintf("✓ %s is a valid document container", r.Input)
	}
	return fmt.Sprintf("✗ %s: %s: %s", r.Input, r.Code, r.Error)
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Run the full pipeline and report validity",
		Long: `Run the full pipeline and report validity.

Framing, decompression, decoding, and tree reconstruction all run; the
document itself is discarded. Exits 1 when the container is invalid.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "treat duplicate node GUIDs as errors")

	return cmd
}

func runValidate(opts *ConvertOptions, input string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	dec, err := opts.decoder()
	if err != nil {
		formatter.Error(ErrCodeGeneric, err.Error())
		return WrapExitError(ExitCommandError, "validate failed", err)
	}

	data, err := os.ReadFile(input)
	if err != nil {
		formatter.Error(ErrCodeGeneric, err.Error())
		return WrapExitError(ExitCommandError, "reading input", err)
	}

	_, err = pipeline.Convert(data, dec, pipeline.Options{StrictGUIDs: opts.Strict})
	if err != nil {
		result := ValidationResult{Input: input, Valid: false, Code: errorCode(err), Error: err.Error()}
		if ferr := formatter.Success(result); ferr != nil {
			return ferr
		}
		return WrapExitError(ExitFailure, "invalid container", err)
	}

	return formatter.Success(ValidationResult{Input: input, Valid: true})
}
