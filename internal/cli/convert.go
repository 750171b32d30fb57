package cli

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/figlift/figlift/internal/docval"
	"github.com/figlift/figlift/internal/pipeline"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	*RootOptions
	Output string // output file path; empty writes the document to stdout
	Strict bool   // duplicate node GUIDs become hard errors
}

// ConvertSummary is what structured output reports after a conversion.
type ConvertSummary struct {
	Input  string `json:"input" yaml:"input"`
	Output string `json:"output,omitempty" yaml:"output,omitempty"`
	Bytes  int    `json:"bytes" yaml:"bytes"`
	Digest string `json:"digest" yaml:"digest"`
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a design file container to a JSON document tree",
		Long: `Convert a design file container to a JSON document tree.

Reads the container (raw or ZIP-wrapped), decodes it, and reconstructs the
node tree. Without --output the document JSON goes to stdout; with --output
it is written atomically and a summary is printed instead.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "treat duplicate node GUIDs as errors")

	return cmd
}

func runConvert(opts *ConvertOptions, input string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	out, err := convertFile(opts.RootOptions, input, opts.Strict, formatter)
	if err != nil {
		formatter.Error(errorCode(err), err.Error())
		return WrapExitError(exitCodeFor(err), "convert failed", err)
	}

	if opts.Output == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	if err := writeFileAtomic(opts.Output, out); err != nil {
		formatter.Error(ErrCodeGeneric, err.Error())
		return WrapExitError(ExitCommandError, "writing output", err)
	}

	return formatter.Success(ConvertSummary{
		Input:  input,
		Output: opts.Output,
		Bytes:  len(out),
		Digest: pipeline.DigestBytes(out),
	})
}

// convertFile reads a container file, runs the pipeline, and returns the
// marshaled envelope.
func convertFile(opts *RootOptions, input string, strict bool, formatter *OutputFormatter) ([]byte, error) {
	dec, err := opts.decoder()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", input, err)
	}
	formatter.VerboseLog("read %d bytes from %s", len(data), input)

	env, err := pipeline.Convert(data, dec, pipeline.Options{StrictGUIDs: strict})
	if err != nil {
		return nil, err
	}

	return docval.Marshal(env)
}

// exitCodeFor distinguishes "the input document is invalid" from "the
// command could not run" (missing file, no decoder linked).
func exitCodeFor(err error) int {
	if errorCode(err) == ErrCodeGeneric {
		return ExitCommandError
	}
	return ExitFailure
}

// writeFileAtomic writes to a uuid-suffixed temp file in the target
// directory and renames it into place, so a crash mid-write never leaves a
// truncated output at the destination path.
func writeFileAtomic(path string, data []byte) error {
	tmp := fmt.Sprintf("%s.%s.tmp", path, uuid.NewString())
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming temp file into place: %w", err)
	}
	return nil
}
