package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/figlift/figlift/internal/fig"
)

// InspectReport describes a container at the framing level. No decoding
// happens during inspect, so it works without a kiwi decoder linked in.
type InspectReport struct {
	FileType   string      `json:"fileType" yaml:"fileType"`
	ZipWrapped bool        `json:"zipWrapped" yaml:"zipWrapped"`
	ChunkCount int         `json:"chunkCount" yaml:"chunkCount"`
	Chunks     []ChunkInfo `json:"chunks" yaml:"chunks"`
}

// ChunkInfo summarizes one chunk. UncompressedSize is -1 when the body does
// not inflate.
type ChunkInfo struct {
	Index            int    `json:"index" yaml:"index"`
	Offset           int    `json:"offset" yaml:"offset"`
	CompressedSize   int    `json:"compressedSize" yaml:"compressedSize"`
	UncompressedSize int    `json:"uncompressedSize" yaml:"uncompressedSize"`
	Role             string `json:"role" yaml:"role"`
}

// String renders the report for text output.
func (r InspectReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "fileType: %s\n", r.FileType)
	fmt.Fprintf(&b, "zipWrapped: %v\n", r.ZipWrapped)
	fmt.Fprintf(&b, "chunks: %d", r.ChunkCount)
	for _, c := range r.Chunks {
		fmt.Fprintf(&b, "\n  [%d] %s: offset=%d compressed=%d uncompressed=%d",
			c.Index, c.Role, c.Offset, c.CompressedSize, c.UncompressedSize)
	}
	return b.String()
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Report container structure without decoding",
		Long: `Report container structure without decoding.

Shows the detected variant, ZIP wrapping, and per-chunk sizes. Chunk bodies
are inflated to measure them but never decoded.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runInspect(opts *RootOptions, input string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	data, err := os.ReadFile(input)
	if err != nil {
		formatter.Error(ErrCodeGeneric, err.Error())
		return WrapExitError(ExitCommandError, "reading input", err)
	}

	report, err := inspect(data)
	if err != nil {
		formatter.Error(errorCode(err), err.Error())
		return WrapExitError(ExitFailure, "inspect failed", err)
	}
	return formatter.Success(report)
}

func inspect(data []byte) (InspectReport, error) {
	report := InspectReport{}

	if fig.IsArchive(data) {
		report.ZipWrapped = true
		inner, err := fig.ResolveCanvas(data)
		if err != nil {
			return InspectReport{}, err
		}
		data = inner
	}

	container, err := fig.Frame(data)
	if err != nil {
		return InspectReport{}, err
	}

	report.FileType = string(container.Type)
	report.ChunkCount = len(container.Chunks)
	for i, chunk := range container.Chunks {
		info := ChunkInfo{
			Index:          i,
			Offset:         chunk.Offset,
			CompressedSize: len(chunk.Body),
			Role:           chunkRole(i),
		}
		if body, err := fig.Decompress(i, chunk.Body); err != nil {
			info.UncompressedSize = -1
		} else {
			info.UncompressedSize = len(body)
		}
		report.Chunks = append(report.Chunks, info)
	}
	return report, nil
}

func chunkRole(index int) string {
	switch index {
	case 0:
		return "schema"
	case 1:
		return "data"
	default:
		return "reserved"
	}
}
