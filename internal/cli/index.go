package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/figlift/figlift/internal/catalog"
	"github.com/figlift/figlift/internal/docval"
	"github.com/figlift/figlift/internal/kiwi"
	"github.com/figlift/figlift/internal/pipeline"
)

// IndexOptions holds flags for the index command.
type IndexOptions struct {
	*RootOptions
	DB     string
	List   bool
	Strict bool
}

// IndexSummary reports an indexing run.
type IndexSummary struct {
	Indexed int      `json:"indexed" yaml:"indexed"`
	Failed  int      `json:"failed" yaml:"failed"`
	Errors  []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// String renders the summary for text output.
func (s IndexSummary) String() string {
	out := fmt.Sprintf("indexed %d file(s), %d failure(s)", s.Indexed, s.Failed)
	if len(s.Errors) > 0 {
		out += "\n  " + strings.Join(s.Errors, "\n  ")
	}
	return out
}

// NewIndexCommand creates the index command.
func NewIndexCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &IndexOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "index [<dir>]",
		Short: "Catalog the design files under a directory",
		Long: `Catalog the design files under a directory.

Converts every .fig file found and records path, variant, version, node
count, and content digest in a SQLite catalog. Files that fail to convert
are reported and skipped. With --list, prints the catalog instead.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.List {
				return runIndexList(opts, cmd)
			}
			if len(args) != 1 {
				return fmt.Errorf("index requires a directory (or --list)")
			}
			return runIndex(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "figlift.db", "catalog database path")
	cmd.Flags().BoolVar(&opts.List, "list", false, "print the catalog instead of indexing")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "treat duplicate node GUIDs as errors")

	return cmd
}

func runIndex(opts *IndexOptions, dir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	logger := NewLogger(cmd.ErrOrStderr(), opts.Verbose)

	dec, err := opts.decoder()
	if err != nil {
		formatter.Error(ErrCodeGeneric, err.Error())
		return WrapExitError(ExitCommandError, "index failed", err)
	}

	cat, err := catalog.Open(opts.DB)
	if err != nil {
		formatter.Error(ErrCodeGeneric, err.Error())
		return WrapExitError(ExitCommandError, "opening catalog", err)
	}
	defer cat.Close()

	summary := IndexSummary{}
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".fig") {
			return nil
		}

		entry, convErr := indexOne(path, dec, opts.Strict)
		if convErr != nil {
			// One bad file does not abort the walk; its error is permanent
			// for those bytes and retrying would not help.
			logger.Warn().Err(convErr).Str("file", path).Msg("skipping unconvertible file")
			summary.Failed++
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", path, convErr))
			return nil
		}

		if err := cat.Upsert(cmd.Context(), entry); err != nil {
			return err
		}
		logger.Debug().Str("file", path).Int64("nodes", entry.NodeCount).Msg("indexed")
		summary.Indexed++
		return nil
	})
	if walkErr != nil {
		formatter.Error(ErrCodeGeneric, walkErr.Error())
		return WrapExitError(ExitCommandError, "walking directory", walkErr)
	}

	return formatter.Success(summary)
}

func runIndexList(opts *IndexOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cat, err := catalog.Open(opts.DB)
	if err != nil {
		formatter.Error(ErrCodeGeneric, err.Error())
		return WrapExitError(ExitCommandError, "opening catalog", err)
	}
	defer cat.Close()

	entries, err := cat.List(cmd.Context())
	if err != nil {
		formatter.Error(ErrCodeGeneric, err.Error())
		return WrapExitError(ExitCommandError, "listing catalog", err)
	}

	if opts.Format == "text" {
		for _, e := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tv%d\t%d nodes\t%s\n",
				e.Path, e.FileType, e.Version, e.NodeCount, e.Digest[:12])
		}
		return nil
	}
	return formatter.Success(entries)
}

// indexOne converts a single file and summarizes it as a catalog entry.
func indexOne(path string, dec kiwi.Decoder, strict bool) (catalog.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return catalog.Entry{}, err
	}

	env, err := pipeline.Convert(data, dec, pipeline.Options{StrictGUIDs: strict})
	if err != nil {
		return catalog.Entry{}, err
	}

	digest, err := pipeline.CanonicalDigest(env)
	if err != nil {
		return catalog.Entry{}, err
	}

	entry := catalog.Entry{Path: path, Digest: digest}
	if v, ok := env.Get("fileType"); ok {
		if s, ok := v.(docval.String); ok {
			entry.FileType = string(s)
		}
	}
	if v, ok := env.Get("version"); ok {
		if n, ok := v.(docval.Number); ok {
			entry.Version = int64(n)
		}
	}
	if doc, ok := env.Get("document"); ok {
		entry.NodeCount = int64(countNodes(doc))
	}
	return entry, nil
}

// countNodes counts the records in a reconstructed tree: the node itself
// plus every node under its children arrays.
func countNodes(v docval.Value) int {
	obj, ok := v.(*docval.Object)
	if !ok {
		return 0
	}
	count := 1
	if kids, ok := obj.Get("children"); ok {
		if arr, ok := kids.(docval.Array); ok {
			for _, kid := range arr {
				count += countNodes(kid)
			}
		}
	}
	return count
}
