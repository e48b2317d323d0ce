package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/draftpad/internal/document"
	"github.com/zjrosen/draftpad/internal/ui/shared/markdown"
)

// Export formats.
const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the saved document in json, yaml or markdown",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringP("format", "f", FormatJSON, "output format: json, yaml or markdown")
	exportCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	c, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	docs, kv, err := openStore(c)
	if err != nil {
		return err
	}
	defer func() { _ = kv.Close() }()

	snap, err := docs.Load(cmd.Context())
	if err != nil {
		return err
	}

	if output == "" {
		return writeExport(cmd.OutOrStdout(), snap, format)
	}
	f, err := os.Create(output) //nolint:gosec // G304: user-chosen output path
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	return exportAndClose(f, snap, format)
}

// exportAndClose writes the export to wc and reports a failed close, which
// is where buffered file writes surface.
func exportAndClose(wc io.WriteCloser, snap document.Snapshot, format string) (err error) {
	defer func() {
		if closeErr := wc.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing output file: %w", closeErr)
		}
	}()
	return writeExport(wc, snap, format)
}

func writeExport(w io.Writer, snap document.Snapshot, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(document.ToRaw(snap))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(document.ToRaw(snap)); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatMarkdown:
		_, err := io.WriteString(w, markdown.FromSnapshot(snap))
		return err
	default:
		return fmt.Errorf("unknown format %q: want %s, %s or %s", format, FormatJSON, FormatYAML, FormatMarkdown)
	}
}
