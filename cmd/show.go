package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/draftpad/internal/ui/shared/markdown"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved document as markdown",
	Long: `Print the saved document rendered as markdown. A block styled as a
heading throughout becomes "# ", bold text becomes **bold** and underlined
text becomes <u>underline</u>. Red has no markdown form and prints plain.`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	showCmd.Flags().Bool("raw", false, "print markdown source instead of rendering it")
	showCmd.Flags().IntP("width", "w", 80, "word wrap width for rendered output")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
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
	if raw, _ := cmd.Flags().GetBool("raw"); raw {
		_, err = fmt.Fprint(cmd.OutOrStdout(), markdown.FromSnapshot(snap))
		return err
	}

	width, _ := cmd.Flags().GetInt("width")
	renderer, err := markdown.New(width, c.UI.MarkdownStyle)
	if err != nil {
		return fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := renderer.RenderSnapshot(snap)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}
