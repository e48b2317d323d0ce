package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the saved document",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, _ []string) error {
	c, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	docs, kv, err := openStore(c)
	if err != nil {
		return err
	}
	defer func() { _ = kv.Close() }()

	savedAt, found, err := docs.SavedAt(cmd.Context())
	if err != nil {
		return err
	}
	if !found {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Nothing saved under %q\n", docs.Key())
		return err
	}
	if err := docs.Clear(cmd.Context()); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Cleared %q (last saved %s)\n", docs.Key(), savedAt.Format(time.DateTime))
	return err
}
