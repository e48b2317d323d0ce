package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/draftpad/internal/config"
)

var styleCmd = &cobra.Command{
	Use:       "style NAME",
	Short:     "Change how an inline style is drawn",
	Long:      `Write a theme override for HEADING, BOLD, RED or UNDERLINE to the config file, keeping its comments.`,
	Example:   `  draftpad style red --fg "#FF8787"` + "\n" + `  draftpad style heading --underline=false`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: config.StyleNames,
	RunE:      runStyle,
}

func init() {
	styleCmd.Flags().String("fg", "", "foreground color (#RRGGBB, #RGB or ANSI number)")
	styleCmd.Flags().Bool("bold", false, "draw bold")
	styleCmd.Flags().Bool("underline", false, "draw underlined")
	rootCmd.AddCommand(styleCmd)
}

func runStyle(cmd *cobra.Command, args []string) error {
	name := strings.ToUpper(args[0])

	var sc config.StyleConfig
	sc.Foreground, _ = cmd.Flags().GetString("fg")
	if cmd.Flags().Changed("bold") {
		v, _ := cmd.Flags().GetBool("bold")
		sc.Bold = &v
	}
	if cmd.Flags().Changed("underline") {
		v, _ := cmd.Flags().GetBool("underline")
		sc.Underline = &v
	}
	if sc == (config.StyleConfig{}) {
		return fmt.Errorf("nothing to change: pass --fg, --bold or --underline")
	}

	path := configFilePath()
	if err := config.SaveStyle(path, name, sc); err != nil {
		return err
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Saved %s style to %s\n", name, path)
	return err
}
