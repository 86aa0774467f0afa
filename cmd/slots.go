// Package cmd implements the command-line interface for zapp.
package cmd

import (
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/zapp-cli/zapp/color"
	"github.com/zapp-cli/zapp/icon"
	"github.com/zapp-cli/zapp/slots"
	"github.com/zapp-cli/zapp/style"
)

func init() {
	rootCmd.AddCommand(slotsCmd)
	slotsCmd.SetOut(os.Stdout)

	slotsCmd.AddCommand(slotsSetCmd)
	slotsSetCmd.Flags().IntP("number", "n", 0, "The slot number to assign (1-6)")
	slotsSetCmd.Flags().StringP("url", "u", "", "The stream URL to bind to the slot")
	slotsSetCmd.Flags().StringP("glyph", "g", "", "Optional glyph shown for the slot")
	lo.Must0(slotsSetCmd.MarkFlagRequired("number"))
	lo.Must0(slotsSetCmd.MarkFlagRequired("url"))

	slotsCmd.AddCommand(slotsClearCmd)
	slotsClearCmd.Flags().IntP("number", "n", 0, "The slot number to clear (1-6)")
	lo.Must0(slotsClearCmd.MarkFlagRequired("number"))
}

// slotsCmd lists the quick play slots and their bound streams.
var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Manage the quick play slots bound to the number keys",
	Run: func(cmd *cobra.Command, args []string) {
		for i, slot := range slots.Load() {
			label := style.Faint("unset")
			if url, ok := slot.URL.Get(); ok {
				label = style.Fg(color.Green)(url)
			}

			cmd.Printf("%d %s %s\n", i+1, slot.Glyph, label)
		}
	},
}

// slotsSetCmd binds a stream URL to a quick play slot.
var slotsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Bind a stream URL to a quick play slot",
	RunE: func(cmd *cobra.Command, args []string) error {
		number := lo.Must(cmd.Flags().GetInt("number"))
		if number < 1 || number > slots.Count {
			return fmt.Errorf("slot number must be between 1 and %d", slots.Count)
		}

		loaded := slots.Load()
		loaded[number-1].URL = mo.Some(lo.Must(cmd.Flags().GetString("url")))
		if glyph := lo.Must(cmd.Flags().GetString("glyph")); glyph != "" {
			loaded[number-1].Glyph = glyph
		}

		if err := slots.Save(loaded); err != nil {
			return err
		}

		fmt.Printf("%s slot %d updated\n", icon.Get(icon.Success), number)
		return nil
	},
}

// slotsClearCmd unbinds a quick play slot.
var slotsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Unbind a quick play slot",
	RunE: func(cmd *cobra.Command, args []string) error {
		number := lo.Must(cmd.Flags().GetInt("number"))
		if number < 1 || number > slots.Count {
			return fmt.Errorf("slot number must be between 1 and %d", slots.Count)
		}

		loaded := slots.Load()
		loaded[number-1].URL = mo.None[string]()

		if err := slots.Save(loaded); err != nil {
			return err
		}

		fmt.Printf("%s slot %d cleared\n", icon.Get(icon.Success), number)
		return nil
	},
}
