// Package cmd implements the command-line interface for zapp.
package cmd

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zapp-cli/zapp/filesystem"
	"github.com/zapp-cli/zapp/inline"
	"github.com/zapp-cli/zapp/key"
	"github.com/zapp-cli/zapp/query"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("query", "q", "", "The search query to filter the channel catalog with")
	inlineCmd.Flags().StringP("channel", "C", "", "Criteria for selecting a single channel from the results")
	inlineCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	inlineCmd.Flags().BoolP("url-only", "u", false, "Print only stream URLs in plain output")
	inlineCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")

	_ = inlineCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
}

// inlineCmd executes the application in non-interactive, scriptable inline mode.
var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Execute the application in non-interactive, scriptable inline mode",
	Long: `Query the configured playlist for automated execution and data extraction.

Channel selectors:
  first - first channel in the list
  last - last channel in the list
  exact - channel whose name equals the query
  index - channel by index (starting from 0, pass the index as the query)`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err    error
			writer io.Writer
		)

		output := lo.Must(cmd.Flags().GetString("output"))
		if output != "" {
			writer, err = filesystem.API().Create(output)
			handleErr(err)
		} else {
			writer = os.Stdout
		}

		searchQuery := lo.Must(cmd.Flags().GetString("query"))

		channelFlag := lo.Must(cmd.Flags().GetString("channel"))
		channelPicker := mo.None[inline.ChannelPicker]()
		if channelFlag != "" {
			fn, err := inline.ParseChannelPicker(channelFlag, searchQuery)
			handleErr(err)
			channelPicker = mo.Some(fn)
		}

		options := &inline.Options{
			Out:           writer,
			PlaylistURL:   viper.GetString(key.PlaylistURL),
			PlaylistName:  viper.GetString(key.PlaylistName),
			Query:         searchQuery,
			Json:          lo.Must(cmd.Flags().GetBool("json")),
			UrlOnly:       lo.Must(cmd.Flags().GetBool("url-only")),
			ChannelPicker: channelPicker,
		}

		handleErr(inline.Run(options))
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)
}

// inlineSchemaCmd generates JSON schemas for structured inline mode outputs.
var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate JSON schemas for structured inline mode outputs",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "channel", "output":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		schema := reflector.Reflect(&inline.Output{})

		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}
