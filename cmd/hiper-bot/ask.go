package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var askVerbose bool

var askCmd = &cobra.Command{
	Use:   "ask <question...>",
	Short: "Print the answer to a single question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(true)
		if err != nil {
			return err
		}

		res := a.resolver.Resolve(strings.Join(args, " "))
		if askVerbose {
			cmd.Printf("keywords: %s\n", strings.Join(res.Keywords, ", "))
			cmd.Printf("outcome: %s\n", res.Outcome)
			if res.Source != "" {
				cmd.Printf("source: %s / %s\n", res.Source, res.TopicKey)
			}
		}
		cmd.Println(res.Answer)
		return nil
	},
}

func init() {
	askCmd.Flags().BoolVarP(&askVerbose, "verbose", "v", false, "also print keywords and where the answer came from")
	rootCmd.AddCommand(askCmd)
}
