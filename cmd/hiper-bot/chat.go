package main

import (
	"hiper-bot/internal/service"
	"hiper-bot/internal/tui"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the terminal chat",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := bootstrap(true)
		if err != nil {
			return err
		}

		return tui.Run(tui.Params{
			Chat:        service.NewChatService(a.resolver, service.NopRecorder(), a.logger),
			Session:     service.NewSession(),
			Warnings:    a.warnings,
			ThinkDelay:  a.cfg.TUI.ThinkDelay,
			TypingDelay: a.cfg.TUI.TypingDelay,
		})
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
