package main

import (
	"errors"

	"hiper-bot/internal/service"

	"github.com/spf13/cobra"
)

var (
	checkQuestion string
	checkAnswer   string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Ask the language model whether an answer fits a question",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := bootstrap(true)
		if err != nil {
			return err
		}

		verdict := a.relevance.Check(cmd.Context(), checkQuestion, checkAnswer)
		if verdict.Relevant {
			cmd.Println("sim")
		} else {
			cmd.Println("não")
		}
		// A missing credential is a warning; any other failure exits 1.
		if errors.Is(verdict.Err, service.ErrMissingCredential) {
			cmd.PrintErrln("aviso:", verdict.Err)
			return nil
		}
		return verdict.Err
	},
}

func init() {
	checkCmd.Flags().StringVarP(&checkQuestion, "question", "q", "", "user question")
	checkCmd.Flags().StringVarP(&checkAnswer, "answer", "a", "", "suggested answer")
	_ = checkCmd.MarkFlagRequired("question")
	_ = checkCmd.MarkFlagRequired("answer")
	rootCmd.AddCommand(checkCmd)
}
