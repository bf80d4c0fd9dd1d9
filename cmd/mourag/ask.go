package main

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"mourag/internal/answerer"
	"mourag/internal/llm"
	"mourag/internal/tui"
)

var (
	askProvider string
	askModel    string
	askK        int
)

var askCmd = &cobra.Command{
	Use:   "ask <folder> [question...]",
	Short: "Answer questions from an indexed collection",
	Long: `ask answers questions against the vector store collection named
after the folder. With a question on the command line it prints a
single answer and exits; without one it opens an interactive session.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder := args[0]

		store, err := openStore()
		if err != nil {
			return err
		}
		collection, err := store.Open(folder)
		if err != nil {
			return err
		}

		llmCfg, err := cfg.LLMConfigFor(askProvider, askModel)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		gen, err := llm.New(ctx, llmCfg)
		if err != nil {
			return err
		}

		a := answerer.New(newEmbedder(), collection, gen, cfg.LLM.Temperature, log)

		k := askK
		if k == 0 {
			k = cfg.K
		}

		if len(args) > 1 {
			answer, err := a.Ask(ctx, strings.Join(args[1:], " "), k)
			if err != nil {
				return err
			}
			fmt.Println(answer)
			return nil
		}

		// Stage logs would tear the alternate screen apart.
		log.SetOutput(io.Discard)
		m := tui.New(a, folder, k)
		_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	},
}

func init() {
	askCmd.Flags().StringVar(&askProvider, "provider", "", "LLM provider (google, openrouter, ollama)")
	askCmd.Flags().StringVar(&askModel, "model", "", "model override")
	askCmd.Flags().IntVar(&askK, "k", 0, "number of context chunks to retrieve (default from config)")
}
