package main

import (
	"fmt"
	"os"

	"hiper-bot/internal/models"
	"hiper-bot/internal/repository"
	"hiper-bot/internal/service"
	"hiper-bot/pkg/config"
	"hiper-bot/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var knowledgePath string

var rootCmd = &cobra.Command{
	Use:   "hiper-bot",
	Short: "Keyword assistant for carrier and Protheus procedures",
	Long: `Hiper Bot answers questions about shipping carriers and the Protheus ERP
from a local knowledge document. Without a subcommand it starts the HTTP server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&knowledgePath, "knowledge", "", "path to the knowledge document (overrides KNOWLEDGE_PATH)")
}

// app holds what every command needs.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	kb        *models.KnowledgeBase
	resolver  *service.ResolverService
	relevance *service.RelevanceService
	warnings  []string
}

// bootstrap loads configuration and the knowledge document. With quiet set,
// logs go to LOG_FILE or nowhere so terminal output stays clean.
func bootstrap(quiet bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if knowledgePath != "" {
		cfg.Knowledge.Path = knowledgePath
	}

	var appLogger *zap.Logger
	switch {
	case quiet && cfg.Logger.File != "":
		appLogger, err = logger.New(cfg.Logger.Level, cfg.Logger.File)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
	case quiet:
		appLogger = zap.NewNop()
	default:
		if err := logger.Init(cfg.Logger.Level); err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
		appLogger = logger.Get()
	}

	kb, err := repository.NewKnowledgeRepository(cfg.Knowledge.Path, appLogger).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge document %s: %w", cfg.Knowledge.Path, err)
	}

	extractor, err := service.NewKeywordExtractor(service.DefaultVocabulary)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:       cfg,
		logger:    appLogger,
		kb:        kb,
		resolver:  service.NewResolverService(kb, extractor, cfg.Knowledge.FallbackSystem, appLogger),
		relevance: service.NewRelevanceService(&cfg.Cohere, appLogger),
	}
	if !cfg.HasCohereKey() {
		warning := "COHERE_API_KEY não configurada: a verificação de relevância está desativada."
		a.warnings = append(a.warnings, warning)
		appLogger.Warn("COHERE_API_KEY is not set, relevance check disabled")
	}
	return a, nil
}
