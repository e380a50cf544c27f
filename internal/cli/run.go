package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/forPelevin/hlselect/internal/config"
	"github.com/forPelevin/hlselect/internal/logging"
	"github.com/forPelevin/hlselect/internal/pipeline"
)

func run(cmd *cobra.Command, input string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	outDir, _ := cmd.Flags().GetString("out")
	model, _ := cmd.Flags().GetString("model")
	logLevel, _ := cmd.Flags().GetString("log-level")
	maxAttempts, _ := cmd.Flags().GetInt("max-attempts")

	c, _, _, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if outDir != "" {
		c.Paths.OutDir = outDir
	}
	if model != "" {
		c.LLM.Model = model
	}
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if maxAttempts >= 0 {
		c.Selection.MaxAttempts = maxAttempts
	}

	logger, err := logging.New(logging.Options{Level: c.Logging.Level, Format: c.Logging.Format})
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	absIn, err := filepath.Abs(input)
	if err != nil {
		return err
	}

	// Ctrl-C cancels pending prompts instead of killing the process.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := pipeline.Config{
		Input:        absIn,
		OutDir:       c.Paths.OutDir,
		Mode:         c.Mode(),
		MaxAttempts:  c.Selection.MaxAttempts,
		PreviewChars: c.Selection.PreviewChars,

		OpenRouterAPIKey:       c.LLM.APIKey,
		OpenRouterModel:        c.LLM.Model,
		OpenRouterBaseURL:      c.LLM.BaseURL,
		OpenRouterAllowedHosts: c.LLM.AllowedHosts,
		OpenRouterReferer:      c.LLM.Referer,
		OpenRouterTitle:        c.LLM.Title,
		OpenRouterTimeout:      time.Duration(c.LLM.TimeoutSeconds) * time.Second,

		Logger: logger,
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger.Debug("starting", zap.String("mode", cfg.Mode.String()), zap.String("model", cfg.OpenRouterModel))

	_, err = pipeline.Run(ctx, cfg)
	return err
}
