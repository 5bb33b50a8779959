package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"deckgen/assemble"
	"deckgen/core"
	"deckgen/core/validation"
	"deckgen/db"
	"deckgen/describe"
	"deckgen/ideasource"
	"deckgen/logging"
	"deckgen/outline"
	"deckgen/pipeline"
	"deckgen/pptx"
	"deckgen/prompts"
	"deckgen/render"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	skipValidation := flag.Bool("skip-validation", false, "skip startup configuration checks")
	flag.Parse()

	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Use fmt here since logger isn't initialized yet
		fmt.Printf("Warning: .env file not found: %v\n", err)
	}

	isDevelopment := os.Getenv("DEV_MODE") == "true"

	logger, err := logging.NewLogger(isDevelopment, "deckgen.log")
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		return core.ExitCodeError
	}
	defer logger.Sync()

	if flag.NArg() < 1 {
		fmt.Println("Usage: deckgen [flags] <idea | idea.txt | brief.pdf>")
		flag.PrintDefaults()
		return core.ExitCodeError
	}

	if !*skipValidation {
		if code := runStartupValidation(logger); code != core.ExitCodeSuccess {
			return code
		}
	}

	cfg, err := core.LoadConfig()
	if err != nil {
		logger.Error("Failed to load configuration", zap.Error(err))
		return core.ExitCodeError
	}

	logger.Info("Configuration loaded",
		zap.String("text_model", cfg.TextModel),
		zap.String("image_model", cfg.ImageModel),
		zap.String("output_root", cfg.OutputRoot),
		zap.String("aspect_ratio", cfg.AspectRatio),
		zap.Int("describe_workers", cfg.DescribeWorkers),
		zap.Int("render_workers", cfg.RenderWorkers),
		zap.Bool("dev_mode", isDevelopment),
	)

	idea, err := ideasource.ReadIdea(strings.Join(flag.Args(), " "))
	if err != nil {
		logger.Error("Failed to resolve idea", zap.Error(err))
		return core.ExitCodeError
	}

	templates, err := prompts.Load(cfg.PromptsPath)
	if err != nil {
		logger.Error("Failed to load prompt templates", zap.Error(err))
		return core.ExitCodeError
	}

	// Run history is optional: no database path, no history.
	var runs *db.RunRepository
	if cfg.HasDatabase() {
		database, err := db.NewDatabase(cfg.DatabasePath)
		if err != nil {
			logger.Error("Failed to open run history database", zap.Error(err))
			return core.ExitCodeError
		}
		defer database.Close()
		runs = db.NewRunRepository(database)
	}

	orch, err := buildOrchestrator(cfg, templates, runs, logger)
	if err != nil {
		logger.Error("Failed to build pipeline", zap.Error(err))
		return core.ExitCodeError
	}

	// Cancel the run on interrupt; in-flight pages fail, the run errors out.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	interrupted := make(chan os.Signal, 1)
	go func() {
		sig := <-sigChan
		logger.Info("Received interrupt signal, stopping run...")
		interrupted <- sig
		cancel()
	}()

	report, runErr := orch.Run(ctx, idea)
	report.Print(os.Stdout)

	select {
	case sig := <-interrupted:
		if sig == syscall.SIGTERM {
			return core.ExitCodeSIGTERM
		}
		return core.ExitCodeSIGINT
	default:
	}

	if runErr != nil {
		logger.Error("Run failed", zap.Error(runErr))
		return core.ExitCodeError
	}

	logger.Info("Deck ready", zap.String("path", report.DeckPath))
	return core.ExitCodeSuccess
}

// buildOrchestrator wires the stages to their generators and the packager.
func buildOrchestrator(cfg *core.Config, templates prompts.Set, runs *db.RunRepository, logger *logging.Logger) (*pipeline.Orchestrator, error) {
	textGen := core.NewOpenAIText(cfg)

	// The outline needs more completion room than a single page description.
	outliner, err := outline.NewGenerator(textGen.WithMaxTokens(int(cfg.OutlineTokens)), templates, logger)
	if err != nil {
		return nil, err
	}

	describer, err := describe.NewStage(textGen, templates, cfg.DescribeWorkers, logger)
	if err != nil {
		return nil, err
	}

	provider, err := render.NewOpenAIImage(cfg)
	if err != nil {
		return nil, err
	}
	renderer, err := render.NewStage(provider, cfg.RefImagePath, cfg.RenderWorkers, logger)
	if err != nil {
		return nil, err
	}

	assembler, err := assemble.NewAssembler(pptx.NewWriter(), logger)
	if err != nil {
		return nil, err
	}

	return pipeline.NewOrchestrator(cfg, outliner, describer, renderer, assembler, templates, runs, logger)
}

// runStartupValidation runs the configuration checks before any generation
// work starts.
func runStartupValidation(logger *logging.Logger) int {
	logger.Info("Starting startup validation...")

	result := validation.NewValidationSuite().
		WithShowProgress(true).
		Validate()

	if !result.Success {
		logger.Error("Configuration validation failed",
			zap.Int("passed", result.PassedSteps),
			zap.Int("failed", result.FailedSteps),
			zap.Duration("duration", result.Duration),
		)
		for _, step := range result.Steps {
			if step.Status == validation.StepFailed {
				logger.Error("Validation step failed",
					zap.String("step", step.Name),
					zap.String("message", step.Message),
					zap.Error(step.Error),
				)
			}
		}
		return core.ExitCodeError
	}

	logger.Info("Configuration validation passed",
		zap.Int("checks_passed", result.PassedSteps),
		zap.Duration("duration", result.Duration),
	)
	return core.ExitCodeSuccess
}
