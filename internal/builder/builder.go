package builder

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/nicheroot/wizard-backend/internal/api"
	interviewapi "github.com/nicheroot/wizard-backend/internal/api/interview"
	wizardapi "github.com/nicheroot/wizard-backend/internal/api/wizard"
	"github.com/nicheroot/wizard-backend/internal/config"
	openaiintegration "github.com/nicheroot/wizard-backend/internal/integration/openai"
	"github.com/nicheroot/wizard-backend/internal/pkg/validator"
	"github.com/nicheroot/wizard-backend/internal/repository"
	"github.com/nicheroot/wizard-backend/internal/telegram"
	tgstate "github.com/nicheroot/wizard-backend/internal/telegram/state"
	interviewuc "github.com/nicheroot/wizard-backend/internal/usecase/interview"
	wizarduc "github.com/nicheroot/wizard-backend/internal/usecase/wizard"
)

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Initialize ephemeral stores
	sessionStore := repository.NewSessionStore(cfg.StoreCfg)
	blueprintStore := repository.NewBlueprintStore(cfg.StoreCfg)
	logger.Info("Stores initialized",
		zap.Duration("session_ttl", cfg.StoreCfg.SessionTTL),
		zap.Duration("blueprint_ttl", cfg.StoreCfg.BlueprintTTL),
	)

	// Initialize model gateway (with mock support)
	gateway := buildGateway(cfg, logger)

	// Initialize validators
	requestValidator := validator.New()

	// Initialize use cases
	wizardUC := wizarduc.NewUsecase(gateway, cfg.Dimensions, logger)
	interviewUC := interviewuc.NewUsecase(sessionStore, blueprintStore, wizardUC, logger)
	logger.Info("Use cases initialized",
		zap.Int("dimension_count", len(cfg.Dimensions)),
	)

	// Setup API handlers
	wizardHandler := wizardapi.NewHandler(wizardUC, requestValidator)
	interviewHandler := interviewapi.NewHandler(interviewUC, requestValidator)
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(wizardHandler, interviewHandler, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // Model calls run inside the request
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (telegram.Bot, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	// Initialize ephemeral stores
	sessionStore := repository.NewSessionStore(cfg.StoreCfg)
	blueprintStore := repository.NewBlueprintStore(cfg.StoreCfg)
	telegramStorage := tgstate.NewCacheStorage(cfg.StoreCfg.SessionTTL, cfg.StoreCfg.CleanupInterval)
	logger.Info("Stores initialized")

	// Initialize model gateway (with mock support)
	gateway := buildGateway(cfg, logger)

	// Initialize use cases
	wizardUC := wizarduc.NewUsecase(gateway, cfg.Dimensions, logger)
	interviewUC := interviewuc.NewUsecase(sessionStore, blueprintStore, wizardUC, logger)
	logger.Info("Use cases initialized")

	// Initialize Telegram bot
	bot, err := telegram.NewBot(&cfg.TelegramCfg, telegramStorage, interviewUC, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, logger, nil
}

// buildGateway picks the real OpenAI connector or the mock depending on
// configuration.
func buildGateway(cfg *config.Config, logger *zap.Logger) wizarduc.ModelGateway {
	if cfg.EnableMocks {
		logger.Info("Using mock connector for the model gateway")
		return openaiintegration.NewMockConnector(logger)
	}

	logger.Info("Using OpenAI connector for the model gateway",
		zap.String("question_model", cfg.LLMCfg.QuestionModel),
		zap.String("blueprint_model", cfg.LLMCfg.BlueprintModel),
	)
	return openaiintegration.NewConnector(cfg.LLMCfg, logger)
}
