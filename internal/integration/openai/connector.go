package openai

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nicheroot/wizard-backend/internal/config"
	"github.com/nicheroot/wizard-backend/internal/entity"
	pkghttp "github.com/nicheroot/wizard-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Connector is the single boundary to the hosted model backend. It sends one
// prompt and returns the raw textual reply; it performs no retries and no
// caching, and maps every failure mode (network error, non-2xx, empty
// completion) to *entity.GatewayError.
type Connector struct {
	config config.LLMConfig
	client *openai.Client
	logger *zap.Logger
}

func NewConnector(
	cfg config.LLMConfig,
	logger *zap.Logger,
) *Connector {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = pkghttp.NewClient(
		pkghttp.WithRequestTimeout(cfg.RequestTimeout),
		pkghttp.WithConnClientTimeout(cfg.ConnTimeout),
		pkghttp.WithClientKeepAlive(cfg.KeepAlive),
		pkghttp.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkghttp.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkghttp.WithRequestLogging(),
	)

	return &Connector{
		config: cfg,
		client: openai.NewClientWithConfig(clientCfg),
		logger: logger,
	}
}

// CompleteQuestion requests one interview question from the question model.
func (c *Connector) CompleteQuestion(ctx context.Context, system, prompt string) (string, error) {
	ctxzap.Info(ctx, "requesting question completion",
		zap.String("model", c.config.QuestionModel),
	)

	return c.complete(ctx, c.config.QuestionModel, system, prompt)
}

// CompleteBlueprint requests the final blueprint from the blueprint model.
func (c *Connector) CompleteBlueprint(ctx context.Context, system, prompt string) (string, error) {
	ctxzap.Info(ctx, "requesting blueprint completion",
		zap.String("model", c.config.BlueprintModel),
	)

	return c.complete(ctx, c.config.BlueprintModel, system, prompt)
}

func (c *Connector) complete(ctx context.Context, model, system, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Temperature: c.config.Temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", &entity.GatewayError{Err: err}
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &entity.GatewayError{Err: errors.New("empty completion")}
	}

	raw := resp.Choices[0].Message.Content

	ctxzap.Info(ctx, "completion received",
		zap.String("model", model),
		zap.Int("result_length", len(raw)),
	)

	return raw, nil
}
