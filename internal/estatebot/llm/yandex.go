package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/config"
	logx "github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/log"
)

// ErrUnavailable is wrapped by every YandexClient failure so callers can
// branch on degraded generation without inspecting the message.
var ErrUnavailable = errors.New("generation service unavailable")

const defaultCompletionURL = "https://llm.api.cloud.yandex.net/foundationModels/v1/completion"

// Apology strings returned alongside errors. User-facing.
const (
	apologyTechnical   = "Извините, возникла техническая ошибка. Попробуйте позже."
	apologyTimeout     = "Извините, сервис ответил слишком долго. Попробуйте повторить вопрос."
	apologyConnection  = "Извините, не удалось подключиться к сервису. Проверьте интернет-соединение."
	apologyUnavailable = "Извините, сервис временно недоступен. Попробуйте позже."
	apologyEmpty       = "Извините, не удалось сгенерировать ответ."
	apologyParse       = "Извините, возникла ошибка обработки ответа."
)

// YandexClient calls the YandexGPT foundation-models completion endpoint.
type YandexClient struct {
	cfg        config.YandexConfig
	logger     *logx.Logger
	httpClient *http.Client
	url        string
}

// NewYandex creates a YandexGPT client from configuration.
func NewYandex(cfg config.YandexConfig, logger *logx.Logger) *YandexClient {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &YandexClient{
		cfg:        cfg,
		logger:     logger,
		httpClient: &http.Client{Timeout: timeout},
		url:        defaultCompletionURL,
	}
}

type completionOptions struct {
	Stream      bool    `json:"stream"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"maxTokens"`
}

type completionRequest struct {
	ModelURI          string            `json:"modelUri"`
	CompletionOptions completionOptions `json:"completionOptions"`
	Messages          []Message         `json:"messages"`
}

type completionResponse struct {
	Result struct {
		Alternatives []struct {
			Message struct {
				Role string `json:"role"`
				Text string `json:"text"`
			} `json:"message"`
		} `json:"alternatives"`
	} `json:"result"`
}

type apiError struct {
	Message string `json:"message"`
}

// Generate performs one non-streaming completion call.
func (c *YandexClient) Generate(ctx context.Context, messages []Message) (string, error) {
	start := time.Now()

	if c.cfg.APIKey == "" || c.cfg.FolderID == "" {
		c.logger.Error(ctx, "yandexgpt credentials missing")
		return apologyTechnical, fmt.Errorf("%w: missing credentials", ErrUnavailable)
	}

	payload := completionRequest{
		ModelURI: fmt.Sprintf("gpt://%s/%s", c.cfg.FolderID, c.cfg.Model),
		CompletionOptions: completionOptions{
			Stream:      false,
			Temperature: c.cfg.Temperature,
			MaxTokens:   c.cfg.MaxTokens,
		},
		Messages: messages,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return apologyTechnical, fmt.Errorf("%w: marshal request: %v", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return apologyTechnical, fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Authorization", "Api-Key "+c.cfg.APIKey)
	req.Header.Set("x-folder-id", c.cfg.FolderID)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			c.logger.Error(ctx, "yandexgpt request timed out")
			return apologyTimeout, fmt.Errorf("%w: timeout: %v", ErrUnavailable, err)
		}
		c.logger.Error(ctx, "yandexgpt connection failed", logx.KV("error", err))
		return apologyConnection, fmt.Errorf("%w: connect: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.Info(ctx, "yandexgpt response",
		logx.KV("status", resp.StatusCode),
		logx.KV("elapsed", time.Since(start).Round(time.Millisecond)))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apologyParse, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error(ctx, "yandexgpt api error",
			logx.KV("status", resp.StatusCode), logx.KV("body", string(raw)))
		var apiErr apiError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			return "Ошибка сервиса: " + apiErr.Message,
				fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, apiErr.Message)
		}
		return apologyUnavailable, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var parsed completionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		c.logger.Error(ctx, "yandexgpt response parse failed", logx.KV("error", err))
		return apologyParse, fmt.Errorf("%w: parse response: %v", ErrUnavailable, err)
	}
	if len(parsed.Result.Alternatives) == 0 {
		c.logger.Error(ctx, "yandexgpt returned no alternatives")
		return apologyEmpty, fmt.Errorf("%w: empty completion", ErrUnavailable)
	}

	return parsed.Result.Alternatives[0].Message.Text, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
