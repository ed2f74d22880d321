package assistant

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/FrancoGastia/AI-Travel-Companion/internal/models"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"go.uber.org/zap"
)

const (
	// DefaultChatModel is the default model to use
	DefaultChatModel = "gpt-4o-mini"
	// DefaultChatTimeout bounds a single backend call
	DefaultChatTimeout = 15 * time.Second
)

// OpenAIBackend implements ChatBackend against any OpenAI-compatible chat API.
type OpenAIBackend struct {
	client openai.Client
	model  string
	logger *zap.Logger
}

// NewOpenAIBackend creates a backend client. baseURL may be empty for the
// OpenAI default, or point at any compatible gateway.
func NewOpenAIBackend(apiKey, baseURL, model string, logger *zap.Logger) *OpenAIBackend {
	if model == "" {
		model = DefaultChatModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: DefaultChatTimeout}),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAIBackend{
		client: openai.NewClient(opts...),
		model:  model,
		logger: logger,
	}
}

// Send submits the user message with a travel-assistant system prompt carrying
// the trip context.
func (b *OpenAIBackend) Send(ctx context.Context, message string, tctx models.TripContext) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultChatTimeout)
	defer cancel()

	req := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(b.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(buildTravelPrompt(tctx)),
			openai.UserMessage(message),
		},
	}

	start := time.Now()
	resp, err := b.client.Chat.Completions.New(ctx, req)
	if err != nil {
		if b.logger != nil {
			b.logger.Warn("chat_backend_error",
				zap.String("model", b.model),
				zap.Duration("latency", time.Since(start)),
				zap.Error(err),
			)
		}
		return "", fmt.Errorf("chat backend request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in response")
	}

	return resp.Choices[0].Message.Content, nil
}

func buildTravelPrompt(tctx models.TripContext) string {
	destination := tctx.Destination
	if destination == "" {
		destination = "No especificado"
	}
	travelerType := string(tctx.TravelerTypeOrDefault())
	phase := string(tctx.TravelPhase)
	if phase == "" {
		phase = string(models.PhasePlanning)
	}

	return fmt.Sprintf(`Eres un asistente experto de viajes. Tu nombre es "AI Travel Companion".

CONTEXTO DEL USUARIO:
- Destino: %s
- Tipo de viajero: %s
- Fase del viaje: %s

INSTRUCCIONES:
- Responde de manera amigable, práctica y específica para viajes
- Usa emojis para hacer la conversación más amigable
- Sé conciso pero completo
- Si no tienes información exacta, sugiere alternativas
- Enfócate en ayudar con el viaje específico del usuario
- Siempre incluye tips prácticos y útiles`, destination, travelerType, phase)
}
