package advisor

import (
	"context"
	"fmt"
	"log"

	"tokenlens/internal/domain"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// LLMClient abstracts the OpenAI-compatible chat completions API for testability.
type LLMClient interface {
	CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

// AnalysisQuerier provides token analyses for the advisor's context.
type AnalysisQuerier interface {
	AnalyzeToken(ctx context.Context, token, timeframe string) (*domain.Analysis, error)
}

// ConversationStore persists and retrieves conversation messages.
type ConversationStore interface {
	AppendMessage(ctx context.Context, chatID int64, role, content string) error
	RecentMessages(ctx context.Context, chatID int64, limit int) ([]domain.ConversationMessage, error)
}

// Config tunes the advisor. Zero values fall back to defaults.
type Config struct {
	Model      string
	MaxHistory int
	// Timeframe used when pulling analyses into the prompt context.
	Timeframe string
	// ContextTokens are analyzed when the user message names no token.
	ContextTokens []string
}

type AdvisorService struct {
	tracer        trace.Tracer
	llm           LLMClient
	analysis      AnalysisQuerier
	convStore     ConversationStore
	model         string
	maxHistory    int
	timeframe     string
	contextTokens []string
}

// NewAdvisorService wires the advisor. convStore may be nil, in which case
// conversations are stateless.
func NewAdvisorService(
	tracer trace.Tracer,
	llm LLMClient,
	analysis AnalysisQuerier,
	convStore ConversationStore,
	cfg Config,
) *AdvisorService {
	if cfg.MaxHistory <= 0 {
		cfg.MaxHistory = 20
	}
	if cfg.Timeframe == "" {
		cfg.Timeframe = domain.Timeframe24H
	}
	return &AdvisorService{
		tracer:        tracer,
		llm:           llm,
		analysis:      analysis,
		convStore:     convStore,
		model:         cfg.Model,
		maxHistory:    cfg.MaxHistory,
		timeframe:     cfg.Timeframe,
		contextTokens: cfg.ContextTokens,
	}
}

func (s *AdvisorService) Ask(ctx context.Context, chatID int64, userMessage string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "advisor.ask")
	defer span.End()
	span.SetAttributes(attribute.Int64("chat_id", chatID))

	// 1. Persist the user message
	if s.convStore != nil {
		if err := s.convStore.AppendMessage(ctx, chatID, "user", userMessage); err != nil {
			log.Printf("failed to store user message: %v", err)
		}
	}

	// 2. Extract mentioned tokens for targeted context
	mentionedTokens := ExtractTokens(userMessage)

	// 3. Gather market context
	marketContext := s.gatherContext(ctx, mentionedTokens)

	// 4. Build system prompt with live data
	systemPrompt := BuildSystemPrompt(marketContext)

	// 5. Load conversation history
	var history []domain.ConversationMessage
	if s.convStore != nil {
		var err error
		history, err = s.convStore.RecentMessages(ctx, chatID, s.maxHistory)
		if err != nil {
			log.Printf("failed to load conversation history: %v", err)
			history = nil
		}
	}

	// 6. Construct messages array
	messages := s.buildMessages(systemPrompt, history, userMessage)

	// 7. Call LLM
	reply, err := s.callLLM(ctx, messages)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("advisor unavailable: %w", err)
	}

	// 8. Persist the assistant reply
	if s.convStore != nil {
		if err := s.convStore.AppendMessage(ctx, chatID, "assistant", reply); err != nil {
			log.Printf("failed to store assistant reply: %v", err)
		}
	}

	return reply, nil
}

func (s *AdvisorService) gatherContext(ctx context.Context, tokens []string) string {
	ctx, span := s.tracer.Start(ctx, "advisor.gather-context")
	defer span.End()

	if len(tokens) == 0 {
		tokens = s.contextTokens
	}

	var analyses []*domain.Analysis
	for _, token := range tokens {
		a, err := s.analysis.AnalyzeToken(ctx, token, s.timeframe)
		if err != nil {
			log.Printf("context analysis failed for %s: %v", token, err)
			continue
		}
		analyses = append(analyses, a)
	}

	return FormatMarketContext(analyses)
}

func (s *AdvisorService) buildMessages(
	systemPrompt string,
	history []domain.ConversationMessage,
	userMessage string,
) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)

	// System prompt always first
	messages = append(messages, openai.SystemMessage(systemPrompt))

	// Conversation history (already limited by RecentMessages query)
	for _, msg := range history {
		switch msg.Role {
		case "user":
			messages = append(messages, openai.UserMessage(msg.Content))
		case "assistant":
			messages = append(messages, openai.AssistantMessage(msg.Content))
		}
	}

	// Without a store the current message is not in the history yet.
	if s.convStore == nil {
		messages = append(messages, openai.UserMessage(userMessage))
	}

	return messages
}

func (s *AdvisorService) callLLM(
	ctx context.Context,
	messages []openai.ChatCompletionMessageParamUnion,
) (string, error) {
	ctx, span := s.tracer.Start(ctx, "advisor.llm-call")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.model", s.model),
		attribute.Int("llm.message_count", len(messages)),
	)

	completion, err := s.llm.CreateChatCompletion(ctx, openai.ChatCompletionNewParams{
		Model:    s.model,
		Messages: messages,
	})
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices in LLM response")
	}

	reply := completion.Choices[0].Message.Content
	span.SetAttributes(attribute.Int("llm.reply_length", len(reply)))
	return reply, nil
}

// openaiClient wraps the official SDK's chat completions service.
type openaiClient struct {
	client openai.Client
}

// NewOpenAIClient builds an LLMClient against any OpenAI-compatible endpoint.
// baseURL selects the upstream (Groq in the default deployment); empty means
// the SDK default.
func NewOpenAIClient(apiKey, baseURL string) LLMClient {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &openaiClient{client: openai.NewClient(opts...)}
}

func (c *openaiClient) CreateChatCompletion(
	ctx context.Context,
	params openai.ChatCompletionNewParams,
) (*openai.ChatCompletion, error) {
	return c.client.Chat.Completions.New(ctx, params)
}
