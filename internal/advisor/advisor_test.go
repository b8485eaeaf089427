package advisor

import (
	"context"
	"errors"
	"testing"
	"time"

	"tokenlens/internal/domain"

	"github.com/openai/openai-go"
	"go.opentelemetry.io/otel/trace"
)

func completionWith(content string) *openai.ChatCompletion {
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func TestAskHappyPath(t *testing.T) {
	llm := &stubLLMClient{response: completionWith("SOL looks strong")}
	store := &stubConvStore{}
	analyzer := &stubAnalyzer{
		analyses: map[string]*domain.Analysis{
			"solana": {Token: "solana", MarketData: domain.MarketData{Price: 150}},
		},
	}

	svc := NewAdvisorService(
		trace.NewNoopTracerProvider().Tracer("test"),
		llm, analyzer, store,
		Config{Model: "llama-3.3-70b-versatile"},
	)

	reply, err := svc.Ask(context.Background(), 123, "What about sol?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "SOL looks strong" {
		t.Fatalf("expected 'SOL looks strong', got %q", reply)
	}
	// Verify messages were stored (user + assistant)
	if len(store.messages) != 2 {
		t.Fatalf("expected 2 stored messages, got %d", len(store.messages))
	}
	if store.messages[0].role != "user" {
		t.Fatalf("expected first stored message role=user, got %s", store.messages[0].role)
	}
	if store.messages[1].role != "assistant" {
		t.Fatalf("expected second stored message role=assistant, got %s", store.messages[1].role)
	}
	if got := analyzer.requested(); len(got) != 1 || got[0] != "solana" {
		t.Fatalf("expected the mentioned token to be analyzed, got %v", got)
	}
}

func TestAskUsesContextTokensWhenNoneMentioned(t *testing.T) {
	llm := &stubLLMClient{response: completionWith("overview")}
	analyzer := &stubAnalyzer{
		analyses: map[string]*domain.Analysis{
			"bitcoin":  {Token: "bitcoin"},
			"ethereum": {Token: "ethereum"},
		},
	}

	svc := NewAdvisorService(
		trace.NewNoopTracerProvider().Tracer("test"),
		llm, analyzer, &stubConvStore{},
		Config{Model: "llama-3.3-70b-versatile", ContextTokens: []string{"bitcoin", "ethereum"}},
	)

	if _, err := svc.Ask(context.Background(), 123, "how is the market today?"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := analyzer.requested(); len(got) != 2 {
		t.Fatalf("expected the fallback context tokens to be analyzed, got %v", got)
	}
}

func TestAskLLMError(t *testing.T) {
	llm := &stubLLMClient{err: errors.New("api down")}
	store := &stubConvStore{}

	svc := NewAdvisorService(
		trace.NewNoopTracerProvider().Tracer("test"),
		llm, &stubAnalyzer{}, store,
		Config{Model: "llama-3.3-70b-versatile"},
	)

	_, err := svc.Ask(context.Background(), 123, "What looks good?")
	if err == nil {
		t.Fatal("expected error from LLM failure")
	}
	// User message should still have been stored
	if len(store.messages) != 1 || store.messages[0].role != "user" {
		t.Fatalf("expected user message to be stored despite LLM error, got %d messages", len(store.messages))
	}
}

func TestAskConversationStoreFailureNonFatal(t *testing.T) {
	llm := &stubLLMClient{response: completionWith("response")}
	store := &stubConvStore{appendErr: errors.New("db down")}

	svc := NewAdvisorService(
		trace.NewNoopTracerProvider().Tracer("test"),
		llm, &stubAnalyzer{}, store,
		Config{Model: "llama-3.3-70b-versatile"},
	)

	reply, err := svc.Ask(context.Background(), 123, "test")
	if err != nil {
		t.Fatalf("store failure should be non-fatal, got: %v", err)
	}
	if reply != "response" {
		t.Fatalf("expected 'response', got %q", reply)
	}
}

func TestAskAnalysisFailureNonFatal(t *testing.T) {
	llm := &stubLLMClient{response: completionWith("no data available")}
	analyzer := &stubAnalyzer{err: errors.New("all sources down")}

	svc := NewAdvisorService(
		trace.NewNoopTracerProvider().Tracer("test"),
		llm, analyzer, &stubConvStore{},
		Config{Model: "llama-3.3-70b-versatile"},
	)

	reply, err := svc.Ask(context.Background(), 123, "What about sol?")
	if err != nil {
		t.Fatalf("analysis failure should be non-fatal, got: %v", err)
	}
	if reply != "no data available" {
		t.Fatalf("expected 'no data available', got %q", reply)
	}
}

func TestAskWithoutConversationStore(t *testing.T) {
	llm := &stubLLMClient{response: completionWith("stateless reply")}

	svc := NewAdvisorService(
		trace.NewNoopTracerProvider().Tracer("test"),
		llm, &stubAnalyzer{}, nil,
		Config{Model: "llama-3.3-70b-versatile"},
	)

	reply, err := svc.Ask(context.Background(), 42, "Hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "stateless reply" {
		t.Fatalf("expected 'stateless reply', got %q", reply)
	}
	// The current message must still reach the LLM.
	if len(llm.lastParams.Messages) != 2 {
		t.Fatalf("expected system prompt plus user message, got %d messages", len(llm.lastParams.Messages))
	}
}

func TestAskDefaults(t *testing.T) {
	svc := NewAdvisorService(
		trace.NewNoopTracerProvider().Tracer("test"),
		&stubLLMClient{}, &stubAnalyzer{}, &stubConvStore{},
		Config{Model: "llama-3.3-70b-versatile"},
	)
	if svc.maxHistory != 20 {
		t.Fatalf("expected default maxHistory=20, got %d", svc.maxHistory)
	}
	if svc.timeframe != domain.Timeframe24H {
		t.Fatalf("expected default timeframe 24h, got %s", svc.timeframe)
	}
}

// --- stubs ---

type stubLLMClient struct {
	response   *openai.ChatCompletion
	err        error
	lastParams openai.ChatCompletionNewParams
}

func (s *stubLLMClient) CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	s.lastParams = params
	return s.response, s.err
}

type storedMsg struct {
	chatID  int64
	role    string
	content string
}

type stubConvStore struct {
	messages  []storedMsg
	appendErr error
	recentErr error
}

func (s *stubConvStore) AppendMessage(ctx context.Context, chatID int64, role, content string) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.messages = append(s.messages, storedMsg{chatID: chatID, role: role, content: content})
	return nil
}

func (s *stubConvStore) RecentMessages(ctx context.Context, chatID int64, limit int) ([]domain.ConversationMessage, error) {
	if s.recentErr != nil {
		return nil, s.recentErr
	}
	// Return stored messages as history (simulates reading back what was appended)
	var msgs []domain.ConversationMessage
	for _, m := range s.messages {
		if m.chatID == chatID {
			msgs = append(msgs, domain.ConversationMessage{
				Role:      m.role,
				Content:   m.content,
				CreatedAt: time.Now(),
			})
		}
	}
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return msgs, nil
}

type stubAnalyzer struct {
	analyses map[string]*domain.Analysis
	err      error
	tokens   []string
}

func (s *stubAnalyzer) AnalyzeToken(ctx context.Context, token, timeframe string) (*domain.Analysis, error) {
	s.tokens = append(s.tokens, token)
	if s.err != nil {
		return nil, s.err
	}
	if a, ok := s.analyses[token]; ok {
		return a, nil
	}
	return nil, &domain.DataUnavailableError{Token: token}
}

func (s *stubAnalyzer) requested() []string { return s.tokens }
