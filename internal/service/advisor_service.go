package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"google.golang.org/genai"

	"github.com/carteira-app/carteira-backend/internal/apperrors"
	"github.com/carteira-app/carteira-backend/internal/model"
	"github.com/carteira-app/carteira-backend/internal/repository"
)

// advisorApology is returned verbatim whenever the model cannot be reached.
// The chat surface never propagates provider errors to the user.
const advisorApology = "Desculpe, não consegui analisar sua carteira agora. Tente novamente em alguns instantes."

const advisorSystemPrompt = `Você é um consultor de investimentos que responde em português do Brasil.
Você recebe um resumo em JSON da carteira do usuário junto com cada pergunta.
Responda de forma direta e curta, baseando-se apenas nos dados fornecidos.
Valores monetários estão em reais (R$). Nunca invente posições que não estão no resumo.`

// advisorSnapshot is the portfolio context serialized into every prompt.
type advisorSnapshot struct {
	Summary     model.PortfolioSummary   `json:"summary"`
	Composition []model.CompositionSlice `json:"composition"`
	Assets      []model.Asset            `json:"assets"`
}

// AdvisorService answers free-form questions about the portfolio using a
// Gemini model. The service is best-effort: when no API key is configured or
// the provider call fails, Ask returns a canned apology instead of an error
// so the chat surface stays usable offline.
type AdvisorService struct {
	assetRepo *repository.AssetRepository
	apiKey    string
	modelName string

	mu     sync.Mutex
	client *genai.Client
}

// NewAdvisorService creates a new AdvisorService. The Gemini client is
// initialized lazily on the first question so startup never blocks on the
// provider.
func NewAdvisorService(assetRepo *repository.AssetRepository, apiKey, modelName string) *AdvisorService {
	return &AdvisorService{
		assetRepo: assetRepo,
		apiKey:    apiKey,
		modelName: modelName,
	}
}

// Enabled reports whether an API key is configured.
func (s *AdvisorService) Enabled() bool {
	return s.apiKey != ""
}

// Ask sends the question with a fresh portfolio snapshot to the model and
// returns its answer. Any failure degrades to the canned apology.
func (s *AdvisorService) Ask(ctx context.Context, question string) string {
	answer, err := s.ask(ctx, question)
	if err != nil {
		log.Printf("advisor: %v", err)
		return advisorApology
	}
	return answer
}

func (s *AdvisorService) ask(ctx context.Context, question string) (string, error) {
	if !s.Enabled() {
		return "", apperrors.ErrAdvisorUnavailable
	}

	client, err := s.ensureClient(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to initialize advisor client: %w", err)
	}

	snapshot, err := s.buildSnapshot()
	if err != nil {
		return "", err
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: advisorSystemPrompt}}},
	}
	chat, err := client.Chats.Create(ctx, s.modelName, config, nil)
	if err != nil {
		return "", fmt.Errorf("failed to start advisor chat: %w", err)
	}

	prompt := fmt.Sprintf("Carteira atual:\n%s\n\nPergunta: %s", snapshot, question)
	resp, err := chat.Send(ctx, &genai.Part{Text: prompt})
	if err != nil {
		return "", fmt.Errorf("advisor request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response", apperrors.ErrAdvisorUnavailable)
	}

	return resp.Candidates[0].Content.Parts[0].Text, nil
}

func (s *AdvisorService) ensureClient(ctx context.Context) (*genai.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  s.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	s.client = client
	return client, nil
}

// buildSnapshot serializes the current positions, summary and composition
// into the JSON context sent with every question.
func (s *AdvisorService) buildSnapshot() (string, error) {
	assets, err := s.assetRepo.GetAssets()
	if err != nil {
		return "", fmt.Errorf("failed to load portfolio for advisor: %w", err)
	}

	snapshot := advisorSnapshot{
		Summary:     Summarize(assets),
		Composition: Composition(assets, "segment"),
		Assets:      assets,
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("failed to serialize portfolio for advisor: %w", err)
	}
	return string(data), nil
}
