package explain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/pgx-risk-server/internal/domain"
)

const defaultCacheSize = 256

// OpenAIProvider enriches explanations through a chat-completion call. The
// call is fallible and latency-bearing: it runs behind a circuit breaker, a
// rate limiter, a per-call timeout, and an LRU response cache, with zero
// retries. Callers fall back to the template provider on any error.
type OpenAIProvider struct {
	logger  *logrus.Logger
	client  *openai.Client
	model   string
	timeout time.Duration

	breaker *gobreaker.CircuitBreaker
	limiter *rate.Limiter
	cache   *lru.Cache[string, domain.ExplanationBlock]
}

// NewOpenAIProvider creates the remote enrichment provider from config.
func NewOpenAIProvider(logger *logrus.Logger, cfg domain.EnrichmentConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("creating enrichment provider: API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	cacheSize := cfg.CacheSize
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.New[string, domain.ExplanationBlock](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating enrichment cache: %w", err)
	}

	rateLimit := cfg.RateLimit
	if rateLimit <= 0 {
		rateLimit = 2
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "explanation-enrichment",
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Enrichment circuit breaker state changed")
		},
	})

	return &OpenAIProvider{
		logger:  logger,
		client:  openai.NewClientWithConfig(clientConfig),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		breaker: breaker,
		limiter: rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
		cache:   cache,
	}, nil
}

// Name identifies the provider in logs and the explanation source tag.
func (p *OpenAIProvider) Name() string { return "llm" }

// Explain requests enriched explanation text. Identical pharmacogenomic
// contexts are served from cache; the underlying call is made at most once
// per request with no retry.
func (p *OpenAIProvider) Explain(ctx context.Context, req domain.ExplainRequest) (*domain.ExplanationBlock, error) {
	key := cacheKey(req)
	if cached, ok := p.cache.Get(key); ok {
		block := cached
		return &block, nil
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("enrichment rate limit: %w", err)
	}

	callCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	raw, err := p.breaker.Execute(func() (interface{}, error) {
		return p.complete(callCtx, req)
	})
	if err != nil {
		return nil, fmt.Errorf("enrichment call: %w", err)
	}

	block := raw.(*domain.ExplanationBlock)
	p.cache.Add(key, *block)
	return block, nil
}

// complete performs the chat-completion call and parses the JSON payload.
func (p *OpenAIProvider) complete(ctx context.Context, req domain.ExplainRequest) (*domain.ExplanationBlock, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You are a clinical pharmacogenomics assistant. Reply with a JSON object holding the keys " +
					"summary, mechanism, clinical_significance and confidence_explanation. Be factual and concise; " +
					"do not invent variants or guidelines.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(req),
			},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response choices")
	}

	block, err := parseCompletion(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	block.VariantCitations = append([]string{}, req.DetectedRsIDs...)
	block.Source = p.Name()
	return block, nil
}

func buildPrompt(req domain.ExplainRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Drug: %s\nGene: %s\nDiplotype: %s\nPhenotype: %s\n", req.Drug, req.Gene, req.Diplotype, req.Phenotype)
	fmt.Fprintf(&b, "Risk label: %s\nSeverity: %s\nConfidence: %.2f (%s)\n", req.RiskLabel, req.Severity, req.ConfidenceScore, req.ConfidenceLevel)
	if req.Mechanism != "" {
		fmt.Fprintf(&b, "Mechanism: %s\n", req.Mechanism)
	}
	if len(req.DetectedRsIDs) > 0 {
		fmt.Fprintf(&b, "Detected variants: %s\n", strings.Join(req.DetectedRsIDs, ", "))
	}
	fmt.Fprintf(&b, "Recommendation: %s\n", req.Recommendation)
	b.WriteString("Explain this pharmacogenomic assessment for a clinician.")
	return b.String()
}

// parseCompletion extracts the explanation JSON from the model output,
// tolerating surrounding prose or code fences.
func parseCompletion(content string) (*domain.ExplanationBlock, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in completion")
	}

	var payload struct {
		Summary               string `json:"summary"`
		Mechanism             string `json:"mechanism"`
		ClinicalSignificance  string `json:"clinical_significance"`
		ConfidenceExplanation string `json:"confidence_explanation"`
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("parsing completion JSON: %w", err)
	}
	if payload.Summary == "" {
		return nil, fmt.Errorf("completion missing summary")
	}

	return &domain.ExplanationBlock{
		Summary:               payload.Summary,
		Mechanism:             payload.Mechanism,
		ClinicalSignificance:  payload.ClinicalSignificance,
		ConfidenceExplanation: payload.ConfidenceExplanation,
	}, nil
}

func cacheKey(req domain.ExplainRequest) string {
	return strings.Join([]string{
		req.Drug, req.Gene, req.Diplotype, req.Phenotype, string(req.RiskLabel),
	}, "|")
}
