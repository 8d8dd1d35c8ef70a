package domain

import (
	"context"
)

// ExplainRequest carries the pharmacogenomic context the explanation
// enrichment needs to produce mechanism/summary text.
type ExplainRequest struct {
	Drug            string
	Gene            string
	Diplotype       string
	Phenotype       string
	Mechanism       string
	RiskLabel       RiskLabel
	Severity        Severity
	ConfidenceScore float64
	ConfidenceLevel ConfidenceLevel
	Recommendation  string
	DetectedRsIDs   []string
}

// ExplanationProvider produces human-readable explanation text for a risk
// result. Implementations must be safe for concurrent use. A failing
// provider is always recovered from via the deterministic template variant;
// enrichment must never block or fail an analysis.
type ExplanationProvider interface {
	Explain(ctx context.Context, req ExplainRequest) (*ExplanationBlock, error)
	Name() string
}

// ConfigManager defines the interface for configuration management
type ConfigManager interface {
	GetConfig() *Config
	GetServerConfig() *ServerConfig
	GetEnrichmentConfig() *EnrichmentConfig
	GetAnalysisConfig() *AnalysisConfig
	Reload() error
	Validate() error
	IsProduction() bool
	IsDevelopment() bool
}
