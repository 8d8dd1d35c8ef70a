package api

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pgx-risk-server/internal/domain"
	"github.com/pgx-risk-server/internal/service"
)

// analyzeResponse is the JSON envelope for /analyze. A single-drug request
// fills Result; a multi-drug request fills Results.
type analyzeResponse struct {
	Result      *domain.RiskResult        `json:"result,omitempty"`
	Results     []*domain.RiskResult      `json:"results,omitempty"`
	SafetyIndex *domain.SafetyIndexResult `json:"safety_index"`
	Metadata    service.ParseMetadata     `json:"parse_metadata"`
	ParseErrors []string                  `json:"parse_errors,omitempty"`
}

// simulateRequest is the JSON body for /simulate.
type simulateRequest struct {
	Result      *domain.RiskResult `json:"result" binding:"required"`
	DosePercent *float64           `json:"dose_percent" binding:"required"`
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"version":   s.configManager.GetAnalysisConfig().Version,
	})
}

// handleListDrugs returns the curated drug set with its primary genes.
func (s *Server) handleListDrugs(c *gin.Context) {
	drugs := make([]gin.H, 0)
	for _, name := range s.kb.DrugNames() {
		drug, _ := s.kb.Drug(name)
		drugs = append(drugs, gin.H{
			"name":         drug.Name,
			"primary_gene": drug.PrimaryGene,
			"mechanism":    drug.Mechanism,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"drugs": drugs,
		"genes": s.kb.GeneSymbols(),
	})
}

// handleAnalyze runs the full pipeline on an uploaded VCF payload.
func (s *Server) handleAnalyze(c *gin.Context) {
	fileHeader, err := c.FormFile("vcf_file")
	if err != nil {
		s.respondError(c, http.StatusBadRequest, domain.NewAnalysisError(
			domain.ErrMissingFile, "a VCF file upload is required", "attach the file under the 'vcf_file' form field"))
		return
	}

	maxBytes := s.configManager.GetAnalysisConfig().MaxUploadBytes
	if fileHeader.Size > maxBytes {
		s.respondError(c, http.StatusBadRequest, domain.NewAnalysisError(
			domain.ErrFileTooLarge, "file exceeds the 5 MB size limit", ""))
		return
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".vcf") {
		s.respondError(c, http.StatusBadRequest, domain.NewAnalysisError(
			domain.ErrInvalidFileFormat, "only .vcf files are accepted", fileHeader.Filename))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		s.respondInternal(c, err)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		s.respondInternal(c, err)
		return
	}

	drugsField := c.PostForm("drugs")
	if strings.TrimSpace(drugsField) == "" {
		s.respondError(c, http.StatusBadRequest, domain.NewAnalysisError(
			domain.ErrMissingDrug, "at least one drug name is required", "pass a comma-separated list in the 'drugs' form field"))
		return
	}

	ancestry, err := domain.ParseAncestry(strings.TrimSpace(c.PostForm("ancestry")))
	if err != nil {
		s.respondError(c, http.StatusBadRequest, domain.NewAnalysisError(
			domain.ErrInvalidAncestryCode, "unknown ancestry code", c.PostForm("ancestry")))
		return
	}

	resp, err := s.analyzer.Analyze(c.Request.Context(), service.AnalyzeRequest{
		FileContent: string(content),
		Drugs:       strings.Split(drugsField, ","),
		Ancestry:    ancestry,
	})
	if err != nil {
		s.respondAnalysisError(c, err)
		return
	}

	envelope := analyzeResponse{
		SafetyIndex: resp.SafetyIndex,
		Metadata:    resp.Metadata,
		ParseErrors: resp.ParseErrors,
	}
	if len(resp.Results) == 1 {
		envelope.Result = resp.Results[0]
	} else {
		envelope.Results = resp.Results
	}
	c.JSON(http.StatusOK, envelope)
}

// handleSimulate previews a hypothetical dose fraction on a prior result.
func (s *Server) handleSimulate(c *gin.Context) {
	var req simulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, domain.NewAnalysisError(
			domain.ErrInvalidDose, "a result and dose_percent are required", err.Error()))
		return
	}

	simulated, err := s.simulator.Simulate(req.Result, *req.DosePercent)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, domain.NewAnalysisError(
			domain.ErrInvalidDose, err.Error(), ""))
		return
	}
	c.JSON(http.StatusOK, simulated)
}

// respondAnalysisError maps pipeline errors onto the HTTP error taxonomy.
func (s *Server) respondAnalysisError(c *gin.Context, err error) {
	analysisErr, ok := err.(*domain.AnalysisError)
	if !ok {
		s.respondInternal(c, err)
		return
	}

	status := http.StatusBadRequest
	if analysisErr.Code == domain.ErrParseFailure {
		status = http.StatusUnprocessableEntity
	}
	s.respondError(c, status, analysisErr)
}

func (s *Server) respondError(c *gin.Context, status int, analysisErr *domain.AnalysisError) {
	analysisErr.RequestID = c.GetString("request_id")
	c.JSON(status, gin.H{"error": analysisErr})
}

// respondInternal surfaces a generic 500; the original cause is logged only.
func (s *Server) respondInternal(c *gin.Context, err error) {
	s.logger.WithError(err).WithField("request_id", c.GetString("request_id")).
		Error("Internal error during analysis")
	s.respondError(c, http.StatusInternalServerError, domain.NewAnalysisError(
		domain.ErrInternalServer, "an internal error occurred", ""))
}
