package service

import (
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pgx-risk-server/internal/domain"
	"github.com/pgx-risk-server/internal/knowledge"
)

const (
	vcfFormatHeaderPrefix = "##fileformat=VCF"
	maxVCFSizeBytes       = 5 * 1024 * 1024
	minDataFields         = 8
)

// ParseMetadata summarizes a parse run for the quality-metrics block.
type ParseMetadata struct {
	FileFormat       string   `json:"file_format"`
	TotalLines       int      `json:"total_lines"`
	MetaLines        int      `json:"meta_lines"`
	DataLines        int      `json:"data_lines"`
	ParsedVariants   int      `json:"parsed_variants"`
	RetainedVariants int      `json:"retained_variants"`
	SampleIDs        []string `json:"sample_ids,omitempty"`
}

// ParseOutcome is the full result of one parse run: the retained
// pharmacogenomically relevant variants, run metadata, and any per-line
// errors collected under the partial-success policy.
type ParseOutcome struct {
	Variants []domain.VariantRecord `json:"variants"`
	Metadata ParseMetadata          `json:"metadata"`
	Errors   []string               `json:"errors"`
}

// VCFParser converts raw VCF text into structured variant records annotated
// against the knowledge base's rsID index. Parsing has no side effects and
// holds no state between calls.
type VCFParser struct {
	logger *logrus.Logger
	kb     *knowledge.Base
}

// NewVCFParser creates a new VCF parser backed by the given knowledge base.
func NewVCFParser(logger *logrus.Logger, kb *knowledge.Base) *VCFParser {
	return &VCFParser{logger: logger, kb: kb}
}

// Validate performs the cheap pre-check on raw input, distinct from full
// parsing: non-empty, within the size ceiling, and carrying the VCF
// format-declaration header on its first line.
func (p *VCFParser) Validate(content string) error {
	if strings.TrimSpace(content) == "" {
		return domain.NewAnalysisError(domain.ErrMissingFile, "file content is empty", "")
	}
	if len(content) > maxVCFSizeBytes {
		return domain.NewAnalysisError(domain.ErrFileTooLarge,
			"file exceeds the 5 MB size limit",
			"files this large suggest whole-genome data; upload a targeted pharmacogene VCF")
	}
	if !strings.HasPrefix(firstNonEmptyLine(content), vcfFormatHeaderPrefix) {
		return domain.NewAnalysisError(domain.ErrInvalidFileFormat,
			"file does not begin with a VCF format declaration",
			"expected a first line of the form ##fileformat=VCFv4.x")
	}
	return nil
}

// Parse converts VCF text into retained variant records plus metadata and
// per-line errors. Malformed data lines are reported and skipped; parsing
// always continues to the next line.
func (p *VCFParser) Parse(content string) ParseOutcome {
	out := ParseOutcome{}

	if !strings.HasPrefix(firstNonEmptyLine(content), vcfFormatHeaderPrefix) {
		out.Errors = append(out.Errors, "missing ##fileformat=VCF header on first line")
		return out
	}

	lines := strings.Split(content, "\n")
	out.Metadata.TotalLines = len(lines)

	for i, raw := range lines {
		line := strings.TrimRight(raw, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "##"):
			out.Metadata.MetaLines++
			if strings.HasPrefix(line, vcfFormatHeaderPrefix) {
				out.Metadata.FileFormat = strings.TrimPrefix(line, "##fileformat=")
			}
		case strings.HasPrefix(line, "#CHROM"):
			out.Metadata.SampleIDs = parseSampleIDs(line)
		case strings.HasPrefix(line, "#"):
			// Unrecognized comment line
		default:
			out.Metadata.DataLines++
			variant, err := p.parseDataLine(line)
			if err != nil {
				out.Errors = append(out.Errors, "line "+strconv.Itoa(i+1)+": "+err.Error())
				continue
			}
			out.Metadata.ParsedVariants++
			if len(variant.Annotations) > 0 {
				out.Variants = append(out.Variants, *variant)
			}
		}
	}

	out.Metadata.RetainedVariants = len(out.Variants)

	p.logger.WithFields(logrus.Fields{
		"data_lines":        out.Metadata.DataLines,
		"parsed_variants":   out.Metadata.ParsedVariants,
		"retained_variants": out.Metadata.RetainedVariants,
		"parse_errors":      len(out.Errors),
	}).Debug("VCF parse completed")

	return out
}

// parseDataLine tokenizes one tab-separated data line into a VariantRecord
// and annotates it against the knowledge base.
func (p *VCFParser) parseDataLine(line string) (*domain.VariantRecord, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < minDataFields {
		return nil, &lineError{msg: "expected at least 8 tab-separated fields, got " + strconv.Itoa(len(fields))}
	}

	pos, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return nil, &lineError{msg: "invalid position '" + fields[1] + "'"}
	}

	variant := &domain.VariantRecord{
		Chromosome: fields[0],
		Position:   pos,
		RsIDs:      parseIDField(fields[2]),
		Reference:  fields[3],
		Alternates: splitNonEmpty(fields[4], ","),
		Quality:    parseNullableFloat(fields[5]),
		Filter:     fields[6],
		Info:       parseInfoField(fields[7]),
	}

	if len(fields) >= 10 {
		variant.Genotype, variant.GenotypeQuality = parseFormatSample(fields[8], fields[9])
	}

	variant.Annotations = p.annotate(variant)
	return variant, nil
}

// annotate applies the pharmacogenomic relevance test, merging inline
// GENE/STAR annotations with rsID-index matches. Duplicate (gene, star)
// pairs from the index path are suppressed.
func (p *VCFParser) annotate(variant *domain.VariantRecord) []domain.PgxAnnotation {
	var annotations []domain.PgxAnnotation
	seen := make(map[string]bool)

	if geneVal := infoValue(variant.Info, "GENE", "gene"); geneVal != "" && p.kb.IsGene(geneVal) {
		gene := strings.ToUpper(strings.TrimSpace(geneVal))
		star := infoValue(variant.Info, "STAR", "star")
		annotations = append(annotations, domain.PgxAnnotation{
			Gene:       gene,
			StarAllele: star,
			Source:     "inline",
		})
		seen[gene+"|"+star] = true
	}

	rsids := append([]string(nil), variant.RsIDs...)
	if rsVal := infoValue(variant.Info, "RS", "rs"); rsVal != "" {
		rsids = append(rsids, normalizeRsID(rsVal))
	}

	for _, rsid := range rsids {
		for _, match := range p.kb.LookupRsID(rsid) {
			key := match.Gene + "|" + match.StarAllele
			if seen[key] {
				continue
			}
			seen[key] = true
			score := match.ActivityScore
			annotations = append(annotations, domain.PgxAnnotation{
				Gene:          match.Gene,
				StarAllele:    match.StarAllele,
				Function:      match.Function,
				ActivityScore: &score,
				Source:        "rsid_index",
			})
		}
	}

	return annotations
}

type lineError struct{ msg string }

func (e *lineError) Error() string { return e.msg }

// firstNonEmptyLine returns the first line of content with non-blank text.
func firstNonEmptyLine(content string) string {
	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(strings.TrimRight(raw, "\r"))
		if line != "" {
			return line
		}
	}
	return ""
}

// parseSampleIDs recovers sample identifiers from the #CHROM header line:
// the columns after the FORMAT marker.
func parseSampleIDs(line string) []string {
	columns := strings.Split(strings.TrimPrefix(line, "#"), "\t")
	for i, col := range columns {
		if col == "FORMAT" && i+1 < len(columns) {
			return columns[i+1:]
		}
	}
	return nil
}

// parseIDField splits the ID column into rs-prefixed identifiers. The
// column may hold several IDs separated by ';' or ','; '.' means none.
func parseIDField(field string) []string {
	if field == "" || field == "." {
		return nil
	}
	var rsids []string
	for _, token := range strings.FieldsFunc(field, func(r rune) bool { return r == ';' || r == ',' }) {
		token = strings.TrimSpace(token)
		if token != "" && token != "." {
			rsids = append(rsids, strings.ToLower(token))
		}
	}
	return rsids
}

// parseInfoField parses the semicolon-separated key=value INFO column.
// A bare key without '=' is recorded as a boolean flag.
func parseInfoField(field string) map[string]string {
	info := make(map[string]string)
	if field == "" || field == "." {
		return info
	}
	for _, token := range strings.Split(field, ";") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if key, value, found := strings.Cut(token, "="); found {
			info[key] = value
		} else {
			info[token] = "true"
		}
	}
	return info
}

// parseFormatSample extracts GT and GQ by locating their keys positionally
// within the colon-separated FORMAT and sample strings.
func parseFormatSample(format, sample string) (string, *float64) {
	keys := strings.Split(format, ":")
	values := strings.Split(sample, ":")

	var genotype string
	var genotypeQuality *float64
	for i, key := range keys {
		if i >= len(values) {
			break
		}
		switch key {
		case "GT":
			genotype = values[i]
		case "GQ":
			genotypeQuality = parseNullableFloat(values[i])
		}
	}
	return genotype, genotypeQuality
}

// parseNullableFloat parses a float field where a literal '.' means absent,
// not zero.
func parseNullableFloat(field string) *float64 {
	if field == "" || field == "." {
		return nil
	}
	value, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return nil
	}
	return &value
}

// infoValue returns the first present INFO value among the given keys.
func infoValue(info map[string]string, keys ...string) string {
	for _, key := range keys {
		if value, ok := info[key]; ok {
			return value
		}
	}
	return ""
}

// normalizeRsID lower-cases an identifier and ensures the rs prefix.
func normalizeRsID(raw string) string {
	id := strings.ToLower(strings.TrimSpace(raw))
	if id == "" {
		return id
	}
	if !strings.HasPrefix(id, "rs") {
		id = "rs" + id
	}
	return id
}

func splitNonEmpty(field, sep string) []string {
	var parts []string
	for _, token := range strings.Split(field, sep) {
		if token != "" {
			parts = append(parts, token)
		}
	}
	return parts
}
