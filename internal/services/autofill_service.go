package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jobvibe/jobvibe-api/internal/dtos"
	"github.com/jobvibe/jobvibe-api/internal/models"
	"gorm.io/gorm"
)

// Extractor is the slice of the chat orchestrator the autofill flow
// needs.
type Extractor interface {
	ExtractApplication(ctx context.Context, text string) (*dtos.AutofillResult, error)
}

// AutofillService turns a pasted job URL or posting text into a tracked
// application.
type AutofillService struct {
	DB        *gorm.DB
	Extractor Extractor
}

func NewAutofillService(db *gorm.DB, extractor Extractor) *AutofillService {
	return &AutofillService{DB: db, Extractor: extractor}
}

// Parse extracts application fields and creates the application row.
// An upstream extraction failure propagates to the caller; only an
// extraction that succeeds but finds nothing falls back to URL parsing.
func (s *AutofillService) Parse(ctx context.Context, req *dtos.AutofillParseRequest) (*models.Application, error) {
	combined := strings.TrimSpace(strings.Join(
		nonEmpty(req.URL, req.Text), "\n"))
	if combined == "" {
		return nil, fmt.Errorf("autofill request carries neither url nor text")
	}

	result, err := s.Extractor.ExtractApplication(ctx, combined)
	if err != nil {
		if req.URL == "" {
			return nil, err
		}
		// A URL still gives us something to work with.
		result = parseJobURL(req.URL)
	}

	app := &models.Application{
		CompanyName: result.CompanyName,
		RoleTitle:   result.RoleTitle,
		DateApplied: time.Now(),
		Status:      models.StatusApplied,
		Source:      "Autofill",
		Location:    result.Location,
		Duration:    result.Duration,
		Notes:       "Auto-captured via autofill: " + result.Message,
	}
	if err := s.DB.Create(app).Error; err != nil {
		return nil, err
	}
	return app, nil
}

var (
	jobsDomainRe      = regexp.MustCompile(`(?:jobs|careers)\.([^.]+)\.com`)
	linkedinCompanyRe = regexp.MustCompile(`linkedin\.com/company/([^/?]+)`)
	linkedinJobRe     = regexp.MustCompile(`linkedin\.com/jobs/view/.*?-at-(.*?)(?:-|$|\?)`)
)

// parseJobURL pulls a company name out of common job posting URL shapes:
// jobs.acme.com, acme.com/careers, LinkedIn company pages and postings.
func parseJobURL(rawURL string) *dtos.AutofillResult {
	lower := strings.ToLower(rawURL)
	company := ""

	if m := jobsDomainRe.FindStringSubmatch(lower); m != nil {
		company = titleizeSlug(m[1])
	}
	if company == "" {
		if m := linkedinCompanyRe.FindStringSubmatch(lower); m != nil {
			company = titleizeSlug(m[1])
		}
	}
	if company == "" {
		if m := linkedinJobRe.FindStringSubmatch(lower); m != nil {
			company = titleizeSlug(m[1])
		}
	}
	if company == "" {
		company = "Unknown Company"
	}

	return &dtos.AutofillResult{
		CompanyName: company,
		RoleTitle:   "Software Engineer",
		Success:     true,
		Message:     "Extracted company from URL",
	}
}

// titleizeSlug turns "jane-street" into "Jane Street"; short slugs are
// treated as acronyms ("rbc" -> "RBC").
func titleizeSlug(slug string) string {
	if len(slug) <= 5 && !strings.Contains(slug, "-") {
		return strings.ToUpper(slug)
	}
	words := strings.Split(strings.ReplaceAll(slug, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
