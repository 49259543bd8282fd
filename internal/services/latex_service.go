package services

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jobvibe/jobvibe-api/internal/dtos"
	"github.com/tmc/langchaingo/llms"
)

//go:embed templates/*.tex
var templateFS embed.FS

// Bundled LaTeX templates for the glow-up feature. IDs are part of the
// public API; display names mirror the template families they imitate.
var templateRegistry = map[string]struct {
	Name string
	File string
}{
	"template-1": {Name: "Modern Deedy (OpenFont)", File: "templates/template-1.tex"},
	"template-2": {Name: "AltaCV (Sidebar)", File: "templates/template-2.tex"},
	"template-3": {Name: "Jake's Resume (Classic)", File: "templates/template-3.tex"},
}

// ErrUnknownTemplate rejects template IDs outside the registry.
var ErrUnknownTemplate = errors.New("unknown template id")

const pdfToLatexPrompt = `You are a LaTeX expert. Convert the attached resume PDF into clean, compilable LaTeX code.

Requirements:
1. Generate complete, compilable LaTeX code (not fragments)
2. Preserve all text content exactly as it appears
3. Maintain proper structure: header, sections, bullet points, dates
4. Ensure the document compiles with a basic pdflatex installation

Output ONLY the LaTeX code, starting with \documentclass and ending with \end{document}.
Do not include any explanations or markdown formatting.`

const blendSystemPrompt = `You are a LaTeX expert specializing in resume formatting. Create a beautifully formatted resume using ONLY standard LaTeX.

CRITICAL REQUIREMENTS:
1. Document class MUST be: \documentclass[11pt,a4paper]{article}
2. Use ONLY these standard packages: geometry, enumitem, titlesec, hyperref, xcolor, fontenc, inputenc, parskip, fancyhdr
3. Do NOT use custom .cls files or obscure packages
4. PRESERVE ALL CONTENT from the existing resume: experience, education, projects, skills, contact details
5. Use the template ONLY for visual inspiration (colors, spacing, section styles)
6. Ensure balanced braces and properly closed environments

Return ONLY the complete LaTeX code, no explanations, no markdown code blocks.`

// LatexService is the template/conversion gateway: one LLM-backed
// conversion pair plus a fan-out over two external LaTeX compilers.
// Every call is best-effort from the gateway's point of view; policy
// (propagate vs suppress) belongs to the caller.
type LatexService struct {
	Client llms.Model
	HTTP   *http.Client
}

func NewLatexService(client llms.Model, upstreamTimeout time.Duration) *LatexService {
	return &LatexService{
		Client: client,
		HTTP:   &http.Client{Timeout: upstreamTimeout},
	}
}

// Templates lists the bundled registry, stable order.
func (s *LatexService) Templates() []dtos.TemplateInfo {
	infos := make([]dtos.TemplateInfo, 0, len(templateRegistry))
	for id, entry := range templateRegistry {
		infos = append(infos, dtos.TemplateInfo{ID: id, Name: entry.Name})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

func loadTemplate(templateID string) (string, error) {
	entry, ok := templateRegistry[templateID]
	if !ok {
		return "", ErrUnknownTemplate
	}
	data, err := templateFS.ReadFile(entry.File)
	if err != nil {
		return "", fmt.Errorf("load template %s: %w", templateID, err)
	}
	return string(data), nil
}

// ConvertPDFToLatex sends the PDF bytes to the completion API and
// returns compilable LaTeX.
func (s *LatexService) ConvertPDFToLatex(ctx context.Context, pdfBytes []byte) (string, error) {
	resp, err := s.Client.GenerateContent(ctx, []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.BinaryPart("application/pdf", pdfBytes),
				llms.TextPart(pdfToLatexPrompt),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("pdf to latex conversion: %w", err)
	}
	latex := extractLatex(firstChoice(resp))
	if latex == "" {
		return "", errors.New("pdf to latex conversion returned no LaTeX")
	}
	return latex, nil
}

// BlendWithTemplate rewrites existing resume LaTeX in the visual style
// of a bundled template, preserving all content.
func (s *LatexService) BlendWithTemplate(ctx context.Context, existingLatex, templateID, originalName string) (string, error) {
	templateContent, err := loadTemplate(templateID)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`ORIGINAL RESUME NAME: %s

EXISTING RESUME CONTENT (extract all details from this):
%s

TEMPLATE FOR VISUAL INSPIRATION (do NOT copy its document class or custom packages):
%s`, originalName, existingLatex, templateContent)

	resp, err := s.Client.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, blendSystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	})
	if err != nil {
		return "", fmt.Errorf("template blending: %w", err)
	}
	latex := extractLatex(firstChoice(resp))
	if latex == "" {
		return "", errors.New("template blending returned no LaTeX")
	}
	return latex, nil
}

// CompileLatexToPDF tries each external compiler in fixed priority order
// and returns the first successful PDF. No retries; total failure is one
// error.
func (s *LatexService) CompileLatexToPDF(ctx context.Context, latexContent string) ([]byte, error) {
	compilers := []struct {
		name string
		fn   func(context.Context, string) ([]byte, error)
	}{
		{"latexonline.cc", s.compileWithLatexOnline},
		{"latex.ytotech.com", s.compileWithYtotech},
	}

	callID := uuid.NewString()
	for _, compiler := range compilers {
		pdf, err := compiler.fn(ctx, latexContent)
		if err != nil {
			log.Printf("LaTeX compile %s via %s failed: %v", callID, compiler.name, err)
			continue
		}
		return pdf, nil
	}
	return nil, errors.New("all LaTeX compilation services failed")
}

// TemplatePreview compiles a bundled template as-is.
func (s *LatexService) TemplatePreview(ctx context.Context, templateID string) ([]byte, error) {
	templateContent, err := loadTemplate(templateID)
	if err != nil {
		return nil, err
	}
	return s.CompileLatexToPDF(ctx, templateContent)
}

func (s *LatexService) compileWithLatexOnline(ctx context.Context, latexContent string) ([]byte, error) {
	form := url.Values{"text": {latexContent}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		"https://latexonline.cc/compile", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.expectPDF(req, http.StatusOK)
}

func (s *LatexService) compileWithYtotech(ctx context.Context, latexContent string) ([]byte, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"compiler": "pdflatex",
		"resources": []map[string]interface{}{
			{"main": true, "content": latexContent},
		},
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		"https://latex.ytotech.com/builds/sync", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return s.expectPDF(req, http.StatusCreated)
}

func (s *LatexService) expectPDF(req *http.Request, wantStatus int) ([]byte, error) {
	resp, err := s.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "application/pdf") {
		return nil, fmt.Errorf("unexpected content type %q", resp.Header.Get("Content-Type"))
	}
	return io.ReadAll(resp.Body)
}

var codeFenceRe = regexp.MustCompile("(?s)```[a-z]*\\s*\\n(.*?)\\n```")

// extractLatex pulls the LaTeX document out of a completion response,
// tolerating markdown fences and surrounding prose.
func extractLatex(raw string) string {
	raw = strings.TrimSpace(raw)
	if m := codeFenceRe.FindStringSubmatch(raw); m != nil {
		raw = strings.TrimSpace(m[1])
	}
	start := strings.Index(raw, `\documentclass`)
	if start == -1 {
		return raw
	}
	end := strings.LastIndex(raw, `\end{document}`)
	if end == -1 {
		return strings.TrimSpace(raw[start:])
	}
	return strings.TrimSpace(raw[start : end+len(`\end{document}`)])
}

func firstChoice(resp *llms.ContentResponse) string {
	if resp == nil || len(resp.Choices) == 0 {
		return ""
	}
	return resp.Choices[0].Content
}
