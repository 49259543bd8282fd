package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jobvibe/jobvibe-api/internal/config"
	"github.com/jobvibe/jobvibe-api/internal/dtos"
	"github.com/jobvibe/jobvibe-api/internal/models"
	"github.com/ledongthuc/pdf"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const critiqueSystemPrompt = `You are an expert resume reviewer and career coach. Critique the resume below honestly and constructively.

Cover, in order:
1. Overall impression and strongest sections
2. Weak or vague bullet points, with concrete rewrites
3. Missing information a recruiter would expect
4. Formatting and ordering suggestions

Be specific: quote the text you are critiquing. Keep the tone direct but encouraging.`

const interviewSystemPrompt = `You are a senior engineer conducting a technical interview grounded in the candidate's resume.

STRICT PROTOCOL:
- Ask EXACTLY ONE question per turn. Never ask two questions in one message.
- Base questions on the candidate's actual projects and experience.
- Increase difficulty gradually as the interview progresses.
- Do not rate or correct answers during the interview; just ask the next question.`

const rateAnswerPrompt = `You are grading one answer from a technical interview.

QUESTION:
%s

CANDIDATE ANSWER:
%s
%s
Rate the answer using this rubric:
- Score: N/10
- Strengths: what the candidate got right
- Gaps: what was missing or incorrect
- Model answer: a concise strong answer

Keep the whole rating under 200 words.`

const autofillExtractionPrompt = `Extract job application details from the text below. It may be a job posting URL, a pasted posting, or a confirmation email.

Format the output as valid JSON only. Do not wrap the output in markdown code blocks.

OUTPUT SCHEMA:
{
    "company_name": "Name of the company",
    "role_title": "Job title",
    "location": "Job location or 'Remote', or null",
    "duration": "Contract length like '4 months' or 'Full-time', or null"
}

If a piece of information is missing, set the value to null. Do not hallucinate or guess.

RAW CONTENT:
%s`

const imageClassificationPrompt = `This image is a screenshot or photo of a recruiter communication (email, LinkedIn message, or letter). Read all text in the image and classify it.

Format the output as valid JSON only. Do not wrap the output in markdown code blocks.

OUTPUT SCHEMA:
{
    "type": "one of: Interview Invite | Rejection | Offer | Note | Follow-up",
    "message": "The full message text transcribed from the image",
    "sender_name": "Sender's name if visible, else null",
    "sender_email": "Sender's email if visible, else null",
    "response_date": "Date of the message in YYYY-MM-DD if visible, else null"
}

When unsure of the type, use "Note". Do not invent fields that are not in the image.`

// ChatService is the stateless orchestrator around the remote completion
// API: each call sends resume text, history and mode, and returns one
// assistant reply. Transcript persistence lives in ChatSessionService.
type ChatService struct {
	Client llms.Model
}

// NewChatService initializes the completion client.
func NewChatService(cfg *config.Config) *ChatService {
	if cfg.OpenAIKey == "" {
		log.Fatal("CRITICAL ERROR: OPENAI_API_KEY is empty. Did you load the .env file?")
	}

	llm, err := openai.New(
		openai.WithToken(cfg.OpenAIKey),
		openai.WithModel(cfg.OpenAIModel),
	)
	if err != nil {
		log.Fatal("Failed to create OpenAI client:", err)
	}
	return &ChatService{Client: llm}
}

// CritiqueResume returns one critique reply. An empty userMessage asks
// for the initial full critique.
func (s *ChatService) CritiqueResume(ctx context.Context, resume *models.Resume, userMessage string, history []dtos.ChatTurn) (string, error) {
	system := critiqueSystemPrompt + "\n\nRESUME:\n" + s.resumeText(resume)
	if userMessage == "" {
		userMessage = "Please give me a full critique of my resume."
	}
	return s.completeWithHistory(ctx, system, history, userMessage)
}

// StartInterview produces the opening interview question.
func (s *ChatService) StartInterview(ctx context.Context, resume *models.Resume, application *models.Application) (string, error) {
	system := interviewSystemPrompt + "\n\nCANDIDATE RESUME:\n" + s.resumeText(resume) + applicationContext(application)
	return s.completeWithHistory(ctx, system, nil,
		"Start the interview with a brief greeting and your first question.")
}

// ContinueInterview advances the interview by one turn.
func (s *ChatService) ContinueInterview(ctx context.Context, resume *models.Resume, application *models.Application, message string, history []dtos.ChatTurn) (string, error) {
	system := interviewSystemPrompt + "\n\nCANDIDATE RESUME:\n" + s.resumeText(resume) + applicationContext(application)
	return s.completeWithHistory(ctx, system, history, message)
}

// RateAnswer scores one question/answer pair against the rubric.
func (s *ChatService) RateAnswer(ctx context.Context, question, answer string, resume *models.Resume) (string, error) {
	resumeContext := ""
	if resume != nil {
		resumeContext = "\nCANDIDATE RESUME (for context):\n" + s.resumeText(resume) + "\n"
	}
	prompt := fmt.Sprintf(rateAnswerPrompt, question, answer, resumeContext)
	return llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
}

// ExtractApplication parses free-form job posting text into application
// fields via the completion API.
func (s *ChatService) ExtractApplication(ctx context.Context, text string) (*dtos.AutofillResult, error) {
	prompt := fmt.Sprintf(autofillExtractionPrompt, text)
	raw, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		CompanyName string `json:"company_name"`
		RoleTitle   string `json:"role_title"`
		Location    string `json:"location"`
		Duration    string `json:"duration"`
	}
	if err := json.Unmarshal([]byte(stripJSONFences(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("autofill extraction returned invalid JSON: %w", err)
	}
	if parsed.CompanyName == "" {
		return nil, errors.New("autofill extraction found no company name")
	}
	if parsed.RoleTitle == "" {
		parsed.RoleTitle = "Software Engineer"
	}
	return &dtos.AutofillResult{
		CompanyName: parsed.CompanyName,
		RoleTitle:   parsed.RoleTitle,
		Location:    parsed.Location,
		Duration:    parsed.Duration,
		Success:     true,
		Message:     "Extracted with AI",
	}, nil
}

// ClassifyCommunicationImage OCRs and classifies a screenshot into a
// communication draft for the client to review.
func (s *ChatService) ClassifyCommunicationImage(ctx context.Context, imageBytes []byte, mimeType string) (*dtos.CommunicationDraft, error) {
	resp, err := s.Client.GenerateContent(ctx, []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.BinaryPart(mimeType, imageBytes),
				llms.TextPart(imageClassificationPrompt),
			},
		},
	})
	if err != nil {
		return nil, err
	}

	draft := &dtos.CommunicationDraft{}
	if err := json.Unmarshal([]byte(stripJSONFences(firstChoice(resp))), draft); err != nil {
		return nil, fmt.Errorf("image classification returned invalid JSON: %w", err)
	}
	switch draft.Type {
	case models.CommTypeInterviewInvite, models.CommTypeRejection,
		models.CommTypeOffer, models.CommTypeNote, models.CommTypeFollowUp:
	default:
		draft.Type = models.CommTypeNote
	}
	return draft, nil
}

func (s *ChatService) completeWithHistory(ctx context.Context, system string, history []dtos.ChatTurn, userMessage string) (string, error) {
	msgs := []llms.MessageContent{llms.TextParts(llms.ChatMessageTypeSystem, system)}
	for _, turn := range history {
		role := llms.ChatMessageTypeHuman
		if turn.Role == "assistant" {
			role = llms.ChatMessageTypeAI
		}
		msgs = append(msgs, llms.TextParts(role, turn.Content))
	}
	msgs = append(msgs, llms.TextParts(llms.ChatMessageTypeHuman, userMessage))

	resp, err := s.Client.GenerateContent(ctx, msgs)
	if err != nil {
		return "", err
	}
	reply := firstChoice(resp)
	if reply == "" {
		return "", errors.New("empty completion response")
	}
	return reply, nil
}

// resumeText prefers text extracted from the stored PDF; otherwise it
// renders the structured content.
func (s *ChatService) resumeText(resume *models.Resume) string {
	if resume == nil {
		return "No resume available."
	}
	if len(resume.FileData) > 0 && strings.Contains(resume.FileType, "pdf") {
		if text, err := extractPDFText(resume.FileData); err == nil && strings.TrimSpace(text) != "" {
			return text
		} else if err != nil {
			log.Printf("PDF extraction failed for resume %d: %v", resume.ID, err)
		}
	}
	return formatResumeContent(resume.Content)
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// formatResumeContent renders the structured JSON document as plain
// sections for prompting.
func formatResumeContent(content []byte) string {
	var doc map[string]interface{}
	if err := json.Unmarshal(content, &doc); err != nil || len(doc) == 0 {
		return "No resume content available."
	}

	var b strings.Builder
	writeField := func(label, key string) {
		if v, ok := doc[key].(string); ok && v != "" {
			fmt.Fprintf(&b, "%s: %s\n", label, v)
		}
	}
	writeList := func(label, key string) {
		items, ok := doc[key].([]interface{})
		if !ok || len(items) == 0 {
			return
		}
		fmt.Fprintf(&b, "%s:\n", label)
		for _, item := range items {
			out, err := json.Marshal(item)
			if err != nil {
				continue
			}
			fmt.Fprintf(&b, "  - %s\n", out)
		}
	}

	writeField("Name", "name")
	writeField("Email", "email")
	writeField("Summary", "summary")
	writeList("Experience", "experience")
	writeList("Skills", "skills")
	writeList("Education", "education")

	if b.Len() == 0 {
		return "No resume content available."
	}
	return b.String()
}

func applicationContext(application *models.Application) string {
	if application == nil {
		return ""
	}
	return fmt.Sprintf("\n\nTARGET ROLE: %s at %s", application.RoleTitle, application.CompanyName)
}

// stripJSONFences unwraps a JSON object from markdown fences or
// surrounding prose.
func stripJSONFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if m := codeFenceRe.FindStringSubmatch(raw); m != nil {
		raw = strings.TrimSpace(m[1])
	}
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}
