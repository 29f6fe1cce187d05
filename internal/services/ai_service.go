package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mycarebay/carebay-backend/internal/config"
	"github.com/mycarebay/carebay-backend/internal/dto"
)

// ErrUpstreamAI is returned for any failure talking to the generative
// service. Upstream detail stays in the server logs; callers only ever see
// a retry message.
var ErrUpstreamAI = errors.New("generative service unavailable")

// AIUnavailableMessage is returned in place of generated content when no
// API key is configured.
const AIUnavailableMessage = "AI features are not available. Please check your configuration."

const careAdviceSystemInstruction = `You are an expert AI assistant specializing in senior care. Your goal is to provide clear, empathetic, and actionable advice to family caregivers. When a user asks a question, use the provided search results to formulate a comprehensive answer. If they ask for a list or checklist, format it clearly with markdown. Always cite your sources.`

// checklistSchema constrains the checklist call to the JSON shape the
// client renders directly.
const checklistSchema = `{
  "type": "OBJECT",
  "properties": {
    "checklist": {
      "type": "ARRAY",
      "items": {
        "type": "OBJECT",
        "properties": {
          "category": {"type": "STRING"},
          "questions": {"type": "ARRAY", "items": {"type": "STRING"}}
        },
        "required": ["category", "questions"]
      }
    }
  },
  "required": ["checklist"]
}`

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiTool struct {
	GoogleSearch *struct{} `json:"google_search,omitempty"`
}

type geminiGenerationConfig struct {
	ResponseMIMEType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent          `json:"system_instruction,omitempty"`
	Contents          []geminiContent         `json:"contents"`
	Tools             []geminiTool            `json:"tools,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		GroundingMetadata *struct {
			GroundingChunks []struct {
				Web *struct {
					URI   string `json:"uri"`
					Title string `json:"title"`
				} `json:"web"`
			} `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
}

// AIService forwards caregiver questions to the Gemini API.
type AIService struct {
	cfg    *config.Config
	client *http.Client
}

func NewAIService(cfg *config.Config) *AIService {
	timeout := cfg.AITimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &AIService{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

func (s *AIService) available() bool {
	return s.cfg.GeminiAPIKey != ""
}

// CareAdvice answers a free-form caregiving question with web-grounded
// prose plus citation sources.
func (s *AIService) CareAdvice(profile *dto.SeniorProfileContext, question string) (*dto.CareAdviceResponse, error) {
	if !s.available() {
		return &dto.CareAdviceResponse{Advice: AIUnavailableMessage, Sources: []dto.GroundingSource{}}, nil
	}

	prompt := question
	if profile != nil && profile.Name != "" {
		var b strings.Builder
		b.WriteString("The caregiver is asking about ")
		b.WriteString(profile.Name)
		b.WriteString(".")
		if len(profile.Ailments) > 0 {
			b.WriteString(" Known conditions: ")
			b.WriteString(strings.Join(profile.Ailments, ", "))
			b.WriteString(".")
		}
		if len(profile.Medications) > 0 {
			b.WriteString(" Current medications: ")
			b.WriteString(strings.Join(profile.Medications, ", "))
			b.WriteString(".")
		}
		b.WriteString("\n\nQuestion: ")
		b.WriteString(question)
		prompt = b.String()
	}

	req := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: careAdviceSystemInstruction}}},
		Contents:          []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
		Tools:             []geminiTool{{GoogleSearch: &struct{}{}}},
	}

	resp, err := s.generate(&req)
	if err != nil {
		slog.Error("care advice request failed", "action", "care_advice", "error", err.Error())
		return nil, ErrUpstreamAI
	}

	advice := dto.CareAdviceResponse{
		Advice:  candidateText(resp),
		Sources: []dto.GroundingSource{},
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0].GroundingMetadata != nil {
		for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
			if chunk.Web != nil {
				advice.Sources = append(advice.Sources, dto.GroundingSource{URI: chunk.Web.URI, Title: chunk.Web.Title})
			}
		}
	}
	return &advice, nil
}

// FacilityChecklist produces categorized questions to ask a long-term care
// facility, tailored to the senior's conditions when a profile is given.
func (s *AIService) FacilityChecklist(topic string, profile *dto.SeniorProfileContext) (*dto.FacilityChecklistResponse, error) {
	if !s.available() {
		return &dto.FacilityChecklistResponse{
			Checklist: []dto.ChecklistCategory{{
				Category:  "AI Not Available",
				Questions: []string{AIUnavailableMessage},
			}},
		}, nil
	}

	if topic == "" {
		topic = "general facility assessment"
	}

	seniorName := "your loved one"
	var ailmentNames string
	if profile != nil {
		if profile.Name != "" {
			seniorName = profile.Name
		}
		ailmentNames = strings.Join(profile.Ailments, ", ")
	}

	var instruction string
	if ailmentNames != "" {
		instruction = fmt.Sprintf(`You are an expert in senior care and geriatrics. A caregiver is preparing to visit a long-term care facility for %s who has %s. Generate a detailed checklist of specific questions they should ask the facility's staff. Categorize the questions into logical sections covering equipment and accommodations, staff training and experience, daily care routines, emergency protocols, and overall facility assessment, all specific to %s.`, seniorName, ailmentNames, ailmentNames)
	} else {
		instruction = `You are an expert in senior care and geriatrics. A caregiver is preparing to visit a long-term care facility for general assessment. Generate a detailed checklist of specific questions they should ask the facility's staff. Categorize the questions into logical sections covering facility quality, staff and care, safety and security, activities and social life, medical care, and costs and policies.`
	}

	req := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: instruction}}},
		Contents:          []geminiContent{{Role: "user", Parts: []geminiPart{{Text: "Generate a checklist for the topic: " + topic}}}},
		GenerationConfig: &geminiGenerationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   json.RawMessage(checklistSchema),
		},
	}

	resp, err := s.generate(&req)
	if err != nil {
		slog.Error("facility checklist request failed", "action", "facility_checklist", "error", err.Error())
		return nil, ErrUpstreamAI
	}

	var checklist dto.FacilityChecklistResponse
	if err := parseModelJSON(candidateText(resp), &checklist); err != nil {
		slog.Error("facility checklist parse failed", "action", "facility_checklist", "error", err.Error())
		return nil, ErrUpstreamAI
	}
	return &checklist, nil
}

// AilmentEducation returns a caregiver-friendly markdown overview of one
// medical condition.
func (s *AIService) AilmentEducation(ailmentName string) (string, error) {
	if !s.available() {
		return AIUnavailableMessage, nil
	}

	prompt := fmt.Sprintf(`Provide a simple and easy-to-understand overview for a non-medical caregiver about the following condition: %q.
Your response should be helpful, reassuring, and clear.
Structure your response into the following sections using markdown headings:

### What is %s?
(A brief, simple definition of the condition.)

### Common Symptoms
(A bulleted list of common symptoms to watch for.)

### General Care & Support
(A bulleted list of general, non-prescription ways to provide comfort and support.)

**Important Disclaimer:** This information is for educational purposes only and is not a substitute for professional medical advice, diagnosis, or treatment. Always seek the advice of a physician or other qualified health provider with any questions you may have regarding a medical condition.`, ailmentName, ailmentName)

	req := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
	}

	resp, err := s.generate(&req)
	if err != nil {
		slog.Error("ailment education request failed", "action", "ailment_education", "error", err.Error())
		return "", ErrUpstreamAI
	}
	return candidateText(resp), nil
}

func (s *AIService) generate(reqBody *geminiRequest) (*geminiResponse, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimSuffix(s.cfg.GeminiAPIURL, "/"), s.cfg.GeminiModel)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.cfg.GeminiAPIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gemini API error: status %d", resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Candidates) == 0 {
		return nil, errors.New("no candidates in gemini response")
	}
	return &parsed, nil
}

func candidateText(resp *geminiResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String()
}

// parseModelJSON unmarshals model output that may arrive wrapped in a
// markdown code fence or surrounded by stray prose.
func parseModelJSON(content string, v interface{}) error {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	if err := json.Unmarshal([]byte(content), v); err != nil {
		start := strings.Index(content, "{")
		end := strings.LastIndex(content, "}")
		if start >= 0 && end > start {
			return json.Unmarshal([]byte(content[start:end+1]), v)
		}
		return err
	}
	return nil
}
