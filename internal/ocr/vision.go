package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Vigneshraghu10/Buzz-card-production-ready-sub001/internal/models"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.0-flash-lite"
)

// extractionPrompt asks for the fixed six-key schema. Low temperature plus
// this prompt keeps the model in literal-transcription mode.
const extractionPrompt = `You are an expert data extraction assistant. Extract contact details from this business card image and return the data in a clean JSON format.

Here are the rules:
1. The required fields are: "name", "company", "phone", "email", "services", and "address".
2. If a field cannot be found on the card, its value in the JSON must be null.
3. Your entire response must be ONLY the JSON object. Do not include any explanations, apologies, or any text before or after the JSON.
4. Clean the extracted data by removing any unnecessary newline characters or extra whitespace.`

// VisionClient talks to the hosted multimodal model over its REST API.
// The API key is passed as a query parameter per the Gemini endpoint
// contract; baseURL is overridable so tests can point at a local server.
type VisionClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewVisionClient builds a client from the environment: GEMINI_API_KEY,
// GEMINI_MODEL and GEMINI_BASE_URL (the latter two optional).
func NewVisionClient() *VisionClient {
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = defaultModel
	}
	base := os.Getenv("GEMINI_BASE_URL")
	if base == "" {
		base = defaultBaseURL
	}
	return &VisionClient{
		apiKey:  os.Getenv("GEMINI_API_KEY"),
		model:   model,
		baseURL: strings.TrimRight(base, "/"),
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *VisionClient) hasCredential() bool {
	return strings.TrimSpace(c.apiKey) != ""
}

type inlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type requestPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

// Extract sends one multimodal request (prompt + inlined image) and returns
// the structured contact. Unparseable model output degrades to the
// heuristic text parser instead of failing; only transport problems, an
// upstream error status, or a truly empty response are errors.
func (c *VisionClient) Extract(ctx context.Context, img EncodedImage) (models.ParsedContact, error) {
	var out models.ParsedContact

	if strings.TrimSpace(c.apiKey) == "" {
		return out, ErrMissingCredential
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	payload := map[string]any{
		"contents": []map[string]any{
			{
				"parts": []requestPart{
					{Text: extractionPrompt},
					{InlineData: &inlineData{MIMEType: img.MIMEType, Data: img.Data}},
				},
			},
		},
		"generationConfig": map[string]any{
			"temperature":     0.1,
			"topK":            32,
			"topP":            1,
			"maxOutputTokens": 1024,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return out, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return out, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return out, fmt.Errorf("vision request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, fmt.Errorf("failed to read vision response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return out, &UpstreamError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return out, fmt.Errorf("malformed vision response envelope: %w", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return out, ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return out, ErrEmptyResponse
	}

	// Normalize: strip code fences and extract the first JSON object. The
	// model sometimes wraps the JSON in commentary despite the prompt.
	jsonStr := stripCodeFences(text)
	if candidate, ok := extractFirstJSON(jsonStr); ok {
		jsonStr = candidate
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &fields); err != nil {
		// Schema drift never hard-fails a scan: hand the raw transcription
		// to the heuristic parser and return whatever it derives.
		return AssembleContact(ParseCardText(text)), nil
	}
	return AssembleContact(fields), nil
}

// stripCodeFences removes surrounding Markdown code fences like ```json ... ```.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
		// remove a possible language tag at the start of the fence
		if i := strings.IndexByte(s, '\n'); i != -1 {
			first := strings.TrimSpace(s[:i])
			if len(first) > 0 && len(first) < 20 {
				s = s[i+1:]
			}
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}

// extractFirstJSON attempts to extract the first balanced JSON object or array.
func extractFirstJSON(s string) (string, bool) {
	if obj, ok := extractBalanced(s, '{', '}'); ok {
		return obj, true
	}
	if arr, ok := extractBalanced(s, '[', ']'); ok {
		return arr, true
	}
	return "", false
}

func extractBalanced(s string, open, close rune) (string, bool) {
	start := -1
	depth := 0
	for i, r := range s {
		if r == open {
			if depth == 0 {
				start = i
			}
			depth++
		} else if r == close {
			if depth > 0 {
				depth--
				if depth == 0 && start != -1 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}
