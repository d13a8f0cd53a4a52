package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/whatsthemove/moveplan/internal/common"
	"github.com/whatsthemove/moveplan/internal/model"
	"github.com/whatsthemove/moveplan/internal/service"
)

// DefaultModel is the chat model used for posting classification.
const DefaultModel = "gpt-4.1-mini"

const systemPrompt = `You are a job posting analysis assistant.

Your task:
1. Decide if the given page text represents a realistic job posting.
2. If it does, extract key fields into a JSON object with a fixed schema.
3. If it does not, still fill the JSON, but set is_valid_job_posting = false and explain why.

Important rules:
- Always respond with VALID JSON ONLY.
- Do not include any explanations outside the JSON.
- If a field is missing or unknown, use null or "Unknown" as appropriate.
- When extracting dates for internships or co-ops, try to infer:
  * Start month (numeric, 1-12) and year (e.g. 2026)
  * End month (numeric, 1-12) and year (e.g. 2026)
  If no clear internship/term dates are specified, set those fields to null.`

const userPromptTemplate = `Here is the job posting page text (may be noisy):

PAGE_URL: %s

PAGE_TEXT:
"""%s"""

Return a single JSON object with this exact schema:

{
  "is_valid_job_posting": boolean,
  "validity_reason": string,

  "job_title": string or null,
  "company_name": string or null,
  "location": string or null,

  "work_model": string,
  "salary_currency": string or null,
  "salary_min": number or null,
  "salary_max": number or null,
  "salary_interval": string,
  "employment_type": string,
  "application_deadline": string or null,
  "job_url": string,

  "job_start_month": number or null,
  "job_start_year": number or null,
  "job_end_month": number or null,
  "job_end_year": number or null,

  "red_flags": [string, ...],
  "quick_summary": string,
  "raw_snippet": string
}

Rules:
- "location" should be as close as possible to "City, ST" format if that information is available (e.g. "Seattle, WA").
- "work_model" is one of "On-site", "Remote", "Hybrid", or "Unknown".
- If you cannot confidently identify job start or end month/year, set the corresponding fields to null.
- Remember: respond with JSON only.`

// Inspector classifies job posting URLs into structured postings.
type Inspector struct {
	client  *openai.Client
	fetcher *Fetcher
	model   string
	retry   service.RetryOptions
}

// Option configures an Inspector.
type Option func(*openai.ClientConfig)

// WithBaseURL points the inspector at an alternative API endpoint.
func WithBaseURL(baseURL string) Option {
	return func(cfg *openai.ClientConfig) {
		cfg.BaseURL = baseURL
	}
}

// NewInspector builds an inspector from an API key and model name. An empty
// model falls back to DefaultModel.
func NewInspector(apiKey, modelName string, opts ...Option) (*Inspector, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: OpenAI API key is required", common.ErrMissingConfig)
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	cfg := openai.DefaultConfig(apiKey)
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Inspector{
		client:  openai.NewClientWithConfig(cfg),
		fetcher: NewFetcher(),
		model:   modelName,
		retry:   service.RetryOptions{MaxAttempts: 3},
	}, nil
}

// Inspect fetches the posting page and classifies it.
func (i *Inspector) Inspect(ctx context.Context, url string) (*model.JobPosting, error) {
	pageText, err := i.fetcher.PageText(ctx, url)
	if err != nil {
		return nil, err
	}
	return i.ClassifyText(ctx, pageText, url)
}

// ClassifyText runs the classifier over already-fetched page text.
func (i *Inspector) ClassifyText(ctx context.Context, pageText, url string) (*model.JobPosting, error) {
	var content string
	err := common.WithRetry(ctx, func() error {
		resp, err := i.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: i.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(userPromptTemplate, url, pageText)},
			},
			Temperature: 0.1,
		})
		if err != nil {
			return fmt.Errorf("chat completion failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("%w: empty completion", common.ErrClassificationFailed)
		}
		content = resp.Choices[0].Message.Content
		return nil
	}, i.retry)
	if err != nil {
		return nil, err
	}

	var posting model.JobPosting
	if err := json.Unmarshal([]byte(stripFences(content)), &posting); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON from model: %v", common.ErrClassificationFailed, err)
	}
	if posting.JobURL == "" {
		posting.JobURL = url
	}

	common.LogDebug("classified job posting", common.Fields{
		"url":   url,
		"valid": posting.IsValidJobPosting,
	})
	return &posting, nil
}

// stripFences removes a markdown code fence the model sometimes wraps its
// JSON in.
func stripFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
