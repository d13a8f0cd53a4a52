package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whatsthemove/moveplan/internal/common"
)

// newStubOpenAI serves a canned chat-completion response regardless of the
// request, recording the last request body for assertions.
func newStubOpenAI(t *testing.T, content string) (*httptest.Server, *map[string]any) {
	t.Helper()
	var lastRequest map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&lastRequest))
		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"id":     "cmpl-test",
			"object": "chat.completion",
			"model":  DefaultModel,
			"choices": []map[string]any{
				{
					"index":         0,
					"finish_reason": "stop",
					"message": map[string]any{
						"role":    "assistant",
						"content": content,
					},
				},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)
	return srv, &lastRequest
}

const postingJSON = `{
	"is_valid_job_posting": true,
	"validity_reason": "Describes a concrete role with responsibilities and pay.",
	"job_title": "Software Engineering Intern",
	"company_name": "Acme Corp",
	"location": "Seattle, WA",
	"work_model": "Hybrid",
	"salary_currency": "USD",
	"salary_min": 45,
	"salary_max": 55,
	"salary_interval": "hourly",
	"employment_type": "Internship",
	"application_deadline": null,
	"job_url": "",
	"job_start_month": 5,
	"job_start_year": 2026,
	"job_end_month": 8,
	"job_end_year": 2026,
	"red_flags": [],
	"quick_summary": "Summer internship on the platform team.",
	"raw_snippet": "Acme Corp is hiring interns."
}`

func TestClassifyText(t *testing.T) {
	srv, lastRequest := newStubOpenAI(t, "```json\n"+postingJSON+"\n```")

	insp, err := NewInspector("test-key", "", WithBaseURL(srv.URL+"/v1"))
	require.NoError(t, err)

	posting, err := insp.ClassifyText(context.Background(), "We are hiring interns.", "https://jobs.example.com/123")
	require.NoError(t, err)

	assert.True(t, posting.IsValidJobPosting)
	require.NotNil(t, posting.JobTitle)
	assert.Equal(t, "Software Engineering Intern", *posting.JobTitle)
	require.NotNil(t, posting.SalaryMin)
	assert.InDelta(t, 45, *posting.SalaryMin, 1e-9)
	require.NotNil(t, posting.JobStartMonth)
	assert.Equal(t, 5, *posting.JobStartMonth)

	// An empty job_url from the model is backfilled with the input URL.
	assert.Equal(t, "https://jobs.example.com/123", posting.JobURL)

	assert.Equal(t, DefaultModel, (*lastRequest)["model"])
	assert.InDelta(t, 0.1, (*lastRequest)["temperature"].(float64), 1e-9)
}

func TestClassifyTextInvalidJSON(t *testing.T) {
	srv, _ := newStubOpenAI(t, "Sorry, I cannot help with that.")

	insp, err := NewInspector("test-key", "", WithBaseURL(srv.URL+"/v1"))
	require.NoError(t, err)

	_, err = insp.ClassifyText(context.Background(), "page text", "https://jobs.example.com/123")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrClassificationFailed)
}

func TestNewInspectorRequiresKey(t *testing.T) {
	_, err := NewInspector("", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, stripFences(tc.input))
	}
}

func TestPageText(t *testing.T) {
	page := `<html><head>
		<title>Intern Opening</title>
		<script>var tracking = "noise";</script>
		<style>.hidden { display: none; }</style>
	</head><body>
		<h1>Software Engineering Intern</h1>
		<p>Acme Corp is hiring for summer 2026.</p>
	</body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, page)
	}))
	t.Cleanup(srv.Close)

	text, err := NewFetcher().PageText(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Contains(t, text, "Software Engineering Intern")
	assert.Contains(t, text, "Acme Corp is hiring for summer 2026.")
	assert.NotContains(t, text, "tracking")
	assert.NotContains(t, text, "display: none")
	assert.LessOrEqual(t, len(text), maxPageChars)
}

func TestPageTextErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	_, err := NewFetcher().PageText(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
