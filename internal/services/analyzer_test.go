package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// mockGeminiService returns canned responses (or errors) in call order and
// counts how many generation calls were issued.
type mockGeminiService struct {
	responses []string
	errs      []error
	calls     int
}

func (m *mockGeminiService) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	idx := m.calls
	m.calls++

	if idx < len(m.errs) && m.errs[idx] != nil {
		return "", m.errs[idx]
	}
	if idx < len(m.responses) {
		return m.responses[idx], nil
	}
	return "", &ResponseParseError{Detail: "unexpected extra call"}
}

const (
	idealCandidateJSON = `{
		"summary": "A seasoned backend engineer.",
		"key_skills": ["API design", "distributed systems"],
		"key_technologies": ["Go", "Docker", "Kubernetes"],
		"experience_level": "Senior"
	}`
	resumeFeedbackJSON = `{
		"strengths": ["Strong Go background"],
		"areas_for_improvement": ["No Kubernetes experience listed"],
		"suggestion_summary": "Highlight container orchestration work."
	}`
	suggestionsJSON = `{
		"bullet_points": [
			"Add a bullet about the Docker migration",
			"Quantify API throughput improvements",
			"Mention on-call ownership"
		]
	}`
)

func newTestAnalyzer(gemini GeminiService) AnalyzerService {
	return NewAnalyzerService(gemini, 5*time.Second)
}

func TestAnalyze_HappyPath(t *testing.T) {
	mock := &mockGeminiService{
		responses: []string{idealCandidateJSON, resumeFeedbackJSON, suggestionsJSON},
	}
	analyzer := newTestAnalyzer(mock)

	result, err := analyzer.Analyze(context.Background(), "resume text", "job description")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 3, mock.calls)
	assert.Equal(t, "A seasoned backend engineer.", result.IdealCandidate.Summary)
	assert.Equal(t, "Senior", result.IdealCandidate.ExperienceLevel)
	assert.Equal(t, []string{"Strong Go background"}, result.ResumeFeedback.Strengths)
	assert.Len(t, result.ActionableSuggestions.BulletPoints, 3)
}

func TestAnalyze_StepOneFailureShortCircuits(t *testing.T) {
	mock := &mockGeminiService{
		errs: []error{&UpstreamError{StatusCode: 500, Body: "internal error"}},
	}
	analyzer := newTestAnalyzer(mock)

	result, err := analyzer.Analyze(context.Background(), "resume text", "job description")
	require.Error(t, err)
	assert.Nil(t, result)

	// Steps 2 and 3 must never be invoked after a step-1 failure.
	assert.Equal(t, 1, mock.calls)

	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, 500, upstreamErr.StatusCode)
	assert.Contains(t, upstreamErr.Error(), "internal error")
}

func TestAnalyze_StepTwoFailureShortCircuits(t *testing.T) {
	mock := &mockGeminiService{
		responses: []string{idealCandidateJSON},
		errs:      []error{nil, &UpstreamError{StatusCode: 503, Body: "overloaded"}},
	}
	analyzer := newTestAnalyzer(mock)

	result, err := analyzer.Analyze(context.Background(), "resume text", "job description")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, 2, mock.calls)
}

func TestAnalyze_MalformedResponse(t *testing.T) {
	mock := &mockGeminiService{
		responses: []string{"this is not json"},
	}
	analyzer := newTestAnalyzer(mock)

	_, err := analyzer.Analyze(context.Background(), "resume text", "job description")
	require.Error(t, err)

	var parseErr *ResponseParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 1, mock.calls)
}

func TestAnalyze_MarkdownFencedResponseIsAccepted(t *testing.T) {
	mock := &mockGeminiService{
		responses: []string{
			"```json\n" + idealCandidateJSON + "\n```",
			resumeFeedbackJSON,
			suggestionsJSON,
		},
	}
	analyzer := newTestAnalyzer(mock)

	result, err := analyzer.Analyze(context.Background(), "resume text", "job description")
	require.NoError(t, err)
	assert.Equal(t, "A seasoned backend engineer.", result.IdealCandidate.Summary)
}

func TestAnalyze_EmptyBulletPointsRejected(t *testing.T) {
	mock := &mockGeminiService{
		responses: []string{idealCandidateJSON, resumeFeedbackJSON, `{"bullet_points": []}`},
	}
	analyzer := newTestAnalyzer(mock)

	result, err := analyzer.Analyze(context.Background(), "resume text", "job description")
	require.Error(t, err)
	assert.Nil(t, result)

	var parseErr *ResponseParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestAnalyze_MissingSummaryRejected(t *testing.T) {
	mock := &mockGeminiService{
		responses: []string{`{"key_skills": ["Go"], "key_technologies": ["Docker"], "experience_level": "Senior"}`},
	}
	analyzer := newTestAnalyzer(mock)

	_, err := analyzer.Analyze(context.Background(), "resume text", "job description")
	require.Error(t, err)

	var parseErr *ResponseParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 1, mock.calls)
}
