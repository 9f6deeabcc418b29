package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"google.golang.org/genai"

	"alfredoptarigan/resume-enhancer/internal/models"
)

// AnalyzerService runs the three-step Gemini analysis: ideal candidate
// profile, resume feedback, actionable suggestions. Steps are strictly
// sequential because each prompt embeds the previous step's validated
// output. A failed step aborts the pipeline; no partial result is returned.
type AnalyzerService interface {
	Analyze(ctx context.Context, resumeText, jobDescription string) (*models.GeminiAnalysisResponse, error)
}

type analyzerService struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	callTimeout   time.Duration
}

func NewAnalyzerService(gemini GeminiService, callTimeout time.Duration) AnalyzerService {
	return &analyzerService{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		callTimeout:   callTimeout,
	}
}

var idealCandidateSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"summary": {
			Type:        genai.TypeString,
			Description: "Short summary of the ideal candidate.",
		},
		"key_skills": {
			Type:        genai.TypeArray,
			Description: "Key skills required for the position.",
			Items:       &genai.Schema{Type: genai.TypeString},
		},
		"key_technologies": {
			Type:        genai.TypeArray,
			Description: "Key technologies required for the position.",
			Items:       &genai.Schema{Type: genai.TypeString},
		},
		"experience_level": {
			Type:        genai.TypeString,
			Description: "Expected experience level, e.g. Junior, Mid-level, Senior.",
		},
	},
	Required: []string{"summary", "key_skills", "key_technologies", "experience_level"},
}

var resumeFeedbackSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"strengths": {
			Type:        genai.TypeArray,
			Description: "Candidate strengths relative to the position.",
			Items:       &genai.Schema{Type: genai.TypeString},
		},
		"areas_for_improvement": {
			Type:        genai.TypeArray,
			Description: "Areas where the resume falls short of the profile.",
			Items:       &genai.Schema{Type: genai.TypeString},
		},
		"suggestion_summary": {
			Type:        genai.TypeString,
			Description: "Short summary of what the candidate should improve.",
		},
	},
	Required: []string{"strengths", "areas_for_improvement", "suggestion_summary"},
}

var actionableSuggestionsSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"bullet_points": {
			Type:        genai.TypeArray,
			Description: "3 to 4 actionable resume edits, one per bullet point.",
			Items:       &genai.Schema{Type: genai.TypeString},
		},
	},
	Required: []string{"bullet_points"},
}

// Analyze implements AnalyzerService.
func (a *analyzerService) Analyze(ctx context.Context, resumeText, jobDescription string) (*models.GeminiAnalysisResponse, error) {
	log.Println("🤖 Step 1/3: deriving ideal candidate profile...")
	var ideal models.IdealCandidate
	prompt := a.promptBuilder.BuildIdealCandidatePrompt(jobDescription)
	if err := a.generateStep(ctx, prompt, idealCandidateSchema, &ideal); err != nil {
		return nil, err
	}
	if strings.TrimSpace(ideal.Summary) == "" {
		return nil, &ResponseParseError{Detail: "ideal candidate profile is missing a summary"}
	}

	log.Println("🤖 Step 2/3: reviewing resume against the profile...")
	var feedback models.ResumeFeedback
	prompt = a.promptBuilder.BuildResumeFeedbackPrompt(jobDescription, &ideal, resumeText)
	if err := a.generateStep(ctx, prompt, resumeFeedbackSchema, &feedback); err != nil {
		return nil, err
	}
	if strings.TrimSpace(feedback.SuggestionSummary) == "" {
		return nil, &ResponseParseError{Detail: "resume feedback is missing a suggestion summary"}
	}

	log.Println("🤖 Step 3/3: generating actionable suggestions...")
	var suggestions models.ActionableSuggestions
	prompt = a.promptBuilder.BuildSuggestionsPrompt(&ideal, &feedback, resumeText)
	if err := a.generateStep(ctx, prompt, actionableSuggestionsSchema, &suggestions); err != nil {
		return nil, err
	}
	if len(suggestions.BulletPoints) == 0 {
		return nil, &ResponseParseError{Detail: "actionable suggestions contain no bullet points"}
	}

	return &models.GeminiAnalysisResponse{
		IdealCandidate:        ideal,
		ResumeFeedback:        feedback,
		ActionableSuggestions: suggestions,
	}, nil
}

func (a *analyzerService) generateStep(ctx context.Context, prompt string, schema *genai.Schema, target interface{}) error {
	callCtx, cancel := context.WithTimeout(ctx, a.callTimeout)
	defer cancel()

	response, err := a.gemini.GenerateJSON(callCtx, prompt, schema)
	if err != nil {
		return err
	}

	return parseJSONResponse(response, target)
}

func parseJSONResponse(response string, target interface{}) error {
	jsonStr := extractJSON(response)

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return &ResponseParseError{
			Detail: "failed to unmarshal generation response: " + response,
			Err:    err,
		}
	}

	return nil
}

// extractJSON strips markdown code fences the model may wrap the JSON in.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}

	return text
}
