package models

// AnalysisResult is the response of the lexical /analyze endpoint.
type AnalysisResult struct {
	MatchScore      float64  `json:"match_score"`
	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
}

// IdealCandidate is the profile Gemini derives from the job description alone.
type IdealCandidate struct {
	Summary         string   `json:"summary"`
	KeySkills       []string `json:"key_skills"`
	KeyTechnologies []string `json:"key_technologies"`
	ExperienceLevel string   `json:"experience_level"`
}

// ResumeFeedback compares the uploaded resume against the ideal candidate profile.
type ResumeFeedback struct {
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areas_for_improvement"`
	SuggestionSummary   string   `json:"suggestion_summary"`
}

// ActionableSuggestions holds 3-4 concrete resume edits.
type ActionableSuggestions struct {
	BulletPoints []string `json:"bullet_points"`
}

// GeminiAnalysisResponse aggregates all three pipeline steps. It is only
// returned when every step succeeded; there are no partial results.
type GeminiAnalysisResponse struct {
	IdealCandidate        IdealCandidate        `json:"ideal_candidate"`
	ResumeFeedback        ResumeFeedback        `json:"resume_feedback"`
	ActionableSuggestions ActionableSuggestions `json:"actionable_suggestions"`
}
