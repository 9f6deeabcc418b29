package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/resume-enhancer/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildIdealCandidatePrompt creates the step-1 prompt: derive the ideal
// candidate profile from the job description alone.
func (pb *PromptBuilder) BuildIdealCandidatePrompt(jobDescription string) string {
	return fmt.Sprintf(`You are an expert technical recruiter.

JOB DESCRIPTION:
%s

Describe the ideal candidate for this position. Provide:
1. A short summary of the ideal candidate (2-3 sentences).
2. The key skills the candidate must have.
3. The key technologies the candidate must know.
4. The expected experience level (e.g. "Junior", "Mid-level", "Senior").

Base everything strictly on the job description. Do not invent requirements
that are not stated or clearly implied.`,
		jobDescription)
}

// BuildResumeFeedbackPrompt creates the step-2 prompt: compare the resume
// against the ideal candidate profile from step 1.
func (pb *PromptBuilder) BuildResumeFeedbackPrompt(jobDescription string, ideal *models.IdealCandidate, resumeText string) string {
	return fmt.Sprintf(`You are an expert career coach reviewing a candidate's resume.

JOB DESCRIPTION:
%s

IDEAL CANDIDATE PROFILE:
Summary: %s
Key skills: %s
Key technologies: %s
Experience level: %s

CANDIDATE RESUME:
%s

Compare the resume against the ideal candidate profile. Provide:
1. The candidate's strengths relative to this position.
2. The areas where the resume falls short of the profile.
3. A short summary of what the candidate should focus on improving.

Be specific and cite evidence from the resume. Do not assume experience that
is not explicitly mentioned.`,
		jobDescription,
		ideal.Summary,
		strings.Join(ideal.KeySkills, ", "),
		strings.Join(ideal.KeyTechnologies, ", "),
		ideal.ExperienceLevel,
		resumeText)
}

// BuildSuggestionsPrompt creates the step-3 prompt: turn the profile and
// feedback into 3-4 concrete resume edits.
func (pb *PromptBuilder) BuildSuggestionsPrompt(ideal *models.IdealCandidate, feedback *models.ResumeFeedback, resumeText string) string {
	return fmt.Sprintf(`You are an expert resume writer.

IDEAL CANDIDATE SUMMARY:
%s

CANDIDATE STRENGTHS:
%s

CANDIDATE WEAKNESSES:
%s

CANDIDATE RESUME:
%s

Write 3-4 actionable bullet points the candidate can apply to their resume
right now to better match this position. Each bullet point must be a single
concrete edit (e.g. "Add a metrics-backed bullet about the Docker migration
under your most recent role"), not generic advice.`,
		ideal.Summary,
		strings.Join(feedback.Strengths, "\n- "),
		strings.Join(feedback.AreasForImprovement, "\n- "),
		resumeText)
}
