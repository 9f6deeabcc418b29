package services

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"alfredoptarigan/resume-enhancer/internal/models"
)

// MatcherService computes the lexical match between a resume and a job
// description: a TF-IDF cosine similarity score over the normalized texts,
// and keyword intersection/difference over the raw-text vocabularies.
type MatcherService interface {
	Score(resumeText, jobDescription string) (*models.AnalysisResult, error)
}

type matcherService struct {
	normalizer NormalizerService
}

func NewMatcherService(normalizer NormalizerService) MatcherService {
	return &matcherService{normalizer: normalizer}
}

// wordPattern mirrors the vectorizer's default token rule: maximal runs of
// word characters, two or more characters long, lowercased.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

func (m *matcherService) Score(resumeText, jobDescription string) (*models.AnalysisResult, error) {
	processedResume := m.normalizer.Normalize(resumeText)
	processedJob := m.normalizer.Normalize(jobDescription)

	similarity, err := tfidfCosineSimilarity(processedResume, processedJob)
	if err != nil {
		return nil, err
	}

	// Keyword sets are intentionally built from the raw texts, not the
	// normalized ones: this is the externally observable vocabulary basis,
	// so "missing" keywords are reported in their surface form.
	jobVocab := rawVocabulary(jobDescription)
	resumeVocab := rawVocabulary(resumeText)

	matched := make([]string, 0)
	missing := make([]string, 0)
	for term := range jobVocab {
		if resumeVocab[term] {
			matched = append(matched, term)
		} else {
			missing = append(missing, term)
		}
	}
	sort.Strings(matched)
	sort.Strings(missing)

	return &models.AnalysisResult{
		MatchScore:      math.Round(similarity*100*100) / 100,
		MatchedKeywords: matched,
		MissingKeywords: missing,
	}, nil
}

func rawVocabulary(text string) map[string]bool {
	vocab := make(map[string]bool)
	for _, token := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if len([]rune(token)) >= 2 {
			vocab[token] = true
		}
	}
	return vocab
}

// tfidfCosineSimilarity fits TF-IDF vectors jointly over exactly the two
// documents (smoothed IDF, L2 norm) and returns the cosine of the angle
// between them, in [0, 1].
func tfidfCosineSimilarity(docA, docB string) (float64, error) {
	termsA := strings.Fields(docA)
	termsB := strings.Fields(docB)

	if len(termsA) == 0 || len(termsB) == 0 {
		return 0, &VectorizationError{
			Message: "document has no vocabulary terms after normalization; cannot vectorize",
		}
	}

	countsA := termCounts(termsA)
	countsB := termCounts(termsB)

	vocabulary := make(map[string]struct{}, len(countsA)+len(countsB))
	for term := range countsA {
		vocabulary[term] = struct{}{}
	}
	for term := range countsB {
		vocabulary[term] = struct{}{}
	}

	const corpusSize = 2.0
	vecA := make(map[string]float64, len(countsA))
	vecB := make(map[string]float64, len(countsB))
	for term := range vocabulary {
		df := 0.0
		if countsA[term] > 0 {
			df++
		}
		if countsB[term] > 0 {
			df++
		}
		idf := math.Log((1+corpusSize)/(1+df)) + 1

		if tf := countsA[term]; tf > 0 {
			vecA[term] = float64(tf) * idf
		}
		if tf := countsB[term]; tf > 0 {
			vecB[term] = float64(tf) * idf
		}
	}

	normalizeL2(vecA)
	normalizeL2(vecB)

	var dot float64
	for term, weight := range vecA {
		dot += weight * vecB[term]
	}

	// Guard against float drift pushing the cosine past 1.
	return math.Min(dot, 1), nil
}

func termCounts(terms []string) map[string]int {
	counts := make(map[string]int, len(terms))
	for _, term := range terms {
		counts[term]++
	}
	return counts
}

func normalizeL2(vec map[string]float64) {
	var sum float64
	for _, weight := range vec {
		sum += weight * weight
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for term, weight := range vec {
		vec[term] = weight / norm
	}
}
