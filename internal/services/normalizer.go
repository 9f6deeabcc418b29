package services

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/bbalet/stopwords"
)

// NormalizerService reduces free text to a space-joined stream of base-form
// tokens: punctuation stripped, lowercased, stop words removed, each word
// replaced by its dictionary lemma. Output is deterministic for a fixed
// dictionary and stop-word list.
type NormalizerService interface {
	Normalize(text string) string
}

type normalizerService struct {
	lemmatizer *golem.Lemmatizer
}

var nonWordPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s]+`)

// NewNormalizerService loads the English lemma dictionary once; the returned
// service is safe for concurrent use.
func NewNormalizerService() (NormalizerService, error) {
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("failed to load lemma dictionary: %w", err)
	}

	return &normalizerService{lemmatizer: lemmatizer}, nil
}

func (n *normalizerService) Normalize(text string) string {
	text = strings.ToLower(nonWordPattern.ReplaceAllString(text, ""))

	var tokens []string
	for _, word := range strings.Fields(text) {
		if !isAlphabetic(word) || isStopWord(word) {
			continue
		}
		tokens = append(tokens, n.lemmatizer.Lemma(word))
	}

	return strings.Join(tokens, " ")
}

func isAlphabetic(word string) bool {
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return len(word) > 0
}

func isStopWord(word string) bool {
	return strings.TrimSpace(stopwords.CleanString(word, "en", false)) == ""
}
