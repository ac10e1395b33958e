package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yourusername/cvmatch-api/internal/model"
)

// JobSearcher finds postings for a candidate's skills near a location
type JobSearcher interface {
	SearchJobs(ctx context.Context, skills []string, location string) ([]model.JobMatch, error)
}

const (
	// defaultKeyword is searched when the résumé yielded no skills
	defaultKeyword = "Yazılım Mühendisi"
	// hiddenCompany replaces a missing employer name
	hiddenCompany = "Şirket Adı Gizli"
)

// primaryKeyword picks the first (most prominent) skill.
// Sending every skill tends to return nothing.
func primaryKeyword(skills []string) string {
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return defaultKeyword
}

// topSkills returns up to n non-blank skills
func topSkills(skills []string, n int) []string {
	out := make([]string, 0, n)
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
		if len(out) == n {
			break
		}
	}
	return out
}

// MatchRate scores how many of the candidate's skills the posting mentions,
// mapped into 60..99 and formatted as "%NN".
func MatchRate(skills []string, postingText string) string {
	text := strings.ToLower(postingText)

	total, hits := 0, 0
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		total++
		if containsWord(text, s) {
			hits++
		}
	}

	score := 60
	if total > 0 {
		score += hits * 39 / total
	}
	return fmt.Sprintf("%%%d", score)
}

// containsWord reports whether word occurs in text without being glued to a
// neighbouring letter or digit, so "go" does not match "google"
func containsWord(text, word string) bool {
	for start := 0; start <= len(text)-len(word); {
		i := strings.Index(text[start:], word)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(word)

		before, _ := utf8.DecodeLastRuneInString(text[:i])
		after, _ := utf8.DecodeRuneInString(text[end:])
		if !isWordRune(before) && !isWordRune(after) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		start = i + size
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// NoopJobSearcher is used when job search is disabled
type NoopJobSearcher struct{}

func (NoopJobSearcher) SearchJobs(context.Context, []string, string) ([]model.JobMatch, error) {
	return []model.JobMatch{}, nil
}
