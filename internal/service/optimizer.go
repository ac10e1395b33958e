package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/yourusername/cvmatch-api/internal/model"
)

// CVOptimizer restructures raw résumé text into the normalized schema
type CVOptimizer interface {
	OptimizeCV(ctx context.Context, rawText string) (*model.CVData, error)
}

// ErrInvalidCV is returned when the model's answer does not fit the résumé schema
var ErrInvalidCV = errors.New("model returned an invalid résumé document")

// maxPromptChars caps résumé text sent to the model
const maxPromptChars = 30000

// ── Prompt ────────────────────────────────────────────

const optimizeSystemPrompt = `You are an expert human resources consultant and résumé editor.
Analyze the raw résumé text you are given and turn it into a professional résumé structure.

YOUR TASKS:
1. Extract the information present in the raw text.
2. Rewrite experience descriptions from first-person ("I did") into an impersonal, professional voice ("Delivered", "Implemented"), as concise bullet-style summaries.
3. Leave missing information as an empty string or empty array. Do not invent data.
4. Split skills into "technical" (languages, frameworks, tools) and "soft" (leadership, communication...).
5. Write short, actionable advice in Turkish into "ai_feedback".

OUTPUT FORMAT:
Respond with ONLY a valid JSON object (no markdown, no backticks, no explanation) with this shape:
{
  "personal_info": { "ad": "first name", "soyad": "last name", "unvan": "professional title" },
  "contact": { "email": "", "phone": "", "linkedin": "", "github": "", "location": "" },
  "summary": "short, punchy professional summary",
  "education": [ { "school": "", "degree": "", "date": "2020 - 2024" } ],
  "experience": [ { "company": "", "position": "", "date": "2022 - Present", "description": "" } ],
  "projects": [ { "name": "", "date": "", "description": "" } ],
  "skills": { "technical": ["..."], "soft": ["..."] },
  "ai_feedback": "..."
}`

// BuildOptimizePrompt builds the user turn carrying the raw résumé text
func BuildOptimizePrompt(rawText string) string {
	return "RAW TEXT:\n" + truncateRunes(rawText, maxPromptChars)
}

// ── Response parsing ──────────────────────────────────

// required top-level paths; present and non-null, empty strings allowed
var requiredCVPaths = []string{
	"personal_info",
	"contact",
	"contact.email",
	"summary",
	"skills",
}

var requiredItemKeys = map[string][]string{
	"education":  {"school", "degree", "date"},
	"experience": {"company", "position", "date", "description"},
	"projects":   {"name", "description"},
}

// ParseCVJSON strips code fences, validates the document shape and decodes it
func ParseCVJSON(text string) (*model.CVData, error) {
	text = stripCodeFences(strings.TrimSpace(text))

	if !gjson.Valid(text) {
		return nil, fmt.Errorf("%w: not valid JSON (raw: %s)", ErrInvalidCV, truncateRunes(text, 300))
	}

	doc := gjson.Parse(text)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: top level is not an object", ErrInvalidCV)
	}

	for _, path := range requiredCVPaths {
		if v := doc.Get(path); !v.Exists() || v.Type == gjson.Null {
			return nil, fmt.Errorf("%w: missing %q", ErrInvalidCV, path)
		}
	}

	for list, keys := range requiredItemKeys {
		items := doc.Get(list)
		if !items.Exists() || items.Type == gjson.Null {
			continue
		}
		if !items.IsArray() {
			return nil, fmt.Errorf("%w: %q is not a list", ErrInvalidCV, list)
		}
		for i, item := range items.Array() {
			for _, key := range keys {
				if v := item.Get(key); !v.Exists() || v.Type == gjson.Null {
					return nil, fmt.Errorf("%w: %s[%d] missing %q", ErrInvalidCV, list, i, key)
				}
			}
		}
	}

	var cv model.CVData
	if err := json.Unmarshal([]byte(text), &cv); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCV, err)
	}
	cv.Normalize()

	return &cv, nil
}

// stripCodeFences removes markdown ```json ... ``` wrappers
func stripCodeFences(text string) string {
	if strings.HasPrefix(text, "```") {
		if idx := strings.Index(text, "\n"); idx != -1 {
			text = text[idx+1:]
		} else {
			text = strings.TrimPrefix(strings.TrimPrefix(text, "```json"), "```")
		}
		if idx := strings.LastIndex(text, "```"); idx != -1 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}
	return text
}

// truncateRunes cuts s to at most n characters
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
