package service

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/cvmatch-api/internal/model"
)

func sampleCV() *model.CVData {
	note := "Add measurable outcomes."
	cv := &model.CVData{
		PersonalInfo: model.PersonalInfo{FirstName: "Jane", LastName: "Doe", Title: "Backend Developer"},
		Contact:      model.Contact{Email: "jane@example.com", Phone: "+1 555 0100", Location: "Istanbul"},
		Summary:      "Engineer building reliable payment services.",
		Experience: []model.Experience{
			{Company: "Acme", Position: "Backend Developer", Date: "2020 - Present", Description: "Delivered a payments API."},
		},
		Education: []model.Education{
			{School: "Bogazici University", Degree: "Computer Engineering", Date: "2016 - 2020"},
		},
		Projects: []model.Project{
			{Name: "Ledger", Description: "Double-entry bookkeeping service."},
		},
		Skills:     model.Skills{Technical: []string{"Go", "PostgreSQL"}, Soft: []string{"Mentoring"}},
		AIFeedback: &note,
	}
	return cv
}

func TestRenderProducesReadablePDF(t *testing.T) {
	r := NewPDFRenderer("")

	out, err := r.Render(sampleCV())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(out), "%PDF"))

	text, err := NewExtractor().ExtractText("cv.pdf", out)
	require.NoError(t, err)

	for _, want := range []string{"Jane", "Acme", "Bogazici", "Ledger", "PostgreSQL", "jane@example.com"} {
		assert.Contains(t, text, want)
	}
}

func TestRenderMinimalCV(t *testing.T) {
	cv := &model.CVData{Summary: "Short summary."}

	out, err := NewPDFRenderer("").Render(cv)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestNewPDFRendererMissingFontFallsBack(t *testing.T) {
	r := NewPDFRenderer("/nonexistent/arial.ttf")
	assert.Empty(t, r.fontBytes)

	_, err := r.Render(sampleCV())
	assert.NoError(t, err)
}

func TestNewPDFRendererInvalidFontFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arial.ttf")
	require.NoError(t, os.WriteFile(path, []byte("not a truetype font"), 0o600))

	r := NewPDFRenderer(path)
	assert.Empty(t, r.fontBytes)

	out, err := r.Render(sampleCV())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestRenderRejectsUnparsableFont(t *testing.T) {
	r := &PDFRenderer{fontBytes: []byte("not a truetype font")}

	assert.NotPanics(t, func() {
		_, err := r.Render(sampleCV())
		assert.ErrorContains(t, err, "loading font")
	})
}

func TestContactLineSkipsBlanks(t *testing.T) {
	line := ContactLine(model.Contact{Email: "a@b.co", Phone: "  ", LinkedIn: "linkedin.com/in/a", GitHub: "github.com/a"})
	assert.Equal(t, "a@b.co | linkedin.com/in/a", line)
	assert.Empty(t, ContactLine(model.Contact{}))
}

func TestPDFDataURL(t *testing.T) {
	url := PDFDataURL([]byte("%PDF-1.4"))
	require.True(t, strings.HasPrefix(url, "data:application/pdf;base64,"))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, "data:application/pdf;base64,"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(decoded))
}
