package service

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportedExtension(t *testing.T) {
	assert.True(t, SupportedExtension("cv.pdf"))
	assert.True(t, SupportedExtension("CV.PDF"))
	assert.True(t, SupportedExtension("resume.final.docx"))
	assert.False(t, SupportedExtension("cv.doc"))
	assert.False(t, SupportedExtension("cv.pdf.exe"))
	assert.False(t, SupportedExtension("cv"))

	assert.True(t, IsPDF("x.Pdf"))
	assert.False(t, IsPDF("x.docx"))
}

func TestExtractTextUnsupported(t *testing.T) {
	_, err := NewExtractor().ExtractText("cv.txt", []byte("hello"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtractTextCorruptPDF(t *testing.T) {
	_, err := NewExtractor().ExtractText("cv.pdf", []byte("%PDF-1.4 this is not really a pdf"))
	assert.Error(t, err)
}

func TestExtractTextCorruptDocx(t *testing.T) {
	_, err := NewExtractor().ExtractText("cv.docx", []byte("PK not a zip"))
	assert.Error(t, err)
}

func TestStripXMLTags(t *testing.T) {
	xml := `<w:body><w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Go</w:t></w:r><w:r><w:tab/><w:t>PostgreSQL</w:t></w:r></w:p>` +
		`<w:p></w:p></w:body>`

	got := stripXMLTags(xml)
	require.Equal(t, "Jane Doe\nGo\tPostgreSQL", got)
}

// buildDocx assembles the smallest package the docx reader accepts
func buildDocx(t *testing.T, body string) []byte {
	t.Helper()

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?>` +
			`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
			`<Default Extension="xml" ContentType="application/xml"/>` +
			`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
			`</Types>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body + `</w:body></w:document>`,
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractTextDocx(t *testing.T) {
	data := buildDocx(t,
		`<w:p><w:r><w:t>Ayşe Yılmaz</w:t></w:r></w:p>`+
			`<w:p><w:r><w:t>Go &amp; PostgreSQL</w:t></w:r></w:p>`+
			`<w:p></w:p>`)

	text, err := NewExtractor().ExtractText("Ayse_CV.DOCX", data)
	require.NoError(t, err)
	assert.Equal(t, "Ayşe Yılmaz\nGo & PostgreSQL", text)
}

func TestExtractTextBlankDocx(t *testing.T) {
	data := buildDocx(t, `<w:p><w:r><w:t>   </w:t></w:r></w:p>`)

	_, err := NewExtractor().ExtractText("cv.docx", data)
	assert.ErrorIs(t, err, ErrEmptyText)
}
