package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFromBytes_PlainText(t *testing.T) {
	extractor := NewExtractorService()

	text, err := extractor.ExtractFromBytes([]byte("Experienced Go developer"), "resume.txt")
	require.NoError(t, err)
	assert.Equal(t, "Experienced Go developer", text)
}

func TestExtractFromBytes_WhitespaceOnlyText(t *testing.T) {
	extractor := NewExtractorService()

	_, err := extractor.ExtractFromBytes([]byte("   \n\t  "), "resume.txt")
	require.Error(t, err)

	var extractionErr *ExtractionError
	assert.ErrorAs(t, err, &extractionErr)
}

func TestExtractFromBytes_InvalidUTF8(t *testing.T) {
	extractor := NewExtractorService()

	_, err := extractor.ExtractFromBytes([]byte{0xff, 0xfe, 0xfd}, "resume.txt")
	require.Error(t, err)

	var extractionErr *ExtractionError
	assert.ErrorAs(t, err, &extractionErr)
}

func TestExtractFromBytes_UnsupportedExtension(t *testing.T) {
	extractor := NewExtractorService()

	// Rejected before any parsing, regardless of byte content.
	_, err := extractor.ExtractFromBytes([]byte("whatever"), "resume.exe")
	require.Error(t, err)

	var invalidErr *InvalidInputError
	assert.ErrorAs(t, err, &invalidErr)
}

func TestExtractFromBytes_CorruptedPDF(t *testing.T) {
	extractor := NewExtractorService()

	_, err := extractor.ExtractFromBytes([]byte("not a real pdf"), "resume.pdf")
	require.Error(t, err)

	var extractionErr *ExtractionError
	assert.ErrorAs(t, err, &extractionErr)
}

func TestSupportedExtension(t *testing.T) {
	extractor := NewExtractorService()

	assert.True(t, extractor.SupportedExtension("resume.pdf", ".pdf", ".docx"))
	assert.True(t, extractor.SupportedExtension("RESUME.PDF", ".pdf", ".docx"))
	assert.True(t, extractor.SupportedExtension("resume.docx", ".pdf", ".docx"))
	assert.False(t, extractor.SupportedExtension("resume.txt", ".pdf", ".docx"))
	assert.False(t, extractor.SupportedExtension("resume", ".pdf", ".docx"))
}

func TestDocxContentToText(t *testing.T) {
	content := `<w:document><w:body>` +
		`<w:p><w:r><w:t>First paragraph</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Second</w:t></w:r><w:r><w:t> paragraph</w:t></w:r></w:p>` +
		`<w:p></w:p>` +
		`</w:body></w:document>`

	assert.Equal(t, "First paragraph\nSecond paragraph", docxContentToText(content))
}

func TestDocxContentToText_UnescapesEntities(t *testing.T) {
	content := `<w:p><w:r><w:t>C&amp;I engineer &lt;backend&gt;</w:t></w:r></w:p>`

	assert.Equal(t, "C&I engineer <backend>", docxContentToText(content))
}
