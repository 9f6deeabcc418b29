package services

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

type ExtractorService interface {
	ExtractText(file *multipart.FileHeader) (string, error)
	ExtractFromBytes(data []byte, filename string) (string, error)
	SupportedExtension(filename string, allowed ...string) bool
}

type extractorService struct{}

func NewExtractorService() ExtractorService {
	return &extractorService{}
}

var xmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// SupportedExtension reports whether the filename carries one of the allowed
// extensions (case-insensitive).
func (e *extractorService) SupportedExtension(filename string, allowed ...string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}

func (e *extractorService) ExtractText(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", &ExtractionError{Message: "failed to open uploaded file", Err: err}
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", &ExtractionError{Message: "failed to read uploaded file", Err: err}
	}

	return e.ExtractFromBytes(data, file.Filename)
}

func (e *extractorService) ExtractFromBytes(data []byte, filename string) (string, error) {
	var (
		text string
		err  error
	)

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".pdf":
		text, err = extractPDFText(data)
	case ".docx":
		text, err = extractDocxText(data)
	case ".txt":
		text, err = extractPlainText(data)
	default:
		return "", &InvalidInputError{
			Message: fmt.Sprintf("unsupported file extension: %s", ext),
		}
	}

	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", &ExtractionError{
			Message: "could not extract text from the document; it may be image-based, corrupted or empty",
		}
	}

	return text, nil
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Message: "failed to read PDF", Err: err}
	}

	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		// An unextractable page contributes an empty string.
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		textBuilder.WriteString(text)
	}

	return textBuilder.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Message: "failed to parse DOCX", Err: err}
	}
	defer doc.Close()

	return docxContentToText(doc.Editable().GetContent()), nil
}

// docxContentToText recovers paragraph texts from the raw document.xml
// content, joined with newlines in document order.
func docxContentToText(content string) string {
	paragraphs := strings.Split(content, "</w:p>")

	var lines []string
	for _, p := range paragraphs {
		text := html.UnescapeString(xmlTagPattern.ReplaceAllString(p, ""))
		if strings.TrimSpace(text) == "" {
			continue
		}
		lines = append(lines, text)
	}

	return strings.Join(lines, "\n")
}

func extractPlainText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", &ExtractionError{Message: "text file is not valid UTF-8"}
	}
	return string(data), nil
}
