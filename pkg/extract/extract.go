package extract

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Supported content types.
const (
	TypeText = "text/plain"
	TypePDF  = "application/pdf"
	TypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ErrUnsupportedType is returned for content types the extractor does
// not handle. Upload handlers map it to a 422.
var ErrUnsupportedType = errors.New("unsupported file type")

// Supported reports whether contentType can be extracted. Parameters
// like "; charset=utf-8" are ignored.
func Supported(contentType string) bool {
	switch mediaType(contentType) {
	case TypeText, TypePDF, TypeDocx:
		return true
	}
	return false
}

// Text extracts plain text from data according to its content type.
func Text(contentType string, data []byte) (string, error) {
	switch mediaType(contentType) {
	case TypeText:
		return string(data), nil
	case TypePDF:
		return pdfText(data)
	case TypeDocx:
		return docxText(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
}

// mediaType strips parameters off a Content-Type header value. Invalid
// headers fall back to the trimmed original so the unsupported-type
// error names what the client actually sent.
func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mt
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("reading pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parsing docx: %w", err)
	}
	defer doc.Close()

	return flattenDocXML(doc.Editable().GetContent()), nil
}

var (
	paragraphEnd = regexp.MustCompile(`</w:p>`)
	xmlTag       = regexp.MustCompile(`<[^>]+>`)
)

// flattenDocXML turns the raw document.xml content into plain text:
// paragraph ends become newlines, every other tag disappears.
func flattenDocXML(content string) string {
	content = paragraphEnd.ReplaceAllString(content, "\n")
	content = xmlTag.ReplaceAllString(content, "")
	content = strings.ReplaceAll(content, "&amp;", "&")
	content = strings.ReplaceAll(content, "&lt;", "<")
	content = strings.ReplaceAll(content, "&gt;", ">")
	return strings.TrimSpace(content)
}
