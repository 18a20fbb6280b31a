package services

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

type PostingExtractor interface {
	ExtractText(path string) (string, error)
	ExtractContent(path string) (*PostingContent, error)
}

type PostingContent struct {
	Text      string
	Format    string
	PageCount int
	FilePath  string
}

type postingExtractor struct{}

func NewPostingExtractor() PostingExtractor {
	return &postingExtractor{}
}

func (p *postingExtractor) ExtractText(path string) (string, error) {
	content, err := p.ExtractContent(path)
	if err != nil {
		return "", err
	}
	return content.Text, nil
}

// ExtractContent reads a posting file, choosing the reader by extension.
func (p *postingExtractor) ExtractContent(path string) (*PostingContent, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}

	var (
		text  string
		pages int
		err   error
	)

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch format {
	case "pdf":
		text, pages, err = extractPDF(path)
	case "docx":
		text, err = extractDocx(path)
		pages = 1
	case "txt":
		var data []byte
		data, err = os.ReadFile(path)
		text = string(data)
		pages = 1
	default:
		return nil, fmt.Errorf("unsupported posting format: %q", format)
	}
	if err != nil {
		return nil, err
	}

	text = CleanText(text)
	if text == "" {
		return nil, fmt.Errorf("no text content found in %s", filepath.Base(path))
	}

	return &PostingContent{
		Text:      text,
		Format:    format,
		PageCount: pages,
		FilePath:  path,
	}, nil
}

func extractPDF(path string) (string, int, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	return textBuilder.String(), totalPage, nil
}

func extractDocx(path string) (string, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer r.Close()

	return documentXMLText(r.Editable().GetContent())
}

// documentXMLText flattens WordprocessingML into plain text, one line per
// paragraph.
func documentXMLText(content string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))

	var (
		b      strings.Builder
		inText bool
	)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse DOCX content: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteString("\t")
			case "br":
				b.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}

// CleanText trims every line and drops blank ones.
func CleanText(text string) string {
	text = strings.TrimSpace(text)

	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
