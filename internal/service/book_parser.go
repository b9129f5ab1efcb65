package service

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/gen2brain/go-fitz"

	"ai-gateway/internal/domain"
)

// block is one classified unit of page text before section grouping
type block struct {
	content    string
	heading    bool
	level      int
	pageNumber int
	position   int
}

// pdfPageTimeout bounds text extraction for a single page; a page that hangs
// in the native layer becomes an empty page instead of stalling the request.
const pdfPageTimeout = 90 * time.Second

// FitzBookParser extracts leaf sections and content chunks from a PDF
type FitzBookParser struct {
	logger domain.Logger
}

// NewBookParser creates a new PDF book parser
func NewBookParser(logger domain.Logger) *FitzBookParser {
	return &FitzBookParser{logger: logger}
}

// ParsePDF opens the PDF at path and returns its heading-delimited leaf
// sections and the flat paragraph chunk stream, plus document metadata.
func (p *FitzBookParser) ParsePDF(path string) (*domain.ParsedBook, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	docMetadata := doc.Metadata()
	metadata := domain.BookMetadata{
		Title:     docMetadata["title"],
		Author:    docMetadata["author"],
		PageCount: doc.NumPage(),
	}

	var blocks []block
	numPages := doc.NumPage()

	for pageNum := 0; pageNum < numPages; pageNum++ {
		p.logger.Debug("PDF processing page", "page", pageNum+1, "total", numPages)

		text := p.extractPageText(doc, pageNum, numPages)
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		position := 0
		for _, para := range splitIntoParagraphs(text) {
			para = sanitizeText(para)
			if para == "" {
				continue
			}
			b := block{
				content:    para,
				pageNumber: pageNum + 1,
				position:   position,
			}
			if isHeading(para) {
				b.heading = true
				b.level = 1
			}
			blocks = append(blocks, b)
			position++
		}
	}

	book := &domain.ParsedBook{
		Sections: groupSections(blocks),
		Chunks:   flattenChunks(blocks),
		Metadata: metadata,
	}
	return book, nil
}

// extractPageText runs go-fitz text extraction under a watchdog. On timeout
// or extraction error the page is treated as empty and parsing continues.
func (p *FitzBookParser) extractPageText(doc *fitz.Document, pageNum, numPages int) string {
	type pageResult struct {
		text string
		err  error
	}
	resultCh := make(chan pageResult, 1)
	go func() {
		t, e := doc.Text(pageNum)
		resultCh <- pageResult{text: t, err: e}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			p.logger.Warn("Failed to extract text from page", "page", pageNum+1, "total", numPages, "error", res.err)
			return ""
		}
		return res.text
	case <-time.After(pdfPageTimeout):
		p.logger.Warn("PDF page extraction timeout; using empty page", "page", pageNum+1, "total", numPages)
		go func() { <-resultCh }() // drain so goroutine can exit
		return ""
	}
}

// groupSections folds the block stream into leaf sections: each heading
// starts a section and collects body paragraphs until the next heading. Text
// before the first heading becomes an untitled preamble section.
func groupSections(blocks []block) []domain.Section {
	sections := make([]domain.Section, 0)

	var current *domain.Section
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		current.Content = strings.Join(body, "\n\n")
		sections = append(sections, *current)
		current = nil
		body = nil
	}

	for _, b := range blocks {
		if b.heading {
			flush()
			current = &domain.Section{
				Title:     b.content,
				Level:     b.level,
				StartPage: b.pageNumber,
				EndPage:   b.pageNumber,
			}
			continue
		}
		if current == nil {
			current = &domain.Section{
				StartPage: b.pageNumber,
				EndPage:   b.pageNumber,
			}
		}
		current.EndPage = b.pageNumber
		body = append(body, b.content)
	}
	flush()

	return sections
}

// flattenChunks projects the block stream into the flat chunk list
func flattenChunks(blocks []block) []domain.Chunk {
	chunks := make([]domain.Chunk, 0, len(blocks))
	for _, b := range blocks {
		chunks = append(chunks, domain.Chunk{
			Content:    b.content,
			PageNumber: b.pageNumber,
			Position:   b.position,
		})
	}
	return chunks
}

// splitIntoParagraphs splits text into paragraphs based on double newlines
func splitIntoParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	paragraphs := strings.Split(text, "\n\n")

	var result []string
	for _, para := range paragraphs {
		// Single newlines within a paragraph are soft wraps.
		para = strings.ReplaceAll(para, "\n", " ")
		para = strings.TrimSpace(para)
		if para != "" {
			result = append(result, para)
		}
	}
	return result
}

// isHeading determines if a text block is likely a heading: single line,
// short, and either all uppercase or very short.
func isHeading(text string) bool {
	text = strings.TrimSpace(text)
	if len(text) == 0 || strings.Contains(text, "\n") {
		return false
	}
	if len(text) < 100 {
		if text == strings.ToUpper(text) && len(text) > 3 {
			return true
		}
		if len(text) < 50 {
			return true
		}
	}
	return false
}

// sanitizeText removes NULL bytes and non-printable control characters so
// the extracted text survives JSON encoding intact.
func sanitizeText(text string) string {
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r == 0x00 {
			continue
		}
		if r == '\t' || r == '\n' || r == '\r' || unicode.IsPrint(r) {
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}
