package domain

// Section is one leaf-level, heading-delimited span of a parsed book
type Section struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Level     int    `json:"level"`
	StartPage int    `json:"start_page"`
	EndPage   int    `json:"end_page"`
}

// Chunk is one flattened content unit (a paragraph) with its page position
type Chunk struct {
	Content    string `json:"content"`
	PageNumber int    `json:"page_number"`
	Position   int    `json:"position"`
}

// BookMetadata carries document-level information extracted from the PDF
type BookMetadata struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	PageCount int    `json:"page_count"`
}

// ParsedBook is the full result of the PDF parsing pipeline
type ParsedBook struct {
	Sections []Section    `json:"sections"`
	Chunks   []Chunk      `json:"chunks"`
	Metadata BookMetadata `json:"metadata"`
}
