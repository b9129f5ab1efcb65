package domain

import (
	"encoding/json"
	"fmt"
)

// Chat message roles accepted by the generate endpoint
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleDeveloper = "developer"
)

// ChatMessage is one role-tagged message in a completion request
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Example is one few-shot (query, expected-output) pair. It is encoded on
// the wire as a two-element array: ["query", {...output...}].
type Example struct {
	Query  string
	Output map[string]interface{}
}

// UnmarshalJSON decodes the [query, output] pair form
func (e *Example) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("example must be a [query, output] pair: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("example must have exactly 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &e.Query); err != nil {
		return fmt.Errorf("example query must be a string: %w", err)
	}
	if err := json.Unmarshal(pair[1], &e.Output); err != nil {
		return fmt.Errorf("example output must be an object: %w", err)
	}
	return nil
}

// MarshalJSON re-encodes the pair form
func (e Example) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{e.Query, e.Output})
}

// GenerateRequest is the body of POST /generate
type GenerateRequest struct {
	Messages       []ChatMessage          `json:"messages"`
	ResponseSchema map[string]interface{} `json:"response_schema,omitempty"`
	Examples       []Example              `json:"examples,omitempty"`
	Model          string                 `json:"model,omitempty"`
}

// GenerateResult is the outcome of a completion call. Exactly one of
// Structured and Content is set, depending on whether a response schema was
// supplied.
type GenerateResult struct {
	Structured map[string]interface{}
	Content    string
}

// StringList accepts either a single JSON string or a list of strings
type StringList []string

// UnmarshalJSON decodes both the scalar and the list form
func (s *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = StringList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("inputs must be a string or a list of strings")
	}
	*s = StringList(many)
	return nil
}

// EmbedRequest is the body of POST /embed
type EmbedRequest struct {
	Inputs StringList `json:"inputs"`
	Model  string     `json:"model,omitempty"`
}

// EmbedUsage reports provider token accounting for an embedding call
type EmbedUsage struct {
	PromptTokens int64 `json:"prompt_tokens"`
	TotalTokens  int64 `json:"total_tokens"`
}

// EmbedResult is the raw embedding outcome returned to the client
type EmbedResult struct {
	Model      string      `json:"model"`
	Embeddings [][]float64 `json:"embeddings"`
	Usage      EmbedUsage  `json:"usage"`
}
