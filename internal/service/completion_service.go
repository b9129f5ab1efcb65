package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"

	"ai-gateway/internal/domain"
	"ai-gateway/internal/schema"
)

// CompletionService delegates chat completion to the OpenAI API
type CompletionService struct {
	client  *openai.Client
	config  domain.Config
	logger  domain.Logger
	timeout time.Duration
}

// NewCompletionService creates a new completion service instance
func NewCompletionService(client *openai.Client, config domain.Config, logger domain.Logger) *CompletionService {
	return &CompletionService{
		client:  client,
		config:  config,
		logger:  logger,
		timeout: time.Duration(config.GetOpenAITimeout()) * time.Second,
	}
}

// Generate runs a chat completion. With a compiled response model the
// provider is constrained to a json_schema response format and the decoded
// object is returned; without one the plain text content is returned.
// Few-shot example pairs are injected after the leading system/developer
// messages and before the conversation proper.
func (s *CompletionService) Generate(ctx context.Context, req *domain.GenerateRequest, model *schema.Model) (*domain.GenerateResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	chatModel := req.Model
	if chatModel == "" {
		chatModel = s.config.GetDefaultChatModel()
	}

	messages, err := s.buildMessages(req)
	if err != nil {
		return nil, err
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(chatModel),
		Messages: messages,
	}
	if model != nil {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   "structured_response",
					Schema: model.JSONSchema(),
				},
			},
		}
	}

	s.logger.Debug("Calling completion provider", "model", chatModel, "messages", len(messages), "structured", model != nil)

	response, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned from completion provider")
	}

	content := response.Choices[0].Message.Content
	if model == nil {
		return &domain.GenerateResult{Content: content}, nil
	}

	var structured map[string]interface{}
	if err := json.Unmarshal([]byte(content), &structured); err != nil {
		return nil, fmt.Errorf("provider returned non-JSON structured response: %w", err)
	}
	if err := model.Validate(structured); err != nil {
		return nil, fmt.Errorf("provider response does not match schema: %w", err)
	}

	return &domain.GenerateResult{Structured: structured}, nil
}

// buildMessages converts domain messages into provider params. Example pairs
// become a user/assistant exchange where the assistant turn is the example
// output marshalled to JSON.
func (s *CompletionService) buildMessages(req *domain.GenerateRequest) ([]openai.ChatCompletionMessageParamUnion, error) {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+2*len(req.Examples))

	// Leading system/developer messages stay ahead of injected examples.
	split := 0
	for split < len(req.Messages) {
		role := req.Messages[split].Role
		if role != domain.RoleSystem && role != domain.RoleDeveloper {
			break
		}
		split++
	}

	for _, msg := range req.Messages[:split] {
		out = append(out, toMessageParam(msg))
	}
	for _, example := range req.Examples {
		encoded, err := json.Marshal(example.Output)
		if err != nil {
			return nil, fmt.Errorf("failed to encode example output: %w", err)
		}
		out = append(out, openai.UserMessage(example.Query))
		out = append(out, openai.AssistantMessage(string(encoded)))
	}
	for _, msg := range req.Messages[split:] {
		out = append(out, toMessageParam(msg))
	}

	return out, nil
}

func toMessageParam(msg domain.ChatMessage) openai.ChatCompletionMessageParamUnion {
	switch msg.Role {
	case domain.RoleSystem:
		return openai.SystemMessage(msg.Content)
	case domain.RoleDeveloper:
		return openai.DeveloperMessage(msg.Content)
	case domain.RoleAssistant:
		return openai.AssistantMessage(msg.Content)
	default:
		return openai.UserMessage(msg.Content)
	}
}
