package openai

import (
	"context"
	"errors"
	"strings"

	"sage-cli/internal/agent"
	"sage-cli/internal/logger"

	"github.com/google/uuid"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

type Options struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Client 通过 OpenAI 兼容的 chat completions 接口完成补全请求。
// API key 允许为空：鉴权失败在真正发起请求时才会暴露。
type Client struct {
	api   *openai.Client
	model string
}

// 确保Client实现了agent.CompletionClient接口
var _ agent.CompletionClient = (*Client)(nil)

func New(opts Options) *Client {
	cfg := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
	}
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		cfg = append(cfg, option.WithBaseURL(strings.TrimRight(base, "/")))
	}
	client := openai.NewClient(cfg...)

	return &Client{
		api:   &client,
		model: opts.Model,
	}
}

// Complete 发起一次补全请求并将首个候选归类为文本回答、工具调用或空响应。
// tools 为空时不下发工具 schema。温度固定为 0。
func (c *Client) Complete(ctx context.Context, messages []agent.Message, tools []agent.ToolSpec) (agent.Completion, error) {
	if len(messages) == 0 {
		return agent.Completion{}, errors.New("transcript is empty")
	}
	if messages[0].Role != agent.RoleSystem {
		return agent.Completion{}, errors.New("transcript must begin with the system message")
	}

	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(c.model),
		Messages:    toChatMessages(messages),
		Temperature: openai.Float(0),
	}
	if len(tools) > 0 {
		params.Tools = toChatTools(tools)
		params.ToolChoice = openai.ChatCompletionToolChoiceOptionUnionParam{
			OfAuto: openai.String("auto"),
		}
	}

	logger.LLMLog.Request(c.model, toLLMMessages(messages), len(tools) > 0)

	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		wrapped := wrapAPIError(err)
		logger.LLMLog.Error(c.model, wrapped)
		return agent.Completion{}, wrapped
	}
	completion := classify(resp)
	logger.LLMLog.Response(c.model, summarize(completion))
	return completion, nil
}

func classify(resp *openai.ChatCompletion) agent.Completion {
	if resp == nil || len(resp.Choices) == 0 {
		return agent.Completion{Kind: agent.CompletionEmpty}
	}
	msg := resp.Choices[0].Message
	if len(msg.ToolCalls) > 0 {
		calls := make([]agent.ToolCall, 0, len(msg.ToolCalls))
		for _, tc := range msg.ToolCalls {
			id := tc.ID
			if strings.TrimSpace(id) == "" {
				id = uuid.NewString()
			}
			calls = append(calls, agent.ToolCall{
				ID:        id,
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			})
		}
		return agent.Completion{Kind: agent.CompletionToolCalls, Calls: calls}
	}
	if msg.Content != "" {
		return agent.Completion{Kind: agent.CompletionFinal, Text: msg.Content}
	}
	return agent.Completion{Kind: agent.CompletionEmpty}
}

func toChatMessages(msgs []agent.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, msg := range msgs {
		switch msg.Role {
		case agent.RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		case agent.RoleAssistant:
			if len(msg.ToolCalls) > 0 {
				out = append(out, toAssistantToolCalls(msg.ToolCalls))
				continue
			}
			out = append(out, openai.AssistantMessage(msg.Content))
		case agent.RoleTool:
			out = append(out, openai.ToolMessage(msg.Content, msg.ToolCallID))
		default:
			out = append(out, openai.UserMessage(msg.Content))
		}
	}
	return out
}

func toAssistantToolCalls(calls []agent.ToolCall) openai.ChatCompletionMessageParamUnion {
	params := make([]openai.ChatCompletionMessageToolCallUnionParam, 0, len(calls))
	for _, call := range calls {
		params = append(params, openai.ChatCompletionMessageToolCallUnionParam{
			OfFunction: &openai.ChatCompletionMessageFunctionToolCallParam{
				ID: call.ID,
				Function: openai.ChatCompletionMessageFunctionToolCallFunctionParam{
					Name:      call.Name,
					Arguments: call.Arguments,
				},
			},
		})
	}
	return openai.ChatCompletionMessageParamUnion{
		OfAssistant: &openai.ChatCompletionAssistantMessageParam{
			ToolCalls: params,
		},
	}
}

func toChatTools(specs []agent.ToolSpec) []openai.ChatCompletionToolUnionParam {
	tools := make([]openai.ChatCompletionToolUnionParam, 0, len(specs))
	for _, spec := range specs {
		name := strings.TrimSpace(spec.Name)
		if name == "" {
			continue
		}
		fn := shared.FunctionDefinitionParam{
			Name:       name,
			Parameters: spec.Parameters,
		}
		if desc := strings.TrimSpace(spec.Description); desc != "" {
			fn.Description = openai.String(desc)
		}
		tools = append(tools, openai.ChatCompletionToolUnionParam{
			OfFunction: &openai.ChatCompletionFunctionToolParam{
				Function: fn,
			},
		})
	}
	return tools
}

func wrapAPIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) && apiErr != nil {
		return &agent.ProviderError{
			Status:  apiErr.StatusCode,
			Code:    apiErr.Code,
			Message: apiErr.Message,
		}
	}
	return err
}

func toLLMMessages(msgs []agent.Message) []logger.LLMMessage {
	out := make([]logger.LLMMessage, 0, len(msgs))
	for _, msg := range msgs {
		content := msg.Content
		if content == "" && len(msg.ToolCalls) > 0 {
			content = "(tool calls)"
		}
		out = append(out, logger.LLMMessage{Role: string(msg.Role), Content: content})
	}
	return out
}

func summarize(c agent.Completion) string {
	switch c.Kind {
	case agent.CompletionFinal:
		return "text=" + c.Text
	case agent.CompletionToolCalls:
		names := make([]string, 0, len(c.Calls))
		for _, call := range c.Calls {
			names = append(names, call.Name)
		}
		return "tool_calls=" + strings.Join(names, ",")
	default:
		return "empty"
	}
}
