package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"sage-cli/internal/agent"
	"sage-cli/internal/logger"
	"sage-cli/internal/search"
)

// WebSearchName 是模型侧可见的工具名。
const WebSearchName = "webSearch"

const (
	// displayLimit 限制反馈给模型的结果条数，控制提示词体积。
	displayLimit = 3
	// contentLimit 限制单条结果正文的字符数。
	contentLimit = 500
)

// WebSearch 执行网页搜索并把结果整理成反馈给模型的文本。
// 搜索侧的任何失败都在这里转换为可读文本，不会越过该边界向外传播。
type WebSearch struct {
	provider search.Provider
	log      *logger.LogEntry
}

var _ Handler = (*WebSearch)(nil)

func NewWebSearch(provider search.Provider) *WebSearch {
	return &WebSearch{
		provider: provider,
		log:      logger.Named("websearch"),
	}
}

func (w *WebSearch) Name() string {
	return WebSearchName
}

func (w *WebSearch) Spec() agent.ToolSpec {
	return agent.ToolSpec{
		Name:        WebSearchName,
		Description: "Search the latest information and real time data on the internet.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "The search query.",
				},
			},
			"required": []string{"query"},
		},
	}
}

type webSearchArgs struct {
	Query string `json:"query"`
}

// Describe 返回执行前展示给用户的进度行。参数无法解析时返回空。
func (w *WebSearch) Describe(arguments string) string {
	var args webSearchArgs
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return ""
	}
	if strings.TrimSpace(args.Query) == "" {
		return ""
	}
	return fmt.Sprintf("Searching for: \"%s\"", args.Query)
}

// Handle 解析参数并执行搜索。参数 JSON 非法时返回 ErrInvalidArguments，
// 其余失败一律转换为文本结果。
func (w *WebSearch) Handle(ctx context.Context, arguments string) (string, error) {
	var args webSearchArgs
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		w.log.WithField("arguments", arguments).Warnf("unparseable tool arguments: %v", err)
		return "", ErrInvalidArguments
	}
	return w.Search(ctx, args.Query), nil
}

// Search 执行一次查询并返回整理后的文本，接口层面永不失败。
func (w *WebSearch) Search(ctx context.Context, query string) string {
	if strings.TrimSpace(query) == "" {
		return "Error: No search query provided"
	}

	results, err := w.provider.Search(ctx, query)
	if err != nil {
		w.log.WithField("query", query).Errorf("search provider failed: %v", err)
		return fmt.Sprintf("Sorry, I couldn't complete the search for \"%s\". Please try again later.", query)
	}
	return formatResults(query, results)
}

func formatResults(query string, results []search.Result) string {
	if len(results) == 0 {
		return fmt.Sprintf("No results found for \"%s\". Please try a different search query.", query)
	}

	shown := results
	if len(shown) > displayLimit {
		shown = shown[:displayLimit]
	}

	blocks := make([]string, 0, len(shown)+1)
	for i, r := range shown {
		title := r.Title
		if strings.TrimSpace(title) == "" {
			title = "No title"
		}
		content := r.Content
		if runes := []rune(content); len(runes) > contentLimit {
			content = string(runes[:contentLimit]) + "..."
		}
		blocks = append(blocks, fmt.Sprintf("%d. %s\n%s\n%s", i+1, title, r.URL, content))
	}

	// The trailing line reports the provider's true total, not the shown count.
	return strings.Join(blocks, "\n\n") + fmt.Sprintf("\n\nTotal results: %d", len(results))
}
