package agent

import "context"

// CompletionKind 标记一次补全结果的分支。
type CompletionKind int

const (
	// CompletionEmpty 表示服务端既没有返回文本也没有返回工具调用。
	CompletionEmpty CompletionKind = iota
	// CompletionFinal 表示服务端返回了最终的自然语言回答。
	CompletionFinal
	// CompletionToolCalls 表示服务端请求执行一个或多个工具调用。
	CompletionToolCalls
)

// Completion 是一次补全请求的结果。Text 仅在 CompletionFinal 时有效，
// Calls 仅在 CompletionToolCalls 时有效。
type Completion struct {
	Kind  CompletionKind
	Text  string
	Calls []ToolCall
}

// CompletionClient 定义模型客户端接口。
// tools 为空时不下发任何工具 schema，强制服务端返回纯文本回答。
// 客户端不做重试；重试与降级由调用方决定。
type CompletionClient interface {
	Complete(ctx context.Context, messages []Message, tools []ToolSpec) (Completion, error)
}
