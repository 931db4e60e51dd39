package execution

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"sage-cli/internal/agent"
	"sage-cli/internal/logger"
	"sage-cli/internal/prompts"
	"sage-cli/internal/tools"
)

// Options 定义 Agent Loop 的可注入依赖。
type Options struct {
	Client     agent.CompletionClient
	Registry   *tools.Registry
	Transcript *agent.Transcript
	Out        io.Writer
	Log        *logger.LogEntry
}

// Loop 按用户轮次驱动补全与工具执行：
// 首轮带工具 schema 调用模型；若模型请求工具则逐个执行并把结果写回
// 会话记录，再发起一次不带工具的补全取得最终回答。每轮最多一次工具
// 往返，最多三次模型调用。
type Loop struct {
	client     agent.CompletionClient
	registry   *tools.Registry
	transcript *agent.Transcript
	out        io.Writer
	log        *logger.LogEntry
}

// NewLoop 构造 Agent Loop，未提供的依赖使用默认值。
func NewLoop(opts Options) *Loop {
	transcript := opts.Transcript
	if transcript == nil {
		transcript = agent.NewTranscript(prompts.System)
	}
	registry := opts.Registry
	if registry == nil {
		registry = tools.NewRegistry()
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	log := opts.Log
	if log == nil {
		log = logger.Named("loop")
	}
	return &Loop{
		client:     opts.Client,
		registry:   registry,
		transcript: transcript,
		out:        out,
		log:        log,
	}
}

// Transcript 返回会话记录。写入权始终归 Loop 所有。
func (l *Loop) Transcript() *agent.Transcript {
	return l.transcript
}

// RunTurn 处理一轮用户输入直至本轮结束。请求失败只会记录到运维日志，
// 不会终止会话：最坏情况是该轮没有任何可见回答。
func (l *Loop) RunTurn(ctx context.Context, input string) {
	l.transcript.Append(agent.UserMessage(input))

	completion, err := l.client.Complete(ctx, l.transcript.Snapshot(), l.registry.Specs())
	if err != nil {
		if agent.IsToolUseFailed(err) {
			l.fallback(ctx)
			return
		}
		l.log.Errorf("completion failed: %v", err)
		return
	}

	switch completion.Kind {
	case agent.CompletionFinal:
		l.answer(completion.Text)
	case agent.CompletionToolCalls:
		l.runToolPhase(ctx, completion.Calls)
		l.secondPass(ctx)
	default:
		// 服务端没有给出任何内容，本轮无事可做。
	}
}

// runToolPhase 按服务端返回的顺序依次执行识别出的工具调用。
// 每个调用先追加 assistant 记录，再追加对应的 tool 结果。
func (l *Loop) runToolPhase(ctx context.Context, calls []agent.ToolCall) {
	fmt.Fprintln(l.out, "\nSearching for information...")
	for _, call := range calls {
		handler, ok := l.registry.Handler(call.Name)
		if !ok {
			// 未注册的工具名直接忽略，不在会话记录中留痕。
			l.log.WithField("tool", call.Name).Warnf("unrecognized tool call ignored")
			continue
		}
		if line := handler.Describe(call.Arguments); line != "" {
			fmt.Fprintln(l.out, line)
		}
		l.transcript.Append(agent.ToolCallMessage(call))

		result, err := handler.Handle(ctx, call.Arguments)
		if err != nil {
			if !errors.Is(err, tools.ErrInvalidArguments) {
				l.log.WithField("tool", call.Name).Errorf("tool handler failed: %v", err)
			}
			result = "Error: Invalid search parameters"
		}
		l.transcript.Append(agent.ToolResultMessage(call.ID, result))
	}
}

// secondPass 在工具结果写回后发起一次不带工具的补全。
// 若服务端再次请求工具则不再服务，本轮静默结束。
func (l *Loop) secondPass(ctx context.Context) {
	completion, err := l.client.Complete(ctx, l.transcript.Snapshot(), nil)
	if err != nil {
		l.log.Errorf("second pass failed: %v", err)
		return
	}
	if completion.Kind == agent.CompletionFinal {
		l.answer(completion.Text)
	}
}

// fallback 处理首轮补全返回 tool_use_failed 的情况：弹出刚追加的用户
// 消息并原样重新追加，然后发起一次不带工具的补全。仅重试这一次。
func (l *Loop) fallback(ctx context.Context) {
	last, ok := l.transcript.PopLast()
	if !ok || last.Role != agent.RoleUser {
		if ok {
			l.transcript.Append(last)
		}
		l.log.Warnf("fallback skipped: transcript does not end with a user message")
		return
	}
	l.transcript.Append(agent.UserMessage(last.Content))

	completion, err := l.client.Complete(ctx, l.transcript.Snapshot(), nil)
	if err != nil {
		l.log.Errorf("fallback pass failed: %v", err)
		return
	}
	if completion.Kind == agent.CompletionFinal {
		l.answer(completion.Text)
	}
}

func (l *Loop) answer(text string) {
	l.transcript.Append(agent.AssistantMessage(text))
	fmt.Fprintln(l.out, "\nAssistant:", text)
}
