package tools

import (
	"context"
	"errors"

	"sage-cli/internal/agent"
)

// ErrInvalidArguments 表示模型给出的工具参数无法解析。
// 调用方负责把它转换成反馈给模型的文本结果。
var ErrInvalidArguments = errors.New("invalid tool arguments")

// Handler 定义具体工具的执行入口。
// Handle 接收模型返回的原始参数 JSON，返回反馈给模型的文本。
// Describe 返回执行前展示给用户的进度行，为空则不展示。
type Handler interface {
	Name() string
	Spec() agent.ToolSpec
	Describe(arguments string) string
	Handle(ctx context.Context, arguments string) (string, error)
}

// Registry 按名字路由工具调用，新增工具不需要改动 Agent Loop 的分支逻辑。
type Registry struct {
	handlers map[string]Handler
	names    []string
}

func NewRegistry(handlers ...Handler) *Registry {
	r := &Registry{handlers: make(map[string]Handler, len(handlers))}
	for _, h := range handlers {
		if h == nil {
			continue
		}
		if _, exists := r.handlers[h.Name()]; !exists {
			r.names = append(r.names, h.Name())
		}
		r.handlers[h.Name()] = h
	}
	return r
}

func (r *Registry) Handler(name string) (Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

// Specs 返回注册顺序下全部工具的 schema，供补全请求下发。
func (r *Registry) Specs() []agent.ToolSpec {
	specs := make([]agent.ToolSpec, 0, len(r.names))
	for _, name := range r.names {
		specs = append(specs, r.handlers[name].Spec())
	}
	return specs
}
