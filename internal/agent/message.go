package agent

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall 表示模型请求调用的一次工具执行。
// Arguments 是模型原样返回的 JSON 文本，不保证合法。
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// Message 是会话记录中的一条消息。
// 携带工具调用请求的 assistant 消息 Content 为空；
// tool 消息通过 ToolCallID 关联到对应的调用请求。
type Message struct {
	Role       Role
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
}

// SystemMessage 构造系统指令消息。
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage 构造用户输入消息。
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage 构造纯文本的助手回复消息。
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// ToolCallMessage 构造记录单个工具调用请求的 assistant 消息。
func ToolCallMessage(call ToolCall) Message {
	return Message{Role: RoleAssistant, ToolCalls: []ToolCall{call}}
}

// ToolResultMessage 构造携带工具执行结果的 tool 消息。
func ToolResultMessage(callID, content string) Message {
	return Message{Role: RoleTool, Content: content, ToolCallID: callID}
}
