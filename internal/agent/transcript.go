package agent

// Transcript 是一次会话的完整消息记录，按追加顺序保存。
// 由 Agent Loop 独占写入；其余组件只读快照并通过返回值提议新消息。
// 首条消息总是系统指令，永远不会被移除或重排。
type Transcript struct {
	messages []Message
}

// NewTranscript 以固定系统指令初始化会话记录。
func NewTranscript(system string) *Transcript {
	return &Transcript{messages: []Message{SystemMessage(system)}}
}

// Append 将消息追加到记录末尾。
func (t *Transcript) Append(msg Message) {
	t.messages = append(t.messages, msg)
}

// Snapshot 返回当前记录的副本，供一次补全请求使用。
func (t *Transcript) Snapshot() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len 返回记录中的消息条数。
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Last 返回最后一条消息；记录为空时返回 false。
func (t *Transcript) Last() (Message, bool) {
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}

// PopLast 移除并返回最后一条消息，仅供降级重试路径使用。
// 系统指令消息不可移除。
func (t *Transcript) PopLast() (Message, bool) {
	if len(t.messages) <= 1 {
		return Message{}, false
	}
	last := t.messages[len(t.messages)-1]
	t.messages = t.messages[:len(t.messages)-1]
	return last, true
}
