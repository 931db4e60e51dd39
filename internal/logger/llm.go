package logger

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// LLMMessage 表示一次请求中的对话消息。
type LLMMessage struct {
	Role    string
	Content string
}

// LLMLogger 负责输出与 LLM 交互的请求、响应与错误信息。
type LLMLogger interface {
	Request(model string, messages []LLMMessage, toolsEnabled bool)
	Response(model string, summary string)
	Error(model string, err error)
}

// LLMLog 是全局唯一的 LLM 日志器实例。
var LLMLog LLMLogger = NewLLMLogger(nil)

// SetGlobalLLMLogger 覆盖全局 LLM 日志实例，传入 nil 将重置为默认实现。
func SetGlobalLLMLogger(logger LLMLogger) {
	if logger == nil {
		logger = NewLLMLogger(nil)
	}
	LLMLog = logger
}

// StdLLMLogger 使用 logrus 输出日志。
type StdLLMLogger struct {
	logger *logrus.Entry
}

// NewLLMLogger 构造默认的 LLM 日志记录器。
func NewLLMLogger(l *Logger) *StdLLMLogger {
	if l == nil {
		l = root()
	}
	return &StdLLMLogger{logger: logrus.NewEntry(l).WithField("component", "llm")}
}

// Request 记录一次请求的上下文。
func (l *StdLLMLogger) Request(model string, messages []LLMMessage, toolsEnabled bool) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Infof("-> request model=%s messages=%d tools=%t", model, len(messages), toolsEnabled)
	for i, msg := range messages {
		l.logger.Infof("-> message[%d] role=%s content=%s", i, msg.Role, sanitize(msg.Content))
	}
}

// Response 记录一次响应的摘要。
func (l *StdLLMLogger) Response(model string, summary string) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Infof("<- response model=%s %s", model, sanitize(summary))
}

// Error 记录请求错误。
func (l *StdLLMLogger) Error(model string, err error) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Errorf("!! error model=%s err=%v", model, err)
}

// NoopLLMLogger 忽略所有日志输出。
type NoopLLMLogger struct{}

func (NoopLLMLogger) Request(model string, messages []LLMMessage, toolsEnabled bool) {}
func (NoopLLMLogger) Response(model string, summary string)                          {}
func (NoopLLMLogger) Error(model string, err error)                                  {}

func sanitize(text string) string {
	text = strings.ReplaceAll(text, "\n", `\n`)
	text = strings.ReplaceAll(text, "\r", `\r`)
	return text
}
