package agent

import (
	"errors"
	"fmt"
)

// ToolUseFailedCode 是服务端在工具调用自身失败时返回的错误码。
const ToolUseFailedCode = "tool_use_failed"

// ProviderError 携带模型服务端失败的状态码与错误码。
type ProviderError struct {
	Status  int
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("provider http_%d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("provider http_%d: %s", e.Status, e.Message)
}

// IsToolUseFailed 判断错误是否为 400/tool_use_failed 子类，
// 该子类驱动 Agent Loop 的无工具降级重试。
func IsToolUseFailed(err error) bool {
	var perr *ProviderError
	if !errors.As(err, &perr) {
		return false
	}
	return perr.Status == 400 && perr.Code == ToolUseFailedCode
}
