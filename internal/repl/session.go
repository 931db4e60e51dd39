package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"sage-cli/internal/history"
	"sage-cli/internal/logger"
)

const (
	banner   = "Welcome! Type 'bye' to exit.\n"
	prompt   = "You: "
	exitWord = "bye"
	farewell = "Goodbye!"
)

// TurnRunner 处理一轮用户输入。Agent Loop 实现该接口。
type TurnRunner interface {
	RunTurn(ctx context.Context, input string)
}

// Options 定义交互会话的可注入依赖。
type Options struct {
	Runner  TurnRunner
	In      io.Reader
	Out     io.Writer
	History *history.Store
	Log     *logger.LogEntry
}

// Session 是面向终端的逐行交互会话：打印提示符、读取输入、
// 识别退出词，并把每轮输入交给 TurnRunner 处理。
type Session struct {
	runner  TurnRunner
	in      io.Reader
	out     io.Writer
	history *history.Store
	log     *logger.LogEntry
}

// NewSession 构造交互会话，未提供的依赖使用标准输入输出。
func NewSession(opts Options) *Session {
	in := opts.In
	if in == nil {
		in = os.Stdin
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	log := opts.Log
	if log == nil {
		log = logger.Named("repl")
	}
	return &Session{
		runner:  opts.Runner,
		in:      in,
		out:     out,
		history: opts.History,
		log:     log,
	}
}

// Run 驱动会话直到用户输入退出词或输入流结束。
// 一轮完整处理结束后才会读取下一行，不存在并发轮次。
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprint(s.out, banner)

	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, prompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			return nil
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if strings.EqualFold(input, exitWord) {
			fmt.Fprintln(s.out, farewell)
			return nil
		}
		if s.history != nil {
			if err := s.history.Append(input); err != nil {
				s.log.Warnf("failed to record input history: %v", err)
			}
		}
		s.runner.RunTurn(ctx, input)
	}
}
