package logx

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// ErrorLog 是从 error 链上提取出的可读元信息。
type ErrorLog struct {
	Error      string
	Code       string
	Msg        string
	Reason     string
	Data       map[string]any
	CauseChain []string
	Origin     string
	Stack      string
}

const (
	maxCauseDepth = 16
	maxFrames     = 24
)

// BuildErrorLog 提取错误码/文案/上下文/cause 链/首次捕获的栈。
func BuildErrorLog(err error) ErrorLog {
	if err == nil {
		return ErrorLog{}
	}
	out := ErrorLog{Error: err.Error()}

	var cp interface{ CodeText() string }
	if errors.As(err, &cp) {
		out.Code = cp.CodeText()
	}
	var mp interface{ Msg() string }
	if errors.As(err, &mp) {
		out.Msg = mp.Msg()
	}
	var dp interface{ Data() map[string]any }
	if errors.As(err, &dp) {
		out.Data = dp.Data()
	}
	var rp interface{ Reason() string }
	if errors.As(err, &rp) {
		out.Reason = rp.Reason()
	}
	out.Origin, out.Stack = deepestStack(err)
	out.CauseChain = causeChain(err)
	return out
}

func causeChain(err error) []string {
	var out []string
	for cur, i := errors.Unwrap(err), 0; cur != nil && i < maxCauseDepth; cur, i = errors.Unwrap(cur), i+1 {
		out = append(out, fmt.Sprintf("%T: %v", cur, cur))
	}
	return out
}

// deepestStack 沿链找到第一个带栈的错误并格式化。
func deepestStack(err error) (string, string) {
	for cur, i := err, 0; cur != nil && i < maxCauseDepth; cur, i = errors.Unwrap(cur), i+1 {
		sp, ok := cur.(interface{ Stack() []uintptr })
		if !ok {
			continue
		}
		if pcs := sp.Stack(); len(pcs) != 0 {
			return formatFrames(pcs)
		}
	}
	return "", ""
}

func formatFrames(pcs []uintptr) (origin string, stack string) {
	frames := runtime.CallersFrames(pcs)
	lines := make([]string, 0, 8)
	for i := 0; i < maxFrames; i++ {
		f, more := frames.Next()
		if f.Function == "" && f.File == "" {
			break
		}
		line := f.Function + " " + f.File + ":" + strconv.Itoa(f.Line)
		if origin == "" {
			origin = line
		}
		lines = append(lines, line)
		if !more {
			break
		}
	}
	return origin, strings.Join(lines, "\n")
}
