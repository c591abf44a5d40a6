package lang

import (
	"errors"
	"strings"
	"sync"
)

// CachedLine holds the cached state for a single line.
type CachedLine struct {
	Text    string
	Node    Node
	Result  Value
	Err     error
	IsEmpty bool // line was blank, a comment, or did not parse
}

// EvalResult is the result of evaluating a single line.
type EvalResult struct {
	Text  string // formatted result
	IsErr bool
}

// EvalState evaluates a sheet of independent lines, reusing the result of
// every line whose text is unchanged since the previous call.
type EvalState struct {
	Eval  *Evaluator
	Exact bool // render rationals as num/den

	mu    sync.Mutex
	Lines []CachedLine
}

func NewEvalState(ev *Evaluator) *EvalState {
	return &EvalState{Eval: ev}
}

// Invalidate forces every line to be re-evaluated on the next call, e.g.
// after exchange rates become available.
func (es *EvalState) Invalidate() {
	es.mu.Lock()
	es.Lines = nil
	es.mu.Unlock()
}

// IsComment reports whether a line holds no expression.
func IsComment(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, ";") || strings.HasPrefix(trimmed, "//")
}

// EvalAllIncremental evaluates lines, reusing cached results where possible.
func (es *EvalState) EvalAllIncremental(lines []string) []EvalResult {
	es.mu.Lock()
	defer es.mu.Unlock()

	results := make([]EvalResult, len(lines))

	// Full reset when line count changes
	if len(lines) != len(es.Lines) {
		es.Lines = make([]CachedLine, len(lines))
		for i := range es.Lines {
			es.Lines[i].Text = "\x00" // force dirty
		}
	}

	for i, line := range lines {
		cached := &es.Lines[i]
		if cached.Text != line {
			es.evalLine(cached, line)
		}
		results[i] = es.result(cached)
	}
	return results
}

func (es *EvalState) evalLine(cached *CachedLine, line string) {
	*cached = CachedLine{Text: line, IsEmpty: true}
	if IsComment(line) {
		return
	}
	node, ok := ParseLine(line)
	if !ok {
		return
	}
	cached.IsEmpty = false
	cached.Node = node
	ev := es.Eval
	if ev == nil {
		ev = NewEvaluator(nil)
	}
	cached.Result, cached.Err = ev.Eval(node)
}

func (es *EvalState) result(cached *CachedLine) EvalResult {
	switch {
	case cached.IsEmpty:
		return EvalResult{}
	case cached.Err != nil:
		return EvalResult{Text: errText(cached.Err), IsErr: true}
	case es.Exact:
		return EvalResult{Text: cached.Result.Exact()}
	}
	return EvalResult{Text: cached.Result.String()}
}

// errText shortens evaluation errors to their kind plus detail; other errors
// are shown as is.
func errText(err error) string {
	var ee *EvalError
	if errors.As(err, &ee) {
		return ee.Error()
	}
	return err.Error()
}
