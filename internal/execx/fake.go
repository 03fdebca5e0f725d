package execx

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// FakeResult is a scripted response for a FakeRunner command.
type FakeResult struct {
	Output []byte
	Err    error
}

// FakeRunner is a scripted Runner for tests. Responses are matched by
// command-line prefix ("kubectl get namespace"), longest prefix wins.
// Unmatched commands succeed with empty output.
type FakeRunner struct {
	mu        sync.Mutex
	responses map[string]FakeResult
	queued    map[string][]FakeResult
	missing   map[string]bool

	// Calls records every command line executed, in order.
	Calls []string
}

// NewFakeRunner returns an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		responses: make(map[string]FakeResult),
		queued:    make(map[string][]FakeResult),
		missing:   make(map[string]bool),
	}
}

// Respond scripts a response for any command line starting with prefix.
func (f *FakeRunner) Respond(prefix string, output string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[prefix] = FakeResult{Output: []byte(output), Err: err}
}

// Fail scripts a failure for any command line starting with prefix.
func (f *FakeRunner) Fail(prefix string, output string) {
	f.Respond(prefix, output, errors.New("exit status 1"))
}

// RespondOnce queues a one-shot response consumed by the next command line
// starting with prefix. Queued responses win over Respond entries.
func (f *FakeRunner) RespondOnce(prefix string, output string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queued[prefix] = append(f.queued[prefix], FakeResult{Output: []byte(output), Err: err})
}

// FailOnce queues a one-shot failure for the next command line starting with
// prefix.
func (f *FakeRunner) FailOnce(prefix string, output string) {
	f.RespondOnce(prefix, output, errors.New("exit status 1"))
}

// MarkMissing makes LookPath fail for the named binary.
func (f *FakeRunner) MarkMissing(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.missing[name] = true
}

func (f *FakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	line := name
	if len(args) > 0 {
		line += " " + strings.Join(args, " ")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, line)

	var bestQueued string
	for prefix := range f.queued {
		if len(f.queued[prefix]) > 0 && strings.HasPrefix(line, prefix) && len(prefix) > len(bestQueued) {
			bestQueued = prefix
		}
	}
	if bestQueued != "" {
		res := f.queued[bestQueued][0]
		f.queued[bestQueued] = f.queued[bestQueued][1:]
		if res.Err != nil {
			return res.Output, &CommandError{Command: line, Output: res.Output, Err: res.Err}
		}
		return res.Output, nil
	}

	var best string
	for prefix := range f.responses {
		if strings.HasPrefix(line, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best == "" {
		return nil, nil
	}

	res := f.responses[best]
	if res.Err != nil {
		return res.Output, &CommandError{Command: line, Output: res.Output, Err: res.Err}
	}
	return res.Output, nil
}

func (f *FakeRunner) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.missing[name] {
		return "", errors.New("executable file not found in $PATH")
	}
	return "/usr/local/bin/" + name, nil
}

// CallCount returns how many executed command lines start with prefix.
func (f *FakeRunner) CallCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}
