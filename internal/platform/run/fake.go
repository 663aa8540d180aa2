package run

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Call records a single command executed through a FakeRunner.
type Call struct {
	Name string
	Args []string
}

// String renders the call as a shell-like line, used for matching responses.
func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Response is a scripted result for a command matched by prefix.
type Response struct {
	Output string
	Err    error
}

// FakeRunner is a scripted Runner for tests. Commands are matched against
// registered prefixes; unmatched commands succeed with empty output so
// tests only script the calls they care about.
type FakeRunner struct {
	mu        sync.Mutex
	calls     []Call
	responses map[string]Response
	missing   map[string]bool
}

// NewFakeRunner creates an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		responses: make(map[string]Response),
		missing:   make(map[string]bool),
	}
}

// Respond registers a scripted response for any command whose rendered
// form starts with prefix. Later registrations win on longer prefixes.
func (f *FakeRunner) Respond(prefix, output string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[prefix] = Response{Output: output, Err: err}
}

// SetMissing marks a binary as absent from PATH for LookPath.
func (f *FakeRunner) SetMissing(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.missing[name] = true
}

// Calls returns a copy of all recorded calls.
func (f *FakeRunner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CalledWith reports whether any recorded call starts with prefix.
func (f *FakeRunner) CalledWith(prefix string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if strings.HasPrefix(c.String(), prefix) {
			return true
		}
	}
	return false
}

// Run implements Runner.
func (f *FakeRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := Call{Name: name, Args: args}
	f.calls = append(f.calls, call)

	rendered := call.String()
	var best string
	for prefix := range f.responses {
		if strings.HasPrefix(rendered, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best != "" {
		resp := f.responses[best]
		return resp.Output, resp.Err
	}
	return "", nil
}

// LookPath implements Runner.
func (f *FakeRunner) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.missing[name] {
		return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
	}
	return "/usr/bin/" + name, nil
}
