package docker

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// fakeResponse defines the output for a matched command
type fakeResponse struct {
	Stdout []byte
	Stderr []byte
	Err    error
}

// fakeExecutor records calls and answers by the longest matching argument prefix
type fakeExecutor struct {
	mu        sync.Mutex
	responses map[string]fakeResponse
	calls     []Request
	block     bool
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{responses: make(map[string]fakeResponse)}
}

func (f *fakeExecutor) on(prefix string, resp fakeResponse) {
	f.responses[prefix] = resp
}

func (f *fakeExecutor) Execute(ctx context.Context, req Request) ([]byte, []byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return nil, nil, ctx.Err()
	}

	key := req.Name + " " + strings.Join(req.Args, " ")
	best := ""
	for prefix := range f.responses {
		if strings.HasPrefix(key, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best == "" {
		return nil, []byte("unexpected command"), fmt.Errorf("exit status 1")
	}
	r := f.responses[best]
	return r.Stdout, r.Stderr, r.Err
}
