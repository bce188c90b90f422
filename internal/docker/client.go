// Package docker drives the container runtime and the vault CLI inside the
// Vault container through the docker executable.
package docker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Request describes one external command
type Request struct {
	Name  string
	Args  []string
	Stdin []byte
	// Env is appended to the inherited environment
	Env []string
}

// Executor runs an external command and captures its output
type Executor interface {
	Execute(ctx context.Context, req Request) (stdout, stderr []byte, err error)
}

// ExecExecutor runs real processes via os/exec
type ExecExecutor struct{}

// Execute runs the command described by req
func (ExecExecutor) Execute(ctx context.Context, req Request) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, req.Name, req.Args...)
	if req.Stdin != nil {
		cmd.Stdin = bytes.NewReader(req.Stdin)
	}
	if len(req.Env) > 0 {
		cmd.Env = append(os.Environ(), req.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// CommandError is returned when a command exits unsuccessfully
type CommandError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s failed: %s", e.Command, e.Stderr)
	}
	return fmt.Sprintf("%s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Client executes docker commands
type Client struct {
	binary   string
	timeout  time.Duration
	executor Executor
}

// NewClient creates a new docker CLI client
func NewClient(timeout time.Duration) *Client {
	return NewClientWithExecutor(ExecExecutor{}, timeout)
}

// NewClientWithExecutor creates a client running commands through executor
func NewClientWithExecutor(executor Executor, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		binary:   "docker",
		timeout:  timeout,
		executor: executor,
	}
}

// Execute runs a docker command with the given arguments
func (c *Client) Execute(ctx context.Context, stdin []byte, env []string, args ...string) ([]byte, error) {
	// Create context with timeout
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	stdout, stderr, err := c.executor.Execute(ctx, Request{
		Name:  c.binary,
		Args:  args,
		Stdin: stdin,
		Env:   env,
	})
	if err != nil {
		command := describe(c.binary, args)

		// Check if it's a context timeout
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &CommandError{Command: command, Err: fmt.Errorf("command timed out after %v", c.timeout)}
		}

		return nil, &CommandError{
			Command: command,
			Stderr:  strings.TrimSpace(string(stderr)),
			Err:     err,
		}
	}

	return stdout, nil
}

// RunningContainers returns the names of running containers
func (c *Client) RunningContainers(ctx context.Context) ([]string, error) {
	out, err := c.Execute(ctx, nil, nil, "ps", "--format", "{{.Names}}")
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	var names []string
	for _, line := range strings.Split(string(out), "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// describe renders a command for error messages. Arguments are omitted so
// that tokens and values never leak into logs.
func describe(binary string, args []string) string {
	if len(args) == 0 {
		return binary
	}
	return binary + " " + args[0]
}
