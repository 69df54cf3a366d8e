package cli

import (
	"fmt"
	"io"

	"github.com/grovetools/sweep/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Out     io.Writer
	Verbose bool
}

// NewErrorHandler creates a new error handler writing to the given sink
func NewErrorHandler(out io.Writer, verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Out:     out,
		Verbose: verbose,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidRoot:
		if sweepErr, ok := err.(*errors.SweepError); ok {
			fmt.Fprintf(h.Out, "search path %v does not exist or is not a directory\n", sweepErr.Details["path"])
		} else {
			fmt.Fprintf(h.Out, "%v\n", err)
		}
		return err

	case errors.ErrCodeInvalidWorkers:
		fmt.Fprintf(h.Out, "--threads must be a positive number\n")
		return err

	case errors.ErrCodeConfigInvalid:
		fmt.Fprintf(h.Out, "configuration error: %v\n", err)
		return err

	case errors.ErrCodeGitNotInstalled:
		fmt.Fprintf(h.Out, "git was not found in PATH; install git and try again\n")
		return err

	default:
		fmt.Fprintf(h.Out, "error: %v\n", err)

		// If verbose mode, show full error details
		if h.Verbose {
			if sweepErr, ok := err.(*errors.SweepError); ok {
				fmt.Fprintf(h.Out, "\nerror details:\n%s\n", sweepErr.ToJSON())
			}
		}
		return err
	}
}
