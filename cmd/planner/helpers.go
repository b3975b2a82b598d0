package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/studyplanner/planner/internal/app"
	"github.com/studyplanner/planner/internal/config"
	"github.com/studyplanner/planner/internal/domain"
)

// configError marks failures to resolve or validate configuration.
type configError struct {
	err error
}

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// resolveConfig resolves the configuration and applies the --planner flag.
func resolveConfig() (*config.ResolvedConfig, error) {
	cfg, err := config.ResolveConfig()
	if err != nil {
		return nil, &configError{err: err}
	}
	if plannerName != "" {
		if err := config.ValidatePlannerName(plannerName); err != nil {
			return nil, &configError{err: err}
		}
		cfg.Planner = plannerName
	}
	return cfg, nil
}

// openApp opens the configured planner. Callers must Close it.
func openApp(ctx context.Context, opts app.Options) (*app.App, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, err
	}
	a, err := app.Open(ctx, cfg, opts)
	if err != nil {
		return nil, &configError{err: err}
	}
	return a, nil
}

// mapErrorToExitCode maps an error to the appropriate exit code
func mapErrorToExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case domain.ErrCodeTaskNotFound:
			return ExitTaskNotFound
		case domain.ErrCodeValidationFailed:
			return ExitValidationFailed
		case domain.ErrCodeInvalidImport:
			return ExitInvalidImport
		default:
			return ExitGeneralError
		}
	}

	var cfgErr *configError
	if errors.As(err, &cfgErr) {
		return ExitConfigError
	}

	return ExitGeneralError
}

// handleError handles an error by printing it and exiting with the appropriate code
func handleError(err error) {
	if err == nil {
		return
	}

	printError(os.Stderr, err, jsonOutput)
	os.Exit(mapErrorToExitCode(err))
}

// promptConfirmer asks on out and reads a y/N answer from in.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func newPromptConfirmer(in io.Reader, out io.Writer) *promptConfirmer {
	return &promptConfirmer{in: bufio.NewReader(in), out: out}
}

// Confirm implements service.Confirmer. Anything but y or yes declines.
func (p *promptConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintf(p.out, "%s [y/N] ", prompt)

	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// validationDetails returns the problems carried by a validation error.
func validationDetails(err error) []string {
	var domainErr *domain.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != domain.ErrCodeValidationFailed {
		return nil
	}
	details, _ := domainErr.Context["details"].([]string)
	return details
}

// withApp opens the planner, runs fn and closes the planner again.
// Any error ends the process with the matching exit code.
func withApp(opts app.Options, fn func(ctx context.Context, a *app.App) error) {
	ctx := context.Background()

	a, err := openApp(ctx, opts)
	if err != nil {
		handleError(err)
	}

	err = fn(ctx, a)
	if cerr := a.Close(); err == nil && cerr != nil {
		err = cerr
	}
	handleError(err)
}
