package service

import "context"

// DeletePrompt is the question asked before a task is deleted.
const DeletePrompt = "Delete this task?"

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// AlwaysConfirm confirms without asking, for non-interactive callers that
// already have the user's consent.
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) (bool, error) {
	return true, nil
})

// NeverConfirm declines every prompt.
var NeverConfirm Confirmer = ConfirmFunc(func(context.Context, string) (bool, error) {
	return false, nil
})
