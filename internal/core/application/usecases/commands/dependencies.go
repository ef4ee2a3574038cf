// Package commands contains the write operations of the system. Every command
// validates its input in the constructor, verifies the acting identity before
// any side effect, and runs its mutations either as a mutation plan through
// the workflow engine (when blob effects are involved) or inside an explicit
// unit-of-work transaction (record-only cascades).
package commands

import (
	"context"

	"marketplace/internal/core/application/auth"
	"marketplace/internal/core/application/saga"
	"marketplace/internal/pkg/errs"
)

type (
	// WorkflowEngine runs mutation plans with reverse compensation on failure.
	WorkflowEngine interface {
		Run(ctx context.Context, plan *saga.Plan) error
	}

	// ActorVerifier confirms the acting identity resolves to a live row of the
	// claimed role. Handlers call it before any mutating step.
	ActorVerifier interface {
		Verify(ctx context.Context, actor auth.ActorContext) error
	}
)

// UploadFile carries one in-memory upload destined for the blob store.
type UploadFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (f UploadFile) validate(paramName string) error {
	if f.Filename == "" || len(f.Data) == 0 {
		return errs.NewValueIsRequiredError(paramName)
	}
	return nil
}
