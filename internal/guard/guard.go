// Package guard refuses deletes of reference rows that other rows still
// point at.
package guard

import (
	"context"

	"github.com/google/uuid"

	"github.com/angelmondragon/rentalhub-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/rentalhub-backend/pkg/errors"
)

// HasDependents reports whether any row still references id.
type HasDependents interface {
	HasDependents(ctx context.Context, id uuid.UUID) (bool, error)
}

// ProbeFunc adapts a function to HasDependents.
type ProbeFunc func(ctx context.Context, id uuid.UUID) (bool, error)

func (f ProbeFunc) HasDependents(ctx context.Context, id uuid.UUID) (bool, error) {
	return f(ctx, id)
}

// GuardedDelete runs deleteFn only when probe finds no dependents of id.
// A referenced row yields IN_USE with inUseMessage. A foreign key violation
// raised by deleteFn is reported the same way.
func GuardedDelete(ctx context.Context, probe HasDependents, id uuid.UUID, inUseMessage string, deleteFn func(ctx context.Context) error) error {
	if probe == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "dependency probe required")
	}

	inUse, err := probe.HasDependents(ctx, id)
	if err != nil {
		if pkgerrors.As(err) != nil {
			return err
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check dependents")
	}
	if inUse {
		return pkgerrors.New(pkgerrors.CodeInUse, inUseMessage)
	}

	if err := deleteFn(ctx); err != nil {
		if pkgerrors.As(err) != nil {
			return err
		}
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.Wrap(pkgerrors.CodeInUse, err, inUseMessage)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete row")
	}
	return nil
}

// Any combines probes; the row is in use when any of them reports dependents.
func Any(probes ...HasDependents) HasDependents {
	return ProbeFunc(func(ctx context.Context, id uuid.UUID) (bool, error) {
		for _, probe := range probes {
			inUse, err := probe.HasDependents(ctx, id)
			if err != nil || inUse {
				return inUse, err
			}
		}
		return false, nil
	})
}
