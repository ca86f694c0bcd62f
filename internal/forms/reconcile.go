package forms

import (
	"context"
	"fmt"

	"github.com/instituto-brotar/painel-brotar/internal/logging"
	"github.com/instituto-brotar/painel-brotar/internal/models"
	"github.com/instituto-brotar/painel-brotar/internal/observability"
	"github.com/instituto-brotar/painel-brotar/internal/utils"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// Reconcile operations
const (
	OpDelete = "delete"
	OpUpdate = "update"
	OpCreate = "create"
)

// ChildStore is the flat per-row endpoint of a child collection. The
// services' embedded resource satisfies it.
type ChildStore[T any] interface {
	Create(ctx context.Context, payload interface{}) (*T, error)
	Update(ctx context.Context, id int64, payload interface{}) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// ChildRow is one submitted child. ID is zero for rows created in this
// edit; Payload already carries the parent foreign key.
type ChildRow struct {
	ID      int64
	Payload interface{}
}

// ReconcileResult counts the calls that succeeded
type ReconcileResult struct {
	Deleted []int64
	Updated []int64
	Created int
}

// DeletedIDs returns existing minus the ids still present in rows, in the
// order of existing
func DeletedIDs(existing []int64, rows []ChildRow) []int64 {
	current := make(map[int64]struct{}, len(rows))
	for _, r := range rows {
		if r.ID > 0 {
			current[r.ID] = struct{}{}
		}
	}
	deleted := make([]int64, 0, len(existing))
	for _, id := range existing {
		if _, kept := current[id]; !kept {
			deleted = append(deleted, id)
		}
	}
	return deleted
}

// Reconcile brings the child collection of parentID in line with rows:
// rows removed since load are deleted first, then every row is updated or
// created. Calls are strictly sequential and the first failure stops the
// run; calls already made are not rolled back.
func Reconcile[T any](ctx context.Context, child string, store ChildStore[T], parentID int64, existing []int64, rows []ChildRow) (ReconcileResult, error) {
	var result ReconcileResult
	if parentID <= 0 {
		return result, models.ErrMissingParentID
	}

	for _, id := range DeletedIDs(existing, rows) {
		if err := reconcileCall(ctx, child, OpDelete, id, func(ctx context.Context) error {
			return store.Delete(ctx, id)
		}); err != nil {
			return result, err
		}
		result.Deleted = append(result.Deleted, id)
	}

	for _, row := range rows {
		row := row
		if row.ID > 0 {
			if err := reconcileCall(ctx, child, OpUpdate, row.ID, func(ctx context.Context) error {
				_, err := store.Update(ctx, row.ID, row.Payload)
				return err
			}); err != nil {
				return result, err
			}
			result.Updated = append(result.Updated, row.ID)
			continue
		}
		if err := reconcileCall(ctx, child, OpCreate, 0, func(ctx context.Context) error {
			_, err := store.Create(ctx, row.Payload)
			return err
		}); err != nil {
			return result, err
		}
		result.Created++
	}

	logging.Logger.Debug("children reconciled",
		zap.String("child", child),
		zap.Int64("parent_id", parentID),
		zap.Int("deleted", len(result.Deleted)),
		zap.Int("updated", len(result.Updated)),
		zap.Int("created", result.Created))
	return result, nil
}

func reconcileCall(ctx context.Context, child, op string, id int64, call func(context.Context) error) error {
	ctx, span, cleanup := utils.TraceReconcileOperation(ctx, child, op, id)
	defer cleanup()

	if err := call(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		observability.ReconcileOperations.WithLabelValues(child, op, "error").Inc()
		logging.Logger.Warn("child reconciliation stopped",
			zap.String("child", child),
			zap.String("operation", op),
			zap.Int64("child_id", id),
			zap.Error(err))
		return fmt.Errorf("failed to %s %s %d: %w", op, child, id, err)
	}
	observability.ReconcileOperations.WithLabelValues(child, op, "success").Inc()
	return nil
}
