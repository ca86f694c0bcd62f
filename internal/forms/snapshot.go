package forms

import (
	"context"
	"strconv"
	"time"

	"github.com/instituto-brotar/painel-brotar/internal/logging"
	"github.com/instituto-brotar/painel-brotar/internal/uistate"
	"go.uber.org/zap"
)

// Snapshot is what a form remembers between rendering and submit: the ids
// of the children the record had when it was loaded
type Snapshot struct {
	ChildIDs []int64 `json:"childIds"`
}

func snapshotName(entity string, id int64) string {
	return "form:" + entity + ":" + strconv.FormatInt(id, 10)
}

// SaveSnapshot remembers the child ids of entity id for this browser
func SaveSnapshot(ctx context.Context, b *uistate.Browser, entity string, id int64, childIDs []int64, ttl time.Duration) error {
	if childIDs == nil {
		childIDs = []int64{}
	}
	return b.Save(ctx, snapshotName(entity, id), Snapshot{ChildIDs: childIDs}, ttl)
}

// ForgetSnapshot drops the snapshot once the form was submitted
func ForgetSnapshot(ctx context.Context, b *uistate.Browser, entity string, id int64) error {
	return b.Forget(ctx, snapshotName(entity, id))
}

// ExistingIDs returns the child ids captured when the form was loaded.
// When the snapshot is gone (expired, other browser) fetch is used.
func ExistingIDs(ctx context.Context, b *uistate.Browser, entity string, id int64, fetch func(context.Context) ([]int64, error)) ([]int64, error) {
	var snap Snapshot
	ok, err := b.Load(ctx, snapshotName(entity, id), &snap)
	if err != nil {
		logging.Logger.Warn("failed to read form snapshot",
			zap.String("entity", entity),
			zap.Int64("id", id),
			zap.Error(err))
	}
	if ok {
		return snap.ChildIDs, nil
	}
	return fetch(ctx)
}
