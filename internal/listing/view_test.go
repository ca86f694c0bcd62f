package listing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/instituto-brotar/painel-brotar/internal/models"
	"github.com/instituto-brotar/painel-brotar/internal/uistate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource[T any] struct {
	items []T
	err   error
	calls int
}

func (s *fakeSource[T]) GetAll(context.Context) ([]T, error) {
	s.calls++
	return s.items, s.err
}

type fakeDeleter struct {
	deleted []int64
	err     error
}

func (d *fakeDeleter) Delete(_ context.Context, id int64) error {
	if d.err != nil {
		return d.err
	}
	d.deleted = append(d.deleted, id)
	return nil
}

func producers() []models.Producer {
	return []models.Producer{
		{ID: 1, Name: "Maria da Silva", CPF: "52998224725"},
		{ID: 2, Name: "José Pereira", CPF: "11144477735"},
		{ID: 3, Name: "Ana Maria Souza", CPF: "39053344705"},
	}
}

func newBrowser() *uistate.Browser {
	return uistate.ForBrowser(uistate.NewMemoryStore(), "browser-1")
}

func TestView_VisitFetchesEveryTime(t *testing.T) {
	ctx := context.Background()
	browser := newBrowser()
	src := &fakeSource[models.Producer]{items: producers()}

	for i := 1; i <= 3; i++ {
		v := NewView[models.Producer]("producers", browser, time.Minute)
		require.NoError(t, v.Visit(ctx, src))
		assert.Len(t, v.Items(), 3)
		assert.Equal(t, i, src.calls)
	}
}

func TestView_VisitAfterDeleteShowsSnapshotOnce(t *testing.T) {
	ctx := context.Background()
	browser := newBrowser()
	src := &fakeSource[models.Producer]{items: producers()}

	deleting := NewView[models.Producer]("producers", browser, time.Minute)
	require.NoError(t, deleting.Visit(ctx, src))
	require.NoError(t, deleting.RequestDelete(ctx, 2))
	require.NoError(t, deleting.ConfirmDelete(ctx, 2, true, &fakeDeleter{}))

	after := NewView[models.Producer]("producers", browser, time.Minute)
	require.NoError(t, after.Visit(ctx, src))
	assert.Equal(t, 1, src.calls)
	assert.Len(t, after.Items(), 2)
	_, found := after.Find(2)
	assert.False(t, found)

	next := NewView[models.Producer]("producers", browser, time.Minute)
	require.NoError(t, next.Visit(ctx, src))
	assert.Equal(t, 2, src.calls)
	assert.Len(t, next.Items(), 3)
}

func TestDiscard_DropsSnapshotAndPendingDelete(t *testing.T) {
	ctx := context.Background()
	browser := newBrowser()
	v := NewView[models.Producer]("producers", browser, time.Minute)
	v.Set(ctx, producers())
	require.NoError(t, v.RequestDelete(ctx, 1))

	Discard(ctx, browser, "producers")

	src := &fakeSource[models.Producer]{items: producers()}
	again := NewView[models.Producer]("producers", browser, time.Minute)
	require.NoError(t, again.Load(ctx, src))
	assert.Equal(t, 1, src.calls)
	_, pending := again.PendingDelete(ctx)
	assert.False(t, pending)
}

func TestView_NilListIsEmpty(t *testing.T) {
	v := NewView[models.Producer]("producers", newBrowser(), 0)
	require.NoError(t, v.Load(context.Background(), &fakeSource[models.Producer]{}))
	assert.NotNil(t, v.Items())
	assert.Empty(t, v.Items())
}

func TestView_LoadError(t *testing.T) {
	v := NewView[models.Producer]("producers", newBrowser(), 0)
	err := v.Load(context.Background(), &fakeSource[models.Producer]{err: errors.New("timeout")})
	assert.Error(t, err)
	assert.Empty(t, v.Items())
}

func TestView_Filter(t *testing.T) {
	v := NewView[models.Producer]("producers", newBrowser(), 0)
	v.Set(context.Background(), producers())

	tests := []struct {
		name string
		term string
		want []int64
	}{
		{name: "empty term keeps all", term: "  ", want: []int64{1, 2, 3}},
		{name: "name ignoring case", term: "MARIA", want: []int64{1, 3}},
		{name: "cpf digits", term: "11144", want: []int64{2}},
		{name: "masked cpf", term: "529.982", want: []int64{1}},
		{name: "no match", term: "Zé", want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []int64{}
			for _, p := range v.Filter(tt.term, ProducerName, ProducerCPF) {
				got = append(got, p.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestView_DeleteRequiresConfirmation(t *testing.T) {
	ctx := context.Background()
	v := NewView[models.Producer]("producers", newBrowser(), 0)
	v.Set(ctx, producers())
	deleter := &fakeDeleter{}

	err := v.ConfirmDelete(ctx, 2, true, deleter)
	assert.ErrorIs(t, err, models.ErrDeleteNotConfirmed, "no pending request")

	require.NoError(t, v.RequestDelete(ctx, 2))
	assert.Empty(t, deleter.deleted, "requesting does not call the backend")

	err = v.ConfirmDelete(ctx, 3, true, deleter)
	assert.ErrorIs(t, err, models.ErrDeleteNotConfirmed, "id must match the pending request")

	err = v.ConfirmDelete(ctx, 2, false, deleter)
	assert.ErrorIs(t, err, models.ErrDeleteNotConfirmed, "declined")
	assert.Empty(t, deleter.deleted)

	require.NoError(t, v.ConfirmDelete(ctx, 2, true, deleter))
	assert.Equal(t, []int64{2}, deleter.deleted)
	_, found := v.Find(2)
	assert.False(t, found)
	assert.Len(t, v.Items(), 2)

	_, pending := v.PendingDelete(ctx)
	assert.False(t, pending)
}

func TestView_CancelDelete(t *testing.T) {
	ctx := context.Background()
	v := NewView[models.Producer]("producers", newBrowser(), 0)
	v.Set(ctx, producers())
	deleter := &fakeDeleter{}

	require.NoError(t, v.RequestDelete(ctx, 1))
	require.NoError(t, v.CancelDelete(ctx))

	assert.ErrorIs(t, v.ConfirmDelete(ctx, 1, true, deleter), models.ErrDeleteNotConfirmed)
	assert.Empty(t, deleter.deleted)
	assert.Len(t, v.Items(), 3)
}

func TestView_FailedDeleteLeavesListUntouched(t *testing.T) {
	ctx := context.Background()
	v := NewView[models.Producer]("producers", newBrowser(), 0)
	v.Set(ctx, producers())

	require.NoError(t, v.RequestDelete(ctx, 1))
	err := v.ConfirmDelete(ctx, 1, true, &fakeDeleter{err: errors.New("possui propriedades")})
	require.Error(t, err)
	assert.Len(t, v.Items(), 3)
}

func TestView_RemoveUpdatesSnapshotOfFreshView(t *testing.T) {
	ctx := context.Background()
	browser := newBrowser()
	NewView[models.Producer]("producers", browser, 0).Set(ctx, producers())

	deleting := NewView[models.Producer]("producers", browser, 0)
	require.NoError(t, deleting.RequestDelete(ctx, 3))
	require.NoError(t, deleting.ConfirmDelete(ctx, 3, true, &fakeDeleter{}))

	src := &fakeSource[models.Producer]{}
	reloaded := NewView[models.Producer]("producers", browser, 0)
	require.NoError(t, reloaded.Load(ctx, src))
	assert.Zero(t, src.calls)
	assert.Len(t, reloaded.Items(), 2)
}

func TestView_RequestDeleteRejectsInvalidID(t *testing.T) {
	v := NewView[models.Producer]("producers", newBrowser(), 0)
	assert.ErrorIs(t, v.RequestDelete(context.Background(), 0), models.ErrInvalidID)
}
