package forms

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/instituto-brotar/painel-brotar/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChildStore struct {
	calls  []string
	failOn string
}

func (s *fakeChildStore) record(call string) error {
	s.calls = append(s.calls, call)
	if call == s.failOn {
		return errors.New("backend unavailable")
	}
	return nil
}

func (s *fakeChildStore) Create(_ context.Context, payload interface{}) (*models.FamilyMember, error) {
	p := payload.(models.FamilyMemberPayload)
	if err := s.record("create " + p.Name); err != nil {
		return nil, err
	}
	return &models.FamilyMember{Name: p.Name}, nil
}

func (s *fakeChildStore) Update(_ context.Context, id int64, _ interface{}) (*models.FamilyMember, error) {
	if err := s.record(fmt.Sprintf("update %d", id)); err != nil {
		return nil, err
	}
	return &models.FamilyMember{ID: id}, nil
}

func (s *fakeChildStore) Delete(_ context.Context, id int64) error {
	return s.record(fmt.Sprintf("delete %d", id))
}

func memberRows(t *testing.T, producerID int64, rows ...FamilyMemberRow) []ChildRow {
	t.Helper()
	f := ProducerForm{FamilyMembers: rows}
	out, err := f.FamilyRows(producerID)
	require.NoError(t, err)
	return out
}

func TestReconcile_DeletesBeforeWrites(t *testing.T) {
	store := &fakeChildStore{}
	rows := memberRows(t, 10,
		FamilyMemberRow{ID: 1, Name: "Ana", Kinship: models.KinshipSpouse},
		FamilyMemberRow{ID: 3, Name: "Caio", Kinship: models.KinshipChild},
		FamilyMemberRow{Name: "Duda", Kinship: models.KinshipChild},
	)

	result, err := Reconcile[models.FamilyMember](context.Background(), "family_member", store, 10, []int64{1, 2, 3}, rows)
	require.NoError(t, err)

	assert.Equal(t, []string{"delete 2", "update 1", "update 3", "create Duda"}, store.calls)
	assert.Equal(t, []int64{2}, result.Deleted)
	assert.Equal(t, []int64{1, 3}, result.Updated)
	assert.Equal(t, 1, result.Created)
}

func TestReconcile_EmptySubmissionDeletesEverything(t *testing.T) {
	store := &fakeChildStore{}

	_, err := Reconcile[models.FamilyMember](context.Background(), "family_member", store, 10, []int64{4, 5}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"delete 4", "delete 5"}, store.calls)
}

func TestReconcile_StopsAtFirstFailure(t *testing.T) {
	store := &fakeChildStore{failOn: "update 1"}
	rows := memberRows(t, 10,
		FamilyMemberRow{ID: 1, Name: "Ana", Kinship: models.KinshipSpouse},
		FamilyMemberRow{Name: "Duda", Kinship: models.KinshipChild},
	)

	result, err := Reconcile[models.FamilyMember](context.Background(), "family_member", store, 10, []int64{1, 2}, rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to update family_member 1")

	assert.Equal(t, []string{"delete 2", "update 1"}, store.calls, "no call after the failed one")
	assert.Equal(t, []int64{2}, result.Deleted, "applied deletes are not rolled back")
	assert.Zero(t, result.Created)
}

func TestReconcile_RequiresParent(t *testing.T) {
	store := &fakeChildStore{}
	_, err := Reconcile[models.FamilyMember](context.Background(), "family_member", store, 0, []int64{1}, nil)
	assert.ErrorIs(t, err, models.ErrMissingParentID)
	assert.Empty(t, store.calls)
}

func TestDeletedIDs(t *testing.T) {
	tests := []struct {
		name     string
		existing []int64
		rows     []ChildRow
		want     []int64
	}{
		{name: "nothing existed", existing: nil, rows: []ChildRow{{ID: 0}}, want: []int64{}},
		{name: "all kept", existing: []int64{1, 2}, rows: []ChildRow{{ID: 2}, {ID: 1}}, want: []int64{}},
		{name: "new rows do not protect ids", existing: []int64{1}, rows: []ChildRow{{ID: 0}}, want: []int64{1}},
		{name: "order of existing", existing: []int64{9, 3, 5}, rows: []ChildRow{{ID: 3}}, want: []int64{9, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeletedIDs(tt.existing, tt.rows))
		})
	}
}
