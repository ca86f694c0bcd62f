package forms

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/instituto-brotar/painel-brotar/internal/models"
	"github.com/instituto-brotar/painel-brotar/internal/uistate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainForm(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		f := DomainForm{Name: "Tr", Group: "FERRAMENTAS"}
		assert.Equal(t, map[string]string{
			"name":  "Nome deve ter no mínimo 3 caracteres",
			"group": "Selecione um grupo",
		}, f.Validate().FieldErrors())
	})

	t.Run("payload", func(t *testing.T) {
		f, err := ParseDomainForm(url.Values{"name": {" Trator "}, "group": {models.GroupMachinery}})
		require.NoError(t, err)
		require.True(t, f.Validate().IsValid)

		raw, err := json.Marshal(f.Payload())
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Trator","group":"MAQUINAS","description":null}`, string(raw))
	})
}

func TestAdminForm_Validate(t *testing.T) {
	tests := []struct {
		name     string
		form     AdminForm
		creating bool
		want     map[string]string
	}{
		{name: "valid create", form: AdminForm{Name: "Ana Lima", Email: "ana@brotar.org", Password: "segura123"}, creating: true, want: map[string]string{}},
		{name: "short password", form: AdminForm{Name: "Ana Lima", Email: "ana@brotar.org", Password: "1234567"}, creating: true, want: map[string]string{"password": "Senha deve ter ao menos 8 caracteres"}},
		{name: "update ignores password", form: AdminForm{Name: "Ana Lima", Email: "ana@brotar.org"}, want: map[string]string{}},
		{name: "bad email", form: AdminForm{Name: "Ana Lima", Email: "ana@"}, want: map[string]string{"email": "Email inválido"}},
		{name: "short name", form: AdminForm{Name: "An", Email: "ana@brotar.org"}, want: map[string]string{"name": "Nome obrigatório"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.form.Validate(tt.creating).FieldErrors())
		})
	}
}

func TestAdminForm_Payloads(t *testing.T) {
	f := AdminForm{Name: " Ana ", Email: "ana@brotar.org ", Password: "segura123"}

	create, err := json.Marshal(f.CreatePayload())
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ana","email":"ana@brotar.org","password":"segura123"}`, string(create))

	update, err := json.Marshal(f.UpdatePayload())
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ana","email":"ana@brotar.org"}`, string(update))
}

func TestPasswordForm_Validate(t *testing.T) {
	tests := []struct {
		name    string
		form    PasswordForm
		confirm bool
		want    map[string]string
	}{
		{name: "matching", form: PasswordForm{NewPassword: "novaSenha1", ConfirmPassword: "novaSenha1"}, confirm: true, want: map[string]string{}},
		{name: "mismatch", form: PasswordForm{NewPassword: "novaSenha1", ConfirmPassword: "novaSenha2"}, confirm: true, want: map[string]string{"confirmPassword": "A confirmação de senha não confere."}},
		{name: "too short", form: PasswordForm{NewPassword: "curta"}, want: map[string]string{"newPassword": "A senha deve ter no mínimo 8 caracteres."}},
		{name: "confirmation not asked", form: PasswordForm{NewPassword: "novaSenha1"}, want: map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.form.Validate(tt.confirm).FieldErrors())
		})
	}
}

func TestExistingIDs(t *testing.T) {
	ctx := context.Background()
	browser := uistate.ForBrowser(uistate.NewMemoryStore(), "b1")

	fetched := 0
	fetch := func(context.Context) ([]int64, error) {
		fetched++
		return []int64{9}, nil
	}

	ids, err := ExistingIDs(ctx, browser, "producer", 5, fetch)
	require.NoError(t, err)
	assert.Equal(t, []int64{9}, ids, "falls back to the backend without a snapshot")
	assert.Equal(t, 1, fetched)

	require.NoError(t, SaveSnapshot(ctx, browser, "producer", 5, []int64{1, 2, 3}, time.Minute))
	ids, err = ExistingIDs(ctx, browser, "producer", 5, fetch)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)
	assert.Equal(t, 1, fetched)

	other := uistate.ForBrowser(browser.Store(), "b2")
	_, err = ExistingIDs(ctx, other, "producer", 5, func(context.Context) ([]int64, error) {
		return nil, errors.New("offline")
	})
	assert.Error(t, err, "snapshots are per browser")

	require.NoError(t, ForgetSnapshot(ctx, browser, "producer", 5))
	_, err = ExistingIDs(ctx, browser, "producer", 5, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, fetched)
}

func TestSaveSnapshot_EmptyChildren(t *testing.T) {
	ctx := context.Background()
	browser := uistate.ForBrowser(uistate.NewMemoryStore(), "b1")

	require.NoError(t, SaveSnapshot(ctx, browser, "property", 3, nil, time.Minute))
	ids, err := ExistingIDs(ctx, browser, "property", 3, func(context.Context) ([]int64, error) {
		t.Fatal("snapshot should be used")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Empty(t, ids)
}
