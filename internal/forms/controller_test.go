package forms

import (
	"errors"
	"testing"

	"github.com/instituto-brotar/painel-brotar/internal/apiclient"
	"github.com/instituto-brotar/painel-brotar/internal/models"
	"github.com/instituto-brotar/painel-brotar/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invalidResult() *utils.ValidationResult {
	r := utils.NewValidationResult()
	r.AddError("name", "Nome é obrigatório")
	return r
}

func TestController_NewEntityLifecycle(t *testing.T) {
	c := NewController(0)
	assert.True(t, c.IsNew())
	assert.Equal(t, StateIdleNew, c.State())

	require.NoError(t, c.Loaded())
	assert.Equal(t, StateReady, c.State())

	require.NoError(t, c.Submit(utils.NewValidationResult()))
	assert.Equal(t, StateSubmitting, c.State())

	require.NoError(t, c.Succeed(42))
	assert.Equal(t, StateReady, c.State())
	assert.Equal(t, int64(42), c.ID())
}

func TestController_ExistingEntityLifecycle(t *testing.T) {
	c := NewController(7)
	assert.ErrorIs(t, c.Loaded(), models.ErrInvalidTransition, "an existing record must be fetched first")

	require.NoError(t, c.Load())
	assert.Equal(t, StateLoadingExisting, c.State())
	require.NoError(t, c.Loaded())
	assert.Equal(t, StateReady, c.State())
}

func TestController_InvalidSubmitStaysReady(t *testing.T) {
	c := Resume(0)

	err := c.Submit(invalidResult())
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, StateReady, c.State())
	assert.Equal(t, map[string]string{"name": "Nome é obrigatório"}, c.FieldErrors())

	require.NoError(t, c.Submit(utils.NewValidationResult()))
	assert.Empty(t, c.FieldErrors())
}

func TestController_FailureAndRetry(t *testing.T) {
	c := Resume(3)
	require.NoError(t, c.Submit(nil))

	backendErr := &apiclient.APIError{Status: 400, Messages: []string{"CPF já cadastrado", "outro"}}
	require.NoError(t, c.Fail(backendErr))
	assert.Equal(t, StateError, c.State())
	assert.False(t, c.LoadFailed())
	assert.Equal(t, "CPF já cadastrado", c.Message("Erro ao salvar alterações."))

	require.NoError(t, c.Retry())
	assert.Equal(t, StateReady, c.State())
	assert.NoError(t, c.Err())
}

func TestController_GenericFallbackMessage(t *testing.T) {
	c := Resume(0)
	require.NoError(t, c.Submit(nil))
	require.NoError(t, c.Fail(errors.New("connection refused")))

	assert.Equal(t, "Erro ao criar produtor.", c.Message("Erro ao criar produtor."))
}

func TestController_LoadFailure(t *testing.T) {
	c := NewController(9)
	require.NoError(t, c.Load())
	require.NoError(t, c.Fail(models.ErrNotFound))

	assert.True(t, c.LoadFailed())
	assert.ErrorIs(t, c.Retry(), models.ErrInvalidTransition)

	require.NoError(t, c.Load())
	assert.Equal(t, StateLoadingExisting, c.State())
}

func TestController_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name string
		run  func(c *Controller) error
	}{
		{name: "submit before load", run: func(c *Controller) error { return c.Submit(nil) }},
		{name: "succeed without submit", run: func(c *Controller) error { return c.Succeed(1) }},
		{name: "fail while idle", run: func(c *Controller) error { return c.Fail(errors.New("x")) }},
		{name: "retry without error", run: func(c *Controller) error { return c.Retry() }},
		{name: "load a new entity", run: func(c *Controller) error { return c.Load() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(0)
			assert.ErrorIs(t, tt.run(c), models.ErrInvalidTransition)
			assert.Equal(t, StateIdleNew, c.State())
		})
	}
}
