package forms

import (
	"errors"
	"fmt"

	"github.com/instituto-brotar/painel-brotar/internal/apiclient"
	"github.com/instituto-brotar/painel-brotar/internal/models"
	"github.com/instituto-brotar/painel-brotar/internal/utils"
)

// State is the lifecycle position of one form instance
type State string

// Form states
const (
	StateIdleNew         State = "idle-new"
	StateLoadingExisting State = "loading-existing"
	StateReady           State = "ready"
	StateSubmitting      State = "submitting"
	StateError           State = "error"
)

// ErrValidation is returned by Submit when the submitted values fail the
// form schema. No backend call may follow.
var ErrValidation = errors.New("form has invalid fields")

// Controller drives one entity form through its states. It is not safe
// for concurrent use; each request builds its own.
type Controller struct {
	id          int64
	state       State
	err         error
	fieldErrors map[string]string
	loadFailed  bool
}

// NewController starts a form for the entity id. Zero means a new entity.
func NewController(id int64) *Controller {
	return &Controller{id: id, state: StateIdleNew}
}

// Resume returns a controller for a form that was already rendered and is
// now being posted back
func Resume(id int64) *Controller {
	return &Controller{id: id, state: StateReady}
}

// ID returns the entity id, zero for new entities
func (c *Controller) ID() int64 { return c.id }

// IsNew reports whether the form creates a new entity
func (c *Controller) IsNew() bool { return c.id == 0 }

// State returns the current state
func (c *Controller) State() State { return c.state }

// Err returns the error that moved the form into the error state
func (c *Controller) Err() error { return c.err }

// FieldErrors returns the inline messages of the last rejected submit
func (c *Controller) FieldErrors() map[string]string {
	if c.fieldErrors == nil {
		return map[string]string{}
	}
	return c.fieldErrors
}

// LoadFailed reports whether the error state came from fetching the record
func (c *Controller) LoadFailed() bool { return c.loadFailed }

func (c *Controller) transition(from []State, to State) error {
	for _, s := range from {
		if c.state == s {
			c.state = to
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", models.ErrInvalidTransition, c.state, to)
}

// Load starts fetching an existing record
func (c *Controller) Load() error {
	if c.id == 0 {
		return fmt.Errorf("%w: nothing to load for a new entity", models.ErrInvalidTransition)
	}
	if c.state == StateError && !c.loadFailed {
		return fmt.Errorf("%w: %s -> %s", models.ErrInvalidTransition, c.state, StateLoadingExisting)
	}
	if err := c.transition([]State{StateIdleNew, StateError}, StateLoadingExisting); err != nil {
		return err
	}
	c.err = nil
	c.loadFailed = false
	return nil
}

// Loaded marks the form editable, either empty for a new entity or filled
// from the fetched record
func (c *Controller) Loaded() error {
	if c.state == StateIdleNew && c.id != 0 {
		return fmt.Errorf("%w: existing entity %d was not loaded", models.ErrInvalidTransition, c.id)
	}
	return c.transition([]State{StateIdleNew, StateLoadingExisting}, StateReady)
}

// Submit moves a ready form to submitting when result is valid. An invalid
// result keeps the form ready, records the field messages and returns
// ErrValidation.
func (c *Controller) Submit(result *utils.ValidationResult) error {
	if c.state != StateReady {
		return fmt.Errorf("%w: %s -> %s", models.ErrInvalidTransition, c.state, StateSubmitting)
	}
	if result != nil && !result.IsValid {
		c.fieldErrors = result.FieldErrors()
		return ErrValidation
	}
	c.fieldErrors = nil
	return c.transition([]State{StateReady}, StateSubmitting)
}

// Succeed completes a submission. id is the entity id the backend
// assigned, kept for forms that continue with child rows.
func (c *Controller) Succeed(id int64) error {
	if err := c.transition([]State{StateSubmitting}, StateReady); err != nil {
		return err
	}
	if id > 0 {
		c.id = id
	}
	c.err = nil
	return nil
}

// Fail records a failed load or submission
func (c *Controller) Fail(err error) error {
	loading := c.state == StateLoadingExisting
	if e := c.transition([]State{StateSubmitting, StateLoadingExisting}, StateError); e != nil {
		return e
	}
	c.err = err
	c.loadFailed = loading
	return nil
}

// Retry makes a form whose submission failed editable again
func (c *Controller) Retry() error {
	if c.loadFailed {
		return fmt.Errorf("%w: reload the record instead", models.ErrInvalidTransition)
	}
	if err := c.transition([]State{StateError}, StateReady); err != nil {
		return err
	}
	c.err = nil
	return nil
}

// Message is the toast text for the current error: the first backend
// message when there is one, fallback otherwise
func (c *Controller) Message(fallback string) string {
	if c.err == nil {
		return fallback
	}
	return apiclient.MessageOr(c.err, fallback)
}
