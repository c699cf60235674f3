// Package form implements the registration form controller: the draft, the
// per-field errors, the touched set and the Editing/Submitted state machine.
package form

import (
	"github.com/zarlcorp/zform/internal/store"
	"github.com/zarlcorp/zform/internal/validate"
)

// State is the controller state.
type State int

const (
	Editing State = iota
	Submitted
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Submitted:
		return "submitted"
	}
	return "unknown"
}

// Draft is the in-progress registration input. Raw values are kept as typed.
type Draft struct {
	FirstName  string
	LastName   string
	Email      string
	EmployeeID string
	Phone      string
	Location   string
}

// Values returns the draft keyed by field name.
func (d Draft) Values() map[string]string {
	return map[string]string{
		validate.FirstName:  d.FirstName,
		validate.LastName:   d.LastName,
		validate.Email:      d.Email,
		validate.EmployeeID: d.EmployeeID,
		validate.Phone:      d.Phone,
		validate.Location:   d.Location,
	}
}

// Get returns the raw value of a field.
func (d Draft) Get(field string) string {
	return d.Values()[field]
}

// set overwrites a field; unknown fields are ignored.
func (d *Draft) set(field, value string) {
	switch field {
	case validate.FirstName:
		d.FirstName = value
	case validate.LastName:
		d.LastName = value
	case validate.Email:
		d.Email = value
	case validate.EmployeeID:
		d.EmployeeID = value
	case validate.Phone:
		d.Phone = value
	case validate.Location:
		d.Location = value
	}
}

// ProfileSink receives the result of an accepted submission.
// *store.Store satisfies it.
type ProfileSink interface {
	UpdateProfile(store.ProfilePatch)
	IncrementProjects()
}

// Controller drives one registration attempt at a time.
type Controller struct {
	sink    ProfileSink
	state   State
	draft   Draft
	errors  map[string]string
	touched map[string]bool
}

// New returns a controller in the Editing state with an empty draft.
func New(sink ProfileSink) *Controller {
	c := &Controller{sink: sink}
	c.Reset()
	return c
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Draft returns a copy of the current draft.
func (c *Controller) Draft() Draft { return c.draft }

// Error returns the stored error for a field, displayed or not.
func (c *Controller) Error(field string) string { return c.errors[field] }

// Errors returns a copy of the stored errors.
func (c *Controller) Errors() map[string]string {
	out := make(map[string]string, len(c.errors))
	for f, msg := range c.errors {
		out[f] = msg
	}
	return out
}

// Touched reports whether the user has interacted with field.
func (c *Controller) Touched(field string) bool { return c.touched[field] }

// ShouldShow reports whether the error for field is visible.
func (c *Controller) ShouldShow(field string) bool {
	return c.touched[field] && c.errors[field] != ""
}

// Message returns the visible error for field, or "".
func (c *Controller) Message(field string) string {
	if !c.ShouldShow(field) {
		return ""
	}
	return c.errors[field]
}

// Change overwrites a draft field. Touched fields are revalidated at once;
// untouched fields keep no error until blurred or submitted.
func (c *Controller) Change(field, value string) {
	if c.state != Editing {
		return
	}
	c.draft.set(field, value)
	if c.touched[field] {
		c.revalidate(field)
	}
}

// Blur overwrites a draft field, marks it touched and revalidates it.
func (c *Controller) Blur(field, value string) {
	if c.state != Editing {
		return
	}
	c.draft.set(field, value)
	c.touched[field] = true
	c.revalidate(field)
}

// Submit touches and validates every field. An error-free draft is sent to
// the sink and the controller moves to Submitted; otherwise it stays in
// Editing with the errors now visible. It reports whether the draft was
// accepted.
func (c *Controller) Submit() bool {
	if c.state != Editing {
		return false
	}

	for _, f := range validate.Fields {
		c.touched[f] = true
	}
	c.errors = validate.All(c.draft.Values())
	if len(c.errors) > 0 {
		return false
	}

	name := c.draft.FirstName + " " + c.draft.LastName
	email := c.draft.Email
	c.sink.UpdateProfile(store.ProfilePatch{Name: &name, Email: &email})
	c.sink.IncrementProjects()
	c.state = Submitted
	return true
}

// Reset clears the draft, errors and touched set and returns to Editing.
func (c *Controller) Reset() {
	c.state = Editing
	c.draft = Draft{}
	c.errors = make(map[string]string)
	c.touched = make(map[string]bool)
}

func (c *Controller) revalidate(field string) {
	if msg := validate.Field(field, c.draft.Get(field)); msg != "" {
		c.errors[field] = msg
		return
	}
	delete(c.errors, field)
}
