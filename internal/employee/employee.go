// Package employee holds accepted registrations and the registry they are
// saved to.
package employee

import (
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/zarlcorp/core/pkg/zcrypto"
	"github.com/zarlcorp/zform/internal/form"
)

// ErrUnavailable is returned when the registry has no backing collection.
var ErrUnavailable = errors.New("registry unavailable")

// Employee is one accepted registration.
type Employee struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	EmployeeID string    `json:"employee_id,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Location   string    `json:"location,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Name returns the display name.
func (e Employee) Name() string {
	return e.FirstName + " " + e.LastName
}

// FromDraft builds a record from an accepted draft with trimmed values.
func FromDraft(d form.Draft, now time.Time) (Employee, error) {
	id, err := newID()
	if err != nil {
		return Employee{}, err
	}

	return Employee{
		ID:         id,
		FirstName:  strings.TrimSpace(d.FirstName),
		LastName:   strings.TrimSpace(d.LastName),
		Email:      strings.TrimSpace(d.Email),
		EmployeeID: strings.TrimSpace(d.EmployeeID),
		Phone:      strings.TrimSpace(d.Phone),
		Location:   strings.TrimSpace(d.Location),
		CreatedAt:  now.UTC(),
	}, nil
}

// Collection is the storage a Registry writes to.
// *zstore.Collection[Employee] satisfies it.
type Collection interface {
	Put(key string, e Employee) error
	List() ([]Employee, error)
}

// Registry stores accepted registrations.
type Registry struct {
	col Collection
	now func() time.Time
}

// NewRegistry wraps col. A nil col yields a registry that rejects writes
// with ErrUnavailable.
func NewRegistry(col Collection) *Registry {
	return &Registry{col: col, now: time.Now}
}

// Available reports whether the registry can persist records.
func (r *Registry) Available() bool {
	return r != nil && r.col != nil
}

// Add records an accepted draft and returns the saved record.
func (r *Registry) Add(d form.Draft) (Employee, error) {
	if !r.Available() {
		return Employee{}, ErrUnavailable
	}

	e, err := FromDraft(d, r.now())
	if err != nil {
		return Employee{}, fmt.Errorf("add employee: %w", err)
	}

	if err := r.col.Put(e.ID, e); err != nil {
		return Employee{}, fmt.Errorf("add employee: %w", err)
	}
	return e, nil
}

// List returns all records, newest first.
func (r *Registry) List() ([]Employee, error) {
	if !r.Available() {
		return nil, ErrUnavailable
	}

	all, err := r.col.List()
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	// zstore.List does not guarantee order
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, nil
}

// newID returns an 8-character hex id.
func newID() (string, error) {
	b, err := zcrypto.RandBytes(4)
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
