package cli

import (
	"fmt"
	"os"

	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/core/pkg/zstore"
	"github.com/zarlcorp/zform/internal/employee"
	"github.com/zarlcorp/zform/internal/store"
	"go.uber.org/zap"
)

const (
	stateCollection     = "state"
	employeesCollection = "employees"
)

// Session bundles the persisted store and the employee registry opened
// from one vault.
type Session struct {
	Store    *store.Store
	Registry *employee.Registry

	// Degraded is set when the vault could not be opened and the session
	// runs in memory only.
	Degraded error

	vault *zstore.Store
}

// OpenDir opens the vault in dir, creating it on first run.
func OpenDir(dir, passphrase string, log *zap.Logger) (*Session, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return Open(zfilesystem.NewOSFileSystem(dir), passphrase, log)
}

// Open opens the vault on fsys and restores the persisted record.
func Open(fsys zfilesystem.ReadWriteFileFS, passphrase string, log *zap.Logger) (*Session, error) {
	s, err := zstore.Open(fsys, []byte(passphrase))
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}

	stateCol, err := zstore.NewCollection[store.Record](s, stateCollection)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("open vault: %w", err)
	}

	empCol, err := zstore.NewCollection[employee.Employee](s, employeesCollection)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("open vault: %w", err)
	}

	st := store.New(stateCol, log)
	st.Load()

	return &Session{
		Store:    st,
		Registry: employee.NewRegistry(empCol),
		vault:    s,
	}, nil
}

// Memory returns a session with default state and no registry. reason is
// kept so views can explain why nothing is saved.
func Memory(reason error, log *zap.Logger) *Session {
	return &Session{
		Store:    store.New(nil, log),
		Registry: employee.NewRegistry(nil),
		Degraded: reason,
	}
}

// Close releases the vault.
func (s *Session) Close() {
	if s.vault != nil {
		s.vault.Close()
		s.vault = nil
	}
}
