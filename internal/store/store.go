// Package store provides the persisted profile, settings and usage record.
// The record is held in memory and rewritten to its backend after every
// mutation; backend failures never reach the caller.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Namespace is the key the record is persisted under.
const Namespace = "zform-user"

// Theme is the display theme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

const (
	defaultName     = "Guest"
	scorePerVisit   = 5
	maxSessionScore = 100
)

// ErrNoBackend is returned by Flush when the store runs in memory only.
var ErrNoBackend = errors.New("store has no backend")

// Profile is the user shown across the views.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Settings holds display preferences.
type Settings struct {
	Theme         Theme `json:"theme"`
	Notifications bool  `json:"notifications"`
}

// Stats holds usage counters. Both only ever grow.
type Stats struct {
	TotalVisits     int `json:"totalVisits"`
	ProjectsCreated int `json:"projectsCreated"`
}

// Record is the single persisted unit.
type Record struct {
	Profile  Profile  `json:"profile"`
	Settings Settings `json:"settings"`
	Stats    Stats    `json:"stats"`
}

// Default returns the record used on first run or after a failed load.
func Default() Record {
	return Record{
		Profile:  Profile{Name: defaultName},
		Settings: Settings{Theme: ThemeLight, Notifications: true},
	}
}

// ProfilePatch is a partial profile; nil fields are left unchanged.
type ProfilePatch struct {
	Name  *string
	Email *string
}

// SettingsPatch is a partial settings value; nil fields are left unchanged.
type SettingsPatch struct {
	Theme         *Theme
	Notifications *bool
}

// Backend persists the record under a key. *zstore.Collection[Record]
// satisfies it.
type Backend interface {
	Get(key string) (Record, error)
	Put(key string, r Record) error
}

// Store is the sole writer of the persisted record.
type Store struct {
	backend Backend
	log     *zap.Logger
	rec     Record
}

// New creates a store holding the default record. A nil backend keeps the
// record in memory only. Call Load to restore persisted state.
func New(backend Backend, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{backend: backend, log: log, rec: Default()}
}

// Load replaces the in-memory record with the persisted one. Any failure
// leaves the defaults in place.
func (s *Store) Load() {
	s.rec = Default()
	if s.backend == nil {
		return
	}

	rec, err := s.backend.Get(Namespace)
	if err != nil {
		s.log.Info("no persisted state, using defaults", zap.Error(err))
		return
	}

	s.rec = normalize(rec)
	s.log.Debug("state loaded",
		zap.Int("visits", s.rec.Stats.TotalVisits),
		zap.Int("projects", s.rec.Stats.ProjectsCreated))
}

// Record returns a copy of the current record.
func (s *Store) Record() Record { return s.rec }

// Profile returns the current profile.
func (s *Store) Profile() Profile { return s.rec.Profile }

// Settings returns the current settings.
func (s *Store) Settings() Settings { return s.rec.Settings }

// Stats returns the current counters.
func (s *Store) Stats() Stats { return s.rec.Stats }

// SessionScore is min(100, visits*5). It is derived and never persisted.
func (s *Store) SessionScore() int {
	return SessionScore(s.rec.Stats)
}

// SessionScore computes the display score for a set of counters.
func SessionScore(st Stats) int {
	return min(maxSessionScore, st.TotalVisits*scorePerVisit)
}

// UpdateProfile merges p into the profile.
func (s *Store) UpdateProfile(p ProfilePatch) {
	if p.Name != nil {
		s.rec.Profile.Name = *p.Name
	}
	if p.Email != nil {
		s.rec.Profile.Email = *p.Email
	}
	s.write("profile")
}

// UpdateSettings merges p into the settings.
func (s *Store) UpdateSettings(p SettingsPatch) {
	if p.Theme != nil {
		s.rec.Settings.Theme = *p.Theme
	}
	if p.Notifications != nil {
		s.rec.Settings.Notifications = *p.Notifications
	}
	s.write("settings")
}

// ToggleTheme flips between light and dark.
func (s *Store) ToggleTheme() Theme {
	next := ThemeDark
	if s.rec.Settings.Theme == ThemeDark {
		next = ThemeLight
	}
	s.UpdateSettings(SettingsPatch{Theme: &next})
	return next
}

// ToggleNotifications flips the notifications flag.
func (s *Store) ToggleNotifications() bool {
	next := !s.rec.Settings.Notifications
	s.UpdateSettings(SettingsPatch{Notifications: &next})
	return next
}

// IncrementVisits adds one visit.
func (s *Store) IncrementVisits() {
	s.rec.Stats.TotalVisits++
	s.write("visits")
}

// IncrementProjects adds one created project.
func (s *Store) IncrementProjects() {
	s.rec.Stats.ProjectsCreated++
	s.write("projects")
}

// Flush writes the current record and reports the backend error, if any.
func (s *Store) Flush() error {
	if s.backend == nil {
		return ErrNoBackend
	}
	if err := s.backend.Put(Namespace, s.rec); err != nil {
		return fmt.Errorf("flush state: %w", err)
	}
	return nil
}

// write persists after a mutation. Failures are logged and dropped; the
// in-memory record stays authoritative for the rest of the session.
func (s *Store) write(op string) {
	if s.backend == nil {
		return
	}
	if err := s.backend.Put(Namespace, s.rec); err != nil {
		s.log.Warn("persist state", zap.String("op", op), zap.Error(err))
	}
}

// Encode serializes a record in the persisted format.
func Encode(r Record) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return data, nil
}

// Decode parses a persisted record. Missing fields keep their defaults.
func Decode(data []byte) (Record, error) {
	r := Default()
	if err := json.Unmarshal(data, &r); err != nil {
		return Default(), fmt.Errorf("decode record: %w", err)
	}
	return normalize(r), nil
}

// normalize repairs values outside the defined shape.
func normalize(r Record) Record {
	if r.Settings.Theme != ThemeLight && r.Settings.Theme != ThemeDark {
		r.Settings.Theme = ThemeLight
	}
	r.Stats.TotalVisits = max(0, r.Stats.TotalVisits)
	r.Stats.ProjectsCreated = max(0, r.Stats.ProjectsCreated)
	return r
}
