package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/MrSnakeDoc/qrhist/internal/effects"
)

// Theme is the app color scheme.
type Theme string

const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
)

var ErrInvalidSettings = errors.New("invalid settings")

// Settings are the user preferences shared by every screen.
type Settings struct {
	Theme        Theme  `json:"theme"`
	SearchEngine string `json:"search_engine"` // URL template, %s is the escaped query
	SaveHistory  bool   `json:"save_history"`
	Vibrate      bool   `json:"vibrate"`
	Beep         bool   `json:"beep"`
}

// Defaults returns the factory preferences.
func Defaults() Settings {
	return Settings{
		Theme:        ThemeSystem,
		SearchEngine: effects.DefaultSearchEngine,
		SaveHistory:  true,
		Vibrate:      true,
		Beep:         false,
	}
}

// Validate checks theme and search engine template.
func (s Settings) Validate() error {
	switch s.Theme {
	case ThemeSystem, ThemeLight, ThemeDark:
	default:
		return fmt.Errorf("%w: unknown theme %q", ErrInvalidSettings, s.Theme)
	}
	if !strings.Contains(s.SearchEngine, "%s") {
		return fmt.Errorf("%w: search engine must contain %%s", ErrInvalidSettings)
	}
	return nil
}

// Store persists settings.
type Store interface {
	LoadSettings(ctx context.Context) (*Settings, error) // nil, nil when nothing is stored
	SaveSettings(ctx context.Context, s *Settings) error
}

// Listener is notified with the previous and new settings after a change.
type Listener func(prev, next Settings)

// Manager holds the shared settings and notifies subscribers on change.
type Manager struct {
	mu        sync.RWMutex
	current   Settings
	store     Store
	listeners map[int]Listener
	nextID    int
}

// NewManager creates a manager seeded with defaults. store may be nil.
func NewManager(store Store, defaults Settings) *Manager {
	return &Manager{
		current:   defaults,
		store:     store,
		listeners: make(map[int]Listener),
	}
}

// Load replaces the current settings with the persisted ones, if any.
// Invalid persisted settings return an error and the current values are kept.
func (m *Manager) Load(ctx context.Context) error {
	if m.store == nil {
		return nil
	}
	stored, err := m.store.LoadSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if stored == nil {
		return nil
	}
	if err := stored.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	m.current = *stored
	m.mu.Unlock()
	return nil
}

// Get returns a copy of the current settings.
func (m *Manager) Get() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Update applies fn to a copy, validates, persists and notifies listeners.
// On error the current settings are left untouched.
func (m *Manager) Update(ctx context.Context, fn func(*Settings)) (Settings, error) {
	m.mu.Lock()
	old := m.current
	next := old
	fn(&next)

	if err := next.Validate(); err != nil {
		m.mu.Unlock()
		return old, err
	}
	if m.store != nil {
		if err := m.store.SaveSettings(ctx, &next); err != nil {
			m.mu.Unlock()
			return old, fmt.Errorf("failed to save settings: %w", err)
		}
	}
	m.current = next

	listeners := make([]Listener, 0, len(m.listeners))
	for _, l := range m.listeners {
		listeners = append(listeners, l)
	}
	m.mu.Unlock()

	// Notify outside the lock so listeners may call Get.
	for _, l := range listeners {
		l(old, next)
	}
	return next, nil
}

// Subscribe registers l and returns a function that removes it.
func (m *Manager) Subscribe(l Listener) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = l
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.listeners, id)
			m.mu.Unlock()
		})
	}
}
