package settings

import (
	"context"
	"errors"
	"testing"
)

type memStore struct {
	saved   *Settings
	saveErr error
}

func (s *memStore) LoadSettings(context.Context) (*Settings, error) { return s.saved, nil }

func (s *memStore) SaveSettings(_ context.Context, v *Settings) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	cp := *v
	s.saved = &cp
	return nil
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Settings) {}, wantErr: false},
		{name: "dark theme", mutate: func(s *Settings) { s.Theme = ThemeDark }, wantErr: false},
		{name: "unknown theme", mutate: func(s *Settings) { s.Theme = "neon" }, wantErr: true},
		{name: "engine without placeholder", mutate: func(s *Settings) { s.SearchEngine = "https://x" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Defaults()
			tt.mutate(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidSettings) {
				t.Errorf("Validate() error should wrap ErrInvalidSettings, got %v", err)
			}
		})
	}
}

func TestUpdateNotifiesAndPersists(t *testing.T) {
	store := &memStore{}
	m := NewManager(store, Defaults())

	var calls int
	var gotOld, gotNew Settings
	unsubscribe := m.Subscribe(func(prev, next Settings) {
		calls++
		gotOld, gotNew = prev, next
	})

	updated, err := m.Update(context.Background(), func(s *Settings) { s.Theme = ThemeDark })
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Theme != ThemeDark || m.Get().Theme != ThemeDark {
		t.Errorf("theme not applied: %+v", m.Get())
	}
	if calls != 1 || gotOld.Theme != ThemeSystem || gotNew.Theme != ThemeDark {
		t.Errorf("listener calls=%d old=%q new=%q", calls, gotOld.Theme, gotNew.Theme)
	}
	if store.saved == nil || store.saved.Theme != ThemeDark {
		t.Errorf("settings not persisted: %+v", store.saved)
	}

	unsubscribe()
	unsubscribe() // idempotent

	if _, err := m.Update(context.Background(), func(s *Settings) { s.Theme = ThemeLight }); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("unsubscribed listener was called, calls=%d", calls)
	}
}

func TestUpdateRejectsInvalid(t *testing.T) {
	m := NewManager(nil, Defaults())
	called := false
	m.Subscribe(func(Settings, Settings) { called = true })

	_, err := m.Update(context.Background(), func(s *Settings) { s.Theme = "neon" })
	if !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("Update() error = %v, want ErrInvalidSettings", err)
	}
	if m.Get().Theme != ThemeSystem {
		t.Errorf("invalid update leaked: %+v", m.Get())
	}
	if called {
		t.Error("listener should not be notified on rejected update")
	}
}

func TestUpdateStoreFailureKeepsState(t *testing.T) {
	m := NewManager(&memStore{saveErr: errors.New("boom")}, Defaults())

	if _, err := m.Update(context.Background(), func(s *Settings) { s.Beep = true }); err == nil {
		t.Fatal("Update() should fail when store fails")
	}
	if m.Get().Beep {
		t.Error("failed update must not change current settings")
	}
}

func TestLoad(t *testing.T) {
	stored := Defaults()
	stored.Theme = ThemeLight
	stored.SaveHistory = false

	m := NewManager(&memStore{saved: &stored}, Defaults())
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := m.Get(); got.Theme != ThemeLight || got.SaveHistory {
		t.Errorf("Load() = %+v", got)
	}

	empty := NewManager(&memStore{}, Defaults())
	if err := empty.Load(context.Background()); err != nil {
		t.Fatalf("Load() with empty store error = %v", err)
	}
	if empty.Get() != Defaults() {
		t.Errorf("empty store should keep defaults, got %+v", empty.Get())
	}
}
