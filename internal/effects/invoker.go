package effects

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MrSnakeDoc/qrhist/internal/domain"
)

const (
	// DefaultSearchEngine is used when no template is configured.
	DefaultSearchEngine = "https://www.google.com/search?q=%s"
	// DefaultEventDuration is applied to calendar events without an end.
	DefaultEventDuration = time.Hour
)

var (
	ErrPermissionDenied  = errors.New("permission denied")
	ErrFieldNotFound     = errors.New("field not found")
	ErrUnsupportedEffect = errors.New("unsupported effect")
)

// Invoker executes resolved effects against platform collaborators.
// Effects that need a capability go through the permission gate first.
type Invoker struct {
	c            Collaborators
	searchEngine string
	now          func() time.Time
}

// NewInvoker creates an invoker. An empty searchEngine uses DefaultSearchEngine.
func NewInvoker(c Collaborators, searchEngine string) *Invoker {
	if searchEngine == "" {
		searchEngine = DefaultSearchEngine
	}
	return &Invoker{
		c:            c,
		searchEngine: searchEngine,
		now:          time.Now,
	}
}

// WithClock overrides the clock used for calendar defaults.
func (inv *Invoker) WithClock(now func() time.Time) *Invoker {
	inv.now = now
	return inv
}

// SearchURL builds the search URL for query from the engine template.
func (inv *Invoker) SearchURL(query string) string {
	return strings.Replace(inv.searchEngine, "%s", url.QueryEscape(query), 1)
}

// Invoke runs a single effect.
func (inv *Invoker) Invoke(ctx context.Context, e domain.Effect) error {
	if e == nil {
		return ErrUnsupportedEffect
	}

	if err := inv.authorize(ctx, e.Capability()); err != nil {
		return err
	}

	switch eff := e.(type) {
	case domain.OpenURL:
		if inv.c.URLs == nil {
			return unsupported(e)
		}
		return inv.c.URLs.OpenURL(ctx, eff.URL)

	case domain.CopyText:
		if eff.Text == "" {
			desc := eff.Description
			if desc == "" {
				desc = "text"
			}
			return fmt.Errorf("%s: %w", desc, ErrFieldNotFound)
		}
		if inv.c.Clip == nil {
			return unsupported(e)
		}
		return inv.c.Clip.WriteText(ctx, eff.Text)

	case domain.ShareText:
		if inv.c.Share == nil {
			return unsupported(e)
		}
		return inv.c.Share.ShareText(ctx, eff.Text)

	case domain.SearchWeb:
		if inv.c.URLs == nil {
			return unsupported(e)
		}
		return inv.c.URLs.OpenURL(ctx, inv.SearchURL(eff.Query))

	case domain.AddContactFromFields:
		if inv.c.Contacts == nil {
			return unsupported(e)
		}
		return inv.c.Contacts.AddContact(ctx, eff)

	case domain.AddContactFromVCard:
		if inv.c.Contacts == nil {
			return unsupported(e)
		}
		return inv.c.Contacts.AddVCard(ctx, eff.VCard)

	case domain.AddCalendarEvent:
		if inv.c.Calendar == nil {
			return unsupported(e)
		}
		return inv.c.Calendar.AddEvent(ctx, inv.withEventDefaults(eff))

	case domain.ConnectWifi:
		if eff.SSID == "" {
			return fmt.Errorf("network name: %w", ErrFieldNotFound)
		}
		if inv.c.Wifi == nil {
			return unsupported(e)
		}
		return inv.c.Wifi.Connect(ctx, eff)

	default:
		return unsupported(e)
	}
}

func (inv *Invoker) authorize(ctx context.Context, c domain.Capability) error {
	if c == domain.CapabilityNone {
		return nil
	}
	if inv.c.Gate == nil {
		return fmt.Errorf("%s: %w", c, ErrPermissionDenied)
	}
	granted, err := inv.c.Gate.RequestPermission(ctx, c)
	if err != nil {
		return fmt.Errorf("failed to request %s permission: %w", c, err)
	}
	if !granted {
		return fmt.Errorf("%s: %w", c, ErrPermissionDenied)
	}
	return nil
}

// withEventDefaults fills a zero start with now and a zero end with start+1h.
func (inv *Invoker) withEventDefaults(ev domain.AddCalendarEvent) domain.AddCalendarEvent {
	if ev.Start.IsZero() {
		ev.Start = inv.now()
	}
	if ev.End.IsZero() || ev.End.Before(ev.Start) {
		ev.End = ev.Start.Add(DefaultEventDuration)
	}
	return ev
}

func unsupported(e domain.Effect) error {
	return fmt.Errorf("%s: %w", e.Type(), ErrUnsupportedEffect)
}
