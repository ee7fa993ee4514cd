package effects

import (
	"context"

	"github.com/MrSnakeDoc/qrhist/internal/domain"
)

// PermissionGate asks the platform for a capability before an effect runs.
type PermissionGate interface {
	RequestPermission(ctx context.Context, c domain.Capability) (bool, error)
}

// URLOpener opens URLs (browser, dialer, maps, search).
type URLOpener interface {
	OpenURL(ctx context.Context, url string) error
}

// Clipboard writes text to the clipboard.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// ShareSheet presents the platform share dialog.
type ShareSheet interface {
	ShareText(ctx context.Context, text string) error
}

// ContactWriter creates contacts from fields or from a raw vCard.
type ContactWriter interface {
	AddContact(ctx context.Context, c domain.AddContactFromFields) error
	AddVCard(ctx context.Context, vcard string) error
}

// CalendarWriter inserts calendar events.
type CalendarWriter interface {
	AddEvent(ctx context.Context, ev domain.AddCalendarEvent) error
}

// WifiConnector joins Wi-Fi networks. Platform-restricted, best effort.
type WifiConnector interface {
	Connect(ctx context.Context, w domain.ConnectWifi) error
}

// Collaborators groups the platform services an Invoker dispatches to.
// A nil collaborator makes its effects fail with ErrUnsupportedEffect.
type Collaborators struct {
	Gate     PermissionGate
	URLs     URLOpener
	Clip     Clipboard
	Share    ShareSheet
	Contacts ContactWriter
	Calendar CalendarWriter
	Wifi     WifiConnector
}
