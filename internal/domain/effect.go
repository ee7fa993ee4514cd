package domain

import "time"

// EffectType tags an Effect variant.
type EffectType string

const (
	EffectOpenURL              EffectType = "open_url"
	EffectCopyText             EffectType = "copy_text"
	EffectShareText            EffectType = "share_text"
	EffectAddContactFromFields EffectType = "add_contact_fields"
	EffectAddContactFromVCard  EffectType = "add_contact_vcard"
	EffectAddCalendarEvent     EffectType = "add_calendar_event"
	EffectConnectWifi          EffectType = "connect_wifi"
	EffectSearchWeb            EffectType = "search_web"
)

// Capability is a platform permission an effect needs before it runs.
type Capability string

const (
	CapabilityNone          Capability = ""
	CapabilityContacts      Capability = "contacts"
	CapabilityCalendarWrite Capability = "calendar_write"
	CapabilityLocation      Capability = "location"
)

// Effect describes a side-effecting action that has not been executed yet.
// The set of variants is closed: only types in this package implement it.
type Effect interface {
	Type() EffectType
	Capability() Capability
	effect()
}

// OpenURL opens a URL with the platform handler (browser, dialer, maps...).
type OpenURL struct {
	URL string `json:"url"`
}

// CopyText writes Text to the clipboard. Description names what is copied.
// An empty Text means the source field was not found in the payload.
type CopyText struct {
	Text        string `json:"text"`
	Description string `json:"description,omitempty"`
}

// ShareText presents the platform share sheet.
type ShareText struct {
	Text string `json:"text"`
}

// AddContactFromFields creates a contact from individual fields.
type AddContactFromFields struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// AddContactFromVCard creates a contact from a raw vCard block.
type AddContactFromVCard struct {
	VCard string `json:"vcard"`
}

// AddCalendarEvent inserts an event. Zero Start/End are defaulted by the invoker.
type AddCalendarEvent struct {
	Summary     string    `json:"summary"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
}

// ConnectWifi joins a Wi-Fi network. Best effort, platform-restricted.
type ConnectWifi struct {
	SSID     string `json:"ssid"`
	Password string `json:"password,omitempty"`
	Security string `json:"security,omitempty"`
	Hidden   bool   `json:"hidden,omitempty"`
}

// SearchWeb runs a web search for Query.
type SearchWeb struct {
	Query string `json:"query"`
}

func (OpenURL) Type() EffectType              { return EffectOpenURL }
func (CopyText) Type() EffectType             { return EffectCopyText }
func (ShareText) Type() EffectType            { return EffectShareText }
func (AddContactFromFields) Type() EffectType { return EffectAddContactFromFields }
func (AddContactFromVCard) Type() EffectType  { return EffectAddContactFromVCard }
func (AddCalendarEvent) Type() EffectType     { return EffectAddCalendarEvent }
func (ConnectWifi) Type() EffectType          { return EffectConnectWifi }
func (SearchWeb) Type() EffectType            { return EffectSearchWeb }

func (OpenURL) Capability() Capability              { return CapabilityNone }
func (CopyText) Capability() Capability             { return CapabilityNone }
func (ShareText) Capability() Capability            { return CapabilityNone }
func (AddContactFromFields) Capability() Capability { return CapabilityContacts }
func (AddContactFromVCard) Capability() Capability  { return CapabilityContacts }
func (AddCalendarEvent) Capability() Capability     { return CapabilityCalendarWrite }
func (ConnectWifi) Capability() Capability          { return CapabilityLocation }
func (SearchWeb) Capability() Capability            { return CapabilityNone }

func (OpenURL) effect()              {}
func (CopyText) effect()             {}
func (ShareText) effect()            {}
func (AddContactFromFields) effect() {}
func (AddContactFromVCard) effect()  {}
func (AddCalendarEvent) effect()     {}
func (ConnectWifi) effect()          {}
func (SearchWeb) effect()            {}
