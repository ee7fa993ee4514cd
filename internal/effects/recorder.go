package effects

import (
	"context"
	"strings"
	"sync"

	"github.com/MrSnakeDoc/qrhist/internal/domain"
)

// Instruction is one platform call a remote client must perform.
type Instruction struct {
	Op   string `json:"op"`
	Args any    `json:"args"`
}

// Instruction operations
const (
	OpOpenURL    = "open_url"
	OpCopy       = "copy"
	OpShare      = "share"
	OpAddContact = "add_contact"
	OpAddVCard   = "add_vcard"
	OpAddEvent   = "add_event"
	OpJoinWifi   = "join_wifi"
)

// Recorder implements every collaborator by recording the call.
// The HTTP layer returns the recorded instructions to the client, which
// owns the real platform services.
type Recorder struct {
	mu           sync.Mutex
	instructions []Instruction
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Collaborators wires the recorder into every slot, with gate as the permission gate.
func (r *Recorder) Collaborators(gate PermissionGate) Collaborators {
	return Collaborators{
		Gate:     gate,
		URLs:     r,
		Clip:     r,
		Share:    r,
		Contacts: r,
		Calendar: r,
		Wifi:     r,
	}
}

// Instructions returns a copy of the recorded calls in order.
func (r *Recorder) Instructions() []Instruction {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Instruction, len(r.instructions))
	copy(out, r.instructions)
	return out
}

func (r *Recorder) record(op string, args any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.instructions = append(r.instructions, Instruction{Op: op, Args: args})
	return nil
}

func (r *Recorder) OpenURL(_ context.Context, url string) error {
	return r.record(OpOpenURL, map[string]string{"url": url})
}

func (r *Recorder) WriteText(_ context.Context, text string) error {
	return r.record(OpCopy, map[string]string{"text": text})
}

func (r *Recorder) ShareText(_ context.Context, text string) error {
	return r.record(OpShare, map[string]string{"text": text})
}

func (r *Recorder) AddContact(_ context.Context, c domain.AddContactFromFields) error {
	return r.record(OpAddContact, c)
}

func (r *Recorder) AddVCard(_ context.Context, vcard string) error {
	return r.record(OpAddVCard, map[string]string{"vcard": vcard})
}

func (r *Recorder) AddEvent(_ context.Context, ev domain.AddCalendarEvent) error {
	return r.record(OpAddEvent, ev)
}

func (r *Recorder) Connect(_ context.Context, w domain.ConnectWifi) error {
	return r.record(OpJoinWifi, w)
}

// StaticGate grants a fixed set of capabilities.
type StaticGate map[domain.Capability]bool

// ParseGrantedCapabilities reads a comma-separated list such as "contacts, location".
func ParseGrantedCapabilities(header string) StaticGate {
	gate := StaticGate{}
	for _, part := range strings.Split(header, ",") {
		c := strings.ToLower(strings.TrimSpace(part))
		if c != "" {
			gate[domain.Capability(c)] = true
		}
	}
	return gate
}

func (g StaticGate) RequestPermission(_ context.Context, c domain.Capability) (bool, error) {
	return g[c], nil
}
