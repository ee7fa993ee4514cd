package domain

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func labels(actions []ActionDescriptor) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = a.Label
	}
	return out
}

func TestResolveActionsLabels(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		payload  string
		expected []string
	}{
		{
			name:     "website",
			kind:     KindWebsite,
			payload:  "https://example.com",
			expected: []string{"Share Raw Data", "Open in Browser", "Copy Link", "Copy Raw Data"},
		},
		{
			name:     "http payload on text kind",
			kind:     KindText,
			payload:  "http://example.com",
			expected: []string{"Share Raw Data", "Open in Browser", "Copy Link", "Copy Raw Data"},
		},
		{
			name:     "email",
			kind:     KindEmail,
			payload:  "mailto:john@example.com?subject=Hi",
			expected: []string{"Share Raw Data", "Send Email", "Copy Email Address", "Add to Contacts", "Copy Raw Data"},
		},
		{
			name:     "email with empty address",
			kind:     KindEmail,
			payload:  "mailto:?subject=Hi",
			expected: []string{"Share Raw Data", "Send Email", "Copy Raw Data"},
		},
		{
			name:     "phone",
			kind:     KindPhone,
			payload:  "tel:+11234567890",
			expected: []string{"Share Raw Data", "Call Number", "Send SMS", "Copy Number", "Add to Contacts", "Copy Raw Data"},
		},
		{
			name:     "sms",
			kind:     KindSMS,
			payload:  "smsto:+15550001111:hello",
			expected: []string{"Share Raw Data", "Send SMS", "Copy SMS Data", "Copy Raw Data"},
		},
		{
			name:     "contact",
			kind:     KindContact,
			payload:  sampleVCard,
			expected: []string{"Share Raw Data", "Add to Contacts", "Copy Raw Data"},
		},
		{
			name:     "wifi has two copies so no raw copy",
			kind:     KindWifi,
			payload:  "WIFI:S:Net;T:WPA;P:pw;;",
			expected: []string{"Share Raw Data", "Connect to Wi-Fi", "Copy Network Name", "Copy Password"},
		},
		{
			name:     "geo",
			kind:     KindGeo,
			payload:  "geo:40.7128,-74.0060?q=NYC",
			expected: []string{"Share Raw Data", "Open in Maps", "Copy Coordinates", "Copy Raw Data"},
		},
		{
			name:     "calendar",
			kind:     KindCalendarEvent,
			payload:  sampleVEvent,
			expected: []string{"Share Raw Data", "Add to Calendar", "Copy Raw Data"},
		},
		{
			name:     "composite barcode kind",
			kind:     "Barcode: UPC-A",
			payload:  "036000291452",
			expected: []string{"Share Raw Data", "Search Online", "Copy Code", "Copy Raw Data"},
		},
		{
			name:     "clipboard falls to default",
			kind:     KindClipboard,
			payload:  "some text",
			expected: []string{"Share Raw Data", "Copy Text", "Search Web", "Copy Raw Data"},
		},
		{
			name:     "unknown kind falls to default",
			kind:     "Aztec",
			payload:  "xyz",
			expected: []string{"Share Raw Data", "Copy Text", "Search Web", "Copy Raw Data"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := labels(ResolveActionsFor(tt.kind, tt.payload))
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("labels mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveActionsPhoneEffects(t *testing.T) {
	got := ResolveActionsFor("Phone Number", "tel:+11234567890")

	want := []ActionDescriptor{
		{Label: "Share Raw Data", Icon: IconShare, Effect: ShareText{Text: "tel:+11234567890"}},
		{Label: "Call Number", Icon: IconCall, Effect: OpenURL{URL: "tel:+11234567890"}},
		{Label: "Send SMS", Icon: IconSMS, Effect: OpenURL{URL: "sms:+11234567890"}},
		{Label: "Copy Number", Icon: IconCopy, Effect: CopyText{Text: "+11234567890", Description: "Phone number"}},
		{Label: "Add to Contacts", Icon: IconPerson, Effect: AddContactFromFields{Phone: "+11234567890"}},
		{Label: "Copy Raw Data", Icon: IconCopy, Effect: CopyText{Text: "tel:+11234567890", Description: "Raw data"}},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ResolveActionsFor() mismatch (-want +got):\n%s", diff)
	}
}

func TestCopyCoordinatesMatchesSummary(t *testing.T) {
	for _, payload := range []string{
		"geo:40.7128,-74.0060?q=NYC",
		"GEO:40.7128,-74.0060?q=NYC",
		"40.7128,-74.0060?q=NYC",
	} {
		var copied string
		for _, a := range ResolveActionsFor(KindGeo, payload) {
			if a.Label == "Copy Coordinates" {
				copied = a.Effect.(CopyText).Text
			}
		}
		if summary := Summarize(KindGeo, payload); copied != summary {
			t.Errorf("%s: Copy Coordinates = %q, summary = %q", payload, copied, summary)
		}
	}
}

func TestResolveActionsWifiEffects(t *testing.T) {
	got := ResolveActionsFor(KindWifi, "WIFI:S:Net;T:WPA;P:pw;;")

	connect, ok := got[1].Effect.(ConnectWifi)
	if !ok {
		t.Fatalf("second action effect = %T, want ConnectWifi", got[1].Effect)
	}
	if diff := cmp.Diff(ConnectWifi{SSID: "Net", Password: "pw", Security: "WPA"}, connect); diff != "" {
		t.Errorf("ConnectWifi mismatch (-want +got):\n%s", diff)
	}
	if connect.Capability() != CapabilityLocation {
		t.Errorf("ConnectWifi capability = %q", connect.Capability())
	}
}

func TestResolveActionsWifiMissingPasswordStillOffered(t *testing.T) {
	got := ResolveActionsFor(KindWifi, "WIFI:S:Open;T:nopass;;")

	var found bool
	for _, a := range got {
		if a.Label != "Copy Password" {
			continue
		}
		found = true
		copyText := a.Effect.(CopyText)
		if copyText.Text != "" {
			t.Errorf("missing password should resolve to empty text, got %q", copyText.Text)
		}
	}
	if !found {
		t.Error("Copy Password should be offered even when P: is missing")
	}
}

func TestResolveActionsCalendarEffect(t *testing.T) {
	got := ResolveActionsFor(KindCalendarEvent, sampleVEvent)
	ev, ok := got[1].Effect.(AddCalendarEvent)
	if !ok {
		t.Fatalf("effect = %T, want AddCalendarEvent", got[1].Effect)
	}
	if ev.Summary != "Project Deadline" || ev.Location != "Office" {
		t.Errorf("AddCalendarEvent = %+v", ev)
	}
	if ev.Capability() != CapabilityCalendarWrite {
		t.Errorf("capability = %q", ev.Capability())
	}
}

func TestRuleOrderResolvesOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		payload  string
		expected string
	}{
		{name: "tel payload on SMS kind goes to phone", kind: KindSMS, payload: "tel:+1555", expected: "phone"},
		{name: "website beats email", kind: "Website Email", payload: "mailto:a@b.c", expected: "website"},
		{name: "http payload on contact kind", kind: KindContact, payload: "https://vcard.example", expected: "website"},
		{name: "sms payload on barcode", kind: "Barcode: QR", payload: "sms:+1", expected: "sms"},
		{name: "case sensitive kind", kind: "website", payload: "example.com", expected: "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchedRule(tt.kind, tt.payload); got != tt.expected {
				t.Errorf("MatchedRule() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestResolveActionsInvariants(t *testing.T) {
	inputs := []struct {
		kind    Kind
		payload string
	}{
		{KindWebsite, "https://a.b"},
		{KindEmail, "mailto:"},
		{KindPhone, "tel:"},
		{KindSMS, "sms:+1"},
		{KindContact, ""},
		{KindWifi, ""},
		{KindWifi, "WIFI:S:x;P:y;;"},
		{KindGeo, "geo:0,0"},
		{KindCalendarEvent, "nope"},
		{"Barcode: CODE-128", "ABC-123"},
		{KindText, ""},
		{"", ""},
	}

	for _, in := range inputs {
		first := ResolveActionsFor(in.kind, in.payload)
		second := ResolveActionsFor(in.kind, in.payload)

		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("%q/%q not deterministic (-first +second):\n%s", in.kind, in.payload, diff)
		}

		var shares, copies int
		for _, a := range first {
			if _, ok := a.Effect.(ShareText); ok {
				shares++
			}
			if strings.Contains(a.Label, "Copy ") {
				copies++
			}
		}
		if shares < 1 {
			t.Errorf("%q/%q: no ShareText action", in.kind, in.payload)
		}
		if copies < 1 {
			t.Errorf("%q/%q: no Copy action", in.kind, in.payload)
		}
		if first[0].Label != "Share Raw Data" {
			t.Errorf("%q/%q: first action = %q, want Share Raw Data", in.kind, in.payload, first[0].Label)
		}
	}
}

func TestResolveActionsNilRecord(t *testing.T) {
	got := ResolveActions(nil)
	if len(got) == 0 || got[0].Label != "Share Raw Data" {
		t.Errorf("ResolveActions(nil) = %v", labels(got))
	}
}

func TestEffectCapabilities(t *testing.T) {
	tests := []struct {
		effect Effect
		want   Capability
	}{
		{OpenURL{}, CapabilityNone},
		{CopyText{}, CapabilityNone},
		{ShareText{}, CapabilityNone},
		{SearchWeb{}, CapabilityNone},
		{AddContactFromFields{}, CapabilityContacts},
		{AddContactFromVCard{}, CapabilityContacts},
		{AddCalendarEvent{}, CapabilityCalendarWrite},
		{ConnectWifi{}, CapabilityLocation},
	}
	for _, tt := range tests {
		if got := tt.effect.Capability(); got != tt.want {
			t.Errorf("%s capability = %q, want %q", tt.effect.Type(), got, tt.want)
		}
	}
}

func TestRuleNames(t *testing.T) {
	want := []string{"website", "email", "phone", "sms", "contact", "wifi", "geo", "calendar", "barcode", "text"}
	if diff := cmp.Diff(want, RuleNames()); diff != "" {
		t.Errorf("RuleNames() mismatch (-want +got):\n%s", diff)
	}
}
