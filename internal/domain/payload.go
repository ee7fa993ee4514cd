package domain

import (
	"strings"
	"time"
)

const (
	// Summary fallbacks
	FallbackContact  = "Contact Details"
	FallbackWifi     = "Wi-Fi Network"
	FallbackCalendar = "Calendar Event"
	FallbackPreview  = "Formatted Data Preview"

	wifiScheme = "WIFI:"
)

// WifiNetwork holds the fields of a WIFI: URI.
type WifiNetwork struct {
	SSID     string
	Password string
	Security string
	Hidden   bool
}

// CalendarEvent holds the fields of an iCalendar VEVENT block.
type CalendarEvent struct {
	Summary     string
	Start       time.Time
	End         time.Time
	Location    string
	Description string
}

// Summarize returns a short human-readable preview of a payload for list display.
// Examples:
//   - Contact "...FN:John Doe..." -> "John Doe"
//   - Wi-Fi "WIFI:S:Home;T:WPA;P:pw;;" -> "Home"
//   - Geo "geo:40.7,-74.0?q=NYC" -> "geo:40.7,-74.0"
func Summarize(kind Kind, payload string) string {
	switch {
	case kind.Contains("Contact"):
		if payload == "" {
			return FallbackPreview
		}
		if v, ok := firstLineValue(payload, "FN:"); ok {
			return v
		}
		if v, ok := firstLineValue(payload, "N:"); ok {
			return v
		}
		return FallbackContact

	case kind.Contains("Wi-Fi"):
		if payload == "" {
			return FallbackPreview
		}
		if ssid, ok := ExtractWifiField(payload, "S:"); ok {
			return ssid
		}
		return FallbackWifi

	case kind.Contains("Calendar Event"):
		if payload == "" {
			return FallbackPreview
		}
		if v, ok := firstLineValue(payload, "SUMMARY:"); ok {
			return v
		}
		return FallbackCalendar

	case kind.Contains("Geo"):
		if payload == "" {
			return FallbackPreview
		}
		return GeoCoordinates(payload)

	default:
		return payload
	}
}

// SummarizeRecord is Summarize applied to a record.
func SummarizeRecord(r *Record) string {
	if r == nil {
		return FallbackPreview
	}
	return Summarize(r.Kind, r.Payload)
}

// ExtractWifiField returns the value of the first WIFI: segment starting with prefix.
// ok is false when no segment matches (field not found).
func ExtractWifiField(payload, prefix string) (string, bool) {
	rest := strings.TrimPrefix(payload, wifiScheme)
	for _, segment := range strings.Split(rest, ";") {
		if strings.HasPrefix(segment, prefix) {
			return strings.TrimPrefix(segment, prefix), true
		}
	}
	return "", false
}

// ExtractEmailAddress strips mailto: and any query parameters.
func ExtractEmailAddress(payload string) string {
	addr := strings.TrimPrefix(payload, "mailto:")
	if i := strings.IndexByte(addr, '?'); i >= 0 {
		addr = addr[:i]
	}
	return addr
}

// ExtractPhoneNumber strips a leading tel:, smsto: or sms: literal.
func ExtractPhoneNumber(payload string) string {
	for _, scheme := range []string{"tel:", "smsto:", "sms:"} {
		if strings.HasPrefix(payload, scheme) {
			return payload[len(scheme):]
		}
	}
	return payload
}

// GeoCoordinates returns the payload up to its first '?'.
// The scheme, if any, is kept as scanned.
func GeoCoordinates(payload string) string {
	if i := strings.IndexByte(payload, '?'); i >= 0 {
		return payload[:i]
	}
	return payload
}

// ParseWifi extracts the S, P, T and H fields of a WIFI: URI.
// Missing fields are left empty.
func ParseWifi(payload string) WifiNetwork {
	var n WifiNetwork
	n.SSID, _ = ExtractWifiField(payload, "S:")
	n.Password, _ = ExtractWifiField(payload, "P:")
	n.Security, _ = ExtractWifiField(payload, "T:")
	if h, ok := ExtractWifiField(payload, "H:"); ok {
		n.Hidden = strings.EqualFold(h, "true")
	}
	return n
}

// ParseVEvent extracts event fields from an iCalendar VEVENT block.
// Unparseable or missing times are left zero.
func ParseVEvent(payload string) CalendarEvent {
	var ev CalendarEvent
	ev.Summary, _ = firstLineValue(payload, "SUMMARY:")
	ev.Location, _ = firstLineValue(payload, "LOCATION:")
	ev.Description, _ = firstLineValue(payload, "DESCRIPTION:")
	if v, ok := propertyValue(payload, "DTSTART"); ok {
		ev.Start = parseICalTime(v)
	}
	if v, ok := propertyValue(payload, "DTEND"); ok {
		ev.End = parseICalTime(v)
	}
	return ev
}

// firstLineValue returns the remainder of the first line starting with prefix.
func firstLineValue(payload, prefix string) (string, bool) {
	for _, line := range splitLines(payload) {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimPrefix(line, prefix), true
		}
	}
	return "", false
}

// propertyValue finds "NAME:value" or "NAME;PARAMS:value" and returns value.
func propertyValue(payload, name string) (string, bool) {
	for _, line := range splitLines(payload) {
		if !strings.HasPrefix(line, name) {
			continue
		}
		rest := line[len(name):]
		if rest == "" || (rest[0] != ':' && rest[0] != ';') {
			continue
		}
		if i := strings.IndexByte(rest, ':'); i >= 0 {
			return rest[i+1:], true
		}
	}
	return "", false
}

// splitLines splits on \n and drops a trailing \r (vCard and iCalendar use CRLF).
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

var icalLayouts = []string{
	"20060102T150405Z",
	"20060102T150405",
	"20060102",
}

func parseICalTime(v string) time.Time {
	v = strings.TrimSpace(v)
	for _, layout := range icalLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
