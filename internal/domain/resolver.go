package domain

import "strings"

// Icon identifiers
const (
	IconShare    = "share"
	IconCopy     = "content_copy"
	IconBrowser  = "open_in_browser"
	IconEmail    = "email"
	IconCall     = "call"
	IconSMS      = "sms"
	IconPerson   = "person_add"
	IconWifi     = "wifi"
	IconMap      = "map"
	IconCalendar = "event"
	IconSearch   = "search"
)

// ActionDescriptor is one entry of a record's contextual action sheet.
type ActionDescriptor struct {
	Label  string
	Icon   string
	Effect Effect
}

// rule pairs a match predicate with the builder of its actions.
type rule struct {
	name    string
	matches func(kind Kind, payload string) bool
	build   func(payload string) []ActionDescriptor
}

// rules is evaluated in order, first match wins.
// Overlapping matches (e.g. a tel: payload on an "SMS" kind) are settled by
// this order alone.
var rules = []rule{
	{
		name: "website",
		matches: func(k Kind, p string) bool {
			return k.Contains("Website") || strings.HasPrefix(p, "http")
		},
		build: func(p string) []ActionDescriptor {
			return []ActionDescriptor{
				{Label: "Open in Browser", Icon: IconBrowser, Effect: OpenURL{URL: p}},
				{Label: "Copy Link", Icon: IconCopy, Effect: CopyText{Text: p, Description: "Link"}},
			}
		},
	},
	{
		name: "email",
		matches: func(k Kind, p string) bool {
			return k.Contains("Email") || strings.HasPrefix(p, "mailto:")
		},
		build: func(p string) []ActionDescriptor {
			actions := []ActionDescriptor{
				{Label: "Send Email", Icon: IconEmail, Effect: OpenURL{URL: p}},
			}
			addr := ExtractEmailAddress(p)
			if addr != "" {
				actions = append(actions,
					ActionDescriptor{Label: "Copy Email Address", Icon: IconCopy, Effect: CopyText{Text: addr, Description: "Email address"}},
					ActionDescriptor{Label: "Add to Contacts", Icon: IconPerson, Effect: AddContactFromFields{Email: addr}},
				)
			}
			return actions
		},
	},
	{
		name: "phone",
		matches: func(k Kind, p string) bool {
			return k.Contains("Phone") || strings.HasPrefix(p, "tel:")
		},
		build: func(p string) []ActionDescriptor {
			number := ExtractPhoneNumber(p)
			actions := []ActionDescriptor{
				{Label: "Call Number", Icon: IconCall, Effect: OpenURL{URL: "tel:" + number}},
				{Label: "Send SMS", Icon: IconSMS, Effect: OpenURL{URL: "sms:" + number}},
				{Label: "Copy Number", Icon: IconCopy, Effect: CopyText{Text: number, Description: "Phone number"}},
			}
			if number != "" {
				actions = append(actions, ActionDescriptor{
					Label: "Add to Contacts", Icon: IconPerson, Effect: AddContactFromFields{Phone: number},
				})
			}
			return actions
		},
	},
	{
		name: "sms",
		matches: func(k Kind, p string) bool {
			return k.Contains("SMS") || strings.HasPrefix(p, "smsto:") || strings.HasPrefix(p, "sms:")
		},
		build: func(p string) []ActionDescriptor {
			return []ActionDescriptor{
				{Label: "Send SMS", Icon: IconSMS, Effect: OpenURL{URL: p}},
				{Label: "Copy SMS Data", Icon: IconCopy, Effect: CopyText{Text: p, Description: "SMS data"}},
			}
		},
	},
	{
		name:    "contact",
		matches: func(k Kind, _ string) bool { return k.Contains("Contact") },
		build: func(p string) []ActionDescriptor {
			return []ActionDescriptor{
				{Label: "Add to Contacts", Icon: IconPerson, Effect: AddContactFromVCard{VCard: p}},
			}
		},
	},
	{
		name:    "wifi",
		matches: func(k Kind, _ string) bool { return k.Contains("Wi-Fi") },
		build: func(p string) []ActionDescriptor {
			n := ParseWifi(p)
			ssid, _ := ExtractWifiField(p, "S:")
			password, _ := ExtractWifiField(p, "P:")
			return []ActionDescriptor{
				{Label: "Connect to Wi-Fi", Icon: IconWifi, Effect: ConnectWifi{
					SSID: n.SSID, Password: n.Password, Security: n.Security, Hidden: n.Hidden,
				}},
				{Label: "Copy Network Name", Icon: IconCopy, Effect: CopyText{Text: ssid, Description: "Network name"}},
				{Label: "Copy Password", Icon: IconCopy, Effect: CopyText{Text: password, Description: "Password"}},
			}
		},
	},
	{
		name:    "geo",
		matches: func(k Kind, _ string) bool { return k.Contains("Geo") },
		build: func(p string) []ActionDescriptor {
			return []ActionDescriptor{
				{Label: "Open in Maps", Icon: IconMap, Effect: OpenURL{URL: p}},
				{Label: "Copy Coordinates", Icon: IconCopy, Effect: CopyText{Text: GeoCoordinates(p), Description: "Coordinates"}},
			}
		},
	},
	{
		name:    "calendar",
		matches: func(k Kind, _ string) bool { return k.Contains("Calendar Event") },
		build: func(p string) []ActionDescriptor {
			ev := ParseVEvent(p)
			return []ActionDescriptor{
				{Label: "Add to Calendar", Icon: IconCalendar, Effect: AddCalendarEvent{
					Summary:     ev.Summary,
					Start:       ev.Start,
					End:         ev.End,
					Location:    ev.Location,
					Description: ev.Description,
				}},
			}
		},
	},
	{
		name:    "barcode",
		matches: func(k Kind, _ string) bool { return k.Contains("Barcode") },
		build: func(p string) []ActionDescriptor {
			return []ActionDescriptor{
				{Label: "Search Online", Icon: IconSearch, Effect: SearchWeb{Query: p}},
				{Label: "Copy Code", Icon: IconCopy, Effect: CopyText{Text: p, Description: "Code"}},
			}
		},
	},
}

// defaultRule covers Text, Clipboard and unrecognized kinds.
var defaultRule = rule{
	name:    "text",
	matches: func(Kind, string) bool { return true },
	build: func(p string) []ActionDescriptor {
		return []ActionDescriptor{
			{Label: "Copy Text", Icon: IconCopy, Effect: CopyText{Text: p, Description: "Text"}},
			{Label: "Search Web", Icon: IconSearch, Effect: SearchWeb{Query: p}},
		}
	},
}

// matchRule returns the first rule matching kind and payload.
func matchRule(kind Kind, payload string) rule {
	for _, r := range rules {
		if r.matches(kind, payload) {
			return r
		}
	}
	return defaultRule
}

// RuleNames lists the rules in evaluation order, fallback last.
func RuleNames() []string {
	names := make([]string, 0, len(rules)+1)
	for _, r := range rules {
		names = append(names, r.name)
	}
	return append(names, defaultRule.name)
}

// MatchedRule returns the name of the rule that handles kind and payload.
func MatchedRule(kind Kind, payload string) string {
	return matchRule(kind, payload).name
}

// ResolveActionsFor builds the ordered contextual actions for a kind and payload.
//
// Share Raw Data always comes first. A Copy Raw Data action is appended when
// the matched rule produced at most one "Copy " action.
func ResolveActionsFor(kind Kind, payload string) []ActionDescriptor {
	actions := []ActionDescriptor{
		{Label: "Share Raw Data", Icon: IconShare, Effect: ShareText{Text: payload}},
	}
	actions = append(actions, matchRule(kind, payload).build(payload)...)

	if countCopyActions(actions) <= 1 {
		actions = append(actions, ActionDescriptor{
			Label:  "Copy Raw Data",
			Icon:   IconCopy,
			Effect: CopyText{Text: payload, Description: "Raw data"},
		})
	}
	return actions
}

// ResolveActions builds the action sheet for a record.
func ResolveActions(r *Record) []ActionDescriptor {
	if r == nil {
		return ResolveActionsFor("", "")
	}
	return ResolveActionsFor(r.Kind, r.Payload)
}

func countCopyActions(actions []ActionDescriptor) int {
	n := 0
	for _, a := range actions {
		if strings.Contains(a.Label, "Copy ") {
			n++
		}
	}
	return n
}
