// Package profile holds the saved Wi-Fi profile record and the pure query
// pipeline (search, filter, sort) that derives the visible subset from it.
package profile

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// OpenSecurity is the security label of networks that need no secret.
const OpenSecurity = "Open"

// MaskRune is drawn once per secret character while a secret is hidden.
const MaskRune = '•'

// Signal quality thresholds, in percent.
const (
	signalExcellent = 80
	signalGood      = 60
	signalFair      = 40
)

// Record is one saved network profile. A nil Password means the network
// requires no secret, which is different from an empty secret.
type Record struct {
	ID            string
	Name          string
	Password      *string
	Security      string
	Signal        int
	LastConnected time.Time
	Connected     bool
}

// IsOpen reports whether the record carries the open security sentinel.
func (r Record) IsOpen() bool {
	return r.Security == OpenSecurity
}

// HasPassword reports whether a secret is stored for the record.
func (r Record) HasPassword() bool {
	return r.Password != nil
}

// PasswordValue returns the secret, or "" when none is stored.
func (r Record) PasswordValue() string {
	if r.Password == nil {
		return ""
	}
	return *r.Password
}

// String is used in log lines; it never includes the secret.
func (r Record) String() string {
	return fmt.Sprintf("%s(%s, %s, %d%%)", r.Name, r.ID, r.Security, r.Signal)
}

// StringPtr is a small helper for building records with a secret.
func StringPtr(s string) *string { return &s }

// Mask hides a secret behind one MaskRune per character.
func Mask(secret string) string {
	return strings.Repeat(string(MaskRune), utf8.RuneCountInString(secret))
}

// Stats are the summary counters shown above the list. They are always
// computed over the full record set, not the visible subset.
type Stats struct {
	Total     int
	Connected int
	Secured   int
	Open      int
}

// ComputeStats counts the records per category.
func ComputeStats(records []Record) Stats {
	s := Stats{Total: len(records)}
	for _, r := range records {
		if r.Connected {
			s.Connected++
		}
		if r.IsOpen() {
			s.Open++
		} else {
			s.Secured++
		}
	}
	return s
}

// Quality describes how a signal percentage is presented.
type Quality struct {
	Label string
	Bars  int // out of 4
}

// SignalQuality maps a signal percentage to its label and bar count.
func SignalQuality(signal int) Quality {
	switch {
	case signal >= signalExcellent:
		return Quality{Label: "Excellent", Bars: 4}
	case signal >= signalGood:
		return Quality{Label: "Good", Bars: 3}
	case signal >= signalFair:
		return Quality{Label: "Fair", Bars: 2}
	default:
		return Quality{Label: "Weak", Bars: 1}
	}
}

// LastConnectedLabel renders t relative to now: "Just now", "5h ago",
// "3d ago", or a plain date once it is a week old.
func LastConnectedLabel(t, now time.Time) string {
	if t.IsZero() {
		return "Never"
	}
	hours := int(now.Sub(t) / time.Hour)
	if hours < 1 {
		return "Just now"
	}
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}
	days := hours / 24
	if days < 7 {
		return fmt.Sprintf("%dd ago", days)
	}
	return t.Local().Format("Jan 2, 2006")
}
