package gonetworkmanager

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"wifiview/logging"
	"wifiview/profile"
)

// DefaultConcurrency bounds the parallel per-profile secret lookups.
const DefaultConcurrency = 4

// UnknownSecurity labels profiles whose key management could not be read.
const UnknownSecurity = "Unknown"

// Source loads saved Wi-Fi profiles from NetworkManager.
type Source struct {
	Run         Runner
	Concurrency int

	mu       sync.Mutex
	warnings []error
}

// NewSource returns a Source backed by the real nmcli binary.
func NewSource() *Source {
	return &Source{Run: RunNmcli, Concurrency: DefaultConcurrency}
}

func (s *Source) Name() string { return "nmcli" }

// Warnings lists the non-fatal problems of the last Load, such as profiles
// whose secrets were withheld.
func (s *Source) Warnings() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]error(nil), s.warnings...)
}

func (s *Source) warn(err error) {
	s.mu.Lock()
	s.warnings = append(s.warnings, err)
	s.mu.Unlock()
}

// Load lists the profiles, fetches each profile's secret concurrently and
// attaches the live signal of networks currently in range.
func (s *Source) Load(ctx context.Context) ([]profile.Record, error) {
	s.mu.Lock()
	s.warnings = nil
	s.mu.Unlock()

	run := s.Run
	if run == nil {
		run = RunNmcli
	}

	profiles, err := GetWifiProfiles(ctx, run)
	if err != nil {
		return nil, fmt.Errorf("list connection profiles: %w", err)
	}

	signals, err := GetSignalBySSID(ctx, run)
	if err != nil {
		if errors.Is(err, ErrNmcliMissing) {
			return nil, err
		}
		// A radio that is off or missing still leaves the saved profiles readable.
		s.warn(fmt.Errorf("scan results unavailable: %w", err))
		signals = map[string]int{}
	}

	records := make([]profile.Record, len(profiles))
	limit := s.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, p := range profiles {
		i, p := i, p
		g.Go(func() error {
			r, err := s.record(gctx, run, p, signals)
			if err != nil {
				return err
			}
			records[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logging.Debugf("nmcli: read %d wifi profiles", len(records))
	return records, nil
}

// record builds one profile. Only errors that make the whole load pointless
// are returned; anything else becomes a warning.
func (s *Source) record(ctx context.Context, run Runner, p ConnectionProfile, signals map[string]int) (profile.Record, error) {
	name := fieldValue(p[NmcliFieldConnectionName])
	r := profile.Record{
		ID:            strings.TrimSpace(p[NmcliFieldConnectionUUID]),
		Name:          name,
		Security:      UnknownSecurity,
		Signal:        signals[name],
		LastConnected: parseTimestamp(p[NmcliFieldConnectionTimestamp]),
		Connected:     strings.EqualFold(p[NmcliFieldConnectionActive], "yes"),
	}

	details, err := GetProfileSecrets(ctx, run, r.ID)
	switch {
	case err == nil:
	case errors.Is(err, ErrNmcliMissing), ctx.Err() != nil:
		return profile.Record{}, err
	case errors.Is(err, ErrPermissionDenied):
		s.warn(fmt.Errorf("%s: %w", name, ErrPermissionDenied))
		return r, nil
	default:
		s.warn(fmt.Errorf("%s: %w", name, err))
		return r, nil
	}

	if ssid := GetSSIDFromProfile(details); ssid != "" {
		r.Name = ssid
		r.Signal = signals[ssid]
	}
	keyMgmt := strings.TrimSpace(fieldValue(details[wifiSecKeyMgmt]))
	r.Security = SecurityLabel(keyMgmt)

	if keyMgmt != "" {
		secret := fieldValue(details[wifiSecPSK])
		if keyMgmt == "none" {
			secret = fieldValue(details[wifiSecWEPKey0])
		}
		switch {
		case secret == hiddenValue || (secret == "" && needsPSK(keyMgmt)):
			s.warn(fmt.Errorf("%s: %w", r.Name, ErrPermissionDenied))
		case secret != "":
			r.Password = profile.StringPtr(secret)
		}
	}
	return r, nil
}

// SecurityLabel maps an nmcli key-mgmt value to a display label.
func SecurityLabel(keyMgmt string) string {
	switch strings.ToLower(strings.TrimSpace(keyMgmt)) {
	case "":
		return profile.OpenSecurity
	case "none":
		return "WEP"
	case "wpa-psk":
		return "WPA2"
	case "sae":
		return "WPA3"
	case "wpa-eap", "wpa-eap-suite-b-192":
		return "WPA2-Enterprise"
	case "owe":
		return "OWE"
	default:
		return strings.ToUpper(keyMgmt)
	}
}

func needsPSK(keyMgmt string) bool {
	switch keyMgmt {
	case "wpa-psk", "sae", "none":
		return true
	}
	return false
}

// parseTimestamp reads nmcli's unix-seconds TIMESTAMP; 0 means never.
func parseTimestamp(v string) time.Time {
	secs, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil || secs <= 0 {
		return time.Time{}
	}
	return time.Unix(secs, 0)
}
