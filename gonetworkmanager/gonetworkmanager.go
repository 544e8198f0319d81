// Package gonetworkmanager reads saved Wi-Fi profiles, including their
// secrets, from NetworkManager through the nmcli command-line client. Only
// read-only nmcli commands are issued.
package gonetworkmanager

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"wifiview/logging"
)

// --- nmcli field names ---
const (
	NmcliFieldConnectionName      = "NAME"
	NmcliFieldConnectionUUID      = "UUID"
	NmcliFieldConnectionType      = "TYPE"
	NmcliFieldConnectionTimestamp = "TIMESTAMP"
	NmcliFieldConnectionActive    = "ACTIVE"
	NmcliFieldConnectionDevice    = "DEVICE"
	NmcliFieldWifiSSID            = "SSID"
	NmcliFieldWifiSignal          = "SIGNAL"

	eightZeroTwo11SSID = "802-11-wireless.ssid"
	wifiSecKeyMgmt     = "802-11-wireless-security.key-mgmt"
	wifiSecPSK         = "802-11-wireless-security.psk"
	wifiSecWEPKey0     = "802-11-wireless-security.wep-key0"

	ConnectionTypeWifi       = "wifi"
	connectionTypeWifiLegacy = "802-11-wireless"

	emptyValue  = "--"
	hiddenValue = "<hidden>"
)

var (
	// ErrNmcliMissing means nmcli is not installed or not on PATH.
	ErrNmcliMissing = errors.New("nmcli is not installed or not found in PATH")
	// ErrPermissionDenied means NetworkManager withheld secrets; reading
	// them usually needs administrator privileges.
	ErrPermissionDenied = errors.New("permission denied reading secrets (administrator privileges required)")
)

// ConnectionProfile is one nmcli record, keyed by field name.
type ConnectionProfile map[string]string

// Runner executes nmcli with args and returns its stdout without trailing
// newlines.
type Runner func(ctx context.Context, args ...string) (string, error)

// --- Core nmcli interaction ---

// parseNmcliMultilineOutput splits "-m multiline" output into records. A new
// record starts whenever the first key of the current record repeats.
func parseNmcliMultilineOutput(output string) ([]map[string]string, error) {
	if strings.TrimSpace(output) == "" {
		return []map[string]string{}, nil
	}

	var records []map[string]string
	var current map[string]string
	var firstKey string
	for i, line := range strings.Split(output, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			if i == 0 {
				continue
			}
			return nil, fmt.Errorf("malformed line in multiline output: %q", line)
		}
		key = strings.TrimSpace(key)
		// preserve trailing spaces in SSIDs and passphrases
		value = strings.TrimLeft(value, " \t")
		if key == "" {
			return nil, fmt.Errorf("empty key for value: %q", value)
		}
		if current == nil {
			current = make(map[string]string)
			firstKey = key
		} else if key == firstKey && len(current) > 0 {
			records = append(records, current)
			current = make(map[string]string)
		}
		current[key] = value
	}
	if len(current) > 0 {
		records = append(records, current)
	}
	return records, nil
}

// RunNmcli is the default Runner.
func RunNmcli(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "nmcli", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	logging.Debugf("executing nmcli %s", strings.Join(args, " "))

	err := cmd.Run()
	stderrStr := strings.TrimSpace(stderr.String())
	stdoutStr := strings.TrimRight(stdout.String(), "\r\n")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", ErrNmcliMissing
		}
		if stderrStr != "" {
			if isPermissionError(stderrStr) {
				return stdoutStr, fmt.Errorf("nmcli %s: %w: %s", args[len(args)-1], ErrPermissionDenied, stderrStr)
			}
			return stdoutStr, fmt.Errorf("nmcli command '%s' failed: %s (underlying error: %w)", strings.Join(args, " "), stderrStr, err)
		}
		return stdoutStr, fmt.Errorf("nmcli command '%s' failed: %w", strings.Join(args, " "), err)
	}
	if stderrStr != "" {
		logging.Warnf("nmcli command '%s' succeeded but produced stderr: %s", strings.Join(args, " "), stderrStr)
	}
	return stdoutStr, nil
}

// CheckAvailable reports ErrNmcliMissing when nmcli cannot be found.
func CheckAvailable() error {
	if _, err := exec.LookPath("nmcli"); err != nil {
		return ErrNmcliMissing
	}
	return nil
}

func isPermissionError(stderr string) bool {
	s := strings.ToLower(stderr)
	return strings.Contains(s, "not authorized") ||
		strings.Contains(s, "permission denied") ||
		strings.Contains(s, "insufficient privileges")
}

func multiline(ctx context.Context, run Runner, args ...string) ([]map[string]string, error) {
	out, err := run(ctx, args...)
	if err != nil {
		return nil, err
	}
	records, err := parseNmcliMultilineOutput(out)
	if err != nil {
		return nil, fmt.Errorf("nmcli %s: %w", strings.Join(args, " "), err)
	}
	return records, nil
}

// --- Queries ---

// GetWifiProfiles lists the saved Wi-Fi connection profiles.
func GetWifiProfiles(ctx context.Context, run Runner) ([]ConnectionProfile, error) {
	fields := strings.Join([]string{
		NmcliFieldConnectionName, NmcliFieldConnectionUUID, NmcliFieldConnectionType,
		NmcliFieldConnectionTimestamp, NmcliFieldConnectionActive, NmcliFieldConnectionDevice,
	}, ",")
	raw, err := multiline(ctx, run, "-m", "multiline", "-f", fields, "connection", "show", "--order", "name")
	if err != nil {
		return nil, err
	}
	var profiles []ConnectionProfile
	for _, r := range raw {
		p := ConnectionProfile(r)
		if t := strings.TrimSpace(p[NmcliFieldConnectionType]); t != ConnectionTypeWifi && t != connectionTypeWifiLegacy {
			continue
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// GetProfileSecrets reads the SSID, key management and secret of one profile.
// The -s flag asks NetworkManager to reveal secrets, which it only does for
// sufficiently privileged callers.
func GetProfileSecrets(ctx context.Context, run Runner, uuid string) (ConnectionProfile, error) {
	if strings.TrimSpace(uuid) == "" {
		return nil, fmt.Errorf("profile uuid cannot be empty")
	}
	fields := strings.Join([]string{eightZeroTwo11SSID, wifiSecKeyMgmt, wifiSecPSK, wifiSecWEPKey0}, ",")
	raw, err := multiline(ctx, run, "-s", "-m", "multiline", "-f", fields, "connection", "show", "uuid", uuid)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return ConnectionProfile{}, nil
	}
	return ConnectionProfile(raw[0]), nil
}

// GetSignalBySSID maps each visible SSID to its strongest signal, without
// triggering a rescan.
func GetSignalBySSID(ctx context.Context, run Runner) (map[string]int, error) {
	raw, err := multiline(ctx, run, "-m", "multiline", "-f", NmcliFieldWifiSSID+","+NmcliFieldWifiSignal, "device", "wifi", "list", "--rescan", "no")
	if err != nil {
		return nil, err
	}
	signals := make(map[string]int)
	for _, ap := range raw {
		ssid := fieldValue(ap[NmcliFieldWifiSSID])
		if ssid == "" {
			continue
		}
		var signal int
		if _, err := fmt.Sscanf(ap[NmcliFieldWifiSignal], "%d", &signal); err != nil {
			continue
		}
		if signal > signals[ssid] {
			signals[ssid] = signal
		}
	}
	return signals, nil
}

// GetSSIDFromProfile extracts the SSID from a profile; the key differs
// between the listing and the detail view.
func GetSSIDFromProfile(p ConnectionProfile) string {
	if p == nil {
		return ""
	}
	if ssid := fieldValue(p[NmcliFieldWifiSSID]); ssid != "" {
		return ssid
	}
	return fieldValue(p[eightZeroTwo11SSID])
}

// fieldValue maps nmcli's "--" placeholder to "".
func fieldValue(v string) string {
	if v == emptyValue {
		return ""
	}
	return v
}
