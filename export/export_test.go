package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"wifiview/profile"
)

var fixedNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

func sample() []profile.Record {
	return []profile.Record{
		{
			ID: "1", Name: "Home", Password: profile.StringPtr("abc12345"), Security: "WPA2",
			Signal: 90, Connected: true, LastConnected: time.Date(2026, 10, 15, 8, 0, 0, 123_000_000, time.UTC),
		},
		{
			ID: "2", Name: `Cafe "Central"`, Security: profile.OpenSecurity,
			Signal: 40, LastConnected: time.Date(2026, 10, 1, 18, 45, 0, 0, time.FixedZone("CEST", 2*3600)),
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sample()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	want := strings.Join([]string{
		"Network Name,Password,Security,Signal Strength,Last Connected,Status",
		`"Home","abc12345","WPA2",90,"2026-10-15T08:00:00.123Z",Connected`,
		`"Cafe ""Central""","N/A","Open",40,"2026-10-01T16:45:00.000Z",Disconnected`,
	}, "\n")
	if buf.String() != want {
		t.Fatalf("unexpected csv:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteCSV_EmptySetHasHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if buf.String() != strings.Join(csvHeader, ",") {
		t.Fatalf("expected header only, got %q", buf.String())
	}
}

func TestWriteJSON_Shape(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sample(), fixedNow); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`"exportDate": "2026-10-15T09:30:00.000Z"`,
		`"totalProfiles": 2`,
		`"password": null`,
		`"signalStrength": 90`,
		`"isConnected": true`,
		`"lastConnected": "2026-10-15T08:00:00.123Z"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("json output missing %s:\n%s", want, out)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	records := sample()
	var buf bytes.Buffer
	if err := WriteJSON(&buf, records, fixedNow); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	doc, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if doc.TotalProfiles != len(records) || len(doc.Profiles) != len(records) {
		t.Fatalf("expected %d profiles, got total=%d len=%d", len(records), doc.TotalProfiles, len(doc.Profiles))
	}
	for i, r := range records {
		e := doc.Profiles[i]
		if e.Name != r.Name || e.Security != r.Security || e.SignalStrength != r.Signal || e.IsConnected != r.Connected {
			t.Fatalf("profile %d mismatch: %+v vs %v", i, e, r)
		}
		if (e.Password != nil) != r.HasPassword() {
			t.Fatalf("profile %d secret presence mismatch", i)
		}
		if e.Password != nil && *e.Password != r.PasswordValue() {
			t.Fatalf("profile %d secret mismatch", i)
		}
		parsed, err := time.Parse(TimestampLayout, e.LastConnected)
		if err != nil || !parsed.Equal(r.LastConnected.UTC().Truncate(time.Millisecond)) {
			t.Fatalf("profile %d timestamp %q does not match %v (%v)", i, e.LastConnected, r.LastConnected, err)
		}
	}
}

func TestFilenameAndFormat(t *testing.T) {
	late := time.Date(2026, 10, 15, 23, 30, 0, 0, time.FixedZone("PST", -8*3600))
	if got := Filename("", CSV, late); got != "wifi-profiles-2026-10-16.csv" {
		t.Fatalf("expected UTC date in filename, got %s", got)
	}
	if got := Filename("backup", JSON, fixedNow); got != "backup-2026-10-15.json" {
		t.Fatalf("unexpected filename %s", got)
	}
	if CSV.MIMEType() != "text/csv" || JSON.MIMEType() != "application/json" {
		t.Fatalf("unexpected MIME types")
	}
	if f, err := ParseFormat(" JSON "); err != nil || f != JSON {
		t.Fatalf("ParseFormat(JSON) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestExporter_WritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	e := Exporter{Dir: dir, Now: func() time.Time { return fixedNow }}

	res, err := e.Export(sample(), CSV)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if res.Path != filepath.Join(dir, "wifi-profiles-2026-10-15.csv") {
		t.Fatalf("unexpected path %s", res.Path)
	}
	info, err := os.Stat(res.Path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() != res.Bytes || res.Profiles != 2 {
		t.Fatalf("result %+v does not match file size %d", res, info.Size())
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600, got %v", info.Mode().Perm())
	}

	if _, err := e.Export(sample(), Format(9)); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestExporter_OverwriteTightensMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions only")
	}
	dir := t.TempDir()
	e := Exporter{Dir: dir, Now: func() time.Time { return fixedNow }}
	stale := filepath.Join(dir, "wifi-profiles-2026-10-15.json")
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := os.Chmod(stale, 0o644); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	res, err := e.Export(sample(), JSON)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if res.Path != stale {
		t.Fatalf("expected %s to be replaced, got %s", stale, res.Path)
	}
	info, err := os.Stat(res.Path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600 after overwrite, got %v", info.Mode().Perm())
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected only the export in %s, got %v / %v", dir, entries, err)
	}
}
