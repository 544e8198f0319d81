// Package export serializes the visible profiles to CSV or JSON and writes
// the result into the export directory.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"wifiview/profile"
)

// DefaultBaseName prefixes every export file name.
const DefaultBaseName = "wifi-profiles"

// TimestampLayout is the machine-readable form used for every timestamp in
// an export: UTC ISO-8601 with milliseconds.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

const missingPassword = "N/A"

var ErrUnknownFormat = errors.New("unknown export format")

var csvHeader = []string{"Network Name", "Password", "Security", "Signal Strength", "Last Connected", "Status"}

// Format is an export file format.
type Format int

const (
	CSV Format = iota
	JSON
)

func (f Format) String() string {
	switch f {
	case CSV:
		return "csv"
	case JSON:
		return "json"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Extension is the file extension, without the dot.
func (f Format) Extension() string { return f.String() }

// MIMEType is the media type of the format.
func (f Format) MIMEType() string {
	switch f {
	case CSV:
		return "text/csv"
	case JSON:
		return "application/json"
	}
	return "application/octet-stream"
}

// ParseFormat accepts "csv" or "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return CSV, nil
	case "json":
		return JSON, nil
	}
	return CSV, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Filename returns "<base>-<YYYY-MM-DD>.<ext>" using the UTC date of now.
func Filename(base string, f Format, now time.Time) string {
	if base == "" {
		base = DefaultBaseName
	}
	return fmt.Sprintf("%s-%s.%s", base, now.UTC().Format("2006-01-02"), f.Extension())
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// WriteCSV writes the header and one row per record. Text columns are always
// quoted; rows are separated by "\n" without a trailing newline.
func WriteCSV(w io.Writer, records []profile.Record) error {
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, strings.Join(csvHeader, ","))
	for _, r := range records {
		password := missingPassword
		if r.Password != nil {
			password = *r.Password
		}
		status := "Disconnected"
		if r.Connected {
			status = "Connected"
		}
		lines = append(lines, strings.Join([]string{
			quote(r.Name),
			quote(password),
			quote(r.Security),
			strconv.Itoa(r.Signal),
			quote(formatTimestamp(r.LastConnected)),
			status,
		}, ","))
	}
	if _, err := io.WriteString(w, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// Document is the JSON export envelope.
type Document struct {
	ExportDate    string  `json:"exportDate"`
	TotalProfiles int     `json:"totalProfiles"`
	Profiles      []Entry `json:"profiles"`
}

// Entry is one exported profile. Password is null when no secret is stored.
type Entry struct {
	Name           string  `json:"name"`
	Password       *string `json:"password"`
	Security       string  `json:"security"`
	SignalStrength int     `json:"signalStrength"`
	LastConnected  string  `json:"lastConnected"`
	IsConnected    bool    `json:"isConnected"`
}

// NewDocument builds the JSON envelope for records.
func NewDocument(records []profile.Record, exportedAt time.Time) Document {
	doc := Document{
		ExportDate:    formatTimestamp(exportedAt),
		TotalProfiles: len(records),
		Profiles:      make([]Entry, len(records)),
	}
	for i, r := range records {
		doc.Profiles[i] = Entry{
			Name:           r.Name,
			Password:       r.Password,
			Security:       r.Security,
			SignalStrength: r.Signal,
			LastConnected:  formatTimestamp(r.LastConnected),
			IsConnected:    r.Connected,
		}
	}
	return doc
}

// WriteJSON writes the records as an indented JSON document.
func WriteJSON(w io.Writer, records []profile.Record, exportedAt time.Time) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(NewDocument(records, exportedAt)); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// Decode reads a JSON export back.
func Decode(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode export: %w", err)
	}
	return doc, nil
}

// Encode serializes records in format f.
func Encode(f Format, records []profile.Record, now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch f {
	case CSV:
		err = WriteCSV(&buf, records)
	case JSON:
		err = WriteJSON(&buf, records, now)
	default:
		err = fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Result describes a written export file.
type Result struct {
	Path     string
	Format   Format
	Profiles int
	Bytes    int64
}

// Exporter writes export files into Dir.
type Exporter struct {
	Dir      string
	BaseName string
	Now      func() time.Time
}

func (e Exporter) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// Export encodes records and writes them to Dir/Filename(...). The file
// holds secrets, so it is created owner-readable only.
func (e Exporter) Export(records []profile.Record, f Format) (Result, error) {
	now := e.now()
	data, err := Encode(f, records, now)
	if err != nil {
		return Result{}, err
	}

	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create export directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, Filename(e.BaseName, f, now))
	if err := writeSecretFile(path, data); err != nil {
		return Result{}, fmt.Errorf("write export %s: %w", path, err)
	}
	return Result{Path: path, Format: f, Profiles: len(records), Bytes: int64(len(data))}, nil
}

// writeSecretFile replaces path atomically with a file readable only by the
// owner, whatever the mode of a file it overwrites.
func writeSecretFile(path string, data []byte) error {
	perm := os.FileMode(0o600)
	if runtime.GOOS == "windows" {
		perm = 0o644
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
