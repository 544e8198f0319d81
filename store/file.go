package store

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"

	"wifiview/profile"
)

// profileNamespace seeds the IDs derived for file entries without one.
var profileNamespace = uuid.MustParse("6f0c1b6e-4a0e-4b7e-9a51-3f1d2c7e8a90")

// FileSource reads profiles from a YAML or JSON file. Both the native layout
// (snake_case keys) and a JSON export written by this tool are accepted.
type FileSource struct {
	Path string

	warnings []error
}

type fileDocument struct {
	Profiles []fileEntry `yaml:"profiles"`
}

type fileEntry struct {
	ID       string  `yaml:"id"`
	Name     string  `yaml:"name"`
	Password *string `yaml:"password"`
	Security string  `yaml:"security"`

	Signal         *int `yaml:"signal"`
	SignalStrength *int `yaml:"signalStrength"`

	LastConnected    string `yaml:"last_connected"`
	LastConnectedAlt string `yaml:"lastConnected"`

	Connected   bool `yaml:"connected"`
	IsConnected bool `yaml:"isConnected"`
}

func (f *FileSource) Name() string { return "file:" + f.Path }

// Warnings lists the entries skipped by the last Load.
func (f *FileSource) Warnings() []error { return f.warnings }

func (f *FileSource) Load(ctx context.Context) ([]profile.Record, error) {
	f.warnings = nil
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read profile file: %w", err)
	}

	var top any
	if err := yaml.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.Path, err)
	}
	var doc fileDocument
	if _, isList := top.([]any); isList {
		err = yaml.Unmarshal(data, &doc.Profiles)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.Path, err)
	}

	records := make([]profile.Record, 0, len(doc.Profiles))
	usedIDs := make(map[string]int)
	for i, e := range doc.Profiles {
		r, err := e.record()
		if err != nil {
			f.warnings = append(f.warnings, fmt.Errorf("entry %d: %w", i+1, err))
			continue
		}
		if r.ID == "" {
			r.ID = derivedID(r.Name, usedIDs)
		}
		records = append(records, r)
	}
	return records, nil
}

func (e fileEntry) record() (profile.Record, error) {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return profile.Record{}, fmt.Errorf("missing name")
	}

	signal := 0
	switch {
	case e.Signal != nil:
		signal = *e.Signal
	case e.SignalStrength != nil:
		signal = *e.SignalStrength
	}
	if signal < 0 || signal > 100 {
		return profile.Record{}, fmt.Errorf("%s: signal %d outside 0-100", name, signal)
	}

	var last time.Time
	raw := e.LastConnected
	if raw == "" {
		raw = e.LastConnectedAlt
	}
	if raw != "" {
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return profile.Record{}, fmt.Errorf("%s: bad timestamp %q: %w", name, raw, err)
		}
		last = t
	}

	security := strings.TrimSpace(e.Security)
	if security == "" {
		security = profile.OpenSecurity
	}

	return profile.Record{
		ID:            strings.TrimSpace(e.ID),
		Name:          e.Name,
		Password:      e.Password,
		Security:      security,
		Signal:        signal,
		LastConnected: last,
		Connected:     e.Connected || e.IsConnected,
	}, nil
}

// derivedID is stable for a given name; repeated names get a counter.
func derivedID(name string, used map[string]int) string {
	n := used[name]
	used[name] = n + 1
	key := name
	if n > 0 {
		key = fmt.Sprintf("%s#%d", name, n)
	}
	return uuid.NewSHA1(profileNamespace, []byte(key)).String()
}
