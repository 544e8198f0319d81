package store

import (
	"fmt"
	"strings"

	"wifiview/gonetworkmanager"
)

// Open selects a Source by name: "fixture", "file" (path required) or
// "nmcli".
func Open(kind, path string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "fixture":
		return Fixture(), nil
	case "file":
		if path == "" {
			return nil, fmt.Errorf("file source needs a path (--file)")
		}
		return &FileSource{Path: path}, nil
	case "nmcli":
		if err := gonetworkmanager.CheckAvailable(); err != nil {
			return nil, err
		}
		return gonetworkmanager.NewSource(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSource, kind)
}
