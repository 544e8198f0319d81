package store

import (
	"context"
	"time"

	"wifiview/profile"
)

// FixtureSource serves the built-in demo profiles. Timestamps are relative
// to the moment of loading.
type FixtureSource struct {
	Now func() time.Time
}

// Fixture returns the default demo source.
func Fixture() *FixtureSource {
	return &FixtureSource{Now: time.Now}
}

func (f *FixtureSource) Name() string { return "fixture" }

func (f *FixtureSource) Load(ctx context.Context) ([]profile.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := time.Now()
	if f.Now != nil {
		now = f.Now()
	}
	ago := func(d time.Duration) time.Time { return now.Add(-d) }
	pw := profile.StringPtr

	return []profile.Record{
		{ID: "1", Name: "HomeNetwork_5G", Password: pw("MySecurePassword123!"), Security: "WPA2", Signal: 95, LastConnected: ago(10 * time.Minute), Connected: true},
		{ID: "2", Name: "Office_WiFi", Password: pw("CorporateNet2024"), Security: "WPA2-Enterprise", Signal: 78, LastConnected: ago(18 * time.Hour)},
		{ID: "3", Name: "Coffee_Shop_Guest", Password: nil, Security: profile.OpenSecurity, Signal: 45, LastConnected: ago(3 * 24 * time.Hour)},
		{ID: "4", Name: "Neighbor_Network", Password: pw("neighbor456"), Security: "WPA3", Signal: 32, LastConnected: ago(12 * 24 * time.Hour)},
		{ID: "5", Name: "Airport_Free_WiFi", Password: nil, Security: profile.OpenSecurity, Signal: 0, LastConnected: ago(30 * 24 * time.Hour)},
		{ID: "6", Name: "Hotel_Guest_Access", Password: pw("Welcome2024"), Security: "WPA2", Signal: 0, LastConnected: ago(45 * 24 * time.Hour)},
		{ID: "7", Name: "Library_Public", Password: nil, Security: profile.OpenSecurity, Signal: 62, LastConnected: ago(5 * time.Hour)},
		{ID: "8", Name: "Mobile_Hotspot", Password: pw("hotspot2024"), Security: "WPA3", Signal: 88, LastConnected: ago(2 * 24 * time.Hour)},
		{ID: "9", Name: "Legacy_Router", Password: pw("0123456789"), Security: "WEP", Signal: 51, LastConnected: ago(90 * 24 * time.Hour)},
	}, nil
}
