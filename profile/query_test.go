package profile

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"
)

var baseTime = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

func scenarioRecords() []Record {
	return []Record{
		{ID: "1", Name: "Home", Password: StringPtr("abc12345"), Security: "WPA2", Signal: 90, Connected: true, LastConnected: baseTime},
		{ID: "2", Name: "Cafe", Password: nil, Security: OpenSecurity, Signal: 40, Connected: false, LastConnected: baseTime.Add(-48 * time.Hour)},
	}
}

// randomRecords builds a reproducible record set with colliding names,
// signals and timestamps so ties are exercised.
func randomRecords(seed int64, n int) []Record {
	rng := rand.New(rand.NewSource(seed))
	names := []string{"Home", "home-5G", "Café", "Office", "Airport Free", "Library", "Guest", "ÉCOLE", "zeta", "Alpha"}
	securities := []string{OpenSecurity, "WPA2", "WPA3", "WEP"}
	out := make([]Record, n)
	for i := range out {
		r := Record{
			ID:            fmt.Sprintf("id-%03d", i),
			Name:          names[rng.Intn(len(names))],
			Security:      securities[rng.Intn(len(securities))],
			Signal:        rng.Intn(5) * 25,
			LastConnected: baseTime.Add(-time.Duration(rng.Intn(4)) * time.Hour),
			Connected:     rng.Intn(4) == 0,
		}
		if !r.IsOpen() {
			r.Password = StringPtr(fmt.Sprintf("pw-%d", i))
		}
		out[i] = r
	}
	return out
}

func names(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func TestApply_Scenario(t *testing.T) {
	records := scenarioRecords()

	got := Apply(records, Query{Filter: FilterOpen}, nil)
	if len(got) != 1 || got[0].Name != "Cafe" {
		t.Fatalf("filter=open: expected [Cafe], got %v", names(got))
	}

	got = Apply(records, Query{Sort: SortBySignal}, nil)
	if strings.Join(names(got), ",") != "Home,Cafe" {
		t.Fatalf("sort=signal: expected [Home Cafe], got %v", names(got))
	}

	got = Apply(records, Query{Sort: SortByName}, nil)
	if strings.Join(names(got), ",") != "Cafe,Home" {
		t.Fatalf("sort=name: expected [Cafe Home], got %v", names(got))
	}
}

func TestApply_SearchMatchesNameOnly(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		records := randomRecords(seed, 40)
		for _, term := range []string{"", "home", "HOME", "é", "free", "x"} {
			got := Apply(records, Query{Search: term}, nil)
			in := make(map[string]bool, len(got))
			for _, r := range got {
				in[r.ID] = true
				if !strings.Contains(strings.ToLower(r.Name), strings.ToLower(term)) {
					t.Fatalf("seed %d term %q: %q should not be visible", seed, term, r.Name)
				}
			}
			for _, r := range records {
				matches := strings.Contains(strings.ToLower(r.Name), strings.ToLower(term))
				if matches && !in[r.ID] {
					t.Fatalf("seed %d term %q: %q should be visible", seed, term, r.Name)
				}
			}
		}
	}
}

func TestApply_SearchDoesNotMatchSecurityOrPassword(t *testing.T) {
	records := []Record{{ID: "a", Name: "Lounge", Security: "WPA2", Password: StringPtr("wpa2secret")}}
	if got := Apply(records, Query{Search: "wpa"}, nil); len(got) != 0 {
		t.Fatalf("search must only look at the name, got %v", names(got))
	}
}

func TestApply_FilterPartitions(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		records := randomRecords(seed, 50)
		secured := Apply(records, Query{Filter: FilterSecured}, nil)
		open := Apply(records, Query{Filter: FilterOpen}, nil)
		connected := Apply(records, Query{Filter: FilterConnected}, nil)
		all := Apply(records, Query{Filter: FilterAll}, nil)

		if len(all) != len(records) {
			t.Fatalf("seed %d: filter=all should keep %d records, got %d", seed, len(records), len(all))
		}
		if len(secured)+len(open) != len(records) {
			t.Fatalf("seed %d: secured(%d)+open(%d) != total(%d)", seed, len(secured), len(open), len(records))
		}
		for _, r := range secured {
			if r.IsOpen() {
				t.Fatalf("seed %d: open record %s in secured subset", seed, r.ID)
			}
		}
		for _, r := range open {
			if !r.IsOpen() {
				t.Fatalf("seed %d: secured record %s in open subset", seed, r.ID)
			}
		}
		wantConnected := 0
		for _, r := range records {
			if r.Connected {
				wantConnected++
			}
		}
		if len(connected) != wantConnected {
			t.Fatalf("seed %d: expected %d connected, got %d", seed, wantConnected, len(connected))
		}
		for _, r := range connected {
			if !r.Connected {
				t.Fatalf("seed %d: disconnected record %s in connected subset", seed, r.ID)
			}
		}

		stats := ComputeStats(records)
		if stats.Secured != len(secured) || stats.Open != len(open) || stats.Connected != wantConnected || stats.Total != len(records) {
			t.Fatalf("seed %d: stats %+v disagree with filters", seed, stats)
		}
	}
}

func TestApply_SortOrders(t *testing.T) {
	collator := NewCollator(language.English)
	for seed := int64(1); seed <= 20; seed++ {
		records := randomRecords(seed, 60)

		bySignal := Apply(records, Query{Sort: SortBySignal}, collator)
		for i := 1; i < len(bySignal); i++ {
			if bySignal[i-1].Signal < bySignal[i].Signal {
				t.Fatalf("seed %d: signal order broken at %d", seed, i)
			}
			if bySignal[i-1].Signal == bySignal[i].Signal && bySignal[i-1].ID > bySignal[i].ID {
				t.Fatalf("seed %d: tie at %d not broken by ID", seed, i)
			}
		}

		byTime := Apply(records, Query{Sort: SortByLastConnected}, collator)
		for i := 1; i < len(byTime); i++ {
			if byTime[i-1].LastConnected.Before(byTime[i].LastConnected) {
				t.Fatalf("seed %d: lastConnected order broken at %d", seed, i)
			}
		}

		byName := Apply(records, Query{Sort: SortByName}, collator)
		for i := 1; i < len(byName); i++ {
			if collator.CompareString(byName[i-1].Name, byName[i].Name) > 0 {
				t.Fatalf("seed %d: name order broken at %d (%q > %q)", seed, i, byName[i-1].Name, byName[i].Name)
			}
		}
	}
}

func TestApply_NameSortIsLocaleAware(t *testing.T) {
	records := []Record{
		{ID: "1", Name: "zeta"},
		{ID: "2", Name: "École"},
		{ID: "3", Name: "alpha"},
		{ID: "4", Name: "Beta"},
	}
	got := Apply(records, Query{Sort: SortByName}, nil)
	want := "alpha,Beta,École,zeta"
	if strings.Join(names(got), ",") != want {
		t.Fatalf("expected %s, got %v", want, names(got))
	}
}

func TestApply_DoesNotReorderInput(t *testing.T) {
	records := scenarioRecords()
	_ = Apply(records, Query{Sort: SortByName}, nil)
	if records[0].Name != "Home" || records[1].Name != "Cafe" {
		t.Fatalf("input slice was reordered: %v", names(records))
	}
}

func TestEngine_Memoizes(t *testing.T) {
	e := NewEngine(language.English)
	records := scenarioRecords()

	first := e.Visible(records, Query{Sort: SortBySignal})
	second := e.Visible(records, Query{Sort: SortBySignal})
	if &first[0] != &second[0] {
		t.Fatalf("expected cached result for unchanged inputs")
	}

	third := e.Visible(records, Query{Sort: SortByName})
	if third[0].Name != "Cafe" {
		t.Fatalf("expected recompute after query change, got %v", names(third))
	}

	reloaded := append([]Record(nil), records...)
	fourth := e.Visible(reloaded, Query{Sort: SortByName})
	if &fourth[0] == &third[0] {
		t.Fatalf("expected recompute for a new snapshot")
	}
}

func TestParseSortKeyAndFilter(t *testing.T) {
	cases := []struct {
		in   string
		want SortKey
	}{
		{"name", SortByName},
		{"signal", SortBySignal},
		{"lastConnected", SortByLastConnected},
		{"LASTCONNECTED", SortByLastConnected},
	}
	for _, c := range cases {
		got, err := ParseSortKey(c.in)
		if err != nil || got != c.want {
			t.Fatalf("ParseSortKey(%q) = %v, %v", c.in, got, err)
		}
		if got.String() != sortKeyNames[c.want] {
			t.Fatalf("String() round trip failed for %q", c.in)
		}
	}
	if _, err := ParseSortKey("size"); !errors.Is(err, ErrUnknownSort) {
		t.Fatalf("expected ErrUnknownSort, got %v", err)
	}

	for i, name := range filterNames {
		got, err := ParseFilter(name)
		if err != nil || got != Filter(i) {
			t.Fatalf("ParseFilter(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseFilter("hidden"); !errors.Is(err, ErrUnknownFilter) {
		t.Fatalf("expected ErrUnknownFilter, got %v", err)
	}

	if FilterOpen.Next() != FilterAll || SortByLastConnected.Next() != SortByName {
		t.Fatalf("Next should wrap around")
	}
}
