package domain

import (
	"testing"
	"time"

	"accountx/internal/testutil"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("bad fixture time %q: %v", s, err)
	}
	return ts
}

func TestMerger_FieldSurvival(t *testing.T) {
	merger := NewMerger(nil)

	existing := NewConsolidated(RawAccountRecord{
		ID:           "rec-1",
		Service:      "Spotify",
		AccountEmail: "user@x.com",
		Source:       "Chrome",
		Metadata: Metadata{
			MetaUsername: "olduser",
			MetaPassword: "p1",
			MetaLink:     "https://spotify.com",
			MetaPlatform: "desktop",
		},
	})

	incoming := NewConsolidated(RawAccountRecord{
		ID:           "rec-2",
		Service:      "Spotify Inc",
		AccountEmail: "USER@X.COM",
		Source:       "Gmail",
		Metadata: Metadata{
			MetaUsername: "newuser",
			MetaPassword: "p2",
			MetaLink:     "https://www.spotify.com/login",
			"notes":      "from mailbox scan",
		},
	})

	merged := merger.Merge(existing, incoming)

	t.Run("incoming id wins", func(t *testing.T) {
		testutil.AssertEqual(t, merged.ID, "rec-2", "id should be incoming")
	})

	t.Run("incoming non-empty service and email win", func(t *testing.T) {
		testutil.AssertEqual(t, merged.Service, "Spotify Inc", "service from incoming")
		testutil.AssertEqual(t, merged.AccountEmail, "USER@X.COM", "email from incoming")
	})

	t.Run("known credentials never overwritten", func(t *testing.T) {
		testutil.AssertEqual(t, merged.Meta(MetaUsername), "olduser", "existing username has priority")
		testutil.AssertEqual(t, merged.Meta(MetaPassword), "p1", "existing password has priority")
	})

	t.Run("links combined", func(t *testing.T) {
		testutil.AssertEqual(t, merged.Meta(MetaLink),
			"https://spotify.com,https://www.spotify.com/login", "link union")
	})

	t.Run("source recomputed from combined link", func(t *testing.T) {
		testutil.AssertEqual(t, merged.Source, "Unknown", "spotify.com is not a source domain")
	})

	t.Run("other metadata keeps existing else incoming", func(t *testing.T) {
		testutil.AssertEqual(t, merged.Meta(MetaPlatform), "desktop", "platform kept")
		testutil.AssertEqual(t, merged.Meta("notes"), "from mailbox scan", "new key adopted")
	})

	t.Run("sources unioned in insertion order", func(t *testing.T) {
		testutil.AssertLen(t, merged.AllSources, 2, "two sources")
		testutil.AssertEqual(t, merged.AllSources[0], "Chrome", "existing source first")
		testutil.AssertEqual(t, merged.AllSources[1], "Gmail", "incoming source second")
	})

	t.Run("inputs not mutated", func(t *testing.T) {
		testutil.AssertEqual(t, existing.Meta(MetaLink), "https://spotify.com", "existing untouched")
		testutil.AssertEqual(t, incoming.ID, "rec-2", "incoming untouched")
	})
}

func TestMerger_EmptyIncomingNeverClobbers(t *testing.T) {
	merger := NewMerger(nil)

	existing := NewConsolidated(RawAccountRecord{
		ID:           "a",
		Service:      "Netflix",
		AccountEmail: "u@x.com",
		Metadata:     Metadata{MetaUsername: "u1", MetaPassword: "secret"},
	})
	incoming := NewConsolidated(RawAccountRecord{ID: "b"})

	merged := merger.Merge(existing, incoming)

	testutil.AssertEqual(t, merged.Service, "Netflix", "empty incoming service ignored")
	testutil.AssertEqual(t, merged.AccountEmail, "u@x.com", "empty incoming email ignored")
	testutil.AssertEqual(t, merged.Meta(MetaUsername), "u1", "username survives")
	testutil.AssertEqual(t, merged.Meta(MetaPassword), "secret", "password survives")
	testutil.AssertEqual(t, merged.ID, "b", "id still follows incoming")
}

func TestMerger_WorstOfVerdicts(t *testing.T) {
	merger := NewMerger(nil)

	t.Run("weak beats strong in either direction", func(t *testing.T) {
		a := NewConsolidated(RawAccountRecord{ID: "a", Metadata: Metadata{MetaPasswordStrength: StrengthWeak}})
		b := NewConsolidated(RawAccountRecord{ID: "b", Metadata: Metadata{MetaPasswordStrength: StrengthStrong}})

		testutil.AssertEqual(t, merger.Merge(a, b).Meta(MetaPasswordStrength), StrengthWeak, "weak survives as existing")
		testutil.AssertEqual(t, merger.Merge(b, a).Meta(MetaPasswordStrength), StrengthWeak, "weak survives as incoming")
	})

	t.Run("any verdict beats unset", func(t *testing.T) {
		a := NewConsolidated(RawAccountRecord{ID: "a"})
		b := NewConsolidated(RawAccountRecord{ID: "b", Metadata: Metadata{MetaPasswordStrength: StrengthModerate}})

		testutil.AssertEqual(t, merger.Merge(a, b).Meta(MetaPasswordStrength), StrengthModerate, "moderate beats unset")
	})

	t.Run("recommendation follows the same ordering", func(t *testing.T) {
		a := NewConsolidated(RawAccountRecord{ID: "a", Metadata: Metadata{MetaPasswordRecommendation: StrengthModerate}})
		b := NewConsolidated(RawAccountRecord{ID: "b", Metadata: Metadata{MetaPasswordRecommendation: StrengthWeak}})

		testutil.AssertEqual(t, merger.Merge(a, b).Meta(MetaPasswordRecommendation), StrengthWeak, "weaker recommendation survives")
	})
}

func TestMerger_DiscoveryDates(t *testing.T) {
	merger := NewMerger(nil)

	early := mustTime(t, "2024-01-01T00:00:00Z")
	late := mustTime(t, "2025-06-01T00:00:00Z")

	a := NewConsolidated(RawAccountRecord{ID: "a", DiscoveredAt: late})
	b := NewConsolidated(RawAccountRecord{ID: "b", DiscoveredAt: early})

	merged := merger.Merge(a, b)
	testutil.AssertEqual(t, merged.FirstDiscoveredAt, early, "first = min")
	testutil.AssertEqual(t, merged.LastDiscoveredAt, late, "last = max")
}

func TestMerger_SourceRelabel(t *testing.T) {
	merger := NewMerger(nil)

	a := NewConsolidated(RawAccountRecord{ID: "a", Source: "CSV"})
	b := NewConsolidated(RawAccountRecord{
		ID:       "b",
		Metadata: Metadata{MetaLink: "https://accounts.google.com/signin"},
	})

	merged := merger.Merge(a, b)
	testutil.AssertEqual(t, merged.Source, "Google", "source rederived from link domain")
}

func TestWeakerVerdict(t *testing.T) {
	tests := []struct {
		a, b, want string
	}{
		{StrengthWeak, StrengthStrong, StrengthWeak},
		{StrengthStrong, StrengthWeak, StrengthWeak},
		{StrengthModerate, StrengthStrong, StrengthModerate},
		{"", StrengthStrong, StrengthStrong},
		{StrengthWeak, "", StrengthWeak},
		{"", "", ""},
	}
	for _, tt := range tests {
		testutil.AssertEqual(t, WeakerVerdict(tt.a, tt.b), tt.want, "weaker of "+tt.a+"/"+tt.b)
	}
}
