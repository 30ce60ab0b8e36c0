package usecases

import (
	"testing"

	"accountx/internal/core/domain"
	"accountx/internal/platform/logx"
	"accountx/internal/testutil"
)

func newTestNormalizer() *NormalizeService {
	return NewNormalizeService(nil, logx.NewSilent())
}

func TestNormalize_CleanRecord(t *testing.T) {
	n := newTestNormalizer().Normalize(domain.RawAccountRecord{
		ID:           "r1",
		Service:      "Spotify",
		AccountEmail: "u@x.com",
		Metadata:     domain.Metadata{domain.MetaLink: "https://spotify.com"},
	})

	testutil.AssertEqual(t, n.ProviderEmail, "u@x.com", "email copied")
	testutil.AssertEqual(t, n.ServiceLink, "https://spotify.com", "link copied")
	testutil.AssertEqual(t, n.ServiceName, "Spotify", "name copied")
	testutil.AssertFalse(t, n.NeedsReview, "all three fields valid")
	testutil.AssertFalse(t, n.NormalizationApplied, "nothing inferred")
}

func TestNormalize_SwappedFields(t *testing.T) {
	t.Run("email hiding in service field", func(t *testing.T) {
		n := newTestNormalizer().Normalize(domain.RawAccountRecord{
			ID:      "r1",
			Service: "Google user@gmail.com",
		})

		testutil.AssertEqual(t, n.ProviderEmail, "user@gmail.com", "email extracted from service")
		testutil.AssertContains(t, n.InferredFields, "providerEmail", "email marked inferred")
		testutil.AssertEqual(t, n.ServiceName, "Google", "name derived from email domain")
		testutil.AssertTrue(t, n.NormalizationApplied, "inference happened")
	})

	t.Run("url in service field", func(t *testing.T) {
		n := newTestNormalizer().Normalize(domain.RawAccountRecord{
			ID:      "r1",
			Service: "https://netflix.com/login",
		})

		testutil.AssertEqual(t, n.ServiceLink, "https://netflix.com/login", "link extracted from service")
		testutil.AssertEqual(t, n.ServiceName, "Netflix", "name derived from link domain")
		testutil.AssertContains(t, n.InferredFields, "serviceLink", "link marked inferred")
		testutil.AssertContains(t, n.InferredFields, "serviceName", "name marked inferred")
	})
}

func TestNormalize_DomainAsService(t *testing.T) {
	t.Run("known domain maps through the table", func(t *testing.T) {
		n := newTestNormalizer().Normalize(domain.RawAccountRecord{ID: "r1", Service: "spotify.com"})
		testutil.AssertEqual(t, n.ServiceName, "Spotify", "known domain display name")
	})

	t.Run("unknown domain capitalizes base label", func(t *testing.T) {
		n := newTestNormalizer().Normalize(domain.RawAccountRecord{ID: "r1", Service: "myservice.net"})
		testutil.AssertEqual(t, n.ServiceName, "Myservice", "fallback display name")
	})

	t.Run("parenthetical suffix stripped first", func(t *testing.T) {
		n := newTestNormalizer().Normalize(domain.RawAccountRecord{ID: "r1", Service: "github.com (work)"})
		testutil.AssertEqual(t, n.ServiceName, "GitHub", "suffix removed before domain lookup")
	})
}

func TestNormalize_SynthesizedLink(t *testing.T) {
	n := newTestNormalizer().Normalize(domain.RawAccountRecord{
		ID:           "r1",
		Service:      "My Bank",
		AccountEmail: "u@x.com",
	})

	testutil.AssertEqual(t, n.ServiceLink, "https://mybank.com", "best-effort link synthesized")
	testutil.AssertContains(t, n.InferredFields, "serviceLink", "synthesized link marked inferred")
	testutil.AssertFalse(t, n.NeedsReview, "synthesized link is still a valid link")
}

func TestNormalize_NeedsReview(t *testing.T) {
	t.Run("nothing usable", func(t *testing.T) {
		n := newTestNormalizer().Normalize(domain.RawAccountRecord{ID: "r1"})
		testutil.AssertTrue(t, n.NeedsReview, "no canonical field could be established")
	})

	t.Run("email only, name derived, link still missing", func(t *testing.T) {
		n := newTestNormalizer().Normalize(domain.RawAccountRecord{
			ID:           "r1",
			AccountEmail: "u@spotify.com",
		})
		testutil.AssertEqual(t, n.ServiceName, "Spotify", "name from email domain")
		testutil.AssertTrue(t, n.NeedsReview, "link was never established")
	})

	t.Run("never panics on garbage", func(t *testing.T) {
		n := newTestNormalizer().Normalize(domain.RawAccountRecord{
			ID:           "r1",
			Service:      "@@@ ://",
			AccountEmail: "definitely not an email",
		})
		testutil.AssertTrue(t, n.NeedsReview, "garbage flagged for review")
	})
}

func TestNormalize_LinkFromCombinedMetadata(t *testing.T) {
	n := newTestNormalizer().Normalize(domain.RawAccountRecord{
		ID:       "r1",
		Service:  "Spotify",
		Metadata: domain.Metadata{domain.MetaLink: "https://spotify.com,https://spotify.com/extra"},
	})
	testutil.AssertEqual(t, n.ServiceLink, "https://spotify.com", "first valid link from combined value")
}

func TestNormalizeAll(t *testing.T) {
	out := newTestNormalizer().NormalizeAll([]domain.RawAccountRecord{
		{ID: "r1", Service: "Spotify"},
		{ID: "r2", Service: "Netflix"},
	})
	testutil.AssertEqual(t, len(out), 2, "order and length preserved")
	testutil.AssertEqual(t, out[0].ServiceName, "Spotify", "first record")
}
