package validator

import (
	"testing"

	"accountx/internal/testutil"
)

func TestIsEmail(t *testing.T) {
	t.Run("accepts valid emails", func(t *testing.T) {
		for _, email := range testutil.FixtureEmails {
			testutil.AssertTrue(t, IsEmail(email), "should accept "+email)
		}
	})

	t.Run("rejects invalid emails", func(t *testing.T) {
		for _, email := range testutil.FixtureInvalidEmails {
			testutil.AssertFalse(t, IsEmail(email), "should reject "+email)
		}
	})

	t.Run("rejects double at", func(t *testing.T) {
		testutil.AssertFalse(t, IsEmail("a@b@c.com"), "should reject a@b@c.com")
	})
}

func TestIsLink(t *testing.T) {
	t.Run("accepts valid links", func(t *testing.T) {
		for _, link := range testutil.FixtureLinks {
			testutil.AssertTrue(t, IsLink(link), "should accept "+link)
		}
	})

	t.Run("rejects invalid links", func(t *testing.T) {
		for _, link := range testutil.FixtureInvalidLinks {
			testutil.AssertFalse(t, IsLink(link), "should reject "+link)
		}
	})
}

func TestIsServiceName(t *testing.T) {
	t.Run("accepts human readable names", func(t *testing.T) {
		testutil.AssertTrue(t, IsServiceName("Spotify"), "plain name")
		testutil.AssertTrue(t, IsServiceName("My Bank - Online"), "name with punctuation")
		testutil.AssertTrue(t, IsServiceName("spotify.com"), "bare domain is still readable")
	})

	t.Run("rejects emails urls and out-of-range lengths", func(t *testing.T) {
		testutil.AssertFalse(t, IsServiceName("user@spotify.com"), "contains @")
		testutil.AssertFalse(t, IsServiceName("https://spotify.com"), "contains scheme")
		testutil.AssertFalse(t, IsServiceName(""), "empty")

		long := make([]byte, 201)
		for i := range long {
			long[i] = 'a'
		}
		testutil.AssertFalse(t, IsServiceName(string(long)), "over 200 chars")
	})
}

func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"WWW.Spotify.COM", "spotify.com"},
		{"spotify.com/", "spotify.com"},
		{"spotify.com.", "spotify.com"},
		{"  accounts.google.com  ", "accounts.google.com"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			testutil.AssertEqual(t, NormalizeDomain(tt.in), tt.want, "normalized domain")
		})
	}
}

func TestHostname(t *testing.T) {
	testutil.AssertEqual(t, Hostname("https://www.spotify.com/login"), "spotify.com", "strips www and path")
	testutil.AssertEqual(t, Hostname("not a url"), "", "invalid url yields empty")
}

func TestBaseDomain(t *testing.T) {
	testutil.AssertEqual(t, BaseDomain("accounts.spotify.com"), "spotify.com", "subdomain collapses to registrable domain")
	testutil.AssertEqual(t, BaseDomain("spotify.co.uk"), "spotify.co.uk", "public suffix respected")
	testutil.AssertEqual(t, BaseLabel("login.netflix.com"), "netflix", "base label")
	testutil.AssertEqual(t, TLD("spotify.org"), "org", "tld")
}

func TestExtractEmail(t *testing.T) {
	t.Run("whole string", func(t *testing.T) {
		testutil.AssertEqual(t, ExtractEmail("user@example.com"), "user@example.com", "plain email")
	})

	t.Run("embedded in service field", func(t *testing.T) {
		testutil.AssertEqual(t, ExtractEmail("Google user@gmail.com"), "user@gmail.com", "email after name")
		testutil.AssertEqual(t, ExtractEmail("John Doe <john@corp.com>"), "john@corp.com", "angle brackets")
	})

	t.Run("no email present", func(t *testing.T) {
		testutil.AssertEqual(t, ExtractEmail("Spotify"), "", "no email")
		testutil.AssertEqual(t, ExtractEmail(""), "", "empty")
	})
}

func TestExtractLink(t *testing.T) {
	t.Run("whole string", func(t *testing.T) {
		testutil.AssertEqual(t, ExtractLink("https://spotify.com"), "https://spotify.com", "plain link")
	})

	t.Run("embedded in service field", func(t *testing.T) {
		testutil.AssertEqual(t, ExtractLink("Netflix https://netflix.com/login"), "https://netflix.com/login", "link after name")
	})

	t.Run("strips embedded userinfo", func(t *testing.T) {
		testutil.AssertEqual(t, ExtractLink("https://user@spotify.com/account"), "https://spotify.com/account", "userinfo removed")
	})

	t.Run("no link present", func(t *testing.T) {
		testutil.AssertEqual(t, ExtractLink("spotify.com"), "", "bare domain is not a link")
	})
}
