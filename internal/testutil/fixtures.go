// internal/testutil/fixtures.go
package testutil

// Fixture data para tests (valores primitivos solamente, sin dependencias de domain)

// FixtureEmails contiene emails válidos de prueba.
var FixtureEmails = []string{
	"user@example.com",
	"admin@spotify.com",
	"first.last+tag@mail.example.org",
}

// FixtureInvalidEmails contiene candidatos que no deben validar como email.
var FixtureInvalidEmails = []string{
	"",
	"not an email",
	"user@",
	"@example.com",
	"user@example",
	"user @example.com",
	"us er@example.com",
}

// FixtureLinks contiene URLs absolutas válidas.
var FixtureLinks = []string{
	"https://spotify.com",
	"https://www.spotify.com/login",
	"http://accounts.google.com/signin",
	"https://netflix.com/account",
}

// FixtureInvalidLinks contiene valores que no deben validar como link.
var FixtureInvalidLinks = []string{
	"",
	"spotify.com",
	"ftp://example.com",
	"https://user@example.com/profile",
	"not a url",
}

// FixtureDirtyServices contiene campos service sucios reales de parsers.
var FixtureDirtyServices = []string{
	"spotify.com",
	"Spotify (music)",
	"https://netflix.com/login",
	"Google user@gmail.com",
	"github.com (work)",
}
