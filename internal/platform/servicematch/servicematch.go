// Package servicematch decides whether two discovered records point at the
// same logical service. It is pure and order-independent: Same(a, b) always
// equals Same(b, a).
package servicematch

import (
	"strings"

	"accountx/internal/platform/validator"
)

// similarityThreshold is the minimum Jaccard index over word sets for two
// service names to be considered the same service.
const similarityThreshold = 0.85

// minContainmentLen guards the containment rung against accidental substring
// collisions ("Go" inside "Google").
const minContainmentLen = 4

// stopwords are filler words removed before token comparison.
var stopwords = map[string]bool{
	"the":     true,
	"and":     true,
	"for":     true,
	"with":    true,
	"app":     true,
	"service": true,
	"portal":  true,
	"account": true,
}

// businessSuffixes are trailing legal-entity tokens stripped during name
// normalization.
var businessSuffixes = map[string]bool{
	"inc":  true,
	"llc":  true,
	"ltd":  true,
	"corp": true,
	"co":   true,
	"gmbh": true,
}

// equivalentTLDs are the suffixes considered interchangeable when two
// hostnames share a base label (spotify.com vs spotify.io).
var equivalentTLDs = map[string]bool{
	"com": true,
	"org": true,
	"io":  true,
}

// Identity is the service identity of one record: a display name and the
// hostname of its primary link. Either side may be empty.
type Identity struct {
	Name string
	Host string
}

// Same reports whether two identities refer to the same service.
// The matching ladder short-circuits on the first success:
//  1. exact normalized-name match
//  2. containment (shorter name length >= 4)
//  3. token-overlap similarity >= 0.85
//  4. domain equivalence between hostnames
func Same(a, b Identity) bool {
	na := NormalizeName(a.Name)
	nb := NormalizeName(b.Name)

	if na != "" && nb != "" {
		if na == nb {
			return true
		}
		if containsName(na, nb) {
			return true
		}
		if Similarity(na, nb) >= similarityThreshold {
			return true
		}
	}

	return SameDomain(a.Host, b.Host)
}

// NormalizeName canonicalizes a service name for comparison: lowercase,
// punctuation other than spaces/hyphens removed, business suffixes stripped,
// whitespace collapsed.
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}

	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ', r == '-':
			sb.WriteRune(r)
		default:
			sb.WriteRune(' ')
		}
	}

	words := strings.Fields(sb.String())
	for len(words) > 1 && businessSuffixes[words[len(words)-1]] {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

// containsName applies the containment rung over already-normalized names.
func containsName(a, b string) bool {
	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) < minContainmentLen {
		return false
	}
	return strings.Contains(longer, shorter)
}

// Similarity computes the Jaccard index over the two names' word sets after
// stopword removal. Returns a value in [0.0, 1.0].
func Similarity(a, b string) float64 {
	ta := tokenSet(a)
	tb := tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0.0
	}

	intersection := 0
	for w := range ta {
		if tb[w] {
			intersection++
		}
	}
	union := len(ta) + len(tb) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

func tokenSet(name string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(name) {
		if !stopwords[w] {
			set[w] = true
		}
	}
	return set
}

// SameDomain reports whether two hostnames belong to the same service:
// exact match, same base label across equivalent TLDs, or one host being a
// subdomain of the other's registrable domain.
func SameDomain(hostA, hostB string) bool {
	ha := validator.NormalizeDomain(hostA)
	hb := validator.NormalizeDomain(hostB)
	if ha == "" || hb == "" {
		return false
	}

	if ha == hb {
		return true
	}

	baseA := validator.BaseDomain(ha)
	baseB := validator.BaseDomain(hb)

	if validator.BaseLabel(ha) == validator.BaseLabel(hb) &&
		equivalentTLDs[validator.TLD(ha)] && equivalentTLDs[validator.TLD(hb)] {
		return true
	}

	// subdomain of the other's base domain
	if strings.HasSuffix(ha, "."+baseB) || strings.HasSuffix(hb, "."+baseA) {
		return true
	}

	return false
}
