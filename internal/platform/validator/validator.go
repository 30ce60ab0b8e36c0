// internal/platform/validator/validator.go
package validator

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Email validators

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmail valida formato de email.
// Regla exacta: algo@algo.algo, sin espacios ni '@' adicionales en cada parte.
func IsEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// NormalizeEmail normaliza un email a su forma canónica.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Link validators

// IsLink valida que un string sea una URL absoluta http(s) bien formada.
// Rechaza URLs con userinfo embebido ('@').
func IsLink(link string) bool {
	if !strings.HasPrefix(link, "http://") && !strings.HasPrefix(link, "https://") {
		return false
	}
	if strings.Contains(link, "@") {
		return false
	}
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return u.Host != ""
}

// Service name validators

// IsServiceName valida que un string sea un nombre legible de servicio:
// sin '@', sin esquema de URL, longitud en [1, 200].
func IsServiceName(name string) bool {
	if len(name) < 1 || len(name) > 200 {
		return false
	}
	if strings.Contains(name, "@") {
		return false
	}
	if strings.Contains(name, "://") {
		return false
	}
	return true
}

// Domain helpers

var domainRegex = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)

// LooksLikeDomain verifica si un string tiene forma de dominio (al menos dos labels).
func LooksLikeDomain(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 253 {
		return false
	}
	return domainRegex.MatchString(s)
}

// NormalizeDomain normaliza un hostname a su forma canónica:
// minúsculas, sin espacios, sin punto final, sin prefijo www, sin slash final.
func NormalizeDomain(domain string) string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	domain = strings.TrimSuffix(domain, "/")
	domain = strings.TrimSuffix(domain, ".")
	domain = strings.TrimPrefix(domain, "www.")
	return domain
}

// Hostname extrae el hostname normalizado de un link. Retorna "" si no parsea.
func Hostname(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || u.Host == "" {
		return ""
	}
	return NormalizeDomain(u.Hostname())
}

// BaseDomain retorna el dominio registrable (eTLD+1) de un hostname.
// Si publicsuffix no lo resuelve (hosts internos, TLDs raros), cae a los
// dos últimos labels.
func BaseDomain(host string) string {
	host = NormalizeDomain(host)
	if host == "" {
		return ""
	}
	if base, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return base
	}
	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return host
	}
	return strings.Join(labels[len(labels)-2:], ".")
}

// BaseLabel retorna el label principal de un hostname (segundo desde el final
// del dominio registrable). "accounts.spotify.com" -> "spotify".
func BaseLabel(host string) string {
	base := BaseDomain(host)
	if base == "" {
		return ""
	}
	if i := strings.Index(base, "."); i > 0 {
		return base[:i]
	}
	return base
}

// TLD retorna el sufijo del dominio registrable. "spotify.com" -> "com".
func TLD(host string) string {
	base := BaseDomain(host)
	if i := strings.Index(base, "."); i > 0 {
		return base[i+1:]
	}
	return ""
}

// Extraction helpers
//
// Los parsers upstream mezclan campos: un "service" puede traer un email o
// una URL pegada al nombre. Estas funciones buscan el primer candidato
// válido dentro de un string arbitrario.

// ExtractEmail busca el primer email válido dentro de un string.
// Retorna "" si no hay ninguno.
func ExtractEmail(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if IsEmail(s) {
		return s
	}
	for _, tok := range tokenize(s) {
		if IsEmail(tok) {
			return tok
		}
	}
	return ""
}

// ExtractLink busca la primera URL http(s) válida dentro de un string.
// Si la URL trae userinfo embebido, lo descarta antes de validar.
func ExtractLink(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if link := cleanLink(s); link != "" {
		return link
	}
	for _, tok := range tokenize(s) {
		if link := cleanLink(tok); link != "" {
			return link
		}
	}
	return ""
}

// cleanLink intenta convertir un candidato en un link válido.
func cleanLink(s string) string {
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return ""
	}
	s = strings.TrimRight(s, ".,;)")
	u, err := url.Parse(s)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	// url.Parse es laxo: exige un hostname con forma de dominio real
	if !LooksLikeDomain(u.Hostname()) {
		return ""
	}
	// descarta userinfo (https://user@host/...)
	u.User = nil
	link := u.String()
	if !IsLink(link) {
		return ""
	}
	return link
}

// tokenize separa un string por espacios y separadores comunes,
// recortando puntuación envolvente de cada token.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ',' || r == ';' || r == '|' || r == '<' || r == '>' || r == '(' || r == ')'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, `"'`)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
