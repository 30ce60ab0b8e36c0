// internal/core/domain/services.go
package domain

import (
	"strings"
	"unicode"

	"accountx/internal/platform/validator"
)

// ServiceTable contiene los dos data assets del dominio: dominio→nombre
// legible y dominio→etiqueta de fuente. Es data, no lógica: dominios
// desconocidos caen a derivaciones genéricas.
type ServiceTable struct {
	names   map[string]string
	sources map[string]string
}

// DefaultServiceTable retorna la tabla embebida por defecto.
func DefaultServiceTable() *ServiceTable {
	return &ServiceTable{
		names: map[string]string{
			"google.com":       "Google",
			"gmail.com":        "Google",
			"youtube.com":      "YouTube",
			"spotify.com":      "Spotify",
			"netflix.com":      "Netflix",
			"hulu.com":         "Hulu",
			"github.com":       "GitHub",
			"gitlab.com":       "GitLab",
			"amazon.com":       "Amazon",
			"facebook.com":     "Facebook",
			"instagram.com":    "Instagram",
			"twitter.com":      "Twitter",
			"x.com":            "Twitter",
			"linkedin.com":     "LinkedIn",
			"apple.com":        "Apple",
			"icloud.com":       "Apple",
			"microsoft.com":    "Microsoft",
			"live.com":         "Microsoft",
			"outlook.com":      "Microsoft",
			"dropbox.com":      "Dropbox",
			"slack.com":        "Slack",
			"paypal.com":       "PayPal",
			"adobe.com":        "Adobe",
			"steampowered.com": "Steam",
			"twitch.tv":        "Twitch",
			"reddit.com":       "Reddit",
			"discord.com":      "Discord",
			"zoom.us":          "Zoom",
		},
		sources: map[string]string{
			"google.com":         "Google",
			"gmail.com":          "Gmail",
			"icloud.com":         "iCloud",
			"apple.com":          "Apple",
			"microsoft.com":      "Microsoft",
			"outlook.com":        "Outlook",
			"live.com":           "Outlook",
			"mozilla.org":        "Firefox",
			"firefox.com":        "Firefox",
			"1password.com":      "1Password",
			"bitwarden.com":      "Bitwarden",
			"lastpass.com":       "LastPass",
			"dashlane.com":       "Dashlane",
			"keepersecurity.com": "Keeper",
		},
	}
}

// Override aplica overrides cargados de configuración. Las claves se
// normalizan como hostnames; un valor vacío elimina la entrada.
func (t *ServiceTable) Override(names, sources map[string]string) {
	for k, v := range names {
		t.apply(t.names, k, v)
	}
	for k, v := range sources {
		t.apply(t.sources, k, v)
	}
}

func (t *ServiceTable) apply(table map[string]string, key, value string) {
	key = validator.NormalizeDomain(key)
	if key == "" {
		return
	}
	if value == "" {
		delete(table, key)
		return
	}
	table[key] = value
}

// DisplayName mapea un hostname a su nombre legible: lookup exacto, luego
// por dominio registrable, y como fallback el label base capitalizado.
// "accounts.spotify.com" -> "Spotify"; "myservice.net" -> "Myservice".
func (t *ServiceTable) DisplayName(host string) string {
	host = validator.NormalizeDomain(host)
	if host == "" {
		return ""
	}
	if name, ok := t.names[host]; ok {
		return name
	}
	if name, ok := t.names[validator.BaseDomain(host)]; ok {
		return name
	}
	return capitalize(validator.BaseLabel(host))
}

// SourceLabel mapea el hostname del primer link de un valor combinado a su
// etiqueta canónica de fuente. "Unknown" si no sobrevive ningún link o el
// dominio no está en la tabla.
func (t *ServiceTable) SourceLabel(combinedLinks string) string {
	host := validator.Hostname(FirstLink(combinedLinks))
	if host == "" {
		return "Unknown"
	}
	if label, ok := t.sources[host]; ok {
		return label
	}
	if label, ok := t.sources[validator.BaseDomain(host)]; ok {
		return label
	}
	return "Unknown"
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// SanitizeNameForLink convierte un nombre de servicio en el label usado para
// sintetizar un link best-effort: minúsculas, solo alfanuméricos.
func SanitizeNameForLink(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	var sb strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
