// internal/core/domain/links.go
package domain

import "strings"

// CombineLinks fusiona dos valores de link (cada lado puede ser un link
// simple o varios unidos por comas) en un string único deduplicado.
// Propiedades: asociativa e idempotente; el orden preserva la primera
// aparición, lado existente antes que el entrante; el dedupe ignora
// mayúsculas pero conserva la forma vista primero.
func CombineLinks(existing, incoming string) string {
	seen := make(map[string]bool)
	out := make([]string, 0, 4)

	for _, raw := range append(SplitLinks(existing), SplitLinks(incoming)...) {
		key := strings.ToLower(raw)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, raw)
	}

	return strings.Join(out, ",")
}

// SplitLinks separa un valor de link en links individuales, recortando
// espacios y descartando vacíos.
func SplitLinks(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FirstLink retorna el primer link de un valor combinado, "" si no hay.
func FirstLink(value string) string {
	links := SplitLinks(value)
	if len(links) == 0 {
		return ""
	}
	return links[0]
}
