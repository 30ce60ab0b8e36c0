// internal/core/domain/merge.go
package domain

import "strings"

// Merger aplica la política de merge campo a campo sobre dos records ya
// juzgados como duplicados. Es una función total sobre tipos valor: nunca
// muta sus argumentos y siempre retorna un record nuevo.
type Merger struct {
	table *ServiceTable
}

// NewMerger crea un merger con la tabla de servicios dada.
func NewMerger(table *ServiceTable) *Merger {
	if table == nil {
		table = DefaultServiceTable()
	}
	return &Merger{table: table}
}

// Merge fusiona incoming sobre existing y retorna el record resultante.
//
// Reglas de supervivencia por campo:
//   - service, accountEmail: gana el valor entrante no vacío, si no el existente.
//   - id: gana el entrante (identificador de display del superviviente).
//   - links (link, change-password, delete-account, security-settings):
//     combinados con CombineLinks, cada uno por separado.
//   - username, password: nunca se pisa una credencial conocida con un vacío;
//     el lado existente tiene prioridad si ambos son no vacíos.
//   - passwordStrength, passwordRecommendation: sobrevive el veredicto más débil.
//   - platform y el resto de claves de metadata: existente no vacío, si no entrante.
//   - allSources: unión preservando orden de inserción.
//   - firstDiscoveredAt = min, lastDiscoveredAt = max.
//   - source: recalculado desde el dominio del link combinado.
func (m *Merger) Merge(existing, incoming ConsolidatedAccountRecord) ConsolidatedAccountRecord {
	out := existing
	out.Metadata = existing.Metadata.Clone()
	if out.Metadata == nil && incoming.Metadata != nil {
		out.Metadata = make(Metadata, len(incoming.Metadata))
	}

	if v := strings.TrimSpace(incoming.Service); v != "" {
		out.Service = incoming.Service
	}
	if v := strings.TrimSpace(incoming.AccountEmail); v != "" {
		out.AccountEmail = incoming.AccountEmail
	}
	if incoming.ID != "" {
		out.ID = incoming.ID
	}

	linkTouched := false
	for _, key := range LinkKeys {
		ev, iv := existing.Meta(key), incoming.Meta(key)
		if ev == "" && iv == "" {
			continue
		}
		out.Metadata[key] = CombineLinks(ev, iv)
		if key == MetaLink {
			linkTouched = true
		}
	}

	for key, iv := range incoming.Metadata {
		switch key {
		case MetaLink, MetaChangePassword, MetaDeleteAccount, MetaSecuritySettings:
			// ya combinados arriba
		case MetaUsername, MetaPassword:
			if out.Metadata[key] == "" && iv != "" {
				out.Metadata[key] = iv
			}
		case MetaPasswordStrength, MetaPasswordRecommendation:
			out.Metadata[key] = WeakerVerdict(existing.Meta(key), iv)
		default:
			// platform y claves arbitrarias: existente no vacío primero
			if out.Metadata[key] == "" && iv != "" {
				out.Metadata[key] = iv
			}
		}
	}

	if linkTouched {
		out.Source = m.table.SourceLabel(out.Metadata[MetaLink])
	}

	out.AllSources = unionSources(existing.AllSources, incoming.AllSources)

	out.FirstDiscoveredAt = existing.FirstDiscoveredAt
	out.LastDiscoveredAt = existing.LastDiscoveredAt
	if !incoming.FirstDiscoveredAt.IsZero() &&
		(out.FirstDiscoveredAt.IsZero() || incoming.FirstDiscoveredAt.Before(out.FirstDiscoveredAt)) {
		out.FirstDiscoveredAt = incoming.FirstDiscoveredAt
	}
	if incoming.LastDiscoveredAt.After(out.LastDiscoveredAt) {
		out.LastDiscoveredAt = incoming.LastDiscoveredAt
	}

	return out
}

func unionSources(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]bool, len(a)+len(b))
	for _, s := range append(append([]string{}, a...), b...) {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
