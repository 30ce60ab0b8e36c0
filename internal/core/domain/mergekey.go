// internal/core/domain/mergekey.go
package domain

import (
	"strings"

	"accountx/internal/platform/servicematch"
	"accountx/internal/platform/validator"
)

// MergeKey es la identidad gruesa usada por el fast path de agrupado:
// (email minúsculas, password, nombre-o-dominio del servicio). Records con
// la misma key son candidatos directos a fusión.
//
// Un record sin email o sin password es "blank-credential" y usa la key
// degradada (solo nombre de servicio).
type MergeKey string

// IsBlankCredential indica si el record carece de email o password y por lo
// tanto solo puede fusionarse por coincidencia de nombre de servicio.
func (r ConsolidatedAccountRecord) IsBlankCredential() bool {
	return strings.TrimSpace(r.AccountEmail) == "" || r.Meta(MetaPassword) == ""
}

// Key deriva la MergeKey del record a partir de sus valores actuales.
// El componente de servicio es el nombre normalizado si existe, si no el
// hostname del primer link.
func (r ConsolidatedAccountRecord) Key() MergeKey {
	if r.IsBlankCredential() {
		return MergeKey("blank::" + r.serviceComponent())
	}
	return MergeKey(strings.Join([]string{
		strings.ToLower(strings.TrimSpace(r.AccountEmail)),
		r.Meta(MetaPassword),
		r.serviceComponent(),
	}, "::"))
}

// CredentialKey agrupa por email+password. El matching difuso de servicios
// solo aplica entre records con credenciales idénticas.
func (r ConsolidatedAccountRecord) CredentialKey() string {
	return strings.ToLower(strings.TrimSpace(r.AccountEmail)) + "::" + r.Meta(MetaPassword)
}

func (r ConsolidatedAccountRecord) serviceComponent() string {
	if name := servicematch.NormalizeName(r.Service); name != "" {
		return name
	}
	return validator.Hostname(FirstLink(r.Meta(MetaLink)))
}

// ServiceIdentity retorna la identidad de servicio del record para el
// matcher: nombre display actual y hostname del primer link.
func (r ConsolidatedAccountRecord) ServiceIdentity() servicematch.Identity {
	return servicematch.Identity{
		Name: r.Service,
		Host: validator.Hostname(FirstLink(r.Meta(MetaLink))),
	}
}
