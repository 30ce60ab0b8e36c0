// internal/core/domain/record.go
package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Claves de metadata conocidas. Los parsers pueden añadir claves arbitrarias;
// estas son las que participan en la política de merge.
const (
	MetaLink                   = "link"
	MetaUsername               = "username"
	MetaPassword               = "password"
	MetaPasswordStrength       = "passwordStrength"
	MetaPasswordRecommendation = "passwordRecommendation"
	MetaPlatform               = "platform"
	MetaChangePassword         = "change-password"
	MetaDeleteAccount          = "delete-account"
	MetaSecuritySettings       = "security-settings"
)

// LinkKeys son las claves de metadata con valores tipo link, combinadas vía
// CombineLinks durante un merge.
var LinkKeys = []string{MetaLink, MetaChangePassword, MetaDeleteAccount, MetaSecuritySettings}

// Metadata es un mapa string→string tolerante en el decode: acepta valores
// JSON string, array de strings (se unen con comas), number, bool y null.
// Los parsers upstream no son uniformes y eso es permanente.
type Metadata map[string]string

// UnmarshalJSON implementa el decode tolerante por valor.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(Metadata, len(raw))
	for k, v := range raw {
		s, err := flexibleString(v)
		if err != nil {
			return fmt.Errorf("metadata key %q: %w", k, err)
		}
		out[k] = s
	}
	*m = out
	return nil
}

// flexibleString convierte un valor JSON arbitrario a string.
func flexibleString(data json.RawMessage) (string, error) {
	if string(data) == "null" {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s, nil
	}

	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		parts := make([]string, 0, len(arr))
		for _, item := range arr {
			item = strings.TrimSpace(item)
			if item != "" {
				parts = append(parts, item)
			}
		}
		return strings.Join(parts, ","), nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		return fmt.Sprintf("%t", b), nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", n), "0"), "."), nil
	}

	return "", fmt.Errorf("cannot convert value %s to string", string(data))
}

// Clone retorna una copia independiente del mapa.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Get retorna el valor de una clave, "" si no existe.
func (m Metadata) Get(key string) string {
	if m == nil {
		return ""
	}
	return m[key]
}

// RawAccountRecord es una cuenta descubierta por un parser (export de gestor
// de contraseñas, archivo de buzón, lista de apps OAuth). Inmutable una vez
// producido: la consolidación siempre construye valores nuevos.
type RawAccountRecord struct {
	ID           string    `json:"id"`
	Service      string    `json:"service"`
	AccountEmail string    `json:"accountEmail"`
	Source       string    `json:"source"`
	DiscoveredAt time.Time `json:"discoveredAt"`
	Metadata     Metadata  `json:"metadata,omitempty"`
}

// Meta retorna un valor de metadata, "" si no existe.
func (r RawAccountRecord) Meta(key string) string {
	return r.Metadata.Get(key)
}

// NormalizedAccountRecord extiende el record crudo con los tres campos
// canónicos extraídos/inferidos por el normalizador.
// Invariante: si NeedsReview es false, ProviderEmail, ServiceLink y
// ServiceName son todos válidos según sus validadores.
type NormalizedAccountRecord struct {
	RawAccountRecord

	ProviderEmail        string   `json:"providerEmail"`
	ServiceLink          string   `json:"serviceLink"`
	ServiceName          string   `json:"serviceName"`
	NormalizationApplied bool     `json:"normalizationApplied"`
	NeedsReview          bool     `json:"needsReview"`
	InferredFields       []string `json:"inferredFields,omitempty"`
}

// Canonical retorna el record crudo con los campos canónicos aplicados
// encima: el email y el nombre inferidos reemplazan a los campos crudos, y el
// link inferido se combina con los links ya presentes en metadata.
func (n NormalizedAccountRecord) Canonical() RawAccountRecord {
	r := n.RawAccountRecord
	r.Metadata = n.Metadata.Clone()
	if n.ProviderEmail != "" {
		r.AccountEmail = n.ProviderEmail
	}
	if n.ServiceName != "" {
		r.Service = n.ServiceName
	}
	if n.ServiceLink != "" {
		if r.Metadata == nil {
			r.Metadata = Metadata{}
		}
		r.Metadata[MetaLink] = CombineLinks(n.ServiceLink, r.Metadata[MetaLink])
	}
	return r
}

// ConsolidatedAccountRecord es el record canónico de salida: un record crudo
// más el rastro de fuentes y el rango de fechas de descubrimiento observado
// entre todos los inputs fusionados.
type ConsolidatedAccountRecord struct {
	RawAccountRecord

	AllSources        []string  `json:"allSources"`
	FirstDiscoveredAt time.Time `json:"firstDiscoveredAt"`
	LastDiscoveredAt  time.Time `json:"lastDiscoveredAt"`
}

// NewConsolidated envuelve un record crudo como grupo singleton.
func NewConsolidated(raw RawAccountRecord) ConsolidatedAccountRecord {
	c := ConsolidatedAccountRecord{
		RawAccountRecord:  raw,
		FirstDiscoveredAt: raw.DiscoveredAt,
		LastDiscoveredAt:  raw.DiscoveredAt,
	}
	c.Metadata = raw.Metadata.Clone()
	if raw.Source != "" {
		c.AllSources = []string{raw.Source}
	}
	return c
}

// Warning es un aviso no fatal producido durante la consolidación.
type Warning struct {
	RecordID string `json:"recordId,omitempty"`
	Message  string `json:"message"`
}

// ConsolidationResult es la salida del motor de consolidación.
// FellBack indica que el motor devolvió el input como grupos singleton
// (fallo interno o cap de records excedido): sin pérdida de datos, sin
// consolidación.
type ConsolidationResult struct {
	Accounts     []ConsolidatedAccountRecord `json:"accounts"`
	MergedCount  int                         `json:"mergedCount"`
	RemovedCount int                         `json:"removedCount"`
	Warnings     []Warning                   `json:"warnings,omitempty"`
	FellBack     bool                        `json:"fellBack,omitempty"`
}
