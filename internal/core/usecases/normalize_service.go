// internal/core/usecases/normalize_service.go
package usecases

import (
	"regexp"
	"strings"

	"accountx/internal/core/domain"
	"accountx/internal/platform/logx"
	"accountx/internal/platform/validator"
)

// NormalizeService extrae un email de proveedor, un link de servicio y un
// nombre legible a partir de campos posiblemente combinados o corruptos.
// Best-effort puro: nunca falla; marca NeedsReview cuando la inferencia no
// alcanza.
type NormalizeService struct {
	logger logx.Logger
	table  *domain.ServiceTable
}

// NewNormalizeService crea el normalizador. table puede ser nil (tabla por
// defecto).
func NewNormalizeService(table *domain.ServiceTable, logger logx.Logger) *NormalizeService {
	if table == nil {
		table = domain.DefaultServiceTable()
	}
	return &NormalizeService{
		logger: logger.With("component", "normalize"),
		table:  table,
	}
}

var parentheticalSuffix = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

// Normalize produce el record normalizado de un record crudo.
//
// Invariante: si NeedsReview es false, los tres campos canónicos son válidos
// individualmente según sus validadores.
func (s *NormalizeService) Normalize(raw domain.RawAccountRecord) domain.NormalizedAccountRecord {
	n := domain.NormalizedAccountRecord{RawAccountRecord: raw}
	var inferred []string

	// 1. email: primero el campo candidato, luego el campo service (los
	// parsers a veces intercambian ambos). Gana el primer email válido.
	if e := validator.ExtractEmail(raw.AccountEmail); e != "" {
		n.ProviderEmail = e
		if e != strings.TrimSpace(raw.AccountEmail) {
			inferred = append(inferred, "providerEmail")
		}
	} else if e := validator.ExtractEmail(raw.Service); e != "" {
		n.ProviderEmail = e
		inferred = append(inferred, "providerEmail")
	}

	// 2. link: campo service, luego metadata.link (que puede venir combinado)
	if l := validator.ExtractLink(raw.Service); l != "" {
		n.ServiceLink = l
		inferred = append(inferred, "serviceLink")
	} else if l := validator.ExtractLink(raw.Meta(domain.MetaLink)); l != "" {
		n.ServiceLink = l
		if l != strings.TrimSpace(domain.FirstLink(raw.Meta(domain.MetaLink))) {
			inferred = append(inferred, "serviceLink")
		}
	}

	// 3. nombre de servicio desde el campo service limpio
	cleaned := strings.TrimSpace(parentheticalSuffix.ReplaceAllString(raw.Service, ""))
	if validator.LooksLikeDomain(cleaned) {
		n.ServiceName = s.table.DisplayName(cleaned)
		inferred = append(inferred, "serviceName")
	} else if validator.IsServiceName(cleaned) {
		n.ServiceName = cleaned
	}

	// 4. link sintetizado best-effort desde el nombre
	if n.ServiceLink == "" && n.ServiceName != "" {
		if base := domain.SanitizeNameForLink(n.ServiceName); base != "" {
			n.ServiceLink = "https://" + base + ".com"
			inferred = append(inferred, "serviceLink")
		}
	}

	// 5. nombre derivado del dominio del email o del link
	if n.ServiceName == "" {
		host := emailDomain(n.ProviderEmail)
		if host == "" {
			host = validator.Hostname(n.ServiceLink)
		}
		if host != "" {
			if name := s.table.DisplayName(host); name != "" {
				n.ServiceName = name
				inferred = append(inferred, "serviceName")
			}
		}
	}

	// 6. revisión requerida salvo que los tres campos canónicos validen
	n.NeedsReview = !validator.IsEmail(n.ProviderEmail) ||
		!validator.IsLink(n.ServiceLink) ||
		!validator.IsServiceName(n.ServiceName)

	n.InferredFields = inferred
	n.NormalizationApplied = len(inferred) > 0

	if n.NeedsReview {
		s.logger.Debug("record needs review",
			"id", raw.ID,
			"email_ok", validator.IsEmail(n.ProviderEmail),
			"link_ok", validator.IsLink(n.ServiceLink),
			"name_ok", validator.IsServiceName(n.ServiceName),
		)
	}

	return n
}

// NormalizeAll normaliza una lista de records en orden.
func (s *NormalizeService) NormalizeAll(records []domain.RawAccountRecord) []domain.NormalizedAccountRecord {
	out := make([]domain.NormalizedAccountRecord, 0, len(records))
	for _, r := range records {
		out = append(out, s.Normalize(r))
	}
	return out
}

func emailDomain(email string) string {
	if i := strings.LastIndex(email, "@"); i >= 0 && i < len(email)-1 {
		return email[i+1:]
	}
	return ""
}
