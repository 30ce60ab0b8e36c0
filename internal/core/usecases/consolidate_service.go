// internal/core/usecases/consolidate_service.go
package usecases

import (
	"fmt"
	"sort"
	"strings"

	"accountx/internal/core/domain"
	"accountx/internal/platform/logx"
	"accountx/internal/platform/servicematch"
)

// DefaultMaxRecords es el cap de records por invocación. La operación es
// batch y síncrona; el cap acota memoria y tiempo.
const DefaultMaxRecords = 10000

// ConsolidateService colapsa records crudos descubiertos por distintos
// canales en el set canónico deduplicado por cuenta-de-servicio lógica.
//
// Todo el estado de "visto" es local a cada llamada a Consolidate: el
// servicio es seguro para invocaciones repetidas y concurrentes sobre
// inputs independientes.
type ConsolidateService struct {
	logger     logx.Logger
	merger     *domain.Merger
	maxRecords int
}

// NewConsolidateService crea el motor de consolidación.
// table puede ser nil (usa la tabla por defecto); maxRecords <= 0 usa
// DefaultMaxRecords.
func NewConsolidateService(table *domain.ServiceTable, maxRecords int, logger logx.Logger) *ConsolidateService {
	if maxRecords <= 0 {
		maxRecords = DefaultMaxRecords
	}
	return &ConsolidateService{
		logger:     logger.With("component", "consolidate"),
		merger:     domain.NewMerger(table),
		maxRecords: maxRecords,
	}
}

// Consolidate agrupa y fusiona los records de entrada y retorna el set
// canónico más los contadores de fusiones y descartes.
//
// Nunca propaga un panic: ante un fallo interno retorna el input envuelto
// como grupos singleton (FellBack=true), preservando datos sobre corrección
// del agrupado.
func (s *ConsolidateService) Consolidate(records []domain.RawAccountRecord) (result domain.ConsolidationResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Err(fmt.Errorf("consolidation panic: %v", r))
			result = s.passthrough(records, domain.Warning{
				Message: fmt.Sprintf("consolidation failed internally, returning input untouched: %v", r),
			})
		}
	}()

	if len(records) > s.maxRecords {
		s.logger.Warn("record cap exceeded, returning input untouched",
			"records", len(records),
			"cap", s.maxRecords,
		)
		return s.passthrough(records, domain.Warning{
			Message: fmt.Sprintf("input of %d records exceeds cap of %d", len(records), s.maxRecords),
		})
	}

	var warnings []domain.Warning
	mergedCount := 0
	removedCount := 0

	// Arena de records: cada entrada empieza como grupo singleton; los
	// valores fusionados de un grupo viven en el índice de su raíz.
	var vals []domain.ConsolidatedAccountRecord
	var candidates []int
	blankBuckets := make(map[string][]int)
	var blankOrder []string

	for _, raw := range records {
		if strings.TrimSpace(raw.ID) == "" {
			s.logger.Warn("skipping record without id", "service", raw.Service)
			warnings = append(warnings, domain.Warning{
				Message: fmt.Sprintf("record without id skipped (service=%q)", raw.Service),
			})
			continue
		}

		rec := domain.NewConsolidated(raw)

		if rec.IsBlankCredential() {
			name := servicematch.NormalizeName(rec.Service)
			if name == "" {
				// sin credenciales ni nombre: nunca podrá fusionar
				removedCount++
				continue
			}
			if _, ok := blankBuckets[name]; !ok {
				blankOrder = append(blankOrder, name)
			}
			idx := len(vals)
			vals = append(vals, rec)
			blankBuckets[name] = append(blankBuckets[name], idx)
			continue
		}

		idx := len(vals)
		vals = append(vals, rec)
		candidates = append(candidates, idx)
	}

	uf := newUnionFind(len(vals))

	// Pass 1 — agrupado primario: key exacta, si no matching difuso contra
	// grupos existentes con las mismas credenciales.
	byKey := make(map[domain.MergeKey]int)
	byCred := make(map[string][]int)

	for _, idx := range candidates {
		rec := vals[idx]

		if prev, ok := byKey[rec.Key()]; ok {
			s.absorb(uf, vals, prev, idx)
			mergedCount++
			continue
		}

		target := -1
		for _, cand := range byCred[rec.CredentialKey()] {
			root := uf.find(cand)
			if servicematch.Same(vals[root].ServiceIdentity(), rec.ServiceIdentity()) {
				target = root
				break
			}
		}
		if target >= 0 {
			s.absorb(uf, vals, target, idx)
			mergedCount++
			continue
		}

		byKey[rec.Key()] = idx
		byCred[rec.CredentialKey()] = append(byCred[rec.CredentialKey()], idx)
	}

	// Pass 2 — reconciliación: los campos identificantes de un grupo cambian
	// de forma al absorber merges (links combinados, service actualizado).
	// Se re-chequean los grupos entre sí usando sus valores presentes, hasta
	// converger.
	mergedCount += s.reconcile(uf, vals, candidates)

	// Pass 3 — absorción de blank-credentials por nombre de servicio.
	for _, name := range blankOrder {
		bucket := blankBuckets[name]

		target := -1
		for _, r := range s.roots(uf, candidates, nil) {
			if servicematch.Same(vals[r].ServiceIdentity(), vals[bucket[0]].ServiceIdentity()) {
				target = r
				break
			}
		}

		if target >= 0 {
			// la fila blank desaparece del output: cuenta como fusión y
			// como fila removida de cara al usuario
			for _, idx := range bucket {
				s.absorb(uf, vals, target, idx)
				mergedCount++
				removedCount++
			}
			continue
		}

		// sin grupo compatible: un representante sobrevive, el resto se
		// absorbe en él y cuenta como removido
		rep := bucket[0]
		for _, idx := range bucket[1:] {
			s.absorb(uf, vals, rep, idx)
			removedCount++
		}
	}

	all := append(append([]int{}, candidates...), blankIndexes(blankBuckets, blankOrder)...)

	// Drop pass — un grupo sin email, sin nombre y sin link no identifica nada.
	dropped := make(map[int]bool)
	for _, r := range s.roots(uf, all, nil) {
		v := vals[r]
		if strings.TrimSpace(v.AccountEmail) == "" &&
			strings.TrimSpace(v.Service) == "" &&
			v.Meta(domain.MetaLink) == "" {
			dropped[r] = true
			removedCount++
		}
	}

	// Final validation pass — ningún par residual puede compartir MergeKey.
	// Invariante de corrección, no optimización.
	for changed := true; changed; {
		changed = false
		seen := make(map[domain.MergeKey]int)
		for _, r := range s.roots(uf, all, dropped) {
			k := vals[r].Key()
			if prev, ok := seen[k]; ok {
				s.absorb(uf, vals, prev, r)
				mergedCount++
				changed = true
			} else {
				seen[k] = r
			}
		}
	}

	finalRoots := s.roots(uf, all, dropped)
	sort.Ints(finalRoots)

	accounts := make([]domain.ConsolidatedAccountRecord, 0, len(finalRoots))
	for _, r := range finalRoots {
		accounts = append(accounts, vals[r])
	}

	s.logger.Info("consolidation complete",
		"input", len(records),
		"output", len(accounts),
		"merged", mergedCount,
		"removed", removedCount,
	)

	return domain.ConsolidationResult{
		Accounts:     accounts,
		MergedCount:  mergedCount,
		RemovedCount: removedCount,
		Warnings:     warnings,
	}
}

// absorb fusiona el grupo/record de idx dentro del grupo de rootIdx y deja el
// valor fusionado en la raíz superviviente.
func (s *ConsolidateService) absorb(uf *unionFind, vals []domain.ConsolidatedAccountRecord, rootIdx, idx int) {
	ra, rb := uf.find(rootIdx), uf.find(idx)
	if ra == rb {
		return
	}
	surviving := uf.union(ra, rb)
	vals[surviving] = s.merger.Merge(vals[ra], vals[rb])
}

// reconcile re-chequea pares de grupos con credenciales idénticas usando sus
// valores actuales, fusionando hasta que no haya cambios. Retorna el número
// de fusiones realizadas.
func (s *ConsolidateService) reconcile(uf *unionFind, vals []domain.ConsolidatedAccountRecord, candidates []int) int {
	merges := 0
	for changed := true; changed; {
		changed = false

		credGroups := make(map[string][]int)
		var credOrder []string
		for _, r := range s.roots(uf, candidates, nil) {
			ck := vals[r].CredentialKey()
			if _, ok := credGroups[ck]; !ok {
				credOrder = append(credOrder, ck)
			}
			credGroups[ck] = append(credGroups[ck], r)
		}

	scan:
		for _, ck := range credOrder {
			group := credGroups[ck]
			for i := 0; i < len(group); i++ {
				for j := i + 1; j < len(group); j++ {
					a, b := group[i], group[j]
					if vals[a].Key() == vals[b].Key() ||
						servicematch.Same(vals[a].ServiceIdentity(), vals[b].ServiceIdentity()) {
						s.absorb(uf, vals, a, b)
						merges++
						changed = true
						break scan
					}
				}
			}
		}
	}
	return merges
}

// roots retorna las raíces únicas vivas de los índices dados, en orden de
// aparición en el input.
func (s *ConsolidateService) roots(uf *unionFind, indexes []int, dropped map[int]bool) []int {
	seen := make(map[int]bool, len(indexes))
	out := make([]int, 0, len(indexes))
	for _, idx := range indexes {
		r := uf.find(idx)
		if seen[r] || dropped[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}

// passthrough envuelve el input como grupos singleton sin consolidar.
func (s *ConsolidateService) passthrough(records []domain.RawAccountRecord, w domain.Warning) domain.ConsolidationResult {
	accounts := make([]domain.ConsolidatedAccountRecord, 0, len(records))
	for _, raw := range records {
		accounts = append(accounts, domain.NewConsolidated(raw))
	}
	return domain.ConsolidationResult{
		Accounts: accounts,
		Warnings: []domain.Warning{w},
		FellBack: true,
	}
}

func blankIndexes(buckets map[string][]int, order []string) []int {
	var out []int
	for _, name := range order {
		out = append(out, buckets[name]...)
	}
	return out
}
