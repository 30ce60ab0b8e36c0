// internal/core/domain/strength.go
package domain

import "strings"

// Veredictos de fortaleza de contraseña tal como llegan en metadata.
// El analizador que los produce es externo; aquí solo se ordenan y fusionan.
const (
	StrengthWeak     = "weak"
	StrengthModerate = "moderate"
	StrengthStrong   = "strong"
)

// strengthRank ordena los veredictos de peor a mejor. Un valor vacío o
// desconocido cuenta como "sin veredicto" y pierde contra cualquier veredicto
// real: weak < moderate < strong < unset.
func strengthRank(v string) int {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case StrengthWeak:
		return 0
	case StrengthModerate:
		return 1
	case StrengthStrong:
		return 2
	default:
		return 3
	}
}

// WeakerVerdict retorna el veredicto más pesimista de los dos. Una vez que
// alguna instancia descubierta de la credencial fue marcada débil, el record
// fusionado permanece débil aunque otra instancia pareciera más fuerte.
func WeakerVerdict(a, b string) string {
	if strengthRank(b) < strengthRank(a) {
		return b
	}
	return a
}
