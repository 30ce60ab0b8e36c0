// internal/adapters/output/json.go
package output

import (
	"encoding/json"
	"io"
	"os"

	"accountx/internal/core/domain"
	"accountx/internal/platform/errors"
)

// Envelope es el resultado que consume la capa de UI/export: el resultado
// de consolidación más los contadores de entrada/salida.
type Envelope struct {
	domain.ConsolidationResult

	OriginalCount int `json:"originalCount"`
	CleanedCount  int `json:"cleanedCount"`
}

// NewEnvelope arma el envelope final a partir del resultado del motor.
func NewEnvelope(result domain.ConsolidationResult, originalCount int) Envelope {
	return Envelope{
		ConsolidationResult: result,
		OriginalCount:       originalCount,
		CleanedCount:        len(result.Accounts),
	}
}

// WriteJSON codifica el envelope como JSON en el writer dado.
func WriteJSON(w io.Writer, env Envelope, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(env); err != nil {
		return errors.Wrap(err, "encoding result JSON")
	}
	return nil
}

// WriteJSONFile escribe el envelope a un archivo, o stdout si path es "-" o "".
func WriteJSONFile(path string, env Envelope, pretty bool) error {
	if path == "" || path == "-" {
		return WriteJSON(os.Stdout, env, pretty)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating output file %s", path)
	}
	defer f.Close()

	return WriteJSON(f, env, pretty)
}
