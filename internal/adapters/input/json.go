// internal/adapters/input/json.go
package input

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"

	"accountx/internal/core/domain"
	"accountx/internal/platform/errors"
)

// wireRecord es la forma en el cable de un record crudo. Los timestamps
// llegan como strings en formatos variados (o vacíos) y metadata llega con
// valores string, array, number o bool: la tolerancia vive aquí, no en el
// motor.
type wireRecord struct {
	ID           string          `json:"id"`
	Service      string          `json:"service"`
	AccountEmail string          `json:"accountEmail"`
	Source       string          `json:"source"`
	DiscoveredAt string          `json:"discoveredAt"`
	Metadata     domain.Metadata `json:"metadata"`
}

// timeFormats son los formatos de timestamp aceptados, en orden de prueba.
var timeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ReadRecords decodifica un array JSON de records crudos desde un reader.
func ReadRecords(r io.Reader) ([]domain.RawAccountRecord, error) {
	var wire []wireRecord
	dec := json.NewDecoder(r)
	if err := dec.Decode(&wire); err != nil {
		return nil, errors.Wrap(err, "decoding records JSON")
	}

	out := make([]domain.RawAccountRecord, 0, len(wire))
	for _, w := range wire {
		out = append(out, domain.RawAccountRecord{
			ID:           strings.TrimSpace(w.ID),
			Service:      w.Service,
			AccountEmail: w.AccountEmail,
			Source:       w.Source,
			DiscoveredAt: parseTime(w.DiscoveredAt),
			Metadata:     w.Metadata,
		})
	}
	return out, nil
}

// ReadRecordsFile lee records desde un archivo, o stdin si path es "-" o "".
func ReadRecordsFile(path string) ([]domain.RawAccountRecord, error) {
	if path == "" || path == "-" {
		return ReadRecords(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening input file %s", path)
	}
	defer f.Close()

	return ReadRecords(f)
}

// parseTime intenta los formatos conocidos; un timestamp ilegible o vacío
// queda en cero en vez de romper el decode.
func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
