package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"accountx/internal/core/domain"
	"accountx/internal/testutil"
)

func sampleResult() domain.ConsolidationResult {
	rec := domain.NewConsolidated(domain.RawAccountRecord{
		ID:           "r1",
		Service:      "Spotify",
		AccountEmail: "user@gmail.com",
		Source:       "Bitwarden",
		DiscoveredAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Metadata: domain.Metadata{
			domain.MetaLink:             "https://spotify.com",
			domain.MetaPasswordStrength: domain.StrengthWeak,
		},
	})

	return domain.ConsolidationResult{
		Accounts:     []domain.ConsolidatedAccountRecord{rec},
		MergedCount:  2,
		RemovedCount: 1,
		Warnings:     []domain.Warning{{RecordID: "r9", Message: "skipping record without id"}},
	}
}

func TestNewEnvelope(t *testing.T) {
	env := NewEnvelope(sampleResult(), 4)
	testutil.AssertEqual(t, env.OriginalCount, 4, "original count")
	testutil.AssertEqual(t, env.CleanedCount, 1, "cleaned count from accounts")
	testutil.AssertEqual(t, env.MergedCount, 2, "merged count carried over")
}

func TestWriteJSON(t *testing.T) {
	t.Run("compact round trip", func(t *testing.T) {
		var buf bytes.Buffer
		testutil.AssertNoError(t, WriteJSON(&buf, NewEnvelope(sampleResult(), 4), false), "encode")

		var decoded struct {
			Accounts      []domain.ConsolidatedAccountRecord `json:"accounts"`
			OriginalCount int                                `json:"originalCount"`
			CleanedCount  int                                `json:"cleanedCount"`
		}
		testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &decoded), "decode")
		testutil.AssertEqual(t, decoded.OriginalCount, 4, "original count")
		testutil.AssertEqual(t, decoded.CleanedCount, 1, "cleaned count")
		testutil.AssertEqual(t, decoded.Accounts[0].Service, "Spotify", "account payload")
	})

	t.Run("pretty output is indented", func(t *testing.T) {
		var buf bytes.Buffer
		testutil.AssertNoError(t, WriteJSON(&buf, NewEnvelope(sampleResult(), 4), true), "encode")
		testutil.AssertTrue(t, strings.Contains(buf.String(), "\n  "), "indentation present")
	})
}

func TestWriteJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	testutil.AssertNoError(t, WriteJSONFile(path, NewEnvelope(sampleResult(), 4), false), "write file")

	data, err := os.ReadFile(path)
	testutil.AssertNoError(t, err, "read back")
	testutil.AssertTrue(t, strings.Contains(string(data), `"accounts"`), "accounts key present")
}
