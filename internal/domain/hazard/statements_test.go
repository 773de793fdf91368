package hazard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trygghms/hms-api/internal/domain/hazard"
)

func TestTrusted(t *testing.T) {
	assert.False(t, hazard.Extraction{Confidence: 0}.Trusted())
	assert.False(t, hazard.Extraction{Confidence: 0.7}.Trusted(), "at the threshold is not trusted")
	assert.True(t, hazard.Extraction{Confidence: 0.71}.Trusted())
	assert.True(t, hazard.Extraction{Confidence: 1}.Trusted())
}

func TestNormalize(t *testing.T) {
	n := hazard.Extraction{
		HazardStatements:        "H319, H225",
		PrecautionaryStatements: "P210 P233",
		SignalWord:              "Warning",
		Confidence:              0.9,
	}.Normalize()
	assert.Equal(t, "H225, H319", n.HazardStatements)
	assert.Equal(t, "P210, P233", n.PrecautionaryStatements)
	assert.Equal(t, "Warning", n.SignalWord, "signal word is not a code list")
	assert.InDelta(t, 0.9, n.Confidence, 0.0001)
}

func TestNormalizeCodes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already clean", "H225, H319", "H225, H319"},
		{"dedup and sort", "H319,H225, H319", "H225, H319"},
		{"lowercase input", "h225 h319", "H225, H319"},
		{"mixed separators", "P210;P233\nP240", "P210, P233, P240"},
		{"combined p codes", "P301+P310, P210", "P210, P301+P310"},
		{"combined h codes", "H225, H300+H310", "H225, H300+H310"},
		{"three-way combination", "H300+H310+H330", "H300+H310+H330"},
		{"euh codes", "EUH014, H225", "EUH014, H225"},
		{"bare eu prefix dropped", "H225, EU123", "H225"},
		{"mismatched combination dropped", "H225, H300+P310", "H225"},
		{"junk dropped when codes present", "H225, flammable liquid", "H225"},
		{"free text passes through", "Highly flammable liquid and vapour", "Highly flammable liquid and vapour"},
		{"free text trimmed", "  Causes eye irritation  ", "Causes eye irritation"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hazard.NormalizeCodes(tt.in))
		})
	}
}
