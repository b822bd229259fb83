package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Grootboek 2024", "Grootboek_2024"},
		{"../../etc/passwd", "etc_passwd"},
		{"  a/b\\c  ", "a_b_c"},
		{"", "UNKNOWN"},
		{"___", "UNKNOWN"},
		{"kolom-1.v2", "kolom-1.v2"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFileName(tt.in))
		})
	}
}

func TestOutputFileName(t *testing.T) {
	assert.Equal(t, "Grootboek_2024_report.json", OutputFileName("exports/Grootboek 2024.csv", "report", "json"))
	assert.Equal(t, "ledger.yaml", OutputFileName("/tmp/ledger.csv", "", "yaml"))
}
