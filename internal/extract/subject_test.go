package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPIFromSubject(t *testing.T) {
	tests := []struct {
		subject string
		want    string
	}{
		{"New proposal intake from Jane Smith", "Jane Smith"},
		{"FW: New proposal intake from Dr. Priya Raman", "Dr. Priya Raman"},
		// The last from-clause wins when earlier text contains "from".
		{"Proposal from Gates Foundation intake from Jane Smith", "Jane Smith"},
		{"new proposal intake FROM  Jane   Smith ", "Jane Smith"},
		{"Quarterly report", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PIFromSubject(tt.subject), "subject %q", tt.subject)
	}
}
