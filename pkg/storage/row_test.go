package storage_test

import (
	"bytes"
	"testing"

	"github.com/ogulcanaydogan/budget-intake/pkg/model"
	"github.com/ogulcanaydogan/budget-intake/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRow(t *testing.T) {
	tests := []struct {
		name string
		row  model.Row
		crlf bool
		want string
	}{
		{"three fields", model.Row{"50000", "8000", "5000"}, false, "50000,8000,5000\n"},
		{"keeps text verbatim", model.Row{"007", "1e3", "-2.50"}, false, "007,1e3,-2.50\n"},
		{"empty row", model.Row{}, false, "\n"},
		{"nil row", nil, false, "\n"},
		{"single field", model.Row{"10"}, false, "10\n"},
		{"lone blank field", model.Row{""}, false, "\"\"\n"},
		{"lone blank field crlf", model.Row{""}, true, "\"\"\r\n"},
		{"blank middle field", model.Row{"50000", "", "5000"}, false, "50000,,5000\n"},
		{"crlf", model.Row{"200", "150"}, true, "200,150\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, storage.WriteRow(&buf, tt.row, tt.crlf))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}
