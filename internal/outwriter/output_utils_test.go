package outwriter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lintscore/lintscore/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFormatters(t *testing.T) {
	fmtFloat, intFmt := createFormatters(2)
	assert.Equal(t, "92.50", fmtFloat(92.5))
	assert.Equal(t, "%d", intFmt)

	fmtFloat, _ = createFormatters(0)
	assert.Equal(t, "93", fmtFloat(92.6))
}

func TestWriteJSONTo_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteJSONTo(path, map[string]int{"answer": 42}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"answer": 42}`, string(data))
}

func TestWriteCSVWithHeader(t *testing.T) {
	var sb strings.Builder
	err := writeCSVWithHeader(&sb, []string{"a", "b"}, func(cw *csv.Writer) error {
		return cw.Write([]string{"1", "2"})
	})
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", sb.String())
}

func TestGetMaxTablePathWidth(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  int
	}{
		{name: "narrow override clamps to minimum", width: 40, want: 15},
		{name: "typical terminal", width: 100, want: 50},
		{name: "very wide terminal clamps to maximum", width: 400, want: 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tt.width}
			assert.Equal(t, tt.want, getMaxTablePathWidth(cfg))
		})
	}
}
