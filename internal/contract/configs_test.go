package contract

import (
	"testing"

	"github.com/lintscore/lintscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Defaults(t *testing.T) {
	in := &ConfigRawInput{}
	cfg, err := in.Validate()
	require.NoError(t, err)

	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.SQLiteBackend, cfg.Backend)
	assert.Empty(t, cfg.ExcludeTools)
	assert.True(t, cfg.UseColors)
}

func TestValidate_WorkerClamping(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{name: "negative falls back", workers: -1, want: DefaultWorkers},
		{name: "zero falls back", workers: 0, want: DefaultWorkers},
		{name: "in range kept", workers: 3, want: 3},
		{name: "above cap clamped", workers: 100, want: MaxWorkers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := (&ConfigRawInput{Workers: tt.workers}).Validate()
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Workers)
		})
	}
}

func TestValidate_InvalidValues(t *testing.T) {
	_, err := (&ConfigRawInput{Output: "yaml"}).Validate()
	assert.Error(t, err)

	_, err = (&ConfigRawInput{Backend: "mongodb"}).Validate()
	assert.Error(t, err)

	_, err = (&ConfigRawInput{Exclude: "pylint,mypy"}).Validate()
	assert.Error(t, err)
}

func TestValidate_ColorOff(t *testing.T) {
	cfg, err := (&ConfigRawInput{Color: "off"}).Validate()
	require.NoError(t, err)
	assert.False(t, cfg.UseColors)

	cfg, err = (&ConfigRawInput{Color: "OFF"}).Validate()
	require.NoError(t, err)
	assert.False(t, cfg.UseColors)
}

func TestParseExcludeTools(t *testing.T) {
	tools, err := ParseExcludeTools(" Pylint , flake8 ,")
	require.NoError(t, err)
	assert.Equal(t, []schema.Tool{schema.Pylint, schema.Flake8}, tools)

	tools, err = ParseExcludeTools("")
	require.NoError(t, err)
	assert.Nil(t, tools)

	_, err = ParseExcludeTools("eslint")
	assert.Error(t, err)
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{
		Workers:      4,
		ExcludeTools: []schema.Tool{schema.Bandit},
	}
	clone := cfg.Clone()
	clone.Workers = 8
	clone.ExcludeTools[0] = schema.Radon

	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, schema.Bandit, cfg.ExcludeTools[0])
}
