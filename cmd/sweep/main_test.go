package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func write(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestSweepDir_DeletesHeaderOnlyFiles(t *testing.T) {
	dir := t.TempDir()
	empty := write(t, dir, "retirees_rural_0.csv", "trans_id,timestamp,is_fraud\n")
	full := write(t, dir, "adults_urban_0.csv",
		"trans_id,timestamp,is_fraud\nabc,2024-03-07T14:30:05Z,0\n")
	zeroBytes := write(t, dir, "retirees_rural_1.csv", "")
	other := write(t, dir, "notes.txt", "")

	checked, deleted, err := sweepDir(dir, false, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 3, checked)
	assert.Equal(t, 2, deleted)

	assert.NoFileExists(t, empty)
	assert.NoFileExists(t, zeroBytes)
	assert.FileExists(t, full)
	assert.FileExists(t, other)
}

func TestSweepDir_DryRunKeepsFiles(t *testing.T) {
	dir := t.TempDir()
	empty := write(t, dir, "retirees_rural_0.csv", "trans_id,timestamp\n")

	checked, deleted, err := sweepDir(dir, true, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, checked)
	assert.Equal(t, 0, deleted)
	assert.FileExists(t, empty)
}

func TestSweepDir_EmptyDirectory(t *testing.T) {
	checked, deleted, err := sweepDir(t.TempDir(), false, zap.NewNop())
	require.NoError(t, err)
	assert.Zero(t, checked)
	assert.Zero(t, deleted)
}

func TestIsEmptyCSV(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		body string
		want bool
	}{
		{name: "header only", body: "a,b,c\n", want: true},
		{name: "zero bytes", body: "", want: true},
		{name: "header and one row", body: "a,b,c\n1,2,3\n", want: false},
		{name: "no trailing newline", body: "a,b,c", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := write(t, dir, tt.name+".csv", tt.body)
			got, err := isEmptyCSV(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
