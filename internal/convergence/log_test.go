package convergence_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achimpruben/monte-carlo-sims/internal/convergence"
	"github.com/achimpruben/monte-carlo-sims/internal/convergence/convergencetest"
)

func TestMemoryLog_Contract(t *testing.T) {
	convergencetest.Run(t, func(t *testing.T) convergence.Log {
		return convergence.NewMemoryLog()
	})
}

func TestCSVLog_Contract(t *testing.T) {
	convergencetest.Run(t, func(t *testing.T) convergence.Log {
		return convergence.NewCSVLog(filepath.Join(t.TempDir(), "pi_estimates.csv"))
	})
}

func TestCSVLog_FileLayout(t *testing.T) {
	ctx := t.Context()
	path := filepath.Join(t.TempDir(), "pi_estimates.csv")
	log := convergence.NewCSVLog(path)

	require.NoError(t, log.Append(ctx, convergence.Record{NumPoints: 100, PiEstimate: 3.1}))
	require.NoError(t, log.Append(ctx, convergence.Record{NumPoints: 200, PiEstimate: 3.14}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "num_points,pi_estimate\n100,3.1\n200,3.14\n", string(data))
}

func TestCSVLog_NoExponentNotation(t *testing.T) {
	ctx := t.Context()
	path := filepath.Join(t.TempDir(), "pi.csv")
	log := convergence.NewCSVLog(path)

	require.NoError(t, log.Append(ctx, convergence.Record{NumPoints: 3, PiEstimate: 0.00001}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "num_points,pi_estimate\n3,0.00001\n", string(data))
}

func TestCSVLog_ResetRemovesFileAndHeaderReturns(t *testing.T) {
	ctx := t.Context()
	path := filepath.Join(t.TempDir(), "pi.csv")
	log := convergence.NewCSVLog(path)

	require.NoError(t, log.Append(ctx, convergence.Record{NumPoints: 100, PiEstimate: 3.1}))
	require.NoError(t, log.Reset(ctx))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "reset should remove the file")

	require.NoError(t, log.Append(ctx, convergence.Record{NumPoints: 50, PiEstimate: 3.2}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "num_points,pi_estimate\n50,3.2\n", string(data))
}

func TestCSVLog_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "static", "pi_estimates.csv")
	log := convergence.NewCSVLog(path)

	require.NoError(t, log.Append(t.Context(), convergence.Record{NumPoints: 1, PiEstimate: 4}))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestCSVLog_ReadsExistingFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []convergence.Record
	}{
		{
			name:    "crlf line endings",
			content: "num_points,pi_estimate\r\n100,3.12\r\n1000,3.1416\r\n",
			want:    []convergence.Record{{NumPoints: 100, PiEstimate: 3.12}, {NumPoints: 1000, PiEstimate: 3.1416}},
		},
		{
			name:    "header only",
			content: "num_points,pi_estimate\n",
			want:    []convergence.Record{},
		},
		{
			name:    "empty file",
			content: "",
			want:    []convergence.Record{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "pi.csv")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			records, err := convergence.NewCSVLog(path).ReadAll(t.Context())
			require.NoError(t, err)
			assert.Equal(t, tt.want, records)
		})
	}
}

func TestCSVLog_MalformedFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"wrong header", "n,pi\n1,3\n"},
		{"extra column", "num_points,pi_estimate\n1,3,9\n"},
		{"bad integer", "num_points,pi_estimate\nabc,3.1\n"},
		{"bad float", "num_points,pi_estimate\n10,pie\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "pi.csv")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := convergence.NewCSVLog(path).ReadAll(t.Context())
			assert.ErrorIs(t, err, convergence.ErrMalformedLog)
		})
	}
}

func TestCSVLog_StorageUnavailable(t *testing.T) {
	// A directory in place of the file cannot be opened for append.
	dir := t.TempDir()
	log := convergence.NewCSVLog(dir)

	err := log.Append(t.Context(), convergence.Record{NumPoints: 1, PiEstimate: 3})
	assert.ErrorIs(t, err, convergence.ErrStorageUnavailable)
}

func TestCSVLog_ReadDirectoryIsUnavailable(t *testing.T) {
	_, err := convergence.NewCSVLog(t.TempDir()).ReadAll(t.Context())
	assert.ErrorIs(t, err, convergence.ErrStorageUnavailable)
}
