package errplot

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "h_rel,h,Delta_analytic,Delta_fd,Delta_cs,err_D_fd,err_D_cs,Gamma_analytic,Gamma_fd,Gamma_cs_real,Gamma_cs_45,err_G_fd,err_G_cs_real,err_G_cs_45"

func scenarioCSV(rows int) string {
	var b strings.Builder
	b.WriteString(header + "\n")
	for i := 0; i < rows; i++ {
		hRel := 1e-16 * float64(int64(1)<<uint(i))
		fmt.Fprintf(&b, "%g,%g,0.5,0.5,0.5,%g,%g,0.02,0.02,0.02,0.02,%g,%g,%g\n",
			hRel, hRel*100, 1e-3*float64(i+1), 1e-15, 1e-2/float64(i+1), 1e-4, 1e-6*float64(i+1))
	}
	return b.String()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadErrorRows(t *testing.T) {
	rows, err := ReadErrorRows(strings.NewReader(header + "\n" +
		"1e-16,1e-14,0.5,0.4,0.5,0.1,0.0,0.02,0.1,0.02,0.02,0.08,1e-9,2e-9\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, ErrorRow{
		HRel:           1e-16,
		ErrDeltaFD:     0.1,
		ErrDeltaCS:     0,
		ErrGammaFD:     0.08,
		ErrGammaCSReal: 1e-9,
		ErrGammaCS45:   2e-9,
	}, rows[0])
}

func TestReadErrorRows_ColumnOrderDoesNotMatter(t *testing.T) {
	rows, err := ReadErrorRows(strings.NewReader(
		"err_G_cs_45, err_G_cs_real, err_G_fd, err_D_cs, err_D_fd, h_rel\n6,5,4,3,2,1\n"))
	require.NoError(t, err)
	assert.Equal(t, []ErrorRow{{HRel: 1, ErrDeltaFD: 2, ErrDeltaCS: 3, ErrGammaFD: 4, ErrGammaCSReal: 5, ErrGammaCS45: 6}}, rows)
}

func TestReadErrorRows_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "empty", content: "", wantErr: ErrMissingColumn},
		{name: "missing column", content: "h_rel,err_D_fd,err_D_cs\n1,2,3\n", wantErr: ErrMissingColumn},
		{name: "bad number", content: "h_rel,err_D_fd,err_D_cs,err_G_fd,err_G_cs_real,err_G_cs_45\n1,x,3,4,5,6\n"},
		{name: "short row", content: "h_rel,err_D_fd,err_D_cs,err_G_fd,err_G_cs_real,err_G_cs_45\n1,2,3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadErrorRows(strings.NewReader(tt.content))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestLoadErrorRows_NotFound(t *testing.T) {
	_, err := LoadErrorRows(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Scenario_1_(ATM)_Delta_Errors.png", FileName("Scenario 1 (ATM)", "Delta"))
	assert.Equal(t, "Scenario_2_(Stress)_Gamma_Errors.png", FileName("Scenario 2 (Stress)", "Gamma"))
}

func TestPlotErrors(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeFile(t, dir, "bs_fd_vs_complex_scenario1.csv", scenarioCSV(25))
	outDir := filepath.Join(dir, "plots")

	written, err := PlotErrors(csvPath, "Scenario 1 (ATM)", outDir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(outDir, "Scenario_1_(ATM)_Delta_Errors.png"),
		filepath.Join(outDir, "Scenario_1_(ATM)_Gamma_Errors.png"),
	}, written)

	for _, path := range written {
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(content, []byte("\x89PNG")), path)
	}
}

func TestPlotErrors_SkipsZeroErrors(t *testing.T) {
	dir := t.TempDir()
	// err_D_cs is exactly zero on every row
	csvPath := writeFile(t, dir, "zero.csv", header+"\n"+
		"1e-8,1e-6,0.5,0.5,0.5,1e-3,0,0.02,0.02,0.02,0.02,1e-2,1e-9,1e-9\n"+
		"1e-6,1e-4,0.5,0.5,0.5,1e-5,0,0.02,0.02,0.02,0.02,1e-4,1e-9,1e-9\n")

	written, err := PlotErrors(csvPath, "Zero", filepath.Join(dir, "plots"))
	require.NoError(t, err)
	assert.Len(t, written, 2)
}

func TestPlotErrors_NoPlottableData(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeFile(t, dir, "flat.csv", header+"\n"+
		"1e-8,1e-6,0.5,0.5,0.5,0,0,0.02,0.02,0.02,0.02,0,0,0\n")

	_, err := PlotErrors(csvPath, "Flat", filepath.Join(dir, "plots"))
	assert.ErrorIs(t, err, ErrNoData)
}

func TestRunBatch_ContinuesAfterFailure(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.csv", scenarioCSV(5))
	missing := filepath.Join(dir, "missing.csv")
	broken := writeFile(t, dir, "broken.csv", "h_rel\n1\n")
	outDir := filepath.Join(dir, "plots")

	var out bytes.Buffer
	failures := RunBatch([]Scenario{
		{CSV: missing, Name: "Scenario 0"},
		{CSV: broken, Name: "Scenario 1"},
		{CSV: good, Name: "Scenario 2 (Stress)"},
	}, outDir, &out)

	assert.Equal(t, 2, failures)
	assert.Contains(t, out.String(), "Error: The file "+missing+" was not found.")
	assert.Contains(t, out.String(), "An error occurred: ")
	assert.Contains(t, out.String(), "Plots for Scenario 2 (Stress) saved to '"+outDir+"' folder.")
	assert.FileExists(t, filepath.Join(outDir, "Scenario_2_(Stress)_Delta_Errors.png"))
	assert.FileExists(t, filepath.Join(outDir, "Scenario_2_(Stress)_Gamma_Errors.png"))
}
