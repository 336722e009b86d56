package errplot

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
)

// Scenario a validator CSV and the name shown on its plots
type Scenario struct {
	CSV  string
	Name string
}

// RunBatch plots every scenario into outDir. A failing scenario is reported
// on out and the batch moves on; the number of failures is returned.
func RunBatch(scenarios []Scenario, outDir string, out io.Writer) (failures int) {
	for _, sc := range scenarios {
		_, err := PlotErrors(sc.CSV, sc.Name, outDir)
		switch {
		case err == nil:
			fmt.Fprintf(out, "Plots for %s saved to '%s' folder.\n", sc.Name, outDir)
		case errors.Is(err, fs.ErrNotExist):
			failures++
			fmt.Fprintf(out, "Error: The file %s was not found.\n", sc.CSV)
		default:
			failures++
			fmt.Fprintf(out, "An error occurred: %v\n", err)
		}
	}
	return
}
