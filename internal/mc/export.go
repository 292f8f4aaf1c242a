package mc

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/achimpruben/monte-carlo-sims/internal/geom"
)

// WritePointsCSV writes classified samples as CSV for external renderers.
// dims selects the coordinate columns: 2 writes x,y and 3 writes x,y,z.
func WritePointsCSV(w io.Writer, points []geom.Point, dims int) error {
	if dims != 2 && dims != 3 {
		return fmt.Errorf("write points: unsupported dimensionality %d", dims)
	}

	cw := csv.NewWriter(w)
	header := []string{"x", "y", "z", "inside"}
	if dims == 2 {
		header = []string{"x", "y", "inside"}
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write points: %w", err)
	}

	row := make([]string, len(header))
	for _, p := range points {
		row[0] = formatCoord(p.X)
		row[1] = formatCoord(p.Y)
		if dims == 3 {
			row[2] = formatCoord(p.Z)
		}
		row[len(row)-1] = strconv.FormatBool(p.Inside)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write points: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write points: %w", err)
	}
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
