package timeline

import (
	"encoding/csv"
	"io"
	"strconv"
)

var csvHeader = []string{"no", "status", "from", "until", "duration", "man_power", "part"}

// WriteHistoryCSV serializes history rows as a flat CSV export. The rows are
// written exactly as computed; no recomputation happens here.
func WriteHistoryCSV(w io.Writer, rows []HistoryRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.No),
			string(r.Status),
			r.From,
			r.Until,
			r.Duration,
			r.ManPower,
			r.Part,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
