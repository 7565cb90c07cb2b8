package service

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"workshop-wizard-be/pkg/workshop"
)

// utf8BOM lets spreadsheet tools detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var csvHeader = []string{
	"Process",
	"Department",
	"Frequency",
	"Time/Week (h)",
	"Time/Year (h)",
	"Error proneness",
	"Automatable",
	"Score",
	"Rank",
}

// processCSV renders the processes ranked by score, one row each.
func processCSV(doc workshop.Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	for _, rp := range workshop.Analyze(doc).RankedProcesses {
		row := []string{
			rp.Name,
			rp.Department,
			string(rp.Frequency),
			strconv.FormatFloat(rp.TimePerWeek, 'f', 1, 64),
			strconv.FormatFloat(rp.TimePerYear, 'f', 0, 64),
			strconv.Itoa(rp.ErrorProneness),
			strconv.Itoa(rp.Automatable),
			strconv.Itoa(rp.Score),
			strconv.Itoa(rp.Rank),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
