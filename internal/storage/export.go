package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/loewner/internal/loewner"
)

type ExportData struct {
	Meta  *RunMetadata `json:"meta"`
	Times []float64    `json:"times"`
	Drive []float64    `json:"drive"`
	Re    []float64    `json:"re"`
	Im    []float64    `json:"im"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, t loewner.Times, u loewner.Drive, z loewner.Trace) error {
	re, im := z.Points()
	data := ExportData{
		Meta:  meta,
		Times: t,
		Drive: u,
		Re:    re,
		Im:    im,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
