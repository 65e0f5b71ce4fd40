package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// extractedRecord mirrors WellRecord with pointer fields for the values the
// extraction schema marks as required, so absence can be told apart from zero.
type extractedRecord struct {
	Name          *string          `json:"name"`
	Location      *Location        `json:"location"`
	SpudDate      string           `json:"spudDate"`
	TD            *float64         `json:"td"`
	KBElevation   float64          `json:"kbElevation"`
	Formations    *[]Formation     `json:"formations"`
	Production    []ProductionTest `json:"production"`
	Complications []Complication   `json:"complications"`
	Perforations  []Perforation    `json:"perforations"`
	Logs          []WellLog        `json:"logs"`
	Documents     []SourceDocument `json:"documents"`
}

// StripCodeFences removes a markdown code fence wrapping such as
// "```json\n{...}\n```". Text without a leading fence is returned trimmed.
func StripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	body := strings.TrimPrefix(trimmed, "```")
	// Drop the info string ("json", "JSON", ...) on the opening line.
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	} else {
		body = strings.TrimLeft(body, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
	}
	body = strings.TrimSpace(body)
	body = strings.TrimSuffix(body, "```")
	return strings.TrimSpace(body)
}

// DecodeWellRecord parses model output into a WellRecord. Fence wrapping is
// stripped first. Text that is not a JSON object, or that lacks name, td or
// formations, fails with ErrMalformedResponse.
func DecodeWellRecord(text string) (WellRecord, error) {
	body := StripCodeFences(text)
	if body == "" {
		return WellRecord{}, fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	var rec extractedRecord
	if err := dec.Decode(&rec); err != nil {
		return WellRecord{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if dec.More() {
		return WellRecord{}, fmt.Errorf("%w: trailing data after JSON object", ErrMalformedResponse)
	}

	var missing []string
	if rec.Name == nil || strings.TrimSpace(*rec.Name) == "" {
		missing = append(missing, "name")
	}
	if rec.TD == nil {
		missing = append(missing, "td")
	}
	if rec.Formations == nil {
		missing = append(missing, "formations")
	}
	if len(missing) > 0 {
		return WellRecord{}, fmt.Errorf("%w: missing required fields: %s", ErrMalformedResponse, strings.Join(missing, ", "))
	}

	well := WellRecord{
		Name:          strings.TrimSpace(*rec.Name),
		SpudDate:      rec.SpudDate,
		TD:            *rec.TD,
		KBElevation:   rec.KBElevation,
		Formations:    *rec.Formations,
		Production:    rec.Production,
		Complications: rec.Complications,
		Perforations:  rec.Perforations,
		Logs:          rec.Logs,
		Documents:     rec.Documents,
	}
	if rec.Location != nil {
		well.Location = *rec.Location
	}
	return normalizeSlices(well), nil
}

// normalizeSlices replaces nil collections with empty ones so records always
// serialize as arrays.
func normalizeSlices(w WellRecord) WellRecord {
	if w.Formations == nil {
		w.Formations = []Formation{}
	}
	if w.Production == nil {
		w.Production = []ProductionTest{}
	}
	if w.Complications == nil {
		w.Complications = []Complication{}
	}
	if w.Perforations == nil {
		w.Perforations = []Perforation{}
	}
	if w.Logs == nil {
		w.Logs = []WellLog{}
	}
	if w.Documents == nil {
		w.Documents = []SourceDocument{}
	}
	return w
}
