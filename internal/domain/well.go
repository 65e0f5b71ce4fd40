package domain

import "slices"

// Severity grades a drilling complication.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Valid reports whether s is one of the known severity levels.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	default:
		return false
	}
}

// PerforationStatus is the completion state of a perforated interval.
type PerforationStatus string

const (
	PerforationOpen     PerforationStatus = "open"
	PerforationSqueezed PerforationStatus = "squeezed"
)

// Location holds the surface location as DMS strings plus projected coordinates.
type Location struct {
	Lat      string  `json:"lat"`
	Long     string  `json:"long"`
	Northing float64 `json:"northing"`
	Easting  float64 `json:"easting"`

	// Reverse geocoding enrichment.
	PlaceName string `json:"placeName,omitempty"`
}

// Formation is one stratigraphic unit penetrated by the well.
type Formation struct {
	Name        string  `json:"name"`
	TopMD       float64 `json:"topMD"`
	BottomMD    float64 `json:"bottomMD"`
	Color       string  `json:"color"`
	Description string  `json:"description,omitempty"`
	OilShow     bool    `json:"oilShow,omitempty"`
}

// Thickness returns the measured interval of the formation.
func (f Formation) Thickness() float64 {
	return f.BottomMD - f.TopMD
}

// ProductionTest is a drill stem test result for one zone.
type ProductionTest struct {
	Zone     string  `json:"zone"`
	RateBOPD float64 `json:"rateBOPD"`
	Interval string  `json:"interval"` // free text, e.g. "2010.0-2053.0 mMD"
}

// Complication is a drilling hazard encountered at a depth.
type Complication struct {
	Depth       float64  `json:"depth"`
	Type        string   `json:"type"` // e.g. "Tight Hole", "Gas Kick"
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// Perforation is a perforated completion interval.
type Perforation struct {
	TopMD       float64           `json:"topMD"`
	BottomMD    float64           `json:"bottomMD"`
	Zone        string            `json:"zone"`
	ShotDensity string            `json:"shotDensity,omitempty"` // e.g. "6 spf"
	Status      PerforationStatus `json:"status,omitempty"`
}

// WellLog is one wireline logging run.
type WellLog struct {
	RunNumber int     `json:"runNumber"`
	Suite     string  `json:"suite"`
	Date      string  `json:"date"`
	TopMD     float64 `json:"topMD"`
	BottomMD  float64 `json:"bottomMD"`
	Company   string  `json:"company"`
}

// SourceDocument records where extracted values came from.
type SourceDocument struct {
	Title         string `json:"title"`
	Reference     string `json:"reference"`
	Page          int    `json:"page"`
	Quote         string `json:"quote,omitempty"`
	ExtractedData string `json:"extractedData,omitempty"`
}

// WellRecord is the central entity: one well with its subsurface data.
// Records are treated as immutable once they enter the collection.
type WellRecord struct {
	Name          string           `json:"name"`
	Location      Location         `json:"location"`
	SpudDate      string           `json:"spudDate"`
	TD            float64          `json:"td"`
	KBElevation   float64          `json:"kbElevation"`
	Formations    []Formation      `json:"formations"`
	Production    []ProductionTest `json:"production"`
	Complications []Complication   `json:"complications"`
	Perforations  []Perforation    `json:"perforations"`
	Logs          []WellLog        `json:"logs"`
	Documents     []SourceDocument `json:"documents"`
}

// Clone returns a deep copy so callers can never alias another record's slices.
// Empty collections stay empty (not nil) and serialize as [].
func (w WellRecord) Clone() WellRecord {
	c := w
	c.Formations = slices.Clone(w.Formations)
	c.Production = slices.Clone(w.Production)
	c.Complications = slices.Clone(w.Complications)
	c.Perforations = slices.Clone(w.Perforations)
	c.Logs = slices.Clone(w.Logs)
	c.Documents = slices.Clone(w.Documents)
	return c
}

// TotalRateBOPD sums the tested rates across all zones.
func (w WellRecord) TotalRateBOPD() float64 {
	var total float64
	for _, p := range w.Production {
		total += p.RateBOPD
	}
	return total
}

// Document is an uploaded file awaiting extraction.
type Document struct {
	Filename string
	MIMEType string
	Data     []byte
}

// MIMETypePDF is the only upload type the extraction model accepts.
const MIMETypePDF = "application/pdf"
