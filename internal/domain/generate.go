package domain

import (
	"fmt"
	"math"
	"math/rand/v2"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DateLayout is the DD/MM/YYYY layout used for spud and log dates.
const DateLayout = "02/01/2006"

const (
	minDepthScale = 0.95
	maxDepthScale = 1.05

	oilShowProbability      = 0.3
	tightHoleProbability    = 0.5
	diffStickingProbability = 0.3

	// perforationMargin narrows the pay zone on both sides.
	perforationMargin = 5.0

	maxOffsetMeters = 4000
	maxSpudShiftDay = 750

	minKBElevation = 130.0
	maxKBElevation = 150.0

	minRateFactor = 0.5
	maxRateFactor = 1.5

	// Flat-earth meters per degree, valid near the template latitude only.
	metersPerDegLat = 110_950.0
	metersPerDegLon = 111_320.0

	shallowLogTop       = 50.0
	defaultCasingDepth  = 780.0
	shallowLogDayOffset = 6
	deepLogDayOffset    = 16
	loggingCompany      = "Schlumberger"
)

// intervalRe parses production intervals such as "2010.0-2053.0 mMD".
var intervalRe = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s*-\s*(\d+(?:\.\d+)?)\s*(.*)$`)

// Generator fabricates plausible well records by perturbing a template.
// It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator returns a Generator seeded with seed. A zero seed draws the
// seed from the package clock so successive runs differ.
func NewGenerator(seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(clock.Now().UnixNano())
	}
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Generate derives a new, internally consistent record named label from template.
// The template must satisfy the record invariants; it is not modified.
func (g *Generator) Generate(template WellRecord, label string) WellRecord {
	g.mu.Lock()
	defer g.mu.Unlock()

	scale := g.uniform(minDepthScale, maxDepthScale)
	formations, td := ScaleFormations(template.Formations, scale)
	for i := range formations {
		formations[i].OilShow = g.rng.Float64() < oilShowProbability
	}

	spud := parseDateOrNow(template.SpudDate).AddDate(0, 0, g.intRange(-maxSpudShiftDay, maxSpudShiftDay))
	location := g.offsetLocation(template.Location)
	casing := math.Min(round1(casingDepth(template)*scale), td)

	well := WellRecord{
		Name:          label,
		Location:      location,
		SpudDate:      spud.Format(DateLayout),
		TD:            td,
		KBElevation:   round1(g.uniform(minKBElevation, maxKBElevation)),
		Formations:    formations,
		Production:    g.scaleProduction(template.Production, scale),
		Complications: g.drawComplications(td),
		Perforations:  []Perforation{},
		Logs: []WellLog{
			{RunNumber: 1, Suite: "DLL-MSFL-GR-SP-CAL", Date: spud.AddDate(0, 0, shallowLogDayOffset).Format(DateLayout), TopMD: shallowLogTop, BottomMD: casing, Company: loggingCompany},
			{RunNumber: 2, Suite: "PEX-HRLA-HNGS-BHC", Date: spud.AddDate(0, 0, deepLogDayOffset).Format(DateLayout), TopMD: casing, BottomMD: td, Company: loggingCompany},
		},
	}

	if pay := SelectPayZone(template.Formations, formations); pay >= 0 {
		zone := formations[pay]
		if zone.Thickness() > 2*perforationMargin {
			well.Perforations = append(well.Perforations, Perforation{
				TopMD:       round1(zone.TopMD + perforationMargin),
				BottomMD:    round1(zone.BottomMD - perforationMargin),
				Zone:        zone.Name,
				ShotDensity: "6 spf",
				Status:      PerforationOpen,
			})
		}
		well.Documents = []SourceDocument{syntheticDocument(label, zone, td)}
	} else {
		well.Documents = []SourceDocument{syntheticDocument(label, Formation{Name: "target zone"}, td)}
	}

	return well
}

// ScaleFormations multiplies every formation boundary by f, rounding to one
// decimal. Shared boundaries round identically, so a contiguous input stays
// contiguous. The returned total depth is the last scaled bottom.
func ScaleFormations(formations []Formation, f float64) ([]Formation, float64) {
	out := make([]Formation, len(formations))
	for i, fm := range formations {
		fm.TopMD = round1(fm.TopMD * f)
		fm.BottomMD = round1(fm.BottomMD * f)
		out[i] = fm
	}
	if len(out) == 0 {
		return out, 0
	}
	return out, out[len(out)-1].BottomMD
}

// SelectPayZone picks the formation to perforate: the first one flagged with
// an oil show in the template whose scaled interval leaves room for the
// perforation margins. When none qualifies the thickest formation is used.
// Returns -1 for an empty sequence.
func SelectPayZone(template, scaled []Formation) int {
	for i := range scaled {
		if i < len(template) && template[i].OilShow && scaled[i].Thickness() > 2*perforationMargin {
			return i
		}
	}

	best := -1
	for i := range scaled {
		if best < 0 || scaled[i].Thickness() > scaled[best].Thickness() {
			best = i
		}
	}
	return best
}

// WellNameFromFilename derives a display name from an uploaded file name,
// e.g. "reports/Acrasia-9.pdf" -> "Acrasia-9".
func WellNameFromFilename(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	name := strings.TrimSpace(strings.TrimSuffix(base, filepath.Ext(base)))
	if name == "" || name == "." || name == "/" {
		return "Unnamed Well"
	}
	return name
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

// intRange draws an integer in the closed interval [lo, hi].
func (g *Generator) intRange(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

func (g *Generator) offsetLocation(base Location) Location {
	offsetN := g.intRange(-maxOffsetMeters, maxOffsetMeters)
	offsetE := g.intRange(-maxOffsetMeters, maxOffsetMeters)

	origin := ResolvePosition(base)
	baseLatRad := origin.Lat * math.Pi / 180
	lat := origin.Lat + float64(offsetN)/metersPerDegLat
	lon := origin.Lon + float64(offsetE)/(metersPerDegLon*math.Cos(baseLatRad))

	return Location{
		Lat:      FormatDMS(lat, true),
		Long:     FormatDMS(lon, false),
		Northing: base.Northing + float64(offsetN),
		Easting:  base.Easting + float64(offsetE),
	}
}

func (g *Generator) scaleProduction(tests []ProductionTest, scale float64) []ProductionTest {
	out := make([]ProductionTest, 0, len(tests))
	for _, p := range tests {
		out = append(out, ProductionTest{
			Zone:     p.Zone,
			RateBOPD: math.Floor(p.RateBOPD * g.uniform(minRateFactor, maxRateFactor)),
			Interval: scaleInterval(p.Interval, scale),
		})
	}
	return out
}

func (g *Generator) drawComplications(td float64) []Complication {
	out := []Complication{}
	if g.rng.Float64() < tightHoleProbability {
		out = append(out, Complication{
			Depth:       round1(td * 0.3),
			Type:        "Tight Hole",
			Severity:    SeverityLow,
			Description: "Overpull while tripping out.",
		})
	}
	if g.rng.Float64() < diffStickingProbability {
		out = append(out, Complication{
			Depth:       round1(td * 0.8),
			Type:        "Differential Sticking",
			Severity:    SeverityMedium,
			Description: "Pipe stuck across permeable sand. Freed with jarring.",
		})
	}
	return out
}

// casingDepth is the bottom of the template's first log run, which sits at
// the surface casing shoe.
func casingDepth(template WellRecord) float64 {
	if len(template.Logs) > 0 && template.Logs[0].BottomMD > shallowLogTop {
		return template.Logs[0].BottomMD
	}
	return defaultCasingDepth
}

// scaleInterval rescales a "top-bottom unit" interval string by f.
// Unrecognized text is returned unchanged.
func scaleInterval(interval string, f float64) string {
	m := intervalRe.FindStringSubmatch(interval)
	if len(m) != 4 {
		return interval
	}
	top, errT := strconv.ParseFloat(m[1], 64)
	bottom, errB := strconv.ParseFloat(m[2], 64)
	if errT != nil || errB != nil {
		return interval
	}
	out := fmt.Sprintf("%.1f-%.1f", round1(top*f), round1(bottom*f))
	if unit := strings.TrimSpace(m[3]); unit != "" {
		out += " " + unit
	}
	return out
}

func syntheticDocument(name string, pay Formation, td float64) SourceDocument {
	return SourceDocument{
		Title:         "Well Completion Report",
		Reference:     fmt.Sprintf("PPL203-%s-GG-REP-001", referenceCode(name)),
		Page:          4,
		ExtractedData: fmt.Sprintf("Total Depth: %.1f mRT", td),
		Quote:         fmt.Sprintf("%s intersected the %s at %.1f mMD with oil shows over the gross interval.", name, pay.Name, pay.TopMD),
	}
}

// referenceCode compacts a well name into a document reference token,
// e.g. "Acrasia-9" -> "ACRASIA9".
func referenceCode(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
		if b.Len() == 8 {
			break
		}
	}
	if b.Len() == 0 {
		return "WELL"
	}
	return b.String()
}

func parseDateOrNow(s string) time.Time {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return clock.Now().UTC().Truncate(24 * time.Hour)
	}
	return t
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
