package domain

// WellSummary is one column of the asset comparison table.
type WellSummary struct {
	Name           string  `json:"name"`
	TD             float64 `json:"td"`
	KBElevation    float64 `json:"kbElevation"`
	SpudDate       string  `json:"spudDate"`
	PlaceName      string  `json:"placeName,omitempty"`
	FormationCount int     `json:"formationCount"`
	OilShowCount   int     `json:"oilShowCount"`
	TotalRateBOPD  float64 `json:"totalRateBOPD"`
	Complications  int     `json:"complications"`
	LogRuns        int     `json:"logRuns"`
}

// ZoneProduction is one row of the production comparison: a zone and the
// tested rate of every well that reports it.
type ZoneProduction struct {
	Zone  string             `json:"zone"`
	Rates map[string]float64 `json:"rates"` // well name -> BOPD
}

// Summarize builds the comparison table in collection order.
func Summarize(wells []WellRecord) []WellSummary {
	out := make([]WellSummary, 0, len(wells))
	for _, w := range wells {
		s := WellSummary{
			Name:           w.Name,
			TD:             w.TD,
			KBElevation:    w.KBElevation,
			SpudDate:       w.SpudDate,
			PlaceName:      w.Location.PlaceName,
			FormationCount: len(w.Formations),
			TotalRateBOPD:  w.TotalRateBOPD(),
			Complications:  len(w.Complications),
			LogRuns:        len(w.Logs),
		}
		for _, f := range w.Formations {
			if f.OilShow {
				s.OilShowCount++
			}
		}
		out = append(out, s)
	}
	return out
}

// ProductionMatrix pivots production tests by zone. Zones appear in order of
// first occurrence across the collection; a well reporting a zone twice keeps
// its first rate.
func ProductionMatrix(wells []WellRecord) []ZoneProduction {
	var rows []ZoneProduction
	index := map[string]int{}

	for _, w := range wells {
		for _, p := range w.Production {
			i, ok := index[p.Zone]
			if !ok {
				i = len(rows)
				index[p.Zone] = i
				rows = append(rows, ZoneProduction{Zone: p.Zone, Rates: map[string]float64{}})
			}
			if _, seen := rows[i].Rates[w.Name]; !seen {
				rows[i].Rates[w.Name] = p.RateBOPD
			}
		}
	}
	if rows == nil {
		return []ZoneProduction{}
	}
	return rows
}
