package domain

// acrasia8 is the reference well every session starts with and the template
// the synthetic generator perturbs. Source: PPL203-ACR8-GG-REP-002.
var acrasia8 = WellRecord{
	Name: "Acrasia-8",
	Location: Location{
		Lat:      `27° 14' 07.52" S`,
		Long:     `140° 59' 45.26" E`,
		Northing: 6987489,
		Easting:  499595,
	},
	SpudDate:    "30/12/2013",
	TD:          2525.0,
	KBElevation: 139.4,
	Formations: []Formation{
		{Name: "Surficial/Top Winton", TopMD: 8.2, BottomMD: 58.0, Color: "#E5E7EB", Description: "Surficial sediments"},
		{Name: "Winton Formation", TopMD: 58.0, BottomMD: 787.4, Color: "#D1D5DB", Description: "Interbedded siltstone and sandstone"},
		{Name: "Mackunda Formation", TopMD: 787.4, BottomMD: 924.5, Color: "#9CA3AF", Description: "Interbedded sandstone and siltstone, marginal marine"},
		{Name: "Allaru Mudstone", TopMD: 924.5, BottomMD: 1131.2, Color: "#6B7280", Description: "Marine argillaceous siltstones"},
		{Name: "Toolebuc Formation", TopMD: 1131.2, BottomMD: 1141.2, Color: "#4B5563", Description: "Massive siltstone, organic phosphate"},
		{Name: "Wallumbilla Formation", TopMD: 1141.2, BottomMD: 1580.7, Color: "#374151", Description: "Massive shallow marine siltstones"},
		{Name: "Cadna-owie Formation", TopMD: 1580.7, BottomMD: 1663.5, Color: "#60A5FA", Description: "Interbedded calcareous sandstone and siltstone"},
		{Name: "Murta Formation", TopMD: 1663.5, BottomMD: 1722.9, Color: "#3B82F6", Description: "Lacustrine interbedded silty sandstones"},
		{Name: "McKinlay Member", TopMD: 1722.9, BottomMD: 1732.1, Color: "#2563EB", OilShow: true, Description: "Lacustrine deltaic-beach sandstone. Poor oil shows."},
		{Name: "Namur Sandstone", TopMD: 1732.1, BottomMD: 1792.6, Color: "#1D4ED8", OilShow: true, Description: "Braided-fluvial sandstone. Poor oil shows."},
		{Name: "Westbourne Formation", TopMD: 1792.6, BottomMD: 1918.3, Color: "#1E40AF", Description: "Lacustrine to flood-plain deposit"},
		{Name: "Adori Sandstone", TopMD: 1918.3, BottomMD: 1951.8, Color: "#93C5FD", Description: "Braided-fluvial sandstones"},
		{Name: "Birkhead Formation", TopMD: 1951.8, BottomMD: 2040.2, Color: "#166534", OilShow: true, Description: "Secondary Target. 12.3m net pay. Fair to very good shows."},
		{Name: "Hutton Sandstone", TopMD: 2040.2, BottomMD: 2229.9, Color: "#15803D", OilShow: true, Description: "Primary Target. Poor to good oil fluorescence."},
		{Name: "Poolowanna Formation", TopMD: 2229.9, BottomMD: 2298.3, Color: "#16A34A", OilShow: true, Description: "Primary Target. 3.9m net pay. Poor to good shows."},
		{Name: "Tinchoo Formation", TopMD: 2298.3, BottomMD: 2394.0, Color: "#BBF7D0", OilShow: true, Description: "Secondary Target. Poor to good shows."},
		{Name: "Arrabury Formation", TopMD: 2394.0, BottomMD: 2482.4, Color: "#86EFAC", OilShow: true, Description: "Sandstone with interbedded silty sandstone."},
		{Name: "Mooracoochie Volcanics", TopMD: 2482.4, BottomMD: 2525.0, Color: "#FCA5A5", Description: "Economic basement. Rhyolite."},
	},
	Production: []ProductionTest{
		{Zone: "Birkhead / Hutton", RateBOPD: 164, Interval: "2010.0-2053.0 mMD"},
		{Zone: "Poolowanna", RateBOPD: 250, Interval: "2242.5-2265.0 mMD"},
	},
	Complications: []Complication{
		{Depth: 950, Type: "Tight Hole", Severity: SeverityLow, Description: "Overpull 10k lbs while tripping out."},
		{Depth: 1620, Type: "Loss of Circulation", Severity: SeverityMedium, Description: "Lost 20 bbls mud to formation."},
		{Depth: 2150, Type: "Gas Kick", Severity: SeverityHigh, Description: "Detected 50 unit gas peak. Circulated out."},
	},
	Perforations: []Perforation{
		{TopMD: 2010.0, BottomMD: 2053.0, Zone: "Birkhead / Hutton", ShotDensity: "6 spf"},
		{TopMD: 2242.5, BottomMD: 2265.0, Zone: "Poolowanna", ShotDensity: "12 spf"},
	},
	Logs: []WellLog{
		{RunNumber: 1, Suite: "DLL-MSFL-GR-SP-CAL", Date: "05/01/2014", TopMD: 50, BottomMD: 780, Company: "Schlumberger"},
		{RunNumber: 2, Suite: "PEX-HRLA-HNGS-BHC", Date: "15/01/2014", TopMD: 780, BottomMD: 2525, Company: "Schlumberger"},
		{RunNumber: 2, Suite: "FMI-DSI-GPIT", Date: "16/01/2014", TopMD: 1800, BottomMD: 2525, Company: "Schlumberger"},
	},
	Documents: []SourceDocument{
		{
			Title:         "Well Data Card",
			Reference:     "PPL203-ACR8-GG-REP-002",
			Page:          4,
			ExtractedData: "Total Depth: 2525.0 mRT",
			Quote:         "Acrasia-8 was drilled as a vertical well to a total depth of 2525.0mRT in the Mooracoochie Volcanics.",
		},
		{
			Title:         "DST #1 Summary",
			Reference:     "PPL203-ACR8-GG-REP-002",
			Page:          6,
			ExtractedData: "Flow Rate: 164 BOPD",
			Quote:         `The Birkhead / Hutton zone (2010.0-2053.0 mMD) flowed at 164 BOPD on a 1/2" choke during DST #1.`,
		},
	},
}

// Acrasia8 returns a fresh copy of the seed well.
func Acrasia8() WellRecord {
	return acrasia8.Clone()
}
