// Package domain models subsurface well-engineering records: stratigraphy,
// production tests, drilling complications, perforations, wireline logs and
// the source documents they were extracted from.
//
// # Data Source
//
// Records enter the collection three ways: the built-in Acrasia-8 seed
// template (a Cooper Basin well, PPL 203), the synthetic generator that
// perturbs that template, and the document extraction client that turns an
// uploaded well completion report (PDF) into a record.
//
// # Well Data Conventions
//
// Depths:
//
//	All depths are measured depth (MD) in meters below the kelly bushing.
//	Total depth (TD) is the deepest measured point and always equals the
//	bottom of the deepest formation.
//
// Formation sequence:
//
//	Formations are ordered shallow to deep and contiguous: each top equals
//	the previous bottom. The first top is >= 0.
//
// Location format:
//
//	`<deg>° <min>' <sec>" <hemisphere>`  →  e.g. `27° 14' 07.52" S`
//	Degrees and minutes are integers, seconds carry two decimals, the
//	hemisphere is one of N, S, E, W. Northing/easting are projected meters.
//	See [ParseDMS] and [FormatDMS].
//
// Date format:
//
//	Calendar dates (spud date, log run dates) are DD/MM/YYYY strings.
//
// # Coordinate Approximation
//
// The generator moves a well by a metric offset using a flat-earth
// approximation (110 950 m per degree of latitude, 111 320·cos(lat) m per
// degree of longitude). It is only accurate within a few kilometers of the
// template's reference latitude (~27°S) and is not a geodesic transform.
package domain
