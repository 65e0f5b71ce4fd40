package gemini

import "google.golang.org/genai"

func str(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: desc}
}

func num(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeNumber, Description: desc}
}

func integer(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeInteger, Description: desc}
}

func arrayOf(props map[string]*genai.Schema, required ...string) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: props,
			Required:   required,
		},
	}
}

// wellSchema is the structured output contract sent with every request.
// Only name, td and formations are required; every other section may be
// absent from a given report.
var wellSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name": str("Name of the well"),
		"location": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"lat":      str(`Latitude in DMS format (e.g. 27° 14' 07.52" S)`),
				"long":     str(`Longitude in DMS format (e.g. 140° 59' 45.26" E)`),
				"northing": num("UTM Northing"),
				"easting":  num("UTM Easting"),
			},
		},
		"spudDate":    str("Date the well was spudded (DD/MM/YYYY)"),
		"td":          num("Total Depth in meters"),
		"kbElevation": num("Kelly Bushing Elevation in meters"),
		"formations": arrayOf(map[string]*genai.Schema{
			"name":        str(""),
			"topMD":       num(""),
			"bottomMD":    num(""),
			"description": str("Lithological description"),
			"oilShow":     {Type: genai.TypeBoolean},
			"color":       str("Hex color code for visualization"),
		}, "name", "topMD", "bottomMD"),
		"production": arrayOf(map[string]*genai.Schema{
			"zone":     str(""),
			"rateBOPD": num("Flow rate in barrels of oil per day"),
			"interval": str(""),
		}),
		"complications": arrayOf(map[string]*genai.Schema{
			"depth":       num(""),
			"type":        str(""),
			"severity":    {Type: genai.TypeString, Enum: []string{"low", "medium", "high"}},
			"description": str(""),
		}),
		"perforations": arrayOf(map[string]*genai.Schema{
			"topMD":       num(""),
			"bottomMD":    num(""),
			"zone":        str(""),
			"shotDensity": str(""),
		}),
		"logs": arrayOf(map[string]*genai.Schema{
			"runNumber": integer(""),
			"suite":     str(""),
			"date":      str(""),
			"topMD":     num(""),
			"bottomMD":  num(""),
			"company":   str(""),
		}),
		"documents": arrayOf(map[string]*genai.Schema{
			"title":         str(""),
			"reference":     str(""),
			"page":          integer("1-based page number"),
			"quote":         str(""),
			"extractedData": str(""),
		}),
	},
	Required: []string{"name", "td", "formations"},
}
