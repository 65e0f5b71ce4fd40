package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalResponse = `{"name":"Acrasia-9","td":2600.5,"formations":[{"name":"Winton Formation","topMD":0,"bottomMD":2600.5,"color":"#D1D5DB"}]}`

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"upper case info string", "```JSON\n{\"a\":1}\n```\n", `{"a":1}`},
		{"single line", "```json{\"a\":1}```", `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\":1}\n```  ", `{"a":1}`},
		{"no fence", ` {"a":1} `, `{"a":1}`},
		{"unterminated fence", "```json\n{\"a\":1}", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripCodeFences(tt.input))
		})
	}
}

func TestDecodeWellRecord(t *testing.T) {
	t.Run("fenced response", func(t *testing.T) {
		well, err := DecodeWellRecord("```json\n" + minimalResponse + "\n```")
		require.NoError(t, err)

		assert.Equal(t, "Acrasia-9", well.Name)
		assert.Equal(t, 2600.5, well.TD)
		require.Len(t, well.Formations, 1)
		assert.Equal(t, "Winton Formation", well.Formations[0].Name)
		assert.NotNil(t, well.Production)
		assert.NotNil(t, well.Documents)
		assert.NoError(t, Validate(well))
	})

	t.Run("plain response with optional fields", func(t *testing.T) {
		body := `{"name":" Tinchoo-1 ","location":{"lat":"27° 10' 00.00\" S","long":"141° 00' 00.00\" E","northing":6990000,"easting":500000},
			"spudDate":"01/02/2015","td":100,"kbElevation":140.2,
			"formations":[{"name":"A","topMD":0,"bottomMD":100,"color":"#fff","oilShow":true}],
			"production":[{"zone":"A","rateBOPD":12,"interval":"10-20 mMD"}],
			"complications":[{"depth":50,"type":"Gas Kick","severity":"high","description":"kick"}],
			"perforations":[{"topMD":10,"bottomMD":20,"zone":"A","shotDensity":"6 spf","status":"open"}],
			"logs":[{"runNumber":1,"suite":"GR","date":"03/02/2015","topMD":0,"bottomMD":100,"company":"Halliburton"}],
			"documents":[{"title":"WCR","reference":"R-1","page":2}]}`

		well, err := DecodeWellRecord(body)
		require.NoError(t, err)

		assert.Equal(t, "Tinchoo-1", well.Name)
		assert.Equal(t, 6990000.0, well.Location.Northing)
		assert.Equal(t, SeverityHigh, well.Complications[0].Severity)
		assert.Equal(t, PerforationOpen, well.Perforations[0].Status)
		assert.Equal(t, 1, well.Logs[0].RunNumber)
		assert.True(t, well.Formations[0].OilShow)
		assert.NoError(t, Validate(well))
	})

	t.Run("not JSON", func(t *testing.T) {
		_, err := DecodeWellRecord("I could not read the attached document.")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("fenced garbage", func(t *testing.T) {
		_, err := DecodeWellRecord("```json\n{name: Acrasia}\n```")
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := DecodeWellRecord("   ")
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("null", func(t *testing.T) {
		_, err := DecodeWellRecord("null")
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("array instead of object", func(t *testing.T) {
		_, err := DecodeWellRecord("[" + minimalResponse + "]")
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("missing required fields", func(t *testing.T) {
		_, err := DecodeWellRecord(`{"spudDate":"30/12/2013"}`)
		require.ErrorIs(t, err, ErrMalformedResponse)
		assert.Contains(t, err.Error(), "name, td, formations")
	})

	t.Run("missing td only", func(t *testing.T) {
		_, err := DecodeWellRecord(`{"name":"X","formations":[]}`)
		require.ErrorIs(t, err, ErrMalformedResponse)
		assert.Contains(t, err.Error(), "td")
		assert.NotContains(t, err.Error(), "name,")
	})

	t.Run("trailing data", func(t *testing.T) {
		_, err := DecodeWellRecord(minimalResponse + ` {"name":"again"}`)
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})
}
