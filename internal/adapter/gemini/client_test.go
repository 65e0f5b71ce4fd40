package gemini

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/couchcryptid/well-data-service/internal/domain"
)

// --- fake generator ---

type fakeGenerator struct {
	text string
	resp *genai.GenerateContentResponse
	err  error

	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

func (f *fakeGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model, f.contents, f.config = model, contents, config
	if f.err != nil {
		return nil, f.err
	}
	if f.resp != nil {
		return f.resp, nil
	}
	return textResponse(f.text), nil
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Role:  genai.RoleModel,
				Parts: []*genai.Part{{Text: text}},
			},
		}},
	}
}

func testClient(gen contentGenerator) *Client {
	return &Client{models: gen, model: "gemini-2.5-flash", logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

var testDoc = domain.Document{Filename: "Acrasia-8.pdf", MIMEType: domain.MIMETypePDF, Data: []byte("%PDF-1.4 test")}

const minimalWell = `{"name":"Acrasia-8","td":100,"formations":[{"name":"A","topMD":0,"bottomMD":100,"color":"#fff"}]}`

// --- tests ---

func TestNewClient_MissingCredential(t *testing.T) {
	_, err := NewClient(context.Background(), "", "gemini-2.5-flash", slog.Default())
	require.ErrorIs(t, err, domain.ErrMissingCredential)
}

func TestExtract_ZeroClientIsMissingCredential(t *testing.T) {
	var c Client
	_, err := c.Extract(context.Background(), testDoc)
	require.ErrorIs(t, err, domain.ErrMissingCredential)
}

func TestExtract_Success(t *testing.T) {
	gen := &fakeGenerator{text: minimalWell}
	c := testClient(gen)

	well, err := c.Extract(context.Background(), testDoc)
	require.NoError(t, err)

	assert.Equal(t, "Acrasia-8", well.Name)
	assert.InDelta(t, 100, well.TD, 0)
	require.Len(t, well.Formations, 1)
	assert.NotNil(t, well.Production, "absent sections decode as empty")

	// Request shape: one user turn with the PDF then the instruction.
	assert.Equal(t, "gemini-2.5-flash", gen.model)
	require.Len(t, gen.contents, 1)
	parts := gen.contents[0].Parts
	require.Len(t, parts, 2)
	require.NotNil(t, parts[0].InlineData)
	assert.Equal(t, domain.MIMETypePDF, parts[0].InlineData.MIMEType)
	assert.Equal(t, testDoc.Data, parts[0].InlineData.Data)
	assert.Contains(t, parts[1].Text, "Well Completion Report")

	assert.Equal(t, "application/json", gen.config.ResponseMIMEType)
	assert.Equal(t, []string{"name", "td", "formations"}, gen.config.ResponseSchema.Required)
}

func TestExtract_FencedResponse(t *testing.T) {
	c := testClient(&fakeGenerator{text: "```json\n" + minimalWell + "\n```"})

	well, err := c.Extract(context.Background(), testDoc)
	require.NoError(t, err)
	assert.Equal(t, "Acrasia-8", well.Name)
}

func TestExtract_Errors(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
		want error
	}{
		{"transport", &fakeGenerator{err: errors.New("503 UNAVAILABLE")}, domain.ErrExtractionFailed},
		{"empty text", &fakeGenerator{text: ""}, domain.ErrExtractionFailed},
		{"no candidates", &fakeGenerator{resp: &genai.GenerateContentResponse{}}, domain.ErrExtractionFailed},
		{"not json", &fakeGenerator{text: "I could not read this document."}, domain.ErrMalformedResponse},
		{"missing required", &fakeGenerator{text: `{"name":"X"}`}, domain.ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testClient(tt.gen).Extract(context.Background(), testDoc)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExtract_TransportErrorKeepsCause(t *testing.T) {
	cause := context.DeadlineExceeded
	_, err := testClient(&fakeGenerator{err: cause}).Extract(context.Background(), testDoc)
	require.ErrorIs(t, err, domain.ErrExtractionFailed)
	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "Acrasia-8.pdf")
}

func TestWellSchema(t *testing.T) {
	assert.Equal(t, genai.TypeObject, wellSchema.Type)
	for _, key := range []string{"name", "location", "spudDate", "td", "kbElevation", "formations", "production", "complications", "perforations", "logs", "documents"} {
		assert.Contains(t, wellSchema.Properties, key)
	}
	sev := wellSchema.Properties["complications"].Items.Properties["severity"]
	assert.Equal(t, []string{"low", "medium", "high"}, sev.Enum)
	assert.Equal(t, genai.TypeInteger, wellSchema.Properties["documents"].Items.Properties["page"].Type)
}

func TestSource(t *testing.T) {
	assert.Equal(t, "gemini", testClient(&fakeGenerator{}).Source())
}
