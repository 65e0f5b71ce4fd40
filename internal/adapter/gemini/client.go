// Package gemini extracts well records from PDF reports with the Gemini API.
package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/couchcryptid/well-data-service/internal/domain"
)

// Source is the extractor name reported in logs and metrics.
const Source = "gemini"

const instruction = `You are an expert Petroleum Engineer and Data Scientist.
Analyze the attached Well Completion Report PDF.
Extract the technical well data into the specified JSON format.

Guidelines:
1. Extract the Well Name, Spud Date, Total Depth (TD), and KB Elevation accurately.
2. Location: Extract coordinates. If in DMS, provide the string. If UTM, provide the raw values mapped to northing/easting.
3. Formations: Extract the Stratigraphic Table in depth order. Each formation's topMD must equal the previous bottomMD and the last bottomMD must equal TD. Infer a hex color code for each formation based on its lithology (e.g., Sandstone: #F5F5DC, Shale: #708090, Coal: #2F4F4F).
4. Production: Extract Drill Stem Test (DST) results, specifically flow rates (BOPD) and intervals.
5. Complications: Identify drilling hazards like kicks, losses, or tight holes. Assign a severity level.
6. Perforations: Extract perforation intervals and shot density.
7. Logs: Extract the Wireline Logging Summary (Suite, Date, Interval, Run #).
8. Documents: Provide 1-2 key excerpts verifying the extraction, such as the spud date source or the main target reservoir summary.`

// contentGenerator is the slice of genai.Models the client needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client implements domain.Extractor over the Google Gen AI SDK. One request
// per document, no retries.
type Client struct {
	models contentGenerator
	model  string
	logger *slog.Logger
}

// NewClient creates a Gemini extraction client. An empty apiKey fails with
// domain.ErrMissingCredential before any network activity.
func NewClient(ctx context.Context, apiKey, model string, logger *slog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, domain.ErrMissingCredential
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{models: client.Models, model: model, logger: logger}, nil
}

// Source implements domain.Extractor.
func (c *Client) Source() string { return Source }

// Extract sends the document with the extraction instruction and decodes the
// structured reply.
func (c *Client) Extract(ctx context.Context, doc domain.Document) (domain.WellRecord, error) {
	if c.models == nil {
		return domain.WellRecord{}, domain.ErrMissingCredential
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(doc.Data, domain.MIMETypePDF),
			genai.NewPartFromText(instruction),
		}, genai.RoleUser),
	}
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   wellSchema,
		Temperature:      genai.Ptr[float32](0),
	}

	resp, err := c.models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return domain.WellRecord{}, fmt.Errorf("%w: %s: %w", domain.ErrExtractionFailed, doc.Filename, err)
	}

	text := responseText(resp)
	if text == "" {
		return domain.WellRecord{}, fmt.Errorf("%w: %s: model returned no text", domain.ErrExtractionFailed, doc.Filename)
	}

	well, err := domain.DecodeWellRecord(text)
	if err != nil {
		c.logger.Error("invalid extraction response",
			"file", doc.Filename,
			"model", c.model,
			"response_bytes", len(text),
			"error", err,
		)
		return domain.WellRecord{}, err
	}

	c.logger.Info("document extracted",
		"file", doc.Filename,
		"well", well.Name,
		"formations", len(well.Formations),
	)
	return well, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	return resp.Text()
}
