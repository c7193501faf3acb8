package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/poultrypro/poultryctl/pkg/domain"
)

// DetectionMetadata accompanies an uploaded disease image.
type DetectionMetadata struct {
	FarmID     string `json:"farm_id"`
	CoopID     string `json:"coop_id,omitempty"`
	BirdID     string `json:"bird_id,omitempty"`
	CapturedAt string `json:"captured_at,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// AnalyzeDiseaseImage uploads a bird image for disease analysis. This is the
// one endpoint that takes multipart form data instead of a JSON body: an
// "image" file part plus a JSON-encoded "metadata" field.
func (c *Client) AnalyzeDiseaseImage(ctx context.Context, image io.Reader, filename string, meta DetectionMetadata) (*domain.DiseaseDetection, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return nil, fmt.Errorf("client.AnalyzeDiseaseImage: create image part: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("client.AnalyzeDiseaseImage: copy image: %w", err)
	}

	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("client.AnalyzeDiseaseImage: marshal metadata: %w", err)
	}
	if err := mw.WriteField("metadata", string(metaJSON)); err != nil {
		return nil, fmt.Errorf("client.AnalyzeDiseaseImage: write metadata: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("client.AnalyzeDiseaseImage: close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/disease-detection/analyze", &buf)
	if err != nil {
		return nil, fmt.Errorf("client.AnalyzeDiseaseImage: create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var resp Response[domain.DiseaseDetection]
	if err := c.send(req, &resp); err != nil {
		return nil, fmt.Errorf("client.AnalyzeDiseaseImage: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("client.AnalyzeDiseaseImage: %w", resp.failure())
	}
	return resp.Data, nil
}

// DiseaseHistory returns past detections for a farm.
func (c *Client) DiseaseHistory(ctx context.Context, farmID string) ([]domain.DiseaseDetection, error) {
	var resp Response[[]domain.DiseaseDetection]
	if err := c.get(ctx, "/disease-detection/history/"+url.PathEscape(farmID), &resp); err != nil {
		return nil, fmt.Errorf("client.DiseaseHistory: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("client.DiseaseHistory: %w", resp.failure())
	}
	return value(&resp), nil
}
