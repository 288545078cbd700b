package face

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aegis-auth/aegis-server/internal/model"
)

var _ model.FaceExtractor = (*EncoderClient)(nil)

// EncoderClient extracts face encodings by delegating to an external encoder
// service. The service receives the raw image and responds with the
// encodings of every detected face; extraction itself is a black box here.
type EncoderClient struct {
	url    string
	client *http.Client
}

// NewEncoderClient creates a client for the encoder service at url.
// Requests are bounded by timeout.
func NewEncoderClient(url string, timeout time.Duration) *EncoderClient {
	return &EncoderClient{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type encodeResponse struct {
	Encodings [][]float64 `json:"encodings"`
}

// Extract sends the image to the encoder service and returns the encoding of
// the first detected face. Returns model.ErrNoFaceDetected when the service
// finds no face.
func (c *EncoderClient) Extract(ctx context.Context, image []byte) ([]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("failed to build encoder request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call encoder service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("encoder service returned %d: %s", resp.StatusCode, body)
	}

	var out encodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode encoder response: %w", err)
	}

	if len(out.Encodings) == 0 {
		return nil, model.ErrNoFaceDetected
	}

	// Several faces in one image: take the first, same as the original
	// enrollment flow.
	encoding := out.Encodings[0]
	if len(encoding) != EncodingLength {
		return nil, fmt.Errorf("encoder returned vector of length %d, want %d", len(encoding), EncodingLength)
	}

	return encoding, nil
}
