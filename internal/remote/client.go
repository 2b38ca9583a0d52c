package remote

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// ErrUnavailable indicates the remote covering/distance service could not
// be reached or returned an error payload. Callers on the remote path
// should treat this as recoverable and fall back to client-side geometry
// rather than failing hard.
var ErrUnavailable = errors.New("remote geo service unavailable")

// Client calls the remote covering/distance service. It performs no
// retries; retry policy belongs to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Covering computes the covering cells for a circle, returned in stored
// (signed int64) form, parsed from the service's string-encoded cell IDs.
func (c *Client) Covering(centerLat, centerLng, radiusMeters float64) ([]int64, error) {
	replies, err := c.call("/covering", [][]float64{{centerLat, centerLng, radiusMeters}})
	if err != nil {
		return nil, err
	}
	return parseCellIDs(replies[0])
}

// CoveringRect computes the covering cells for a lat/lng rectangle.
func (c *Client) CoveringRect(minLat, minLng, maxLat, maxLng float64) ([]int64, error) {
	replies, err := c.call("/covering_rect", [][]float64{{minLat, minLng, maxLat, maxLng}})
	if err != nil {
		return nil, err
	}
	return parseCellIDs(replies[0])
}

// Distances computes great-circle distances for a batch of
// (lat1, lng1, lat2, lng2) tuples in a single round trip, one distance in
// meters per tuple.
func (c *Client) Distances(calls [][]float64) ([]float64, error) {
	if len(calls) == 0 {
		return nil, nil
	}

	replies, err := c.call("/distance", calls)
	if err != nil {
		return nil, err
	}

	distances := make([]float64, len(replies))
	for i, raw := range replies {
		if err := json.Unmarshal(raw, &distances[i]); err != nil {
			return nil, fmt.Errorf("%w: bad distance reply: %v", ErrUnavailable, err)
		}
	}
	return distances, nil
}

// Distance is the single-pair convenience form of Distances.
func (c *Client) Distance(lat1, lng1, lat2, lng2 float64) (float64, error) {
	distances, err := c.Distances([][]float64{{lat1, lng1, lat2, lng2}})
	if err != nil {
		return 0, err
	}
	return distances[0], nil
}

func (c *Client) call(path string, calls [][]float64) ([]json.RawMessage, error) {
	body, err := json.Marshal(BatchRequest{Calls: calls})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrUnavailable, path, resp.StatusCode)
	}

	var batch BatchResponse
	if err := json.Unmarshal(payload, &batch); err != nil {
		return nil, fmt.Errorf("%w: bad response: %v", ErrUnavailable, err)
	}
	if batch.ErrorMessage != "" {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, batch.ErrorMessage)
	}
	if len(batch.Replies) != len(calls) {
		return nil, fmt.Errorf("%w: got %d replies for %d calls", ErrUnavailable, len(batch.Replies), len(calls))
	}
	return batch.Replies, nil
}

func parseCellIDs(raw json.RawMessage) ([]int64, error) {
	var tokens []string
	if err := json.Unmarshal(raw, &tokens); err != nil {
		return nil, fmt.Errorf("%w: bad covering reply: %v", ErrUnavailable, err)
	}

	cellIDs := make([]int64, len(tokens))
	for i, token := range tokens {
		id, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad cell id %q: %v", ErrUnavailable, token, err)
		}
		cellIDs[i] = id
	}
	return cellIDs, nil
}
