package remote

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL)
}

func TestCoveringParsesStringCellIDs(t *testing.T) {
	var gotPath string
	var gotReq BatchRequest
	client := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"replies": [["4611686018427387904", "-4611686018427387904"]]}`))
	})

	cells, err := client.Covering(37.788, -122.4075, 500)
	require.NoError(t, err)

	assert.Equal(t, "/covering", gotPath)
	assert.Equal(t, [][]float64{{37.788, -122.4075, 500}}, gotReq.Calls)
	// Negative values are southern-face cell bit patterns, passed through
	// exactly.
	assert.Equal(t, []int64{4611686018427387904, -4611686018427387904}, cells)
}

func TestCoveringRectPath(t *testing.T) {
	client := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/covering_rect", r.URL.Path)
		w.Write([]byte(`{"replies": [["42"]]}`))
	})

	cells, err := client.CoveringRect(37.775, -122.420, 37.795, -122.400)
	require.NoError(t, err)
	assert.Equal(t, []int64{42}, cells)
}

func TestDistancesBatch(t *testing.T) {
	client := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req BatchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Calls, 2)
		w.Write([]byte(`{"replies": [0, 345.3]}`))
	})

	distances, err := client.Distances([][]float64{
		{37.7880, -122.4075, 37.7880, -122.4075},
		{37.7880, -122.4075, 37.7908, -122.4058},
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 345.3}, distances)
}

func TestDistancesEmptyBatch(t *testing.T) {
	client := NewClient("http://127.0.0.1:0") // never dialed
	distances, err := client.Distances(nil)
	require.NoError(t, err)
	assert.Nil(t, distances)
}

func TestErrorPayload(t *testing.T) {
	client := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errorMessage": "radiusMeters must be positive"}`))
	})

	_, err := client.Covering(0, 0, -1)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "radiusMeters must be positive")
}

func TestHTTPErrorStatus(t *testing.T) {
	client := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Distance(0, 0, 1, 1)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestReplyCountMismatch(t *testing.T) {
	client := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"replies": [1.0, 2.0]}`))
	})

	_, err := client.Distance(0, 0, 1, 1)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	client := NewClient(srv.URL)
	srv.Close()

	_, err := client.Covering(0, 0, 100)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestBadCellIDToken(t *testing.T) {
	client := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"replies": [["not-a-number"]]}`))
	})

	_, err := client.Covering(0, 0, 100)
	assert.ErrorIs(t, err, ErrUnavailable)
}
