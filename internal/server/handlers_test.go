package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridmind/minesweeper-agent/internal/game"
	"github.com/gridmind/minesweeper-agent/internal/testutil"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	manager := newTestManager(10)
	handler := NewHandler(manager, game.Config{Width: 8, Height: 8, Mines: 8}, testutil.NopLogger())
	ts := httptest.NewServer(handler.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func decodeView(t *testing.T, resp *http.Response) GameView {
	t.Helper()
	defer resp.Body.Close()
	var view GameView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	return view
}

func TestHandler_CreateGame(t *testing.T) {
	ts := newTestServer(t)

	body := bytes.NewBufferString(`{"width": 5, "height": 5, "mines": 3}`)
	resp, err := http.Post(ts.URL+"/games", "application/json", body)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	view := decodeView(t, resp)
	assert.NotEmpty(t, view.ID)
	assert.Equal(t, 5, view.Width)
	assert.Equal(t, 3, view.Mines)
	assert.Equal(t, "Running", view.Phase)
}

func TestHandler_CreateGameDefaults(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/games", "application/json", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	view := decodeView(t, resp)
	assert.Equal(t, 8, view.Width)
	assert.Equal(t, 8, view.Mines)
}

func TestHandler_CreateGameBadInput(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"width": `},
		{"zero width", `{"width": 0, "height": 5, "mines": 1}`},
		{"too many mines", `{"width": 2, "height": 2, "mines": 9}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/games", "application/json", bytes.NewBufferString(tt.body))
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestHandler_GetGame(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/games", "application/json", nil)
	require.NoError(t, err)
	created := decodeView(t, resp)

	resp, err = http.Get(ts.URL + "/games/" + created.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	view := decodeView(t, resp)
	assert.Equal(t, created.ID, view.ID)

	resp, err = http.Get(ts.URL + "/games/unknown")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandler_StepAndAutoplay(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/games", "application/json", nil)
	require.NoError(t, err)
	created := decodeView(t, resp)

	resp, err = http.Post(ts.URL+"/games/"+created.ID+"/step", "application/json", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stepped := decodeView(t, resp)
	assert.Equal(t, 1, stepped.Moves)

	resp, err = http.Post(ts.URL+"/games/"+created.ID+"/autoplay", "application/json", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	final := decodeView(t, resp)
	assert.Contains(t, []string{"Won", "Lost"}, final.Phase)
	require.NotNil(t, final.Result)

	// Stepping a finished game conflicts.
	resp, err = http.Post(ts.URL+"/games/"+created.ID+"/step", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestHandler_DeleteGame(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/games", "application/json", nil)
	require.NoError(t, err)
	created := decodeView(t, resp)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/games/"+created.ID, nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/games/" + created.ID)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandler_Health(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "ok", payload["status"])
	assert.Equal(t, float64(0), payload["games"])
}

func TestHandler_CapacityResponse(t *testing.T) {
	manager := newTestManager(1)
	handler := NewHandler(manager, game.Config{Width: 4, Height: 4, Mines: 1}, testutil.NopLogger())
	ts := httptest.NewServer(handler.Routes())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/games", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.Post(ts.URL+"/games", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, fmt.Sprintf("server at capacity: %d/%d games active", 1, 1), payload["error"])
}
