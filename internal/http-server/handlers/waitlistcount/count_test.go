package waitlistcount

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"launchlist/lib/api/response"
)

type fakeCore struct {
	remaining int
}

func (f *fakeCore) WaitlistRemaining() int { return f.remaining }

func TestGet(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	req := httptest.NewRequest(http.MethodGet, "/api/waitlist/count", nil)
	w := httptest.NewRecorder()

	Get(log, &fakeCore{remaining: 190})(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data = %T, want object", resp.Data)
	}
	if data["remaining"] != float64(190) {
		t.Errorf("remaining = %v, want 190", data["remaining"])
	}
}
