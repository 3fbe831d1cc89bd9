package httpapi

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"rvce-fee-backend-go/internal/services"

	"github.com/google/uuid"
)

func TestMetricsHistoryRequiresAdminOwner(t *testing.T) {
	server, handler := newTestServer(t, "metricsrole")
	student := loginCookie(t, server, services.RoleStudent, "")
	res := doRequest(handler, http.MethodGet, "/api/metrics/history", "", student)
	if res.Code != http.StatusForbidden {
		t.Fatalf("status = %d", res.Code)
	}
}

func TestMetricsHistoryReturnsSamplesOldestFirst(t *testing.T) {
	server, handler := newTestServer(t, "metricshistory")
	admin := loginCookie(t, server, services.RoleAdmin, "")

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := server.DB.Exec(`
INSERT INTO server_metric_samples (
  id, captured_at, heap_used_bytes, heap_max_bytes, system_memory_total_bytes,
  system_memory_used_bytes, disk_total_bytes, disk_used_bytes, process_cpu_load, system_cpu_load
) VALUES (?,?,?,?,?,?,?,?,?,?)
`, uuid.NewString(), base.Add(time.Duration(i)*time.Minute), int64(i+1), 100, 100, 50, 1000, 500, 0.1, 0.2)
		if err != nil {
			t.Fatalf("insert sample: %v", err)
		}
	}

	res := doRequest(handler, http.MethodGet, "/api/metrics/history?limit=2", "", admin)
	if res.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", res.Code, res.Body.String())
	}
	var out MetricsHistoryResponse
	if err := json.Unmarshal(res.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(out.Items))
	}
	if !out.Items[0].CapturedAt.Before(out.Items[1].CapturedAt) {
		t.Fatalf("expected oldest first: %v then %v", out.Items[0].CapturedAt, out.Items[1].CapturedAt)
	}
	// The two most recent samples.
	if out.Items[1].ProcessRSSBytes != 3 || out.Items[0].ProcessRSSBytes != 2 {
		t.Fatalf("unexpected samples: %+v", out.Items)
	}
}

func TestMetricsSocketRequiresAdminOwner(t *testing.T) {
	_, handler := newTestServer(t, "metricssocket")
	res := doRequest(handler, http.MethodGet, "/ws/metrics", "", nil)
	if res.Code != http.StatusForbidden {
		t.Fatalf("status = %d", res.Code)
	}
}
