package server_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"honnef.co/go/smooth/internal/config"
	"honnef.co/go/smooth/internal/feature"
	"honnef.co/go/smooth/internal/server"
)

const drawnFeature = `{"type":"Feature","id":"r1","geometry":{"type":"LineString","coordinates":[[31,48],[31.5,48.5],[32,48],[33,48.2]]},"properties":{"color":"red"}}`

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Chdir(t.TempDir())
	cfg, err := config.Load(config.New(), "")
	if err != nil {
		t.Fatal(err)
	}
	return server.NewApp(cfg, &server.Dependencies{
		Smoothing: cfg.Smoothing,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Version:   "test",
	})
}

func post(t *testing.T, app *fiber.App, target, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest("POST", target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, data
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/v1/health", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "healthy" || body["version"] != "test" {
		t.Errorf("unexpected body %v", body)
	}
}

func TestSmoothAndRestoreFeature(t *testing.T) {
	app := newTestApp(t)

	status, data := post(t, app, "/v1/smooth?sharpness=0.4&strategy=spline&resolution=100", drawnFeature)
	if status != 200 {
		t.Fatalf("expected 200, got %d: %s", status, data)
	}
	f, err := geojson.UnmarshalFeature(data)
	if err != nil {
		t.Fatal(err)
	}
	if f.ID != "r1" || f.Properties["color"] != "red" || f.Properties[feature.PropMode] != "smoothed" {
		t.Errorf("unexpected feature %s", data)
	}
	if n := len(f.Geometry.(orb.LineString)); n != 100 {
		t.Errorf("got %d points, want 100", n)
	}

	status, data = post(t, app, "/v1/restore", string(data))
	if status != 200 {
		t.Fatalf("expected 200, got %d: %s", status, data)
	}
	restored, err := geojson.UnmarshalFeature(data)
	if err != nil {
		t.Fatal(err)
	}
	want := orb.LineString{{31, 48}, {31.5, 48.5}, {32, 48}, {33, 48.2}}
	if !orb.Equal(restored.Geometry, want) {
		t.Errorf("got geometry %v, want %v", restored.Geometry, want)
	}
	if restored.Properties[feature.PropMode] != "drawing" {
		t.Errorf("got mode %v", restored.Properties[feature.PropMode])
	}
}

func TestToggleCollection(t *testing.T) {
	app := newTestApp(t)
	body := `{"type":"FeatureCollection","features":[` + drawnFeature + `,{"type":"Feature","geometry":{"type":"Point","coordinates":[1,2]},"properties":{}}]}`

	status, data := post(t, app, "/v1/toggle", body)
	if status != 200 {
		t.Fatalf("expected 200, got %d: %s", status, data)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(fc.Features) != 2 {
		t.Fatalf("got %d features, want 2", len(fc.Features))
	}
	if fc.Features[0].Properties[feature.PropMode] != "smoothed" {
		t.Errorf("first toggle didn't smooth: %v", fc.Features[0].Properties)
	}

	status, data = post(t, app, "/v1/toggle", string(data))
	if status != 200 {
		t.Fatalf("expected 200, got %d: %s", status, data)
	}
	fc, err = geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		t.Fatal(err)
	}
	if fc.Features[0].Properties[feature.PropMode] != "drawing" {
		t.Errorf("second toggle didn't restore: %v", fc.Features[0].Properties)
	}
}

func TestUpdateLeavesDrawingRoutes(t *testing.T) {
	app := newTestApp(t)
	status, data := post(t, app, "/v1/update?sharpness=0.9", drawnFeature)
	if status != 200 {
		t.Fatalf("expected 200, got %d: %s", status, data)
	}
	f, err := geojson.UnmarshalFeature(data)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(f.Geometry.(orb.LineString)); n != 4 {
		t.Errorf("drawing route was smoothed: %d points", n)
	}
}

func TestErrors(t *testing.T) {
	app := newTestApp(t)
	tests := []struct {
		name, target, body string
		status             int
		code               string
	}{
		{"invalid json", "/v1/smooth", `{`, 400, "bad_request"},
		{"bad sharpness", "/v1/smooth?sharpness=sharp", drawnFeature, 400, "bad_request"},
		{"unknown strategy", "/v1/smooth?strategy=wobbly", drawnFeature, 400, "bad_request"},
		{"single point", "/v1/smooth", `{"type":"LineString","coordinates":[[1,2]]}`, 422, "invalid_geometry"},
		{"degenerate", "/v1/smooth", `{"type":"Feature","geometry":{"type":"LineString","coordinates":[[1,2],[1,2]]},"properties":{}}`, 422, "degenerate_curve"},
		{"too many points", "/v1/smooth", `{"type":"LineString","coordinates":[[0,0],[1e-7,0],[1,0]]}`, 422, "too_many_points"},
		{"point feature", "/v1/smooth", `{"type":"Feature","geometry":{"type":"Point","coordinates":[1,2]},"properties":{}}`, 422, "invalid_geometry"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, data := post(t, app, tt.target, tt.body)
			if status != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, status, data)
			}
			var apiErr server.APIError
			if err := json.Unmarshal(data, &apiErr); err != nil {
				t.Fatal(err)
			}
			if apiErr.Code != tt.code {
				t.Errorf("got code %q, want %q", apiErr.Code, tt.code)
			}
			if apiErr.RequestID == "" {
				t.Error("missing request ID")
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(t)
	post(t, app, "/v1/smooth", drawnFeature)

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "smoothline_pipeline_runs_total") {
		t.Error("pipeline metrics missing from /metrics")
	}
}
