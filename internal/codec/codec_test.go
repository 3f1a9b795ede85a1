package codec

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func lines(t *testing.T, fc *geojson.FeatureCollection) []orb.LineString {
	t.Helper()
	var out []orb.LineString
	for _, f := range fc.Features {
		ls, ok := f.Geometry.(orb.LineString)
		if !ok {
			t.Fatalf("unexpected geometry %T", f.Geometry)
		}
		out = append(out, ls)
	}
	return out
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"geojson": GeoJSON, "JSON": GeoJSON, "gpx": GPX, "polyline": Polyline} {
		got, err := ParseFormat(in)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("%q: got %q, want %q", in, got, want)
		}
	}
	if _, err := ParseFormat("kml"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("got error %v, want %v", err, ErrUnknownFormat)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"route.geojson":  GeoJSON,
		"route.JSON":     GeoJSON,
		"ride.gpx":       GPX,
		"encoded.txt":    Polyline,
		"noext":          Polyline,
		"archive.tar.gz": Polyline,
	}
	for in, want := range tests {
		if got := FormatFromPath(in, Polyline); got != want {
			t.Errorf("%q: got %q, want %q", in, got, want)
		}
	}
}

func TestDecodeGeoJSONShapes(t *testing.T) {
	want := []orb.LineString{{{1, 2}, {3, 4}}}
	inputs := []string{
		`{"type":"FeatureCollection","features":[{"type":"Feature","geometry":{"type":"LineString","coordinates":[[1,2],[3,4]]},"properties":{}}]}`,
		`{"type":"Feature","geometry":{"type":"LineString","coordinates":[[1,2],[3,4]]},"properties":null}`,
		`{"type":"LineString","coordinates":[[1,2],[3,4]]}`,
	}
	for _, in := range inputs {
		fc, err := Read(strings.NewReader(in), GeoJSON)
		if err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		if d := cmp.Diff(want, lines(t, fc)); d != "" {
			t.Error(d)
		}
	}

	fc, err := DecodeGeoJSON([]byte(`{"type":"MultiLineString","coordinates":[[[1,2],[3,4]],[[5,6],[7,8]]]}`))
	if err != nil {
		t.Fatal(err)
	}
	if n := len(fc.Features); n != 2 {
		t.Errorf("got %d features, want 2", n)
	}

	for _, bad := range []string{`nope`, `{"type":"Point","coordinates":[1,2]}`} {
		if _, err := DecodeGeoJSON([]byte(bad)); err == nil {
			t.Errorf("%s: expected error", bad)
		}
	}
}

func TestPolylineRoundTrip(t *testing.T) {
	// The example from Google's polyline algorithm documentation.
	const encoded = "_p~iF~ps|U_ulLnnqC_mqNvxq`@"
	fc, err := Read(strings.NewReader(encoded+"\n\n"), Polyline)
	if err != nil {
		t.Fatal(err)
	}
	want := []orb.LineString{{{-120.2, 38.5}, {-120.95, 40.7}, {-126.453, 43.252}}}
	if d := cmp.Diff(want, lines(t, fc), cmpopts.EquateApprox(0, 1e-9)); d != "" {
		t.Error(d)
	}

	var buf bytes.Buffer
	if err := Write(&buf, fc, Polyline); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != encoded+"\n" {
		t.Errorf("got %q, want %q", got, encoded+"\n")
	}

	if _, err := Read(strings.NewReader("_p~iF~ps|U_"), Polyline); err == nil {
		t.Error("expected error for truncated polyline")
	}
}

type brokenWriter struct{}

var errBroken = errors.New("disk full")

func (brokenWriter) Write([]byte) (int, error) { return 0, errBroken }

func TestWritePolylinesReportsErrors(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	for i := range 1000 {
		fc.Append(geojson.NewFeature(orb.LineString{{float64(i), 1}, {2, float64(i)}}))
	}
	if err := Write(brokenWriter{}, fc, Polyline); !errors.Is(err, errBroken) {
		t.Errorf("got error %v, want %v", err, errBroken)
	}
}

const sampleGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk>
    <name>Morning ride</name>
    <trkseg>
      <trkpt lat="48.0" lon="31.0"></trkpt>
      <trkpt lat="48.5" lon="31.5"></trkpt>
      <trkpt lat="48.0" lon="32.0"></trkpt>
    </trkseg>
  </trk>
  <rte>
    <name>Planned</name>
    <rtept lat="50.0" lon="30.0"></rtept>
    <rtept lat="50.1" lon="30.2"></rtept>
  </rte>
</gpx>`

func TestGPXRoundTrip(t *testing.T) {
	fc, err := Read(strings.NewReader(sampleGPX), GPX)
	if err != nil {
		t.Fatal(err)
	}
	want := []orb.LineString{
		{{31, 48}, {31.5, 48.5}, {32, 48}},
		{{30, 50}, {30.2, 50.1}},
	}
	if d := cmp.Diff(want, lines(t, fc)); d != "" {
		t.Error(d)
	}
	if name := fc.Features[0].Properties["name"]; name != "Morning ride" {
		t.Errorf("got name %v", name)
	}

	var buf bytes.Buffer
	if err := Write(&buf, fc, GPX); err != nil {
		t.Fatal(err)
	}
	again, err := Read(&buf, GPX)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(want, lines(t, again)); d != "" {
		t.Error(d)
	}
}

func TestWriteGeoJSON(t *testing.T) {
	fc := geojson.NewFeatureCollection().Append(geojson.NewFeature(orb.LineString{{1, 2}, {3, 4}}))
	var buf bytes.Buffer
	if err := Write(&buf, fc, GeoJSON); err != nil {
		t.Fatal(err)
	}
	again, err := DecodeGeoJSON(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(lines(t, fc), lines(t, again)); d != "" {
		t.Error(d)
	}
	if err := Write(&buf, fc, Format("kml")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("got error %v, want %v", err, ErrUnknownFormat)
	}
}
