// Package codec reads routes from and writes routes to files.
//
// Routes travel through the program as GeoJSON feature collections of
// LineStrings, regardless of the file format they came from.
package codec

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/tkrajina/gpxgo/gpx"
	"github.com/twpayne/go-polyline"
)

// Format is a file format.
type Format string

const (
	GeoJSON  Format = "geojson"
	GPX      Format = "gpx"
	Polyline Format = "polyline"
)

// ErrUnknownFormat is returned for unsupported formats.
var ErrUnknownFormat = errors.New("unknown format")

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case GeoJSON, GPX, Polyline:
		return f, nil
	case "json":
		return GeoJSON, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownFormat)
	}
}

// FormatFromPath guesses the format from a file name's extension. It returns
// def for unknown extensions.
func FormatFromPath(name string, def Format) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".geojson", ".json":
		return GeoJSON
	case ".gpx":
		return GPX
	case ".polyline", ".txt":
		return Polyline
	default:
		return def
	}
}

// Read decodes all routes in r.
func Read(r io.Reader, format Format) (*geojson.FeatureCollection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	switch format {
	case GeoJSON:
		return DecodeGeoJSON(data)
	case GPX:
		return decodeGPX(data)
	case Polyline:
		return decodePolylines(data)
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
}

// Write encodes the LineString features of fc to w.
func Write(w io.Writer, fc *geojson.FeatureCollection, format Format) error {
	switch format {
	case GeoJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(fc)
	case GPX:
		return encodeGPX(w, fc)
	case Polyline:
		return encodePolylines(w, fc)
	default:
		return fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
}

// DecodeGeoJSON accepts a FeatureCollection, a single Feature or a bare
// LineString or MultiLineString geometry. A MultiLineString is split into one
// feature per line.
func DecodeGeoJSON(data []byte) (*geojson.FeatureCollection, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}

	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("decode geojson: %w", err)
		}
		return fc, nil
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("decode geojson: %w", err)
		}
		return geojson.NewFeatureCollection().Append(f), nil
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("decode geojson: %w", err)
		}
		fc := geojson.NewFeatureCollection()
		switch geom := g.Geometry().(type) {
		case orb.LineString:
			fc.Append(geojson.NewFeature(geom))
		case orb.MultiLineString:
			for _, ls := range geom {
				fc.Append(geojson.NewFeature(ls))
			}
		default:
			return nil, fmt.Errorf("decode geojson: unsupported geometry %s", g.Type)
		}
		return fc, nil
	}
}

func decodeGPX(data []byte) (*geojson.FeatureCollection, error) {
	g, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("decode gpx: %w", err)
	}

	fc := geojson.NewFeatureCollection()
	add := func(name string, pts []gpx.GPXPoint) {
		ls := make(orb.LineString, len(pts))
		for i, p := range pts {
			ls[i] = orb.Point{p.Longitude, p.Latitude}
		}
		f := geojson.NewFeature(ls)
		if name != "" {
			f.Properties["name"] = name
		}
		fc.Append(f)
	}
	for _, trk := range g.Tracks {
		for _, seg := range trk.Segments {
			add(trk.Name, seg.Points)
		}
	}
	for _, rte := range g.Routes {
		add(rte.Name, rte.Points)
	}
	return fc, nil
}

func encodeGPX(w io.Writer, fc *geojson.FeatureCollection) error {
	g := &gpx.GPX{Creator: "smoothline"}
	for _, f := range fc.Features {
		ls, ok := f.Geometry.(orb.LineString)
		if !ok {
			continue
		}
		pts := make([]gpx.GPXPoint, len(ls))
		for i, p := range ls {
			pts[i] = gpx.GPXPoint{Point: gpx.Point{Latitude: p.Lat(), Longitude: p.Lon()}}
		}
		g.Tracks = append(g.Tracks, gpx.GPXTrack{
			Name:     f.Properties.MustString("name", ""),
			Segments: []gpx.GPXTrackSegment{{Points: pts}},
		})
	}
	data, err := g.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return fmt.Errorf("encode gpx: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// decodePolylines reads one encoded polyline per line. Blank lines are
// skipped.
func decodePolylines(data []byte) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(nil, len(data)+1)
	n := 0
	for sc.Scan() {
		n++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		coords, rest, err := polyline.DecodeCoords(line)
		if err != nil {
			return nil, fmt.Errorf("decode polyline on line %d: %w", n, err)
		}
		if len(rest) != 0 {
			return nil, fmt.Errorf("decode polyline on line %d: %d trailing bytes", n, len(rest))
		}
		ls := make(orb.LineString, len(coords))
		for i, c := range coords {
			// Encoded polylines are latitude first.
			ls[i] = orb.Point{c[1], c[0]}
		}
		fc.Append(geojson.NewFeature(ls))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return fc, nil
}

func encodePolylines(w io.Writer, fc *geojson.FeatureCollection) error {
	bw := bufio.NewWriter(w)
	for _, f := range fc.Features {
		ls, ok := f.Geometry.(orb.LineString)
		if !ok {
			continue
		}
		coords := make([][]float64, len(ls))
		for i, p := range ls {
			coords[i] = []float64{p.Lat(), p.Lon()}
		}
		if _, err := bw.Write(polyline.EncodeCoords(coords)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
