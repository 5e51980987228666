package gpx

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// Parse reads and parses a GPX file, preserving all extensions and namespaces
func Parse(filename string) (*GPX, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseReader(file)
}

// ParseReader parses GPX from an io.Reader
func ParseReader(r io.Reader) (*GPX, error) {
	decoder := xml.NewDecoder(r)

	var gpxData GPX
	if err := decoder.Decode(&gpxData); err != nil {
		return nil, fmt.Errorf("failed to parse GPX: %w", err)
	}

	// Set default namespaces if missing
	if gpxData.XMLNS == "" {
		gpxData.XMLNS = "http://www.topografix.com/GPX/1/1"
	}
	if gpxData.Version == "" {
		gpxData.Version = "1.1"
	}
	if gpxData.Creator == "" {
		gpxData.Creator = "gpxfuse"
	}

	return &gpxData, nil
}

// Write saves GPX data to a file, preserving all extensions and structure
func (g *GPX) Write(filename string, pretty bool) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return g.WriteToWriter(file, pretty)
}

// WriteToWriter writes GPX data to an io.Writer. When pretty is set the
// document is indented, otherwise it is emitted compact.
func (g *GPX) WriteToWriter(w io.Writer, pretty bool) error {
	// Write XML header
	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return err
	}

	encoder := xml.NewEncoder(w)
	if pretty {
		encoder.Indent("", "  ")
	}

	if err := encoder.Encode(g); err != nil {
		return fmt.Errorf("failed to encode GPX: %w", err)
	}

	return nil
}

// Segment returns the document's single ordered point sequence. Fusion
// operates on one track with one segment; anything else is rejected rather
// than silently truncated.
func (g *GPX) Segment() (*TrackSegment, error) {
	if len(g.Tracks) == 0 {
		return nil, fmt.Errorf("no track element found")
	}
	if len(g.Tracks) > 1 {
		return nil, fmt.Errorf("multi-track files are not supported (%d tracks)", len(g.Tracks))
	}

	track := &g.Tracks[0]
	if len(track.Segments) == 0 {
		return nil, fmt.Errorf("track has no segments")
	}
	if len(track.Segments) > 1 {
		return nil, fmt.Errorf("multi-segment tracks are not supported (%d segments)", len(track.Segments))
	}

	return &track.Segments[0], nil
}

// ReplaceSegment swaps the document's point sequence wholesale, keeping all
// other document structure (metadata, namespaces, track name) unchanged.
func (g *GPX) ReplaceSegment(seg TrackSegment) error {
	if len(g.Tracks) == 0 {
		return fmt.Errorf("no track element found")
	}

	g.Tracks[0].Segments = []TrackSegment{seg}
	return nil
}
