package gpx

import (
	"encoding/xml"
	"time"
)

// RawXML preserves nested extension blocks without re-parsing them.
// We store the inner XML bytes verbatim so we can round-trip extensions
// emitted by other tools (Garmin, Strava, etc.).
type RawXML []byte

func (r RawXML) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if len(r) == 0 {
		return nil
	}

	type inner struct {
		Content string `xml:",innerxml"`
	}

	return e.EncodeElement(inner{Content: string(r)}, start)
}

func (r *RawXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	type inner struct {
		Content string `xml:",innerxml"`
	}

	var data inner
	if err := d.DecodeElement(&data, &start); err != nil {
		return err
	}

	if len(data.Content) == 0 {
		*r = nil
		return nil
	}

	*r = append((*r)[:0], data.Content...)
	return nil
}

// timeLayout is the fixed point-time format: millisecond precision with an
// explicit UTC designator.
const timeLayout = "2006-01-02T15:04:05.000Z"

// Timestamp wraps time.Time so point times marshal in the fixed
// millisecond format regardless of the precision they were parsed with.
type Timestamp struct {
	time.Time
}

func (t Timestamp) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if t.IsZero() {
		return nil
	}

	return e.EncodeElement(t.UTC().Format(timeLayout), start)
}

func (t *Timestamp) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var raw string
	if err := d.DecodeElement(&raw, &start); err != nil {
		return err
	}

	if raw == "" {
		t.Time = time.Time{}
		return nil
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return err
	}

	t.Time = parsed
	return nil
}

// Point represents a GPS track point with all metadata
type Point struct {
	Lat       float64   `xml:"lat,attr"`
	Lon       float64   `xml:"lon,attr"`
	Elevation *float64  `xml:"ele,omitempty"`
	Time      Timestamp `xml:"time,omitempty"`

	// Extensions (Garmin, Strava, etc.) - preserve as raw XML
	Extensions RawXML `xml:"extensions,omitempty"`
}

// Track represents a GPX track with segments
type Track struct {
	Name        string         `xml:"name,omitempty"`
	Type        string         `xml:"type,omitempty"`
	Description string         `xml:"desc,omitempty"`
	Segments    []TrackSegment `xml:"trkseg"`
	Extensions  RawXML         `xml:"extensions,omitempty"`
}

// TrackSegment represents a track segment
type TrackSegment struct {
	Points     []Point `xml:"trkpt"`
	Extensions RawXML  `xml:"extensions,omitempty"`
}

// GPX represents the full GPX file structure
type GPX struct {
	XMLName xml.Name `xml:"gpx"`
	Version string   `xml:"version,attr"`
	Creator string   `xml:"creator,attr"`

	// Namespaces - preserve all original namespaces
	XMLNS    string `xml:"xmlns,attr,omitempty"`
	XMLNSXSI string `xml:"xmlns:xsi,attr,omitempty"`
	XSI      string `xml:"xsi:schemaLocation,attr,omitempty"`

	// Garmin/Strava specific namespaces
	XMLNSNS3    string `xml:"xmlns:ns3,attr,omitempty"`
	XMLNSGPXTPX string `xml:"xmlns:gpxtpx,attr,omitempty"`
	XMLNSGPXX   string `xml:"xmlns:gpxx,attr,omitempty"`

	Metadata   Metadata `xml:"metadata,omitempty"`
	Tracks     []Track  `xml:"trk"`
	Extensions RawXML   `xml:"extensions,omitempty"`
}

// Metadata represents GPX metadata
type Metadata struct {
	Name        string    `xml:"name,omitempty"`
	Description string    `xml:"desc,omitempty"`
	Author      string    `xml:"author,omitempty"`
	Time        Timestamp `xml:"time,omitempty"`
	Extensions  RawXML    `xml:"extensions,omitempty"`
}
