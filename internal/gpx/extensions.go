package gpx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// trackPointExtension is the conventional vendor wrapper element that holds
// per-point sensor channels (heart rate, cadence, temperature).
const trackPointExtension = "ns3:TrackPointExtension"

// Channel is one named sensor value as it appears inside a point's
// extensions block. Value is kept as raw text; interpretation belongs to
// the caller.
type Channel struct {
	Name  string
	Value string
}

// Channels extracts the sensor channels from a point's extensions block.
// It reads the children of the first wrapper element (conventionally
// ns3:TrackPointExtension) and tolerates points without any channel group
// by returning an empty slice.
func Channels(ext RawXML) []Channel {
	if len(ext) == 0 {
		return nil
	}

	decoder := xml.NewDecoder(bytes.NewReader(ext))

	var channels []Channel
	var name string
	var text strings.Builder
	depth := 0

	for {
		tok, err := decoder.Token()
		if err != nil {
			// Truncated or malformed trailing content: keep whatever
			// parsed cleanly.
			return channels
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 2 {
				name = qualifiedName(t.Name)
				text.Reset()
			}
		case xml.CharData:
			if depth == 2 {
				text.Write(t)
			}
		case xml.EndElement:
			if depth == 2 {
				channels = append(channels, Channel{
					Name:  name,
					Value: strings.TrimSpace(text.String()),
				})
			}
			depth--
			if depth == 0 {
				// Only the first wrapper group carries channels.
				return channels
			}
		}
	}
}

// MarshalChannels renders channels as a fresh TrackPointExtension group,
// ready to replace a point's extensions block.
func MarshalChannels(channels []Channel) RawXML {
	if len(channels) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("<" + trackPointExtension + ">")
	for _, c := range channels {
		fmt.Fprintf(&b, "<%s>%s</%s>", c.Name, c.Value, c.Name)
	}
	b.WriteString("</" + trackPointExtension + ">")

	return RawXML(b.String())
}

// qualifiedName restores the prefixed form of an element name. Extension
// fragments are parsed standalone, so undeclared prefixes survive in
// Name.Space verbatim.
func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}
