package gpx

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreservesExtensions(t *testing.T) {
	const gpxContent = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns:ns3="http://www.garmin.com/xmlschemas/TrackPointExtension/v1">
	<trk>
		<trkseg>
			<trkpt lat="46.0" lon="7.0">
				<extensions>
					<ns3:TrackPointExtension>
						<ns3:hr>145</ns3:hr>
					</ns3:TrackPointExtension>
				</extensions>
			</trkpt>
		</trkseg>
	</trk>
</gpx>`

	gpxData, err := ParseReader(strings.NewReader(gpxContent))
	require.NoError(t, err)

	point := gpxData.Tracks[0].Segments[0].Points[0]
	require.NotEmpty(t, point.Extensions, "expected extensions to be preserved")

	// Ensure we can roundtrip without dropping the extensions block
	var buf strings.Builder
	require.NoError(t, gpxData.WriteToWriter(&buf, false))

	assert.Contains(t, buf.String(), "TrackPointExtension")
}

func TestChannels(t *testing.T) {
	ext := RawXML(`<ns3:TrackPointExtension>
		<ns3:atemp>21.5</ns3:atemp>
		<ns3:hr>145</ns3:hr>
		<ns3:cad>87</ns3:cad>
	</ns3:TrackPointExtension>`)

	got := Channels(ext)

	want := []Channel{
		{Name: "ns3:atemp", Value: "21.5"},
		{Name: "ns3:hr", Value: "145"},
		{Name: "ns3:cad", Value: "87"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Channels mismatch (-want +got):\n%s", diff)
	}
}

func TestChannelsEmpty(t *testing.T) {
	assert.Nil(t, Channels(nil))
	assert.Nil(t, Channels(RawXML("")))
}

func TestChannelsOnlyFirstGroup(t *testing.T) {
	// Some tools append sibling extension groups; only the first wrapper
	// carries the channel values we care about.
	ext := RawXML(`<ns3:TrackPointExtension><ns3:hr>145</ns3:hr></ns3:TrackPointExtension><power>250</power>`)

	got := Channels(ext)

	want := []Channel{{Name: "ns3:hr", Value: "145"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Channels mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalChannels(t *testing.T) {
	channels := []Channel{
		{Name: "ns3:hr", Value: "142"},
		{Name: "ns3:atemp", Value: "21.5"},
	}

	got := string(MarshalChannels(channels))

	want := "<ns3:TrackPointExtension><ns3:hr>142</ns3:hr><ns3:atemp>21.5</ns3:atemp></ns3:TrackPointExtension>"
	assert.Equal(t, want, got)
}

func TestMarshalChannelsEmpty(t *testing.T) {
	assert.Nil(t, MarshalChannels(nil))
}

func TestChannelsRoundTrip(t *testing.T) {
	want := []Channel{
		{Name: "ns3:atemp", Value: "19.0"},
		{Name: "ns3:hr", Value: "151"},
		{Name: "ns3:cad", Value: "92"},
	}

	got := Channels(MarshalChannels(want))

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
