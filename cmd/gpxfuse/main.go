package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mattflanzer/gpxfixer/internal/fuse"
	"github.com/mattflanzer/gpxfixer/internal/gpx"
)

// garminTPXNamespace is declared on output when the source file did not
// already carry an ns3 binding for the synthesized channels.
const garminTPXNamespace = "http://www.garmin.com/xmlschemas/TrackPointExtension/v1"

func main() {
	var (
		sourceFile = flag.String("g", "", "Source GPX file (trusted sensors, noisy GPS)")
		refFile    = flag.String("r", "", "Reference GPX file (trusted GPS, no sensors)")
		outputFile = flag.String("o", "", "Output GPX file (default: stdout)")
		configFile = flag.String("config", "", "YAML file with fusion parameter overrides")
		minRate    = flag.Float64("min-rate", 0, "Minimum motion rate in m/s (default 1.5)")
		pretty     = flag.Bool("pretty", false, "Indent the output document")
		showStats  = flag.Bool("stats", false, "Show detailed statistics")
		statsJSON  = flag.Bool("stats-json", false, "Output statistics as JSON")
		version    = flag.Bool("version", false, "Show version information")
	)

	flag.Usage = func() {
		fmt.Printf("gpxfuse - Fuse sensor data onto accurate GPS geometry\n\n")
		fmt.Printf("usage: gpxfuse -g activity.gpx -r corrected.gpx\n\n")
		fmt.Printf("examples:\n")
		fmt.Printf("  gpxfuse -g watch.gpx -r bike-computer.gpx -o fused.gpx\n")
		fmt.Printf("  gpxfuse -g watch.gpx -r bike-computer.gpx -pretty > fused.gpx\n\n")
		fmt.Printf("options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Println("gpxfuse v1.0.0 - GPX track fusion")
		os.Exit(0)
	}

	if *sourceFile == "" || *refFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	config, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *minRate > 0 {
		config.MinMotionRate = *minRate
	}

	sourceTrack, sourceDoc, err := loadTrack(*sourceFile, config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading source track: %v\n", err)
		os.Exit(1)
	}

	refTrack, refDoc, err := loadTrack(*refFile, config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading reference track: %v\n", err)
		os.Exit(1)
	}

	result, err := fuse.Fuse(sourceTrack, refTrack, config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fusing tracks: %v\n", err)
		os.Exit(1)
	}

	if *showStats || *statsJSON {
		if *statsJSON {
			jsonData, err := json.MarshalIndent(result.Stats, "", "  ")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error marshaling stats: %v\n", err)
				os.Exit(1)
			}
			fmt.Fprintln(os.Stderr, string(jsonData))
		} else {
			printStats(result.Stats)
		}
	}

	// Write the fused channels and reconstructed timestamps back into the
	// reference document's points, then graft its point sequence into the
	// source document, preserving everything else about the source file.
	refSeg, err := refDoc.Segment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error locating reference segment: %v\n", err)
		os.Exit(1)
	}

	for i, p := range result.Track.Points {
		refSeg.Points[i].Time = gpx.Timestamp{Time: p.Time}

		channels := make([]gpx.Channel, len(p.Synthesized))
		for j, c := range p.Synthesized {
			channels[j] = gpx.Channel{Name: c.Name, Value: c.Value}
		}
		refSeg.Points[i].Extensions = gpx.MarshalChannels(channels)
	}

	if err := sourceDoc.ReplaceSegment(*refSeg); err != nil {
		fmt.Fprintf(os.Stderr, "Error replacing point sequence: %v\n", err)
		os.Exit(1)
	}

	if len(result.Stats.Channels) > 0 && sourceDoc.XMLNSNS3 == "" {
		sourceDoc.XMLNSNS3 = garminTPXNamespace
	}

	if *outputFile == "" {
		if err := sourceDoc.WriteToWriter(os.Stdout, *pretty); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing GPX: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := sourceDoc.Write(*outputFile, *pretty); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing GPX file: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "✅ Fused track written: %s\n", *outputFile)
	fmt.Fprintf(os.Stderr, "   %d points, %d channel(s), %.0fs moving time\n",
		result.Stats.ReferencePoints, len(result.Stats.Channels), result.Stats.MovingDuration)
}

// loadTrack parses a GPX file and normalizes its single point sequence.
func loadTrack(filename string, config fuse.Config) (*fuse.Track, *gpx.GPX, error) {
	doc, err := gpx.Parse(filename)
	if err != nil {
		return nil, nil, err
	}

	seg, err := doc.Segment()
	if err != nil {
		return nil, nil, err
	}

	name := filepath.Base(filename)

	points, err := fuse.PointsFromGPX(name, seg.Points)
	if err != nil {
		return nil, nil, err
	}

	track, err := fuse.NewTrack(name, points, config)
	if err != nil {
		return nil, nil, err
	}

	return track, doc, nil
}

// loadConfig returns the default configuration, optionally overridden from
// a YAML file.
func loadConfig(path string) (fuse.Config, error) {
	config := fuse.DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

func printStats(stats fuse.Stats) {
	fmt.Fprintf(os.Stderr, "\n📊 Fusion Statistics:\n")
	fmt.Fprintf(os.Stderr, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Fprintf(os.Stderr, "📍 Points: %d source, %d reference\n", stats.SourcePoints, stats.ReferencePoints)
	fmt.Fprintf(os.Stderr, "📏 Distance: %.2f km source, %.2f km reference\n",
		stats.SourceDistance, stats.ReferenceDistance)
	fmt.Fprintf(os.Stderr, "⏱️  Time: %.0fs total, %.0fs stationary, %.0fs moving\n",
		stats.TotalDuration, stats.StationaryDuration, stats.MovingDuration)
	fmt.Fprintf(os.Stderr, "📈 Channels fitted: %v\n", stats.Channels)
	fmt.Fprintf(os.Stderr, "⚡ Processing Time: %v\n", stats.ProcessingTime)
	fmt.Fprintf(os.Stderr, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
}
