// Command genschedule writes a synthetic season schedule for local
// development, in the same shape real exports arrive in.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sidelinehq/matchday/internal/fixture"
)

func main() {
	defaults := fixture.Default()

	var (
		output    = flag.String("output", "assets/data/schedule.json", "Output file for the generated schedule")
		divisions = flag.String("divisions", strings.Join(defaults.Divisions, ","), "Comma-separated division names")
		teams     = flag.Int("teams", defaults.TeamsPerDivision, "Teams per division (must be even)")
		weeks     = flag.Int("weeks", defaults.Weeks, "Number of season weeks")
		start     = flag.String("start", defaults.Start.Format("2006-01-02"), "First game day (YYYY-MM-DD)")
		seed      = flag.Int64("seed", defaults.Seed, "Random seed; same seed reproduces the same season")
	)
	flag.Parse()

	startDate, err := time.ParseInLocation("2006-01-02", *start, time.Local)
	if err != nil {
		os.Stderr.WriteString("invalid -start date: " + err.Error() + "\n")
		os.Exit(2)
	}

	cfg := defaults
	cfg.Divisions = splitList(*divisions)
	cfg.TeamsPerDivision = *teams
	cfg.Weeks = *weeks
	cfg.Start = startDate
	cfg.Seed = *seed

	records, err := fixture.Generate(cfg)
	if err != nil {
		os.Stderr.WriteString("generation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := fixture.WriteFile(*output, records); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	fmt.Printf("wrote %d games to %s\n", len(records), *output)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
