// Command probe prints the sun's position for a given instant: subsolar
// longitude, declination and the ECEF direction vector.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/solwheel/astroglobe/solar"
)

func main() {
	timeStr := flag.String("time", "", "Time in RFC3339 format; defaults to now")
	every := flag.Duration("every", 0, "Print a row per interval until -until")
	untilStr := flag.String("until", "", "End time for -every (RFC3339)")
	flag.Parse()

	t := time.Now().UTC()
	if *timeStr != "" {
		var err error
		t, err = time.Parse(time.RFC3339, *timeStr)
		if err != nil {
			log.Fatalf("invalid time: %v", err)
		}
	}

	until := t
	if *untilStr != "" {
		var err error
		until, err = time.Parse(time.RFC3339, *untilStr)
		if err != nil {
			log.Fatalf("invalid until: %v", err)
		}
	}
	if *every <= 0 {
		*every = time.Hour
		until = t
	}

	fmt.Fprintln(os.Stdout, "time                      subsolar_lng  declination  ecef")
	for ; !t.After(until); t = t.Add(*every) {
		p := solar.PositionAt(t)
		dir := solar.DirectionECEF(t)
		fmt.Fprintf(os.Stdout, "%s  %12.4f  %11.4f  (%+.4f, %+.4f, %+.4f)\n",
			t.UTC().Format(time.RFC3339), p.LongitudeDeg, p.DeclinationDeg, dir.X, dir.Y, dir.Z)
	}
}
