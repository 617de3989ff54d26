package engine

import (
	"math"

	"github.com/solwheel/astroglobe/globe"
	"github.com/solwheel/astroglobe/vectors"
)

// SyncCamera tilts the camera to the sun's seasonal declination: the
// up-vector becomes (sin(-tilt), cos(-tilt), 0), then the look-at-origin
// framing is re-applied, since setting up alone does not reorient a camera that
// already looks at a fixed target. Idempotent for a fixed declination.
func SyncCamera(cam *globe.Camera, declinationDeg float64) {
	if cam == nil {
		return
	}
	tilt := declinationDeg * math.Pi / 180.0
	cam.SetUp(vectors.Vec3{X: math.Sin(-tilt), Y: math.Cos(-tilt), Z: 0})
	cam.LookAtOrigin()
}
