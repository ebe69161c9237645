// Package orbit moves a camera around a target with spring-damped yaw and
// pitch, for the interactive viewers.
package orbit

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/eclat/pkg/math3d"
	"github.com/taigrr/eclat/pkg/render"
)

const (
	// maxPitch keeps the eye off the poles, where the view direction would be
	// parallel to world up.
	maxPitch = math.Pi/2 - 0.05

	minRadius = 0.5
	maxRadius = 100.0
)

// Axis tracks position and velocity for one rotation axis with spring decay.
type Axis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // internal spring velocity (for animating Velocity toward 0)
}

func newAxis(fps int, position float64) Axis {
	return Axis{
		Position: position,
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update applies velocity to position and decays velocity toward 0.
func (a *Axis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// Orbit places an eye on a sphere around Target.
// Yaw 0, pitch 0 puts the eye on the +Z side of the target.
type Orbit struct {
	Yaw    Axis
	Pitch  Axis
	Radius float64
	Target math3d.Vec3

	fps        int
	home       math3d.Vec3
	homeYaw    float64
	homePitch  float64
	homeRadius float64
}

// New creates an orbit that starts with the eye at eye, stepping fps times a
// second.
func New(fps int, eye, target math3d.Vec3) *Orbit {
	d := eye.Sub(target)
	radius := d.Len()
	var yaw, pitch float64
	if radius > 0 {
		yaw = math.Atan2(d.X, d.Z)
		pitch = math.Asin(math.Max(-1, math.Min(1, d.Y/radius)))
	}
	radius = clamp(radius, minRadius, maxRadius)
	pitch = clamp(pitch, -maxPitch, maxPitch)

	o := &Orbit{
		Radius:     radius,
		Target:     target,
		fps:        fps,
		home:       target,
		homeYaw:    yaw,
		homePitch:  pitch,
		homeRadius: radius,
	}
	o.Reset()
	return o
}

// Reset returns the eye to where it started and stops all motion.
func (o *Orbit) Reset() {
	o.Yaw = newAxis(o.fps, o.homeYaw)
	o.Pitch = newAxis(o.fps, o.homePitch)
	o.Radius = o.homeRadius
	o.Target = o.home
}

// Impulse adds angular velocity in radians per frame.
func (o *Orbit) Impulse(yaw, pitch float64) {
	o.Yaw.Velocity += yaw
	o.Pitch.Velocity += pitch
}

// Zoom moves the eye toward (negative delta) or away from the target.
func (o *Orbit) Zoom(delta float64) {
	o.Radius = clamp(o.Radius+delta, minRadius, maxRadius)
}

// Update advances one frame.
func (o *Orbit) Update() {
	o.Yaw.Update()
	o.Pitch.Update()

	if p := clamp(o.Pitch.Position, -maxPitch, maxPitch); p != o.Pitch.Position {
		o.Pitch.Position = p
		o.Pitch.Velocity = 0
	}
	o.Yaw.Position = math.Remainder(o.Yaw.Position, 2*math.Pi)
}

// Moving reports whether either axis is still turning noticeably.
func (o *Orbit) Moving() bool {
	const still = 1e-4
	return math.Abs(o.Yaw.Velocity) > still || math.Abs(o.Pitch.Velocity) > still
}

// Eye returns the current eye position.
func (o *Orbit) Eye() math3d.Vec3 {
	yaw, pitch := o.Yaw.Position, o.Pitch.Position
	dir := math3d.V3(
		math.Cos(pitch)*math.Sin(yaw),
		math.Sin(pitch),
		math.Cos(pitch)*math.Cos(yaw),
	)
	return o.Target.Add(dir.Scale(o.Radius))
}

// Camera returns a camera at Eye looking at Target.
func (o *Orbit) Camera() (*render.Camera, error) {
	return render.LookAt(o.Eye(), o.Target)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
