package aspen

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/tanema/gween/ease"
)

// stubEntity is a minimal fixed entity for camera and scene tests.
type stubEntity struct {
	BaseEntity
	name     EntityName
	position Vec2
	size     Size
	z        float64
}

func (s *stubEntity) Name() EntityName { return s.name }

func (s *stubEntity) Position() Vec2 { return s.position }

func (s *stubEntity) Z() float64 { return s.z }

func (s *stubEntity) BoundingBox() BoundingBox {
	return BoundingBox{Anchor: s.position, Size: s.size}
}

func testCamera(descriptor CameraDescriptor) *Camera {
	if descriptor.Name == "" {
		descriptor.Name = "test camera"
	}
	if descriptor.ViewSize == (Size{}) {
		descriptor.ViewSize = Size{Width: 100, Height: 100}
	}
	if descriptor.Speed == 0 {
		descriptor.Speed = 120
	}
	if descriptor.AccelerationSteps == 0 {
		descriptor.AccelerationSteps = 4
	}
	if descriptor.MaxOffsetPosition == 0 {
		descriptor.MaxOffsetPosition = 1000
	}
	return NewCamera(descriptor)
}

const tick = time.Second / 60

func decodeMatrix(t *testing.T, contents []byte) [6]float64 {
	t.Helper()
	if len(contents) != 24 {
		t.Fatalf("uniform contents are %d bytes, want 24", len(contents))
	}
	var m [6]float64
	for i := range m {
		m[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(contents[i*4 : i*4+4])))
	}
	return m
}

func TestCameraFollowsTarget(t *testing.T) {
	target := &stubEntity{name: "player", position: Vec2{X: 10, Y: 20}}
	cam := testCamera(CameraDescriptor{TargetEntity: "player"})
	if err := cam.Advance([]Entity{target}, tick); err != nil {
		t.Fatalf("Advance() error: %v", err)
	}
	if !vecApproxEqual(cam.Position(), target.position, epsilon) {
		t.Errorf("Position() = %v, want %v", cam.Position(), target.position)
	}
	target.position = Vec2{X: -5, Y: 3}
	if err := cam.Advance([]Entity{target}, tick); err != nil {
		t.Fatalf("Advance() error: %v", err)
	}
	if !vecApproxEqual(cam.Position(), target.position, epsilon) {
		t.Errorf("Position() after target move = %v, want %v", cam.Position(), target.position)
	}
}

func TestCameraMissingTarget(t *testing.T) {
	cam := testCamera(CameraDescriptor{TargetEntity: "player"})
	err := cam.Advance(nil, tick)
	if !errors.Is(err, ErrNoTargetEntity) {
		t.Errorf("Advance() error = %v, want ErrNoTargetEntity", err)
	}
}

func TestCameraMissingBound(t *testing.T) {
	target := &stubEntity{name: "player"}
	cam := testCamera(CameraDescriptor{TargetEntity: "player", BoundEntity: "room"})
	err := cam.Advance([]Entity{target}, tick)
	if !errors.Is(err, ErrNoBoundEntity) {
		t.Errorf("Advance() error = %v, want ErrNoBoundEntity", err)
	}
}

func TestCameraKeyDrivenOffset(t *testing.T) {
	target := &stubEntity{name: "player"}
	cam := testCamera(CameraDescriptor{TargetEntity: "player", Speed: 120, AccelerationSteps: 4, MaxOffsetPosition: 50})
	cam.HandleKeyInput(KeyEvent{Key: KeyD, Pressed: true})

	// Speed/AccelerationSteps = 30 world units of offset per tick.
	if err := cam.Advance([]Entity{target}, tick); err != nil {
		t.Fatalf("Advance() error: %v", err)
	}
	if !approxEqual(cam.Offset().X, 30, epsilon) {
		t.Errorf("offset after 1 tick = %v, want X=30", cam.Offset())
	}

	// Holding the key runs the offset into the radial cap.
	for i := 0; i < 10; i++ {
		if err := cam.Advance([]Entity{target}, tick); err != nil {
			t.Fatalf("Advance() error: %v", err)
		}
	}
	if !approxEqual(cam.Offset().X, 50, epsilon) || !approxEqual(cam.Offset().Y, 0, epsilon) {
		t.Errorf("offset at cap = %v, want X=50 Y=0", cam.Offset())
	}
	if cam.Offset().Magnitude() > 50+epsilon {
		t.Errorf("offset magnitude %f exceeds cap 50", cam.Offset().Magnitude())
	}
}

func TestCameraOffsetDecaysAfterRelease(t *testing.T) {
	target := &stubEntity{name: "player"}
	cam := testCamera(CameraDescriptor{TargetEntity: "player", Speed: 120, AccelerationSteps: 4})
	cam.HandleKeyInput(KeyEvent{Key: KeyD, Pressed: true})
	if err := cam.Advance([]Entity{target}, tick); err != nil {
		t.Fatalf("Advance() error: %v", err)
	}
	cam.HandleKeyInput(KeyEvent{Key: KeyD, Pressed: false})

	// Decay factor is 1 - 1/4 per tick.
	previous := cam.Offset().X
	for i := 0; i < 5; i++ {
		if err := cam.Advance([]Entity{target}, tick); err != nil {
			t.Fatalf("Advance() error: %v", err)
		}
		want := previous * 0.75
		if !approxEqual(cam.Offset().X, want, epsilon) {
			t.Fatalf("tick %d: offset X = %f, want %f", i, cam.Offset().X, want)
		}
		previous = cam.Offset().X
	}
}

func TestCameraResetOffset(t *testing.T) {
	target := &stubEntity{name: "player"}
	cam := testCamera(CameraDescriptor{TargetEntity: "player"})
	cam.HandleKeyInput(KeyEvent{Key: KeyW, Pressed: true})
	if err := cam.Advance([]Entity{target}, tick); err != nil {
		t.Fatalf("Advance() error: %v", err)
	}
	if cam.Offset() == (Vec2{}) {
		t.Fatal("expected a nonzero offset before reset")
	}
	cam.ResetOffset()
	if cam.Offset() != (Vec2{}) {
		t.Errorf("offset after reset = %v, want zero", cam.Offset())
	}
	// The controller was stopped too, so the offset stays put.
	if err := cam.Advance([]Entity{target}, tick); err != nil {
		t.Fatalf("Advance() error: %v", err)
	}
	if cam.Offset() != (Vec2{}) {
		t.Errorf("offset after reset and tick = %v, want zero", cam.Offset())
	}
}

func TestCameraClampedInsideBound(t *testing.T) {
	target := &stubEntity{name: "player", position: Vec2{X: 80, Y: 0}}
	room := &stubEntity{name: "room", size: Size{Width: 200, Height: 200}}
	cam := testCamera(CameraDescriptor{
		TargetEntity: "player",
		BoundEntity:  "room",
		ViewSize:     Size{Width: 100, Height: 100},
	})
	if err := cam.Advance([]Entity{target, room}, tick); err != nil {
		t.Fatalf("Advance() error: %v", err)
	}
	// The 100-wide view around x=80 would poke out of the 200-wide room, so
	// the camera stops at x=50 where the view edge meets the room edge.
	if !vecApproxEqual(cam.Position(), Vec2{X: 50, Y: 0}, epsilon) {
		t.Errorf("Position() = %v, want (50,0)", cam.Position())
	}
	if !room.BoundingBox().ContainsBox(cam.BoundingBox()) {
		t.Errorf("camera view %v escapes the room", cam.BoundingBox())
	}
}

func TestCameraPanTo(t *testing.T) {
	target := &stubEntity{name: "player"}
	cam := testCamera(CameraDescriptor{TargetEntity: "player"})
	cam.PanTo(Vec2{X: 100}, 1, ease.Linear)

	if err := cam.Advance([]Entity{target}, 500*time.Millisecond); err != nil {
		t.Fatalf("Advance() error: %v", err)
	}
	if !approxEqual(cam.Offset().X, 50, 1e-3) {
		t.Errorf("offset halfway through pan = %v, want X=50", cam.Offset())
	}

	if err := cam.Advance([]Entity{target}, 600*time.Millisecond); err != nil {
		t.Fatalf("Advance() error: %v", err)
	}
	if !approxEqual(cam.Offset().X, 100, 1e-3) {
		t.Errorf("offset after pan = %v, want X=100", cam.Offset())
	}

	// The pan is over; key movement takes back control and decay applies.
	for i := 0; i < 100; i++ {
		if err := cam.Advance([]Entity{target}, tick); err != nil {
			t.Fatalf("Advance() error: %v", err)
		}
	}
	if math.Abs(cam.Offset().X) > 1 {
		t.Errorf("offset did not decay after pan: %v", cam.Offset())
	}
}

func TestCameraBytes(t *testing.T) {
	target := &stubEntity{name: "player", position: Vec2{X: 100, Y: 50}}
	cam := testCamera(CameraDescriptor{TargetEntity: "player", ViewSize: Size{Width: 800, Height: 600}})
	if err := cam.Advance([]Entity{target}, tick); err != nil {
		t.Fatalf("Advance() error: %v", err)
	}
	m := decodeMatrix(t, cam.Bytes())
	want := [6]float64{2.0 / 800, 0, 0, 2.0 / 600, -2.0 * 100 / 800, -2.0 * 50 / 600}
	for i := range want {
		if !approxEqual(m[i], want[i], 1e-6) {
			t.Errorf("matrix[%d] = %f, want %f", i, m[i], want[i])
		}
	}
}

func TestStaticCameraMatrix(t *testing.T) {
	m := decodeMatrix(t, StaticCameraMatrix(Size{Width: 640, Height: 480}))
	want := [6]float64{2.0 / 640, 0, 0, 2.0 / 480, 0, 0}
	for i := range want {
		if !approxEqual(m[i], want[i], 1e-6) {
			t.Errorf("matrix[%d] = %f, want %f", i, m[i], want[i])
		}
	}
}
