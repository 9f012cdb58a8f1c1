package aspen

// Key identifies a keyboard key. Only the keys the engine and typical hosts
// route are enumerated; the platform backend maps its native key codes onto
// these.
type Key uint8

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyEnter
	KeyEscape
)

// KeyEvent is a single key press or release delivered to a window.
type KeyEvent struct {
	Key     Key
	Pressed bool
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// MouseEvent is a button press or release at a cursor position. Position is
// expressed relative to the window center, matching world coordinates.
type MouseEvent struct {
	Button   MouseButton
	Pressed  bool
	Position Vec2
}
