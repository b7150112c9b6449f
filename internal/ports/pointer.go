// Package ports defines the interfaces (driven and driving ports) between
// the planner core and the adapters that feed it input or present it.
package ports

// PointerPhase is the lifecycle stage of a pointer event.
type PointerPhase int

const (
	// PhaseDown is a button press.
	PhaseDown PointerPhase = iota

	// PhaseMove is pointer motion, with or without a button held.
	PhaseMove

	// PhaseUp is a button release.
	PhaseUp

	// PhaseCancel is a gesture takeover by the host; treated like PhaseUp.
	PhaseCancel
)

// PointerButton identifies which button changed state.
type PointerButton int

const (
	ButtonNone      PointerButton = -1
	ButtonPrimary   PointerButton = 0
	ButtonMiddle    PointerButton = 1
	ButtonSecondary PointerButton = 2
)

// PrimaryMask is the bit set in PointerEvent.Buttons while the primary
// button is held.
const PrimaryMask = 1

// PointerEvent is one sample from a pointer device.
type PointerEvent struct {
	PointerID int
	Phase     PointerPhase
	Button    PointerButton
	Buttons   int
	X         float64
}

// IsPrimaryDown reports whether this is a press of the primary button.
func (e PointerEvent) IsPrimaryDown() bool {
	return e.Phase == PhaseDown && e.Button == ButtonPrimary
}

// PrimaryHeld reports whether the primary button is held during the event.
func (e PointerEvent) PrimaryHeld() bool {
	return e.Buttons&PrimaryMask != 0
}

// Ends reports whether the event terminates a gesture.
func (e PointerEvent) Ends() bool {
	return e.Phase == PhaseUp || e.Phase == PhaseCancel
}

// PointerSource delivers pointer events to subscribers regardless of where
// the pointer is. This is a driving port (fed by the UI adapter).
type PointerSource interface {
	// Subscribe registers a listener and returns the function that removes it.
	Subscribe(listener func(PointerEvent)) (unsubscribe func())
}
