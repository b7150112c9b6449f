package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/dayblocks/internal/ports"
)

// A terminal has exactly one pointer.
const terminalPointer = 0

// wheelStep is how far one wheel notch pans the viewport, in hours.
const wheelStep = 0.5

// pointerEvent translates a terminal mouse message into a pointer event
// with X in track cells. Wheel messages are not pointer events.
func pointerEvent(msg tea.MouseMsg) (ports.PointerEvent, bool) {
	ev := ports.PointerEvent{
		PointerID: terminalPointer,
		Button:    ports.ButtonNone,
		X:         float64(msg.X - padX),
	}

	switch msg.Action {
	case tea.MouseActionPress:
		ev.Phase = ports.PhaseDown
		switch msg.Button {
		case tea.MouseButtonLeft:
			ev.Button = ports.ButtonPrimary
			ev.Buttons = ports.PrimaryMask
		case tea.MouseButtonMiddle:
			ev.Button = ports.ButtonMiddle
		case tea.MouseButtonRight:
			ev.Button = ports.ButtonSecondary
		default:
			return ports.PointerEvent{}, false
		}

	case tea.MouseActionMotion:
		ev.Phase = ports.PhaseMove
		// Cell motion reports a drag with the held button; plain motion
		// means nothing is held any more.
		if msg.Button == tea.MouseButtonLeft {
			ev.Buttons = ports.PrimaryMask
		}

	case tea.MouseActionRelease:
		ev.Phase = ports.PhaseUp
		// X10 encoding cannot say which button was released.
		if msg.Button == tea.MouseButtonLeft || msg.Button == tea.MouseButtonNone {
			ev.Button = ports.ButtonPrimary
		}

	default:
		return ports.PointerEvent{}, false
	}
	return ev, true
}

// wheelDelta returns the pan in hours for a wheel message.
func wheelDelta(msg tea.MouseMsg) (float64, bool) {
	if msg.Action != tea.MouseActionPress {
		return 0, false
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
		return -wheelStep, true
	case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
		return wheelStep, true
	}
	return 0, false
}
