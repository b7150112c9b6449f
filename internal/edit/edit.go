// Package edit coordinates inline text edits of a block's name, start,
// end and duration. Each block has four independent sessions; committing
// a session parses its draft and, when it parses, writes the result back
// through the plan. Drafts that do not parse are dropped without a word.
package edit

import (
	"errors"
	"fmt"

	"github.com/xvierd/dayblocks/internal/domain"
)

// ErrNoActiveEdit is returned when a draft is changed for a session that
// was never begun.
var ErrNoActiveEdit = errors.New("no active edit")

// Field names one of a block's editable values.
type Field int

const (
	FieldName Field = iota
	FieldStart
	FieldEnd
	FieldDuration
)

// Fields lists every editable field in display order.
var Fields = []Field{FieldStart, FieldEnd, FieldName, FieldDuration}

// String returns the field's name.
func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldStart:
		return "start"
	case FieldEnd:
		return "end"
	case FieldDuration:
		return "duration"
	default:
		return "unknown"
	}
}

// ParseField resolves a field name.
func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if f.String() == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown field %q", s)
}

// Target is the commit path edits write through.
type Target interface {
	Block(id string) (domain.Block, bool)
	ViewStart() float64
	Replace(id string, left, width float64) error
	Rename(id, name string) error
}

type session struct {
	draft string
}

// Coordinator tracks the edit sessions of every block.
type Coordinator struct {
	target   Target
	sessions map[string]map[Field]*session
}

// NewCoordinator creates a coordinator committing through target.
func NewCoordinator(target Target) *Coordinator {
	return &Coordinator{
		target:   target,
		sessions: make(map[string]map[Field]*session),
	}
}

// Begin opens a session seeded with the field's current display value and
// returns that seed. Beginning an open session reseeds it.
func (c *Coordinator) Begin(id string, f Field) (string, error) {
	b, ok := c.target.Block(id)
	if !ok {
		return "", domain.ErrBlockNotFound
	}
	seed := Seed(b, f, c.target.ViewStart())
	if c.sessions[id] == nil {
		c.sessions[id] = make(map[Field]*session)
	}
	c.sessions[id][f] = &session{draft: seed}
	return seed, nil
}

// SetDraft replaces the draft text of an open session.
func (c *Coordinator) SetDraft(id string, f Field, text string) error {
	s, ok := c.sessions[id][f]
	if !ok {
		return ErrNoActiveEdit
	}
	s.draft = text
	return nil
}

// Draft returns the draft text of an open session.
func (c *Coordinator) Draft(id string, f Field) (string, bool) {
	s, ok := c.sessions[id][f]
	if !ok {
		return "", false
	}
	return s.draft, true
}

// Commit closes a session and applies its draft. It reports whether the
// plan changed. A draft that fails to parse is discarded with a nil error.
func (c *Coordinator) Commit(id string, f Field) (bool, error) {
	s, ok := c.sessions[id][f]
	if !ok {
		return false, ErrNoActiveEdit
	}
	c.close(id, f)

	b, ok := c.target.Block(id)
	if !ok {
		return false, domain.ErrBlockNotFound
	}

	if f == FieldName {
		return true, c.target.Rename(id, s.draft)
	}

	g, err := Apply(b.Geometry, f, s.draft, c.target.ViewStart())
	if err != nil {
		return false, nil
	}
	return true, c.target.Replace(id, g.Left, g.Width)
}

// Cancel closes a session without applying it.
func (c *Coordinator) Cancel(id string, f Field) {
	c.close(id, f)
}

// Drop closes every session of a block, e.g. after it is deleted.
func (c *Coordinator) Drop(id string) {
	delete(c.sessions, id)
}

// Editing reports whether any session is open for the block.
func (c *Coordinator) Editing(id string) bool {
	return len(c.sessions[id]) > 0
}

// Open returns the block's open fields in display order.
func (c *Coordinator) Open(id string) []Field {
	var out []Field
	for _, f := range Fields {
		if _, ok := c.sessions[id][f]; ok {
			out = append(out, f)
		}
	}
	return out
}

func (c *Coordinator) close(id string, f Field) {
	delete(c.sessions[id], f)
	if len(c.sessions[id]) == 0 {
		delete(c.sessions, id)
	}
}

// Seed returns the display value a session for f starts from.
func Seed(b domain.Block, f Field, viewStart float64) string {
	switch f {
	case FieldName:
		return b.Name
	case FieldStart:
		return domain.FormatTime(b.StartTime(viewStart))
	case FieldEnd:
		return domain.FormatTime(b.EndTime(viewStart))
	case FieldDuration:
		return fmt.Sprintf("%.1f", b.Hours())
	default:
		return ""
	}
}
