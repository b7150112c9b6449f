package projector

// BlockDocument is the serialized form of one block, as printed by
// `dayblocks show --json` and returned by the MCP tools.
type BlockDocument struct {
	Position int     `json:"position"`
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Start    string  `json:"start"`
	End      string  `json:"end"`
	Hours    float64 `json:"hours"`
	Left     float64 `json:"left"`
	Width    float64 `json:"width"`
}

// Document is the serialized form of the whole plan.
type Document struct {
	ViewStart   float64         `json:"view_start"`
	WindowStart string          `json:"window_start"`
	WindowEnd   string          `json:"window_end"`
	TotalHours  float64         `json:"total_hours"`
	Blocks      []BlockDocument `json:"blocks"`
}

// Document returns the view in serializable form.
func (v View) Document() Document {
	d := Document{
		ViewStart:   v.ViewStart,
		WindowStart: v.WindowStart,
		WindowEnd:   v.WindowEnd,
		TotalHours:  v.TotalHours,
		Blocks:      make([]BlockDocument, 0, len(v.Blocks)),
	}
	for _, b := range v.Blocks {
		d.Blocks = append(d.Blocks, b.Document())
	}
	return d
}

// Document returns the block in serializable form.
func (b BlockView) Document() BlockDocument {
	return BlockDocument{
		Position: b.Index + 1,
		ID:       b.ID,
		Name:     b.Name,
		Start:    b.StartDisplay,
		End:      b.EndDisplay,
		Hours:    b.DurationHours,
		Left:     b.Left,
		Width:    b.Width,
	}
}
