package domain

// Plan is the ordered list of blocks. Order is render order.
//
// Every mutation swaps in a new slice; a slice returned by Blocks is never
// written to afterwards, so readers can hold it without copying.
type Plan struct {
	blocks []Block
}

// NewPlan creates a plan seeded with the given blocks.
func NewPlan(seed ...Block) *Plan {
	blocks := make([]Block, 0, len(seed))
	for _, b := range seed {
		if b.ID == "" {
			b.ID = generateID()
		}
		b.Geometry = ClampGeometry(b.Left, b.Width)
		blocks = append(blocks, b)
	}
	return &Plan{blocks: blocks}
}

// Blocks returns the current snapshot. Callers must not modify it.
func (p *Plan) Blocks() []Block {
	return p.blocks
}

// Len returns the number of blocks.
func (p *Plan) Len() int {
	return len(p.blocks)
}

// At returns the block at index i.
func (p *Plan) At(i int) (Block, bool) {
	if i < 0 || i >= len(p.blocks) {
		return Block{}, false
	}
	return p.blocks[i], true
}

// Get returns the block with the given ID.
func (p *Plan) Get(id string) (Block, bool) {
	i := p.IndexOf(id)
	if i < 0 {
		return Block{}, false
	}
	return p.blocks[i], true
}

// IndexOf returns the position of the block with the given ID, or -1.
func (p *Plan) IndexOf(id string) int {
	for i, b := range p.blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// Append adds a block at the end of the list.
func (p *Plan) Append(name string, left, width float64) Block {
	b := NewBlock(name, left, width)
	next := make([]Block, len(p.blocks), len(p.blocks)+1)
	copy(next, p.blocks)
	p.blocks = append(next, b)
	return b
}

// AppendDefault adds a block with the default geometry and name.
func (p *Plan) AppendDefault() Block {
	return p.Append(DefaultBlockName, DefaultBlockLeft, DefaultBlockWidth)
}

// Replace commits new geometry for a block. Out-of-range values are clamped.
func (p *Plan) Replace(id string, left, width float64) (Block, error) {
	return p.update(id, func(b *Block) {
		b.Geometry = ClampGeometry(left, width)
	})
}

// Rename changes a block's name.
func (p *Plan) Rename(id, name string) (Block, error) {
	return p.update(id, func(b *Block) {
		b.Name = name
	})
}

// Remove deletes a block. Later blocks shift down one position.
func (p *Plan) Remove(id string) error {
	i := p.IndexOf(id)
	if i < 0 {
		return ErrBlockNotFound
	}
	next := make([]Block, 0, len(p.blocks)-1)
	next = append(next, p.blocks[:i]...)
	next = append(next, p.blocks[i+1:]...)
	p.blocks = next
	return nil
}

// ReplaceAt is Replace addressed by position.
func (p *Plan) ReplaceAt(i int, left, width float64) (Block, error) {
	b, ok := p.At(i)
	if !ok {
		return Block{}, ErrBlockNotFound
	}
	return p.Replace(b.ID, left, width)
}

// RenameAt is Rename addressed by position.
func (p *Plan) RenameAt(i int, name string) (Block, error) {
	b, ok := p.At(i)
	if !ok {
		return Block{}, ErrBlockNotFound
	}
	return p.Rename(b.ID, name)
}

// RemoveAt is Remove addressed by position.
func (p *Plan) RemoveAt(i int) error {
	b, ok := p.At(i)
	if !ok {
		return ErrBlockNotFound
	}
	return p.Remove(b.ID)
}

func (p *Plan) update(id string, fn func(b *Block)) (Block, error) {
	i := p.IndexOf(id)
	if i < 0 {
		return Block{}, ErrBlockNotFound
	}
	next := make([]Block, len(p.blocks))
	copy(next, p.blocks)
	fn(&next[i])
	p.blocks = next
	return next[i], nil
}
