package actor

// ID identifies a live actor instance. The lower 32 bits are a slot index,
// the upper 32 bits a generation. Releasing a slot bumps its generation, so
// any ID held across a despawn stops matching — stale references in the
// scheduler registry are detectable without back-pointers into the world.
type ID uint64

func MakeID(index, generation uint32) ID {
	return ID(uint64(generation)<<32 | uint64(index))
}

func (id ID) Index() uint32      { return uint32(id) }
func (id ID) Generation() uint32 { return uint32(id >> 32) }
func (id ID) IsZero() bool       { return id == 0 }

// Pool hands out actor IDs with generational slots and a free list.
// Single-goroutine use from the game loop.
type Pool struct {
	generations []uint32
	free        []uint32
	next        uint32
}

func NewPool() *Pool {
	return &Pool{
		generations: make([]uint32, 0, 256),
		free:        make([]uint32, 0, 64),
	}
}

// Acquire returns an ID whose slot is marked live.
func (p *Pool) Acquire() ID {
	if n := len(p.free); n > 0 {
		idx := p.free[n-1]
		p.free = p.free[:n-1]
		return MakeID(idx, p.generations[idx])
	}
	idx := p.next
	p.next++
	if int(idx) >= len(p.generations) {
		p.generations = append(p.generations, 0)
	}
	return MakeID(idx, p.generations[idx])
}

// Live reports whether id still names the current occupant of its slot.
func (p *Pool) Live(id ID) bool {
	idx := id.Index()
	if idx >= p.next {
		return false
	}
	return p.generations[idx] == id.Generation()
}

// Release invalidates id and recycles its slot. Releasing a stale or
// unknown ID is a no-op.
func (p *Pool) Release(id ID) {
	idx := id.Index()
	if idx >= p.next || p.generations[idx] != id.Generation() {
		return
	}
	p.generations[idx]++
	p.free = append(p.free, idx)
}
