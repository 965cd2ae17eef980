package handle

import "fmt"

// arena stores values behind generational identifiers. The low 32 bits of
// an identifier hold the slot index plus one, the high 32 bits the slot
// generation, so zero is never a valid identifier and a reused slot
// rejects identifiers from its previous occupant.
//
// arena is not safe for concurrent use; Store serializes access.
type arena[T any] struct {
	kind  string
	slots []slot[T]
	free  []uint32
	live  int
}

type slot[T any] struct {
	gen  uint32
	used bool
	val  T
}

func newArena[T any](kind string) arena[T] {
	return arena[T]{kind: kind}
}

func (a *arena[T]) insert(v T) uint64 {
	var i uint32
	if n := len(a.free); n > 0 {
		i = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, slot[T]{})
		i = uint32(len(a.slots) - 1)
	}
	s := &a.slots[i]
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	s.used = true
	s.val = v
	a.live++
	return uint64(s.gen)<<32 | uint64(i+1)
}

// get returns the value of a live identifier and panics otherwise.
func (a *arena[T]) get(id uint64) *T {
	return &a.slot(id).val
}

// remove releases a live identifier and returns its value.
func (a *arena[T]) remove(id uint64) T {
	s := a.slot(id)
	v := s.val
	var zero T
	s.val = zero
	s.used = false
	a.free = append(a.free, uint32(id)-1)
	a.live--
	return v
}

func (a *arena[T]) slot(id uint64) *slot[T] {
	i, gen := uint32(id), uint32(id>>32)
	if i == 0 || int(i) > len(a.slots) {
		panic(fmt.Sprintf("handle: invalid %s handle %#x", a.kind, id))
	}
	s := &a.slots[i-1]
	if !s.used || s.gen != gen {
		panic(fmt.Sprintf("handle: %s handle %#x was freed or consumed", a.kind, id))
	}
	return s
}
