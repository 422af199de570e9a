package convention

import (
	"bytes"
	"slices"

	"github.com/google/uuid"
)

type userSet map[uuid.UUID]struct{}

func newUserSet(ids ...uuid.UUID) userSet {
	s := make(userSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s userSet) add(id uuid.UUID)      { s[id] = struct{}{} }
func (s userSet) remove(id uuid.UUID)   { delete(s, id) }
func (s userSet) has(id uuid.UUID) bool { _, ok := s[id]; return ok }

// sorted returns the members in byte order so callers see a stable listing.
func (s userSet) sorted() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sortIDs(out)
	return out
}

func sortIDs(ids []uuid.UUID) {
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
}
