package models

import "encoding/json"

// IDList is an ordered sequence of entity IDs persisted as a single JSON
// column. Relationship edges (follows, likes, authorship) are stored
// denormalized on both endpoints with no referential-integrity engine behind
// them, so every mutation must touch both sides.
type IDList []uint

// Contains reports whether id is present in the list.
func (l IDList) Contains(id uint) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Prepend returns a new list with id at the front (newest-first ordering).
func (l IDList) Prepend(id uint) IDList {
	out := make(IDList, 0, len(l)+1)
	out = append(out, id)
	return append(out, l...)
}

// Remove returns a new list with every occurrence of id removed.
func (l IDList) Remove(id uint) IDList {
	out := make(IDList, 0, len(l))
	for _, v := range l {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// MarshalJSON renders a nil list as [] so API responses and stored columns
// never contain null for a relationship set.
func (l IDList) MarshalJSON() ([]byte, error) {
	if l == nil {
		l = IDList{}
	}
	return json.Marshal([]uint(l))
}
