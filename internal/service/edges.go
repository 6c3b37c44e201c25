// Package service implements the business logic for users, posts and timelines.
package service

import "ripple/internal/models"

// toggleSymmetricEdge flips a relationship edge that is stored redundantly on
// both endpoints. aSide is the set on entity A holding references to B (and
// receives bID); bSide is the mirror set on entity B (and receives aID).
//
// If the edge is present on *either* side it is removed from both; otherwise
// it is added to both. Checking both sides means a previously one-sided edge
// (left behind by a crash between the two writes) heals on the next toggle
// instead of flapping forever.
//
// Returns true when the edge was added, false when it was removed.
func toggleSymmetricEdge(aSide *models.IDList, bID uint, bSide *models.IDList, aID uint) bool {
	if aSide.Contains(bID) || bSide.Contains(aID) {
		*aSide = aSide.Remove(bID)
		*bSide = bSide.Remove(aID)
		return false
	}
	*aSide = aSide.Prepend(bID)
	*bSide = bSide.Prepend(aID)
	return true
}
