package engine

import "github.com/shopspring/decimal"

// AllocatedCost returns the total cost attributable to one goat: its tagged
// expenses, its share of the shared pool, and its tagged health costs. The
// shared share is identical for every goat within one snapshot because the
// pool and the active-population denominator are frozen at construction.
//
// Sums over empty sets are zero; an unknown goat id simply carries the
// shared share and nothing else.
func (s *Snapshot) AllocatedCost(goatID string) decimal.Decimal {
	cost := s.sharedShare
	if specific, ok := s.specific[goatID]; ok {
		cost = cost.Add(specific)
	}
	if health, ok := s.health[goatID]; ok {
		cost = cost.Add(health)
	}
	return cost
}
