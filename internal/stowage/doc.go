// Package stowage implements the slot-assignment engine for container vessel
// stowage planning. Cargo units are assigned to discrete (bay, row, tier) slots
// by a single-pass greedy heuristic: candidates are filtered through hard
// feasibility checks (size class, occupancy, tier and stack weight limits,
// reefer power, hazmat separation, metacentric stability) and the survivors are
// ranked by a configurable weighted score. Every accepted placement updates the
// ship's weight distribution, so feasibility of later placements depends on the
// commit order.
package stowage
