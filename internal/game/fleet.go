package game

// Fleet is a group of ships in transit. Ids are assigned per owner,
// monotonically, by the order processor; a fleet with zero ships is
// removed from the Game, never kept.
type Fleet struct {
	ID       int     `json:"id"` // unique per owner, monotonic
	Owner    Faction `json:"owner"`
	Ships    int     `json:"ships"`
	From     string  `json:"from"`
	To       string  `json:"to"`
	Distance int     `json:"distance"` // parsecs remaining; 0 = arrival
}
