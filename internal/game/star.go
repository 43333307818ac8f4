package game

// Star is one of the 16 fixed locations on the grid. Ships holds stationed
// counts per faction; entries are removed when they reach zero so an absent
// key always means no ships.
type Star struct {
	ID    string          `json:"id"` // single letter, carries no positional information
	Name  string          `json:"name"`
	X     int             `json:"x"`
	Y     int             `json:"y"`
	RU    int             `json:"ru"` // production value and rebellion garrison threshold
	Owner Faction         `json:"owner"`
	Home  Faction         `json:"home"` // whose home star this is, Neutral if nobody's
	Ships map[Faction]int `json:"ships"`
}

// ShipsOf returns the stationed ship count for a faction.
func (s *Star) ShipsOf(f Faction) int {
	return s.Ships[f]
}

// SetShips sets a faction's stationed count, dropping zeroed entries.
func (s *Star) SetShips(f Faction, n int) {
	if s.Ships == nil {
		s.Ships = make(map[Faction]int)
	}
	if n <= 0 {
		delete(s.Ships, f)
		return
	}
	s.Ships[f] = n
}

// AddShips adds to a faction's stationed count.
func (s *Star) AddShips(f Faction, n int) {
	s.SetShips(f, s.ShipsOf(f)+n)
}

// IsHome reports whether this is a player's home star. Home stars are
// immune to rebellion and always produce HomeRU.
func (s *Star) IsHome() bool {
	return s.Home.IsPlayer()
}

// Production is the ship count the star yields in a production step.
func (s *Star) Production() int {
	if s.IsHome() {
		return HomeRU
	}
	return s.RU
}

// Contested reports whether more than one faction has ships stationed here.
func (s *Star) Contested() bool {
	return len(s.Ships) > 1
}

// DistanceTo returns the Chebyshev distance to another star.
func (s *Star) DistanceTo(o *Star) int {
	return Chebyshev(s.X, s.Y, o.X, o.Y)
}
