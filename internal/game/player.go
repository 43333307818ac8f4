package game

// Player holds one side's identity and fog-of-war knowledge. Knowledge maps
// are exclusively owned by the player and never shared across the table.
//
// KnownRU is write-once: a star's resource value is revealed by a fleet
// arrival or by fighting there, and once seen is never forgotten. KnownOwner
// records the controller as of the player's last direct observation — it can
// go stale and is only refreshed by observing the star again.
type Player struct {
	Faction     Faction            `json:"faction"`
	HomeStar    string             `json:"home_star"`
	KnownRU     map[string]int     `json:"known_ru"`    // absent key = never observed
	KnownOwner  map[string]Faction `json:"known_owner"` // absent key = never observed
	NextFleetID int                `json:"next_fleet_id"`
	OrderErrors []string           `json:"order_errors"` // this turn's rejections, cleared each turn
}

// NewPlayer creates player state with empty knowledge.
func NewPlayer(f Faction, homeStar string) *Player {
	return &Player{
		Faction:    f,
		HomeStar:   homeStar,
		KnownRU:    make(map[string]int),
		KnownOwner: make(map[string]Faction),
	}
}

// ObserveRU records a star's resource value. First observation wins;
// RU never changes, so repeats are harmless.
func (p *Player) ObserveRU(starID string, ru int) {
	if _, ok := p.KnownRU[starID]; !ok {
		p.KnownRU[starID] = ru
	}
}

// ObserveOwner records who controlled a star at the moment of observation.
func (p *Player) ObserveOwner(starID string, owner Faction) {
	p.KnownOwner[starID] = owner
}

// Observe records everything a presence at the star reveals.
func (p *Player) Observe(s *Star) {
	p.ObserveRU(s.ID, s.RU)
	p.ObserveOwner(s.ID, s.Owner)
}

// LogOrderError appends a rejection message for the player's next-turn review.
func (p *Player) LogOrderError(msg string) {
	p.OrderErrors = append(p.OrderErrors, msg)
}
