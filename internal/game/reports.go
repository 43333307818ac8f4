package game

// TurnRecord is one entry of the append-only history: the orders both
// players submitted and everything the engine did with them. Together with
// the seed, the record sequence is sufficient to replay the game bit-exact.
type TurnRecord struct {
	Turn       int                  `json:"turn"`
	Orders     map[Faction][]Order  `json:"orders"`
	Losses     []HyperspaceLoss     `json:"losses,omitempty"`
	Arrivals   []Arrival            `json:"arrivals,omitempty"`
	Combats    []CombatReport       `json:"combats,omitempty"`
	Rebellions []RebellionReport    `json:"rebellions,omitempty"`
	Production []ProductionReport   `json:"production,omitempty"`
	Errors     map[Faction][]string `json:"errors,omitempty"`
	Digest     string               `json:"digest"` // state digest after the turn
}

// HyperspaceLoss records a whole fleet destroyed in transit.
type HyperspaceLoss struct {
	FleetID int     `json:"fleet_id"`
	Owner   Faction `json:"owner"`
	Ships   int     `json:"ships"`
	From    string  `json:"from"`
	To      string  `json:"to"`
}

// Arrival records a fleet reaching its destination and merging.
type Arrival struct {
	FleetID int     `json:"fleet_id"`
	Owner   Faction `json:"owner"`
	Star    string  `json:"star"`
	Ships   int     `json:"ships"`
}

// CombatReport records one resolved engagement. Attacker is the side that
// moved in; at a defended star the stationed owner defends, and a garrison
// of Neutral ships defends an uncontrolled star.
type CombatReport struct {
	Star           string  `json:"star"`
	Attacker       Faction `json:"attacker"`
	Defender       Faction `json:"defender"`
	AttackerShips  int     `json:"attacker_ships"` // before resolution
	DefenderShips  int     `json:"defender_ships"`
	AttackerLosses int     `json:"attacker_losses"`
	DefenderLosses int     `json:"defender_losses"`
	ControlBefore  Faction `json:"control_before"`
	ControlAfter   Faction `json:"control_after"`
}

// RebellionReport records a rebellion roll that came up heads.
type RebellionReport struct {
	Star           string  `json:"star"`
	Owner          Faction `json:"owner"` // owner at the time of the uprising
	RU             int     `json:"ru"`
	GarrisonBefore int     `json:"garrison_before"`
	RebelShips     int     `json:"rebel_ships"`
	OwnerHeld      bool    `json:"owner_held"`
	GarrisonAfter  int     `json:"garrison_after"` // survivors of whichever side won
}

// ProductionReport records ships produced at an owned star.
type ProductionReport struct {
	Star     string  `json:"star"`
	Owner    Faction `json:"owner"`
	Produced int     `json:"produced"`
}
