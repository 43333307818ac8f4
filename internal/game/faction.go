package game

// Faction identifies who controls ships or stars. Neutral covers NPC
// garrisons and rebel uprisings; Empire and Federation are the two players.
type Faction int8

const (
	Neutral Faction = iota
	Empire
	Federation
)

// PlayerFactions lists the two player factions in canonical order.
// Engine phases that iterate players use this order for deterministic RNG draws.
var PlayerFactions = [2]Faction{Empire, Federation}

// String returns the wire/log name of the faction.
func (f Faction) String() string {
	switch f {
	case Empire:
		return "empire"
	case Federation:
		return "federation"
	default:
		return "npc"
	}
}

// IsPlayer reports whether the faction is one of the two players.
func (f Faction) IsPlayer() bool {
	return f == Empire || f == Federation
}

// Opponent returns the other player faction. Neutral has no opponent
// and returns Neutral.
func (f Faction) Opponent() Faction {
	switch f {
	case Empire:
		return Federation
	case Federation:
		return Empire
	default:
		return Neutral
	}
}

// Outcome is the terminal result of a game.
type Outcome int8

const (
	Undecided Outcome = iota
	EmpireWins
	FederationWins
	Draw
)

// String returns a log-friendly name for the outcome.
func (o Outcome) String() string {
	switch o {
	case EmpireWins:
		return "empire wins"
	case FederationWins:
		return "federation wins"
	case Draw:
		return "draw"
	default:
		return "undecided"
	}
}

// VictoryFor maps a winning faction to its outcome.
func VictoryFor(f Faction) Outcome {
	switch f {
	case Empire:
		return EmpireWins
	case Federation:
		return FederationWins
	default:
		return Undecided
	}
}
