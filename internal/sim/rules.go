package sim

import "fmt"

// BulletPolicy decides when bullets leave the active list.
type BulletPolicy string

const (
	// BulletsRetain never removes a bullet. The list fills up to capacity and
	// further shots are dropped.
	BulletsRetain BulletPolicy = "retain"
	// BulletsOffscreen retires a bullet once its circle is fully outside the world.
	BulletsOffscreen BulletPolicy = "offscreen"
)

// PiercePolicy decides what a hit does to the bullet.
type PiercePolicy string

const (
	// PierceInert stores pierce on the bullet but never reads it.
	PierceInert PiercePolicy = "inert"
	// PierceConsume spends one pierce per kill and retires the bullet at zero.
	PierceConsume PiercePolicy = "consume"
)

// GameOverPolicy decides how the outer loop consumes a GameOver transition.
type GameOverPolicy string

const (
	// GameOverContinue reports the collision and keeps playing the same round.
	GameOverContinue GameOverPolicy = "continue"
	// GameOverReset swaps in the fresh state immediately.
	GameOverReset GameOverPolicy = "reset"
	// GameOverHalt freezes the round until the player restarts.
	GameOverHalt GameOverPolicy = "halt"
)

// Rules groups the behaviour switches for a round.
type Rules struct {
	Bullets  BulletPolicy   `yaml:"bullets" toml:"bullets"`
	Pierce   PiercePolicy   `yaml:"pierce" toml:"pierce"`
	GameOver GameOverPolicy `yaml:"game_over" toml:"game_over"`
}

// ClassicRules is the classic endless loop: bullets pile up until the
// cap, pierce does nothing and a collision never ends the round.
func ClassicRules() Rules {
	return Rules{
		Bullets:  BulletsRetain,
		Pierce:   PierceInert,
		GameOver: GameOverContinue,
	}
}

// ArcadeRules is the playable ruleset.
func ArcadeRules() Rules {
	return Rules{
		Bullets:  BulletsOffscreen,
		Pierce:   PierceConsume,
		GameOver: GameOverHalt,
	}
}

// Validate rejects unknown policy names.
func (r Rules) Validate() error {
	switch r.Bullets {
	case BulletsRetain, BulletsOffscreen:
	default:
		return fmt.Errorf("sim: unknown bullet policy %q", r.Bullets)
	}
	switch r.Pierce {
	case PierceInert, PierceConsume:
	default:
		return fmt.Errorf("sim: unknown pierce policy %q", r.Pierce)
	}
	switch r.GameOver {
	case GameOverContinue, GameOverReset, GameOverHalt:
	default:
		return fmt.Errorf("sim: unknown game over policy %q", r.GameOver)
	}
	return nil
}
