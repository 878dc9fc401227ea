package sim

import (
	"math"

	"github.com/vovakirdan/ringshot/internal/core"
)

// ShootBullets banks frame time while fire is held, emits every shot the bank
// covers (bounded by bullet capacity), then advances, collides and draws every
// active bullet in one pass.
func ShootBullets(s *State, in core.InputFrame, dt float64, cv Canvas) {
	fire := in.IsHeld(core.ActionFire) && s.ShootDelay > 0

	if fire && s.ShootTime < s.ShootDelay {
		s.ShootTime += dt
	}

	for fire && s.ShootTime >= s.ShootDelay {
		if s.BulletCount >= s.Params.MaxBullets {
			s.dropShotBacklog()
			break
		}

		s.Bullets = append(s.Bullets, Bullet{
			Position:  s.PlayerPos,
			Direction: in.Pointer.Sub(s.PlayerPos).Normalized(),
			Speed:     s.BulletSpeed,
			Size:      s.BulletSize,
			Pierce:    s.BulletPierce,
		})
		s.BulletCount++
		s.Stats.ShotsFired++
		s.ShootTime -= s.ShootDelay
	}

	s.resolveBullets(dt, cv)
}

// dropShotBacklog discards every whole shot still banked when the bullet list
// is full. The fractional remainder stays so cadence is unaffected.
func (s *State) dropShotBacklog() {
	n := math.Floor(s.ShootTime / s.ShootDelay)
	s.Stats.ShotsDropped += int(n)
	s.ShootTime -= n * s.ShootDelay
}

func (s *State) resolveBullets(dt float64, cv Canvas) {
	rules := s.Params.Rules
	live := s.Bullets[:0]

	for i := range s.Bullets {
		b := s.Bullets[i]
		b.Position = b.Position.Add(b.Direction.Scale(b.Speed * dt))

		retire := false
		if hit := s.firstEnemyHit(b.Circle()); hit >= 0 {
			s.removeEnemy(hit)
			s.Stats.Kills++
			if rules.Pierce == PierceConsume {
				b.Pierce--
				retire = b.Pierce <= 0
			}
		}

		cv.DrawCircle(int(b.Position.X), int(b.Position.Y), b.Size, BulletColor)

		// A bullet fired at the player's own position never moves, so it
		// would never leave the world either.
		if rules.Bullets == BulletsOffscreen && (b.Direction == (core.Vec2{}) || s.outsideWorld(b.Circle())) {
			retire = true
		}
		if retire {
			s.Stats.BulletsRetired++
			continue
		}
		live = append(live, b)
	}

	// Zero the tail so retired bullets don't linger in the backing array.
	for i := len(live); i < len(s.Bullets); i++ {
		s.Bullets[i] = Bullet{}
	}
	s.Bullets = live
	s.BulletCount = len(live)
}

// firstEnemyHit returns the index of the first enemy, in list order, whose
// circle overlaps c, or -1.
func (s *State) firstEnemyHit(c core.Circle) int {
	for i, e := range s.Enemies {
		if e.Circle().Overlaps(c) {
			return i
		}
	}
	return -1
}

func (s *State) outsideWorld(c core.Circle) bool {
	return c.Center.X+c.Radius < 0 ||
		c.Center.Y+c.Radius < 0 ||
		c.Center.X-c.Radius > s.Params.WorldW ||
		c.Center.Y-c.Radius > s.Params.WorldH
}
