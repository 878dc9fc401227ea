package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/ringshot/internal/core"
)

const eps = 1e-9

// fixedRand replays a list of values, cycling when exhausted.
type fixedRand struct {
	vals []int
	i    int
}

func (r *fixedRand) IntRange(lo, hi int) int {
	if len(r.vals) == 0 {
		return lo
	}
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

func newTestState() *State {
	return NewState(DefaultParams(800, 480, 100, 100))
}

func firing(pointer core.Vec2) core.InputFrame {
	in := core.NewInputFrame()
	in.SetHeld(core.ActionFire, true)
	in.Pointer = pointer
	return in
}

func checkCounts(t *testing.T, s *State) {
	t.Helper()
	if s.BulletCount != len(s.Bullets) || s.BulletCount > s.Params.MaxBullets {
		t.Fatalf("bullet invariant broken: count=%d len=%d max=%d", s.BulletCount, len(s.Bullets), s.Params.MaxBullets)
	}
	if s.EnemyCount != len(s.Enemies) || s.EnemyCount > s.Params.MaxEnemies {
		t.Fatalf("enemy invariant broken: count=%d len=%d max=%d", s.EnemyCount, len(s.Enemies), s.Params.MaxEnemies)
	}
}

func TestNewState(t *testing.T) {
	s := newTestState()

	if s.PlayerPos != core.V(400, 240) {
		t.Errorf("player should start centred, got %v", s.PlayerPos)
	}
	if cap(s.Bullets) != 100 || cap(s.Enemies) != 100 {
		t.Errorf("collections should be pre-sized, got caps %d/%d", cap(s.Bullets), cap(s.Enemies))
	}
	if s.Params.SpawnRadius != 400 {
		t.Errorf("spawn radius should be half the world width, got %f", s.Params.SpawnRadius)
	}
	if s.GameTime != 20 || s.ShootDelay != 0.3 || s.BulletSize != 5 || s.BulletPierce != 40 {
		t.Errorf("unexpected stock tuning: %+v", s.Params)
	}
}

func TestFirstBulletOnThirdFrame(t *testing.T) {
	s := newTestState()
	in := firing(core.V(700, 240))

	want := []int{0, 0, 1, 1}
	for frame, expected := range want {
		ShootBullets(s, in, 0.1, NopCanvas)
		if s.BulletCount != expected {
			t.Fatalf("frame %d: bullets = %d, expected %d (accumulator %f)", frame+1, s.BulletCount, expected, s.ShootTime)
		}
		checkCounts(t, s)
	}
}

func TestBurstCatchUp(t *testing.T) {
	s := newTestState()
	s.ShootDelay = 0.25
	s.ShootTime = 2.5 * s.ShootDelay

	ShootBullets(s, firing(core.V(0, 0)), 0, NopCanvas)

	if s.BulletCount != 2 {
		t.Fatalf("expected exactly 2 bullets from a 2.5x bank, got %d", s.BulletCount)
	}
	if math.Abs(s.ShootTime-0.5*s.ShootDelay) > eps {
		t.Errorf("residual accumulator = %f, expected %f", s.ShootTime, 0.5*s.ShootDelay)
	}
}

func TestFireReleasedDoesNotRegress(t *testing.T) {
	s := newTestState()
	s.ShootTime = 0.2

	ShootBullets(s, core.NewInputFrame(), 0.1, NopCanvas)

	if s.BulletCount != 0 {
		t.Errorf("no bullets expected with fire released, got %d", s.BulletCount)
	}
	if s.ShootTime != 0.2 {
		t.Errorf("accumulator should be untouched, got %f", s.ShootTime)
	}
}

func TestBulletCapacityDropsBacklog(t *testing.T) {
	p := DefaultParams(800, 480, 100, 1)
	s := NewState(p)
	s.ShootDelay = 0.25
	s.ShootTime = 0.75

	ShootBullets(s, firing(core.V(800, 240)), 0, NopCanvas)

	checkCounts(t, s)
	if s.BulletCount != 1 {
		t.Fatalf("expected capacity-bound single bullet, got %d", s.BulletCount)
	}
	if s.Stats.ShotsDropped != 2 {
		t.Errorf("expected 2 dropped shots, got %d", s.Stats.ShotsDropped)
	}
	if s.ShootTime >= s.ShootDelay {
		t.Errorf("backlog must not carry over, accumulator = %f", s.ShootTime)
	}
}

func TestBulletDirectionIsUnit(t *testing.T) {
	pointers := []core.Vec2{core.V(0, 0), core.V(800, 480), core.V(401, 240), core.V(400, 0)}

	for _, ptr := range pointers {
		s := newTestState()
		s.ShootTime = s.ShootDelay

		ShootBullets(s, firing(ptr), 0, NopCanvas)

		if s.BulletCount != 1 {
			t.Fatalf("pointer %v: expected one bullet, got %d", ptr, s.BulletCount)
		}
		if l := s.Bullets[0].Direction.Len(); math.Abs(l-1) > eps {
			t.Errorf("pointer %v: direction length = %f, expected 1", ptr, l)
		}
	}
}

func TestBulletAtPlayerPositionStaysFinite(t *testing.T) {
	s := newTestState()
	s.Params.Rules.Bullets = BulletsRetain
	s.ShootTime = s.ShootDelay

	ShootBullets(s, firing(s.PlayerPos), 0.5, NopCanvas)

	b := s.Bullets[0]
	if math.IsNaN(b.Position.X) || math.IsNaN(b.Position.Y) {
		t.Fatalf("bullet position became NaN: %v", b.Position)
	}
	if b.Position != s.PlayerPos {
		t.Errorf("zero-direction bullet should not move, got %v", b.Position)
	}
}

func TestBulletKillsOnlyFirstOverlappingEnemy(t *testing.T) {
	s := newTestState()
	s.Params.Rules = ClassicRules()
	s.Enemies = append(s.Enemies,
		Enemy{Position: core.V(100, 100), Size: 10},
		Enemy{Position: core.V(102, 100), Size: 10},
		Enemy{Position: core.V(300, 300), Size: 10},
	)
	s.EnemyCount = 3
	s.Bullets = append(s.Bullets, Bullet{Position: core.V(100, 100), Direction: core.V(1, 0), Speed: 30, Size: 5})
	s.BulletCount = 1

	ShootBullets(s, core.NewInputFrame(), 0, NopCanvas)

	checkCounts(t, s)
	if s.EnemyCount != 2 {
		t.Fatalf("expected exactly one enemy removed, count = %d", s.EnemyCount)
	}
	if s.Enemies[0].Position != core.V(102, 100) || s.Enemies[1].Position != core.V(300, 300) {
		t.Errorf("remaining enemies should keep their order, got %+v", s.Enemies)
	}
	if s.Stats.Kills != 1 {
		t.Errorf("kills = %d, expected 1", s.Stats.Kills)
	}
	if s.BulletCount != 1 {
		t.Errorf("classic bullets survive hits, count = %d", s.BulletCount)
	}
}

func TestPiercePolicies(t *testing.T) {
	tests := []struct {
		name        string
		policy      PiercePolicy
		pierce      int
		wantBullets int
		wantPierce  int
	}{
		{"inert keeps pierce", PierceInert, 1, 1, 1},
		{"consume spends pierce", PierceConsume, 3, 1, 2},
		{"consume retires at zero", PierceConsume, 1, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestState()
			s.Params.Rules = Rules{Bullets: BulletsRetain, Pierce: tc.policy, GameOver: GameOverHalt}
			s.Enemies = append(s.Enemies, Enemy{Position: core.V(100, 100), Size: 10})
			s.EnemyCount = 1
			s.Bullets = append(s.Bullets, Bullet{Position: core.V(100, 100), Size: 5, Pierce: tc.pierce})
			s.BulletCount = 1

			ShootBullets(s, core.NewInputFrame(), 0, NopCanvas)

			checkCounts(t, s)
			if s.EnemyCount != 0 {
				t.Fatalf("enemy should be destroyed, count = %d", s.EnemyCount)
			}
			if s.BulletCount != tc.wantBullets {
				t.Fatalf("bullets = %d, expected %d", s.BulletCount, tc.wantBullets)
			}
			if tc.wantBullets > 0 && s.Bullets[0].Pierce != tc.wantPierce {
				t.Errorf("pierce = %d, expected %d", s.Bullets[0].Pierce, tc.wantPierce)
			}
		})
	}
}

func TestZeroDirectionBulletsRetiredOffscreen(t *testing.T) {
	tests := []struct {
		policy BulletPolicy
		want   int
	}{
		{BulletsRetain, 100},
		{BulletsOffscreen, 0},
	}

	for _, tc := range tests {
		t.Run(string(tc.policy), func(t *testing.T) {
			s := newTestState()
			s.Params.Rules.Bullets = tc.policy

			for i := 0; i < 200; i++ {
				ShootBullets(s, firing(s.PlayerPos), s.ShootDelay, NopCanvas)
			}

			checkCounts(t, s)
			if s.BulletCount != tc.want {
				t.Errorf("bullets = %d, expected %d", s.BulletCount, tc.want)
			}
			if tc.policy == BulletsOffscreen && s.Stats.ShotsDropped != 0 {
				t.Errorf("retired bullets should free capacity, dropped = %d", s.Stats.ShotsDropped)
			}
		})
	}
}

func TestBulletPolicies(t *testing.T) {
	tests := []struct {
		policy BulletPolicy
		want   int
	}{
		{BulletsRetain, 2},
		{BulletsOffscreen, 1},
	}

	for _, tc := range tests {
		t.Run(string(tc.policy), func(t *testing.T) {
			s := newTestState()
			s.Params.Rules.Bullets = tc.policy
			s.Bullets = append(s.Bullets,
				Bullet{Position: core.V(-50, 240), Direction: core.V(-1, 0), Speed: 30, Size: 5},
				Bullet{Position: core.V(400, 240), Direction: core.V(1, 0), Speed: 30, Size: 5},
			)
			s.BulletCount = 2

			ShootBullets(s, core.NewInputFrame(), 0.1, NopCanvas)

			checkCounts(t, s)
			if s.BulletCount != tc.want {
				t.Errorf("bullets = %d, expected %d", s.BulletCount, tc.want)
			}
			if s.Bullets[len(s.Bullets)-1].Position.X != 403 {
				t.Errorf("on-screen bullet should advance to x=403, got %v", s.Bullets[len(s.Bullets)-1].Position)
			}
		})
	}
}

func TestMovePlayerFirstMatchWins(t *testing.T) {
	tests := []struct {
		name    string
		actions []core.Action
		want    core.Vec2
	}{
		{"up", []core.Action{core.ActionUp}, core.V(400, 230)},
		{"left", []core.Action{core.ActionLeft}, core.V(390, 240)},
		{"right", []core.Action{core.ActionRight}, core.V(410, 240)},
		{"down", []core.Action{core.ActionDown}, core.V(400, 250)},
		{"up beats left", []core.Action{core.ActionLeft, core.ActionUp}, core.V(400, 230)},
		{"left beats right and down", []core.Action{core.ActionDown, core.ActionRight, core.ActionLeft}, core.V(390, 240)},
		{"right beats down", []core.Action{core.ActionDown, core.ActionRight}, core.V(410, 240)},
		{"nothing", nil, core.V(400, 240)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestState()
			in := core.NewInputFrame()
			for _, a := range tc.actions {
				in.Set(a)
			}

			MovePlayer(s, in, 0.01)

			if math.Abs(s.PlayerPos.X-tc.want.X) > eps || math.Abs(s.PlayerPos.Y-tc.want.Y) > eps {
				t.Errorf("player = %v, expected %v", s.PlayerPos, tc.want)
			}
		})
	}
}

func TestSpawnEnemiesOnRing(t *testing.T) {
	s := newTestState()
	rng := &fixedRand{vals: []int{90, 180}}

	SpawnEnemies(s, 1.2, rng)

	checkCounts(t, s)
	if s.EnemyCount != 2 {
		t.Fatalf("expected 2 spawns for 1.2s at 0.5s interval, got %d", s.EnemyCount)
	}
	want := []core.Vec2{core.V(400, 640), core.V(0, 240)}
	for i, e := range s.Enemies {
		if math.Abs(e.Position.X-want[i].X) > 1e-6 || math.Abs(e.Position.Y-want[i].Y) > 1e-6 {
			t.Errorf("enemy %d at %v, expected %v", i, e.Position, want[i])
		}
		if math.Abs(e.Size-8) > eps {
			t.Errorf("enemy %d size = %f, expected 8", i, e.Size)
		}
	}
	if s.SpawnTime < 0 || s.SpawnTime >= s.SpawnInterval() {
		t.Errorf("accumulator %f should be within [0, interval)", s.SpawnTime)
	}
}

func TestSpawnUsesRandRange(t *testing.T) {
	s := newTestState()
	rng := NewRand(7)

	SpawnEnemies(s, 10, rng)

	for _, e := range s.Enemies {
		if d := e.Position.Sub(s.PlayerPos).Len(); math.Abs(d-400) > 1e-6 {
			t.Errorf("enemy spawned %f from player, expected 400", d)
		}
	}
}

func TestSpawnCapacityDropsBacklog(t *testing.T) {
	s := NewState(DefaultParams(800, 480, 3, 100))

	SpawnEnemies(s, 10, NewRand(1))

	checkCounts(t, s)
	if s.EnemyCount != 3 {
		t.Fatalf("expected spawns capped at 3, got %d", s.EnemyCount)
	}
	if s.Stats.SpawnsDropped == 0 {
		t.Error("over-capacity spawns should be counted")
	}
	if s.SpawnTime >= s.SpawnInterval() {
		t.Errorf("backlog must not carry over, accumulator = %f", s.SpawnTime)
	}
}

func TestSpawnDisabledWithoutGameTime(t *testing.T) {
	s := newTestState()
	s.GameTime = 0

	SpawnEnemies(s, 100, NewRand(1))

	if s.EnemyCount != 0 {
		t.Errorf("no spawns expected at zero game time, got %d", s.EnemyCount)
	}
}

func TestUpdateEnemiesHomes(t *testing.T) {
	s := newTestState()
	s.Enemies = append(s.Enemies,
		Enemy{Position: core.V(0, 240), Size: 8},
		Enemy{Position: core.V(400, 0), Size: 8},
	)
	s.EnemyCount = 2

	var dl DrawList
	UpdateEnemies(s, 1, &dl)

	if math.Abs(s.Enemies[0].Position.X-42) > eps || s.Enemies[0].Position.Y != 240 {
		t.Errorf("enemy 0 at %v, expected (42, 240)", s.Enemies[0].Position)
	}
	if math.Abs(s.Enemies[1].Position.Y-42) > eps || s.Enemies[1].Position.X != 400 {
		t.Errorf("enemy 1 at %v, expected (400, 42)", s.Enemies[1].Position)
	}
	if dl.Count(EnemyColor) != 2 {
		t.Errorf("expected 2 enemy draw calls, got %d", dl.Count(EnemyColor))
	}
}

func TestZeroDeltaIsIdempotent(t *testing.T) {
	s := newTestState()
	s.Enemies = append(s.Enemies, Enemy{Position: core.V(10, 10), Size: 8}, Enemy{Position: core.V(700, 400), Size: 8})
	s.EnemyCount = 2
	s.Bullets = append(s.Bullets, Bullet{Position: core.V(300, 200), Direction: core.V(0.6, 0.8), Speed: 30, Size: 5})
	s.BulletCount = 1
	before := s.Snapshot()

	ShootBullets(s, core.NewInputFrame(), 0, NopCanvas)
	UpdateEnemies(s, 0, NopCanvas)

	after := s.Snapshot()
	if before.Hash() != after.Hash() {
		t.Errorf("zero delta moved something:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestStepGameOverTransition(t *testing.T) {
	s := newTestState()
	s.Params.Rules = ClassicRules()
	s.Enemies = append(s.Enemies, Enemy{Position: core.V(410, 240), Size: 8})
	s.EnemyCount = 1

	tr := Step(s, Frame{Dt: 0, Input: core.NewInputFrame()}, nil, NewRand(1))

	if tr.Outcome != GameOver {
		t.Fatalf("overlapping player and enemy should end the round, got %v", tr.Outcome)
	}
	if tr.Collider != 0 {
		t.Errorf("collider = %d, expected 0", tr.Collider)
	}
	if tr.Next == nil || tr.Next == s {
		t.Fatal("GameOver must carry a fresh state")
	}
	if tr.Next.EnemyCount != 0 || tr.Next.PlayerPos != core.V(400, 240) || tr.Next.Params.Rules != ClassicRules() {
		t.Errorf("fresh state not initial: %+v", tr.Next.Snapshot())
	}
	// Step itself never replaces the state; the caller owns that decision.
	if s.EnemyCount != 1 {
		t.Errorf("current state should be untouched by the transition, enemies = %d", s.EnemyCount)
	}
}

func TestStepContinue(t *testing.T) {
	s := newTestState()

	tr := Step(s, Frame{Dt: 0.016, Input: core.NewInputFrame()}, nil, NewRand(1))

	if tr.Outcome != Continue || tr.Next != nil || tr.Collider != -1 {
		t.Errorf("unexpected transition %+v", tr)
	}
	if s.Stats.Frames != 1 || math.Abs(s.Stats.Elapsed-0.016) > eps {
		t.Errorf("frame stats not advanced: %+v", s.Stats)
	}
}

func TestStepDrawOrder(t *testing.T) {
	s := newTestState()
	s.Enemies = append(s.Enemies, Enemy{Position: core.V(10, 10), Size: 8})
	s.EnemyCount = 1
	s.ShootTime = s.ShootDelay

	var dl DrawList
	Step(s, Frame{Dt: 0.01, Input: firing(core.V(800, 240))}, &dl, NewRand(1))

	if len(dl) != 3 {
		t.Fatalf("expected player, bullet and enemy draws, got %+v", dl)
	}
	if dl[0].Color != PlayerColor || dl[0].X != 400 || dl[0].Y != 240 || dl[0].Radius != 30 {
		t.Errorf("first draw should be the player, got %+v", dl[0])
	}
	if dl[1].Color != BulletColor || dl[2].Color != EnemyColor {
		t.Errorf("bullets must be drawn before enemies, got %+v", dl)
	}
}

func TestGameTimeDrift(t *testing.T) {
	p := DefaultParams(800, 480, 100, 100)
	p.GameTimeRate = -2
	p.GameTimeMin = 15
	s := NewState(p)

	for i := 0; i < 10; i++ {
		Step(s, Frame{Dt: 1, Input: core.NewInputFrame()}, nil, &fixedRand{vals: []int{0}})
	}

	if s.GameTime != 15 {
		t.Errorf("game time should clamp at its minimum, got %f", s.GameTime)
	}
}

func TestGameTimeConstantByDefault(t *testing.T) {
	s := newTestState()
	for i := 0; i < 100; i++ {
		Step(s, Frame{Dt: 0.05, Input: core.NewInputFrame()}, nil, NewRand(3))
	}
	if s.GameTime != 20 {
		t.Errorf("game time should stay constant with zero rate, got %f", s.GameTime)
	}
}

func TestStepInvariantsUnderLoad(t *testing.T) {
	p := DefaultParams(800, 480, 12, 9)
	p.Rules = ClassicRules()
	s := NewState(p)
	rng := NewRand(99)
	actions := []core.Action{core.ActionUp, core.ActionLeft, core.ActionRight, core.ActionDown}

	for i := 0; i < 2000; i++ {
		in := firing(core.V(float64(i%800), float64((i*7)%480)))
		in.Set(actions[i%len(actions)])
		Step(s, Frame{Dt: 0.016 + float64(i%5)*0.01, Input: in}, nil, rng)
		checkCounts(t, s)
	}

	if s.Stats.ShotsDropped == 0 {
		t.Error("retained bullets should eventually hit capacity and drop shots")
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		s := newTestState()
		rng := NewRand(12345)
		for i := 0; i < 600; i++ {
			in := core.NewInputFrame()
			if i%3 == 0 {
				in.SetHeld(core.ActionFire, true)
			}
			if i%20 == 0 {
				in.Set(core.ActionLeft)
			}
			in.Pointer = core.V(float64((i*13)%800), float64((i*17)%480))
			tr := Step(s, Frame{Dt: 1.0 / 60, Input: in}, nil, rng)
			if tr.Outcome == GameOver {
				s = tr.Next
			}
		}
		return s.Snapshot()
	}

	a, b := run(), run()
	if a.Hash() != b.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", a.Hash(), b.Hash())
	}
}

func TestRulesValidate(t *testing.T) {
	if err := ClassicRules().Validate(); err != nil {
		t.Errorf("classic rules invalid: %v", err)
	}
	if err := ArcadeRules().Validate(); err != nil {
		t.Errorf("arcade rules invalid: %v", err)
	}

	bad := []Rules{
		{Bullets: "vanish", Pierce: PierceInert, GameOver: GameOverHalt},
		{Bullets: BulletsRetain, Pierce: "", GameOver: GameOverHalt},
		{Bullets: BulletsRetain, Pierce: PierceInert, GameOver: "explode"},
	}
	for _, r := range bad {
		if err := r.Validate(); err == nil {
			t.Errorf("expected error for %+v", r)
		}
	}
}

func TestSeededRandRange(t *testing.T) {
	r := NewRand(5)
	for i := 0; i < 1000; i++ {
		v := r.IntRange(0, 360)
		if v < 0 || v >= 360 {
			t.Fatalf("IntRange(0, 360) = %d out of range", v)
		}
	}
	if r.IntRange(4, 4) != 4 {
		t.Error("empty range should return lo")
	}
}
