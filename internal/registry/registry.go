// Package registry maps game mode IDs to factories.
// Modes register themselves in init() so front ends (terminal, SSH, window)
// can list and create them without importing each mode directly.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/vovakirdan/ringshot/internal/core"
)

// Game is what every front end drives. Implementations hold the whole round
// and never touch terminals, windows or the network; the platform maps input,
// measures time and presents the result.
type Game interface {
	// ID returns a unique identifier for this mode (e.g. "ringshot").
	// Used for CLI arguments and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset builds a fresh round. Called once at start and again on restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the round by in.Dt seconds.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current frame into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns score, game over and pause flags.
	State() core.GameState
}

// GameInfo contains metadata about a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new, not yet reset, game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a mode factory to the registry.
// Panics if the ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered modes, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a mode by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Resolve turns user input into a registered ID. Besides exact IDs it accepts
// the suffix after an underscore, so "classic" finds "ringshot_classic".
func Resolve(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", false
	}

	mu.RLock()
	defer mu.RUnlock()

	if _, ok := factories[name]; ok {
		return name, true
	}

	var matches []string
	for id := range factories {
		if i := strings.LastIndexByte(id, '_'); i >= 0 && id[i+1:] == name {
			matches = append(matches, id)
		}
	}
	if len(matches) != 1 {
		return "", false
	}
	return matches[0], true
}
