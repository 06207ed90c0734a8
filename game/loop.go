package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/plus3/blockfall/ecs"
)

// GameOverMessage is the text of the end-of-game notice.
const GameOverMessage = "Game over!"

// FrameRequester runs a callback before the host's next repaint. The loop
// requests one frame at a time from inside its own tick.
type FrameRequester interface {
	RequestFrame(callback func())
}

// Notifier shows a message and blocks until the player acknowledges it.
type Notifier interface {
	Notify(message string)
}

// RegisterComponents registers the game's entity components.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[LandedCell](registry)
}

// NewStorage returns a storage whose registry holds the game's components
// plus whatever the given register functions add.
func NewStorage(register ...func(*ecs.ComponentRegistry)) *ecs.Storage {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	for _, fn := range register {
		fn(registry)
	}
	return ecs.NewStorage(registry)
}

// Loop owns the game state and drives it one tick per host frame until the
// game is over.
type Loop struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	input     *InputController
	frames    FrameRequester
	notifier  Notifier

	session *ecs.Singleton[Session]
	cells   *ecs.Query[struct{ *LandedCell }]
	last    time.Time
}

// NewLoop seeds storage with a fresh game for cfg and returns a loop that
// renders to surface. A nil surface runs the game headless.
func NewLoop(storage *ecs.Storage, cfg Config, surface Surface, frames FrameRequester, notifier Notifier) (*Loop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	catalog := NewCatalog()
	catalog.Current = cfg.StartPiece

	storage.AddSingleton(cfg)
	storage.AddSingleton(NewGrid(cfg.Columns, cfg.Rows))
	storage.AddSingleton(catalog)
	storage.AddSingleton(ActivePiece{X: cfg.StartX, Y: cfg.StartY})
	storage.AddSingleton(Session{State: Running})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&GravitySystem{})
	scheduler.Register(&LockSystem{})
	scheduler.Register(&SpawnSystem{Rand: rand.New(rand.NewPCG(seed, seed>>1|1))})
	scheduler.Register(&RenderSystem{Surface: surface})

	return &Loop{
		storage:   storage,
		scheduler: scheduler,
		input:     NewInputController(storage),
		frames:    frames,
		notifier:  notifier,
		session:   ecs.NewSingleton[Session](storage),
		cells:     ecs.NewQuery[struct{ *LandedCell }](storage),
	}, nil
}

// Start runs the first tick immediately; every later tick is requested from
// the host by the tick before it.
func (l *Loop) Start() {
	l.last = time.Now()
	l.tick()
}

func (l *Loop) tick() {
	now := time.Now()
	l.scheduler.Once(now.Sub(l.last).Seconds())
	l.last = now

	if l.session.Get().State == GameOver {
		if l.notifier != nil {
			l.notifier.Notify(GameOverMessage)
		}
		return
	}

	l.frames.RequestFrame(l.tick)
}

// HandleKey applies a key-down event to the active piece. Events keep being
// applied after the game is over, but nothing is rendered any more.
func (l *Loop) HandleKey(key Key) {
	l.input.HandleKey(key)
}

// State returns the current loop state.
func (l *Loop) State() State {
	return l.session.Get().State
}

// Session returns a copy of the session counters.
func (l *Loop) Session() Session {
	return *l.session.Get()
}

// LandedCells returns the number of LandedCell entities. With
// LockAtOvershoot this can exceed Grid.LandedCount, since cells may land on
// occupied positions.
func (l *Loop) LandedCells() int {
	return l.cells.Count()
}

// Storage returns the ECS storage holding the game state.
func (l *Loop) Storage() *ecs.Storage {
	return l.storage
}

// Scheduler returns the scheduler running the game systems.
func (l *Loop) Scheduler() *ecs.Scheduler {
	return l.scheduler
}

func (l *Loop) String() string {
	s := l.session.Get()
	return fmt.Sprintf("%s after %d frames, %d locks", s.State, s.Frames, s.Locks)
}
