package game

import (
	"math/rand/v2"

	"github.com/plus3/blockfall/ecs"
)

// GravitySystem moves the active piece down one row every frame. A move into
// an obstruction flags the piece for locking.
type GravitySystem struct {
	Grid    ecs.Singleton[Grid]
	Catalog ecs.Singleton[Catalog]
	Piece   ecs.Singleton[ActivePiece]
	Session ecs.Singleton[Session]
}

func (s *GravitySystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	if session == nil || session.State != Running {
		return
	}
	session.Frames++

	piece := s.Piece.Get()
	piece.Y++
	if s.Grid.Get().IsCollision(piece.X, piece.Y, s.Catalog.Get().Shape()) {
		session.lockPending = true
	}
}

// LockSystem merges a flagged piece into the landed cells.
type LockSystem struct {
	Config  ecs.Singleton[Config]
	Grid    ecs.Singleton[Grid]
	Catalog ecs.Singleton[Catalog]
	Piece   ecs.Singleton[ActivePiece]
	Session ecs.Singleton[Session]
}

func (s *LockSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	if session == nil || !session.lockPending {
		return
	}
	session.lockPending = false

	piece := s.Piece.Get()
	if s.Config.Get().LockMode == LockAtRest {
		piece.Y--
	}

	s.Grid.Get().PlacePieceOnGrid(frame.Storage, piece.X, piece.Y, s.Catalog.Get().Shape())
	session.Locks++
	session.spawnPending = true
}

// SpawnSystem picks a new shape uniformly at random after a lock and places
// it centered on the top row. A spawn that collides ends the game.
type SpawnSystem struct {
	Grid    ecs.Singleton[Grid]
	Catalog ecs.Singleton[Catalog]
	Piece   ecs.Singleton[ActivePiece]
	Session ecs.Singleton[Session]

	Rand *rand.Rand
}

func (s *SpawnSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	if session == nil || !session.spawnPending {
		return
	}
	session.spawnPending = false

	grid, catalog, piece := s.Grid.Get(), s.Catalog.Get(), s.Piece.Get()
	catalog.Current = s.Rand.IntN(catalog.Len())

	shape := catalog.Shape()
	piece.X = grid.SpawnX(shape)
	piece.Y = 0

	if grid.IsCollision(piece.X, piece.Y, shape) {
		session.State = GameOver
	}
}
