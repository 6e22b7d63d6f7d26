// Package arena runs turn-synchronous matches between route planners on a
// shared maze.
//
// Each turn every player is asked for a move given its position and the
// cheese still on the board; all moves are then applied at once. Crossing an
// edge of weight w takes w turns, during which the player stays on the source
// cell and its answers are ignored. Cheese is collected on arrival; when k
// players arrive on the same cheese in one turn each scores 1/k.
package arena

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/katalvlaran/mazeroute/dijkstra"
	"github.com/katalvlaran/mazeroute/maze"
	"github.com/katalvlaran/mazeroute/route"
)

// Sentinel errors for arena setup and play.
var (
	ErrNilMaze       = errors.New("arena: maze is nil")
	ErrNoPlayers     = errors.New("arena: at least one player is required")
	ErrBadCell       = errors.New("arena: cell is not part of the maze")
	ErrCheeseOnStart = errors.New("arena: cheese placed on a start cell")
	ErrNoCheese      = errors.New("arena: no cheese to collect")
	ErrFinished      = errors.New("arena: match is over")
)

// DefaultMaxTurns bounds a match unless WithMaxTurns says otherwise.
const DefaultMaxTurns = 2000

// Player is the part of route.Planner a match needs.
type Player interface {
	Plan(origin maze.Vertex, targets []maze.Vertex) (dijkstra.Path, error)
	NextMove(pos maze.Vertex, remaining []maze.Vertex) (maze.Action, error)
}

// Entrant is a named player with its start cell.
type Entrant struct {
	Name   string
	Player Player
	Start  maze.Vertex
}

type config struct {
	maxTurns    int
	majorityWin bool
	logger      *slog.Logger
}

// Option configures a Game.
type Option func(*config)

// WithMaxTurns bounds the match length. Panics if n < 1.
func WithMaxTurns(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("arena: WithMaxTurns(%d): need at least one turn", n))
	}

	return func(c *config) { c.maxTurns = n }
}

// WithMajorityWin ends the match as soon as a player holds more than half of
// the cheese, as the real game does.
func WithMajorityWin() Option {
	return func(c *config) { c.majorityWin = true }
}

// WithLogger routes match events to l. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("arena: WithLogger(nil)")
	}

	return func(c *config) { c.logger = l }
}

// agent is the mutable per-player state.
type agent struct {
	Entrant
	pos     maze.Vertex
	score   float64
	mudLeft int64
	mudTo   maze.Vertex
	stuck   int
	missed  int
}

// Game is one match. It is driven from a single goroutine.
type Game struct {
	id     uuid.UUID
	m      *maze.Maze
	cfg    config
	log    *slog.Logger
	agents []*agent
	cheese map[maze.Vertex]struct{}
	total  int
	turn   int
	over   bool
}

// Standing is the per-player part of a Result.
type Standing struct {
	Name   string
	Score  float64
	Pos    maze.Vertex
	Stuck  int // turns spent crossing mud
	Missed int // moves into walls or off the grid
}

// Result summarizes a match.
type Result struct {
	ID        uuid.UUID
	Turns     int
	Standings []Standing
	Remaining []maze.Vertex
}

// New validates the setup and asks every player to Plan from its start.
// Players whose cheese is all unreachable are kept; they will idle.
func New(m *maze.Maze, cheese []maze.Vertex, entrants []Entrant, opts ...Option) (*Game, error) {
	if m == nil {
		return nil, ErrNilMaze
	}
	if len(entrants) == 0 {
		return nil, ErrNoPlayers
	}
	cfg := config{
		maxTurns: DefaultMaxTurns,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	g := &Game{
		id:     uuid.New(),
		m:      m,
		cfg:    cfg,
		cheese: make(map[maze.Vertex]struct{}, len(cheese)),
	}
	g.log = cfg.logger.With(slog.String("match", g.id.String()))

	starts := make(map[maze.Vertex]bool, len(entrants))
	for i, e := range entrants {
		if e.Player == nil {
			return nil, fmt.Errorf("%w: entrant %d has no player", ErrNoPlayers, i)
		}
		if !m.HasVertex(e.Start) {
			return nil, fmt.Errorf("%w: start %d of %q", ErrBadCell, e.Start, e.Name)
		}
		starts[e.Start] = true
		g.agents = append(g.agents, &agent{Entrant: e, pos: e.Start, mudTo: maze.NoVertex})
	}
	for _, c := range cheese {
		if !m.HasVertex(c) {
			return nil, fmt.Errorf("%w: cheese %d", ErrBadCell, c)
		}
		if starts[c] {
			return nil, fmt.Errorf("%w: %d", ErrCheeseOnStart, c)
		}
		g.cheese[c] = struct{}{}
	}
	if len(g.cheese) == 0 {
		return nil, ErrNoCheese
	}
	g.total = len(g.cheese)

	remaining := g.Remaining()
	for _, a := range g.agents {
		if _, err := a.Player.Plan(a.pos, remaining); err != nil && !errors.Is(err, route.ErrUnreachableTarget) {
			return nil, fmt.Errorf("arena: planning for %q: %w", a.Name, err)
		}
	}

	return g, nil
}

// ID returns the match id.
func (g *Game) ID() uuid.UUID { return g.id }

// Turn returns the number of turns played.
func (g *Game) Turn() int { return g.turn }

// Over reports whether the match has ended.
func (g *Game) Over() bool { return g.over }

// Remaining returns the uncollected cheese in ascending order.
func (g *Game) Remaining() []maze.Vertex {
	out := make([]maze.Vertex, 0, len(g.cheese))
	for c := range g.cheese {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Step plays one turn.
//
// Stages:
//  1. Collect one answer from every player against the same board.
//  2. Apply all answers; players in mud only advance their crossing.
//  3. Award the cheese under arriving players, split between ties.
//  4. Check the end conditions.
func (g *Game) Step() error {
	if g.over {
		return ErrFinished
	}
	remaining := g.Remaining()

	// 1. Decide.
	acts := make([]maze.Action, len(g.agents))
	for i, a := range g.agents {
		act, err := a.Player.NextMove(a.pos, remaining)
		switch {
		case err == nil:
		case errors.Is(err, route.ErrEmptyTargetSet), errors.Is(err, route.ErrUnreachableTarget):
			g.log.Debug("player idles", slog.String("player", a.Name), slog.String("cause", err.Error()))
		default:
			return fmt.Errorf("arena: turn %d, player %q: %w", g.turn, a.Name, err)
		}
		acts[i] = act
	}

	// 2. Move.
	arrived := make(map[maze.Vertex][]*agent)
	for i, a := range g.agents {
		if g.advance(a, acts[i]) {
			arrived[a.pos] = append(arrived[a.pos], a)
		}
	}

	// 3. Collect.
	for cell, who := range arrived {
		if _, ok := g.cheese[cell]; !ok {
			continue
		}
		delete(g.cheese, cell)
		share := 1 / float64(len(who))
		for _, a := range who {
			a.score += share
		}
		g.log.Debug("cheese collected",
			slog.Int("turn", g.turn),
			slog.Int("cell", int(cell)),
			slog.Int("players", len(who)))
	}
	g.turn++

	// 4. End conditions.
	switch {
	case len(g.cheese) == 0:
		g.over = true
	case g.turn >= g.cfg.maxTurns:
		g.over = true
	case g.cfg.majorityWin:
		for _, a := range g.agents {
			if a.score > float64(g.total)/2 {
				g.over = true
			}
		}
	}

	return nil
}

// advance applies act to a and reports whether a reached a new cell.
func (g *Game) advance(a *agent, act maze.Action) bool {
	if a.mudLeft > 0 {
		a.stuck++
		a.mudLeft--
		if a.mudLeft > 0 {
			return false
		}
		a.pos, a.mudTo = a.mudTo, maze.NoVertex

		return true
	}
	if act == maze.Nothing {
		return false
	}

	to, err := g.m.Move(a.pos, act)
	if err != nil {
		a.missed++
		g.log.Debug("move rejected", slog.String("player", a.Name), slog.String("cause", err.Error()))

		return false
	}
	w, err := g.m.Weight(a.pos, to)
	if err != nil || w <= 1 {
		a.pos = to

		return true
	}
	a.mudLeft, a.mudTo = w-1, to

	return false
}

// Run plays until the match ends or ctx is done.
func (g *Game) Run(ctx context.Context) (Result, error) {
	for !g.over {
		if err := ctx.Err(); err != nil {
			return g.Result(), err
		}
		if err := g.Step(); err != nil {
			return g.Result(), err
		}
	}
	res := g.Result()
	g.log.Info("match over", slog.Int("turns", res.Turns), slog.Int("uncollected", len(res.Remaining)))

	return res, nil
}

// Result snapshots the current state of the match.
func (g *Game) Result() Result {
	res := Result{ID: g.id, Turns: g.turn, Remaining: g.Remaining()}
	for _, a := range g.agents {
		res.Standings = append(res.Standings, Standing{
			Name:   a.Name,
			Score:  a.score,
			Pos:    a.pos,
			Stuck:  a.stuck,
			Missed: a.missed,
		})
	}

	return res
}
