package route

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/katalvlaran/mazeroute/cluster"
	"github.com/katalvlaran/mazeroute/dijkstra"
	"github.com/katalvlaran/mazeroute/distgraph"
	"github.com/katalvlaran/mazeroute/maze"
)

// Replan reasons, reported in debug logs.
const (
	reasonPlan      = "plan"
	reasonExhausted = "route exhausted"
	reasonOffRoute  = "next step not adjacent"
	reasonTurn      = "per-turn rescoring"
)

// Planner is the per-agent, per-episode route state: the distance graph, the
// cluster index, and the remaining route whose last vertex is the tracked
// target. A Planner is not safe for concurrent use; the graph it reads may be
// shared between planners.
type Planner struct {
	nav maze.Navigator
	cfg config
	log *slog.Logger

	episode  uuid.UUID
	planned  bool
	dg       *distgraph.DistanceGraph
	clusters *cluster.Index
	tour     Tour
	route    dijkstra.Path

	// The step NextMove last issued and the vertex it was issued from.
	lastFrom maze.Vertex
	lastStep maze.Vertex
}

// NewPlanner returns a Planner over nav. Plan must be called before NextMove.
func NewPlanner(nav maze.Navigator, opts ...Option) (*Planner, error) {
	if nav == nil {
		return nil, ErrNilGraph
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Planner{
		nav:     nav,
		cfg:     cfg,
		log:      cfg.logger.With(slog.String("policy", cfg.policy.String())),
		episode:  uuid.New(),
		lastFrom: maze.NoVertex,
		lastStep: maze.NoVertex,
	}, nil
}

// Policy returns the configured policy.
func (p *Planner) Policy() Policy { return p.cfg.policy }

// Episode returns the id of the current planning episode; every Plan starts a
// new one.
func (p *Planner) Episode() uuid.UUID { return p.episode }

// Route returns a copy of the steps still to walk.
func (p *Planner) Route() dijkstra.Path {
	return append(dijkstra.Path{}, p.route...)
}

// Target returns the vertex the current route leads to, or maze.NoVertex.
func (p *Planner) Target() maze.Vertex {
	if len(p.route) == 0 {
		return maze.NoVertex
	}

	return p.route[len(p.route)-1]
}

// Tour returns the last tour planned by PolicyNearestTour.
func (p *Planner) Tour() Tour { return p.tour }

// Clusters returns the cluster index of PolicyClusterWeighted, or nil.
func (p *Planner) Clusters() *cluster.Index { return p.clusters }

// DistanceGraph returns the distance graph of the current episode, or nil.
func (p *Planner) DistanceGraph() *distgraph.DistanceGraph { return p.dg }

// Plan starts a new episode from origin: it builds the distance graph over
// origin and targets (plus the cluster index for PolicyClusterWeighted) and
// computes the initial route, which is returned as a copy.
//
// Stages:
//  1. Validate origin; drop duplicates and origin itself from targets.
//  2. Build the distance graph.
//  3. Compute the initial route according to the policy.
func (p *Planner) Plan(origin maze.Vertex, targets []maze.Vertex) (dijkstra.Path, error) {
	p.reset()
	if !p.nav.HasVertex(origin) {
		return nil, fmt.Errorf("route: origin %d: %w", origin, maze.ErrVertexNotFound)
	}
	cand := candidates(targets, origin)
	if len(cand) == 0 {
		return nil, ErrEmptyTargetSet
	}

	if err := p.rebuild(origin, cand); err != nil {
		return nil, err
	}
	p.planned = true

	var err error
	switch p.cfg.policy {
	case PolicyNearestTour:
		err = p.planTour(origin, cand)
	case PolicyClusterWeighted:
		p.clusters, err = cluster.New(p.dg, cand, p.cfg.threshold)
		if err != nil {
			p.planned = false

			return nil, err
		}
		p.log.Debug("clusters built",
			slog.String("episode", p.episode.String()),
			slog.Int("clusters", p.clusters.Len()),
			slog.Int64("threshold", p.cfg.threshold))
		err = p.selectFrom(origin, cand, FromGraph(p.dg, origin), p.pathFromGraph(origin))
	default:
		err = p.selectFrom(origin, cand, FromGraph(p.dg, origin), p.pathFromGraph(origin))
	}
	if err != nil {
		return nil, err
	}
	p.trace(origin, reasonPlan)

	return p.Route(), nil
}

// NextMove returns the action that advances the agent standing on pos toward
// its target, given the targets still in play.
//
// An agent still standing where the previous step was issued (it is crossing
// mud) gets that step again. Otherwise the cached route is recomputed when it
// is used up or its next step is not adjacent to pos, and, depending on the
// policy, when its target was taken by someone else.
// With no remaining target the answer is maze.Nothing with ErrEmptyTargetSet;
// with no reachable one it is maze.Nothing with ErrUnreachableTarget.
func (p *Planner) NextMove(pos maze.Vertex, remaining []maze.Vertex) (maze.Action, error) {
	if !p.planned {
		return maze.Nothing, ErrNotPlanned
	}
	if !p.nav.HasVertex(pos) {
		return maze.Nothing, fmt.Errorf("route: position %d: %w", pos, maze.ErrVertexNotFound)
	}
	cand := candidates(remaining, pos)
	if len(cand) == 0 {
		p.route = nil
		p.lastStep = maze.NoVertex

		return maze.Nothing, ErrEmptyTargetSet
	}

	var err error
	switch p.cfg.policy {
	case PolicyNearestTour:
		if reason, ok := p.follows(pos); !ok && !p.resume(pos) {
			p.trace(pos, reason)
			if err = p.rebuild(pos, cand); err == nil {
				err = p.planTour(pos, cand)
			}
		}
	case PolicyClusterWeighted:
		if gone := p.clusters.Sync(cand); len(gone) > 0 {
			p.log.Debug("clusters shrunk",
				slog.String("episode", p.episode.String()),
				slog.Any("collected", gone))
		}
		err = p.search(pos, cand, reasonTurn)
	case PolicyGreedyPerTarget:
		if reason, ok := p.follows(pos); !ok && !p.resume(pos) {
			err = p.retarget(pos, cand, reason)
		}
	case PolicyGreedyEachTurn:
		reason, ok := p.follows(pos)
		switch {
		case !ok && !p.resume(pos):
			err = p.retarget(pos, cand, reason)
		case !contains(cand, p.Target()):
			err = p.search(pos, cand, ErrStaleRoute.Error())
		}
	}
	p.forget(cand)
	if err != nil {
		p.route = nil
		p.lastStep = maze.NoVertex
		if errors.Is(err, ErrUnreachableTarget) {
			p.log.Debug("no reachable target",
				slog.String("episode", p.episode.String()),
				slog.Int("pos", int(pos)),
				slog.Int("remaining", len(cand)))
		}

		return maze.Nothing, err
	}

	if len(p.route) == 0 {
		p.lastStep = maze.NoVertex

		return maze.Nothing, nil
	}
	act, err := p.nav.LocationsToAction(pos, p.route[0])
	if err != nil {
		p.route = nil
		p.lastStep = maze.NoVertex

		return maze.Nothing, err
	}
	p.lastFrom, p.lastStep = pos, p.route[0]
	p.route = p.route[1:]

	return act, nil
}

func (p *Planner) reset() {
	p.episode = uuid.New()
	p.planned = false
	p.dg = nil
	p.clusters = nil
	p.tour = Tour{}
	p.route = nil
	p.lastFrom = maze.NoVertex
	p.lastStep = maze.NoVertex
}

func (p *Planner) rebuild(origin maze.Vertex, cand []maze.Vertex) error {
	dg, err := distgraph.Build(p.nav, origin, cand)
	if err != nil {
		return err
	}
	p.dg = dg

	return nil
}

// planTour requires p.dg to be rooted at origin.
func (p *Planner) planTour(origin maze.Vertex, cand []maze.Vertex) error {
	tour, err := NearestTour(p.dg, origin, cand)
	if err != nil {
		return err
	}
	if skipped := len(cand) - len(tour.Order); skipped > 0 {
		p.log.Debug("unreachable targets left out of tour",
			slog.String("episode", p.episode.String()),
			slog.Int("skipped", skipped))
	}
	if p.cfg.refine {
		tour = RefineTour(p.dg, tour)
	}
	p.tour = tour
	p.route = append(dijkstra.Path{}, tour.Route...)

	return nil
}

// follows reports whether the cached route can be continued from pos.
func (p *Planner) follows(pos maze.Vertex) (string, bool) {
	if len(p.route) == 0 {
		return reasonExhausted, false
	}
	if _, err := p.nav.Weight(pos, p.route[0]); err != nil {
		return reasonOffRoute, false
	}

	return "", true
}

// resume puts the last issued step back in front of the route when the agent
// has not left the vertex it was issued from and the step is still adjacent.
func (p *Planner) resume(pos maze.Vertex) bool {
	if p.lastStep == maze.NoVertex || pos != p.lastFrom {
		return false
	}
	if _, err := p.nav.Weight(pos, p.lastStep); err != nil {
		return false
	}
	p.route = append(dijkstra.Path{p.lastStep}, p.route...)

	return true
}

// retarget picks the nearest target from pos, answering from the distance
// graph when it covers pos and every candidate and searching otherwise.
func (p *Planner) retarget(pos maze.Vertex, cand []maze.Vertex, reason string) error {
	if p.dg == nil || !p.dg.Has(pos) {
		return p.search(pos, cand, reason)
	}
	for _, v := range cand {
		if !p.dg.Has(v) {
			return p.search(pos, cand, reason)
		}
	}
	p.trace(pos, reason)

	return p.selectFrom(pos, cand, FromGraph(p.dg, pos), p.pathFromGraph(pos))
}

// search runs a fresh stop-set search from pos and selects from its result,
// so nothing of the previous route survives.
func (p *Planner) search(pos maze.Vertex, cand []maze.Vertex, reason string) error {
	if reason != reasonTurn {
		p.trace(pos, reason)
	}
	res, err := dijkstra.Dijkstra(p.nav, dijkstra.Source(pos), dijkstra.WithStopSet(cand...))
	if err != nil {
		return err
	}

	return p.selectFrom(pos, cand, FromDistances(res.Dist), res.PathTo)
}

// selectFrom applies the policy's scoring to cand and stores the path to the
// winner as the new route.
func (p *Planner) selectFrom(pos maze.Vertex, cand []maze.Vertex, dist DistanceFunc, path func(maze.Vertex) (dijkstra.Path, error)) error {
	var (
		target maze.Vertex
		err    error
	)
	if p.cfg.policy == PolicyClusterWeighted {
		target, err = ClusterWeightedNearest(cand, dist, p.clusters)
	} else {
		target, err = Nearest(cand, dist)
	}
	if err != nil {
		return err
	}
	route, err := path(target)
	if err != nil {
		return fmt.Errorf("%w: %d→%d: %v", ErrUnreachableTarget, pos, target, err)
	}
	p.route = route

	return nil
}

func (p *Planner) pathFromGraph(from maze.Vertex) func(maze.Vertex) (dijkstra.Path, error) {
	return func(to maze.Vertex) (dijkstra.Path, error) { return p.dg.Path(from, to) }
}

// forget drops consumed targets from the distance graph.
func (p *Planner) forget(cand []maze.Vertex) {
	if p.dg == nil {
		return
	}
	for _, v := range p.dg.Points() {
		if !contains(cand, v) {
			_ = p.dg.Remove(v)
		}
	}
}

func (p *Planner) trace(pos maze.Vertex, reason string) {
	p.log.Debug("replan",
		slog.String("episode", p.episode.String()),
		slog.Int("pos", int(pos)),
		slog.String("reason", reason))
}

// candidates deduplicates targets and drops pos, preserving order.
func candidates(targets []maze.Vertex, pos maze.Vertex) []maze.Vertex {
	out := make([]maze.Vertex, 0, len(targets))
	seen := make(map[maze.Vertex]bool, len(targets))
	for _, v := range targets {
		if v == pos || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}

	return out
}

func contains(s []maze.Vertex, v maze.Vertex) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}

	return false
}
