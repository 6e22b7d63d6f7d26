package route

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Policy selects how a Planner chooses its next target.
type Policy int

const (
	// PolicyNearestTour plans one nearest-unvisited tour over every target and
	// walks it, recomputing only when the walk becomes impossible.
	PolicyNearestTour Policy = iota
	// PolicyClusterWeighted re-scores every remaining target each turn with
	// ClusterScore and steps toward the best one.
	PolicyClusterWeighted
	// PolicyGreedyPerTarget heads for the nearest target and picks the next
	// one only after the current route is used up.
	PolicyGreedyPerTarget
	// PolicyGreedyEachTurn is PolicyGreedyPerTarget that also checks every
	// turn whether its tracked target was taken by someone else.
	PolicyGreedyEachTurn
)

// DefaultClusterThreshold is the distance below which two targets share a
// cluster unless WithClusterThreshold says otherwise.
const DefaultClusterThreshold int64 = 5

// String implements fmt.Stringer.
func (p Policy) String() string {
	switch p {
	case PolicyNearestTour:
		return "nearest-tour"
	case PolicyClusterWeighted:
		return "cluster-weighted"
	case PolicyGreedyPerTarget:
		return "greedy-per-target"
	case PolicyGreedyEachTurn:
		return "greedy-each-turn"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy is the inverse of Policy.String.
func ParsePolicy(s string) (Policy, error) {
	for p := PolicyNearestTour; p <= PolicyGreedyEachTurn; p++ {
		if strings.EqualFold(strings.TrimSpace(s), p.String()) {
			return p, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

type config struct {
	policy    Policy
	threshold int64
	refine    bool
	logger    *slog.Logger
}

func defaultConfig() config {
	return config{
		policy:    PolicyNearestTour,
		threshold: DefaultClusterThreshold,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option configures a Planner.
type Option func(*config)

// WithPolicy selects the target-selection policy.
// Panics on a value outside the Policy enumeration.
func WithPolicy(p Policy) Option {
	if p < PolicyNearestTour || p > PolicyGreedyEachTurn {
		panic(fmt.Sprintf("route: WithPolicy(%d): unknown policy", int(p)))
	}

	return func(c *config) { c.policy = p }
}

// WithClusterThreshold sets the clustering distance bound used by
// PolicyClusterWeighted. Panics if d is negative.
func WithClusterThreshold(d int64) Option {
	if d < 0 {
		panic(fmt.Sprintf("route: WithClusterThreshold(%d): negative threshold", d))
	}

	return func(c *config) { c.threshold = d }
}

// WithTourRefinement runs RefineTour over every tour PolicyNearestTour plans.
func WithTourRefinement() Option {
	return func(c *config) { c.refine = true }
}

// WithLogger routes planner diagnostics to l. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("route: WithLogger(nil)")
	}

	return func(c *config) { c.logger = l }
}
