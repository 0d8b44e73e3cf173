package brain

import (
	"cmp"
	"math"
	"slices"

	"github.com/lixenwraith/ledgewalker/navigation"
	"github.com/lixenwraith/ledgewalker/parameter"
	"github.com/lixenwraith/ledgewalker/physics"
	"github.com/lixenwraith/ledgewalker/vmath"
	"github.com/lixenwraith/ledgewalker/world"
)

// Candidate is one scored target platform
type Candidate struct {
	Node  int
	Score float64
	Dist  float64
}

// Choice is the outcome of a target pick
type Choice struct {
	Candidate
	PreferFar bool
	Pool      int
}

// TargetSelector scores reachable platforms and draws one from the best few
type TargetSelector struct {
	tun parameter.BrainTuning
	rng *vmath.FastRand

	recent []int
	visits map[int]int
}

func NewTargetSelector(t parameter.BrainTuning, rng *vmath.FastRand) *TargetSelector {
	return &TargetSelector{
		tun:    t,
		rng:    rng,
		visits: make(map[int]int),
	}
}

// Visit counts an arrival and remembers the platform as recent
func (s *TargetSelector) Visit(id int) {
	s.visits[id]++
	s.recent = append(s.recent, id)
	if over := len(s.recent) - s.tun.TargetRecentDepth; over > 0 {
		s.recent = append(s.recent[:0], s.recent[over:]...)
	}
}

func (s *TargetSelector) Visits(id int) int { return s.visits[id] }

// recency returns 1 for the latest recent target down to 1/depth for the oldest, 0 when absent
func (s *TargetSelector) recency(id int) float64 {
	for i := len(s.recent) - 1; i >= 0; i-- {
		if s.recent[i] == id {
			return float64(i+1) / float64(len(s.recent))
		}
	}
	return 0
}

func (s *TargetSelector) meanVisits(nodes []int) float64 {
	if len(nodes) == 0 {
		return 0
	}
	total := 0
	for _, id := range nodes {
		total += s.visits[id]
	}
	return float64(total) / float64(len(nodes))
}

// pickContext is everything scoring reads besides selector history
type pickContext struct {
	graph     *navigation.Graph
	world     world.World
	pose      physics.Pose
	start     navigation.SearchState
	hold      int // Locked or active target, receives hysteresis
	penalties map[int]float64
	now       float64
}

// Score evaluates every candidate for one pick mode, unreachable and out-of-range nodes excluded
func (s *TargetSelector) Score(ctx pickContext, preferFar bool) []Candidate {
	t := s.tun
	sweet := t.TargetSweetDistance
	if preferFar {
		sweet *= t.TargetFarMultiplier
	}

	nodes := ctx.graph.Nodes()
	mean := s.meanVisits(nodes)
	px, feet := ctx.pose.X, ctx.pose.Feet()

	var out []Candidate
	for _, id := range nodes {
		if id == ctx.start.Node {
			continue
		}
		if _, ok := ctx.world.Lookup(id); !ok {
			continue
		}
		r, _ := ctx.graph.Node(id)
		dist := vmath.Dist(px, feet, r.CenterX(), r.Top())
		if dist < t.TargetMinDistance || dist > t.TargetMaxDistance {
			continue
		}
		path, ok := ctx.graph.FindPath(ctx.start, id, ctx.now, ctx.graph.ReachBudget())
		if !ok {
			continue
		}

		z := (dist - sweet) / t.TargetSweetWidth
		score := t.TargetDistanceWeight * math.Exp(-z*z)
		score += t.TargetVerticalWeight * vmath.Clamp((feet-r.Top())/t.TargetSweetWidth, -1, 1)
		score -= t.TargetNoveltyPenalty * s.recency(id)
		score += t.TargetFairnessWeight * (mean - float64(s.visits[id])) / (mean + 1)
		if ctx.world.LineOfSight(px, ctx.pose.Y, r.CenterX(), r.Top()-ctx.pose.HalfH) {
			score += t.TargetSightBonus
		}
		score -= t.TargetComplexityWeight * float64(path.Len())
		score += t.TargetNoiseAmplitude * (2*s.rng.Float64() - 1)
		if id == ctx.hold {
			score += t.TargetHysteresisBonus
		}
		score -= ctx.penalties[id]

		out = append(out, Candidate{Node: id, Score: score, Dist: dist})
	}
	return out
}

// Pick scores candidates and draws one of the top K with softmax weights
func (s *TargetSelector) Pick(ctx pickContext) (Choice, bool) {
	preferFar := s.rng.Float64() < s.tun.TargetPreferFarChance
	cands := s.Score(ctx, preferFar)
	if len(cands) == 0 {
		return Choice{}, false
	}

	sortCandidates(cands)
	pool := cands[:min(len(cands), max(s.tun.TargetTopK, 1))]

	temp := s.tun.TargetTemperatureNear
	if preferFar {
		temp = s.tun.TargetTemperatureFar
	}
	i := softmaxPick(pool, temp, s.rng.Float64())
	return Choice{Candidate: pool[i], PreferFar: preferFar, Pool: len(pool)}, true
}

// Best returns the top near-mode candidate without a random draw
// Rescoring uses it so an active target only changes when the field clearly beats it
func (s *TargetSelector) Best(ctx pickContext) (Candidate, bool) {
	cands := s.Score(ctx, false)
	if len(cands) == 0 {
		return Candidate{}, false
	}
	sortCandidates(cands)
	return cands[0], true
}

// sortCandidates orders by score descending, ties by node id
func sortCandidates(cands []Candidate) {
	slices.SortStableFunc(cands, func(a, b Candidate) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Node, b.Node)
	})
}

// softmaxPick draws an index from scores sorted descending using u in [0,1)
func softmaxPick(pool []Candidate, temp, u float64) int {
	if len(pool) == 1 || temp <= 0 {
		return 0
	}
	top := pool[0].Score
	weights := make([]float64, len(pool))
	total := 0.0
	for i, c := range pool {
		weights[i] = math.Exp((c.Score - top) / temp)
		total += weights[i]
	}
	u *= total
	for i, w := range weights {
		if u < w {
			return i
		}
		u -= w
	}
	return len(pool) - 1
}
