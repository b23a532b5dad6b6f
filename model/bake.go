package model

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/gohmm/core"
	"github.com/katalvlaran/gohmm/dist"
	"github.com/katalvlaran/gohmm/internal/logspace"
)

// workTransition is the mutable working copy of a core.Transition used
// during the bake pipeline: probability is carried in log space from
// the start so every later stage (normalization, merge, CSR emission)
// operates in one numeric domain.
type workTransition struct {
	from, to int
	logP     float64
	pc       float64
}

// baker drives the eight-step bake pipeline over a private mutable copy
// of the builder's states and transitions, grounded on the "runner"
// struct pattern used for the package's own algorithms: init (the
// constructor below) populates private state, and each pipeline stage
// is a method that mutates it in place.
type baker struct {
	cfg   *bakeConfig
	name  string
	start int
	end   int

	states map[int]*core.State
	trans  []*workTransition
}

// Bake compiles b into an immutable Model by running the deterministic
// eight-step pipeline: orphan pruning, outgoing normalization, silent
// merge, silent-cycle check, ordering, tie discovery, CSR construction
// and state-weight precomputation.
func Bake(b *core.Builder, opts ...BakeOption) (*Model, error) {
	cfg := defaultBakeConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("model: Bake: %w", err)
	}

	bk := &baker{
		cfg:    cfg,
		name:   b.Name,
		start:  b.Start,
		end:    b.End,
		states: make(map[int]*core.State),
	}
	for _, s := range b.States() {
		bk.states[s.ID] = s
	}
	for _, t := range b.Transitions() {
		bk.trans = append(bk.trans, &workTransition{from: t.From, to: t.To, logP: safeLog(t.Probability), pc: t.Pseudocount})
	}

	bk.pruneOrphans()
	if len(bk.states) == 0 {
		return nil, &StructuralError{Op: "Bake", Err: ErrEmptyModel}
	}
	if _, ok := bk.states[bk.start]; !ok {
		return nil, &StructuralError{Op: "Bake", Err: ErrNoStartOrEnd}
	}
	if _, ok := bk.states[bk.end]; !ok {
		return nil, &StructuralError{Op: "Bake", Err: ErrNoStartOrEnd}
	}

	bk.normalizeOutgoing()
	bk.mergeSilent()

	emitting, silent, err := bk.order()
	if err != nil {
		return nil, err
	}

	return bk.compile(emitting, silent), nil
}

func safeLog(p float64) float64 {
	if p <= 0 {
		return logspace.NegInf
	}
	return math.Log(p)
}

// roundTo8 rounds x to eight decimal places, per spec's normalization
// tolerance.
func roundTo8(x float64) float64 {
	const scale = 1e8
	return math.Round(x*scale) / scale
}

// Step 1: iteratively remove any state other than start/end with zero
// in-degree or zero out-degree, until a fixed point is reached.
func (bk *baker) pruneOrphans() {
	for {
		outDeg := make(map[int]int, len(bk.states))
		inDeg := make(map[int]int, len(bk.states))
		for _, t := range bk.trans {
			if _, ok := bk.states[t.from]; !ok {
				continue
			}
			if _, ok := bk.states[t.to]; !ok {
				continue
			}
			outDeg[t.from]++
			inDeg[t.to]++
		}

		removedAny := false
		for id := range bk.states {
			if id == bk.start || id == bk.end {
				continue
			}
			if outDeg[id] == 0 || inDeg[id] == 0 {
				delete(bk.states, id)
				removedAny = true
			}
		}
		if !removedAny {
			return
		}

		filtered := bk.trans[:0]
		for _, t := range bk.trans {
			_, okFrom := bk.states[t.from]
			_, okTo := bk.states[t.to]
			if okFrom && okTo {
				filtered = append(filtered, t)
			}
		}
		bk.trans = filtered
	}
}

func (bk *baker) outAdjacency() map[int][]*workTransition {
	m := make(map[int][]*workTransition, len(bk.states))
	for _, t := range bk.trans {
		m[t.from] = append(m[t.from], t)
	}
	return m
}

func (bk *baker) inAdjacency() map[int][]*workTransition {
	m := make(map[int][]*workTransition, len(bk.states))
	for _, t := range bk.trans {
		m[t.to] = append(m[t.to], t)
	}
	return m
}

// Step 2: for each state other than end, rescale its outgoing
// log-probabilities so exp(sum) rounds to exactly 1.
func (bk *baker) normalizeOutgoing() {
	out := bk.outAdjacency()
	for id := range bk.states {
		if id == bk.end {
			continue
		}
		edges := out[id]
		if len(edges) == 0 {
			continue
		}
		var sum float64
		for _, t := range edges {
			sum += math.Exp(t.logP)
		}
		z := roundTo8(sum)
		if z != 1 && z > 0 {
			logZ := math.Log(z)
			for _, t := range edges {
				t.logP -= logZ
			}
		}
	}
}

// Step 3: collapse probability-1 edges out of a silent, non-start
// source into its target, redirecting every incoming edge of the
// source into the target, until no further collapse applies.
func (bk *baker) mergeSilent() {
	if bk.cfg.merge == MergeNone {
		return
	}
	for {
		out := bk.outAdjacency()
		in := bk.inAdjacency()

		var collapsedFrom, collapsedInto int
		var collapseEdge *workTransition
		found := false

		// Deterministic scan order: ascending source ID.
		ids := make([]int, 0, len(bk.states))
		for id := range bk.states {
			ids = append(ids, id)
		}
		sort.Ints(ids)

		for _, a := range ids {
			if a == bk.start {
				continue
			}
			sa := bk.states[a]
			if sa.Distribution != nil {
				continue // a must be silent
			}
			edges := append([]*workTransition(nil), out[a]...)
			sort.Slice(edges, func(i, j int) bool { return edges[i].to < edges[j].to })
			for _, e := range edges {
				if e.logP != 0 { // not a probability-1 edge
					continue
				}
				if e.to == bk.end || e.to == a {
					continue
				}
				target := bk.states[e.to]
				if bk.cfg.merge == MergePartial && target.Distribution != nil {
					continue // partial requires the target silent too
				}
				collapsedFrom, collapsedInto, collapseEdge = a, e.to, e
				found = true
				break
			}
			if found {
				break
			}
		}

		if !found {
			return
		}
		bk.collapse(collapsedFrom, collapsedInto, collapseEdge, in)
	}
}

// collapse redirects every edge incoming to `from` into `into`,
// carrying the original weight and the larger of the two pseudocounts,
// then deletes `from` and every transition touching it.
func (bk *baker) collapse(from, into int, collapseEdge *workTransition, in map[int][]*workTransition) {
	for _, e := range in[from] {
		if e.from == from {
			continue // a self-loop on the collapsed state carries nothing useful forward
		}
		pc := e.pc
		if collapseEdge.pc > pc {
			pc = collapseEdge.pc
		}
		bk.trans = append(bk.trans, &workTransition{from: e.from, to: into, logP: e.logP, pc: pc})
	}

	delete(bk.states, from)
	filtered := bk.trans[:0]
	for _, t := range bk.trans {
		if t.from == from || t.to == from {
			continue
		}
		filtered = append(filtered, t)
	}
	bk.trans = filtered
}

// Step 5 (and step 4's cycle check, folded in): partition surviving
// states into emitting (ascending ID, a stable order) and silent
// (topological order), returning ErrSilentCycle under RejectCycles if
// the silent-state subgraph is not acyclic.
func (bk *baker) order() (emitting, silent []int, err error) {
	for id, s := range bk.states {
		if s.Distribution == nil {
			silent = append(silent, id)
		} else {
			emitting = append(emitting, id)
		}
	}
	sort.Ints(emitting)

	topo, cyclic := bk.topoSortSilent(silent)
	if !cyclic {
		return emitting, topo, nil
	}

	if bk.cfg.cyclePolicy == RejectCycles {
		return nil, nil, &StructuralError{Op: "Bake", Err: ErrSilentCycle}
	}
	bk.cfg.logger.Warn("model: silent-state cycle detected, continuing with non-topological order")
	sort.Ints(silent)
	return emitting, silent, nil
}

// topoSortSilent runs Kahn's algorithm over the subgraph induced by
// silent states, picking the smallest-ID ready node at each step so the
// result is deterministic. Returns cyclic=true if not every silent
// state could be ordered.
func (bk *baker) topoSortSilent(silent []int) (order []int, cyclic bool) {
	inSilent := make(map[int]bool, len(silent))
	for _, id := range silent {
		inSilent[id] = true
	}

	inDeg := make(map[int]int, len(silent))
	adj := make(map[int][]int, len(silent))
	for _, id := range silent {
		inDeg[id] = 0
	}
	for _, t := range bk.trans {
		if inSilent[t.from] && inSilent[t.to] {
			adj[t.from] = append(adj[t.from], t.to)
			inDeg[t.to]++
		}
	}

	ready := make([]int, 0, len(silent))
	for _, id := range silent {
		if inDeg[id] == 0 {
			ready = append(ready, id)
		}
	}

	out := make([]int, 0, len(silent))
	for len(ready) > 0 {
		sort.Ints(ready)
		id := ready[0]
		ready = ready[1:]
		out = append(out, id)
		for _, next := range adj[id] {
			inDeg[next]--
			if inDeg[next] == 0 {
				ready = append(ready, next)
			}
		}
	}

	if len(out) != len(silent) {
		return nil, true
	}
	return out, false
}

// Steps 6-8: assign final indices, build CSR out/in edge tables, tie
// table and state-log-weight vector.
func (bk *baker) compile(emitting, silent []int) *Model {
	n := len(emitting) + len(silent)
	finalIndex := make(map[int]int, n)
	states := make([]StateInfo, n)

	for i, id := range emitting {
		finalIndex[id] = i
		s := bk.states[id]
		states[i] = StateInfo{Name: s.Name, Weight: s.Weight, Distribution: s.Distribution}
	}
	silentStart := len(emitting)
	for i, id := range silent {
		finalIndex[id] = silentStart + i
		s := bk.states[id]
		states[silentStart+i] = StateInfo{Name: s.Name, Weight: s.Weight}
	}

	out := make([][]*workTransition, n)
	in := make([][]*workTransition, n)
	for _, t := range bk.trans {
		fi, fok := finalIndex[t.from]
		ti, tok := finalIndex[t.to]
		if !fok || !tok {
			continue
		}
		out[fi] = append(out[fi], t)
		in[ti] = append(in[ti], t)
	}

	m := &Model{
		Name:        bk.name,
		States:      states,
		SilentStart: silentStart,
		StartIndex:  finalIndex[bk.start],
		EndIndex:    finalIndex[bk.end],
	}

	m.OutOffset = make([]int, n+1)
	m.InOffset = make([]int, n+1)
	for i := 0; i < n; i++ {
		sort.Slice(out[i], func(a, b int) bool { return finalIndex[out[i][a].to] < finalIndex[out[i][b].to] })
		sort.Slice(in[i], func(a, b int) bool { return finalIndex[in[i][a].from] < finalIndex[in[i][b].from] })

		m.OutOffset[i+1] = m.OutOffset[i] + len(out[i])
		for _, t := range out[i] {
			m.OutTarget = append(m.OutTarget, finalIndex[t.to])
			m.OutLogP = append(m.OutLogP, t.logP)
			m.OutPC = append(m.OutPC, t.pc)
		}

		m.InOffset[i+1] = m.InOffset[i] + len(in[i])
		for _, t := range in[i] {
			m.InSource = append(m.InSource, finalIndex[t.from])
			m.InLogP = append(m.InLogP, t.logP)
			m.InPC = append(m.InPC, t.pc)
		}
	}

	m.Finite = m.InDegree(m.EndIndex) > 0

	m.TieOffset = make([]int, silentStart+1)
	tieGroups := make(map[dist.Distribution][]int, silentStart)
	for i := 0; i < silentStart; i++ {
		d := states[i].Distribution
		tieGroups[d] = append(tieGroups[d], i)
	}
	for i := 0; i < silentStart; i++ {
		for _, j := range tieGroups[states[i].Distribution] {
			if j != i {
				m.TieMember = append(m.TieMember, j)
			}
		}
		m.TieOffset[i+1] = len(m.TieMember)
	}

	m.StateLogWeight = make([]float64, silentStart)
	for i := 0; i < silentStart; i++ {
		m.StateLogWeight[i] = math.Log(states[i].Weight)
	}

	return m
}
