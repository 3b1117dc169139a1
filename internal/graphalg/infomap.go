package graphalg

import (
	"math"
	"sort"
)

// Module is one community of a partition, as a set of vertex indices.
type Module []int

const (
	damping       = 0.85
	teleport      = 1 - damping
	rankTolerance = 1e-12
	maxRankIters  = 1000
	maxSweeps     = 100
	moveTolerance = 1e-12
)

// InfomapPartition partitions the graph's vertices into modules by
// greedy minimization of the two-level map equation. Vertex visit
// rates come from a power iteration with uniform teleportation;
// teleportation flow is recorded in module exit rates. The optimizer
// is deterministic, so additional trials beyond the first are
// redundant and the trials argument is accepted for interface parity
// only. Modules are ordered by their smallest vertex index.
func InfomapPartition(gr *Graph, trials int) []Module {
	n := gr.Order()
	if n == 0 {
		return nil
	}

	p := gr.visitRates()
	assign := make([]int, n)
	for i := range assign {
		assign[i] = i
	}

	cost := gr.mapEquation(p, assign)
	for sweep := 0; sweep < maxSweeps; sweep++ {
		moved := false
		for i := 0; i < n; i++ {
			best, bestCost := -1, cost
			for _, m := range gr.candidateModules(assign, i) {
				old := assign[i]
				assign[i] = m
				c := gr.mapEquation(p, assign)
				assign[i] = old
				if c < bestCost-moveTolerance {
					best, bestCost = m, c
				}
			}
			if best >= 0 {
				assign[i] = best
				cost = bestCost
				moved = true
			}
		}
		if !moved {
			break
		}
	}

	return collectModules(assign)
}

// visitRates computes stationary visit rates by power iteration with
// damping; the link mass of dangling vertices teleports uniformly.
func (gr *Graph) visitRates() []float64 {
	n := gr.Order()
	p := make([]float64, n)
	for i := range p {
		p[i] = 1 / float64(n)
	}

	next := make([]float64, n)
	for iter := 0; iter < maxRankIters; iter++ {
		for i := range next {
			next[i] = teleport / float64(n)
		}
		for i := 0; i < n; i++ {
			out := gr.outNeighbors(i)
			if len(out) == 0 {
				share := damping * p[i] / float64(n)
				for j := range next {
					next[j] += share
				}
				continue
			}
			share := damping * p[i] / float64(len(out))
			for _, j := range out {
				next[j] += share
			}
		}
		var delta float64
		for i := range p {
			delta += math.Abs(next[i] - p[i])
		}
		copy(p, next)
		if delta < rankTolerance {
			break
		}
	}
	return p
}

// mapEquation evaluates the two-level map equation for the given
// module assignment.
func (gr *Graph) mapEquation(p []float64, assign []int) float64 {
	n := gr.Order()

	members := make(map[int][]int)
	for i, m := range assign {
		members[m] = append(members[m], i)
	}

	// Module exit rates, with teleportation flow recorded.
	exit := make(map[int]float64, len(members))
	var exitTotal float64
	for m, verts := range members {
		outside := float64(n-len(verts)) / float64(n)
		var q float64
		for _, i := range verts {
			out := gr.outNeighbors(i)
			var link float64
			if len(out) == 0 {
				link = damping * outside
			} else {
				external := 0
				for _, j := range out {
					if assign[j] != m {
						external++
					}
				}
				link = damping * float64(external) / float64(len(out))
			}
			q += p[i] * (teleport*outside + link)
		}
		exit[m] = q
		exitTotal += q
	}

	var cost float64

	// Index codebook.
	if exitTotal > 1e-15 {
		var h float64
		for _, q := range exit {
			h -= plogp(q / exitTotal)
		}
		cost += exitTotal * h
	}

	// Per-module codebooks.
	for m, verts := range members {
		s := exit[m]
		for _, i := range verts {
			s += p[i]
		}
		if s <= 1e-15 {
			continue
		}
		h := -plogp(exit[m] / s)
		for _, i := range verts {
			h -= plogp(p[i] / s)
		}
		cost += s * h
	}

	return cost
}

// candidateModules returns the modules of i's in- and out-neighbors,
// excluding its own, in deterministic order.
func (gr *Graph) candidateModules(assign []int, i int) []int {
	seen := make(map[int]bool)
	for _, j := range gr.outNeighbors(i) {
		if assign[j] != assign[i] {
			seen[assign[j]] = true
		}
	}
	for _, j := range gr.inNeighbors(i) {
		if assign[j] != assign[i] {
			seen[assign[j]] = true
		}
	}
	mods := make([]int, 0, len(seen))
	for m := range seen {
		mods = append(mods, m)
	}
	sort.Ints(mods)
	return mods
}

// collectModules renumbers module labels by smallest member index and
// groups vertices per module.
func collectModules(assign []int) []Module {
	order := make([]int, 0)
	remap := make(map[int]int)
	for i, m := range assign {
		if _, ok := remap[m]; !ok {
			remap[m] = len(order)
			order = append(order, i)
		}
	}
	modules := make([]Module, len(order))
	for i, m := range assign {
		id := remap[m]
		modules[id] = append(modules[id], i)
	}
	return modules
}

func plogp(x float64) float64 {
	if x <= 1e-15 {
		return 0
	}
	return x * math.Log2(x)
}
