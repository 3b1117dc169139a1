package network

import (
	"context"
	"errors"
	"fmt"

	"citnet/internal/graphalg"
)

// Scope selects which link lists snowball sampling follows.
type Scope string

const (
	ScopeCitation  Scope = "cit"
	ScopeReference Scope = "ref"
	ScopeBoth      Scope = "cit+ref"
)

// Measure selects the similarity relation for semantic edges.
type Measure string

const (
	MeasureCocitation Measure = "cocit"
	MeasureCoupling   Measure = "bibcp"
)

// Argument errors.
var (
	ErrInvalidScope   = errors.New("invalid snowball scope")
	ErrInvalidMeasure = errors.New("invalid similarity measure")
)

// Edge is one directed, weighted edge between two member bibcodes.
type Edge struct {
	Source string
	Target string
	Weight int
}

type pairKey struct {
	source, target string
}

// Network is a citation network under construction: a set of
// publication nodes and an ordered edge list. It is not safe for
// concurrent use; sampling issues one provider fetch at a time.
type Network struct {
	provider Provider
	nodes    map[string]*Node
	order    []string // insertion order, fixes vertex indices
	edges    []Edge
	pairs    map[pairKey]struct{}

	dropSelfCitations bool
	logf              func(format string, args ...any)
}

// Option configures a Network.
type Option func(*Network)

// WithSelfCitationFilter drops regular edges whose endpoints share the
// same first author under the fuzzy identity check.
func WithSelfCitationFilter() Option {
	return func(n *Network) {
		n.dropSelfCitations = true
	}
}

// WithLogf sets a progress log function. The default discards output.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(n *Network) {
		n.logf = logf
	}
}

// New creates an empty citation network backed by the given provider.
func New(provider Provider, opts ...Option) *Network {
	n := &Network{
		provider: provider,
		nodes:    make(map[string]*Node),
		pairs:    make(map[pairKey]struct{}),
		logf:     func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Nodes returns the member nodes in insertion order.
func (n *Network) Nodes() []*Node {
	out := make([]*Node, len(n.order))
	for i, bc := range n.order {
		out[i] = n.nodes[bc]
	}
	return out
}

// Edges returns a copy of the edge list in insertion order.
func (n *Network) Edges() []Edge {
	return append([]Edge(nil), n.edges...)
}

// Node returns the member with the given bibcode, or nil.
func (n *Network) Node(bibcode string) *Node {
	return n.nodes[bibcode]
}

// HasNode reports whether the bibcode is a network member.
func (n *Network) HasNode(bibcode string) bool {
	_, ok := n.nodes[bibcode]
	return ok
}

// HasEdge reports whether the exact edge triple is present.
func (n *Network) HasEdge(e Edge) bool {
	for _, have := range n.edges {
		if have == e {
			return true
		}
	}
	return false
}

// AddNode fetches the bibcode's record and adds it as a member.
// Adding an existing member is a no-op and does not hit the provider.
func (n *Network) AddNode(ctx context.Context, bibcode string) error {
	if n.HasNode(bibcode) {
		return nil
	}
	node, err := NewNode(ctx, n.provider, bibcode)
	if err != nil {
		return err
	}
	n.InsertNode(node)
	return nil
}

// InsertNode adds an already constructed node, ignoring duplicates.
// Storage uses it to restore loaded networks without provider calls.
func (n *Network) InsertNode(node *Node) {
	if n.HasNode(node.Bibcode) {
		return
	}
	n.nodes[node.Bibcode] = node
	n.order = append(n.order, node.Bibcode)
}

// AddEdge appends an edge. Duplicate ordered pairs are ignored: the
// first inserted weight wins and no error is raised.
func (n *Network) AddEdge(e Edge) {
	key := pairKey{e.Source, e.Target}
	if _, ok := n.pairs[key]; ok {
		return
	}
	n.pairs[key] = struct{}{}
	n.edges = append(n.edges, e)
}

// ClearEdges discards the edge list.
func (n *Network) ClearEdges() {
	n.edges = nil
	n.pairs = make(map[pairKey]struct{})
}

// SampleJudgement adds each bibcode as a judgement-sample node. Fetch
// failures abort the pass and surface to the caller.
func (n *Network) SampleJudgement(ctx context.Context, bibcodes []string) error {
	for _, bc := range bibcodes {
		n.logf("sampling %s", bc)
		if n.HasNode(bc) {
			n.logf("%s already in network, skipping", bc)
			continue
		}
		node, err := NewNode(ctx, n.provider, bc)
		if err != nil {
			return fmt.Errorf("sampling %s: %w", bc, err)
		}
		node.Judgement = true
		n.InsertNode(node)
	}
	return nil
}

// SampleSnowball extends the network by following the citation and/or
// reference links of current members, restricted to bibcodes whose
// 4-character year prefix lies within [startYear, endYear] (string
// comparison, inclusive). Fetch failures during expansion are logged
// and skipped so one bad identifier does not void the whole sample.
func (n *Network) SampleSnowball(ctx context.Context, scope Scope, startYear, endYear string) error {
	switch scope {
	case ScopeCitation, ScopeReference, ScopeBoth:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidScope, scope)
	}

	queue := n.snowballQueue(scope, startYear, endYear)
	n.logf("snowball queue holds %d new bibcodes", len(queue))

	for _, bc := range queue {
		n.logf("sampling %s", bc)
		node, err := NewNode(ctx, n.provider, bc)
		if err != nil {
			n.logf("skipping %s: %v", bc, err)
			continue
		}
		n.InsertNode(node)
	}
	return nil
}

// snowballQueue scans current members and collects the year-filtered,
// not-yet-member bibcodes to expand into.
func (n *Network) snowballQueue(scope Scope, startYear, endYear string) []string {
	var queue []string
	queued := make(map[string]bool)

	enqueue := func(bibcodes []string) {
		for _, bc := range bibcodes {
			if queued[bc] || n.HasNode(bc) || !yearInRange(bc, startYear, endYear) {
				continue
			}
			queued[bc] = true
			queue = append(queue, bc)
		}
	}

	for _, member := range n.order {
		node := n.nodes[member]
		if scope == ScopeCitation || scope == ScopeBoth {
			enqueue(node.CitationBibcodes)
		}
		if scope == ScopeReference || scope == ScopeBoth {
			enqueue(node.ReferenceBibcodes)
		}
	}
	return queue
}

// yearInRange checks the 4-character year prefix of a bibcode against
// a closed interval.
func yearInRange(bibcode, startYear, endYear string) bool {
	if len(bibcode) < 4 {
		return false
	}
	year := bibcode[:4]
	return year >= startYear && year <= endYear
}

// MakeRegularEdges emits one zero-weight edge per in-network citation
// link, directed from the citing work to the cited work. Existing
// edges are kept; callers regenerate by clearing first.
func (n *Network) MakeRegularEdges() {
	for _, member := range n.order {
		node := n.nodes[member]
		for _, bc := range node.CitationBibcodes {
			citer := n.nodes[bc]
			if citer == nil || n.isSelfCitation(citer, node) {
				continue
			}
			n.AddEdge(Edge{Source: bc, Target: node.Bibcode})
		}
		for _, bc := range node.ReferenceBibcodes {
			cited := n.nodes[bc]
			if cited == nil || n.isSelfCitation(node, cited) {
				continue
			}
			n.AddEdge(Edge{Source: node.Bibcode, Target: bc})
		}
	}
}

// isSelfCitation applies the opt-in fuzzy first-author filter.
func (n *Network) isSelfCitation(citer, cited *Node) bool {
	if !n.dropSelfCitations {
		return false
	}
	a, b := citer.FirstAuthor(), cited.FirstAuthor()
	return a != "" && b != "" && AuthorIsSame(a, b)
}

// MakeSemsimEdges replaces the edge list with similarity edges: one
// edge per unordered member pair whose cocitation or bibliographic
// coupling count is positive, weighted by that count. Only the lower
// triangle of the similarity matrix is scanned, so each pair appears
// once, oriented from the earlier-inserted member to the later one.
func (n *Network) MakeSemsimEdges(measure Measure) error {
	if measure != MeasureCocitation && measure != MeasureCoupling {
		return fmt.Errorf("%w: %q", ErrInvalidMeasure, measure)
	}
	if len(n.order) == 0 {
		n.ClearEdges()
		return nil
	}

	n.ClearEdges()
	n.MakeRegularEdges()
	g := n.buildGraph()

	var matrix [][]int
	if measure == MeasureCocitation {
		matrix = graphalg.CocitationMatrix(g)
	} else {
		matrix = graphalg.CouplingMatrix(g)
	}

	n.ClearEdges()
	for i := 1; i < len(n.order); i++ {
		for j := 0; j < i; j++ {
			if w := matrix[i][j]; w > 0 {
				n.AddEdge(Edge{Source: n.order[j], Target: n.order[i], Weight: w})
			}
		}
	}
	return nil
}

// AssignModularity partitions the network over its current edge list
// with a single-trial Infomap run and stores each node's zero-based
// module index. An empty edge list is the degenerate single-module
// partition: every node gets community 0.
func (n *Network) AssignModularity() {
	if len(n.edges) == 0 {
		for _, node := range n.nodes {
			node.ModularityID = 0
		}
		return
	}

	modules := graphalg.InfomapPartition(n.buildGraph(), 1)
	for id, module := range modules {
		for _, v := range module {
			n.nodes[n.order[v]].ModularityID = id
		}
	}
}

// buildGraph constructs the directed graph of current members and
// edges for the graph algorithm layer.
func (n *Network) buildGraph() *graphalg.Graph {
	g := graphalg.NewGraph(n.order)
	for _, e := range n.edges {
		g.SetArc(e.Source, e.Target)
	}
	return g
}
