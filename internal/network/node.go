// Package network implements the citation network model: publication
// nodes, judgement and snowball sampling, edge generation and
// community assignment.
package network

import (
	"context"
	"iter"
	"strings"

	"citnet/internal/ads"
)

// Provider fetches one publication record per bibcode. The ads.Client
// satisfies this; tests use an in-memory fake.
type Provider interface {
	Fetch(ctx context.Context, bibcode string) (*ads.Record, error)
}

// Node is one publication in the network.
type Node struct {
	Bibcode           string
	Year              string
	AuthorList        []string // "Last, First" per entry
	Title             string
	CitationBibcodes  []string // works citing this one
	ReferenceBibcodes []string // works this one cites
	ModularityID      int
	Judgement         bool
}

// NewNode fetches the record for the given bibcode and wraps it.
func NewNode(ctx context.Context, provider Provider, bibcode string) (*Node, error) {
	rec, err := provider.Fetch(ctx, bibcode)
	if err != nil {
		return nil, err
	}
	return NewNodeFromRecord(rec), nil
}

// NewNodeFromRecord wraps an already fetched record without a
// provider call.
func NewNodeFromRecord(rec *ads.Record) *Node {
	return &Node{
		Bibcode:           rec.Bibcode,
		Year:              rec.Year,
		AuthorList:        nonNil(rec.Author),
		Title:             rec.JoinedTitle(),
		CitationBibcodes:  nonNil(rec.Citation),
		ReferenceBibcodes: nonNil(rec.Reference),
	}
}

// Authors returns the author list joined into a single string.
func (n *Node) Authors() string {
	return strings.Join(n.AuthorList, "; ")
}

// FirstAuthor returns the first author name, or "" for anonymous works.
func (n *Node) FirstAuthor() string {
	if len(n.AuthorList) == 0 {
		return ""
	}
	return n.AuthorList[0]
}

// CitationNodes returns a lazy sequence of the works citing this one.
// Each full iteration re-issues one provider fetch per bibcode.
func (n *Node) CitationNodes(ctx context.Context, provider Provider) iter.Seq2[*Node, error] {
	return nodeSeq(ctx, provider, n.CitationBibcodes)
}

// ReferenceNodes returns a lazy sequence of the works this one cites.
func (n *Node) ReferenceNodes(ctx context.Context, provider Provider) iter.Seq2[*Node, error] {
	return nodeSeq(ctx, provider, n.ReferenceBibcodes)
}

// nodeSeq builds a restartable sequence of nodes fetched on demand.
func nodeSeq(ctx context.Context, provider Provider, bibcodes []string) iter.Seq2[*Node, error] {
	return func(yield func(*Node, error) bool) {
		for _, bc := range bibcodes {
			node, err := NewNode(ctx, provider, bc)
			if !yield(node, err) {
				return
			}
		}
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
