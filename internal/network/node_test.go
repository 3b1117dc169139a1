package network

import (
	"context"
	"testing"

	"citnet/internal/ads"
)

func TestNewNode(t *testing.T) {
	provider := toyProvider()
	node, err := NewNode(context.Background(), provider, seedBibcode)
	if err != nil {
		t.Fatalf("NewNode: %v", err)
	}

	if node.Bibcode != seedBibcode {
		t.Errorf("Bibcode = %q, want %q", node.Bibcode, seedBibcode)
	}
	if node.Year != "1968" {
		t.Errorf("Year = %q, want 1968", node.Year)
	}
	if want := "On the activity of galactic nuclei (introductory lecture)"; node.Title != want {
		t.Errorf("Title = %q, want %q", node.Title, want)
	}
	if want := "Ambartsumian, V. A."; node.Authors() != want {
		t.Errorf("Authors() = %q, want %q", node.Authors(), want)
	}
	if node.Judgement {
		t.Error("fresh node flagged as judgement sample")
	}
	if node.ModularityID != 0 {
		t.Errorf("ModularityID = %d, want unset 0", node.ModularityID)
	}
}

func TestNewNodeNotFound(t *testing.T) {
	provider := toyProvider()
	_, err := NewNode(context.Background(), provider, "1900Zz.....00..000Z")
	if !ads.IsNotFound(err) {
		t.Errorf("err = %v, want not-found", err)
	}
}

func TestNewNodeFromRecordNormalizesNilLists(t *testing.T) {
	node := NewNodeFromRecord(&ads.Record{Bibcode: ref1963, Year: "1963"})

	if node.CitationBibcodes == nil || len(node.CitationBibcodes) != 0 {
		t.Errorf("CitationBibcodes = %v, want empty non-nil", node.CitationBibcodes)
	}
	if node.ReferenceBibcodes == nil || len(node.ReferenceBibcodes) != 0 {
		t.Errorf("ReferenceBibcodes = %v, want empty non-nil", node.ReferenceBibcodes)
	}
}

func TestNewNodeFromRecordJoinsTitleParts(t *testing.T) {
	node := NewNodeFromRecord(&ads.Record{
		Bibcode: cit2012,
		Title:   []string{"Fifty Years of Quasars", "From Early Observations to Future Research"},
	})
	want := "Fifty Years of Quasars; From Early Observations to Future Research"
	if node.Title != want {
		t.Errorf("Title = %q, want %q", node.Title, want)
	}
}

func TestCitationNodes(t *testing.T) {
	provider := toyProvider()
	node, err := NewNode(context.Background(), provider, seedBibcode)
	if err != nil {
		t.Fatalf("NewNode: %v", err)
	}

	var got []string
	for cit, err := range node.CitationNodes(context.Background(), provider) {
		if err != nil {
			t.Fatalf("citation fetch: %v", err)
		}
		got = append(got, cit.Bibcode)
	}

	want := []string{cit2012, cit2010, cit2008, cit1975}
	if !equalStrings(got, want) {
		t.Errorf("citation bibcodes = %v, want %v", got, want)
	}
}

func TestReferenceNodes(t *testing.T) {
	provider := toyProvider()
	node, err := NewNode(context.Background(), provider, seedBibcode)
	if err != nil {
		t.Fatalf("NewNode: %v", err)
	}

	var got []string
	for ref, err := range node.ReferenceNodes(context.Background(), provider) {
		if err != nil {
			t.Fatalf("reference fetch: %v", err)
		}
		got = append(got, ref.Bibcode)
	}

	if !equalStrings(got, []string{ref1963}) {
		t.Errorf("reference bibcodes = %v, want [%s]", got, ref1963)
	}
}

func TestNodeSequencesAreLazyAndRestartable(t *testing.T) {
	provider := toyProvider()
	node, err := NewNode(context.Background(), provider, seedBibcode)
	if err != nil {
		t.Fatalf("NewNode: %v", err)
	}
	base := provider.fetches

	seq := node.CitationNodes(context.Background(), provider)

	// Building the sequence fetches nothing.
	if provider.fetches != base {
		t.Fatalf("sequence construction fetched %d records", provider.fetches-base)
	}

	// Early break stops fetching.
	for range seq {
		break
	}
	if got := provider.fetches - base; got != 1 {
		t.Errorf("fetches after early break = %d, want 1", got)
	}

	// Re-consumption re-issues the fetches.
	for _, err := range seq {
		if err != nil {
			t.Fatalf("citation fetch: %v", err)
		}
	}
	if got := provider.fetches - base; got != 5 {
		t.Errorf("fetches after full re-iteration = %d, want 5", got)
	}
}

func TestNodeSequenceSurfacesErrors(t *testing.T) {
	provider := toyProvider()
	node, err := NewNode(context.Background(), provider, seedBibcode)
	if err != nil {
		t.Fatalf("NewNode: %v", err)
	}
	node.CitationBibcodes = append(node.CitationBibcodes, "1999Bad....1....1X")

	var notFound int
	for _, err := range node.CitationNodes(context.Background(), provider) {
		if ads.IsNotFound(err) {
			notFound++
		}
	}
	if notFound != 1 {
		t.Errorf("not-found yields = %d, want 1", notFound)
	}
}
