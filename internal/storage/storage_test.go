package storage

import (
	"math"
	"path/filepath"
	"testing"

	"citnet/internal/network"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testNetwork() *network.Network {
	net := network.New(nil)
	net.InsertNode(&network.Node{
		Bibcode:           "1968IAUS...29...11A",
		Year:              "1968",
		AuthorList:        []string{"Ambartsumian, V. A."},
		Title:             "On the activity of galactic nuclei",
		CitationBibcodes:  []string{"2012ASSL..386...11D", "1975NW.....62..309F"},
		ReferenceBibcodes: []string{"1963RvMP...35..947B"},
		ModularityID:      1,
		Judgement:         true,
	})
	net.InsertNode(&network.Node{
		Bibcode:           "1963RvMP...35..947B",
		Year:              "1963",
		AuthorList:        []string{"Burbidge, G.", "Burbidge, E. M."},
		Title:             "Extragalactic Radio Sources",
		CitationBibcodes:  []string{"1968IAUS...29...11A"},
		ReferenceBibcodes: []string{},
		ModularityID:      2,
	})
	net.AddEdge(network.Edge{Source: "1968IAUS...29...11A", Target: "1963RvMP...35..947B", Weight: 0})
	net.AddEdge(network.Edge{Source: "1963RvMP...35..947B", Target: "1968IAUS...29...11A", Weight: 3})
	return net
}

func TestSaveLoadRoundTrip(t *testing.T) {
	db := openTestDB(t)
	if err := db.SaveNetwork(testNetwork(), SaveOptions{}); err != nil {
		t.Fatalf("SaveNetwork: %v", err)
	}

	loaded := network.New(nil)
	if err := db.LoadNetwork(loaded); err != nil {
		t.Fatalf("LoadNetwork: %v", err)
	}

	want := testNetwork()
	gotNodes, wantNodes := loaded.Nodes(), want.Nodes()
	if len(gotNodes) != len(wantNodes) {
		t.Fatalf("loaded %d nodes, want %d", len(gotNodes), len(wantNodes))
	}
	for i, got := range gotNodes {
		w := wantNodes[i]
		if got.Bibcode != w.Bibcode || got.Year != w.Year || got.Title != w.Title {
			t.Errorf("node %d = %+v, want %+v", i, got, w)
		}
		if got.Authors() != w.Authors() {
			t.Errorf("node %s authors = %q, want %q", got.Bibcode, got.Authors(), w.Authors())
		}
		if !equalStrings(got.CitationBibcodes, w.CitationBibcodes) {
			t.Errorf("node %s citations = %v, want %v", got.Bibcode, got.CitationBibcodes, w.CitationBibcodes)
		}
		if !equalStrings(got.ReferenceBibcodes, w.ReferenceBibcodes) {
			t.Errorf("node %s references = %v, want %v", got.Bibcode, got.ReferenceBibcodes, w.ReferenceBibcodes)
		}
		if got.ModularityID != w.ModularityID || got.Judgement != w.Judgement {
			t.Errorf("node %s modularity/judgement = %d/%v, want %d/%v",
				got.Bibcode, got.ModularityID, got.Judgement, w.ModularityID, w.Judgement)
		}
	}

	gotEdges, wantEdges := loaded.Edges(), want.Edges()
	if len(gotEdges) != len(wantEdges) {
		t.Fatalf("loaded %d edges, want %d", len(gotEdges), len(wantEdges))
	}
	for i, got := range gotEdges {
		if got != wantEdges[i] {
			t.Errorf("edge %d = %+v, want %+v", i, got, wantEdges[i])
		}
	}
}

func TestSaveReplacesPreviousContents(t *testing.T) {
	db := openTestDB(t)
	if err := db.SaveNetwork(testNetwork(), SaveOptions{}); err != nil {
		t.Fatalf("first SaveNetwork: %v", err)
	}

	small := network.New(nil)
	small.InsertNode(&network.Node{Bibcode: "2010Ap.....53...42H", Year: "2010"})
	if err := db.SaveNetwork(small, SaveOptions{}); err != nil {
		t.Fatalf("second SaveNetwork: %v", err)
	}

	nodes, err := db.CountNodes()
	if err != nil {
		t.Fatalf("CountNodes: %v", err)
	}
	if nodes != 1 {
		t.Errorf("node count = %d, want 1", nodes)
	}
	edges, err := db.CountEdges()
	if err != nil {
		t.Fatalf("CountEdges: %v", err)
	}
	if edges != 0 {
		t.Errorf("edge count = %d, want 0", edges)
	}
}

func TestJudgementEdgesOnly(t *testing.T) {
	db := openTestDB(t)
	if err := db.SaveNetwork(testNetwork(), SaveOptions{JudgementEdgesOnly: true}); err != nil {
		t.Fatalf("SaveNetwork: %v", err)
	}

	loaded := network.New(nil)
	if err := db.LoadNetwork(loaded); err != nil {
		t.Fatalf("LoadNetwork: %v", err)
	}

	edges := loaded.Edges()
	if len(edges) != 1 {
		t.Fatalf("loaded %d edges, want 1", len(edges))
	}
	// Only the judgement node's outgoing edge survives the filter.
	if edges[0].Source != "1968IAUS...29...11A" || edges[0].Target != "1963RvMP...35..947B" {
		t.Errorf("edge = %+v", edges[0])
	}
}

func TestOrdervarColumn(t *testing.T) {
	db := openTestDB(t)
	if err := db.SaveNetwork(testNetwork(), SaveOptions{}); err != nil {
		t.Fatalf("SaveNetwork: %v", err)
	}

	var got float64
	err := db.db.QueryRow(
		"SELECT ordervar FROM nodes WHERE bibcode = ?", "1968IAUS...29...11A",
	).Scan(&got)
	if err != nil {
		t.Fatalf("querying ordervar: %v", err)
	}
	if math.Abs(got-0.68) > 1e-9 {
		t.Errorf("ordervar = %v, want 0.68", got)
	}
}

func TestOrdervar(t *testing.T) {
	tests := []struct {
		year string
		want float64
	}{
		{"1900", 0},
		{"1968", 0.68},
		{"2012", 1.12},
		{"", 0},
		{"19xx", 0},
	}
	for _, tt := range tests {
		if got := ordervar(tt.year); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ordervar(%q) = %v, want %v", tt.year, got, tt.want)
		}
	}
}

func TestLoadEmptyDatabase(t *testing.T) {
	db := openTestDB(t)
	net := network.New(nil)
	if err := db.LoadNetwork(net); err != nil {
		t.Fatalf("LoadNetwork: %v", err)
	}
	if len(net.Nodes()) != 0 || len(net.Edges()) != 0 {
		t.Errorf("loaded %d nodes, %d edges from empty database", len(net.Nodes()), len(net.Edges()))
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
