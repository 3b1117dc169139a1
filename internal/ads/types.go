package ads

import "strings"

// Record is one publication record returned by the ADS search API.
type Record struct {
	Bibcode   string   `json:"bibcode"`
	Year      string   `json:"year"`
	Author    []string `json:"author"` // "Last, First" per entry
	Title     []string `json:"title"`  // may be split into parts
	Citation  []string `json:"citation"`
	Reference []string `json:"reference"`
}

// JoinedTitle returns the title parts joined into a single string.
func (r *Record) JoinedTitle() string {
	return strings.Join(r.Title, "; ")
}

// searchResponse mirrors the relevant part of an ADS search reply.
type searchResponse struct {
	Response struct {
		NumFound int      `json:"numFound"`
		Docs     []Record `json:"docs"`
	} `json:"response"`
}
