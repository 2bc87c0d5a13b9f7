package model

import "time"

// SearchResult is the decoded outcome of one remote search
type SearchResult struct {
	RID       string    `json:"rid"`        // request identifier assigned by the service
	QueryLen  int       `json:"query_len"`  // length of the submitted query sequence
	Hits      []Hit     `json:"hits"`       // alignment records, service order preserved
	FetchedAt time.Time `json:"fetched_at"` // when the result was retrieved
}

// Hit is one alignment record returned by the search service
type Hit struct {
	Num       int    `json:"num"`
	ID        string `json:"id"`
	Def       string `json:"def"` // title line, species in brackets
	Accession string `json:"accession"`
	Len       int    `json:"len"`
	HSPs      []HSP  `json:"hsps"` // ordered, best first
}

// HSP is a high-scoring segment pair within a hit
type HSP struct {
	Num      int     `json:"num"`
	BitScore float64 `json:"bit_score"`
	Score    float64 `json:"score"`
	EValue   float64 `json:"evalue"`
	Identity int     `json:"identity"`  // identical positions in the alignment
	AlignLen int     `json:"align_len"` // alignment length
	Qseq     string  `json:"qseq"`      // aligned query string
	Hseq     string  `json:"hseq"`      // aligned subject string
	Midline  string  `json:"midline"`   // match line between query and subject
}
