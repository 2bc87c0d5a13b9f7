package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Query describes a single remote BLAST search. Immutable per call.
type Query struct {
	Program     string  `json:"program"`
	Database    string  `json:"database"`
	Sequence    string  `json:"sequence"`
	Organism    string  `json:"organism"`
	Expect      float64 `json:"expect"`
	HitlistSize int     `json:"hitlist_size"`
	Email       string  `json:"email"`
	Tool        string  `json:"tool"`
}

// EntrezQuery renders the organism restriction as an Entrez filter,
// e.g. "Staphylococcus aureus"[Organism]. Empty when no organism is set.
func (q Query) EntrezQuery() string {
	if q.Organism == "" {
		return ""
	}
	return fmt.Sprintf("%q[Organism]", q.Organism)
}

// Validate checks the fields a search cannot run without
func (q Query) Validate() error {
	if strings.TrimSpace(q.Sequence) == "" {
		return fmt.Errorf("empty query sequence")
	}
	if q.Program == "" {
		return fmt.Errorf("missing program")
	}
	if q.Database == "" {
		return fmt.Errorf("missing database")
	}
	return nil
}

// CacheKey returns a deterministic key for this query
func (q Query) CacheKey() string {
	canonical := strings.Join([]string{
		q.Program,
		q.Database,
		q.Sequence,
		q.Organism,
		fmt.Sprintf("%g", q.Expect),
		fmt.Sprintf("%d", q.HitlistSize),
	}, "\x1f")

	hash := sha256.Sum256([]byte(canonical))
	return "searchgen:v1:" + hex.EncodeToString(hash[:])
}
