package model

import "testing"

func TestQuery_EntrezQuery(t *testing.T) {
	q := Query{Organism: "Staphylococcus aureus"}
	want := `"Staphylococcus aureus"[Organism]`
	if got := q.EntrezQuery(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	if got := (Query{}).EntrezQuery(); got != "" {
		t.Errorf("expected empty filter, got %q", got)
	}
}

func TestQuery_Validate(t *testing.T) {
	q := Query{Program: "blastp", Database: "nr", Sequence: "MKTAYIAKQR"}
	if err := q.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	q.Sequence = " \t"
	if err := q.Validate(); err == nil {
		t.Error("expected error for blank sequence")
	}
}

func TestQuery_CacheKey(t *testing.T) {
	a := Query{Program: "blastp", Database: "nr", Sequence: "MKTAYIAKQR", Organism: "Homo sapiens"}
	b := a

	if a.CacheKey() != b.CacheKey() {
		t.Error("expected identical keys for identical queries")
	}

	b.Organism = "Mus musculus"
	if a.CacheKey() == b.CacheKey() {
		t.Error("expected different keys for different organisms")
	}

	// Email and tool are contact metadata, not search inputs
	b = a
	b.Email = "other@example.org"
	if a.CacheKey() != b.CacheKey() {
		t.Error("expected contact fields to not affect the key")
	}
}
