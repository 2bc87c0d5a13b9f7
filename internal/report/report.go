package report

import (
	"fmt"
	"regexp"

	"github.com/ManuelOsorioLab/searchGen1/internal/model"
)

// speciesRe captures the first bracketed species label in a hit title
var speciesRe = regexp.MustCompile(`\[([^\[\]]+)\]`)

// UnknownSpecies is used when a hit title carries no bracketed label
const UnknownSpecies = "Unknown"

// Report is a write-once text artifact derived from one hit's first HSP
type Report struct {
	Organism string
	Filename string
	Body     string
}

// Species returns the first bracketed substring of a hit title,
// or UnknownSpecies when the title has none
func Species(title string) string {
	if m := speciesRe.FindStringSubmatch(title); m != nil {
		return m[1]
	}
	return UnknownSpecies
}

// Similarity computes the percent identity of an HSP relative to the
// query length. Errors on non-positive query length instead of
// propagating a division by zero.
func Similarity(identities, queryLen int) (float64, error) {
	if queryLen <= 0 {
		return 0, fmt.Errorf("non-positive query length %d", queryLen)
	}
	return float64(identities) / float64(queryLen) * 100, nil
}

// Build derives the report for one hit, using only its first HSP.
// rank is the 1-based position of the hit within the result.
func Build(organism string, queryLen, rank int, hit model.Hit) (Report, error) {
	if len(hit.HSPs) == 0 {
		return Report{}, fmt.Errorf("hit %d (%s): no HSPs", hit.Num, hit.ID)
	}
	hsp := hit.HSPs[0]

	similarity, err := Similarity(hsp.Identity, queryLen)
	if err != nil {
		return Report{}, fmt.Errorf("hit %d (%s): %w", hit.Num, hit.ID, err)
	}

	species := Species(hit.Def)
	filename := SanitizeFilename(fmt.Sprintf("%s_Resultado_%d_Similitud_%.2f%%_%s",
		organism, rank, similarity, species)) + ".txt"

	body := fmt.Sprintf(
		"Organismo: %s\n"+
			"Titulo: %s\n"+
			"Longitud: %d\n"+
			"E-value: %g\n"+
			"Similitud: %.2f%%\n"+
			"Identidades: %d\n"+
			"Query: %s\n"+
			"Match: %s\n"+
			"Sbjct: %s\n",
		organism, hit.Def, hit.Len, hsp.EValue, similarity,
		hsp.Identity, hsp.Qseq, hsp.Midline, hsp.Hseq)

	return Report{
		Organism: organism,
		Filename: filename,
		Body:     body,
	}, nil
}

// BuildAll derives one report per hit, in service order
func BuildAll(organism string, result *model.SearchResult) ([]Report, error) {
	reports := make([]Report, 0, len(result.Hits))
	for i, hit := range result.Hits {
		rep, err := Build(organism, result.QueryLen, i+1, hit)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, nil
}
