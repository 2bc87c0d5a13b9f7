package qblast

import (
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/ManuelOsorioLab/searchGen1/internal/model"
)

// blastOutput mirrors the BlastOutput XML document returned by the service
type blastOutput struct {
	XMLName  xml.Name `xml:"BlastOutput"`
	Program  string   `xml:"BlastOutput_program"`
	QueryLen int      `xml:"BlastOutput_query-len"`
	Hits     []xmlHit `xml:"BlastOutput_iterations>Iteration>Iteration_hits>Hit"`
}

type xmlHit struct {
	Num       int      `xml:"Hit_num"`
	ID        string   `xml:"Hit_id"`
	Def       string   `xml:"Hit_def"`
	Accession string   `xml:"Hit_accession"`
	Len       int      `xml:"Hit_len"`
	Hsps      []xmlHsp `xml:"Hit_hsps>Hsp"`
}

type xmlHsp struct {
	Num      int     `xml:"Hsp_num"`
	BitScore float64 `xml:"Hsp_bit-score"`
	Score    float64 `xml:"Hsp_score"`
	EValue   float64 `xml:"Hsp_evalue"`
	Identity int     `xml:"Hsp_identity"`
	AlignLen int     `xml:"Hsp_align-len"`
	Qseq     string  `xml:"Hsp_qseq"`
	Hseq     string  `xml:"Hsp_hseq"`
	Midline  string  `xml:"Hsp_midline"`
}

// DecodeResult decodes a BlastOutput XML stream into a SearchResult
func DecodeResult(r io.Reader) (*model.SearchResult, error) {
	var out blastOutput
	if err := xml.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode BLAST XML: %w", err)
	}

	result := &model.SearchResult{
		QueryLen:  out.QueryLen,
		Hits:      make([]model.Hit, 0, len(out.Hits)),
		FetchedAt: time.Now().UTC(),
	}

	for _, h := range out.Hits {
		hit := model.Hit{
			Num:       h.Num,
			ID:        h.ID,
			Def:       h.Def,
			Accession: h.Accession,
			Len:       h.Len,
			HSPs:      make([]model.HSP, 0, len(h.Hsps)),
		}
		for _, s := range h.Hsps {
			hit.HSPs = append(hit.HSPs, model.HSP{
				Num:      s.Num,
				BitScore: s.BitScore,
				Score:    s.Score,
				EValue:   s.EValue,
				Identity: s.Identity,
				AlignLen: s.AlignLen,
				Qseq:     s.Qseq,
				Hseq:     s.Hseq,
				Midline:  s.Midline,
			})
		}
		result.Hits = append(result.Hits, hit)
	}

	return result, nil
}
