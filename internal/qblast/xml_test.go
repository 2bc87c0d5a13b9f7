package qblast

import (
	"strings"
	"testing"
)

const blastXML = `<?xml version="1.0"?>
<!DOCTYPE BlastOutput PUBLIC "-//NCBI//NCBI BlastOutput/EN" "http://www.ncbi.nlm.nih.gov/dtd/NCBI_BlastOutput.dtd">
<BlastOutput>
  <BlastOutput_program>blastp</BlastOutput_program>
  <BlastOutput_db>nr</BlastOutput_db>
  <BlastOutput_query-len>10</BlastOutput_query-len>
  <BlastOutput_iterations>
    <Iteration>
      <Iteration_iter-num>1</Iteration_iter-num>
      <Iteration_hits>
        <Hit>
          <Hit_num>1</Hit_num>
          <Hit_id>gi|12345|ref|WP_000001.1|</Hit_id>
          <Hit_def>Protein X [Staphylococcus lugdunensis]</Hit_def>
          <Hit_accession>WP_000001</Hit_accession>
          <Hit_len>120</Hit_len>
          <Hit_hsps>
            <Hsp>
              <Hsp_num>1</Hsp_num>
              <Hsp_bit-score>55.5</Hsp_bit-score>
              <Hsp_score>131</Hsp_score>
              <Hsp_evalue>1.5e-30</Hsp_evalue>
              <Hsp_identity>9</Hsp_identity>
              <Hsp_align-len>10</Hsp_align-len>
              <Hsp_qseq>MKTAYIAKQR</Hsp_qseq>
              <Hsp_hseq>MKTAYIDKQR</Hsp_hseq>
              <Hsp_midline>MKTAYI KQR</Hsp_midline>
            </Hsp>
            <Hsp>
              <Hsp_num>2</Hsp_num>
              <Hsp_evalue>0.5</Hsp_evalue>
              <Hsp_identity>3</Hsp_identity>
              <Hsp_align-len>8</Hsp_align-len>
            </Hsp>
          </Hit_hsps>
        </Hit>
        <Hit>
          <Hit_num>2</Hit_num>
          <Hit_id>gi|67890|ref|WP_000002.1|</Hit_id>
          <Hit_def>hypothetical protein</Hit_def>
          <Hit_accession>WP_000002</Hit_accession>
          <Hit_len>98</Hit_len>
          <Hit_hsps>
            <Hsp>
              <Hsp_num>1</Hsp_num>
              <Hsp_evalue>2e-10</Hsp_evalue>
              <Hsp_identity>6</Hsp_identity>
              <Hsp_align-len>10</Hsp_align-len>
              <Hsp_qseq>MKTAYIAKQR</Hsp_qseq>
              <Hsp_hseq>MKSAYLAKQR</Hsp_hseq>
              <Hsp_midline>MK AY AKQR</Hsp_midline>
            </Hsp>
          </Hit_hsps>
        </Hit>
      </Iteration_hits>
    </Iteration>
  </BlastOutput_iterations>
</BlastOutput>`

func TestDecodeResult(t *testing.T) {
	result, err := DecodeResult(strings.NewReader(blastXML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.QueryLen != 10 {
		t.Errorf("expected query length 10, got %d", result.QueryLen)
	}
	if len(result.Hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(result.Hits))
	}

	first := result.Hits[0]
	if first.Def != "Protein X [Staphylococcus lugdunensis]" {
		t.Errorf("unexpected title: %q", first.Def)
	}
	if first.Len != 120 {
		t.Errorf("expected hit length 120, got %d", first.Len)
	}
	if len(first.HSPs) != 2 {
		t.Fatalf("expected 2 HSPs, got %d", len(first.HSPs))
	}

	hsp := first.HSPs[0]
	if hsp.Identity != 9 {
		t.Errorf("expected identity 9, got %d", hsp.Identity)
	}
	if hsp.EValue != 1.5e-30 {
		t.Errorf("expected evalue 1.5e-30, got %g", hsp.EValue)
	}
	if hsp.Qseq != "MKTAYIAKQR" || hsp.Hseq != "MKTAYIDKQR" || hsp.Midline != "MKTAYI KQR" {
		t.Errorf("unexpected alignment strings: %q %q %q", hsp.Qseq, hsp.Midline, hsp.Hseq)
	}

	if result.Hits[1].Def != "hypothetical protein" {
		t.Errorf("unexpected second hit title: %q", result.Hits[1].Def)
	}
}

func TestDecodeResult_Malformed(t *testing.T) {
	if _, err := DecodeResult(strings.NewReader("<BlastOutput><unclosed>")); err == nil {
		t.Error("expected error for malformed XML")
	}
}
