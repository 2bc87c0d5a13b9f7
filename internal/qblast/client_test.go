package qblast

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ManuelOsorioLab/searchGen1/internal/model"
)

const putResponseNoWait = `<html><body>
<!--QBlastInfoBegin
    RID = TESTRID001
    RTOE = 0
QBlastInfoEnd
-->
</body></html>`

func testClient(baseURL string) *Client {
	return NewClient(model.HTTPConfig{
		BaseURL:      baseURL,
		Timeout:      5 * time.Second,
		UserAgent:    "searchgen-test",
		MaxBodyBytes: 1 << 20,
	}, 10*time.Millisecond)
}

func testQuery() model.Query {
	return model.Query{
		Program:     "blastp",
		Database:    "nr",
		Sequence:    "MKTAYIAKQR",
		Organism:    "Staphylococcus aureus",
		Expect:      0.001,
		HitlistSize: 5,
		Email:       "user@example.org",
		Tool:        "searchgen",
	}
}

// mockService emulates the Put / SearchInfo / XML fetch cycle
func mockService(t *testing.T, waitingPolls int32) *httptest.Server {
	t.Helper()
	var polls atomic.Int32

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.FormValue("CMD") == "Put":
			if r.FormValue("PROGRAM") != "blastp" || r.FormValue("DATABASE") != "nr" {
				t.Errorf("unexpected submit params: %v", r.Form)
			}
			if r.FormValue("ENTREZ_QUERY") != `"Staphylococcus aureus"[Organism]` {
				t.Errorf("unexpected entrez query: %q", r.FormValue("ENTREZ_QUERY"))
			}
			_, _ = fmt.Fprint(w, putResponseNoWait)

		case r.FormValue("FORMAT_OBJECT") == "SearchInfo":
			if r.FormValue("RID") != "TESTRID001" {
				t.Errorf("unexpected RID: %q", r.FormValue("RID"))
			}
			if polls.Add(1) <= waitingPolls {
				_, _ = fmt.Fprint(w, searchInfoWaiting)
			} else {
				_, _ = fmt.Fprint(w, searchInfoReady)
			}

		case r.FormValue("FORMAT_TYPE") == "XML":
			_, _ = fmt.Fprint(w, blastXML)

		default:
			t.Errorf("unexpected request: %v", r.Form)
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
}

func TestClient_Submit(t *testing.T) {
	server := mockService(t, 0)
	defer server.Close()

	rid, rtoe, err := testClient(server.URL).Submit(context.Background(), testQuery())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rid != "TESTRID001" {
		t.Errorf("expected RID TESTRID001, got %q", rid)
	}
	if rtoe != 0 {
		t.Errorf("expected zero RTOE, got %v", rtoe)
	}
}

func TestClient_Submit_EmptySequence(t *testing.T) {
	q := testQuery()
	q.Sequence = "   "

	_, _, err := testClient("http://unused.invalid").Submit(context.Background(), q)
	if err == nil {
		t.Error("expected error for empty sequence")
	}
}

func TestClient_Search_FullCycle(t *testing.T) {
	server := mockService(t, 2) // WAITING twice, then READY
	defer server.Close()

	result, err := testClient(server.URL).Search(context.Background(), testQuery())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.RID != "TESTRID001" {
		t.Errorf("expected RID TESTRID001, got %q", result.RID)
	}
	if len(result.Hits) != 2 {
		t.Errorf("expected 2 hits, got %d", len(result.Hits))
	}
	if result.QueryLen != 10 {
		t.Errorf("expected query length 10, got %d", result.QueryLen)
	}
}

func TestClient_Search_UnknownRID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.FormValue("CMD") == "Put" {
			_, _ = fmt.Fprint(w, putResponseNoWait)
			return
		}
		_, _ = fmt.Fprint(w, `<html><body>
<!--QBlastInfoBegin
	Status=UNKNOWN
QBlastInfoEnd
-->
</body></html>`)
	}))
	defer server.Close()

	_, err := testClient(server.URL).Search(context.Background(), testQuery())
	if err == nil {
		t.Error("expected error for UNKNOWN status")
	}
}

func TestClient_Search_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	// No retry: a transport-level failure aborts the search
	_, err := testClient(server.URL).Search(context.Background(), testQuery())
	if err == nil {
		t.Error("expected error for 503 response")
	}
}

func TestClient_Search_ContextCancelled(t *testing.T) {
	server := mockService(t, 1_000_000) // never becomes READY
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := testClient(server.URL).Search(ctx, testQuery())
	if err == nil {
		t.Error("expected error for cancelled context")
	}
}
