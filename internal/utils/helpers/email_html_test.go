package helpers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBuildFieldsHTMLEscapes(t *testing.T) {
	out := BuildFieldsHTML([]Field{
		{Label: "Name", Value: "<b>Ana</b>"},
		{Label: "Company", Value: ""},
		{Label: "Message", Value: "line one\nline two"},
	})

	if strings.Contains(out, "<b>Ana</b>") {
		t.Fatalf("value was not escaped: %s", out)
	}
	if strings.Contains(out, "Company") {
		t.Fatal("empty field should be skipped")
	}
	if !strings.Contains(out, "line one<br>line two") {
		t.Fatalf("newlines not converted: %s", out)
	}
}

func TestBuildSimpleHTMLEscapesTitle(t *testing.T) {
	out := BuildSimpleHTML("<script>x</script>", "<p>body</p>")
	if strings.Contains(out, "<script>") {
		t.Fatal("title must be escaped")
	}
	if !strings.Contains(out, "<p>body</p>") {
		t.Fatal("body must be kept as is")
	}
}

func TestErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusNotFound, "Post not found")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"error":"Post not found"}` {
		t.Fatalf("body = %s", got)
	}
}
