package models

import (
	"encoding/json"
	"testing"
)

func TestResultIsTaggedUnion(t *testing.T) {
	ok := OK("Post created successfully").WithData(map[string]string{"slug": "x"})
	if ok.Error != "" || ok.Success == "" || ok.Status != 200 {
		t.Fatalf("bad success result: %+v", ok)
	}

	fail := Fail(409, "A post with this title already exists", nil).WithData("ignored")
	if fail.Success != "" || fail.Data != nil || fail.OK() {
		t.Fatalf("bad failure result: %+v", fail)
	}

	b, err := json.Marshal(Fail(400, "Invalid data", map[string]string{"title": "is required"}))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"error":"Invalid data","details":{"title":"is required"},"status":400}`
	if string(b) != want {
		t.Fatalf("json = %s, want %s", b, want)
	}
}

func TestPostPatchEmpty(t *testing.T) {
	if !(PostPatch{}).Empty() {
		t.Fatal("zero patch must be empty")
	}
	f := false
	if (PostPatch{Featured: &f}).Empty() {
		t.Fatal("explicit false is a change")
	}
}
