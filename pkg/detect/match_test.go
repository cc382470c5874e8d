package detect

import (
	"testing"
)

func TestPromote_StemMatch(t *testing.T) {
	res := Promote(Result{Possible: []string{"utils"}}, []string{"/proj/utils.py"})
	if len(res.Certain) != 1 || res.Certain[0] != "/proj/utils.py" {
		t.Errorf("Certain = %v", res.Certain)
	}
	if len(res.Possible) != 0 {
		t.Errorf("Possible = %v, want empty", res.Possible)
	}
}

func TestPromote_LastSegmentMatch(t *testing.T) {
	res := Promote(Result{Possible: []string{"mypkg.utils"}}, []string{"/proj/mypkg/utils.py"})
	if len(res.Certain) != 1 || res.Certain[0] != "/proj/mypkg/utils.py" {
		t.Errorf("Certain = %v", res.Certain)
	}
}

func TestPromote_BasenameSuffixMatch(t *testing.T) {
	res := Promote(Result{Possible: []string{"shared/util.h"}}, []string{"/proj/include/util.h"})
	if len(res.Certain) != 1 || res.Certain[0] != "/proj/include/util.h" {
		t.Errorf("Certain = %v", res.Certain)
	}
}

func TestPromote_FirstMatchWins(t *testing.T) {
	tracked := []string{"/a/utils.py", "/b/utils.py"}
	res := Promote(Result{Possible: []string{"utils"}}, tracked)
	if len(res.Certain) != 1 || res.Certain[0] != "/a/utils.py" {
		t.Errorf("Certain = %v, want first tracked match", res.Certain)
	}
}

func TestPromote_NeverDuplicates(t *testing.T) {
	res := Promote(Result{
		Certain:  []string{"/proj/utils.py"},
		Possible: []string{"utils"},
	}, []string{"/proj/utils.py"})
	if len(res.Certain) != 1 {
		t.Errorf("Certain = %v, want single entry", res.Certain)
	}
	if len(res.Possible) != 0 {
		t.Errorf("Possible = %v, want empty", res.Possible)
	}
}

func TestPromote_NoMatchKeepsToken(t *testing.T) {
	res := Promote(Result{Possible: []string{"vector"}}, []string{"/proj/utils.py"})
	if len(res.Certain) != 0 || len(res.Possible) != 1 || res.Possible[0] != "vector" {
		t.Errorf("got %+v, want vector untouched", res)
	}
}
