package detect

import (
	"path/filepath"
	"testing"
)

func TestDetectRust_ModResolution(t *testing.T) {
	dir := t.TempDir()
	lib := writeFile(t, filepath.Join(dir, "lib.rs"), "mod parser;\npub mod config;\nmod missing;\n")
	parser := writeFile(t, filepath.Join(dir, "parser.rs"), "")
	configMod := writeFile(t, filepath.Join(dir, "config", "mod.rs"), "")

	res := detectRust(lib, mustRead(t, lib)).normalize()
	want := map[string]bool{parser: true, configMod: true}
	if len(res.Certain) != 2 || !want[res.Certain[0]] || !want[res.Certain[1]] {
		t.Errorf("Certain = %v, want %s and %s", res.Certain, parser, configMod)
	}
	found := false
	for _, p := range res.Possible {
		if p == "missing" {
			found = true
		}
	}
	if !found {
		t.Errorf("Possible = %v, want to include missing", res.Possible)
	}
}

func TestDetectRust_UseStaysPossible(t *testing.T) {
	dir := t.TempDir()
	lib := writeFile(t, filepath.Join(dir, "main.rs"), "use crate::parser::Parser;\nuse serde::Deserialize;\nextern crate regex;\n")
	writeFile(t, filepath.Join(dir, "parser.rs"), "")

	res := detectRust(lib, mustRead(t, lib)).normalize()
	if len(res.Certain) != 0 {
		t.Errorf("Certain = %v, want empty (use never resolves directly)", res.Certain)
	}
	want := map[string]bool{"parser": true, "serde": true, "regex": true}
	if len(res.Possible) != 3 {
		t.Fatalf("Possible = %v, want 3 tokens", res.Possible)
	}
	for _, p := range res.Possible {
		if !want[p] {
			t.Errorf("unexpected token %q in %v", p, res.Possible)
		}
	}
}

func TestNormalizeUsePath(t *testing.T) {
	cases := map[string]string{
		"crate::parser::Parser":       "parser",
		"self::util::helpers::run":    "util.helpers.run",
		"super::config":               "config",
		"std::collections::HashMap":   "std.collections",
		"crate::detect::{Lang, Ext}":  "detect",
		"crate::prelude::*":           "prelude",
		"crate::Parser":               "",
		"serde::Deserialize as De":    "serde",
	}
	for input, want := range cases {
		if got := normalizeUsePath(input); got != want {
			t.Errorf("normalizeUsePath(%q) = %q, want %q", input, got, want)
		}
	}
}
