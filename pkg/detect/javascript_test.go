package detect

import (
	"path/filepath"
	"testing"
)

func TestDetectJavaScript_IndexResolution(t *testing.T) {
	dir := t.TempDir()
	x := writeFile(t, filepath.Join(dir, "x.ts"), "import { helper } from './y'\n")
	index := writeFile(t, filepath.Join(dir, "y", "index.ts"), "export const helper = 1\n")

	res := detectJavaScript(x, mustRead(t, x)).normalize()
	if len(res.Certain) != 1 || res.Certain[0] != index {
		t.Errorf("Certain = %v, want [%s]", res.Certain, index)
	}
}

func TestDetectJavaScript_ExtensionResolution(t *testing.T) {
	dir := t.TempDir()
	x := writeFile(t, filepath.Join(dir, "x.js"), "const y = require('./y')\nimport z from './sub/z.jsx'\n")
	y := writeFile(t, filepath.Join(dir, "y.js"), "")
	z := writeFile(t, filepath.Join(dir, "sub", "z.jsx"), "")

	res := detectJavaScript(x, mustRead(t, x)).normalize()
	want := map[string]bool{y: true, z: true}
	if len(res.Certain) != 2 || !want[res.Certain[0]] || !want[res.Certain[1]] {
		t.Errorf("Certain = %v, want %s and %s", res.Certain, y, z)
	}
}

func TestDetectJavaScript_BareSpecifierStaysPossible(t *testing.T) {
	dir := t.TempDir()
	x := writeFile(t, filepath.Join(dir, "x.ts"), "import React from 'react'\nexport { a } from './missing'\n")

	res := detectJavaScript(x, mustRead(t, x)).normalize()
	if len(res.Certain) != 0 {
		t.Errorf("Certain = %v, want empty", res.Certain)
	}
	want := map[string]bool{"react": true, "./missing": true}
	if len(res.Possible) != 2 || !want[res.Possible[0]] || !want[res.Possible[1]] {
		t.Errorf("Possible = %v, want react and ./missing", res.Possible)
	}
}

func TestDetectJavaScript_SideEffectImport(t *testing.T) {
	dir := t.TempDir()
	x := writeFile(t, filepath.Join(dir, "x.ts"), "import './setup'\n")
	setup := writeFile(t, filepath.Join(dir, "setup.ts"), "")

	res := detectJavaScript(x, mustRead(t, x)).normalize()
	if len(res.Certain) != 1 || res.Certain[0] != setup {
		t.Errorf("Certain = %v, want [%s]", res.Certain, setup)
	}
}
