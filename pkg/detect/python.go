package detect

import (
	"context"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// detectPython walks the syntax tree for import statements. Standard-library
// modules are excluded by their first dotted segment; everything else is
// resolved against the importing file's directory.
func (d *Detector) detectPython(path string, source []byte) Result {
	d.parser.SetLanguage(python.GetLanguage())
	tree, err := d.parser.ParseCtx(context.Background(), nil, source)
	if err != nil || tree == nil {
		return Result{}
	}
	defer tree.Close()

	dir := filepath.Dir(path)
	var res Result

	addModule := func(name string) {
		if name == "" {
			return
		}
		if isPythonStdlib(strings.SplitN(name, ".", 2)[0]) {
			return
		}
		if resolved := resolvePythonModule(dir, name); resolved != "" {
			res.Certain = append(res.Certain, resolved)
			return
		}
		res.Possible = append(res.Possible, name)
	}

	walk(tree.RootNode(), func(n *sitter.Node) bool {
		switch n.Type() {
		case "import_statement":
			for i := 0; i < int(n.NamedChildCount()); i++ {
				child := n.NamedChild(i)
				switch child.Type() {
				case "dotted_name":
					addModule(nodeText(child, source))
				case "aliased_import":
					addModule(nodeText(child.ChildByFieldName("name"), source))
				}
			}
			return false

		case "import_from_statement":
			mod := n.ChildByFieldName("module_name")
			if mod == nil {
				return false
			}
			if mod.Type() == "relative_import" {
				res = resolveRelativeImport(res, dir, nodeText(mod, source), importedNames(n, mod, source))
				return false
			}
			addModule(nodeText(mod, source))
			return false
		}
		return true
	})

	return res
}

// importedNames collects the names after "import" in a from-import.
func importedNames(stmt, moduleNode *sitter.Node, source []byte) []string {
	var names []string
	for i := 0; i < int(stmt.NamedChildCount()); i++ {
		child := stmt.NamedChild(i)
		if child.StartByte() == moduleNode.StartByte() && child.EndByte() == moduleNode.EndByte() {
			continue
		}
		switch child.Type() {
		case "dotted_name":
			names = append(names, nodeText(child, source))
		case "aliased_import":
			names = append(names, nodeText(child.ChildByFieldName("name"), source))
		}
	}
	return names
}

// resolveRelativeImport handles "from .x import y" forms. One leading dot is
// the file's own directory, each further dot climbs a level. When the module
// part is empty ("from . import y") the imported names themselves are tried
// as modules; names that turn out to be plain symbols are dropped silently.
func resolveRelativeImport(res Result, dir, relative string, names []string) Result {
	dots := 0
	for dots < len(relative) && relative[dots] == '.' {
		dots++
	}
	base := dir
	for i := 1; i < dots; i++ {
		base = filepath.Dir(base)
	}

	module := relative[dots:]
	if module != "" {
		if resolved := resolvePythonModule(base, module); resolved != "" {
			res.Certain = append(res.Certain, resolved)
		} else {
			res.Possible = append(res.Possible, module)
		}
		return res
	}

	for _, name := range names {
		if resolved := resolvePythonModule(base, name); resolved != "" {
			res.Certain = append(res.Certain, resolved)
		}
	}
	return res
}

// resolvePythonModule maps a dotted module name to a file under dir:
// a.b -> a/b.py, then a/b/__init__.py.
func resolvePythonModule(dir, dotted string) string {
	rel := filepath.Join(strings.Split(dotted, ".")...)
	return firstExisting(
		filepath.Join(dir, rel+".py"),
		filepath.Join(dir, rel, "__init__.py"),
	)
}

func walk(node *sitter.Node, visit func(*sitter.Node) bool) {
	if node == nil {
		return
	}
	if !visit(node) {
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		walk(node.Child(i), visit)
	}
}

func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start, end := node.StartByte(), node.EndByte()
	if start > end || end > uint32(len(source)) {
		return ""
	}
	return string(source[start:end])
}
