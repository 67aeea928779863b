package discovery

import (
	"path/filepath"
	"strings"
)

var syntaxByExt = map[string]Syntax{
	".sql":   SyntaxSQL,
	".psql":  SyntaxSQL,
	".pgsql": SyntaxSQL,
	".c":     SyntaxC,
	".h":     SyntaxC,
	".cc":    SyntaxC,
	".cpp":   SyntaxC,
	".go":    SyntaxC,
	".java":  SyntaxC,
	".js":    SyntaxC,
	".ts":    SyntaxC,
	".rs":    SyntaxC,
	".sh":    SyntaxShell,
	".py":    SyntaxShell,
	".rb":    SyntaxShell,
	".yaml":  SyntaxShell,
	".yml":   SyntaxShell,
	".toml":  SyntaxShell,
	".pas":   SyntaxPascal,
	".pp":    SyntaxPascal,
}

// ClassifyFile determines the comment syntax of a file from its extension.
// Unknown extensions have no comments.
func ClassifyFile(filename string) Syntax {
	if syntax, ok := syntaxByExt[strings.ToLower(filepath.Ext(filename))]; ok {
		return syntax
	}
	return SyntaxPlain
}

// IsSQLFile returns true if the file holds SQL
func IsSQLFile(filename string) bool {
	return ClassifyFile(filename).Name == SyntaxSQL.Name
}
