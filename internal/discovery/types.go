package discovery

import (
	"time"

	"github.com/cybertec-postgresql/scankit/pkg/scanner"
)

// DiscoveredFile represents a source file discovered during filesystem traversal
type DiscoveredFile struct {
	Path         string    // Absolute path to file
	RelativePath string    // Path relative to search root
	Syntax       Syntax    // Comment syntax derived from the extension
	ModTime      time.Time // Last modification time
}

// Syntax names a family of languages sharing a comment syntax
type Syntax struct {
	Name     string
	Comments scanner.CommentSpec
}

var (
	SyntaxSQL    = Syntax{"sql", scanner.SQLComments}
	SyntaxC      = Syntax{"c", scanner.CComments}
	SyntaxShell  = Syntax{"shell", scanner.ShellComments}
	SyntaxPascal = Syntax{"pascal", scanner.PascalComments}
	SyntaxPlain  = Syntax{"plain", scanner.NoComments}
)

// String returns the syntax name
func (s Syntax) String() string {
	return s.Name
}
