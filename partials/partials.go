// Package partials implements §4.6/§6's partial store: a read-only name
// to parsed-template map that `{% include %}`/`{% render %}` resolve
// against through the narrow runtime.PartialSource interface.
//
// Grounded on the teacher's `engine.Engine` filesystem scanning
// (resolvePath/Load/Templates/Exists in engine/engine.go) and its
// checksum-based cache (engine/cache.go), adapted from compiling
// `html/template` files to parsing liquid source into *render.Template
// values, with I/O failures wrapped via github.com/pkg/errors per
// SPEC_FULL's AMBIENT STACK.
package partials

import (
	"crypto/md5"
	"encoding/hex"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/codingersid/liquidgo/lexer"
	"github.com/codingersid/liquidgo/parser"
	"github.com/codingersid/liquidgo/render"
	"github.com/codingersid/liquidgo/runtime"
)

// InMemorySource is a map of name to already-built templates, filled by
// Add/AddTemplate — the form unit tests and embedded-snippet callers use.
type InMemorySource struct {
	templates map[string]*render.Template
}

// NewInMemorySource returns an empty InMemorySource ready for Add calls.
func NewInMemorySource() *InMemorySource {
	return &InMemorySource{templates: make(map[string]*render.Template)}
}

// Add parses src with lang and stores the result under name, returning a
// parse error (not wrapped — parse errors are the engine's own structured
// kind, not a Go-native I/O failure) if src is malformed.
func (s *InMemorySource) Add(name, src string, lang *parser.Language) error {
	toks, err := lexer.New(src).Tokenize()
	if err != nil {
		return err
	}
	root, err := parser.Parse(toks, lang)
	if err != nil {
		return err
	}
	s.templates[name] = &render.Template{Root: root}
	return nil
}

// AddTemplate stores an already-parsed template directly.
func (s *InMemorySource) AddTemplate(name string, t *render.Template) {
	s.templates[name] = t
}

func (s *InMemorySource) TryGet(name string) (runtime.Partial, bool) {
	t, ok := s.templates[name]
	return t, ok
}

func (s *InMemorySource) Names() []string {
	names := make([]string, 0, len(s.templates))
	for k := range s.templates {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

var _ runtime.PartialSource = (*InMemorySource)(nil)

// cachedTemplate is one filesystem-backed partial's parsed form plus the
// checksum it was parsed from, so a changed file on disk is reparsed
// instead of serving stale cached output.
type cachedTemplate struct {
	tmpl     *render.Template
	checksum string
}

// FileSource resolves partial names to files under root, mirroring the
// teacher's dotted-name-to-path convention (`"layouts.card"` →
// `root/layouts/card<ext>`) and caching parsed results by content
// checksum rather than by mtime, since a host filesystem's mtime
// resolution is not reliable enough across all platforms the teacher
// targets via the fiber adapter.
type FileSource struct {
	root      string
	extension string
	lang      *parser.Language

	mu    sync.RWMutex
	cache map[string]*cachedTemplate
}

// NewFileSource returns a FileSource rooted at root, resolving names with
// the given extension (e.g. ".liquid") and parsing with lang.
func NewFileSource(root, extension string, lang *parser.Language) *FileSource {
	return &FileSource{
		root:      root,
		extension: extension,
		lang:      lang,
		cache:     make(map[string]*cachedTemplate),
	}
}

func (s *FileSource) resolvePath(name string) string {
	rel := strings.ReplaceAll(name, ".", string(filepath.Separator))
	if !strings.HasSuffix(rel, s.extension) {
		rel += s.extension
	}
	return filepath.Join(s.root, rel)
}

// Exists reports whether name resolves to a file on disk, without parsing it.
func (s *FileSource) Exists(name string) bool {
	_, err := os.Stat(s.resolvePath(name))
	return err == nil
}

func checksum(content []byte) string {
	sum := md5.Sum(content)
	return hex.EncodeToString(sum[:])
}

// load reads and parses name's file, caching by checksum so repeated
// renders of an unchanged partial skip the lex/parse work.
func (s *FileSource) load(name string) (*render.Template, error) {
	path := s.resolvePath(name)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "partials: reading %q", path)
	}
	sum := checksum(content)

	s.mu.RLock()
	cached, ok := s.cache[name]
	s.mu.RUnlock()
	if ok && cached.checksum == sum {
		return cached.tmpl, nil
	}

	toks, err := lexer.New(string(content)).Tokenize()
	if err != nil {
		return nil, err
	}
	root, err := parser.Parse(toks, s.lang)
	if err != nil {
		return nil, err
	}
	tmpl := &render.Template{Root: root}

	s.mu.Lock()
	s.cache[name] = &cachedTemplate{tmpl: tmpl, checksum: sum}
	s.mu.Unlock()
	return tmpl, nil
}

func (s *FileSource) TryGet(name string) (runtime.Partial, bool) {
	t, err := s.load(name)
	if err != nil {
		return nil, false
	}
	return t, true
}

// Names walks root and returns every resolvable partial name, dotted the
// same way resolvePath expects, mirroring the teacher's Templates().
func (s *FileSource) Names() []string {
	var names []string
	_ = filepath.Walk(s.root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info == nil || info.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, s.extension) {
			return nil
		}
		rel := strings.TrimPrefix(path, s.root+string(filepath.Separator))
		rel = strings.TrimSuffix(rel, s.extension)
		rel = strings.ReplaceAll(rel, string(filepath.Separator), ".")
		names = append(names, rel)
		return nil
	})
	sort.Strings(names)
	return names
}

var _ runtime.PartialSource = (*FileSource)(nil)
