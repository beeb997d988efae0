package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cchawn/toolbox/internal/categorize"
	"github.com/cchawn/toolbox/internal/model"
)

// ErrNotDirectory is returned when directory mode is forced on a file.
var ErrNotDirectory = errors.New("not a directory")

// Parser converts one institution CSV export into Transactions.
type Parser interface {
	Parse(r io.Reader, env *Env) (Result, error)
	Format() model.Format
}

// Env is the per-run state every parser works against.
type Env struct {
	Categorizer    *categorize.Categorizer
	Income         *model.IncomeLedger
	Account        string
	TDSkipPayers   []string
	BillPayees     []string
	PayrollMarkers []string
}

// Result is the outcome of parsing one file.
type Result struct {
	Transactions []model.Transaction
	Skipped      int // rows dropped by skip rules or because they were malformed
	IncomeRows   int // rows routed to the income ledger
}

// Registry holds parsers keyed by format.
type Registry struct {
	parsers map[model.Format]Parser
}

// FileInfo describes a candidate input CSV.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[model.Format]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	if _, ok := r.parsers[p.Format()]; ok {
		panic("duplicate parser format: " + string(p.Format()))
	}
	r.parsers[p.Format()] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format model.Format) Parser {
	return r.parsers[format]
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&TDParser{})
	r.Register(&WealthsimpleCardParser{})
	r.Register(&WealthsimpleCashParser{})
	r.Register(&AmexParser{})
	r.Register(&ScotiabankParser{})
	return r
}

// Locate resolves the input path into the files to process. A directory, or
// any path when forceDir is set, is scanned for CSVs.
func Locate(path string, forceDir bool) ([]FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("input path: %w", err)
	}
	if info.IsDir() {
		return Scan(path)
	}
	if forceDir {
		return nil, fmt.Errorf("%s: %w", path, ErrNotDirectory)
	}
	return []FileInfo{{Name: info.Name(), Path: path, Size: info.Size()}}, nil
}

// Scan returns the CSV files directly inside dir, alphabetically. Hidden and
// editor temp files are ignored.
func Scan(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || !isCandidate(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}

	sort.SliceStable(files, func(i, j int) bool {
		a, b := strings.ToLower(files[i].Name), strings.ToLower(files[j].Name)
		if a != b {
			return a < b
		}
		return files[i].Name < files[j].Name
	})
	return files, nil
}

func isCandidate(name string) bool {
	if !strings.HasSuffix(strings.ToLower(name), ".csv") {
		return false
	}
	return !strings.HasPrefix(name, ".") && !strings.HasPrefix(name, "~$")
}
