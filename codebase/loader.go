// Package codebase loads class files from directories and jars, builds
// the dependency graph over them and serves their symbols to editors.
package codebase

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/depfind/classfile"
)

var log = commonlog.GetLogger("depfind.codebase")

// LoadError reports a single input that could not be read or parsed.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ClassSource is a parsed class file and where it came from. Entries inside
// jars are named "path/to/lib.jar!/com/example/Main.class"; nested jars add
// another "!/" segment.
type ClassSource struct {
	Source    string
	Classfile *classfile.Classfile
}

// Result holds every class file that parsed, in input order, and one
// LoadError per input that did not.
type Result struct {
	Classes []ClassSource
	Errors  []*LoadError
}

// Classfiles returns the parsed class files in input order.
func (r *Result) Classfiles() []*classfile.Classfile {
	out := make([]*classfile.Classfile, len(r.Classes))
	for i, c := range r.Classes {
		out[i] = c.Classfile
	}
	return out
}

type cacheKey struct {
	source  string
	size    int64
	modTime time.Time
}

// input is one class file waiting to be parsed.
type input struct {
	key  cacheKey
	read func() ([]byte, error)
}

// Loader parses class files found under a set of paths with a bounded
// number of workers. Parsed class files are cached by source, size and
// modification time so repeated loads only parse what changed.
type Loader struct {
	workers int
	cache   *lru.Cache[cacheKey, *classfile.Classfile]
}

// NewLoader creates a loader with the given parallelism. cacheSize 0
// disables the cache.
func NewLoader(workers, cacheSize int) (*Loader, error) {
	if workers < 1 {
		workers = 1
	}
	l := &Loader{workers: workers}
	if cacheSize > 0 {
		cache, err := lru.New[cacheKey, *classfile.Classfile](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("create class file cache: %w", err)
		}
		l.cache = cache
	}
	return l, nil
}

// CachedCount returns the number of class files held in the cache.
func (l *Loader) CachedCount() int {
	if l.cache == nil {
		return 0
	}
	return l.cache.Len()
}

// Load parses every .class file under paths. Each path may be a
// directory, a jar or zip, or a single class file. Inputs that fail are
// reported in the result and do not stop the load; only a cancelled
// context does.
func (l *Loader) Load(ctx context.Context, paths ...string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var inputs []input
	var errs []*LoadError
	for _, path := range paths {
		found, failed := collectInputs(path)
		inputs = append(inputs, found...)
		errs = append(errs, failed...)
	}

	parsed, failed, err := l.parseAll(ctx, inputs)
	if err != nil {
		return nil, err
	}
	errs = append(errs, failed...)

	result := &Result{Errors: errs}
	for i, cf := range parsed {
		if cf != nil {
			result.Classes = append(result.Classes, ClassSource{Source: inputs[i].key.source, Classfile: cf})
		}
	}
	log.Infof("loaded %d class files, %d errors", len(result.Classes), len(result.Errors))
	return result, nil
}

// parseAll parses inputs with at most l.workers running at once. The
// returned slice is indexed like inputs and holds nil for failures.
func (l *Loader) parseAll(ctx context.Context, inputs []input) ([]*classfile.Classfile, []*LoadError, error) {
	parsed := make([]*classfile.Classfile, len(inputs))
	var errs []*LoadError
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, in := range inputs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cf, err := l.parse(in)
			if err != nil {
				log.Warningf("skipping %s: %s", in.key.source, err)
				mu.Lock()
				errs = append(errs, &LoadError{Source: in.key.source, Err: err})
				mu.Unlock()
				return nil
			}
			parsed[i] = cf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return parsed, errs, nil
}

func (l *Loader) parse(in input) (*classfile.Classfile, error) {
	if l.cache != nil {
		if cf, ok := l.cache.Get(in.key); ok {
			return cf, nil
		}
	}
	data, err := in.read()
	if err != nil {
		return nil, err
	}
	cf, err := classfile.ParseBytes(data)
	if err != nil {
		return nil, err
	}
	if l.cache != nil {
		l.cache.Add(in.key, cf)
	}
	return cf, nil
}

func collectInputs(path string) ([]input, []*LoadError) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, []*LoadError{{Source: path, Err: err}}
	}
	if info.IsDir() {
		return collectDirectory(path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".class":
		return []input{fileInput(path, info)}, nil
	case ".jar", ".zip":
		return collectJar(path, info)
	}
	return nil, []*LoadError{{Source: path, Err: fmt.Errorf("unsupported file type: %s", filepath.Ext(path))}}
}

func fileInput(path string, info fs.FileInfo) input {
	return input{
		key:  cacheKey{source: path, size: info.Size(), modTime: info.ModTime()},
		read: func() ([]byte, error) { return os.ReadFile(path) },
	}
}

func collectDirectory(root string) ([]input, []*LoadError) {
	var inputs []input
	var errs []*LoadError
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			errs = append(errs, &LoadError{Source: path, Err: err})
			return nil
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".class":
			info, err := d.Info()
			if err != nil {
				errs = append(errs, &LoadError{Source: path, Err: err})
				return nil
			}
			inputs = append(inputs, fileInput(path, info))
		case ".jar":
			info, err := d.Info()
			if err != nil {
				errs = append(errs, &LoadError{Source: path, Err: err})
				return nil
			}
			found, failed := collectJar(path, info)
			inputs = append(inputs, found...)
			errs = append(errs, failed...)
		}
		return nil
	})
	return inputs, errs
}

// collectJar reads the whole archive into memory so entries can be parsed
// after the file is closed.
func collectJar(path string, info fs.FileInfo) ([]input, []*LoadError) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []*LoadError{{Source: path, Err: err}}
	}
	return collectArchive(path, data, info.ModTime())
}

func collectArchive(name string, data []byte, modTime time.Time) ([]input, []*LoadError) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, []*LoadError{{Source: name, Err: fmt.Errorf("open archive: %w", err)}}
	}

	var inputs []input
	var errs []*LoadError
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		source := name + "!/" + f.Name
		switch strings.ToLower(filepath.Ext(f.Name)) {
		case ".class":
			inputs = append(inputs, input{
				key:  cacheKey{source: source, size: int64(f.UncompressedSize64), modTime: modTime},
				read: func() ([]byte, error) { return readZipEntry(f) },
			})
		case ".jar":
			nested, err := readZipEntry(f)
			if err != nil {
				errs = append(errs, &LoadError{Source: source, Err: err})
				continue
			}
			found, failed := collectArchive(source, nested, modTime)
			inputs = append(inputs, found...)
			errs = append(errs, failed...)
		}
	}
	return inputs, errs
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
