// Package loader reads solc compact-JSON ASTs from disk.
//
// Three layouts are recognised: a bare SourceUnit object, standard JSON
// output ({"sources": {path: {"ast": ...}}}), and a Foundry artifact
// ({"ast": ...}). Units are deduplicated by path and ID and returned ordered by path.
package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sort"
	"strings"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/Cyfrin/aderyn-sub000/internal/ast"
)

var log = commonlog.GetLogger("aderyn.loader")

// ErrUnknownFormat is returned for JSON documents that hold no AST in any of
// the recognised layouts.
var ErrUnknownFormat = errors.New("unknown AST format")

// ErrIDCollision is reported when different files carry the same source unit
// ID, which happens when artifacts of several compiler runs are mixed.
var ErrIDCollision = errors.New("source unit ID shared by different files")

// Decode extracts every source unit held by one JSON document.
func Decode(file string, data []byte) ([]*ast.SourceUnit, error) {
	var top fields
	if err := json.Unmarshal(data, &top); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: %s: top level is not an object", ErrUnknownFormat, file)
		}
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	d := &decoder{file: file}

	switch {
	case top.nodeType() == "SourceUnit":
		unit, err := d.sourceUnit(data)
		if err != nil {
			return nil, err
		}
		return []*ast.SourceUnit{unit}, nil

	case top["sources"] != nil:
		var sources map[string]fields
		if !top.get("sources", &sources) {
			return nil, fmt.Errorf("%w: %s: sources is not an object", ErrUnknownFormat, file)
		}
		names := make([]string, 0, len(sources))
		for name := range sources {
			names = append(names, name)
		}
		sort.Strings(names)

		var units []*ast.SourceUnit
		for _, name := range names {
			raw, ok := sources[name]["ast"]
			if !ok {
				log.Debugf("%s: source %s has no ast", file, name)
				continue
			}
			unit, err := d.sourceUnit(raw)
			if err != nil {
				return nil, fmt.Errorf("%s: source %s: %w", file, name, err)
			}
			if unit.AbsolutePath == "" {
				unit.AbsolutePath = name
			}
			units = append(units, unit)
		}
		return units, nil

	case top["ast"] != nil:
		unit, err := d.sourceUnit(top["ast"])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		return []*ast.SourceUnit{unit}, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, file)
}

// LoadFile reads and decodes one JSON file.
func LoadFile(path string) ([]*ast.SourceUnit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(path, data)
}

// LoadPaths loads every AST reachable from paths, resolved against root.
// Directories are searched recursively for *.json files, and documents found
// that way which hold no AST are skipped. Files are decoded concurrently.
// Each unit gets the text of its source file when that file exists under
// root.
func LoadPaths(ctx context.Context, root string, paths []string) ([]*ast.SourceUnit, error) {
	files, err := expand(root, paths)
	if err != nil {
		return nil, err
	}

	results := make([][]*ast.SourceUnit, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			units, err := LoadFile(file.path)
			if err != nil {
				if file.discovered && errors.Is(err, ErrUnknownFormat) {
					log.Debugf("skipping %s: %s", file.path, err)
					return nil
				}
				return err
			}
			results[i] = units
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var units []*ast.SourceUnit
	for _, r := range results {
		units = append(units, r...)
	}
	units, err = Dedupe(units)
	if err != nil {
		log.Warningf("%s; node IDs of these files may clash", err)
	}
	for _, unit := range units {
		AttachSource(root, unit)
	}

	log.Infof("loaded %d source units from %d files", len(units), len(files))
	return units, nil
}

type input struct {
	path       string
	discovered bool
}

func expand(root string, paths []string) ([]input, error) {
	var files []input
	seen := make(map[string]bool)
	add := func(path string, discovered bool) {
		if !seen[path] {
			seen[path] = true
			files = append(files, input{path: path, discovered: discovered})
		}
	}

	for _, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(root, p)
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(p, false)
			continue
		}
		err = filepath.WalkDir(p, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !entry.IsDir() && strings.EqualFold(filepath.Ext(path), ".json") {
				add(path, true)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].path < files[j].path })
	return files, nil
}

// Dedupe drops units already seen under the same path and ID, keeping the
// first, and orders the rest by path. Distinct files sharing a unit ID are
// all kept; the returned error wraps ErrIDCollision and names them.
func Dedupe(units []*ast.SourceUnit) ([]*ast.SourceUnit, error) {
	type key struct {
		path string
		id   ast.NodeID
	}
	seen := make(map[key]bool)
	pathsByID := make(map[ast.NodeID][]string)
	out := units[:0:0]
	for _, unit := range units {
		if unit == nil {
			continue
		}
		k := key{path: unit.AbsolutePath, id: unit.ID}
		if seen[k] {
			continue
		}
		seen[k] = true
		pathsByID[unit.ID] = append(pathsByID[unit.ID], unit.AbsolutePath)
		out = append(out, unit)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AbsolutePath < out[j].AbsolutePath })

	var errs []error
	for _, id := range slices.Sorted(maps.Keys(pathsByID)) {
		if paths := pathsByID[id]; len(paths) > 1 {
			sort.Strings(paths)
			errs = append(errs, fmt.Errorf("%w: unit %d is %s", ErrIDCollision, id, strings.Join(paths, ", ")))
		}
	}
	return out, errors.Join(errs...)
}

// AttachSource fills unit.Source from the file its AbsolutePath names, if
// that file can be read.
func AttachSource(root string, unit *ast.SourceUnit) {
	if unit.Source != "" || unit.AbsolutePath == "" {
		return
	}
	path := unit.AbsolutePath
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Debugf("no source text for %s: %s", unit.AbsolutePath, err)
		return
	}
	unit.Source = string(data)
}
