// Package config loads tunables for the memory-SSA analysis core from a
// TOML file, using the same directory-walking, override-by-merge
// discipline used elsewhere in this tree: a file closer to the analysed
// package wins over one found further up the directory tree, and the
// compiled-in defaults sit at the bottom of the stack.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"golang.org/x/xerrors"
)

// fileName is looked for while walking up from a starting directory.
const fileName = "memssa.conf"

// Options controls behaviour in the places where the reaching-definitions
// core has more than one legitimate choice.
type Options struct {
	// StrictIntervalKill makes the interval map drain the left/right
	// residues it computes for a partially-overwritten bucket back into
	// the map, instead of discarding them. With it left false (the
	// default and historical behaviour), a strong update that only
	// partially overlaps an older, wider definition silently drops the
	// part of that older definition lying outside the new write.
	StrictIntervalKill bool `toml:"strict_interval_kill"`

	// EagerGlobalInit, when set (the default), makes a global's
	// registered initializer node count as a definition from the moment
	// the graph is built: memssa.Transformation.AddGlobal splices a
	// synthetic write into the entry block right away. When cleared,
	// initializers are instead consulted lazily, the first time a read
	// reaches a predecessor-less block without finding a definition,
	// which was the original behaviour this port improves on.
	EagerGlobalInit bool `toml:"eager_global_init"`

	// MaxRecursionDepth is a ceiling on predecessor-chasing recursion
	// depth that callers can check their graphs against before running
	// the analysis. The memssa transformation itself does not read it:
	// its predecessor searches recurse without a depth limit.
	MaxRecursionDepth int `toml:"max_recursion_depth"`

	// Verbose records whether a trace of LVN/GVN processing is wanted.
	// memssa.New does not read it; tracing happens only through a
	// report.Logger whose own Verbose field is set.
	Verbose bool `toml:"verbose"`
}

var defaultOptions = Options{
	StrictIntervalKill: false,
	EagerGlobalInit:    true,
	MaxRecursionDepth:  4096,
	Verbose:            false,
}

// Default returns the compiled-in defaults.
func Default() Options {
	return defaultOptions
}

type parsedFile struct {
	opts Options
	meta toml.MetaData
}

// merge overlays the fields that were explicitly present in o's source
// file on top of p, leaving fields o's file didn't mention untouched.
func (p parsedFile) merge(o parsedFile) parsedFile {
	if o.meta.IsDefined("strict_interval_kill") {
		p.opts.StrictIntervalKill = o.opts.StrictIntervalKill
	}
	if o.meta.IsDefined("eager_global_init") {
		p.opts.EagerGlobalInit = o.opts.EagerGlobalInit
	}
	if o.meta.IsDefined("max_recursion_depth") {
		p.opts.MaxRecursionDepth = o.opts.MaxRecursionDepth
	}
	if o.meta.IsDefined("verbose") {
		p.opts.Verbose = o.opts.Verbose
	}
	return p
}

func parseChain(dir string) ([]parsedFile, error) {
	var out []parsedFile
	for dir != "" {
		f, err := os.Open(filepath.Join(dir, fileName))
		if os.IsNotExist(err) {
			ndir := filepath.Dir(dir)
			if ndir == dir {
				break
			}
			dir = ndir
			continue
		}
		if err != nil {
			return nil, xerrors.Errorf("config: opening %s: %w", dir, err)
		}
		var opts Options
		meta, err := toml.DecodeReader(f, &opts)
		f.Close()
		if err != nil {
			return nil, xerrors.Errorf("config: decoding %s: %w", filepath.Join(dir, fileName), err)
		}
		out = append(out, parsedFile{opts, meta})
		ndir := filepath.Dir(dir)
		if ndir == dir {
			break
		}
		dir = ndir
	}
	out = append(out, parsedFile{opts: defaultOptions})
	// out was collected leaf-to-root; reverse it so the loop in Load
	// overlays root-to-leaf, giving the leaf the final say.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// Load walks up from dir looking for memssa.conf files, merging each one
// found on top of the compiled-in defaults; a file nearer to dir takes
// precedence over one further up the tree.
func Load(dir string) (Options, error) {
	chain, err := parseChain(dir)
	if err != nil {
		return Options{}, err
	}
	merged := chain[0]
	for _, pf := range chain[1:] {
		merged = merged.merge(pf)
	}
	return merged.opts, nil
}
