package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConf(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, fileName), []byte(body), 0o644); err != nil {
		t.Fatalf("writing %s: %v", fileName, err)
	}
}

func TestLoadWithNoConfigFilesReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	opts, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if opts != Default() {
		t.Fatalf("opts = %+v, want defaults %+v", opts, Default())
	}
}

func TestLoadOverridesDefaultsFromSingleFile(t *testing.T) {
	dir := t.TempDir()
	writeConf(t, dir, `strict_interval_kill = true`+"\n"+`max_recursion_depth = 10`+"\n")

	opts, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !opts.StrictIntervalKill {
		t.Fatal("expected strict_interval_kill to be overridden to true")
	}
	if opts.MaxRecursionDepth != 10 {
		t.Fatalf("max_recursion_depth = %d, want 10", opts.MaxRecursionDepth)
	}
	if opts.EagerGlobalInit != Default().EagerGlobalInit {
		t.Fatal("a field absent from the file must keep the default, not be zeroed")
	}
}

func TestLoadMergesRootToLeaf(t *testing.T) {
	root := t.TempDir()
	writeConf(t, root, `strict_interval_kill = true`+"\n")

	leaf := filepath.Join(root, "pkg", "subpkg")
	if err := os.MkdirAll(leaf, 0o755); err != nil {
		t.Fatal(err)
	}
	writeConf(t, leaf, `strict_interval_kill = false`+"\n"+`verbose = true`+"\n")

	opts, err := Load(leaf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if opts.StrictIntervalKill {
		t.Fatal("the leaf file's explicit false should win over the root file's true")
	}
	if !opts.Verbose {
		t.Fatal("the leaf file's verbose=true should be applied")
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeConf(t, dir, "this is not valid toml {{{")

	if _, err := Load(dir); err == nil {
		t.Fatal("expected an error decoding a malformed config file")
	}
}

func TestDefaultFieldTagsMatchFileSyntax(t *testing.T) {
	dir := t.TempDir()
	writeConf(t, dir, `eager_global_init = false`+"\n")

	opts, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if opts.EagerGlobalInit {
		t.Fatal("expected eager_global_init = false to be honoured")
	}
}
