package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/fileopen/internal/config"
	"github.com/specialistvlad/fileopen/internal/ctxlog"
	"github.com/specialistvlad/fileopen/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	environ func() []string
}

// NewLoader creates a new HCL settings loader bound to the process environment.
func NewLoader() *Loader {
	return &Loader{environ: os.Environ}
}

// fileRoot is the top-level schema of a settings file.
type fileRoot struct {
	NotFoundExitCode *int          `hcl:"not_found_exit_code,optional"`
	Logging          *loggingBlock `hcl:"logging,block"`
}

type loggingBlock struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

// Load parses every .hcl file reachable from paths. A directory contributes
// all .hcl files beneath it in lexical order; later files override earlier ones.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Settings, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	evalCtx := l.newEvalContext()
	settings := &config.Settings{}

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		settings.Merge(root.translate())
	}

	logger.Debug("HCL loading complete.", "files", len(files))
	return settings, nil
}

// findAllHCLFiles expands paths into a flat, de-duplicated list of .hcl files.
// Unlike directories, an explicitly named file must carry the .hcl extension.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing settings path %s: %w", path, err)
		}

		if info.IsDir() {
			found, err := fsutil.FindFilesByExtension(path, ".hcl")
			if err != nil {
				return nil, fmt.Errorf("error scanning settings directory %s: %w", path, err)
			}
			for _, f := range found {
				add(f)
			}
			continue
		}

		if filepath.Ext(path) != ".hcl" {
			return nil, fmt.Errorf("settings file %s is not an .hcl file", path)
		}
		add(path)
	}
	return allFiles, nil
}
