// Package cli wires the scanner, source provider, route builder and report
// writer into one documentation run.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/routedoc/routedoc/internal/report"
	"github.com/routedoc/routedoc/internal/resolve"
	"github.com/routedoc/routedoc/internal/source"
	"github.com/routedoc/routedoc/internal/utils"
)

// Output formats accepted by the -format flag.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Config holds the invocation parameters supplied by the caller. The core
// resolution logic never reads these directly.
type Config struct {
	Module string // module path override; discovered from go.mod when empty
	Out    string // report destination path
	Format string // FormatText or FormatYAML
}

// Summary reports what a run produced.
type Summary struct {
	PackagesScanned int
	Controllers     int
	Routes          int
	Warnings        int
	ReportPath      string
}

// Generator runs one documentation pass. Route grouping state lives inside
// the run, so repeated Run calls never leak routes across passes.
type Generator struct {
	diag *utils.DiagnosticSystem
}

// NewGenerator creates a generator reporting through the given diagnostics.
func NewGenerator(diag *utils.DiagnosticSystem) *Generator {
	return &Generator{diag: diag}
}

// Run scans the argument directories, resolves every annotated member and
// writes the report. It returns a summary of the run.
func (g *Generator) Run(cfg Config, args []string) (*Summary, error) {
	scanner := source.NewScanner()
	dirs, err := scanner.Scan(args)
	if err != nil {
		return nil, fmt.Errorf("failed to scan directories: %w", err)
	}
	if len(dirs) == 0 {
		return nil, fmt.Errorf("no Go source directories found in %v", args)
	}
	g.diag.Verbose("scanning %d director(ies)", len(dirs))

	module, rootDir, err := g.resolveModule(cfg.Module)
	if err != nil {
		return nil, err
	}
	g.diag.Debug("module %s rooted at %s", module, rootDir)

	provider := source.NewGoProvider(module, rootDir)
	if err := provider.Load(dirs); err != nil {
		return nil, fmt.Errorf("failed to load source model: %w", err)
	}

	builder := resolve.NewBuilder(g.diag)
	group, err := builder.Build(provider.AnnotatedMembers())
	if err != nil {
		return nil, fmt.Errorf("failed to build route model: %w", err)
	}

	var content string
	switch cfg.Format {
	case FormatYAML:
		content, err = report.RenderYAML(group)
		if err != nil {
			return nil, err
		}
	case FormatText, "":
		content = report.NewRenderer().Render(group)
	default:
		return nil, fmt.Errorf("unknown report format %q (supported: %s, %s)", cfg.Format, FormatText, FormatYAML)
	}

	if err := report.NewWriter().Write(cfg.Out, content); err != nil {
		return nil, err
	}

	return &Summary{
		PackagesScanned: provider.PackageCount(),
		Controllers:     len(group.Types()),
		Routes:          group.RouteCount(),
		Warnings:        g.diag.WarningCount(),
		ReportPath:      cfg.Out,
	}, nil
}

// resolveModule returns the module path and the directory containing its
// go.mod. With an explicit override the current directory is the root.
func (g *Generator) resolveModule(override string) (string, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", "", fmt.Errorf("failed to get current directory: %w", err)
	}

	if override != "" {
		return override, cwd, nil
	}

	goModPath, err := utils.FindGoModFile(cwd)
	if err != nil {
		return "", "", fmt.Errorf("failed to determine module name: %w (consider using --module)", err)
	}
	module, err := utils.ParseModuleName(goModPath)
	if err != nil {
		return "", "", err
	}
	return module, filepath.Dir(goModPath), nil
}
