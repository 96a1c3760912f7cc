package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/routedoc/routedoc/internal/cli"
	"github.com/routedoc/routedoc/internal/utils"
)

func main() {
	var (
		moduleFlag  = flag.String("module", "", "Custom module path for qualifying type names (defaults to go.mod module)")
		outFlag     = flag.String("out", "routes.txt", "Report destination path")
		formatFlag  = flag.String("format", cli.FormatText, "Report format: text or yaml")
		verboseFlag = flag.Bool("verbose", false, "Enable verbose output")
		quietFlag   = flag.Bool("quiet", false, "Only show errors")
		helpFlag    = flag.Bool("help", false, "Show help information")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <directory-paths...>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Routedoc Route Report Generator\n")
		fmt.Fprintf(os.Stderr, "Scans directories for Go handler methods with route:: annotations and writes a route report.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nArguments:\n")
		fmt.Fprintf(os.Stderr, "  directory-paths    One or more directories to scan for annotated Go files\n")
		fmt.Fprintf(os.Stderr, "                     Supports Go-style patterns like './...' for recursive scanning\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s ./...                                  # Scan everything recursively\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s ./internal/controllers                 # Scan one directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --out docs/routes.txt ./...            # Custom report location\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --format yaml --out routes.yaml ./...  # Machine-readable export\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --module github.com/myorg/myapp ./...  # Explicit module path\n", os.Args[0])
	}

	flag.Parse()

	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: At least one directory path is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	var diagnostics *utils.DiagnosticSystem
	if *quietFlag {
		diagnostics = utils.NewQuietDiagnostics()
	} else if *verboseFlag {
		diagnostics = utils.NewVerboseDiagnostics()
	} else {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}

	diagnostics.Section("Routedoc Route Report Generator")

	if *verboseFlag {
		diagnostics.Subsection("Configuration")
		diagnostics.List("Target directories: %s", strings.Join(args, ", "))
		diagnostics.List("Report: %s (%s)", *outFlag, *formatFlag)
		if *moduleFlag != "" {
			diagnostics.List("Custom module: %s", *moduleFlag)
		}
	}

	generator := cli.NewGenerator(diagnostics)
	summary, err := generator.Run(cli.Config{
		Module: *moduleFlag,
		Out:    *outFlag,
		Format: *formatFlag,
	}, args)
	if err != nil {
		diagnostics.Error("Report generation failed: %v", err)
		os.Exit(1)
	}

	diagnostics.Summary("Report Complete!", []utils.Stat{
		{Name: "Packages scanned", Value: summary.PackagesScanned},
		{Name: "Controllers found", Value: summary.Controllers},
		{Name: "Routes documented", Value: summary.Routes},
		{Name: "Warnings", Value: summary.Warnings},
		{Name: "Report", Value: summary.ReportPath},
	})

	diagnostics.Success("Route report written to %s", summary.ReportPath)
}
