/*
Package main is the spec0 command line tool.
It reports which minor version lines of a package are still supported
under a time-based deprecation policy and can emit the result as a
table, JSON, or a version specifier.
*/
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"

	"github.com/git-pkgs/spec0"
	_ "github.com/git-pkgs/spec0/all"
	"github.com/git-pkgs/spec0/internal/conda"
)

type Options struct {
	// Where release histories come from
	OptionsSource OptionsSource `group:"Release source"`
	// How long a minor line stays supported
	OptionsPolicy OptionsPolicy `group:"Support policy"`
	// Output format
	OptionsOutput OptionsOutput `group:"Output"`

	Args struct {
		Packages []string `positional-arg-name:"PACKAGE" required:"1" description:"Package names or package URLs (pkg:pypi/numpy)"`
	} `positional-args:"yes"`
}

type OptionsSource struct {
	Source         string   `short:"s" long:"source"         description:"Release source" choice:"default" choice:"pypi" choice:"conda" choice:"github" default:"default"`
	RegistryURL    string   `short:"u" long:"registry-url"   description:"Override the selected source's base URL"`
	CondaChannel   string   `long:"conda-channel"            description:"Conda channel to read (implies --source conda)"`
	CondaPlatforms []string `long:"conda-platform"           description:"Conda platform subdirectory, repeatable (default: linux-64, noarch)"`
	Timeout        int      `short:"t" long:"timeout"        description:"HTTP timeout in seconds" default:"30"`
	Concurrency    int      `short:"c" long:"concurrency"    description:"Parallel package evaluations" default:"4"`
}

type OptionsPolicy struct {
	Policy           string `short:"p" long:"policy"  description:"Drop date rule" choice:"strict" choice:"quarter" default:"strict"`
	Months           int    `short:"m" long:"months"  description:"Support window in months" default:"24"`
	NoPythonOverride bool   `long:"no-python-override" description:"Apply the standard window to python itself too"`
}

type OptionsOutput struct {
	JSON         bool   `short:"j" long:"json"      description:"Print the support table as JSON"`
	Specifier    bool   `long:"specifier"           description:"Print a version specifier instead of a table"`
	NoUpperBound bool   `long:"no-upper-bound"      description:"Omit the specifier's upper bound"`
	Quiet        bool   `short:"q" long:"quiet"     description:"Suppress diagnostic logging"`
	LogLevel     string `long:"log-level"           description:"Diagnostic log level" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"warn"`
}

// target is one package to evaluate, bound to the source that serves it.
type target struct {
	name string
	src  spec0.Source
}

// evaluation is the outcome for one target.
type evaluation struct {
	pkg       string
	supported map[spec0.Line]spec0.Release
	err       error
}

func main() {
	var opt Options
	parser := flags.NewParser(&opt, flags.Default)
	parser.Usage = "[OPTIONS] PACKAGE..."
	parser.LongDescription = `spec0 computes which minor version lines of a package are still supported:
a line stays supported for a fixed number of months after its first final
release, the newest line never drops. Release histories come from PyPI,
conda channels, or GitHub releases.`
	if _, err := parser.Parse(); err != nil {
		if flagErr, ok := err.(*flags.Error); ok && flagErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opt.OptionsOutput.JSON && opt.OptionsOutput.Specifier {
		fmt.Fprintln(os.Stderr, "--json and --specifier are mutually exclusive")
		os.Exit(1)
	}

	logger := zerolog.Nop()
	if !opt.OptionsOutput.Quiet {
		level, _ := zerolog.ParseLevel(opt.OptionsOutput.LogLevel)
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			Level(level).
			With().Timestamp().Logger()
	}
	spec0.SetLogger(logger)

	client := spec0.NewClient(spec0.WithTimeout(time.Duration(opt.OptionsSource.Timeout) * time.Second))

	src, err := selectSource(opt.OptionsSource, client)
	if err != nil {
		fmt.Fprintf(os.Stderr, "spec0: %v\n", err)
		os.Exit(1)
	}

	targets := make([]target, 0, len(opt.Args.Packages))
	for _, arg := range opt.Args.Packages {
		if strings.HasPrefix(arg, "pkg:") {
			purlSrc, name, err := spec0.NewFromPURL(arg, client)
			if err != nil {
				fmt.Fprintf(os.Stderr, "spec0: %s: %v\n", arg, err)
				os.Exit(1)
			}
			targets = append(targets, target{name: name, src: purlSrc})
			continue
		}
		targets = append(targets, target{name: arg, src: src})
	}

	policy := selectPolicy(opt.OptionsPolicy)

	concurrency := opt.OptionsSource.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]evaluation, len(targets))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	ctx := context.Background()

	for i, tgt := range targets {
		wg.Add(1)
		go func(i int, tgt target) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = evaluate(ctx, tgt, policy)
		}(i, tgt)
	}
	wg.Wait()

	exit := 0
	printed := 0
	for _, res := range results {
		if res.err != nil {
			fmt.Fprintf(os.Stderr, "spec0: %s: %v\n", res.pkg, res.err)
			exit = 1
			continue
		}

		// Blank line between consecutive tables.
		if printed > 0 && !opt.OptionsOutput.JSON && !opt.OptionsOutput.Specifier {
			fmt.Println()
		}
		if err := printResult(os.Stdout, res, policy, opt.OptionsOutput); err != nil {
			fmt.Fprintf(os.Stderr, "spec0: %s: %v\n", res.pkg, err)
			exit = 1
			continue
		}
		printed++
	}
	os.Exit(exit)
}

// selectSource builds the release source the non-purl packages use.
// Naming a conda channel selects the conda source on its own.
func selectSource(opts OptionsSource, client *spec0.Client) (spec0.Source, error) {
	name := opts.Source
	if opts.CondaChannel != "" && name == "default" {
		name = "conda"
	}

	switch name {
	case "default":
		return spec0.DefaultSource(client), nil
	case "conda":
		src := conda.New(opts.RegistryURL, client)
		if opts.CondaChannel != "" {
			src = src.WithChannel(opts.CondaChannel)
		}
		if len(opts.CondaPlatforms) > 0 {
			src = src.WithPlatforms(opts.CondaPlatforms...)
		}
		return src, nil
	default:
		return spec0.New(name, opts.RegistryURL, client)
	}
}

func selectPolicy(opts OptionsPolicy) spec0.DropPolicy {
	window := spec0.Window{
		Months:         opts.Months,
		PythonOverride: !opts.NoPythonOverride,
	}
	if opts.Policy == "quarter" {
		return spec0.QuarterAligned{Window: window}
	}
	return spec0.StrictDate{Window: window}
}

func evaluate(ctx context.Context, tgt target, p spec0.DropPolicy) evaluation {
	releases, err := tgt.src.Releases(ctx, tgt.name)
	if err != nil {
		return evaluation{pkg: tgt.name, err: err}
	}
	supported, err := spec0.Supported(p, tgt.name, releases, p.Now())
	if err != nil {
		return evaluation{pkg: tgt.name, err: err}
	}
	return evaluation{pkg: tgt.name, supported: supported}
}

func printResult(w io.Writer, res evaluation, p spec0.DropPolicy, opts OptionsOutput) error {
	switch {
	case opts.JSON:
		report := spec0.NewReport(p, res.pkg, res.supported)
		data, err := json.MarshalIndent(report, "", "    ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case opts.Specifier:
		spec, err := spec0.Specifier(res.supported, !opts.NoUpperBound)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s %s\n", res.pkg, spec)
		return err
	default:
		return printTable(w, res.pkg, p, res.supported)
	}
}

// printTable renders one package's support table:
//
//	Package    | Release Date | Drop Date
//	--------------------------------------
//	numpy 1.26 | 2023-09-16   | 2025-09-16
func printTable(w io.Writer, pkg string, p spec0.DropPolicy, supported map[spec0.Line]spec0.Release) error {
	lines := make([]spec0.Line, 0, len(supported))
	for line := range supported {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[j].Less(lines[i]) })

	nameWidth := len("Package")
	names := make([]string, len(lines))
	for i, line := range lines {
		names[i] = fmt.Sprintf("%s %s", pkg, line)
		if len(names[i]) > nameWidth {
			nameWidth = len(names[i])
		}
	}

	header := fmt.Sprintf("%-*s | %-12s | %-10s", nameWidth, "Package", "Release Date", "Drop Date")
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", len(header))); err != nil {
		return err
	}

	const dateFormat = "2006-01-02"
	for i, line := range lines {
		release := supported[line]
		_, err := fmt.Fprintf(w, "%-*s | %-12s | %-10s\n",
			nameWidth, names[i],
			release.Date.Format(dateFormat),
			p.DropDate(pkg, release).Format(dateFormat))
		if err != nil {
			return err
		}
	}
	return nil
}
