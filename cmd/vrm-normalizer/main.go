package main

import (
	"bufio"
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"

	vrm "github.com/vrm-tools/vrm-normalizer-go"
	"github.com/vrm-tools/vrm-normalizer-go/util/osx"
	"github.com/vrm-tools/vrm-normalizer-go/util/signalx"
)

var Version = "v0.0.0"

var (
	remoteURL     string
	force         bool
	mmap          bool
	debug         bool
	concurrency   int
	token         string
	cacheDir      string
	cacheTTL      time.Duration
	skipProxy     bool
	skipTLSVerify bool
	skipDNSCache  bool
	skipRangeDet  bool
)

func main() {
	name := filepath.Base(os.Args[0])
	app := &cli.App{
		Name:                   name,
		Usage:                  "Normalize a VRM file: upgrade legacy metadata, sweep unreferenced resources, and compact its binary buffers.",
		UsageText:              name + " [global options] [path ...]",
		Version:                Version,
		UseShortOptionHandling: true,
		HideVersion:            true,
		HideHelp:               true,
		Reader:                 os.Stdin,
		Writer:                 os.Stdout,
		ErrWriter:              os.Stderr,
		OnUsageError: func(c *cli.Context, _ error, _ bool) error {
			return cli.ShowAppHelp(c)
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:               "help",
				Aliases:            []string{"h"},
				Usage:              "Print the usage.",
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Aliases:            []string{"v"},
				Usage:              "Print the version.",
				DisableDefaultText: true,
			},
			&cli.StringFlag{
				Destination: &remoteURL,
				Value:       remoteURL,
				Category:    "Source",
				Name:        "url",
				Usage:       "Url of a remote VRM file to normalize, in addition to any local paths given positionally.",
			},
			&cli.BoolFlag{
				Destination: &force,
				Value:       force,
				Name:        "force",
				Aliases:     []string{"f"},
				Usage:       "Overwrite an existing output file without prompting.",
			},
			&cli.BoolFlag{
				Destination: &mmap,
				Value:       mmap,
				Name:        "mmap",
				Usage:       "Memory-map local input files instead of buffered reads.",
			},
			&cli.BoolFlag{
				Destination: &debug,
				Value:       debug,
				Name:        "debug",
				Usage:       "Enable debugging, verbosity, including remote HTTP wire traces.",
			},
			&cli.IntFlag{
				Destination: &concurrency,
				Value:       concurrency,
				Name:        "concurrency",
				Usage:       "Maximum number of files to process at once, default is GOMAXPROCS.",
			},
			&cli.StringFlag{
				Destination: &token,
				Value:       token,
				Category:    "Source/Remote",
				Name:        "token",
				Usage:       "Bearer auth token to fetch the VRM file, works with --url.",
			},
			&cli.StringFlag{
				Destination: &cacheDir,
				Value:       cacheDir,
				Category:    "Source/Remote",
				Name:        "cache-dir",
				Usage:       "Directory to cache downloaded VRM bytes in, works with --url, default is disabled.",
			},
			&cli.DurationFlag{
				Destination: &cacheTTL,
				Value:       cacheTTL,
				Category:    "Source/Remote",
				Name:        "cache-ttl",
				Usage:       "Expiration of cached downloaded bytes, works with --cache-dir, default is forever.",
			},
			&cli.BoolFlag{
				Destination: &skipProxy,
				Value:       skipProxy,
				Category:    "Source/Remote",
				Name:        "skip-proxy",
				Usage:       "Skip proxy settings, works with --url.",
			},
			&cli.BoolFlag{
				Destination: &skipTLSVerify,
				Value:       skipTLSVerify,
				Category:    "Source/Remote",
				Name:        "skip-tls-verify",
				Usage:       "Skip TLS verification, works with --url.",
			},
			&cli.BoolFlag{
				Destination: &skipDNSCache,
				Value:       skipDNSCache,
				Category:    "Source/Remote",
				Name:        "skip-dns-cache",
				Usage:       "Skip DNS cache, works with --url.",
			},
			&cli.BoolFlag{
				Destination: &skipRangeDet,
				Value:       skipRangeDet,
				Category:    "Source/Remote",
				Name:        "skip-range-download-detect",
				Usage:       "Skip range-download detection, works with --url.",
			},
		},
		Action: func(c *cli.Context) error {
			if c.Bool("help") {
				return cli.ShowAppHelp(c)
			}
			if c.Bool("version") {
				cli.ShowVersion(c)
				return nil
			}
			return run(c.Context, c.Args().Slice())
		},
	}

	if err := app.RunContext(signalx.Handler(), os.Args); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// source is one input VRM file, local or remote (§6.1/§6.2).
type source struct {
	path   string
	remote bool
}

func run(ctx context.Context, paths []string) error {
	sources := make([]source, 0, len(paths)+1)
	for _, p := range paths {
		sources = append(sources, source{path: p})
	}
	if remoteURL != "" {
		sources = append(sources, source{path: remoteURL, remote: true})
	}
	if len(sources) == 0 {
		return cli.Exit("no input path or --url given", 1)
	}

	opts := readOptions()

	reports := make([]vrm.FileReport, len(sources))
	items := make([]vrm.BatchItem, len(sources))
	for i := range sources {
		i := i
		items[i] = vrm.BatchItem{
			Path: sources[i].path,
			Process: func(ctx context.Context) error {
				r, err := processOne(ctx, sources[i], opts)
				if err != nil {
					return fmt.Errorf("%s: %w", sources[i].path, err)
				}
				reports[i] = r
				return nil
			},
		}
	}

	errs := vrm.ProcessBatch(ctx, items, concurrency)

	printReports(reports)

	for _, err := range errs {
		if err != nil {
			return cli.Exit(err, 1)
		}
	}
	return nil
}

func readOptions() []vrm.VRMReadOption {
	opts := []vrm.VRMReadOption{}
	if debug {
		opts = append(opts, vrm.UseDebug())
	}
	if mmap {
		opts = append(opts, vrm.UseMMap())
	}
	if token != "" {
		opts = append(opts, vrm.UseBearerAuth(token))
	}
	if cacheDir != "" {
		opts = append(opts, vrm.UseCache(cacheDir, cacheTTL))
	}
	if skipProxy {
		opts = append(opts, vrm.SkipProxy())
	}
	if skipTLSVerify {
		opts = append(opts, vrm.SkipTLSVerification())
	}
	if skipDNSCache {
		opts = append(opts, vrm.SkipDNSCache())
	}
	if skipRangeDet {
		opts = append(opts, vrm.SkipRangeDownloadDetection())
	}
	return opts
}

// processOne loads, normalizes, and saves one source, returning an empty,
// zero-Path report (a normal, non-error outcome) if the user declines to
// overwrite an existing output file.
func processOne(ctx context.Context, src source, opts []vrm.VRMReadOption) (vrm.FileReport, error) {
	var (
		v       *vrm.VRM
		closeFn func() error
		err     error
	)

	outPath, err := outputPathFor(src)
	if err != nil {
		return vrm.FileReport{}, err
	}

	if src.remote {
		v, err = vrm.LoadRemote(ctx, src.path, opts...)
		closeFn = func() error { return nil }
	} else {
		v, closeFn, err = vrm.LoadLocal(src.path, opts...)
	}
	if err != nil {
		return vrm.FileReport{}, err
	}
	defer closeFn()

	if osx.ExistsFile(outPath) && !force {
		ok, err := confirmOverwrite(outPath)
		if err != nil {
			return vrm.FileReport{}, err
		}
		if !ok {
			return vrm.FileReport{}, nil
		}
	}

	// §5's order of side effects: outPath is truncated (or created) the
	// moment the JSON chunk is known-good, before the binary portion is
	// ever validated. A Normalize failure below still leaves the partial
	// write this file already made — that is the mandated behavior, not a
	// bug to route around with a temp file.
	f, err := osx.CreateFile(outPath, 0o644)
	if err != nil {
		return vrm.FileReport{}, fmt.Errorf("create output file: %w", err)
	}
	defer osx.Close(f)

	if err := v.Normalize(); err != nil {
		return vrm.FileReport{}, fmt.Errorf("normalize: %w", err)
	}
	if err := v.Save(f); err != nil {
		return vrm.FileReport{}, fmt.Errorf("save output file: %w", err)
	}

	report := v.Report()
	report.Path = src.path
	return report, nil
}

// outputPathFor computes the §6.1 output location: <input_dir>/result/
// <input_filename> for a local file, or <cwd>/result/<basename-of-url> for
// a remote one.
func outputPathFor(src source) (string, error) {
	if !src.remote {
		dir, file := filepath.Split(src.path)
		return filepath.Join(dir, "result", file), nil
	}

	u, err := url.Parse(src.path)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}
	return filepath.Join(cwd, "result", filepath.Base(u.Path)), nil
}

func confirmOverwrite(path string) (bool, error) {
	fmt.Fprintf(os.Stdout, "Overwrite %s? [y/N]: ", path)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false, scanner.Err()
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes", nil
}

func printReports(reports []vrm.FileReport) {
	tb := table.NewWriter()
	tb.SetOutputMirror(os.Stdout)
	tb.AppendHeader(table.Row{
		"Path", "Materials", "Textures", "Images", "Accessors", "Samplers",
		"BufferViews", "Buffers", "Bytes Before", "Bytes After", "Compaction",
	})

	var done []vrm.FileReport
	for _, r := range reports {
		if r.Path == "" {
			continue // skipped (declined overwrite) or not yet reached
		}
		done = append(done, r)
		tb.AppendRow(table.Row{
			r.Path,
			fmt.Sprintf("%d -> %d", r.Before.Materials, r.After.Materials),
			fmt.Sprintf("%d -> %d", r.Before.Textures, r.After.Textures),
			fmt.Sprintf("%d -> %d", r.Before.Images, r.After.Images),
			fmt.Sprintf("%d -> %d", r.Before.Accessors, r.After.Accessors),
			fmt.Sprintf("%d -> %d", r.Before.Samplers, r.After.Samplers),
			fmt.Sprintf("%d -> %d", r.Before.BufferViews, r.After.BufferViews),
			fmt.Sprintf("%d -> %d", r.Before.Buffers, r.After.Buffers),
			vrm.SizeScalar(r.BytesBefore),
			vrm.SizeScalar(r.BytesAfter),
			fmt.Sprintf("%.1f%%", r.CompactionRatio()*100),
		})
	}

	if len(done) > 1 {
		s := vrm.Summarize(done)
		tb.AppendFooter(table.Row{
			fmt.Sprintf("%d files", s.FileCount), "", "", "", "", "", "", "", "", "mean",
			fmt.Sprintf("%.1f%% (+/- %.1f%%)", s.MeanCompactionRatio*100, s.StddevCompactionRatio*100),
		})
	}

	tb.Render()
}
