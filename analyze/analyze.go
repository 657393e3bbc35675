// Package analyze runs the configured dataflow domains over graph files and
// collects per flow point results.
package analyze

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/gnolang/fileflow/internal/analysis/cfg"
	"github.com/gnolang/fileflow/internal/analysis/dataflow"
	"github.com/gnolang/fileflow/internal/analysis/domains"
	"github.com/gnolang/fileflow/internal/analysis/lattice"
	"github.com/gnolang/fileflow/internal/config"
	"github.com/gnolang/fileflow/internal/graphfile"
	tt "github.com/gnolang/fileflow/internal/types"
)

// Report holds the results of every configured domain for one graph.
type Report struct {
	File    string         `json:"file"`
	Name    string         `json:"name"`
	Domains []DomainReport `json:"domains"`
	Issues  []tt.Issue     `json:"issues,omitempty"`
}

// DomainReport holds the results of one domain.
type DomainReport struct {
	Domain       string `json:"domain"`
	Iterations   int    `json:"iterations"`
	Propagations int    `json:"propagations"`
	FlowPoints   int    `json:"flow_points"`
	Rows         []Row  `json:"rows"`
}

// Row is the value of a domain at one flow point. Original and Current are
// empty when the flow point is not reachable from an entry.
type Row struct {
	FlowPoint int    `json:"flow_point"`
	Name      string `json:"name"`
	Text      string `json:"text"`
	Original  string `json:"original,omitempty"`
	Current   string `json:"current,omitempty"`
}

// Analyzer runs the domains named in its configuration.
type Analyzer struct {
	logger   *zap.Logger
	config   config.Config
	progress io.Writer
	cache    *Cache
}

// New creates an analyzer. A nil logger disables logging.
func New(logger *zap.Logger, conf config.Config) (*Analyzer, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{logger: logger, config: conf, progress: os.Stderr}, nil
}

// SetProgressOutput redirects the progress bar shown for directories.
func (a *Analyzer) SetProgressOutput(w io.Writer) {
	a.progress = w
}

// SetCache makes File reuse reports of graph files whose content did not
// change. A nil cache disables caching.
func (a *Analyzer) SetCache(c *Cache) {
	a.cache = c
}

// File loads the graph stored at path and analyzes it.
func (a *Analyzer) File(ctx context.Context, path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{File: path}, err
	}
	if a.cache != nil {
		if report, ok := a.cache.Get(path, data); ok {
			a.logger.Debug("Using cached report", zap.String("file", path))
			return report, nil
		}
	}

	g, err := graphfile.Parse(data)
	if err != nil {
		return Report{File: path}, fmt.Errorf("%s: %w", path, err)
	}
	report, err := a.Graph(ctx, g)
	report.File = path
	for i := range report.Issues {
		report.Issues[i].Filename = path
	}
	if err == nil && a.cache != nil {
		a.cache.Set(path, data, report)
	}
	return report, err
}

// Graph runs every configured domain over g, in configuration order.
func (a *Analyzer) Graph(ctx context.Context, g *graphfile.Graph) (Report, error) {
	report := Report{Name: g.Name}
	opts := []dataflow.Option{
		dataflow.WithMaxIterations(a.config.Analysis.MaxIterations),
		dataflow.WithLogger(a.logger),
	}

	for _, name := range a.config.Analysis.Domains {
		var (
			dr  DomainReport
			err error
		)
		switch name {
		case config.DomainReachability:
			key := cfg.NewKey[lattice.Flag](name)
			dr, err = runDomain(ctx, g, dataflow.NewEngine(key, domains.Reachability{}, opts...), lattice.Flag.String)
		case config.DomainLabels:
			key := cfg.NewKey[lattice.Set[string]](name)
			dr, err = runDomain(ctx, g, dataflow.NewEngine(key, domains.Labels{}, opts...), lattice.Set[string].String)
		case config.DomainPresence:
			key := cfg.NewKey[lattice.State](name)
			dr, err = runDomain(ctx, g, dataflow.NewEngine(key, domains.Presence{}, opts...), FormatState)
			if err == nil {
				for _, issue := range domains.PresenceIssues(g.Graph.FlowPoints(), key) {
					if g.Nolint.IsNolint(issue.FlowPoint, issue.Rule) {
						continue
					}
					report.Issues = append(report.Issues, issue)
				}
			}
		default:
			err = fmt.Errorf("unknown domain %q", name)
		}
		if err != nil {
			return report, fmt.Errorf("graph %s: %w", g.Name, err)
		}
		report.Domains = append(report.Domains, dr)
	}

	return report, nil
}

func runDomain[T any](ctx context.Context, g *graphfile.Graph, engine *dataflow.Engine[T], format func(T) string) (DomainReport, error) {
	dr := DomainReport{Domain: engine.Key().Name()}
	res, err := engine.Run(ctx, g.Entries...)
	if err != nil {
		return dr, err
	}
	dr.Iterations = res.Iterations
	dr.Propagations = res.Propagations
	dr.FlowPoints = res.FlowPoints

	for _, fp := range g.Graph.FlowPoints() {
		row := Row{FlowPoint: fp.ID(), Name: g.NameOf(fp), Text: fp.Text()}
		if v, ok := engine.Original(fp); ok {
			row.Original = format(v)
		}
		if v, ok := engine.Value(fp); ok {
			row.Current = format(v)
		}
		dr.Rows = append(dr.Rows, row)
	}
	return dr, nil
}

// FormatState renders a presence state with paths in sorted order.
func FormatState(state lattice.State) string {
	paths := make([]string, 0, len(state))
	for p := range state {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	parts := make([]string, 0, len(paths))
	for _, p := range paths {
		parts = append(parts, fmt.Sprintf("%s: %s", p, state[p]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

var desiredExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
}

func hasDesiredExtension(path string) bool {
	return desiredExtensions[filepath.Ext(path)]
}

// CollectFiles expands directories in paths into the graph files they
// contain. Plain files are kept as given.
func CollectFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		err = filepath.Walk(path, func(filePath string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !fileInfo.IsDir() && hasDesiredExtension(filePath) {
				files = append(files, filePath)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("error walking directory %s: %w", path, err)
		}
	}
	return files, nil
}

// Paths analyzes every graph file found under paths. Files are processed
// concurrently; reports keep the order of the collected files. The first
// failing file aborts the run.
func (a *Analyzer) Paths(ctx context.Context, paths []string) ([]Report, error) {
	files, err := CollectFiles(paths)
	if err != nil {
		return nil, err
	}
	switch len(files) {
	case 0:
		return nil, nil
	case 1:
		report, err := a.File(ctx, files[0])
		if err != nil {
			return nil, err
		}
		return []Report{report}, nil
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(a.progress),
		progressbar.OptionSetDescription("analyzing"),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	reports := make([]Report, len(files))
	errs := make([]error, len(files))

	// limit the number of workers
	sem := make(chan struct{}, runtime.NumCPU())
	var wg sync.WaitGroup

	for i, file := range files {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(i int, file string) {
			defer wg.Done()
			defer func() { <-sem }()

			reports[i], errs[i] = a.File(ctx, file)
			if errs[i] != nil {
				a.logger.Error("Error processing file", zap.String("file", file), zap.Error(errs[i]))
			}
			_ = bar.Add(1)
		}(i, file)
	}
	wg.Wait()
	_ = bar.Finish()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return reports, nil
}
