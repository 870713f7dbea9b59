package site

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vk/testgridgo/internal/ctxlog"
	"github.com/vk/testgridgo/internal/model"
	"github.com/vk/testgridgo/internal/store"
)

// Summary is the per-generation accounting surfaced to the operator.
type Summary struct {
	Pages   int
	Orphans int
}

// Generator renders the static site from a store snapshot.
type Generator struct {
	store *store.Store
}

// NewGenerator creates a generator reading from the given store.
func NewGenerator(s *store.Store) *Generator {
	return &Generator{store: s}
}

// snapshot is everything the page writers need, read from the store once.
type snapshot struct {
	catalog  *model.Catalog
	cases    []string
	finals   map[string]map[string]store.FinalResult // target -> case -> result
	orphans  []string                                // run targets absent from the catalog
	families map[string][]*model.Target              // family -> public targets, name order
}

// Generate renders the full site into outDir, creating it if needed. It
// never mutates the store; generating twice from an unchanged store yields a
// byte-identical tree.
func (g *Generator) Generate(ctx context.Context, outDir string) (*Summary, error) {
	logger := ctxlog.FromContext(ctx)

	snap, err := g.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	for _, dir := range []string{"", "assets", "families", filepath.Join("families", "assets"), "features", "details"} {
		if err := os.MkdirAll(filepath.Join(outDir, dir), 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	summary := &Summary{Orphans: len(snap.orphans)}

	if err := writeFile(outDir, filepath.Join("assets", "site.css"), []byte(stylesheet), summary); err != nil {
		return nil, err
	}
	if err := g.writeIndex(outDir, snap, summary); err != nil {
		return nil, err
	}
	if err := g.writeFamilies(outDir, snap, summary); err != nil {
		return nil, err
	}
	if err := g.writeFeatures(outDir, snap, summary); err != nil {
		return nil, err
	}
	if err := g.writeMatrix(outDir, snap, summary); err != nil {
		return nil, err
	}
	if err := g.writeDetails(ctx, outDir, snap, summary); err != nil {
		return nil, err
	}

	logger.Info("Site generated.", "out_dir", outDir, "pages", summary.Pages, "orphaned_rows", summary.Orphans)
	return summary, nil
}

func (g *Generator) snapshot(ctx context.Context) (*snapshot, error) {
	cat, err := g.store.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	cases, err := g.store.TestCases(ctx)
	if err != nil {
		return nil, err
	}
	finalRows, err := g.store.FinalResults(ctx)
	if err != nil {
		return nil, err
	}
	runTargets, err := g.store.TargetsWithRuns(ctx)
	if err != nil {
		return nil, err
	}

	snap := &snapshot{
		catalog:  cat,
		cases:    cases,
		finals:   make(map[string]map[string]store.FinalResult),
		families: make(map[string][]*model.Target),
	}
	for _, row := range finalRows {
		if snap.finals[row.Target] == nil {
			snap.finals[row.Target] = make(map[string]store.FinalResult)
		}
		snap.finals[row.Target][row.Case] = row
	}
	for _, name := range runTargets {
		if cat.Target(name) == nil {
			snap.orphans = append(snap.orphans, name)
		}
	}
	for i := range cat.Targets {
		t := &cat.Targets[i]
		if !t.Public {
			continue
		}
		snap.families[t.Family] = append(snap.families[t.Family], t)
	}
	return snap, nil
}

func (snap *snapshot) familyNames() []string {
	names := make([]string, 0, len(snap.families))
	for name := range snap.families {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// visibleFeatures filters the mapping down to features shown on pages.
func (snap *snapshot) visibleFeatures() []model.Feature {
	var visible []model.Feature
	for _, f := range snap.catalog.Features {
		if !f.Hidden {
			visible = append(visible, f)
		}
	}
	return visible
}

type pageHeader struct {
	Title       string
	AssetPrefix string
}

func (g *Generator) writeIndex(outDir string, snap *snapshot, summary *Summary) error {
	type familyLink struct {
		Name, File  string
		TargetCount int
	}
	data := struct {
		pageHeader
		Families []familyLink
	}{pageHeader: pageHeader{Title: "Hardware Test Results", AssetPrefix: ""}}

	for _, name := range snap.familyNames() {
		data.Families = append(data.Families, familyLink{
			Name:        name,
			File:        fileName(name) + ".html",
			TargetCount: len(snap.families[name]),
		})
	}
	return renderPage(outDir, "index.html", "index", data, summary)
}

func (g *Generator) writeFamilies(outDir string, snap *snapshot, summary *Summary) error {
	for _, family := range snap.familyNames() {
		targets := snap.families[family]

		// Columns are the features observed anywhere in this family.
		inFamily := make(map[string]bool)
		for _, t := range targets {
			for _, f := range t.Features {
				inFamily[f] = true
			}
		}
		type featureCol struct {
			FriendlyName, File string
		}
		var cols []featureCol
		var colNames []string
		for _, f := range snap.visibleFeatures() {
			if inFamily[f.Name] {
				cols = append(cols, featureCol{FriendlyName: f.FriendlyName, File: fileName(f.Name) + ".html"})
				colNames = append(colNames, f.Name)
			}
		}

		type row struct {
			Target string
			Cells  []bool
		}
		type memRow struct {
			Target string
			RAM    []string
			Flash  []string
		}
		data := struct {
			pageHeader
			Features []featureCol
			Rows     []row
			Memories []memRow
			DotFile  string
		}{
			pageHeader: pageHeader{Title: family + " Target Family", AssetPrefix: "../"},
			Features:   cols,
			DotFile:    fileName(family) + ".dot",
		}

		for _, t := range targets {
			has := make(map[string]bool, len(t.Features))
			for _, f := range t.Features {
				has[f] = true
			}
			r := row{Target: t.Name}
			for _, name := range colNames {
				r.Cells = append(r.Cells, has[name])
			}
			data.Rows = append(data.Rows, r)

			mr := memRow{Target: t.Name}
			for _, mem := range t.Memories {
				desc := fmt.Sprintf("%s: %d kiB @ 0x%08X", mem.Name, mem.Size/1024, mem.Start)
				if mem.Kind == model.MemoryIROM {
					mr.Flash = append(mr.Flash, desc)
				} else {
					mr.RAM = append(mr.RAM, desc)
				}
			}
			data.Memories = append(data.Memories, mr)
		}

		page := filepath.Join("families", fileName(family)+".html")
		if err := renderPage(outDir, page, "family", data, summary); err != nil {
			return err
		}

		dot := familyDot(family, snap.catalog)
		dotPath := filepath.Join("families", "assets", data.DotFile)
		if err := writeFile(outDir, dotPath, []byte(dot), summary); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) writeFeatures(outDir string, snap *snapshot, summary *Summary) error {
	type featureRow struct {
		FriendlyName, File, Define, Description string
	}
	indexData := struct {
		pageHeader
		Features []featureRow
	}{pageHeader: pageHeader{Title: "Feature Index", AssetPrefix: "../"}}

	for _, f := range snap.visibleFeatures() {
		indexData.Features = append(indexData.Features, featureRow{
			FriendlyName: f.FriendlyName,
			File:         fileName(f.Name) + ".html",
			Define:       f.Define,
			Description:  f.Description,
		})
	}
	if err := renderPage(outDir, filepath.Join("features", "index.html"), "features_index", indexData, summary); err != nil {
		return err
	}

	for _, f := range snap.visibleFeatures() {
		type famRow struct {
			Family, FamilyFile, Targets string
		}
		data := struct {
			pageHeader
			Feature model.Feature
			Rows    []famRow
		}{
			pageHeader: pageHeader{Title: "Feature: " + f.FriendlyName, AssetPrefix: "../"},
			Feature:    f,
		}

		for _, family := range snap.familyNames() {
			var supporting []string
			for _, t := range snap.families[family] {
				for _, name := range t.Features {
					if name == f.Name {
						supporting = append(supporting, t.Name)
						break
					}
				}
			}
			if len(supporting) > 0 {
				data.Rows = append(data.Rows, famRow{
					Family:     family,
					FamilyFile: fileName(family) + ".html",
					Targets:    strings.Join(supporting, ", "),
				})
			}
		}

		page := filepath.Join("features", fileName(f.Name)+".html")
		if err := renderPage(outDir, page, "feature", data, summary); err != nil {
			return err
		}
	}
	return nil
}

type matrixCell struct {
	HasData    bool
	Class      string
	Label      string
	DetailFile string
}

func (g *Generator) writeMatrix(outDir string, snap *snapshot, summary *Summary) error {
	type row struct {
		Target   string
		Orphaned bool
		Cells    []matrixCell
	}
	data := struct {
		pageHeader
		Cases []string
		Rows  []row
	}{
		pageHeader: pageHeader{Title: "Test Result Matrix", AssetPrefix: ""},
		Cases:      snap.cases,
	}

	// Every public catalog target appears, runs or not: coverage gaps must
	// be visible. Orphaned run history renders after the catalog rows.
	var rowTargets []string
	for i := range snap.catalog.Targets {
		if snap.catalog.Targets[i].Public {
			rowTargets = append(rowTargets, snap.catalog.Targets[i].Name)
		}
	}
	sort.Strings(rowTargets)

	appendRow := func(target string, orphaned bool) {
		r := row{Target: target, Orphaned: orphaned}
		for _, testCase := range snap.cases {
			final, ok := snap.finals[target][testCase]
			if !ok {
				r.Cells = append(r.Cells, matrixCell{})
				continue
			}
			r.Cells = append(r.Cells, matrixCell{
				HasData:    true,
				Class:      outcomeClass(final.Outcome),
				Label:      string(final.Outcome),
				DetailFile: detailFile(target, testCase),
			})
		}
		data.Rows = append(data.Rows, r)
	}

	for _, target := range rowTargets {
		appendRow(target, false)
	}
	for _, target := range snap.orphans {
		appendRow(target, true)
	}

	return renderPage(outDir, "matrix.html", "matrix", data, summary)
}

func (g *Generator) writeDetails(ctx context.Context, outDir string, snap *snapshot, summary *Summary) error {
	type attemptRow struct {
		Index       int
		Outcome     model.Outcome
		Class       string
		Reason      string
		Batch       string
		Placeholder bool
	}

	targets := make([]string, 0, len(snap.finals))
	for target := range snap.finals {
		targets = append(targets, target)
	}
	sort.Strings(targets)

	for _, target := range targets {
		cases := make([]string, 0, len(snap.finals[target]))
		for testCase := range snap.finals[target] {
			cases = append(cases, testCase)
		}
		sort.Strings(cases)

		for _, testCase := range cases {
			final := snap.finals[target][testCase]
			attempts, err := g.store.Attempts(ctx, target, testCase)
			if err != nil {
				return err
			}

			data := struct {
				pageHeader
				Target, Case string
				Final        model.Outcome
				FinalClass   string
				FinalReason  string
				Attempts     []attemptRow
			}{
				pageHeader:  pageHeader{Title: fmt.Sprintf("%s on %s", testCase, target), AssetPrefix: "../../"},
				Target:      target,
				Case:        testCase,
				Final:       final.Outcome,
				FinalClass:  outcomeClass(final.Outcome),
				FinalReason: final.Reason,
			}
			for _, att := range attempts {
				data.Attempts = append(data.Attempts, attemptRow{
					Index:       att.Index,
					Outcome:     att.Outcome,
					Class:       outcomeClass(att.Outcome),
					Reason:      att.Reason,
					Batch:       att.Batch,
					Placeholder: att.Placeholder,
				})
			}

			page := filepath.Join("details", detailFile(target, testCase))
			if err := os.MkdirAll(filepath.Dir(filepath.Join(outDir, page)), 0o755); err != nil {
				return fmt.Errorf("create detail directory: %w", err)
			}
			if err := renderPage(outDir, page, "detail", data, summary); err != nil {
				return err
			}
		}
	}
	return nil
}

func renderPage(outDir, relPath, tmpl string, data any, summary *Summary) error {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, tmpl, data); err != nil {
		return fmt.Errorf("render %s: %w", relPath, err)
	}
	return writeFile(outDir, relPath, buf.Bytes(), summary)
}

func writeFile(outDir, relPath string, content []byte, summary *Summary) error {
	path := filepath.Join(outDir, relPath)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", relPath, err)
	}
	summary.Pages++
	return nil
}

func outcomeClass(o model.Outcome) string {
	return "outcome-" + strings.ToLower(string(o))
}

func detailFile(target, testCase string) string {
	return fileName(target) + "/" + fileName(testCase) + ".html"
}

// fileName maps an arbitrary name onto a safe, stable file name component.
func fileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, name)
}
