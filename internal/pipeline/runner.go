// Package pipeline drives documents through extraction, translation,
// speech synthesis and URL resolution, either blocking or as queued
// background jobs.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"

	"github.com/nmodha/docvani/internal/doctree"
	"github.com/nmodha/docvani/internal/extractor"
)

// ErrNoContent means extraction produced no topics, so there is
// nothing to translate or synthesize.
var ErrNoContent = errors.New("no content extracted from document")

// TreeAnnotator transforms a tree into an annotated copy. Both the
// translation and the speech annotator have this shape.
type TreeAnnotator interface {
	Annotate(ctx context.Context, tree *doctree.Tree) (*doctree.Tree, error)
}

// URLResolver maps stored artifact IDs to their public URLs.
type URLResolver interface {
	ResolveURLs(ctx context.Context, ids []string) (map[string]string, error)
}

// Input describes one document run.
type Input struct {
	Filename   string
	Data       []byte
	Topics     []string
	SaveStages bool

	// Progress, when set, is told as each stage begins.
	Progress func(JobStatus)
}

// Result is the outcome of a completed run.
type Result struct {
	Tree      *doctree.Tree
	Topics    int
	Sections  int
	Artifacts int
	Resolved  int
	Duration  time.Duration
}

// Runner executes the document pipeline stage by stage.
type Runner struct {
	translator TreeAnnotator
	speaker    TreeAnnotator
	resolver   URLResolver
	outputDir  string
	log        *slog.Logger
}

// NewRunner wires the pipeline stages together. outputDir receives the
// per-stage JSON snapshots when a run asks for them.
func NewRunner(translator, speaker TreeAnnotator, resolver URLResolver, outputDir string, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{
		translator: translator,
		speaker:    speaker,
		resolver:   resolver,
		outputDir:  outputDir,
		log:        log,
	}
}

// Process runs a document through every stage and blocks until done.
// Extraction problems and context cancellation fail the run; per-node
// translation and synthesis failures degrade the tree instead. A URL
// resolution failure leaves the artifact IDs unresolved and completes
// the run anyway.
func (r *Runner) Process(ctx context.Context, in Input) (Result, error) {
	start := time.Now()
	log := r.log.With("filename", in.Filename)
	progress := in.Progress
	if progress == nil {
		progress = func(JobStatus) {}
	}

	progress(StatusExtracting)
	tree, err := extractor.Extract(bytes.NewReader(in.Data), in.Filename, in.Topics)
	if err != nil {
		return Result{}, fmt.Errorf("extract: %w", err)
	}
	if tree.Topics.Len() == 0 {
		return Result{}, ErrNoContent
	}
	log.Info("document extracted", "topics", tree.Topics.Len())
	r.saveStage(in.SaveStages, "extracted.json", tree, log)

	progress(StatusTranslating)
	tree, err = r.translator.Annotate(ctx, tree)
	if err != nil {
		return Result{}, fmt.Errorf("translate: %w", err)
	}
	r.saveStage(in.SaveStages, "translated.json", tree, log)

	progress(StatusSynthesizing)
	tree, err = r.speaker.Annotate(ctx, tree)
	if err != nil {
		return Result{}, fmt.Errorf("synthesize: %w", err)
	}

	progress(StatusResolving)
	ids := tree.CollectSpeechFileIDs()
	resolved := 0
	if len(ids) > 0 {
		urls, err := r.resolver.ResolveURLs(ctx, ids)
		if err != nil {
			log.Warn("url resolution failed, leaving artifact ids unresolved", "error", err)
		} else {
			tree = tree.AttachSpeechURLs(urls)
			resolved = len(urls)
		}
	}
	r.saveStage(in.SaveStages, "final_output.json", tree, log)

	res := Result{
		Tree:      tree,
		Topics:    tree.Topics.Len(),
		Sections:  countSections(tree),
		Artifacts: len(ids),
		Resolved:  resolved,
		Duration:  time.Since(start),
	}
	log.Info("document processed",
		"topics", res.Topics,
		"sections", res.Sections,
		"artifacts", res.Artifacts,
		"resolved", res.Resolved,
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

// saveStage writes a snapshot of the tree after a stage. Snapshots are
// a debugging aid, so failures only warn.
func (r *Runner) saveStage(enabled bool, name string, tree *doctree.Tree, log *slog.Logger) {
	if !enabled {
		return
	}
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		log.Warn("stage snapshot failed", "stage", name, "error", err)
		return
	}
	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		log.Warn("stage snapshot failed", "stage", name, "error", err)
		return
	}
	if err := os.WriteFile(filepath.Join(r.outputDir, name), data, 0o644); err != nil {
		log.Warn("stage snapshot failed", "stage", name, "error", err)
	}
}

func countSections(tree *doctree.Tree) int {
	n := 0
	_ = tree.Walk(func(string, []string, *doctree.Node) error {
		n++
		return nil
	})
	return n
}
