package pipeline

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nmodha/docvani/internal/doctree"
)

func TestNewJob_StartsQueued(t *testing.T) {
	job := NewJob("spec.docx", []byte("bytes"), []string{"Scope"}, true)

	if job.ID == "" {
		t.Error("expected a job ID")
	}
	if job.Status != StatusQueued {
		t.Errorf("expected status %q, got %q", StatusQueued, job.Status)
	}
	if string(job.FileData()) != "bytes" {
		t.Errorf("expected file data preserved, got %q", job.FileData())
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := NewJob("spec.docx", nil, nil, false)

	transitions := []JobStatus{
		StatusExtracting,
		StatusTranslating,
		StatusSynthesizing,
		StatusResolving,
	}

	for _, status := range transitions {
		before := job.UpdatedAt
		// Small sleep to ensure time difference is detectable.
		time.Sleep(time.Millisecond)
		job.SetStatus(status)

		if job.Status != status {
			t.Errorf("expected status %q, got %q", status, job.Status)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", status)
		}
	}
}

func TestJob_CompleteExposesResult(t *testing.T) {
	job := NewJob("spec.docx", []byte("bytes"), nil, false)
	tree := doctree.NewTree()
	tree.Topics.Set("Scope", doctree.NewNode())

	job.Complete(Result{Tree: tree, Topics: 1, Duration: 1250 * time.Millisecond})

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Errorf("expected status %q, got %q", StatusCompleted, snap.Status)
	}
	if snap.Data == nil || snap.Data.Topics.Len() != 1 {
		t.Errorf("expected result tree in snapshot, got %+v", snap.Data)
	}
	if snap.ProcessingTime != 1.25 {
		t.Errorf("expected processing time in seconds, got %v", snap.ProcessingTime)
	}
	if job.FileData() != nil {
		t.Error("expected upload bytes released after completion")
	}
}

func TestJob_FailRecordsError(t *testing.T) {
	job := NewJob("spec.docx", []byte("bytes"), nil, false)
	job.Fail(errors.New("extract: boom"))

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Errorf("expected status %q, got %q", StatusFailed, snap.Status)
	}
	if !strings.Contains(snap.Error, "boom") {
		t.Errorf("expected error message in snapshot, got %q", snap.Error)
	}
	if snap.Data != nil {
		t.Errorf("expected no data on failed job, got %+v", snap.Data)
	}
	if job.FileData() != nil {
		t.Error("expected upload bytes released after failure")
	}
}

func TestJob_SnapshotBeforeCompletionHasNoData(t *testing.T) {
	job := NewJob("spec.docx", nil, nil, false)
	snap := job.Snapshot()
	if snap.Data != nil || snap.ProcessingTime != 0 {
		t.Errorf("expected bare snapshot while queued, got %+v", snap)
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := NewJob("spec.docx", nil, nil, false)
	store.Put(job)

	got := store.Get(job.ID)
	if got == nil {
		t.Fatal("expected to get job back")
	}
	if got.ID != job.ID {
		t.Errorf("expected ID %q, got %q", job.ID, got.ID)
	}
}

func TestJobStore_GetMissing(t *testing.T) {
	store := NewJobStore(time.Hour)
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := NewJob("old.docx", nil, nil, false)
	store.Put(expired)

	// Wait for the TTL to pass.
	time.Sleep(100 * time.Millisecond)

	// Add a fresh job.
	fresh := NewJob("new.docx", nil, nil, false)
	store.Put(fresh)

	store.Cleanup()

	if store.Get(expired.ID) != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get(fresh.ID) == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}

func TestJobStore_CleanupEmpty(t *testing.T) {
	store := NewJobStore(time.Hour)
	// Should not panic on empty store.
	store.Cleanup()
}
