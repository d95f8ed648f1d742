package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProcessor struct {
	mu      sync.Mutex
	seen    []string
	failFor string
	active  int
	peak    int
}

func (s *stubProcessor) ProcessDocument(_ context.Context, pdfPath string) (*Summary, error) {
	s.mu.Lock()
	s.active++
	if s.active > s.peak {
		s.peak = s.active
	}
	s.seen = append(s.seen, pdfPath)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.active--
		s.mu.Unlock()
	}()

	if s.failFor != "" && strings.Contains(pdfPath, s.failFor) {
		return nil, errors.New("unreadable document")
	}
	return &Summary{Document: filepath.Base(pdfPath), Complete: true}, nil
}

func seedDocs(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("%PDF-1.4"), 0o644))
	}
	return dir
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunner_ProcessesEveryDocument(t *testing.T) {
	dir := seedDocs(t, "b.pdf", "a.pdf", "c.pdf", "notes.txt")
	stub := &stubProcessor{}
	r := NewRunner(discardLogger(), stub, 2)

	res, err := r.Run(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, res.Succeeded, 3, "non-pdf files are ignored")
	assert.Empty(t, res.Failed)
	assert.Equal(t, "a.pdf", res.Succeeded[0].Document)
	assert.Equal(t, "c.pdf", res.Succeeded[2].Document)
	assert.LessOrEqual(t, stub.peak, 2, "worker pool bound holds")
}

func TestRunner_DocumentFailureDoesNotStopBatch(t *testing.T) {
	dir := seedDocs(t, "a.pdf", "bad.pdf", "c.pdf")
	stub := &stubProcessor{failFor: "bad"}
	r := NewRunner(discardLogger(), stub, 1)

	res, err := r.Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Len(t, res.Succeeded, 2)
	require.Len(t, res.Failed, 1)
	for path, ferr := range res.Failed {
		assert.Contains(t, path, "bad.pdf")
		assert.ErrorContains(t, ferr, "unreadable")
	}
	assert.Len(t, stub.seen, 3, "every document was attempted")
}

func TestRunner_EmptyDirectory(t *testing.T) {
	r := NewRunner(discardLogger(), &stubProcessor{}, 4)

	res, err := r.Run(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, res.Succeeded)
	assert.Empty(t, res.Failed)
}
