package runner

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cybertec-postgresql/scankit/internal/discovery"
	"github.com/cybertec-postgresql/scankit/internal/report"
)

func makeFiles(n int) []discovery.DiscoveredFile {
	files := make([]discovery.DiscoveredFile, n)
	for i := range files {
		files[i] = discovery.DiscoveredFile{RelativePath: fmt.Sprintf("f%02d.sql", i)}
	}
	return files
}

func TestWorkerPool_PreservesOrder(t *testing.T) {
	files := makeFiles(20)
	var running, peak int32

	pool := NewWorkerPool(4)
	reports, err := pool.Run(context.Background(), files, func(ctx context.Context, f *discovery.DiscoveredFile) (*report.FileReport, error) {
		n := atomic.AddInt32(&running, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		atomic.AddInt32(&running, -1)
		return &report.FileReport{Path: f.RelativePath}, nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for i, r := range reports {
		if r.Path != files[i].RelativePath {
			t.Errorf("report %d: expected %s, got %s", i, files[i].RelativePath, r.Path)
		}
	}
	if peak > 4 {
		t.Errorf("expected at most 4 concurrent jobs, saw %d", peak)
	}
}

func TestWorkerPool_FirstErrorInFileOrder(t *testing.T) {
	files := makeFiles(6)
	errA := errors.New("a")
	errB := errors.New("b")

	reports, err := NewWorkerPool(3).Run(context.Background(), files, func(ctx context.Context, f *discovery.DiscoveredFile) (*report.FileReport, error) {
		switch f.RelativePath {
		case "f02.sql":
			return nil, errA
		case "f04.sql":
			return nil, errB
		}
		return &report.FileReport{Path: f.RelativePath}, nil
	})
	if !errors.Is(err, errA) {
		t.Errorf("expected first error a, got %v", err)
	}
	if reports[5] == nil || reports[5].Path != "f05.sql" {
		t.Error("expected later files to be processed")
	}
}

func TestWorkerPool_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int32
	_, err := NewWorkerPool(2).Run(ctx, makeFiles(3), func(ctx context.Context, f *discovery.DiscoveredFile) (*report.FileReport, error) {
		atomic.AddInt32(&calls, 1)
		return &report.FileReport{}, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if calls != 0 {
		t.Errorf("expected no job to run, got %d", calls)
	}
}

func TestWorkerPool_Empty(t *testing.T) {
	reports, err := NewWorkerPool(0).Run(context.Background(), nil, nil)
	if reports != nil || err != nil {
		t.Errorf("Run() = %v, %v", reports, err)
	}
}
