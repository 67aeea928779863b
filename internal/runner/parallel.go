package runner

import (
	"context"
	"sync"

	"github.com/cybertec-postgresql/scankit/internal/discovery"
	"github.com/cybertec-postgresql/scankit/internal/logger"
	"github.com/cybertec-postgresql/scankit/internal/report"
)

// Job processes a single file. It must be safe to call concurrently for
// different files.
type Job func(ctx context.Context, file *discovery.DiscoveredFile) (*report.FileReport, error)

// WorkerPool manages parallel file processing
type WorkerPool struct {
	maxWorkers int
}

// NewWorkerPool creates a new worker pool running at most maxWorkers jobs at once
func NewWorkerPool(maxWorkers int) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &WorkerPool{maxWorkers: maxWorkers}
}

// Run applies job to every file and returns the reports in file order.
// The first error in file order is returned after all workers stopped;
// files not started before the context was cancelled fail with its error.
func (wp *WorkerPool) Run(ctx context.Context, files []discovery.DiscoveredFile, job Job) ([]*report.FileReport, error) {
	numFiles := len(files)
	if numFiles == 0 {
		return nil, nil
	}

	workers := min(wp.maxWorkers, numFiles)
	logger.Debugf("processing %d file(s) with %d worker(s)", numFiles, workers)

	jobs := make(chan int, numFiles)
	results := make(chan *fileResult, numFiles)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go wp.worker(ctx, i, files, job, jobs, results, &wg)
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	// Wait for all workers to complete in a separate goroutine
	go func() {
		wg.Wait()
		close(results)
	}()

	reports := make([]*report.FileReport, numFiles)
	errs := make([]error, numFiles)
	for result := range results {
		reports[result.index] = result.report
		errs[result.index] = result.err
	}

	for _, err := range errs {
		if err != nil {
			return reports, err
		}
	}
	return reports, nil
}

// fileResult represents the outcome of one job
type fileResult struct {
	report *report.FileReport
	err    error
	index  int
}

// worker is the goroutine that processes file jobs
func (wp *WorkerPool) worker(ctx context.Context, workerID int, files []discovery.DiscoveredFile,
	job Job, jobs <-chan int, results chan<- *fileResult, wg *sync.WaitGroup) {
	defer wg.Done()

	for index := range jobs {
		// Check if context was cancelled before starting the job
		if err := ctx.Err(); err != nil {
			results <- &fileResult{err: err, index: index}
			continue
		}

		logger.Debugf("worker %d: processing %s", workerID, files[index].RelativePath)
		rep, err := job(ctx, &files[index])
		results <- &fileResult{report: rep, err: err, index: index}
	}
}
