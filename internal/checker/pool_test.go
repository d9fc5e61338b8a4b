package checker

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestNewWorkerPool(t *testing.T) {
	pool := NewWorkerPool(context.Background(), 0, New(DefaultConfig()).Check)
	if pool == nil {
		t.Fatal("NewWorkerPool returned nil")
	}

	if pool.numWorkers != DefaultWorkers {
		t.Errorf("NewWorkerPool() workers = %d, want %d", pool.numWorkers, DefaultWorkers)
	}

	if pool.tasks == nil || pool.results == nil || pool.progressChan == nil {
		t.Error("NewWorkerPool() channels not initialized")
	}

	pool.Shutdown()
}

func TestWorkerPoolProcessing(t *testing.T) {
	failure := errors.New("boom")

	check := func(target string) (*Result, error) {
		if target == "fail" {
			return nil, failure
		}

		return &Result{Target: target, Valid: true}, nil
	}

	pool := NewWorkerPool(context.Background(), 2, check)

	var (
		updates []ProgressUpdate
		mu      sync.Mutex
		wg      sync.WaitGroup
	)

	wg.Add(1)

	go func() {
		defer wg.Done()

		for update := range pool.Progress() {
			mu.Lock()
			updates = append(updates, update)
			mu.Unlock()
		}
	}()

	pool.Start()

	go func() {
		pool.SubmitBatch([]Task{
			{Index: 0, Target: "json://localhost"},
			{Index: 1, Target: "fail"},
			{Index: 2, Target: "xml://localhost"},
		})
		pool.Wait()
	}()

	var succeeded, failed int

	for result := range pool.Results() {
		if result.Error != nil {
			failed++

			if !errors.Is(result.Error, failure) || result.Task.Index != 1 {
				t.Errorf("result for %v error = %v", result.Task, result.Error)
			}

			continue
		}

		succeeded++

		if result.Result.Target != result.Task.Target {
			t.Errorf("result target = %v, want %v", result.Result.Target, result.Task.Target)
		}
	}

	wg.Wait()

	if succeeded != 2 || failed != 1 {
		t.Errorf("results = %d succeeded, %d failed, want 2 and 1", succeeded, failed)
	}

	stats := pool.GetStats()
	if stats.TotalTasks != 3 || stats.CompletedTasks != 3 || stats.PendingTasks != 0 {
		t.Errorf("GetStats() = %+v", stats)
	}

	mu.Lock()
	defer mu.Unlock()

	statuses := make(map[TaskStatus]int)
	for _, update := range updates {
		statuses[update.Status]++
	}

	if statuses[TaskStatusFailed] != 1 {
		t.Errorf("progress failed updates = %d, want 1", statuses[TaskStatusFailed])
	}

	if statuses[TaskStatusCompleted] != 2 {
		t.Errorf("progress completed updates = %d, want 2", statuses[TaskStatusCompleted])
	}
}

func TestRunBatch(t *testing.T) {
	targets := []string{"a", "bb", "ccc", "dddd", "eeeee"}

	lengths, stats, err := RunBatch(context.Background(), 2, targets, func(target string) (int, error) {
		return len(target), nil
	})
	if err != nil {
		t.Fatalf("RunBatch() unexpected error: %v", err)
	}

	for i, n := range lengths {
		if n != i+1 {
			t.Errorf("RunBatch() result %d = %d, want %d", i, n, i+1)
		}
	}

	if stats.CompletedTasks != len(targets) || stats.NumWorkers != 2 {
		t.Errorf("RunBatch() stats = %+v", stats)
	}
}
