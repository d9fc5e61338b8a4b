package checker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// DefaultWorkers is the pool size used when none is configured.
const DefaultWorkers = 4

// WorkerPool manages parallel processing of batch tasks.
type WorkerPool[T any] struct {
	ctx            context.Context
	work           func(target string) (T, error)
	tasks          chan Task
	results        chan TaskResult[T]
	progressChan   chan ProgressUpdate
	cancel         context.CancelFunc
	wg             sync.WaitGroup
	numWorkers     int
	totalTasks     int
	completedTasks int
	mu             sync.RWMutex
}

// Task is one target of a batch; Index is its position in the input.
type Task struct {
	Target string
	Index  int
}

// TaskResult represents the result of a task.
type TaskResult[T any] struct {
	Error  error
	Result T
	Task   Task
}

// ProgressUpdate provides progress information.
type ProgressUpdate struct {
	Target      string
	Status      TaskStatus
	Message     string
	Index       int
	Completed   int
	Total       int
	ElapsedTime time.Duration
}

// TaskStatus represents the status of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// NewWorkerPool creates a pool of numWorkers goroutines running work. The
// pool stops taking tasks when ctx is cancelled.
func NewWorkerPool[T any](ctx context.Context, numWorkers int, work func(target string) (T, error)) *WorkerPool[T] {
	if numWorkers <= 0 {
		numWorkers = DefaultWorkers
	}

	ctx, cancel := context.WithCancel(ctx)

	return &WorkerPool[T]{
		numWorkers:   numWorkers,
		work:         work,
		tasks:        make(chan Task, numWorkers*2),
		results:      make(chan TaskResult[T], numWorkers*2),
		progressChan: make(chan ProgressUpdate, 100),
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Start initializes and starts the worker pool.
func (wp *WorkerPool[T]) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

func (wp *WorkerPool[T]) worker(workerID int) {
	defer wp.wg.Done()

	for {
		select {
		case <-wp.ctx.Done():
			return
		case task, ok := <-wp.tasks:
			if !ok {
				return
			}

			wp.processTask(workerID, task)
		}
	}
}

func (wp *WorkerPool[T]) processTask(workerID int, task Task) {
	start := time.Now()

	wp.sendProgress(ProgressUpdate{
		Index:   task.Index,
		Target:  task.Target,
		Status:  TaskStatusProcessing,
		Message: fmt.Sprintf("worker %d started", workerID),
	})

	result, err := wp.work(task.Target)
	elapsed := time.Since(start)

	wp.mu.Lock()
	wp.completedTasks++
	completed := wp.completedTasks
	total := wp.totalTasks
	wp.mu.Unlock()

	status := TaskStatusCompleted
	message := fmt.Sprintf("worker %d completed in %v", workerID, elapsed)

	if err != nil {
		status = TaskStatusFailed
		message = fmt.Sprintf("worker %d failed: %v", workerID, err)
	}

	wp.sendProgress(ProgressUpdate{
		Index:       task.Index,
		Target:      task.Target,
		Status:      status,
		Completed:   completed,
		Total:       total,
		ElapsedTime: elapsed,
		Message:     message,
	})

	wp.results <- TaskResult[T]{
		Task:   task,
		Result: result,
		Error:  err,
	}
}

// sendProgress drops the update when nobody keeps up with the channel.
func (wp *WorkerPool[T]) sendProgress(update ProgressUpdate) {
	select {
	case wp.progressChan <- update:
	default:
	}
}

// SubmitTask submits a task to the worker pool.
func (wp *WorkerPool[T]) SubmitTask(task Task) {
	wp.mu.Lock()
	wp.totalTasks++
	wp.mu.Unlock()

	wp.sendProgress(ProgressUpdate{
		Index:   task.Index,
		Target:  task.Target,
		Status:  TaskStatusPending,
		Message: "queued",
	})

	select {
	case wp.tasks <- task:
	case <-wp.ctx.Done():
	}
}

// SubmitBatch submits multiple tasks at once.
func (wp *WorkerPool[T]) SubmitBatch(tasks []Task) {
	for _, task := range tasks {
		wp.SubmitTask(task)
	}
}

// Results returns the results channel for reading results.
func (wp *WorkerPool[T]) Results() <-chan TaskResult[T] {
	return wp.results
}

// Progress returns the progress channel for reading progress updates.
func (wp *WorkerPool[T]) Progress() <-chan ProgressUpdate {
	return wp.progressChan
}

// Wait closes the task queue, waits for the workers and closes the result
// and progress channels.
func (wp *WorkerPool[T]) Wait() {
	close(wp.tasks)
	wp.wg.Wait()
	close(wp.results)
	close(wp.progressChan)
	wp.cancel()
}

// Shutdown cancels pending work and waits for the workers.
func (wp *WorkerPool[T]) Shutdown() {
	wp.cancel()
	wp.Wait()
}

// GetStats returns current processing statistics.
func (wp *WorkerPool[T]) GetStats() WorkerPoolStats {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	return WorkerPoolStats{
		TotalTasks:     wp.totalTasks,
		CompletedTasks: wp.completedTasks,
		PendingTasks:   wp.totalTasks - wp.completedTasks,
		NumWorkers:     wp.numWorkers,
	}
}

// WorkerPoolStats provides statistics about the worker pool.
type WorkerPoolStats struct {
	TotalTasks     int `json:"total_tasks"`
	CompletedTasks int `json:"completed_tasks"`
	PendingTasks   int `json:"pending_tasks"`
	NumWorkers     int `json:"num_workers"`
}

// RunBatch processes targets on a pool of numWorkers and returns the
// results in input order. The first task error is returned, wrapped with
// the target's position; a cancelled ctx wins over task errors and leaves
// unprocessed targets with zero results.
func RunBatch[T any](ctx context.Context, numWorkers int, targets []string, work func(target string) (T, error)) ([]T, WorkerPoolStats, error) {
	pool := NewWorkerPool(ctx, numWorkers, work)
	pool.Start()

	go func() {
		for i, target := range targets {
			pool.SubmitTask(Task{Index: i, Target: target})
		}

		pool.Wait()
	}()

	results := make([]T, len(targets))

	var firstErr error

	for taskResult := range pool.Results() {
		if taskResult.Error != nil {
			if firstErr == nil {
				firstErr = errors.Wrapf(taskResult.Error, "target #%d", taskResult.Task.Index+1)
			}

			continue
		}

		results[taskResult.Task.Index] = taskResult.Result
	}

	if err := ctx.Err(); err != nil {
		return results, pool.GetStats(), err
	}

	return results, pool.GetStats(), firstErr
}
