/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package concurrent

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"
)

//===----------------------------------------------------------------------------------------====//
// WorkerPoolExecutorConfig
//===----------------------------------------------------------------------------------------====//

// WorkerPoolExecutorConfig configures a WorkerPoolExecutor.
type WorkerPoolExecutorConfig struct {
	// MaxPoolSize is the upper bound on the number of worker goroutines (required, > 0).
	MaxPoolSize uint32

	// MinPoolSize is the number of workers the pool tries to keep alive even when idle.
	MinPoolSize uint32

	// KeepAliveTime bounds how long a worker above MinPoolSize waits idle before exiting. It is
	// passed to Queue.Poll as the timeout, so it takes effect only with a Queue whose Poll honours
	// its timeout; the default queue's Poll does not, and with it idle workers never exit before
	// shutdown.
	KeepAliveTime time.Duration

	// Queue stores tasks awaiting a free worker. A ring-buffer-backed Queue is used when nil.
	Queue Queue
}

// Validate checks that the config describes a usable pool.
func (config *WorkerPoolExecutorConfig) Validate() error {
	if config.MaxPoolSize == 0 {
		return errors.New(`WorkerPoolExecutor: MaxPoolSize must be a non-zero value which specifies ` +
			`the maximum number of workers to be created by the executor. If you have no idea, try to ` +
			`set the value to uint32(runtime.GOMAXPROCS(-1)).`)
	}

	if config.MaxPoolSize < config.MinPoolSize {
		return fmt.Errorf(`WorkerPoolExecutor: MaxPoolSize (%d) should be greater than MinPoolSize (%d)`,
			config.MaxPoolSize, config.MinPoolSize)
	}
	return nil
}

//===----------------------------------------------------------------------------------------====//
// poolState
//===----------------------------------------------------------------------------------------====//

// poolState packs a WorkerPoolExecutor's run phase and live worker count into one int64 so both
// can be read and updated together with a single CAS, without a mutex on the hot submit/poll path.
//
// The run phase occupies the high 32 bits, the worker count the low 32 bits.
type poolState int64

// poolPhase is the run phase stored in the high bits of a poolState.
type poolPhase int64

const (
	poolPhaseMask int64 = -4294967296 // 0xffffffff00000000

	// poolRunning is the only phase with the sign bit set, which makes any poolState carrying it
	// negative — so IsRunning is a single comparison against zero.
	poolRunning poolPhase = poolPhase(poolPhaseMask)

	// poolShuttingDown means Shutdown was called: queued tasks still drain, but nothing new is
	// accepted.
	poolShuttingDown = 0

	// poolTerminated means the queue is empty and every worker has exited.
	poolTerminated = 4294967296 // 0x1 << 32
)

func makePoolState(phase poolPhase, workers uint32) poolState {
	return poolState(int64(phase) | int64(workers))
}

// Phase extracts the run phase.
func (s poolState) Phase() poolPhase {
	return poolPhase(int64(s) & poolPhaseMask)
}

// Workers returns the number of workers accounted for by this state.
func (s poolState) Workers() uint32 {
	return uint32(s & 0xffffffff)
}

// Load reads the state word atomically; required even for "read-only" uses since the word is
// mutated from many goroutines without a mutex.
//
// See https://golang.org/doc/articles/race_detector.html#Primitive_unprotected_variable.
func (s *poolState) Load() poolState {
	return poolState(atomic.LoadInt64((*int64)(s)))
}

// AdvancePhase moves the run phase forward (RUNNING -> SHUTTING-DOWN -> TERMINATED only) with CAS,
// retrying until it either wins or finds the phase has already advanced past newPhase.
func (s *poolState) AdvancePhase(newPhase poolPhase) (oldState poolState) {
	for {
		oldState = *s
		if int64(oldState) >= int64(newPhase) {
			return
		}

		next := makePoolState(newPhase, oldState.Workers())
		if atomic.CompareAndSwapInt64((*int64)(s), int64(oldState), int64(next)) {
			return
		}
	}
}

func (s poolState) IsRunning() bool {
	return s < 0
}

func (s poolState) IsShuttingDown() bool {
	return s >= poolShuttingDown
}

func (s poolState) IsTerminated() bool {
	return s >= poolTerminated
}

// CompareAndAddWorker atomically moves the worker count from old to old+1.
func (s *poolState) CompareAndAddWorker(old poolState) bool {
	return atomic.CompareAndSwapInt64((*int64)(s), int64(old), int64(old+1))
}

// CompareAndDropWorker atomically moves the worker count from old to old-1.
func (s *poolState) CompareAndDropWorker(old poolState) bool {
	return atomic.CompareAndSwapInt64((*int64)(s), int64(old), int64(old-1))
}

// DropWorker unconditionally decrements the worker count and returns the resulting state.
func (s *poolState) DropWorker() poolState {
	return poolState(atomic.AddInt64((*int64)(s), -1))
}

//===----------------------------------------------------------------------------------------====//
// workerPoolTask
//===----------------------------------------------------------------------------------------====//

// workerPoolTask wraps a submitted Task with the bookkeeping WorkerPoolExecutor needs: a handle
// waiters can block on, and the intrusive "next" link workerPoolTaskQueue threads it onto.
type workerPoolTask struct {
	Task
	executor *WorkerPoolExecutor

	// settled guards result, err and cond.
	settled sync.Mutex
	cond    *sync.Cond

	result interface{}
	err    error

	// next links this task into the owning workerPoolTaskQueue.
	next *workerPoolTask
}

var (
	_ Task       = (*workerPoolTask)(nil)
	_ TaskHandle = (*workerPoolTask)(nil)
)

func newWorkerPoolTask(task Task, executor *WorkerPoolExecutor) *workerPoolTask {
	t := &workerPoolTask{
		Task:     task,
		executor: executor,
	}
	t.cond = sync.NewCond(&t.settled)
	return t
}

// Cancel implements TaskHandle.
func (task *workerPoolTask) Cancel() error {
	if err := task.executor.cancelTask(task); err != nil {
		return err
	}
	task.deliver(nil, ErrTaskCancelled)
	return nil
}

// deliver records the task's outcome and wakes everyone blocked in AwaitResult.
func (task *workerPoolTask) deliver(result interface{}, err error) {
	lock := &task.settled
	lock.Lock()

	task.result = result
	task.err = err
	task.cond.Broadcast()

	// A nil cond is this task's "has a result" flag; see isSettled.
	task.cond = nil

	lock.Unlock()
}

func (task *workerPoolTask) isSettled() bool {
	return task.cond == nil
}

// AwaitResult implements TaskHandle. The timeout is not honoured: AwaitResult blocks until the task
// settles and never returns ErrkAwaitTaskResultTimeout.
func (task *workerPoolTask) AwaitResult(timeout time.Duration) (interface{}, error) {
	lock := &task.settled
	lock.Lock()

	if !task.isSettled() {
		// BUG(zonr): Support timed wait.
		task.cond.Wait()
	}

	result, err := task.result, task.err
	lock.Unlock()

	return result, err
}

//===----------------------------------------------------------------------------------------====//
// workerPoolTaskQueue
//===----------------------------------------------------------------------------------------====//

// workerPoolTaskQueue is the default Queue: a circular singly-linked list threaded through each
// task's intrusive next field, so enqueuing costs no extra allocation beyond the task itself.
type workerPoolTaskQueue struct {
	// tail.next is the head of the ring; nil means empty.
	//
	// Empty() reads tail without holding mutex (to stay cheap on the common poll path), so it must
	// go through atomic.{Load,Store}Pointer to satisfy the race detector even though plain
	// dereference would work on the architectures this targets.
	tail unsafe.Pointer // *workerPoolTask

	mutex sync.Mutex

	// waitForPush is nil once the queue is closed.
	waitForPush *sync.Cond
}

func newWorkerPoolTaskQueue() *workerPoolTaskQueue {
	q := &workerPoolTaskQueue{}
	q.waitForPush = sync.NewCond(&q.mutex)
	return q
}

func (queue *workerPoolTaskQueue) loadTail() *workerPoolTask {
	return (*workerPoolTask)(atomic.LoadPointer(&queue.tail))
}

func (queue *workerPoolTaskQueue) storeTail(tail *workerPoolTask) {
	atomic.StorePointer(&queue.tail, unsafe.Pointer(tail))
}

// Push implements Queue.
func (queue *workerPoolTaskQueue) Push(element interface{}) error {
	task := element.(*workerPoolTask)

	queue.mutex.Lock()

	cond := queue.waitForPush
	if cond == nil {
		queue.mutex.Unlock()
		return ErrQueueClosed
	}

	tail := queue.loadTail()
	wasEmpty := queue.Empty()

	if wasEmpty {
		task.next = task
	} else {
		task.next = tail.next
		tail.next = task
	}
	queue.storeTail(task)

	if wasEmpty {
		cond.Signal()
	}

	queue.mutex.Unlock()
	return nil
}

// Poll implements Queue. The timeout is not honoured: on an empty open queue Poll blocks until a
// Push or Close, so it never returns ErrQueuePollTimeout. On a closed, empty queue it returns
// (nil, nil).
func (queue *workerPoolTaskQueue) Poll(timeout time.Duration) (interface{}, error) {
	queue.mutex.Lock()

	if queue.Empty() {
		cond := queue.waitForPush
		if cond != nil {
			// BUG(zonr): Support timed wait.
			cond.Wait()
		}

		if queue.Empty() {
			queue.mutex.Unlock()
			return nil, nil
		}
	}

	tail := queue.loadTail()
	head := tail.next

	if tail == head {
		queue.storeTail(nil)
	} else {
		tail.next = head.next
	}

	queue.mutex.Unlock()
	return head, nil
}

// Remove implements Queue.
func (queue *workerPoolTaskQueue) Remove(element interface{}) error {
	queue.mutex.Lock()
	defer queue.mutex.Unlock()

	task := element.(*workerPoolTask)

	if queue.Empty() {
		return ErrElementNotFound
	}

	tail := queue.loadTail()
	head := tail.next

	for prev := head; ; prev = prev.next {
		next := prev.next
		if next != task {
			if next == head {
				break
			}
			continue
		}

		prev.next = task.next
		if task == tail {
			if tail == head {
				queue.storeTail(nil)
			} else {
				queue.storeTail(prev)
			}
		}
		task.next = nil // help GC
		return nil
	}

	return ErrElementNotFound
}

// Close implements Queue.
func (queue *workerPoolTaskQueue) Close() {
	queue.mutex.Lock()
	if cond := queue.waitForPush; cond != nil {
		cond.Broadcast()
		queue.waitForPush = nil
	}
	queue.mutex.Unlock()
}

// Empty implements Queue.
func (queue *workerPoolTaskQueue) Empty() bool {
	return queue.loadTail() == nil
}

//===----------------------------------------------------------------------------------------====//
// poolWorker
//===----------------------------------------------------------------------------------------====//

// poolWorker runs one goroutine that repeatedly pulls a task from its executor's queue and runs it
// until none remain.
type poolWorker struct {
	executor *WorkerPoolExecutor
}

func newPoolWorker(executor *WorkerPoolExecutor) poolWorker {
	return poolWorker{executor: executor}
}

// Start launches the worker's run loop on a new goroutine, handing it firstTask to run before it
// starts polling the shared queue.
func (w poolWorker) Start(firstTask Task) {
	go w.loop(firstTask)
}

func (w poolWorker) loop(firstTask Task) {
	task := firstTask

	for {
		if task == nil {
			task = w.executor.pollTask()
			if task == nil {
				break
			}
		}

		result, err := task.Run()
		task.(*workerPoolTask).deliver(result, err)
		task = nil
	}

	w.executor.retireWorker(w)
}

//===----------------------------------------------------------------------------------------====//
// WorkerPoolExecutor
//===----------------------------------------------------------------------------------------====//

// WorkerPoolExecutor runs submitted tasks on a bounded pool of goroutines, growing the pool lazily
// as tasks arrive and shrinking it back toward MinPoolSize once they're idle past KeepAliveTime
// (only with a Queue whose Poll honours its timeout; see KeepAliveTime).
// The design follows Doug Lea's PooledExecutor [0], released into the public domain [1].
//
// The state-word tricks in poolState exist to keep Submit/pollTask off a lock in the common case.
//
// [0]: http://gee.cs.oswego.edu/dl/classes/EDU/oswego/cs/dl/util/concurrent/intro.html
// [1]: http://creativecommons.org/publicdomain/zero/1.0/
type WorkerPoolExecutor struct {
	state poolState

	config *WorkerPoolExecutorConfig

	taskQueue Queue

	// mutex guards awaitingTermination.
	mutex sync.Mutex

	// awaitingTermination holds channels to notify once the pool reaches poolTerminated.
	awaitingTermination []chan<- bool
}

var _ Executor = (*WorkerPoolExecutor)(nil)

// NewWorkerPoolExecutor creates a pool from config, running immediately.
func NewWorkerPoolExecutor(config WorkerPoolExecutorConfig) (*WorkerPoolExecutor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	taskQueue := config.Queue
	if taskQueue == nil {
		taskQueue = newWorkerPoolTaskQueue()
	}

	return &WorkerPoolExecutor{
		state:     makePoolState(poolRunning, 0),
		config:    &config,
		taskQueue: taskQueue,
	}, nil
}

// Shutdown implements Executor.
func (executor *WorkerPoolExecutor) Shutdown() (terminated <-chan bool, err error) {
	executor.mutex.Lock()

	notify := make(chan bool, 1)

	prev := executor.state.AdvancePhase(poolShuttingDown)

	if prev.IsTerminated() {
		notify <- true
	} else {
		executor.awaitingTermination = append(executor.awaitingTermination, notify)

		if prev.IsRunning() {
			// Unblocks every worker parked waiting on an empty queue.
			executor.taskQueue.Close()
		}
	}

	executor.mutex.Unlock()

	executor.tryTerminate()

	return notify, nil
}

func (executor *WorkerPoolExecutor) loadState() poolState {
	return executor.state.Load()
}

// tryTerminate advances to poolTerminated once shutdown has been requested, the queue has drained,
// and the last worker has exited.
func (executor *WorkerPoolExecutor) tryTerminate() {
	state := executor.loadState()

	if !state.IsShuttingDown() || state.IsTerminated() {
		return
	}
	if !executor.taskQueue.Empty() {
		return
	}
	if state.Workers() > 0 {
		return
	}

	executor.mutex.Lock()
	defer executor.mutex.Unlock()

	if state.IsTerminated() {
		return
	}

	// No worker can be added once the phase reached SHUTTING-DOWN; AdvancePhase moves the phase
	// forward with a CAS loop.
	executor.state.AdvancePhase(poolTerminated)

	pending := executor.awaitingTermination
	executor.awaitingTermination = nil
	for _, notify := range pending {
		notify <- true
	}
}

// Submit implements Executor.
//
// Below MinPoolSize a new worker is always spun up for the task, even if others sit idle. At or
// above MinPoolSize the task is queued for an existing worker, and addTask starts one worker when
// the pool has none. A queued task never causes any further worker to be created, so the pool
// holds at most max(MinPoolSize, 1) workers. Once the executor is shutting down, Submit returns
// an error.
func (executor *WorkerPoolExecutor) Submit(task Task) (TaskHandle, error) {
	handle := newWorkerPoolTask(task, executor)
	wrapped := Task(handle)

	config := executor.config
	state := executor.loadState()

	if state.Workers() < config.MinPoolSize {
		if err := executor.addWorker(wrapped, config.MinPoolSize); err == nil {
			return handle, nil
		}
		state = executor.loadState()
	}

	if state.IsRunning() {
		if err := executor.addTask(wrapped); err != nil {
			return nil, err
		}
		return handle, nil
	}

	if err := executor.addWorker(wrapped, config.MaxPoolSize); err != nil {
		return nil, err
	}

	return handle, nil
}

var (
	errPoolShuttingDown = errors.New("unable to add new worker because executor is shutting down")
	errPoolFull         = errors.New("unable to add new worker because worker pool is full")
	errTaskRejected     = errors.New("unable to execute task because executor is shutting down")
)

// addWorker tries to create a worker to run firstTask, failing if doing so would push the pool
// past limit.
func (executor *WorkerPoolExecutor) addWorker(firstTask Task, limit uint32) error {
	for {
		state := executor.loadState()
		if state.IsShuttingDown() {
			return errPoolShuttingDown
		}

		if state.Workers()+1 > limit {
			return errPoolFull
		}

		if executor.state.CompareAndAddWorker(state) {
			break
		}
		// CAS lost the race; reload and retry.
	}

	newPoolWorker(executor).Start(firstTask)
	return nil
}

// retireWorker runs on the goroutine of a worker whose loop has no more tasks to run. The caller
// must already have decremented the worker count (pollTask does so before returning nil).
func (executor *WorkerPoolExecutor) retireWorker(w poolWorker) {
	state := executor.loadState()

	if state.IsShuttingDown() {
		executor.tryTerminate()
		return
	}

	minPoolSize := executor.config.MinPoolSize
	if minPoolSize == 0 && !executor.taskQueue.Empty() {
		minPoolSize = 1
	}
	if minPoolSize < state.Workers() {
		executor.addWorker(nil, minPoolSize)
	}
}

// addTask enqueues task and ensures a worker is available to eventually pick it up.
func (executor *WorkerPoolExecutor) addTask(task Task) error {
	if err := executor.taskQueue.Push(task); err != nil {
		return err
	}

	for {
		// Between the push above and here, the executor may have been shut down, or the pool may
		// have had no worker at all (possible when MinPoolSize is 0).
		state := executor.loadState()
		if !state.IsRunning() {
			if err := executor.taskQueue.Remove(task); err == nil {
				return errTaskRejected
			}
			// Someone else already dequeued it.
		} else if state.Workers() == 0 {
			if err := executor.addWorker(nil, 1); err != nil {
				continue
			}
		}
		break
	}

	return nil
}

// cancelTask pulls task out of the queue before a worker gets to it.
func (executor *WorkerPoolExecutor) cancelTask(task Task) error {
	if err := executor.taskQueue.Remove(task); err != nil {
		return err
	}

	executor.tryTerminate()
	return nil
}

// pollTask blocks the calling worker for its next task. A nil return tells the worker to exit,
// which happens when either:
//
//  1. the executor is shutting down and the queue is empty, or
//  2. the worker sat idle past config.KeepAliveTime and the pool is above MinPoolSize (which
//     requires taskQueue.Poll to return ErrQueuePollTimeout; the default queue never does).
//
// The worker count is already decremented by the time pollTask returns nil.
func (executor *WorkerPoolExecutor) pollTask() Task {
	wasIdle := false
	taskQueue := executor.taskQueue
	config := executor.config

	for {
		state := executor.state.Load()
		queueEmpty := taskQueue.Empty()

		if state.IsShuttingDown() && queueEmpty {
			executor.state.DropWorker()
			return nil
		}

		aboveMin := state.Workers() > config.MinPoolSize
		if aboveMin && wasIdle && (state.Workers() > 1 || queueEmpty) {
			// Let at most one idle worker exit per round, which keeps the pool from dropping below
			// MinPoolSize under concurrent retirement.
			if executor.state.CompareAndDropWorker(state) {
				return nil
			}
		}

		wasIdle = false

		var timeout time.Duration
		if state.Workers() > config.MinPoolSize {
			timeout = config.KeepAliveTime
		}

		task, err := taskQueue.Poll(timeout)
		switch {
		case err == ErrQueuePollTimeout:
			wasIdle = true
		case err != nil:
			// FIXME: Is silently retrying on an unexpected queue error ok?
		case task != nil:
			return task.(Task)
		}
	}
}
