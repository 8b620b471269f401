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

// Package dataloader batches and caches the per-field loads the Strand scheduler fans out to
// (graphql/executor's tryDispatchDataLoaders): every Load/LoadMany call made during one dispatch
// cycle joins the same pending batch, which is sent to the BatchLoader exactly once the cycle
// drains, amortizing one round-trip to whatever backend a resolver talks to across however many
// fields asked for it.
package dataloader

import (
	"context"
	"errors"
	"sync"

	"github.com/gqlcore/engine/concurrent/future"
	"github.com/gqlcore/engine/iterator"
)

// Key identifies one value a DataLoader can load.
type Key interface{}

// Keys is an iterable collection of Key.
type Keys interface {
	Iterator() KeyIterator
}

// KeysWithSize is a Keys that knows its length up front, letting callers preallocate.
type KeysWithSize interface {
	Keys
	Size() int
}

// KeyIterator walks a Keys collection, following the iterator package's Done-sentinel
// convention.
type KeyIterator interface {
	Next() (Key, error)
}

// keySlice adapts a plain []Key to KeysWithSize; it's what KeysFromArray returns.
type keySlice struct {
	keys []Key
}

type keySliceIterator struct {
	keys []Key
	pos  int
}

// Iterator implements Keys.
func (s keySlice) Iterator() KeyIterator {
	return &keySliceIterator{keys: s.keys}
}

// Size implements KeysWithSize.
func (s keySlice) Size() int {
	return len(s.keys)
}

// Next implements KeyIterator.
func (iter *keySliceIterator) Next() (Key, error) {
	if iter.pos == len(iter.keys) {
		return nil, iterator.Done
	}
	key := iter.keys[iter.pos]
	iter.pos++
	return key, nil
}

// KeysFromArray wraps a fixed list of keys as a KeysWithSize.
func KeysFromArray(keys ...Key) KeysWithSize {
	return keySlice{keys}
}

// pendingBatch accumulates the Task's awaiting the next Dispatch. Only one goroutine may ever
// detach a given pendingBatch from its loader (see DataLoader.dispatchQueue), so the fields below
// need no lock of their own.
type pendingBatch struct {
	loader *DataLoader

	tasks TaskList
}

func newPendingBatch(loader *DataLoader) *pendingBatch {
	return &pendingBatch{loader: loader}
}

// enqueue either returns a cached Task for key, or creates one and appends it to the batch.
func (batch *pendingBatch) enqueue(key Key) *Task {
	task := newTask(batch, key)

	if cacheMap := batch.loader.cacheMap; cacheMap != nil {
		if cached := cacheMap.Set(task); cached != task {
			// Another caller already registered a Task for this key this cycle.
			return cached
		}
	}

	batch.tasks.push(task)
	return task
}

func (batch *pendingBatch) empty() bool {
	return batch.tasks.Empty()
}

// A DataLoader batches and caches loads of values identified by a Key, such as a SQL table's
// primary key.
type DataLoader struct {
	config *Config

	// queueMutex guards queue.
	queueMutex sync.Mutex
	queue      *pendingBatch

	// cacheMap is nil when caching is disabled.
	cacheMap CacheMap
}

var (
	errMissingBatchLoader = errors.New("batch loader is required to construct a DataLoader")
	errMissingKey         = errors.New("must specify key to identify data to be loaded")
)

// New constructs a DataLoader from config.
func New(config Config) (*DataLoader, error) {
	if config.BatchLoader == nil {
		return nil, errMissingBatchLoader
	}

	cacheMap := config.CacheMap
	switch cacheMap {
	case nil:
		cacheMap = &DefaultCacheMap{}
	case NoCacheMap:
		cacheMap = nil
	}

	loader := &DataLoader{
		config:   &config,
		cacheMap: cacheMap,
	}
	loader.queue = newPendingBatch(loader)

	return loader, nil
}

// BatchLoader returns the BatchLoader this DataLoader was configured with.
func (loader *DataLoader) BatchLoader() BatchLoader {
	return loader.config.BatchLoader
}

// Load returns a Future for the value identified by key, joining the pending batch (or the cache,
// on a hit) rather than loading it immediately.
func (loader *DataLoader) Load(key Key) (future.Future, error) {
	if key == nil {
		return nil, errMissingKey
	}

	if cacheMap := loader.cacheMap; cacheMap != nil {
		if task := cacheMap.Get(key); task != nil {
			return task.newFuture(), nil
		}
	}

	loader.queueMutex.Lock()
	task := loader.queue.enqueue(key)
	loader.queueMutex.Unlock()

	// TODO: Check dispatch policy to see whether we should dispatch the queue immediately.

	return task.newFuture(), nil
}

// LoadMany returns a single Future that settles once every key has loaded, joining the values in
// order via future.Join.
func (loader *DataLoader) LoadMany(keys Keys) (future.Future, error) {
	var futures []future.Future

	if sized, ok := keys.(KeysWithSize); ok {
		futures = make([]future.Future, 0, sized.Size())
	}

	keyIter := keys.Iterator()
	for {
		key, err := keyIter.Next()
		if err == iterator.Done {
			break
		} else if err != nil {
			return nil, err
		}

		f, err := loader.Load(key)
		if err != nil {
			return nil, err
		}
		futures = append(futures, f)
	}

	return future.Join(futures...), nil
}

// Dispatch sends the tasks queued as of this call to the BatchLoader.
func (loader *DataLoader) Dispatch(ctx context.Context) {
	loader.dispatchQueue(ctx, loader.queue)
}

// dispatchQueue detaches batch from the loader (replacing it with a fresh, empty one) and submits
// its tasks for loading. Detaching first means a Load arriving concurrently joins the new batch
// instead of one already in flight; whoever wins the detach race is the one that does the work,
// so this is safe to call from multiple goroutines without serializing them on anything but
// queueMutex.
func (loader *DataLoader) dispatchQueue(ctx context.Context, batch *pendingBatch) {
	loader.queueMutex.Lock()
	if batch != loader.queue || batch.empty() {
		loader.queueMutex.Unlock()
		return
	}
	loader.queue = newPendingBatch(loader)
	loader.queueMutex.Unlock()

	maxBatchSize := loader.config.MaxBatchSize
	if maxBatchSize == 0 {
		loader.submitBatch(ctx, batch.tasks)
		return
	}

	for sub := range splitTaskList(batch.tasks, maxBatchSize) {
		loader.submitBatch(ctx, sub)
	}
}

// splitTaskList yields tasks broken into runs of at most maxSize, preserving order, over an
// unbuffered channel the caller ranges over.
func splitTaskList(tasks TaskList, maxSize uint) <-chan TaskList {
	out := make(chan TaskList)

	go func() {
		defer close(out)

		first := tasks.first
		task := first
		remaining := maxSize

		for task != nil {
			next := task.next

			remaining--
			if remaining == 0 {
				out <- TaskList{first: first, last: task}
				remaining = maxSize
				first = next
			}

			task = next
		}

		if first != nil {
			out <- TaskList{first: first}
		}
	}()

	return out
}

// submitBatch runs a BatchLoadJob for tasks, either inline or on config.Runner.
func (loader *DataLoader) submitBatch(ctx context.Context, tasks TaskList) error {
	job := &BatchLoadJob{ctx: ctx, tasks: tasks}

	if runner := loader.config.Runner; runner != nil {
		_, err := runner.Submit(job)
		return err
	}

	_, err := job.Run()
	return err
}

// Clear evicts key from the cache, if caching is enabled.
func (loader *DataLoader) Clear(key Key) {
	if cacheMap := loader.cacheMap; cacheMap != nil {
		cacheMap.Delete(key)
	}
}

// ClearAll empties the cache, if caching is enabled.
func (loader *DataLoader) ClearAll() {
	if cacheMap := loader.cacheMap; cacheMap != nil {
		cacheMap.Clear()
	}
}

// Prime seeds the cache with value for key, if key isn't already cached.
func (loader *DataLoader) Prime(key Key, value interface{}) error {
	cacheMap := loader.cacheMap
	if cacheMap == nil {
		return nil
	}

	task := newTask(nil, key)
	if err := task.Complete(value); err != nil {
		return err
	}
	cacheMap.Set(task)
	return nil
}

// PrimeError seeds the cache so loading key fails with err, if key isn't already cached.
func (loader *DataLoader) PrimeError(key Key, err error) error {
	cacheMap := loader.cacheMap
	if cacheMap == nil {
		return nil
	}

	task := newTask(nil, key)
	if setErr := task.SetError(err); setErr != nil {
		return setErr
	}
	cacheMap.Set(task)
	return nil
}
