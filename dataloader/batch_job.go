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

package dataloader

import (
	"context"
	"fmt"
)

// BatchLoadJob is one submission of a batch of tasks to a DataLoader's BatchLoader, submittable to
// a concurrent.Executor like any other concurrent.Task.
type BatchLoadJob struct {
	ctx   context.Context
	tasks TaskList
}

// Run implements concurrent.Task.
func (job *BatchLoadJob) Run() (interface{}, error) {
	tasks := &job.tasks
	batchLoader := tasks.first.parent.loader.config.BatchLoader

	batchLoader.Load(job.ctx, tasks)
	job.rejectUnfinished(batchLoader)

	return nil, nil
}

// rejectUnfinished fails, with a descriptive error, any task the BatchLoader left incomplete —
// a misbehaving BatchLoader that forgets a key would otherwise leave its Future pending forever.
func (job *BatchLoadJob) rejectUnfinished(batchLoader BatchLoader) {
	for iter, end := job.tasks.Begin(), job.tasks.End(); iter != end; iter = iter.Next() {
		task := iter.Task
		if task.loadResult().Kind != taskNotCompleted {
			continue
		}
		task.SetError(fmt.Errorf("%T must complete every given data loading task with either a "+
			"value or an error but it doesn't complete task that loads data at key %v",
			batchLoader, task.Key()))
	}
}
