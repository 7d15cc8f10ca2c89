package jobqueue

import (
	"strconv"
	"sync"

	"github.com/kobusvdwalt/subscribeza/internal/pkg/airtable"
	"github.com/kobusvdwalt/subscribeza/internal/pkg/env"
)

var (
	globalQueue *Queue
	queueOnce   sync.Once
)

// GetQueue returns the global delivery queue (singleton) with the default
// processors registered.
func GetQueue() *Queue {
	queueOnce.Do(func() {
		workers := 3
		if v, err := strconv.Atoi(env.GetEnv("JOBQUEUE_WORKERS", "")); err == nil && v > 0 {
			workers = v
		}

		globalQueue = NewQueue(workers)
		globalQueue.Register(JobTypeOwnerEmail, OwnerEmailProcessor)
		globalQueue.Register(JobTypeCustomerEmail, CustomerEmailProcessor)
		globalQueue.Register(JobTypeAirtableSync, AirtableSyncProcessor(airtable.NewClientFromEnv()))
	})
	return globalQueue
}
