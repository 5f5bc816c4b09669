package indexer

import "github.com/hapiprotocol/hapi-core-indexer/pkg/job"

// queue is the FIFO of jobs a FetchJobs page fills and handleProcessing drains
// one at a time (§4.2: "processes exactly one job per Processing step").
type queue struct {
	items []job.Job
}

func (q *queue) push(items []job.Job) {
	q.items = append(q.items, items...)
}

func (q *queue) pop() (job.Job, bool) {
	if len(q.items) == 0 {
		return job.Job{}, false
	}
	j := q.items[0]
	q.items = q.items[1:]
	return j, true
}

func (q *queue) empty() bool { return len(q.items) == 0 }
