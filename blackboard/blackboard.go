// Package blackboard implements the cooperative job board: a shared
// registry of tasks agents post and bid on.
package blackboard

import (
	"sync"

	"tidewatch/ids"
	"tidewatch/vecmath"
)

// JobType enumerates cooperative task kinds.
type JobType int

const (
	Scavenge JobType = iota
	Repair
	Combat
	Transport
)

// Job is a single cooperative task.
type Job struct {
	ID         uint64
	Type       JobType
	Position   vecmath.Vec3
	Priority   float64
	Difficulty float64
	AssignedTo *ids.Uid
}

// Board is the open-job registry. Posting, bidding, and completing are
// serialized through its mutex, so every assigned job has exactly one owner
// even when the command surface runs concurrently with a step.
type Board struct {
	mu     sync.Mutex
	jobs   []Job
	nextID uint64
}

// New returns an empty board.
func New() *Board {
	return &Board{}
}

// PostJob appends a new job and returns its assigned id.
func (b *Board) PostJob(j Job) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	j.ID = b.nextID
	j.AssignedTo = nil
	b.jobs = append(b.jobs, j)
	return j.ID
}

// BidForJob scans unassigned jobs, scores each by priority x (2 if
// type==preferred else 1), and assigns the agent to the maximum-scoring job
// (ties broken by earliest insertion). Returns false if no unassigned job
// exists.
func (b *Board) BidForJob(agent ids.Uid, preferred JobType) (Job, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	best := -1
	bestScore := -1.0
	for i := range b.jobs {
		if b.jobs[i].AssignedTo != nil {
			continue
		}
		score := b.jobs[i].Priority
		if b.jobs[i].Type == preferred {
			score *= 2
		}
		if best == -1 || score > bestScore {
			bestScore = score
			best = i
		}
	}
	if best == -1 {
		return Job{}, false
	}

	b.jobs[best].AssignedTo = &agent
	return b.jobs[best], true
}

// CompleteJob removes the job with the given id. The blackboard does not
// verify that the completing agent owned the job; that invariant is upheld
// by callers.
func (b *Board) CompleteJob(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.jobs {
		if b.jobs[i].ID == id {
			b.jobs = append(b.jobs[:i], b.jobs[i+1:]...)
			return
		}
	}
}

// Clear empties the board.
func (b *Board) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.jobs = nil
}

// Jobs returns a snapshot copy of the current jobs, for inspection/tests.
func (b *Board) Jobs() []Job {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Job, len(b.jobs))
	copy(out, b.jobs)
	return out
}
