package registration

import (
	"sync"
)

type courseWeek struct {
	courseID uint
	numWeek  int
}

// courseWeekLocks serializes registration decisions per (course, week) so
// that two concurrent check-then-insert sequences for the same key cannot
// both pass the capacity or duplicate check. Entries are never evicted;
// the key space is bounded by courses times weeks.
type courseWeekLocks struct {
	mu    sync.Mutex
	locks map[courseWeek]*sync.Mutex
}

func newCourseWeekLocks() *courseWeekLocks {
	return &courseWeekLocks{locks: make(map[courseWeek]*sync.Mutex)}
}

// lock acquires the mutex for the key and returns its unlock function.
func (c *courseWeekLocks) lock(courseID uint, numWeek int) func() {
	key := courseWeek{courseID: courseID, numWeek: numWeek}

	c.mu.Lock()
	m, ok := c.locks[key]
	if !ok {
		m = &sync.Mutex{}
		c.locks[key] = m
	}
	c.mu.Unlock()

	m.Lock()
	return m.Unlock
}
