package crawl

import (
	"sync"

	"github.com/newsfold/gazeta"
)

// Queue is a thread-safe FIFO of articles awaiting processing. The
// workers of one source all drain a single queue.
type Queue struct {
	mu    sync.Mutex
	items []*gazeta.Article
}

// NewQueue creates a Queue holding the given articles in order.
func NewQueue(articles []*gazeta.Article) *Queue {
	q := &Queue{items: make([]*gazeta.Article, len(articles))}
	copy(q.items, articles)
	return q
}

// Push appends an article to the queue.
func (q *Queue) Push(article *gazeta.Article) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, article)
}

// Pop removes and returns the oldest article. The bool result is false
// when the queue is empty.
func (q *Queue) Pop() (*gazeta.Article, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return nil, false
	}
	article := q.items[0]
	q.items = q.items[1:]
	return article, true
}

// Len returns the number of queued articles.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
