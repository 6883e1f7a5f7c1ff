package browser

import (
	"sort"
	"sync"
	"time"

	"ordertrack/internal/domain"

	"github.com/google/uuid"
)

// Direction is a navigation event within a browsing session.
type Direction int

const (
	Prev Direction = iota
	Next
)

// Page is the rendered view of one slice of the sorted order list.
type Page struct {
	Orders      []domain.Order
	Index       int
	TotalPages  int
	TotalOrders int
	PrevEnabled bool
	NextEnabled bool
	Ended       bool
}

// RenderFunc receives every re-rendered page, including the final
// disabled view when the session ends. It runs on the session goroutine,
// so renders are serialized.
type RenderFunc func(sessionID string, page Page)

// Session is one interactive paging interaction over a snapshot of the
// order list. Only the owner's navigation events are accepted; everyone
// else is ignored silently. The session ends after the idle timeout or
// an explicit Close, after which all events are dropped.
type Session struct {
	ID      string
	ownerID string

	orders     []domain.Order
	pageSize   int
	totalPages int

	events chan Direction
	quit   chan struct{}
	done   chan struct{}

	closeOnce sync.Once
	idle      time.Duration
	render    RenderFunc
	onEnd     func()
}

// newSession sorts a copy of the input newest-first, renders nothing yet
// and starts the event loop. The caller renders the returned first page.
func newSession(ownerID string, orders []domain.Order, pageSize int, idle time.Duration, render RenderFunc, onEnd func()) (*Session, Page) {
	sorted := make([]domain.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	totalPages := (len(sorted) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	s := &Session{
		ID:         uuid.New().String(),
		ownerID:    ownerID,
		orders:     sorted,
		pageSize:   pageSize,
		totalPages: totalPages,
		events:     make(chan Direction),
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
		idle:       idle,
		render:     render,
		onEnd:      onEnd,
	}

	go s.loop()

	return s, s.pageAt(0, false)
}

// Navigate delivers a navigation event. Events from anyone but the owner
// and events after the session ended are dropped without feedback.
func (s *Session) Navigate(userID string, dir Direction) {
	if userID != s.ownerID {
		return
	}
	select {
	case s.events <- dir:
	case <-s.done:
	}
}

// Close ends the session explicitly ahead of the idle timeout.
func (s *Session) Close() {
	s.closeOnce.Do(func() { close(s.quit) })
}

func (s *Session) loop() {
	defer close(s.done)

	page := 0
	timer := time.NewTimer(s.idle)
	defer timer.Stop()

	for {
		select {
		case dir := <-s.events:
			switch dir {
			case Prev:
				page--
			case Next:
				page++
			}
			// Clamp instead of erroring at the bounds.
			if page < 0 {
				page = 0
			}
			if page > s.totalPages-1 {
				page = s.totalPages - 1
			}
			s.render(s.ID, s.pageAt(page, false))

			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(s.idle)

		case <-timer.C:
			s.render(s.ID, s.pageAt(page, true))
			if s.onEnd != nil {
				s.onEnd()
			}
			return

		case <-s.quit:
			s.render(s.ID, s.pageAt(page, true))
			if s.onEnd != nil {
				s.onEnd()
			}
			return
		}
	}
}

// pageAt slices the sorted snapshot; an ended page has both affordances
// disabled regardless of position.
func (s *Session) pageAt(index int, ended bool) Page {
	start := index * s.pageSize
	end := start + s.pageSize
	if start > len(s.orders) {
		start = len(s.orders)
	}
	if end > len(s.orders) {
		end = len(s.orders)
	}

	return Page{
		Orders:      s.orders[start:end],
		Index:       index,
		TotalPages:  s.totalPages,
		TotalOrders: len(s.orders),
		PrevEnabled: !ended && index > 0,
		NextEnabled: !ended && index < s.totalPages-1,
		Ended:       ended,
	}
}
