package storage

import (
	"context"
	"sort"
	"sync"
	"time"
)

var _ Store = (*MemoryStore)(nil)

type taskEntry struct {
	task Task
	seq  uint64
}

type achievementEntry struct {
	achievement Achievement
	seq         uint64
}

type memoryState struct {
	tasks        map[string]taskEntry
	achievements map[string]achievementEntry
	seq          uint64
}

func newMemoryState() memoryState {
	return memoryState{
		tasks:        make(map[string]taskEntry),
		achievements: make(map[string]achievementEntry),
	}
}

func (s memoryState) clone() memoryState {
	out := memoryState{
		tasks:        make(map[string]taskEntry, len(s.tasks)),
		achievements: make(map[string]achievementEntry, len(s.achievements)),
		seq:          s.seq,
	}
	for id, e := range s.tasks {
		out.tasks[id] = e
	}
	for id, e := range s.achievements {
		out.achievements[id] = e
	}
	return out
}

// MemoryStore keeps both collections in process memory. State is lost when
// the process exits.
type MemoryStore struct {
	mu    sync.Mutex
	state memoryState
	clock *monotonicClock
}

// NewMemoryStore returns an empty store. A nil now uses time.Now.
func NewMemoryStore(now func() time.Time) *MemoryStore {
	return &MemoryStore{
		state: newMemoryState(),
		clock: newMonotonicClock(now),
	}
}

func (s *MemoryStore) ListTasks(ctx context.Context) ([]Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memoryView{state: &s.state, clock: s.clock}.ListTasks(ctx)
}

func (s *MemoryStore) GetTask(ctx context.Context, id string) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memoryView{state: &s.state, clock: s.clock}.GetTask(ctx, id)
}

func (s *MemoryStore) CreateTask(ctx context.Context, in TaskInsert) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memoryView{state: &s.state, clock: s.clock}.CreateTask(ctx, in)
}

func (s *MemoryStore) DeleteTask(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memoryView{state: &s.state, clock: s.clock}.DeleteTask(ctx, id)
}

func (s *MemoryStore) ListAchievements(ctx context.Context) ([]Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memoryView{state: &s.state, clock: s.clock}.ListAchievements(ctx)
}

func (s *MemoryStore) CreateAchievement(ctx context.Context, in AchievementInsert) (*Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memoryView{state: &s.state, clock: s.clock}.CreateAchievement(ctx, in)
}

func (s *MemoryStore) DeleteAchievement(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memoryView{state: &s.state, clock: s.clock}.DeleteAchievement(ctx, id)
}

// Snapshot lists both collections under one lock acquisition, without the
// copy Atomic makes.
func (s *MemoryStore) Snapshot(ctx context.Context) ([]Task, []Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memoryView{state: &s.state, clock: s.clock}.Snapshot(ctx)
}

// Atomic works on a copy of the state and swaps it in only when fn succeeds.
func (s *MemoryStore) Atomic(ctx context.Context, fn func(Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.state.clone()
	if err := fn(memoryView{state: &working, clock: s.clock}); err != nil {
		return err
	}
	s.state = working
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// memoryView operates on a memoryState without locking; the owner holds the lock.
type memoryView struct {
	state *memoryState
	clock *monotonicClock
}

func (v memoryView) ListTasks(ctx context.Context) ([]Task, error) {
	entries := make([]taskEntry, 0, len(v.state.tasks))
	for _, e := range v.state.tasks {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.task.CreatedAt.Equal(b.task.CreatedAt) {
			return a.task.CreatedAt.After(b.task.CreatedAt)
		}
		return a.seq > b.seq
	})
	out := make([]Task, len(entries))
	for i := range entries {
		out[i] = entries[i].task
	}
	return out, nil
}

func (v memoryView) GetTask(ctx context.Context, id string) (*Task, error) {
	e, ok := v.state.tasks[id]
	if !ok {
		return nil, nil
	}
	t := e.task
	return &t, nil
}

func (v memoryView) CreateTask(ctx context.Context, in TaskInsert) (*Task, error) {
	v.state.seq++
	t := Task{
		ID:          newID(),
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		XPReward:    in.XPReward,
		CreatedAt:   v.clock.next(),
	}
	v.state.tasks[t.ID] = taskEntry{task: t, seq: v.state.seq}
	return &t, nil
}

func (v memoryView) DeleteTask(ctx context.Context, id string) (bool, error) {
	if _, ok := v.state.tasks[id]; !ok {
		return false, nil
	}
	delete(v.state.tasks, id)
	return true, nil
}

func (v memoryView) ListAchievements(ctx context.Context) ([]Achievement, error) {
	entries := make([]achievementEntry, 0, len(v.state.achievements))
	for _, e := range v.state.achievements {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.achievement.CompletedAt.Equal(b.achievement.CompletedAt) {
			return a.achievement.CompletedAt.After(b.achievement.CompletedAt)
		}
		return a.seq > b.seq
	})
	out := make([]Achievement, len(entries))
	for i := range entries {
		out[i] = entries[i].achievement
	}
	return out, nil
}

func (v memoryView) CreateAchievement(ctx context.Context, in AchievementInsert) (*Achievement, error) {
	icon := in.Icon
	if icon == "" {
		icon = DefaultAchievementIcon
	}
	v.state.seq++
	a := Achievement{
		ID:          newID(),
		Title:       in.Title,
		Description: in.Description,
		Icon:        icon,
		XPEarned:    in.XPEarned,
		CompletedAt: v.clock.next(),
	}
	v.state.achievements[a.ID] = achievementEntry{achievement: a, seq: v.state.seq}
	return &a, nil
}

func (v memoryView) DeleteAchievement(ctx context.Context, id string) (bool, error) {
	if _, ok := v.state.achievements[id]; !ok {
		return false, nil
	}
	delete(v.state.achievements, id)
	return true, nil
}

func (v memoryView) Snapshot(ctx context.Context) ([]Task, []Achievement, error) {
	return snapshot(ctx, v)
}

// Nested Atomic calls run inline; the outer call already holds the lock.
func (v memoryView) Atomic(ctx context.Context, fn func(Store) error) error {
	return fn(v)
}

func (v memoryView) Close() error { return nil }
