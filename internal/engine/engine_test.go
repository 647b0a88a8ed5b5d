package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"questboard/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(storage.NewMemoryStore(nil), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func newSQLiteTestService(t *testing.T) (*Service, func()) {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "test.db")
	store, err := storage.OpenSQLiteStore(ctx, path, nil)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	svc := NewService(store, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	cleanup := func() {
		_ = store.Close()
	}
	return svc, cleanup
}

func mustCreateTask(t *testing.T, svc *Service, in CreateTaskInput) *storage.Task {
	t.Helper()
	task, err := svc.CreateTask(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateTask(%q): %v", in.Title, err)
	}
	return task
}

func TestXPBoundaries(t *testing.T) {
	if got := XPRequiredForLevel(0); got != 0 {
		t.Fatalf("XPRequiredForLevel(0)=%d, want 0", got)
	}
	l1 := XPRequiredForLevel(1)
	if got := LevelForTotalXP(l1 - 1); got != 0 {
		t.Fatalf("LevelForTotalXP(l1-1)=%d, want 0", got)
	}
	if got := LevelForTotalXP(l1); got != 1 {
		t.Fatalf("LevelForTotalXP(l1)=%d, want 1", got)
	}

	l7 := XPRequiredForLevel(7)
	if got := LevelForTotalXP(l7); got != 7 {
		t.Fatalf("LevelForTotalXP(l7)=%d, want 7", got)
	}
	if got := LevelForTotalXP(l7 - 1); got != 6 {
		t.Fatalf("LevelForTotalXP(l7-1)=%d, want 6", got)
	}

	level, into, span := LevelProgress(l1 + 15)
	if level != 1 || into != 15 || span != XPRequiredForLevel(2)-l1 {
		t.Fatalf("LevelProgress=(%d,%d,%d)", level, into, span)
	}
}

func TestCompleteBossMintsAchievement(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	task := mustCreateTask(t, svc, CreateTaskInput{
		Title:       "Slay the Frost Titan",
		Description: "Climb the glacier",
		Category:    CategoryBoss,
		XPReward:    500,
	})

	res, err := svc.CompleteTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if res.Achievement == nil {
		t.Fatalf("expected an achievement for a boss fight")
	}
	if res.XPEarned != 500 {
		t.Fatalf("XPEarned=%d, want 500", res.XPEarned)
	}

	achievements, err := svc.ListAchievements(ctx)
	if err != nil {
		t.Fatalf("ListAchievements: %v", err)
	}
	if len(achievements) != 1 {
		t.Fatalf("achievements=%d, want 1", len(achievements))
	}
	a := achievements[0]
	if a.Title != "Slay the Frost Titan Victor" {
		t.Fatalf("title=%q", a.Title)
	}
	if a.Description != "Conquered: Climb the glacier" {
		t.Fatalf("description=%q", a.Description)
	}
	if a.Icon != IconMountain {
		t.Fatalf("icon=%q, want %q", a.Icon, IconMountain)
	}
	if a.XPEarned != 500 {
		t.Fatalf("xpEarned=%d, want 500", a.XPEarned)
	}

	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("tasks=%d, want 0", len(tasks))
	}
}

func TestCompleteNonBossMintsNothing(t *testing.T) {
	for _, cat := range []Category{CategoryQuest, CategoryTraining} {
		t.Run(string(cat), func(t *testing.T) {
			svc := newTestService(t)
			ctx := context.Background()

			task := mustCreateTask(t, svc, CreateTaskInput{Title: "Gather herbs", Description: "Five of them", Category: cat, XPReward: 50})
			res, err := svc.CompleteTask(ctx, task.ID)
			if err != nil {
				t.Fatalf("CompleteTask: %v", err)
			}
			if res.Achievement != nil || res.XPEarned != 0 {
				t.Fatalf("unexpected achievement: %+v", res)
			}

			achievements, _ := svc.ListAchievements(ctx)
			if len(achievements) != 0 {
				t.Fatalf("achievements=%d, want 0", len(achievements))
			}
			if _, err := svc.GetTask(ctx, task.ID); !errors.Is(err, ErrNotFound) {
				t.Fatalf("GetTask after complete err=%v, want ErrNotFound", err)
			}
		})
	}
}

func TestCompleteUnknownCategoryDeletesWithoutMinting(t *testing.T) {
	store := storage.NewMemoryStore(nil)
	svc := NewService(store, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	ctx := context.Background()

	// Written around validation, as a legacy row would be.
	task, err := store.CreateTask(ctx, storage.TaskInsert{Title: "Odd", Description: "odd", Category: "raid", XPReward: 10})
	if err != nil {
		t.Fatalf("store.CreateTask: %v", err)
	}
	res, err := svc.CompleteTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if res.Achievement != nil {
		t.Fatalf("did not expect an achievement")
	}
	tasks, _ := svc.ListTasks(ctx)
	if len(tasks) != 0 {
		t.Fatalf("tasks=%d, want 0", len(tasks))
	}
}

func TestCompleteMissingTaskChangesNothing(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	mustCreateTask(t, svc, CreateTaskInput{Title: "Keep me", Description: "d", Category: CategoryBoss, XPReward: 10})

	_, err := svc.CompleteTask(ctx, "does-not-exist")
	var nf NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err=%v, want NotFoundError", err)
	}
	if nf.Entity != EntityTask {
		t.Fatalf("entity=%q, want task", nf.Entity)
	}

	tasks, _ := svc.ListTasks(ctx)
	achievements, _ := svc.ListAchievements(ctx)
	if len(tasks) != 1 || len(achievements) != 0 {
		t.Fatalf("tasks=%d achievements=%d, want 1/0", len(tasks), len(achievements))
	}
}

func TestCompleteTwiceReportsNotFound(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	task := mustCreateTask(t, svc, CreateTaskInput{Title: "Bone Dragon", Description: "d", Category: CategoryBoss, XPReward: 10})
	if _, err := svc.CompleteTask(ctx, task.ID); err != nil {
		t.Fatalf("first complete: %v", err)
	}
	if _, err := svc.CompleteTask(ctx, task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second complete err=%v, want ErrNotFound", err)
	}
	achievements, _ := svc.ListAchievements(ctx)
	if len(achievements) != 1 {
		t.Fatalf("achievements=%d, want 1", len(achievements))
	}
}

// failingAchievementStore refuses to create achievements.
type failingAchievementStore struct {
	storage.Store
}

var errMintFailed = errors.New("disk on fire")

func (f failingAchievementStore) CreateAchievement(ctx context.Context, in storage.AchievementInsert) (*storage.Achievement, error) {
	return nil, errMintFailed
}

func (f failingAchievementStore) Atomic(ctx context.Context, fn func(storage.Store) error) error {
	return f.Store.Atomic(ctx, func(tx storage.Store) error {
		return fn(failingAchievementStore{Store: tx})
	})
}

func TestCompleteKeepsTaskWhenMintFails(t *testing.T) {
	inner := storage.NewMemoryStore(nil)
	svc := NewService(failingAchievementStore{Store: inner}, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	ctx := context.Background()

	task := mustCreateTask(t, svc, CreateTaskInput{Title: "Arcane Lich", Description: "d", Category: CategoryBoss, XPReward: 300})
	if _, err := svc.CompleteTask(ctx, task.ID); !errors.Is(err, errMintFailed) {
		t.Fatalf("err=%v, want errMintFailed", err)
	}

	got, err := inner.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got == nil {
		t.Fatalf("task was deleted although its achievement was never created")
	}
}

func TestDeleteTwice(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	task := mustCreateTask(t, svc, CreateTaskInput{Title: "Sweep", Description: "d", Category: CategoryTraining})
	if err := svc.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := svc.DeleteTask(ctx, task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err=%v, want ErrNotFound", err)
	}

	boss := mustCreateTask(t, svc, CreateTaskInput{Title: "Wolf King", Description: "d", Category: CategoryBoss, XPReward: 10})
	res, err := svc.CompleteTask(ctx, boss.ID)
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if err := svc.DeleteAchievement(ctx, res.Achievement.ID); err != nil {
		t.Fatalf("first achievement delete: %v", err)
	}
	err = svc.DeleteAchievement(ctx, res.Achievement.ID)
	var nf NotFoundError
	if !errors.As(err, &nf) || nf.Entity != EntityAchievement {
		t.Fatalf("second achievement delete err=%v, want achievement NotFoundError", err)
	}
}

func TestCreateTaskRejectsInvalidInput(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateTask(ctx, CreateTaskInput{Title: "  ", Description: "", Category: "raid", XPReward: -1})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err=%v, want ValidationError", err)
	}
	if len(verr.Issues) != 4 {
		t.Fatalf("issues=%d, want 4: %v", len(verr.Issues), verr)
	}
	tasks, _ := svc.ListTasks(ctx)
	if len(tasks) != 0 {
		t.Fatalf("invalid input reached the store")
	}
}

func TestCreateTaskStoresFieldsUnchanged(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// Decomposed "e" + combining acute must survive as sent.
	task := mustCreateTask(t, svc, CreateTaskInput{Title: "  Cafe\u0301 Siege ", Description: " hold ", Category: CategoryQuest, XPReward: 5})
	if task.Title != "  Cafe\u0301 Siege " {
		t.Fatalf("title=%q", task.Title)
	}
	if task.Description != " hold " {
		t.Fatalf("description=%q", task.Description)
	}

	got, err := svc.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got.Title != task.Title || got.Description != task.Description {
		t.Fatalf("stored=%+v", got)
	}
}

func TestCreateTaskRejectsBlankAndPaddedCategory(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateTask(context.Background(), CreateTaskInput{Title: "   ", Description: "d", Category: " boss ", XPReward: 1})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err=%v, want ValidationError", err)
	}
	fields := map[string]bool{}
	for _, is := range verr.Issues {
		fields[is.Field] = true
	}
	if !fields["title"] || !fields["category"] || len(fields) != 2 {
		t.Fatalf("issues=%v", verr.Issues)
	}
}

func TestCreateAchievementDirectly(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, err := svc.CreateAchievement(ctx, CreateAchievementInput{Title: "First Blood", Description: "Won a duel", XPEarned: 50})
	if err != nil {
		t.Fatalf("CreateAchievement: %v", err)
	}
	if a.Icon != storage.DefaultAchievementIcon {
		t.Fatalf("icon=%q, want default", a.Icon)
	}
	if a.XPEarned != 50 || a.Title != "First Blood" {
		t.Fatalf("achievement=%+v", a)
	}

	_, err = svc.CreateAchievement(ctx, CreateAchievementInput{Title: "Debt", Description: "d", XPEarned: -10})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err=%v, want ValidationError", err)
	}

	list, err := svc.ListAchievements(ctx)
	if err != nil {
		t.Fatalf("ListAchievements: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("achievements=%d, want 1", len(list))
	}
}

func TestListingsNewestFirst(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	var want []string
	for _, title := range []string{"one", "two", "three"} {
		task := mustCreateTask(t, svc, CreateTaskInput{Title: title, Description: "d", Category: CategoryQuest})
		want = append([]string{task.ID}, want...)
	}
	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != len(want) {
		t.Fatalf("tasks=%d, want %d", len(tasks), len(want))
	}
	for i := range want {
		if tasks[i].ID != want[i] {
			t.Fatalf("tasks[%d]=%s, want %s", i, tasks[i].ID, want[i])
		}
	}
}

func TestStats(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	boss := mustCreateTask(t, svc, CreateTaskInput{Title: "Ancient Red Dragon", Description: "d", Category: CategoryBoss, XPReward: 600})
	mustCreateTask(t, svc, CreateTaskInput{Title: "Shadow Fiend", Description: "d", Category: CategoryBoss, XPReward: 100})
	mustCreateTask(t, svc, CreateTaskInput{Title: "Deliver letter", Description: "d", Category: CategoryQuest, XPReward: 10})
	mustCreateTask(t, svc, CreateTaskInput{Title: "Sparring", Description: "d", Category: CategoryTraining, XPReward: 10})
	if _, err := svc.CompleteTask(ctx, boss.ID); err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}

	st, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.BossFights != 1 || st.Quests != 1 || st.Training != 1 {
		t.Fatalf("counts=%+v", st)
	}
	if st.Achievements != 1 || st.TotalXP != 600 {
		t.Fatalf("achievements=%d totalXP=%d", st.Achievements, st.TotalXP)
	}
	if st.Level != 1 {
		t.Fatalf("level=%d, want 1", st.Level)
	}
	if st.NextLevelXP != XPRequiredForLevel(2) {
		t.Fatalf("nextLevelXP=%d", st.NextLevelXP)
	}
}

func TestCompleteBossOnSQLite(t *testing.T) {
	svc, cleanup := newSQLiteTestService(t)
	defer cleanup()
	ctx := context.Background()

	task := mustCreateTask(t, svc, CreateTaskInput{Title: "Skeleton Lord", Description: "crypt", Category: CategoryBoss, XPReward: 250})
	res, err := svc.CompleteTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if res.Achievement.Icon != IconSkull {
		t.Fatalf("icon=%q, want skull", res.Achievement.Icon)
	}
	if !strings.HasSuffix(res.Achievement.Title, " Victor") {
		t.Fatalf("title=%q", res.Achievement.Title)
	}

	tasks, _ := svc.ListTasks(ctx)
	if len(tasks) != 0 {
		t.Fatalf("tasks=%d, want 0", len(tasks))
	}
}

type countingRecorder struct {
	created, deleted, achievementsDeleted int
	completed                             map[string]int
	minted                                int
}

func (r *countingRecorder) TaskCreated(string) { r.created++ }
func (r *countingRecorder) TaskCompleted(category string, minted bool) {
	if r.completed == nil {
		r.completed = map[string]int{}
	}
	r.completed[category]++
	if minted {
		r.minted++
	}
}
func (r *countingRecorder) TaskDeleted()        { r.deleted++ }
func (r *countingRecorder) AchievementDeleted() { r.achievementsDeleted++ }

func TestRecorderSeesDomainEvents(t *testing.T) {
	rec := &countingRecorder{}
	svc := NewService(storage.NewMemoryStore(nil), WithRecorder(rec), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	ctx := context.Background()

	boss := mustCreateTask(t, svc, CreateTaskInput{Title: "Beast", Description: "d", Category: CategoryBoss, XPReward: 1})
	quest := mustCreateTask(t, svc, CreateTaskInput{Title: "Quest", Description: "d", Category: CategoryQuest})
	res, err := svc.CompleteTask(ctx, boss.ID)
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if err := svc.DeleteTask(ctx, quest.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if err := svc.DeleteAchievement(ctx, res.Achievement.ID); err != nil {
		t.Fatalf("DeleteAchievement: %v", err)
	}
	_, _ = svc.CompleteTask(ctx, "missing")

	if rec.created != 2 || rec.deleted != 1 || rec.achievementsDeleted != 1 {
		t.Fatalf("recorder=%+v", rec)
	}
	if rec.completed["boss"] != 1 || rec.minted != 1 {
		t.Fatalf("completed=%v minted=%d", rec.completed, rec.minted)
	}
}
