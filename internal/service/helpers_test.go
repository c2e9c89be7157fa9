package service

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"specialcare/internal/database"
	"specialcare/internal/i18n"
	"specialcare/internal/models"
	"specialcare/internal/planner"
	"specialcare/internal/repository"
)

var fixedNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

var testBundle = i18n.MustLoadEmbedded()

type testEnv struct {
	db       *database.DB
	children *ChildService
	plans    *PlanService
}

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "service.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(""); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)

	seq := 0
	builder := planner.NewBuilder(testBundle,
		planner.WithClock(func() time.Time { return fixedNow }),
		planner.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("plan-%d", seq)
		}),
	)

	children := NewChildService(repository.NewChildRepository(db), repository.NewTestResultRepository(db), nil)
	children.now = func() time.Time { return fixedNow }

	plans := NewPlanService(db, builder, testBundle, nil)
	plans.now = func() time.Time { return fixedNow }

	return &testEnv{db: db, children: children, plans: plans}
}

func (e *testEnv) addChild(t *testing.T, age int, problems ...string) *models.ChildInfo {
	t.Helper()
	child, err := e.children.CreateChild(models.ChildInfo{
		Name:       "Mia",
		Age:        age,
		ParentName: "Sam",
		Problems:   problems,
	})
	if err != nil {
		t.Fatalf("CreateChild() error = %v", err)
	}
	return child
}
