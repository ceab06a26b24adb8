package audit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/seoscan/seoscan/internal/check"
	"github.com/seoscan/seoscan/internal/model"
)

// fakeCheck is a scriptable check for orchestrator tests.
type fakeCheck struct {
	name     string
	category model.Category
	result   *model.CheckResult
	err      error
	panics   bool
	delay    time.Duration
}

func (f fakeCheck) Name() string             { return f.name }
func (f fakeCheck) Category() model.Category { return f.category }

func (f fakeCheck) Run(ctx context.Context, _ *check.Target) (*model.CheckResult, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.panics {
		panic("boom")
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// passing builds a fake check that yields a pass result.
func passing(name string) fakeCheck {
	return fakeCheck{
		name:     name,
		category: model.CategoryTechnical,
		result: &model.CheckResult{
			Name:     name,
			Category: model.CategoryTechnical,
			Status:   model.StatusPass,
			Priority: model.PriorityLow,
		},
	}
}

func quietRunner(opts ...RunnerOption) *Runner {
	opts = append([]RunnerOption{
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, opts...)
	return NewRunner(opts...)
}

func TestRunner_preservesRegistrationOrder(t *testing.T) {
	t.Parallel()

	// Staggered delays force out-of-order completion.
	checks := []check.Check{
		fakeCheck{name: "first", category: model.CategoryMeta, delay: 30 * time.Millisecond,
			result: &model.CheckResult{Name: "first", Status: model.StatusPass}},
		fakeCheck{name: "second", category: model.CategoryMeta, delay: 10 * time.Millisecond,
			result: &model.CheckResult{Name: "second", Status: model.StatusPass}},
		fakeCheck{name: "third", category: model.CategoryMeta,
			result: &model.CheckResult{Name: "third", Status: model.StatusPass}},
	}

	results := quietRunner().Run(context.Background(), checks, check.NewTarget("https://example.com", "", nil))

	if len(results) != 3 {
		t.Fatalf("Run() = %d results, want 3", len(results))
	}
	for i, want := range []string{"first", "second", "third"} {
		if results[i].Name != want {
			t.Errorf("results[%d].Name = %q, want %q", i, results[i].Name, want)
		}
	}
}

func TestRunner_filtersInapplicableChecks(t *testing.T) {
	t.Parallel()

	checks := []check.Check{
		passing("applicable"),
		fakeCheck{name: "inapplicable", category: model.CategoryImages}, // nil result
		passing("also applicable"),
	}

	results := quietRunner().Run(context.Background(), checks, check.NewTarget("https://example.com", "", nil))

	if len(results) != 2 {
		t.Fatalf("Run() = %d results, want 2 after nil filtering", len(results))
	}
	if results[0].Name != "applicable" || results[1].Name != "also applicable" {
		t.Errorf("unexpected result names: %q, %q", results[0].Name, results[1].Name)
	}
}

func TestRunner_degradesFailuresToNeutral(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		check check.Check
	}{
		{
			name:  "check returning an error",
			check: fakeCheck{name: "Erroring Probe", category: model.CategorySecurity, err: errors.New("dial timeout")},
		},
		{
			name:  "check panicking",
			check: fakeCheck{name: "Erroring Probe", category: model.CategorySecurity, panics: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			results := quietRunner().Run(context.Background(),
				[]check.Check{tt.check}, check.NewTarget("https://example.com", "", nil))

			if len(results) != 1 {
				t.Fatalf("Run() = %d results, want 1", len(results))
			}
			got := results[0]
			if got.Status != model.StatusNeutral {
				t.Errorf("Status = %v, want neutral fallback", got.Status)
			}
			if got.Name != "Erroring Probe" {
				t.Errorf("Name = %q, want the check's name on the fallback", got.Name)
			}
			if got.Category != model.CategorySecurity {
				t.Errorf("Category = %v, want the check's category", got.Category)
			}
		})
	}
}

func TestRunner_attachesSlugs(t *testing.T) {
	t.Parallel()

	results := quietRunner().Run(context.Background(),
		[]check.Check{passing("Meta Title Test")}, check.NewTarget("https://example.com", "", nil))

	if len(results) != 1 {
		t.Fatalf("Run() = %d results, want 1", len(results))
	}
	if results[0].ID != "meta-title-test" {
		t.Errorf("ID = %q, want %q", results[0].ID, "meta-title-test")
	}
}

func TestRunner_progressIsMonotonic(t *testing.T) {
	t.Parallel()

	var updates []int
	runner := quietRunner(
		WithConcurrency(4),
		WithProgress(func(completed, total int) {
			if total != 8 {
				t.Errorf("total = %d, want 8", total)
			}
			updates = append(updates, completed)
		}),
	)

	checks := make([]check.Check, 0, 8)
	for i := 0; i < 8; i++ {
		checks = append(checks, passing(fmt.Sprintf("check %d", i)))
	}
	runner.Run(context.Background(), checks, check.NewTarget("https://example.com", "", nil))

	if len(updates) != 8 {
		t.Fatalf("progress called %d times, want 8", len(updates))
	}
	for i, got := range updates {
		if got != i+1 {
			t.Errorf("updates[%d] = %d, want %d", i, got, i+1)
		}
	}
}

func TestRunner_timesOutSlowChecks(t *testing.T) {
	t.Parallel()

	runner := quietRunner(WithCheckTimeout(20 * time.Millisecond))
	slow := fakeCheck{
		name:     "Slow Probe",
		category: model.CategoryTechnical,
		delay:    5 * time.Second,
		result:   &model.CheckResult{Name: "Slow Probe", Status: model.StatusPass},
	}

	start := time.Now()
	results := runner.Run(context.Background(), []check.Check{slow}, check.NewTarget("https://example.com", "", nil))

	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("Run() took %v, want the per-check timeout to cut it short", elapsed)
	}
	if len(results) != 1 || results[0].Status != model.StatusNeutral {
		t.Errorf("timed-out check should degrade to neutral, got %+v", results)
	}
}
