package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/nao1215/ffscope/internal/model"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, exploration *model.Exploration) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, exploration *model.Exploration) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, exploration)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

// TestPipelineNew tests the Pipeline constructor.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	t.Run("creates pipeline with default settings", func(t *testing.T) {
		t.Parallel()

		p := New()

		if p == nil {
			t.Fatal("expected non-nil pipeline")
		}
		if p.StepCount() != 0 {
			t.Errorf("expected 0 steps, got %d", p.StepCount())
		}
		if p.logger == nil {
			t.Error("expected default logger")
		}
	})

	t.Run("applies WithContinueOnError option", func(t *testing.T) {
		t.Parallel()

		p := New(WithContinueOnError(true))

		if !p.continueOnError {
			t.Error("expected continueOnError to be true")
		}
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		t.Parallel()

		p := New(WithLogger(nil))
		if p.logger == nil {
			t.Error("expected default logger")
		}
	})
}

// TestPipelineAddStep tests adding steps to the pipeline.
func TestPipelineAddStep(t *testing.T) {
	t.Parallel()

	t.Run("adds single step", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddStep(&mockStep{name: "test-step"})

		if p.StepCount() != 1 {
			t.Errorf("expected 1 step, got %d", p.StepCount())
		}
	})

	t.Run("maintains step order", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddSteps(&mockStep{name: "first"}, &mockStep{name: "second"})
		p.AddStep(&mockStep{name: "third"})

		names := p.StepNames()

		expected := []string{"first", "second", "third"}
		if len(names) != len(expected) {
			t.Fatalf("expected %d names, got %v", len(expected), names)
		}
		for i, name := range names {
			if name != expected[i] {
				t.Errorf("step %d: got %q, expected %q", i, name, expected[i])
			}
		}
	})

	t.Run("empty pipeline has no names", func(t *testing.T) {
		t.Parallel()

		if names := New().StepNames(); len(names) != 0 {
			t.Errorf("expected empty slice, got %v", names)
		}
	})
}

// TestPipelineExecute tests pipeline execution.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes all steps in order", func(t *testing.T) {
		t.Parallel()

		executionOrder := make([]string, 0)
		record := func(name string) func(context.Context, *model.Exploration) error {
			return func(_ context.Context, _ *model.Exploration) error {
				executionOrder = append(executionOrder, name)
				return nil
			}
		}

		p := New()
		p.AddStep(&mockStep{name: "step-1", doFunc: record("step-1")})
		p.AddStep(&mockStep{name: "step-2", doFunc: record("step-2")})

		e := model.NewExploration(1, 2024)
		if err := p.Execute(context.Background(), e); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(executionOrder) != 2 || executionOrder[0] != "step-1" || executionOrder[1] != "step-2" {
			t.Errorf("wrong execution order: %v", executionOrder)
		}
		if len(e.PerformedSteps) != 2 {
			t.Errorf("expected 2 performed steps, got %d", len(e.PerformedSteps))
		}
	})

	t.Run("stops on first error by default", func(t *testing.T) {
		t.Parallel()

		expectedErr := errors.New("step failed")
		next := &mockStep{name: "should-not-run"}

		p := New()
		p.AddStep(&mockStep{
			name: "failing-step",
			doFunc: func(_ context.Context, _ *model.Exploration) error {
				return expectedErr
			},
		})
		p.AddStep(next)

		e := model.NewExploration(1, 2024)
		err := p.Execute(context.Background(), e)

		if !errors.Is(err, expectedErr) {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if next.callCount != 0 {
			t.Error("second step should not have been called")
		}
		if e.ErrorMessage != expectedErr.Error() {
			t.Errorf("expected error message %q, got %q", expectedErr.Error(), e.ErrorMessage)
		}
		if e.Fingerprint != "" {
			t.Error("stopped exploration should not be fingerprinted")
		}
	})

	t.Run("continues on error when configured", func(t *testing.T) {
		t.Parallel()

		next := &mockStep{name: "should-run"}

		p := New(WithContinueOnError(true))
		p.AddStep(&mockStep{
			name: "failing-step",
			doFunc: func(_ context.Context, _ *model.Exploration) error {
				return errors.New("step failed")
			},
		})
		p.AddStep(next)

		e := model.NewExploration(1, 2024)
		if err := p.Execute(context.Background(), e); err != nil {
			t.Errorf("expected nil error with continueOnError, got %v", err)
		}
		if next.callCount != 1 {
			t.Error("second step should have been called")
		}
		if e.Error == nil {
			t.Error("expected error to be recorded in exploration")
		}
		if e.Fingerprint == "" {
			t.Error("expected fingerprint after completion")
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		step := &mockStep{name: "should-not-run"}
		p := New()
		p.AddStep(step)

		e := model.NewExploration(1, 2024)
		err := p.Execute(ctx, e)

		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if step.callCount != 0 {
			t.Error("step should not have been called")
		}
		if !errors.Is(e.Error, context.Canceled) {
			t.Errorf("expected cancellation in exploration, got %v", e.Error)
		}
	})
}

// TestExecuteKeepsFirstError tests that later failures do not replace the
// first recorded error.
func TestExecuteKeepsFirstError(t *testing.T) {
	t.Parallel()

	first := errors.New("unauthorized")
	p := New(WithContinueOnError(true))
	p.AddSteps(
		&mockStep{name: "open", doFunc: func(_ context.Context, _ *model.Exploration) error { return first }},
		&mockStep{name: "explore", doFunc: func(_ context.Context, _ *model.Exploration) error { return ErrLeagueNotLoaded }},
	)

	e := model.NewExploration(1, 2024)
	if err := p.Execute(context.Background(), e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !errors.Is(e.Error, first) {
		t.Errorf("expected first error, got %v", e.Error)
	}
	if len(e.PerformedSteps) != 2 {
		t.Errorf("expected 2 performed steps, got %v", e.PerformedSteps)
	}
}
