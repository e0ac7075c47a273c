package dashboard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/starford/vaultstats/internal/apperr"
	"github.com/starford/vaultstats/internal/models"
)

type fakeAnalyzer struct {
	calls   atomic.Int32
	release chan struct{}
	st      *models.VaultStatistics
	err     error
}

func (f *fakeAnalyzer) Analyze(ctx context.Context) (*models.VaultStatistics, error) {
	f.calls.Add(1)
	if f.release != nil {
		<-f.release
	}
	return f.st, f.err
}

func snapshot() *models.VaultStatistics {
	return &models.VaultStatistics{
		TotalNotes:          3,
		CreationsByDate:     []models.DateCount{{Date: "2024-06-14", Count: 2}, {Date: "2024-06-15", Count: 1}},
		ModificationsByDate: []models.DateCount{{Date: "2024-06-15", Count: 3}},
	}
}

func TestStats_ReturnsSnapshot(t *testing.T) {
	fa := &fakeAnalyzer{st: snapshot()}
	svc := NewService(fa, 12)

	st, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.TotalNotes != 3 {
		t.Errorf("total notes = %d, want 3", st.TotalNotes)
	}
}

func TestStats_ConcurrentCallsShareOneRun(t *testing.T) {
	fa := &fakeAnalyzer{st: snapshot(), release: make(chan struct{})}
	svc := NewService(fa, 12)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Stats(context.Background()); err != nil {
				t.Errorf("Stats: %v", err)
			}
		}()
	}
	time.Sleep(100 * time.Millisecond)
	close(fa.release)
	wg.Wait()

	if got := fa.calls.Load(); got != 1 {
		t.Errorf("analyze calls = %d, want 1", got)
	}

	// A later call starts a new run.
	if _, err := svc.Stats(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := fa.calls.Load(); got != 2 {
		t.Errorf("analyze calls = %d, want 2", got)
	}
}

func TestStats_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(&fakeAnalyzer{err: boom}, 12)
	if _, err := svc.Stats(context.Background()); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}

func TestStats_CallerCancellation(t *testing.T) {
	fa := &fakeAnalyzer{st: snapshot(), release: make(chan struct{})}
	defer close(fa.release)
	svc := NewService(fa, 12)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := svc.Stats(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want DeadlineExceeded", err)
	}
}

func TestHeatmap_InvalidSeries(t *testing.T) {
	svc := NewService(&fakeAnalyzer{st: snapshot()}, 12)
	_, err := svc.Heatmap(context.Background(), "words", 12)
	if !errors.Is(err, apperr.ErrInvalidSeries) {
		t.Errorf("err = %v, want ErrInvalidSeries", err)
	}
}

func TestHeatmap_MonthsDefaultAndClamp(t *testing.T) {
	svc := NewService(&fakeAnalyzer{st: snapshot()}, 6)
	svc.now = func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) }

	hm, err := svc.Heatmap(context.Background(), SeriesCreations, 0)
	if err != nil {
		t.Fatalf("Heatmap: %v", err)
	}
	if hm.Months != 6 {
		t.Errorf("months = %d, want configured 6", hm.Months)
	}
	if hm.Total != 3 || hm.MaxCount != 2 || hm.CurrentStreak != 2 {
		t.Errorf("total=%d max=%d current=%d, want 3/2/2", hm.Total, hm.MaxCount, hm.CurrentStreak)
	}

	hm, _ = svc.Heatmap(context.Background(), SeriesModifications, 100)
	if hm.Months != 24 || hm.Series != SeriesModifications {
		t.Errorf("months=%d series=%s, want 24/modifications", hm.Months, hm.Series)
	}
	if hm.To != "2024-06-15" {
		t.Errorf("to = %s", hm.To)
	}
}
