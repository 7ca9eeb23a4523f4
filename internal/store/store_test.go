package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"districtportal/internal/infra/medium/memory"
	"districtportal/internal/medium"
	"districtportal/pkg/domain"
)

type failingMedium struct {
	getErr error
	setErr error
}

func (f failingMedium) GetItem(context.Context, string) (string, bool, error) {
	return "", false, f.getErr
}
func (f failingMedium) SetItem(context.Context, string, string) error { return f.setErr }
func (failingMedium) Driver() medium.Driver                           { return medium.DriverMemory }

type warnCounter struct{ warns int }

func (*warnCounter) Debug(string, ...any) {}
func (*warnCounter) Info(string, ...any)  {}
func (w *warnCounter) Warn(string, ...any) { w.warns++ }
func (*warnCounter) Error(string, ...any) {}

func TestNewRequiresMediumAndNamespace(t *testing.T) {
	if _, err := New[domain.Announcement](nil, "announcements_data"); err == nil {
		t.Fatalf("expected error for nil medium")
	}
	if _, err := New[domain.Announcement](memory.New(), " "); err == nil {
		t.Fatalf("expected error for blank namespace")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := memory.New()
	s, err := New[domain.Announcement](m, domain.KindAnnouncement.Namespace())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	created := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	items := []domain.Announcement{
		{Base: domain.Base{ID: "b", CreatedAt: created, UpdatedAt: created}, Title: "Polling hours", Priority: domain.PriorityHigh, Status: domain.AnnouncementActive, ValidUntil: "2024-06-01"},
		{Base: domain.Base{ID: "a", CreatedAt: created.Add(-time.Hour), UpdatedAt: created}, Title: "Ward map", Details: "updated", Priority: domain.PriorityNormal},
	}
	if err := s.Save(ctx, items); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("unexpected order or contents: %+v", got)
	}
	if !got[0].CreatedAt.Equal(created) || got[1].Details != "updated" || got[0].ValidUntil != "2024-06-01" {
		t.Fatalf("fields not preserved: %+v", got)
	}
}

func TestSaveEmptyWritesArray(t *testing.T) {
	ctx := context.Background()
	m := memory.New()
	s, _ := New[domain.VotingCenter](m, domain.KindVotingCenter.Namespace())
	if err := s.Save(ctx, nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, found, _ := m.GetItem(ctx, "voting_center_data")
	if !found || raw != "[]" {
		t.Fatalf("expected [] payload, got %q (found=%v)", raw, found)
	}
}

func TestLoadFailsOpen(t *testing.T) {
	ctx := context.Background()
	cases := map[string]struct {
		payload string
		set     bool
		warns   int
	}{
		"absent":  {},
		"empty":   {payload: "", set: true},
		"null":    {payload: "null", set: true},
		"corrupt": {payload: "{not json", set: true, warns: 1},
		"object":  {payload: `{"id":"x"}`, set: true, warns: 1},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			m := memory.New()
			if tc.set {
				if err := m.SetItem(ctx, "assistance_info_data", tc.payload); err != nil {
					t.Fatalf("seed: %v", err)
				}
			}
			logger := &warnCounter{}
			s, _ := New[domain.AssistanceInfo](m, "assistance_info_data", WithLogger(logger))
			got, err := s.Load(ctx)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got == nil || len(got) != 0 {
				t.Fatalf("expected empty non-nil slice, got %#v", got)
			}
			if logger.warns != tc.warns {
				t.Fatalf("expected %d warnings, got %d", tc.warns, logger.warns)
			}
		})
	}
}

func TestMediumErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("network down")
	s, _ := New[domain.Announcement](failingMedium{getErr: boom, setErr: boom}, "announcements_data")
	if _, err := s.Load(ctx); !errors.Is(err, boom) {
		t.Fatalf("expected load error to wrap medium error, got %v", err)
	}
	if err := s.Save(ctx, []domain.Announcement{{Title: "x"}}); !errors.Is(err, boom) {
		t.Fatalf("expected save error to wrap medium error, got %v", err)
	}
	if s.Namespace() != "announcements_data" {
		t.Fatalf("unexpected namespace %q", s.Namespace())
	}
}
