package collection

import (
	"context"
	"testing"
	"time"

	"districtportal/internal/infra/medium/memory"
	"districtportal/internal/store"
	"districtportal/pkg/domain"
)

func TestStatsScenario(t *testing.T) {
	c := openAnnouncements(t, newAnnouncementStore(t, memory.New()), WithClock(newStepClock()))
	seedScenario(t, c)

	stats := c.Stats()
	if stats.Total() != 3 {
		t.Fatalf("expected total 3, got %d", stats.Total())
	}
	if stats.Status("Active") != 2 || stats["active"] != 2 {
		t.Fatalf("expected 2 active, got %v", stats)
	}
	if stats["expired"] != 1 {
		t.Fatalf("expected 1 status-expired, got %v", stats)
	}
	if stats[StatExpiredByDate] != 1 {
		t.Fatalf("expected 1 expired by date, got %v", stats)
	}
}

func TestStatsDateExpiryIgnoresStatus(t *testing.T) {
	clock := newStepClock()
	c := openAnnouncements(t, newAnnouncementStore(t, memory.New()), WithClock(clock))
	ctx := context.Background()
	yesterday := clock.now.AddDate(0, 0, -1).Format(time.DateOnly)
	if _, err := c.Create(ctx, domain.Announcement{Title: "stale", Status: domain.AnnouncementActive, ValidUntil: yesterday}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := c.Create(ctx, domain.Announcement{Title: "bad date", Status: domain.AnnouncementActive, ValidUntil: "soon"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	stats := c.Stats()
	if stats["active"] != 2 || stats[StatExpiredByDate] != 1 {
		t.Fatalf("unexpected stats %v", stats)
	}
}

func TestStatsEmptyAndNonExpiring(t *testing.T) {
	empty := openAnnouncements(t, newAnnouncementStore(t, memory.New()))
	stats := empty.Stats()
	if stats.Total() != 0 {
		t.Fatalf("expected zero total")
	}
	for _, key := range []string{"active", "expired"} {
		if v, ok := stats[key]; !ok || v != 0 {
			t.Fatalf("expected declared status %q seeded with zero, got %v", key, stats)
		}
	}
	if v, ok := stats[StatExpiredByDate]; !ok || v != 0 {
		t.Fatalf("announcements always report expired_by_date, got %v", stats)
	}

	s, err := store.New[domain.VotingCenter](memory.New(), domain.KindVotingCenter.Namespace())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	vc, err := Open[domain.VotingCenter](context.Background(), s)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()
	for _, draft := range []domain.VotingCenter{
		{Name: "Ward 4 School", Status: domain.StatusActive},
		{Name: "Community Hall", Status: domain.StatusInactive},
		{Name: "Library"},
	} {
		if _, err := vc.Create(ctx, draft); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	vs := vc.Stats()
	if vs.Total() != 3 || vs["active"] != 1 || vs["inactive"] != 1 || len(vs) != 3 {
		t.Fatalf("unexpected voting center stats %v", vs)
	}
	if _, ok := vs[StatExpiredByDate]; ok {
		t.Fatalf("voting centers have no validity date: %v", vs)
	}
}
