package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"districtportal/internal/infra/medium/memory"
	"districtportal/pkg/domain"
)

type stubClock struct{ t time.Time }

func (s stubClock) Now() time.Time { return s.t }

type captureLogger struct{ calls []string }

func (c *captureLogger) Debug(msg string, _ ...any) { c.calls = append(c.calls, "d:"+msg) }
func (c *captureLogger) Info(msg string, _ ...any)  { c.calls = append(c.calls, "i:"+msg) }
func (c *captureLogger) Warn(msg string, _ ...any)  { c.calls = append(c.calls, "w:"+msg) }
func (c *captureLogger) Error(msg string, _ ...any) { c.calls = append(c.calls, "e:"+msg) }

func TestNewServiceRequiresMedium(t *testing.T) {
	if _, err := NewService(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil medium")
	}
}

func TestServiceCollectionsPersistToNamespaces(t *testing.T) {
	ctx := context.Background()
	m := memory.New()
	svc, err := NewService(ctx, m)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if _, err := svc.Announcements().Create(ctx, Announcement{Title: "Polling day", Priority: domain.PriorityHigh}); err != nil {
		t.Fatalf("create announcement: %v", err)
	}
	if _, err := svc.Assistance().Create(ctx, AssistanceInfo{Title: "Helpline", Category: domain.CategoryHelpline}); err != nil {
		t.Fatalf("create assistance: %v", err)
	}
	if _, err := svc.VotingCenters().Create(ctx, VotingCenter{Name: "Ward 7 School", Ward: "7"}); err != nil {
		t.Fatalf("create voting center: %v", err)
	}

	keys := m.Keys()
	want := []string{"announcements_data", "assistance_info_data", "voting_center_data"}
	if len(keys) != len(want) {
		t.Fatalf("expected keys %v, got %v", want, keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("expected keys %v, got %v", want, keys)
		}
	}

	reopened, err := NewService(ctx, m)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Announcements().Len() != 1 || reopened.Assistance().Len() != 1 || reopened.VotingCenters().Len() != 1 {
		t.Fatalf("expected one entity per collection after reopen")
	}
	if reopened.Medium() != m {
		t.Fatalf("expected medium to be retained")
	}
}

func TestServiceRejectsInvalidDrafts(t *testing.T) {
	ctx := context.Background()
	audit := &captureAuditRecorder{}
	svc, err := NewInMemoryService(ctx, WithAuditRecorder(audit))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	_, err = svc.Announcements().Create(ctx, Announcement{Title: " ", Priority: domain.PriorityHigh})
	var verr domain.ValidationError
	if !errors.As(err, &verr) || verr.Field != "title" {
		t.Fatalf("expected title validation error, got %v", err)
	}
	if svc.Announcements().Len() != 0 {
		t.Fatalf("invalid draft must not be stored")
	}
	if !audit.has("announcements.create", AuditStatusError, nil) {
		t.Fatalf("expected audit error for rejected create")
	}

	vc, err := svc.VotingCenters().Create(ctx, VotingCenter{Name: "Hall"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.VotingCenters().Update(ctx, vc.ID, VotingCenter{Name: "Hall", Status: "Closed"}); err == nil {
		t.Fatalf("expected status enum validation error")
	}
	if got, _ := svc.VotingCenters().Get(vc.ID); got.Status != domain.StatusActive {
		t.Fatalf("rejected update must not be applied, got %+v", got)
	}
}

func TestServiceAppliesFormDefaultsToUnsetEnums(t *testing.T) {
	ctx := context.Background()
	svc, err := NewInMemoryService(ctx)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	ann, err := svc.Announcements().Create(ctx, Announcement{Title: "x"})
	if err != nil {
		t.Fatalf("create announcement: %v", err)
	}
	if ann.Priority != domain.PriorityNormal || ann.Status != domain.AnnouncementActive {
		t.Fatalf("expected Normal/Active defaults, got priority=%q status=%q", ann.Priority, ann.Status)
	}
	info, err := svc.Assistance().Create(ctx, AssistanceInfo{Title: "Ramp"})
	if err != nil {
		t.Fatalf("create assistance: %v", err)
	}
	if info.Category != domain.CategoryOther || info.Status != domain.StatusActive {
		t.Fatalf("expected Other/Active defaults, got category=%q status=%q", info.Category, info.Status)
	}
	vc, err := svc.VotingCenters().Create(ctx, VotingCenter{Name: "Hall"})
	if err != nil {
		t.Fatalf("create voting center: %v", err)
	}
	if vc.Status != domain.StatusActive {
		t.Fatalf("expected Active default, got %q", vc.Status)
	}
	updated, err := svc.VotingCenters().Update(ctx, vc.ID, VotingCenter{Name: "Hall"})
	if err != nil || updated.Status != domain.StatusActive {
		t.Fatalf("expected defaults on update, got %+v (%v)", updated, err)
	}

	for kind, stats := range svc.Summary() {
		sum := 0
		for key, n := range stats {
			if key != "total" && key != "expired_by_date" {
				sum += n
			}
		}
		if sum != stats.Total() || stats.Total() != 1 {
			t.Fatalf("%s status counts %v do not add up to total", kind, stats)
		}
	}
	if got := svc.VotingCenters().Query(Criteria{Filters: map[string]string{"status": "Active"}}); len(got) != 1 {
		t.Fatalf("expected defaulted center to match status filter, got %d", len(got))
	}
}

func TestServiceOptionsApplyToCollections(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2024, 10, 1, 8, 30, 0, 0, time.UTC)
	log := &captureLogger{}
	ids := 0
	svc, err := NewInMemoryService(ctx,
		WithClock(stubClock{t: fixed}),
		WithLogger(log),
		WithIDGenerator(func() string { ids++; return "id-" + string(rune('a'+ids-1)) }),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	created, err := svc.Assistance().Create(ctx, AssistanceInfo{Title: "Ramp access", Category: domain.CategoryAccessibility})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != "id-a" || !created.CreatedAt.Equal(fixed) {
		t.Fatalf("expected injected id and clock, got %+v", created.Base)
	}
	if len(log.calls) == 0 {
		t.Fatalf("expected logger to record calls")
	}
}

func TestServiceSummary(t *testing.T) {
	ctx := context.Background()
	svc, err := NewInMemoryService(ctx)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	for _, a := range []Announcement{
		{Title: "old", Status: domain.AnnouncementActive, ValidUntil: "2001-01-01"},
		{Title: "new", Status: domain.AnnouncementActive},
	} {
		if _, err := svc.Announcements().Create(ctx, a); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	summary := svc.Summary()
	if len(summary) != 3 {
		t.Fatalf("expected three kinds, got %v", summary)
	}
	ann := summary[KindAnnouncement]
	if ann.Total() != 2 || ann["active"] != 2 || ann["expired_by_date"] != 1 {
		t.Fatalf("unexpected announcement stats %v", ann)
	}
	if summary[KindVotingCenter].Total() != 0 {
		t.Fatalf("expected empty voting centers")
	}
}

func TestServiceReloadPicksUpExternalWrites(t *testing.T) {
	ctx := context.Background()
	m := memory.New()
	svc, err := NewService(ctx, m)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	payload := `[{"id":"ext-1","createdAt":"2024-01-02T03:04:05Z","updatedAt":"2024-01-02T03:04:05Z","name":"Imported","status":"Active"}]`
	if err := m.SetItem(ctx, "voting_center_data", payload); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := svc.Reload(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	got, ok := svc.VotingCenters().Get("ext-1")
	if !ok || got.Name != "Imported" {
		t.Fatalf("expected imported voting center, got %+v", got)
	}
	if err := svc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
