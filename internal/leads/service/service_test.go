package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"moana_backoffice/internal/events"
	"moana_backoffice/internal/leads/repository"
	"moana_backoffice/internal/leads/transport"
	"moana_backoffice/internal/webhook"
	"moana_backoffice/platform/logger"

	"github.com/google/uuid"
)

type fakeRepo struct {
	leads map[uuid.UUID]repository.Lead

	lastInsert repository.InsertLeadParams
	lastList   repository.ListParams
	listResult []repository.Lead
	listTotal  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{leads: make(map[uuid.UUID]repository.Lead)}
}

func (f *fakeRepo) Insert(_ context.Context, params repository.InsertLeadParams) (uuid.UUID, error) {
	f.lastInsert = params
	id := uuid.New()
	f.leads[id] = repository.Lead{
		ID:                 id,
		YatcoLeadID:        params.YatcoLeadID,
		LeadDate:           params.LeadDate,
		Source:             params.Source,
		ContactDisplayName: params.ContactDisplayName,
		BrokerID:           params.BrokerID,
		Status:             params.Status,
		ProcessedAt:        params.ProcessedAt,
	}
	return id, nil
}

func (f *fakeRepo) FindByYatcoID(_ context.Context, yatcoLeadID string) (uuid.UUID, bool, error) {
	for id, l := range f.leads {
		if l.YatcoLeadID != nil && *l.YatcoLeadID == yatcoLeadID {
			return id, true, nil
		}
	}
	return uuid.Nil, false, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Lead, error) {
	l, ok := f.leads[id]
	if !ok {
		return repository.Lead{}, errNotFound
	}
	return l, nil
}

func (f *fakeRepo) List(_ context.Context, params repository.ListParams) ([]repository.Lead, int, error) {
	f.lastList = params
	return f.listResult, f.listTotal, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	l, ok := f.leads[id]
	if !ok {
		return errNotFound
	}
	l.Status = status
	f.leads[id] = l
	return nil
}

func (f *fakeRepo) AssignBroker(_ context.Context, id uuid.UUID, brokerID *uuid.UUID) error {
	l, ok := f.leads[id]
	if !ok {
		return errNotFound
	}
	l.BrokerID = brokerID
	f.leads[id] = l
	return nil
}

func (f *fakeRepo) Stats(context.Context) (repository.Stats, error) {
	return repository.Stats{
		Total:      len(f.leads),
		ByStatus:   map[string]int{"NEW": len(f.leads)},
		Unassigned: 0,
	}, nil
}

type notFoundError struct{}

func (notFoundError) Error() string { return "lead not found" }

var errNotFound = notFoundError{}

type recordingBus struct {
	mu        sync.Mutex
	published []events.Event
}

func (b *recordingBus) Publish(_ context.Context, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, event)
}

func (b *recordingBus) PublishSync(ctx context.Context, event events.Event) error {
	b.Publish(ctx, event)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func newTestService(repo *fakeRepo, bus *recordingBus) *Service {
	return New(repo, bus, logger.New("development"))
}

func TestCreateManualLead(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &recordingBus{})

	resp, err := svc.Create(context.Background(), transport.CreateLeadRequest{
		ContactName: "Jean Dupont",
		Source:      "Phone",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if resp.Status != transport.LeadStatusNew {
		t.Fatalf("Status = %q", resp.Status)
	}
	if repo.lastInsert.YatcoLeadID != nil {
		t.Fatal("manual leads must not carry an external id")
	}
	if repo.lastInsert.ProcessedAt != nil {
		t.Fatal("unassigned manual lead must not be marked processed")
	}
}

func TestCreateManualLeadWithBroker(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &recordingBus{})

	brokerID := uuid.New()
	_, err := svc.Create(context.Background(), transport.CreateLeadRequest{
		ContactName: "Jean Dupont",
		Source:      "Phone",
		BrokerID:    &brokerID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if repo.lastInsert.BrokerID == nil || *repo.lastInsert.BrokerID != brokerID {
		t.Fatalf("BrokerID = %v", repo.lastInsert.BrokerID)
	}
	if repo.lastInsert.ProcessedAt == nil {
		t.Fatal("assigned manual lead must be marked processed")
	}
}

func TestUpdateStatusPublishesChange(t *testing.T) {
	repo := newFakeRepo()
	bus := &recordingBus{}
	svc := newTestService(repo, bus)

	created, err := svc.Create(context.Background(), transport.CreateLeadRequest{
		ContactName: "Jean Dupont",
		Source:      "Phone",
	})
	if err != nil {
		t.Fatal(err)
	}

	resp, err := svc.UpdateStatus(context.Background(), created.ID, transport.UpdateLeadStatusRequest{
		Status: transport.LeadStatusContacted,
	})
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if resp.Status != transport.LeadStatusContacted {
		t.Fatalf("Status = %q", resp.Status)
	}

	if len(bus.published) != 1 {
		t.Fatalf("published %d events", len(bus.published))
	}
	ev, ok := bus.published[0].(events.LeadStatusChanged)
	if !ok {
		t.Fatalf("event type %T", bus.published[0])
	}
	if ev.OldStatus != "NEW" || ev.NewStatus != "CONTACTED" {
		t.Fatalf("event %+v", ev)
	}
}

func TestUpdateStatusNoopDoesNotPublish(t *testing.T) {
	repo := newFakeRepo()
	bus := &recordingBus{}
	svc := newTestService(repo, bus)

	created, err := svc.Create(context.Background(), transport.CreateLeadRequest{
		ContactName: "Jean Dupont",
		Source:      "Phone",
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.UpdateStatus(context.Background(), created.ID, transport.UpdateLeadStatusRequest{
		Status: transport.LeadStatusNew,
	}); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	if len(bus.published) != 0 {
		t.Fatal("same-status update must not publish")
	}
}

func TestListDefaultsPagination(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &recordingBus{})

	resp, err := svc.List(context.Background(), transport.ListLeadsRequest{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if resp.Page != 1 || resp.PageSize != defaultPageSize {
		t.Fatalf("page %d size %d", resp.Page, resp.PageSize)
	}
	if repo.lastList.Limit != defaultPageSize || repo.lastList.Offset != 0 {
		t.Fatalf("repo params %+v", repo.lastList)
	}
}

func TestListPassesFilters(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &recordingBus{})

	status := transport.LeadStatusQualified
	_, err := svc.List(context.Background(), transport.ListLeadsRequest{
		Status:   &status,
		Search:   "Beneteau",
		Page:     3,
		PageSize: 10,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if repo.lastList.Status == nil || *repo.lastList.Status != "QUALIFIED" {
		t.Fatalf("status filter %v", repo.lastList.Status)
	}
	if repo.lastList.Search != "Beneteau" {
		t.Fatalf("search filter %q", repo.lastList.Search)
	}
	if repo.lastList.Offset != 20 {
		t.Fatalf("offset %d", repo.lastList.Offset)
	}
}

func TestWebhookStoreMapsRecord(t *testing.T) {
	repo := newFakeRepo()
	store := NewWebhookStore(repo)

	processedAt := time.Now()
	brokerID := uuid.New()
	rec := webhook.LeadRecord{
		YatcoLeadID:         "L-42",
		LeadDate:            time.Now(),
		Source:              "YachtWorld",
		ContactDisplayName:  "Jean Dupont",
		RecipientOfficeName: "Moana Yachting",
		RecipientOfficeID:   "OFF-1",
		BrokerID:            &brokerID,
		Status:              "NEW",
		ProcessedAt:         &processedAt,
	}

	id, err := store.Insert(context.Background(), rec)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got := repo.lastInsert
	if got.YatcoLeadID == nil || *got.YatcoLeadID != "L-42" {
		t.Fatalf("YatcoLeadID = %v", got.YatcoLeadID)
	}
	if got.RecipientOfficeName == nil || *got.RecipientOfficeName != "Moana Yachting" {
		t.Fatalf("RecipientOfficeName = %v", got.RecipientOfficeName)
	}
	if got.BrokerID == nil || *got.BrokerID != brokerID {
		t.Fatalf("BrokerID = %v", got.BrokerID)
	}

	foundID, found, err := store.FindByExternalID(context.Background(), "L-42")
	if err != nil || !found || foundID != id {
		t.Fatalf("FindByExternalID = %v, %v, %v", foundID, found, err)
	}
}
