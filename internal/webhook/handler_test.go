package webhook

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"moana_backoffice/platform/logger"
	appvalidator "moana_backoffice/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newTestEngine(store *fakeStore, dir *fakeDirectory) *gin.Engine {
	gin.SetMode(gin.TestMode)

	log := logger.New("development")
	resolver := NewBrokerResolver(dir, DefaultAliasConfig(), log)
	service := NewService(store, resolver, appvalidator.New(), &recordingBus{}, log)
	handler := NewHandler(service, fakeWebhookConfig{allowedIPs: []string{"35.171.79.77"}}, log)

	engine := gin.New()
	engine.POST("/yatco", handler.HandleYatcoLead)
	engine.GET("/yatco", handler.HandleHealth)
	return engine
}

func postLead(t *testing.T, engine *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/yatco", &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestHandleYatcoLeadCreated(t *testing.T) {
	julien := testBroker("Julien", "julien@moana-yachting.com")
	store := &fakeStore{nextID: uuid.New()}
	dir := &fakeDirectory{byEmail: map[string]Broker{"julien@moana-yachting.com": julien}}
	engine := newTestEngine(store, dir)

	w := postLead(t, engine, fullPayload())
	if w.Code != http.StatusCreated {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}

	var resp LeadCreatedResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.LeadID != store.nextID {
		t.Fatalf("response %+v", resp)
	}
	if !resp.BrokerAssigned || resp.BrokerName != "Julien" {
		t.Fatalf("broker fields: %+v", resp)
	}
}

func TestHandleYatcoLeadDuplicate(t *testing.T) {
	existingID := uuid.New()
	store := &fakeStore{existing: map[string]uuid.UUID{"L-123": existingID}}
	engine := newTestEngine(store, &fakeDirectory{})

	w := postLead(t, engine, validPayload())
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, want 200 for duplicate", w.Code)
	}

	var resp DuplicateLeadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Message != "Lead already exists" || resp.LeadID != existingID {
		t.Fatalf("response %+v", resp)
	}
}

func TestHandleYatcoLeadValidationFailure(t *testing.T) {
	store := &fakeStore{}
	engine := newTestEngine(store, &fakeDirectory{})

	payload := validPayload()
	payload.Recipient.OfficeName = ""

	w := postLead(t, engine, payload)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
	if len(store.inserted) != 0 {
		t.Fatal("invalid payload must not be stored")
	}

	var resp struct {
		Error   string       `json:"error"`
		Details []FieldError `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Details) != 1 || resp.Details[0].Field != "recipient.officeName" {
		t.Fatalf("details %v", resp.Details)
	}
}

func TestHandleYatcoLeadMalformedJSON(t *testing.T) {
	engine := newTestEngine(&fakeStore{}, &fakeDirectory{})

	req := httptest.NewRequest(http.MethodPost, "/yatco", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
}

func TestHandleYatcoLeadStorageFailure(t *testing.T) {
	store := &fakeStore{findErr: contextDeadlineErr{}}
	engine := newTestEngine(store, &fakeDirectory{})

	w := postLead(t, engine, validPayload())
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status %d, want 500", w.Code)
	}
}

type contextDeadlineErr struct{}

func (contextDeadlineErr) Error() string { return "context deadline exceeded" }

func TestHandleHealth(t *testing.T) {
	engine := newTestEngine(&fakeStore{}, &fakeDirectory{})

	req := httptest.NewRequest(http.MethodGet, "/yatco", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}

	var resp struct {
		Status         string   `json:"status"`
		AllowlistedIPs []string `json:"allowlisted_ips"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "ok" || len(resp.AllowlistedIPs) != 1 {
		t.Fatalf("response %+v", resp)
	}
}
