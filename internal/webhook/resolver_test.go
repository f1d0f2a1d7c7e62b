package webhook

import (
	"context"
	"errors"
	"strings"
	"testing"

	"moana_backoffice/platform/logger"

	"github.com/google/uuid"
)

type fakeDirectory struct {
	byEmail map[string]Broker
	byName  map[string]Broker

	emailErr error
	nameErr  error

	emailCalls [][]string
	nameCalls  []string
}

func (f *fakeDirectory) FindByEmails(_ context.Context, emails []string) (Broker, bool, error) {
	f.emailCalls = append(f.emailCalls, emails)
	if f.emailErr != nil {
		return Broker{}, false, f.emailErr
	}
	for _, e := range emails {
		if b, ok := f.byEmail[strings.ToLower(e)]; ok {
			return b, true, nil
		}
	}
	return Broker{}, false, nil
}

func (f *fakeDirectory) FindByName(_ context.Context, name string) (Broker, bool, error) {
	f.nameCalls = append(f.nameCalls, name)
	if f.nameErr != nil {
		return Broker{}, false, f.nameErr
	}
	b, ok := f.byName[strings.ToLower(name)]
	return b, ok, nil
}

func testBroker(name, email string) Broker {
	return Broker{ID: uuid.New(), Name: name, Email: email}
}

func newTestResolver(dir *fakeDirectory) *BrokerResolver {
	return NewBrokerResolver(dir, DefaultAliasConfig(), logger.New("development"))
}

func TestResolveViaAlias(t *testing.T) {
	julien := testBroker("Julien", "julien@moana-yachting.com")
	dir := &fakeDirectory{byEmail: map[string]Broker{"julien@moana-yachting.com": julien}}

	got, ok := newTestResolver(dir).Resolve(context.Background(), "Julien")
	if !ok || got.ID != julien.ID {
		t.Fatalf("Resolve = %v, %v", got, ok)
	}
	if len(dir.nameCalls) != 0 {
		t.Fatalf("name lookup should not run after email match, calls: %v", dir.nameCalls)
	}
}

func TestResolveAliasDiacriticsAndCase(t *testing.T) {
	cedric := testBroker("Cedric", "cedric@moana-yachting.com")
	dir := &fakeDirectory{byEmail: map[string]Broker{"cedric@moana-yachting.com": cedric}}

	got, ok := newTestResolver(dir).Resolve(context.Background(), "  CÉDRIC  ")
	if !ok || got.ID != cedric.ID {
		t.Fatalf("Resolve = %v, %v", got, ok)
	}
}

func TestResolveDomainVariant(t *testing.T) {
	// Alias points at moana-yachting.com but the broker row carries the
	// other spelling of the domain.
	julien := testBroker("Julien", "julien@moanayachting.com")
	dir := &fakeDirectory{byEmail: map[string]Broker{"julien@moanayachting.com": julien}}

	got, ok := newTestResolver(dir).Resolve(context.Background(), "Julien")
	if !ok || got.ID != julien.ID {
		t.Fatalf("Resolve = %v, %v", got, ok)
	}
	if len(dir.emailCalls) != 1 || len(dir.emailCalls[0]) != 2 {
		t.Fatalf("expected one lookup with both domain variants, got %v", dir.emailCalls)
	}
}

func TestResolveLiteralEmailRecipient(t *testing.T) {
	bart := testBroker("Bart", "bart@moanayachting.com")
	dir := &fakeDirectory{byEmail: map[string]Broker{"bart@moanayachting.com": bart}}

	got, ok := newTestResolver(dir).Resolve(context.Background(), "bart@moanayachting.com")
	if !ok || got.ID != bart.ID {
		t.Fatalf("Resolve = %v, %v", got, ok)
	}
}

func TestResolveAliasBeatsNameMatch(t *testing.T) {
	aliased := testBroker("Julien", "julien@moana-yachting.com")
	homonym := testBroker("Julien", "other.julien@example.com")
	dir := &fakeDirectory{
		byEmail: map[string]Broker{"julien@moana-yachting.com": aliased},
		byName:  map[string]Broker{"julien": homonym},
	}

	got, ok := newTestResolver(dir).Resolve(context.Background(), "Julien")
	if !ok || got.ID != aliased.ID {
		t.Fatalf("Resolve = %v, %v; alias match must win over name match", got, ok)
	}
}

func TestResolveFallsBackToName(t *testing.T) {
	broker := testBroker("Alexandra Petit", "alexandra@moana-yachting.com")
	dir := &fakeDirectory{byName: map[string]Broker{"alexandra petit": broker}}

	got, ok := newTestResolver(dir).Resolve(context.Background(), "Alexandra Petit")
	if !ok || got.ID != broker.ID {
		t.Fatalf("Resolve = %v, %v", got, ok)
	}
	if len(dir.nameCalls) != 1 || dir.nameCalls[0] != "Alexandra Petit" {
		t.Fatalf("name lookup calls: %v", dir.nameCalls)
	}
}

func TestResolveUnknownRecipient(t *testing.T) {
	dir := &fakeDirectory{}

	if _, ok := newTestResolver(dir).Resolve(context.Background(), "Nobody Here"); ok {
		t.Fatal("expected unresolved")
	}
}

func TestResolveEmptyRecipient(t *testing.T) {
	dir := &fakeDirectory{}

	if _, ok := newTestResolver(dir).Resolve(context.Background(), "   "); ok {
		t.Fatal("expected unresolved")
	}
	if len(dir.emailCalls) != 0 || len(dir.nameCalls) != 0 {
		t.Fatalf("no lookups expected for blank recipient, got %v / %v", dir.emailCalls, dir.nameCalls)
	}
}

func TestResolveEmailLookupErrorContinuesChain(t *testing.T) {
	broker := testBroker("Julien", "julien@moana-yachting.com")
	dir := &fakeDirectory{
		emailErr: errors.New("connection refused"),
		byName:   map[string]Broker{"julien": broker},
	}

	got, ok := newTestResolver(dir).Resolve(context.Background(), "Julien")
	if !ok || got.ID != broker.ID {
		t.Fatalf("Resolve = %v, %v; lookup error must not abort the chain", got, ok)
	}
}

func TestResolveNameLookupErrorMeansUnresolved(t *testing.T) {
	dir := &fakeDirectory{nameErr: errors.New("connection refused")}

	if _, ok := newTestResolver(dir).Resolve(context.Background(), "Julien Unknown"); ok {
		t.Fatal("expected unresolved on lookup error")
	}
}
