package purge_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/beesaferoot/gorm-purge/purge"
)

// row maps column names to values. A missing column is NULL.
type row map[string]string

type op struct {
	kind       string
	collection string
	predicate  string
}

// memStore is an in-memory purge.Store that records every call.
type memStore struct {
	mu    sync.Mutex
	rows  map[string][]row
	trace []op

	failSelect func(collection string, pred purge.Predicate) error
	failDelete func(collection string, pred purge.Predicate) error
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[string][]row)}
}

func (s *memStore) insert(collection string, r row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[collection] = append(s.rows[collection], r)
}

func (s *memStore) count(collection string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows[collection])
}

func (s *memStore) deletes() []op {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []op
	for _, o := range s.trace {
		if o.kind == "delete" {
			out = append(out, o)
		}
	}
	return out
}

func matches(r row, pred purge.Predicate) bool {
	for _, c := range pred.Clauses {
		v, ok := r[c.Column]
		if !ok {
			continue
		}
		for _, want := range c.Values {
			if v == want {
				return true
			}
		}
	}
	return false
}

func (s *memStore) SelectIDs(_ context.Context, collection string, pred purge.Predicate) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace = append(s.trace, op{kind: "select", collection: collection, predicate: pred.String()})
	if s.failSelect != nil {
		if err := s.failSelect(collection, pred); err != nil {
			return nil, err
		}
	}

	var ids []string
	for _, r := range s.rows[collection] {
		if matches(r, pred) {
			ids = append(ids, r["id"])
		}
	}
	return ids, nil
}

func (s *memStore) CountWhere(_ context.Context, collection string, pred purge.Predicate) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace = append(s.trace, op{kind: "count", collection: collection, predicate: pred.String()})

	var n int64
	for _, r := range s.rows[collection] {
		if matches(r, pred) {
			n++
		}
	}
	return n, nil
}

func (s *memStore) DeleteWhere(_ context.Context, collection string, pred purge.Predicate) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace = append(s.trace, op{kind: "delete", collection: collection, predicate: pred.String()})
	if s.failDelete != nil {
		if err := s.failDelete(collection, pred); err != nil {
			return 0, err
		}
	}

	kept := s.rows[collection][:0]
	var n int64
	for _, r := range s.rows[collection] {
		if matches(r, pred) {
			n++
			continue
		}
		kept = append(kept, r)
	}
	s.rows[collection] = kept
	return n, nil
}

// references reports every row in any collection holding one of ids.
func (s *memStore) references(ids ...string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var found []string
	for collection, rows := range s.rows {
		for _, r := range rows {
			for column, v := range r {
				for _, id := range ids {
					if v == id {
						found = append(found, fmt.Sprintf("%s.%s=%s", collection, column, id))
					}
				}
			}
		}
	}
	return found
}

// fakeIdentity is an in-memory identity provider.
type fakeIdentity struct {
	mu       sync.Mutex
	accounts map[string]bool
	calls    []string
	err      error
}

func newFakeIdentity(ids ...string) *fakeIdentity {
	f := &fakeIdentity{accounts: make(map[string]bool)}
	for _, id := range ids {
		f.accounts[id] = true
	}
	return f
}

func (f *fakeIdentity) RevokeIdentity(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, userID)
	if f.err != nil {
		return f.err
	}
	delete(f.accounts, userID)
	return nil
}

func (f *fakeIdentity) exists(userID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accounts[userID]
}

var errStoreDown = errors.New("store unavailable")

const (
	userU    = "0b6c7a52-3f1e-4c8e-9a51-6c1d2b7e9f01"
	otherV   = "5d2e8f10-7a4b-4e6c-8d9f-1a2b3c4d5e6f"
	contactX = "9f8e7d6c-5b4a-4392-8170-6f5e4d3c2b1a"
)

// seedScenario builds the reference graph: U owns P1 and P2, T1 lives on P1,
// T2 on P2, T3 is U's tenant without a property. V owns unrelated data.
func seedScenario(s *memStore) {
	s.insert("profiles", row{"id": userU})
	s.insert("profiles", row{"id": otherV})
	s.insert("profiles", row{"id": contactX})

	s.insert("properties", row{"id": "P1", "owner_id": userU})
	s.insert("properties", row{"id": "P2", "owner_id": userU})
	s.insert("properties", row{"id": "PV", "owner_id": otherV})

	s.insert("tenants", row{"id": "T1", "landlord_id": userU, "property_id": "P1"})
	s.insert("tenants", row{"id": "T2", "landlord_id": userU, "property_id": "P2"})
	s.insert("tenants", row{"id": "T3", "landlord_id": userU})
	s.insert("tenants", row{"id": "TV", "landlord_id": otherV, "property_id": "PV"})

	s.insert("messages", row{"id": "M1", "sender_id": userU, "recipient_id": contactX})
	s.insert("messages", row{"id": "M2", "sender_id": contactX, "recipient_id": userU})
	s.insert("messages", row{"id": "MV", "sender_id": otherV, "recipient_id": contactX})

	s.insert("payments", row{"id": "PAY1", "tenant_id": "T1", "landlord_id": userU})
	s.insert("payments", row{"id": "PAY2", "landlord_id": userU})
	s.insert("payments", row{"id": "PAYV", "tenant_id": "TV", "landlord_id": otherV})

	s.insert("maintenance_requests", row{"id": "MR1", "property_id": "P2", "tenant_id": "T2"})
	s.insert("maintenance_requests", row{"id": "MRV", "property_id": "PV", "tenant_id": "TV"})

	s.insert("reminders", row{"id": "RV", "sender_id": otherV, "recipient_id": contactX, "tenant_id": "TV"})
}
