package purge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/beesaferoot/gorm-purge/purge"
)

func TestPredicate(t *testing.T) {
	tests := []struct {
		name  string
		pred  purge.Predicate
		str   string
		empty bool
	}{
		{
			name: "equality",
			pred: purge.Eq("owner_id", "u1"),
			str:  "owner_id = u1",
		},
		{
			name: "disjunction",
			pred: purge.Or(purge.Eq("sender_id", "u1"), purge.Eq("recipient_id", "u1")),
			str:  "sender_id = u1 OR recipient_id = u1",
		},
		{
			name: "membership",
			pred: purge.In("tenant_id", []string{"t1", "t2", "t3"}),
			str:  "tenant_id IN (3 ids)",
		},
		{
			name:  "empty membership",
			pred:  purge.In("tenant_id", nil),
			str:   "tenant_id IN (0 ids)",
			empty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.str, tt.pred.String())
			assert.Equal(t, tt.empty, tt.pred.Empty())
		})
	}
}

func TestIn_CopiesValues(t *testing.T) {
	ids := []string{"a", "b"}
	pred := purge.In("id", ids)
	ids[0] = "z"

	assert.Equal(t, []string{"a", "b"}, pred.Clauses[0].Values)
}

func TestPredicate_Batches(t *testing.T) {
	pred := purge.Or(
		purge.In("tenant_id", []string{"t1", "t2", "t3"}),
		purge.Eq("landlord_id", "u1"),
	)

	tests := []struct {
		name string
		size int
		want []purge.Predicate
	}{
		{name: "fits", size: 4, want: []purge.Predicate{pred}},
		{name: "unbounded", size: 0, want: []purge.Predicate{pred}},
		{
			name: "split across clauses",
			size: 2,
			want: []purge.Predicate{
				purge.In("tenant_id", []string{"t1", "t2"}),
				purge.Or(purge.Eq("tenant_id", "t3"), purge.Eq("landlord_id", "u1")),
			},
		},
		{
			name: "one value each",
			size: 1,
			want: []purge.Predicate{
				purge.Eq("tenant_id", "t1"),
				purge.Eq("tenant_id", "t2"),
				purge.Eq("tenant_id", "t3"),
				purge.Eq("landlord_id", "u1"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pred.Batches(tt.size))
		})
	}
}
