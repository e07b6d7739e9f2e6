package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildEmptyCriteria(t *testing.T) {
	where, params := Build(Criteria{})
	assert.Empty(t, where)
	assert.Empty(t, params)
}

func TestBuildStatusAndOwner(t *testing.T) {
	where, params := Build(Criteria{Status: "open", Owner: "bob"})
	assert.Equal(t, "WHERE status = ? AND LOWER(owner) LIKE LOWER(?)", where)
	assert.Equal(t, []any{"open", "%bob%"}, params)
}

func TestBuildFreeTextExpandsPerColumn(t *testing.T) {
	where, params := Build(Criteria{Q: "radar"})
	assert.Equal(t, len(freeTextColumns), len(params))
	for _, p := range params {
		assert.Equal(t, "%radar%", p)
	}
	assert.True(t, strings.HasPrefix(where, "WHERE ("))
	assert.Equal(t, len(freeTextColumns), strings.Count(where, "LIKE LOWER(?)"))
	assert.Contains(t, where, "LOWER(supplier) LIKE LOWER(?)")
	assert.Contains(t, where, "LOWER(deal_contacts) LIKE LOWER(?)")
}

func TestBuildIgnoresWhitespaceOnlyText(t *testing.T) {
	where, params := Build(Criteria{Q: "   ", Owner: "\t"})
	assert.Empty(t, where)
	assert.Empty(t, params)
}

func TestBuildIgnoresUnknownEnumValues(t *testing.T) {
	where, params := Build(Criteria{Stage: "teleportation", Status: "OPEN", DealType: "barter"})
	assert.Empty(t, where)
	assert.Empty(t, params)
}

// Parameter order must track predicate order exactly, since adapters bind
// positionally.
func TestBuildParameterOrdering(t *testing.T) {
	where, params := Build(Criteria{
		Q:        "ammo",
		Stage:    "quoted",
		Status:   "open",
		DealType: "customer_need",
		Owner:    "alice",
	})
	assert.Equal(t, len(freeTextColumns)+4, len(params))
	assert.Equal(t, "quoted", params[len(freeTextColumns)])
	assert.Equal(t, "open", params[len(freeTextColumns)+1])
	assert.Equal(t, "customer_need", params[len(freeTextColumns)+2])
	assert.Equal(t, "%alice%", params[len(freeTextColumns)+3])

	idxStage := strings.Index(where, "stage = ?")
	idxStatus := strings.Index(where, "status = ?")
	idxType := strings.Index(where, "deal_type = ?")
	idxOwner := strings.Index(where, "LOWER(owner)")
	assert.True(t, idxStage < idxStatus && idxStatus < idxType && idxType < idxOwner)
}
