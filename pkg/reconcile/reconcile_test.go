package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type item struct {
	ID   int
	Name string
}

func itemID(it item) int { return it.ID }

func TestCreatedPrependsWhenAbsent(t *testing.T) {
	list := []item{{ID: 1, Name: "a"}}
	list = Created(list, item{ID: 2, Name: "b"}, itemID)
	assert.Equal(t, []item{{ID: 2, Name: "b"}, {ID: 1, Name: "a"}}, list)
}

func TestCreatedIsIdempotent(t *testing.T) {
	list := []item{{ID: 1, Name: "a"}}
	list = Created(list, item{ID: 2, Name: "b"}, itemID)
	again := Created(list, item{ID: 2, Name: "b"}, itemID)
	assert.Equal(t, list, again)
}

// The HTTP response to the originating request may already have inserted the
// row before the relayed event arrives; the second application must change
// nothing.
func TestCreatedAfterHTTPResponseAlreadyApplied(t *testing.T) {
	list := []item{{ID: 3, Name: "from-http-response"}}
	list = Created(list, item{ID: 3, Name: "from-http-response"}, itemID)
	assert.Equal(t, []item{{ID: 3, Name: "from-http-response"}}, list)
}

func TestUpdatedReplacesWhenPresent(t *testing.T) {
	list := []item{{ID: 1, Name: "old"}, {ID: 2, Name: "keep"}}
	list = Updated(list, item{ID: 1, Name: "new"}, itemID)
	assert.Equal(t, []item{{ID: 1, Name: "new"}, {ID: 2, Name: "keep"}}, list)
}

func TestUpdatedAbsentIsNoop(t *testing.T) {
	list := []item{{ID: 1, Name: "a"}}
	list = Updated(list, item{ID: 99, Name: "ghost"}, itemID)
	assert.Equal(t, []item{{ID: 1, Name: "a"}}, list)
}

func TestDeletedRemovesWhenPresent(t *testing.T) {
	list := []item{{ID: 1}, {ID: 2}, {ID: 3}}
	list = Deleted(list, 2, itemID)
	assert.Equal(t, []item{{ID: 1}, {ID: 3}}, list)
}

func TestDeletedAbsentIsNoop(t *testing.T) {
	list := []item{{ID: 1}}
	list = Deleted(list, 42, itemID)
	assert.Equal(t, []item{{ID: 1}}, list)
	list = Deleted(list, 1, itemID)
	list = Deleted(list, 1, itemID)
	assert.Empty(t, list)
}
