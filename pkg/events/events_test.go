package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeletedCarriesOnlyTheID(t *testing.T) {
	b, err := json.Marshal(Deleted(ProjectDeleted, 12))
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"project:deleted","payload":{"id":12}}`, string(b))
}

func TestNewWrapsPayloadUnderEventName(t *testing.T) {
	b, err := json.Marshal(New(TaskUpdated, map[string]int{"id": 4}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"task:updated","payload":{"id":4}}`, string(b))
}
