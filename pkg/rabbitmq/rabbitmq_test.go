package rabbitmq

import (
	"errors"
	"testing"

	"vitrine/internal/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestClient_Dispatch(t *testing.T) {
	c := &Client{instance: "node-a", logger: zap.NewNop()}
	var got []models.ChangeEvent
	handler := func(e models.ChangeEvent) error {
		got = append(got, e)
		return nil
	}

	assert.NoError(t, c.dispatch([]byte(`{"entity":"product","action":"created","id":"p-1","origin":"node-b"}`), handler))
	assert.NoError(t, c.dispatch([]byte(`{"entity":"tab","action":"deleted","id":"x","origin":"node-a"}`), handler))
	assert.Error(t, c.dispatch([]byte(`{not json`), handler))

	if assert.Len(t, got, 1) {
		assert.Equal(t, "product", got[0].Entity)
		assert.Equal(t, "p-1", got[0].ID)
	}

	failing := func(models.ChangeEvent) error { return errors.New("reload failed") }
	assert.Error(t, c.dispatch([]byte(`{"entity":"theme","origin":"node-b"}`), failing))
}

func TestClient_NoChannel(t *testing.T) {
	c := &Client{logger: zap.NewNop()}
	assert.Error(t, c.PublishChange(models.ChangeEvent{Entity: "product"}))
	assert.Error(t, c.ConsumeChanges(func(models.ChangeEvent) error { return nil }))
}
