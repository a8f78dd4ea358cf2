package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"relay_bot/internal/config"
)

func TestNewRejectsEmptyToken(t *testing.T) {
	app, err := New(&config.Config{AdminID: 1, Channels: []string{"@a"}})
	assert.Error(t, err)
	assert.Nil(t, app)
}

func TestRunWithoutBot(t *testing.T) {
	app := &App{}
	assert.Error(t, app.Run(context.Background()))
	assert.NoError(t, app.Close(context.Background()))
}
