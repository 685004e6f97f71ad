package activitylog_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cafe-pos-api/internal/application/activity"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/activitylog"
	"github.com/jhoicas/cafe-pos-api/pkg/logger"
)

func TestSink_EscribeEventoEstructurado(t *testing.T) {
	var buf bytes.Buffer
	sink := activitylog.NewSink(logger.NewWithWriter(&buf, "info"))
	ctx := activitylog.WithRequestID(context.Background(), "req-1")

	err := sink.Log(ctx, activity.Entry{
		Action:      activity.ActionSell,
		EntityType:  activity.EntityProduct,
		EntityID:    "latte",
		EntityName:  "Latte",
		Description: "Sold 2x Latte",
		Metadata:    map[string]any{"quantity": 2},
		Actor:       activity.Actor{UserID: "u-1", UserName: "Ana", Role: "admin", IP: "10.0.0.1"},
	})
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, true, line["audit"])
	assert.Equal(t, "SELL", line["action"])
	assert.Equal(t, "Sold 2x Latte", line["message"])
	assert.Equal(t, "Ana", line["user_name"])
	assert.Equal(t, "10.0.0.1", line["ip"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, map[string]any{"quantity": float64(2)}, line["metadata"])
}

func TestSink_SinActorNiMetadata(t *testing.T) {
	var buf bytes.Buffer
	sink := activitylog.NewSink(logger.NewWithWriter(&buf, "info"))
	require.NoError(t, sink.Log(context.Background(), activity.Entry{Action: activity.ActionCreate, Description: "x"}))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.NotContains(t, line, "user_id")
	assert.NotContains(t, line, "metadata")
}
