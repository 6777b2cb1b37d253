package gateway

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRequest builds the request frame a front end would send.
func newRequest(id, method string, params any) (Frame, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return Frame{}, err
	}
	return Frame{
		Type:   FrameTypeRequest,
		ID:     id,
		Method: method,
		Params: raw,
	}, nil
}

func TestNewRequestFrame(t *testing.T) {
	frame, err := newRequest("req-2", "agent.execute", map[string]int{"position": 3})
	require.NoError(t, err)

	assert.Equal(t, FrameTypeRequest, frame.Type)
	assert.Equal(t, "req-2", frame.ID)
	assert.Equal(t, "agent.execute", frame.Method)

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(frame.Params, &decoded))
	assert.Equal(t, 3, decoded["position"])
}

func TestNewResponse(t *testing.T) {
	frame, err := NewResponse("req-1", map[string]string{"view": "review"})
	require.NoError(t, err)

	assert.Equal(t, FrameTypeResponse, frame.Type)
	require.NotNil(t, frame.OK)
	assert.True(t, *frame.OK)
	assert.Nil(t, frame.Error)
	assert.JSONEq(t, `{"view":"review"}`, string(frame.Payload))
}

func TestNewErrorResponse(t *testing.T) {
	frame := NewErrorResponse("req-1", ErrorShape{
		Code:       CodeBusy,
		Message:    "another operation is in progress",
		Retryable:  true,
		RetryAfter: 2000,
	})

	require.NotNil(t, frame.OK)
	assert.False(t, *frame.OK)
	require.NotNil(t, frame.Error)
	assert.Equal(t, CodeBusy, frame.Error.Code)
	assert.True(t, frame.Error.Retryable)

	data, err := json.Marshal(frame)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"ok":false`)
	assert.Contains(t, string(data), `"retryAfterMs":2000`)
}

func TestNewEvent(t *testing.T) {
	frame, err := NewEvent("stage.completed", map[string]any{"position": 1}, 42)
	require.NoError(t, err)

	assert.Equal(t, FrameTypeEvent, frame.Type)
	assert.Equal(t, "stage.completed", frame.Event)
	assert.Equal(t, int64(42), frame.Seq)
	assert.JSONEq(t, `{"position":1}`, string(frame.Payload))

	frame, err = NewEvent("connect.challenge", nil, 0)
	require.NoError(t, err)
	data, err := json.Marshal(frame)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"seq"`)
}

func TestErrorShape_OmitsEmpty(t *testing.T) {
	data, err := json.Marshal(ErrorShape{Code: CodeInvalidParams, Message: "missing position"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "details")
	assert.NotContains(t, string(data), "retryable")
	assert.NotContains(t, string(data), "retryAfterMs")
}
