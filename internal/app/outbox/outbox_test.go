package outbox_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coursework_tracker/internal/app/outbox"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutbox_EnqueueNeverBlocks(t *testing.T) {
	box := outbox.New(1)

	assert.True(t, box.Enqueue(outbox.RunRequest{SubmissionID: 1}))

	done := make(chan bool, 1)
	go func() { done <- box.Enqueue(outbox.RunRequest{SubmissionID: 2}) }()
	select {
	case ok := <-done:
		assert.False(t, ok, "second request is dropped when the queue is full")
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full outbox")
	}
	assert.Equal(t, 1, box.Len())
	assert.Equal(t, 1, (<-box.Pending()).SubmissionID)
}

func TestHTTPDispatcher_PostsDescriptor(t *testing.T) {
	var got outbox.RunRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	d := outbox.NewHTTPDispatcher(srv.URL, time.Second)
	err := d.Dispatch(context.Background(), outbox.RunRequest{SubmissionID: 7, AssignmentID: 2, Filename: "1-abc-sol.zip"})

	require.NoError(t, err)
	assert.Equal(t, outbox.RunRequest{SubmissionID: 7, AssignmentID: 2, Filename: "1-abc-sol.zip"}, got)
}

func TestHTTPDispatcher_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "file not found", http.StatusNotFound)
	}))
	defer srv.Close()

	err := outbox.NewHTTPDispatcher(srv.URL, time.Second).Dispatch(context.Background(), outbox.RunRequest{SubmissionID: 1})

	assert.ErrorContains(t, err, "404")
}

type recordingPublisher struct {
	key string
	msg amqp.Publishing
}

func (p *recordingPublisher) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	p.key, p.msg = key, msg
	return nil
}

func TestAMQPDispatcher_Publishes(t *testing.T) {
	pub := &recordingPublisher{}

	err := outbox.NewAMQPDispatcher(pub, "runner_jobs").Dispatch(context.Background(), outbox.RunRequest{SubmissionID: 3, AssignmentID: 1, Filename: "f.zip"})

	require.NoError(t, err)
	assert.Equal(t, "runner_jobs", pub.key)
	assert.Equal(t, "3", pub.msg.CorrelationId)
	assert.Equal(t, amqp.Persistent, pub.msg.DeliveryMode)
	assert.JSONEq(t, `{"submissionId":3,"assignmentId":1,"filename":"f.zip"}`, string(pub.msg.Body))
}
