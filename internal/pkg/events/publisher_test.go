package events

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models"
)

func TestNotificationSubject(t *testing.T) {
	assert.Equal(t, "notifications.42", NotificationSubject(42))
}

func TestNoopPublisher(t *testing.T) {
	assert.NoError(t, NoopPublisher{}.PublishNotification(&models.Notification{UserID: 1}))
}

func TestNATSPublisher_PublishNotification(t *testing.T) {
	url := os.Getenv("TEST_NATS_URL")
	if url == "" {
		t.Skip("TEST_NATS_URL not set")
	}

	pub, err := NewNATSPublisher(Config{URL: url, Name: "zevabayan-test"}, zerolog.Nop())
	require.NoError(t, err)
	defer pub.Close()

	received := make(chan []byte, 1)
	sub, err := pub.Subscribe(SubjectNotifications+".*", func(data []byte) { received <- data })
	require.NoError(t, err)
	defer sub.Unsubscribe()
	require.NoError(t, pub.conn.Flush())

	require.NoError(t, pub.PublishNotification(&models.Notification{ID: 1, UserID: 9, Message: "hi"}))

	select {
	case data := <-received:
		var ev NotificationEvent
		require.NoError(t, json.Unmarshal(data, &ev))
		assert.Equal(t, int64(9), ev.UserID)
		assert.Equal(t, "hi", ev.Message)
	case <-time.After(2 * time.Second):
		t.Fatal("notification event not received")
	}
}
