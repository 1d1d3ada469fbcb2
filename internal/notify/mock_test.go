package notify_test

import (
	"context"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/WorkshopServices01/workshop-api/internal/notify"
	"github.com/WorkshopServices01/workshop-api/internal/notify/mocks"
)

func TestDispatcherDeliversToSender(t *testing.T) {
	ctrl := gomock.NewController(t)

	msg := notify.Message{
		Channel:   "email",
		Recipient: "alice@example.com",
		Subject:   "estimate ready",
		Body:      "please review",
	}

	delivered := make(chan struct{})

	sender := mocks.NewMockNotifier(ctrl)
	sender.EXPECT().
		Send(gomock.Any(), msg).
		DoAndReturn(func(context.Context, notify.Message) error {
			close(delivered)
			return nil
		})

	d := notify.NewDispatcher(map[string]notify.Notifier{"email": sender})
	defer d.Close()

	d.Dispatch(msg)

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("message was never delivered to the sender")
	}
}
