package notify

import "context"

// Message is a fully-formed outbound notification. The core builds it; how
// it travels is the sender's problem.
type Message struct {
	// email | whatsapp
	Channel   string
	Recipient string
	Subject   string
	Body      string
}

//go:generate mockgen -source=notifier.go -destination=mocks/notifier_mock.go -package=mocks

type Notifier interface {
	Send(ctx context.Context, msg Message) error
}
