// Package notify holds the outbound collaborators: SMS/chat message
// senders and the Home Assistant script invoker driving the LED
// indicator. All of them share the same fire-and-forget contract: a
// failed delivery is logged and reported as false, never raised, and
// nothing retries — a lost message stays lost so a flaky carrier cannot
// turn into a delivery storm.
package notify

import "log"

// MessageSender delivers one message to one recipient address.
type MessageSender interface {
	Send(recipient, body string) bool
}

// SignalInvoker fires a named automation signal (an LED scene script).
type SignalInvoker interface {
	Invoke(signal string) bool
}

// NopSender is used when no message credentials are configured. It logs
// and drops, matching the degraded mode of the rest of the package.
type NopSender struct{}

func (NopSender) Send(recipient, body string) bool {
	log.Printf("[warn] no message notifier configured, dropping message to %s", recipient)
	return false
}

// NopInvoker is used when Home Assistant is not configured.
type NopInvoker struct{}

func (NopInvoker) Invoke(signal string) bool {
	log.Printf("[warn] no signal notifier configured, skipping %s", signal)
	return false
}
