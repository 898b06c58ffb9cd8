// Package notify provides login notification backends implementing
// [authgate.Notifier]: SMTP delivery and a structured-log fallback.
//
// Delivery is best-effort. The engine dispatches notices asynchronously and
// discards delivery errors; nothing in this package may influence an
// authentication decision.
package notify
