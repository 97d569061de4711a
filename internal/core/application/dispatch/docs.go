// Package dispatch runs the post-commit hooks of the application.
//
// Command handlers collect the domain events of every aggregate they touched and, once
// the unit of work has committed, pass them to Hooks.Dispatch. Each hook sees every
// event in order. A failing or panicking hook is logged and counted but never affects
// the operation that raised the event, nor the hooks that run after it.
//
// # Hooks
//
//   - NotificationHook writes one notification record per recipient per event.
//   - EmailHook mails the customer about booking, driver assignment and status changes.
//   - BrokerHook publishes every event to the message broker.
package dispatch
