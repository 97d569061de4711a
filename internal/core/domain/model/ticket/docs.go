// Package ticket models support tickets: the status state machine, agent assignment
// rules, agent-only internal notes and one-shot customer feedback.
package ticket
