// Package user holds the account aggregate shared by every actor: customers, admins,
// drivers and support agents. Roles are resolved here; what each role may do is decided
// by the authorization policy in the services package.
package user
