// Package delivery contains the Delivery aggregate and its status state machine.
//
// The aggregate enforces who may move a delivery where: customers edit and cancel
// before pickup, admins assign drivers and may set any status, assigned drivers
// drive the last mile. Pricing is not computed here; the booking and edit flows get
// quotes from the services package and store them with NewDelivery and Reprice.
package delivery
