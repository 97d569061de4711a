// Package services provides domain services that do not belong to a single aggregate.
//
// The package includes:
//   - PricingEngine: the configurable price formula and its itemized breakdown
//   - DistanceCalculator: road distance between two places, resolved through a Locator
//   - Quoter: distance and price together for booking, edit and estimate flows
//   - Policy: the (role, action) authorization table
package services
