// Package models defines the core domain models for donordesk.
//
// # Ledger records
//
// The ledger store owns these and persists them as JSON collections:
//   - Transaction: a donation credit (or a refund, which keeps a positive amount)
//   - Debit: an expense against a project
//   - Project: a fundraising target with before/after media
//   - EmergencyCampaign: an urgent appeal bound to its own project
//   - StaffMember: a dashboard user with per-section permissions
//
// # Derived values
//
// These are recomputed from the ledger on every read and never stored:
//   - DonorRollup: per-donor totals and engagement score
//   - TrendPoint: one bucket of a donation trend chart
//   - TopDonor: one entry of the day's leaderboard
//   - FraudVerdict: outcome of a generative fraud assessment
//
// # Conventions
//
// 1. Money is decimal.Decimal; float64 only appears inside scoring math
// 2. Dates are calendar days (Date), never instants
// 3. Relationships use ID strings, not pointers
// 4. Project.Raised is always derived from the ledger
package models
