// Package treasuryservice keeps the community treasury ledger: income and
// expense movements plus the running balance summary.
package treasuryservice
