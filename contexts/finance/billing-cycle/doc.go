// Package billingcycle implements the shared-expense billing cycle inside the
// finance context.
//
// The module owns monthly expense periods, the one-charge-per-parcela fan-out
// at period creation, cumulative payment application with a cap at the amount
// due, and the derived charge/period aggregations. Overdue is never persisted;
// it is derived from the due date at read time.
package billingcycle
