// Package emergencyservice raises and resolves community emergency alerts.
// Raising an alert records an outbox event for downstream notification
// fan-out; delivery itself lives outside this module.
package emergencyservice
