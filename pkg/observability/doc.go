/*
Package observability provides hooks and metrics for monitoring the Passage service.

Hooks fire once per boundary call (derived report or rejected request). Metrics is a
ready-made set of Prometheus collectors that can be attached through its Hooks method,
mirroring how hosts wire their own logging or tracing into the same callbacks.
*/
package observability
