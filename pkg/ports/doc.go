/*
Package ports defines the driven ports (interfaces) of the Passage service.

These interfaces decouple the requirements engine from the concrete policy source
and the report cache, so the same service runs with the embedded policy table and
an in-memory cache in tests, or with an override file and Redis in production.

# Key Interfaces

  - PolicyResolver: Resolves visa facts for a directional country pair.
  - ReportCache: Stores derived reports keyed by the normalized trip.
*/
package ports
