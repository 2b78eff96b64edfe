/*
Package domain contains the core value types of the Passage requirements engine.

It defines the trip being planned, the visa facts known for a pair of countries,
and the report returned to callers. The package is kept pure and free of I/O,
so every transport (MCP, HTTP, CLI) shares exactly the same shapes.

# Key Entities

  - TripRequest: A normalized trip (origin, destination, duration, purpose).
  - VisaPolicy: Visa facts for a directional (origin, destination) pair.
  - DocumentRequirement: One line item of the report, required or optional.
  - RequirementReport: The full answer, partitioned and summarized.
  - Result: Either a report or an ErrorResult, never both.

JSON field names on these types are the compatibility surface consumed by agents
and UIs. Do not rename them.
*/
package domain
