/*
Package journey contains the core domain model for the Waymark engine.

It defines the static definition of a journey (Phases, Nodes, Outcomes) and the
per-user runtime inputs and outputs of a resolution pass (Overrides, Facts,
ViewModel). This package is kept pure and free of external dependencies like
I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Phase: An ordered grouping of nodes representing one stage of the journey.
  - Node: A single unit of required interaction within a phase.
  - Outcome: A guarded branch from a decision-style node to a successor.
  - Overrides: The authoritative, externally persisted completion record.
  - ViewModel: The immutable output tree of a resolution pass.
*/
package journey
