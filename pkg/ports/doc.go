/*
Package ports defines the boundary interfaces between the Waymark engine and
its external collaborators: the definition source, the per-user progress
(override) store and the active-conditions source.

The engine core never touches these directly; the top-level Portal facade and
the adapters in pkg/adapters wire them together. RunProgressStoreContract
provides a reusable conformance suite for store implementations.
*/
package ports
