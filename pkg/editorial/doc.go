// Package editorial provides the content versioning and publish state
// machine for an editorial content store: named entities (pages, blog
// posts, product descriptions) move between an editable draft state and
// immutable published snapshots while their full edit history is kept.
//
// It exposes a single Service interface that orchestrates creation,
// partial updates, publishing, unpublishing, archiving and lineage
// deletion, backed by a pluggable Repository (memory and Postgres
// implementations are provided under subpackages) and an optional
// RevalidationNotifier fired after transitions that change externally
// visible published output.
//
// # Versioning model
//
// A lineage is the ordered set of rows sharing one slug. Draft rows are
// mutated in place; editing a published row branches a new draft version
// instead (version numbers are contiguous per lineage, starting at 1).
// Once any version of a lineage has been published its slug is frozen.
// Derived fields such as the reading-time estimate are recomputed from
// the body on every write that carries one, so they can never go stale.
package editorial
