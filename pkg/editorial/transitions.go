package editorial

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// transitionKind says how a planned write reaches the store.
type transitionKind int

const (
	transitionUpdateInPlace transitionKind = iota
	transitionBranch
)

// transitionPlan is the outcome of planning a write intent against the
// latest row of a lineage. It is computed without touching the store so
// the state-machine table stays independently testable.
type transitionPlan struct {
	kind        transitionKind
	next        *ContentEntity
	prevVersion int  // row targeted by an in-place write
	revalidates bool // transition changes externally visible published output
}

// planUpdate decides between mutate-in-place and branch-on-edit for an
// update intent:
//
//   - a draft (or archived) latest row is mutated in place, adopting the
//     target status when one is supplied;
//   - a published latest row is immutable, so any edit branches a new
//     version seeded from a deep copy; the branch starts as a draft
//     unless the intent explicitly re-publishes;
//   - archiving a published row is the one in-place write allowed on it,
//     and it discards any field patch to keep the snapshot intact.
//
// Slug changes are honored only while the lineage has never published;
// afterwards the slug field in the patch is silently ignored.
func planUpdate(latest *ContentEntity, patch Patch, target *ContentStatus, updatedBy string, now time.Time) (*transitionPlan, error) {
	if target != nil && !target.IsValid() {
		return nil, &ValidationError{Field: "status", Reason: fmt.Sprintf("unsupported status %q", *target)}
	}

	// Archive intent on a published row: in-place status flip only.
	if latest.IsPublished() && target != nil && *target == ContentStatusArchived {
		next := latest.Clone()
		next.Status = ContentStatusArchived
		next.UpdatedAt = now
		next.UpdatedBy = updatedBy
		return &transitionPlan{
			kind:        transitionUpdateInPlace,
			next:        next,
			prevVersion: latest.Version,
			revalidates: true,
		}, nil
	}

	next := ApplyPatch(latest, patch)
	next.UpdatedAt = now
	next.UpdatedBy = updatedBy
	if patch.HasBody() {
		next.ReadTime = ComputeReadTime(next.Blocks, DefaultWordsPerMinute)
	}

	if patch.Slug.Set && !latest.EverPublished() && patch.Slug.Valid && patch.Slug.Value != "" {
		if err := ValidateSlug(patch.Slug.Value); err != nil {
			return nil, err
		}
		next.Slug = patch.Slug.Value
	}

	explicitPublish := target != nil && *target == ContentStatusPublished

	if latest.IsPublished() {
		// Branch on edit: published rows are never mutated by updates.
		next.ID = uuid.New()
		next.Slug = latest.Slug
		next.Version = latest.Version + 1
		next.Status = ContentStatusDraft
		next.CreatedAt = now
		next.CreatedBy = updatedBy
		if explicitPublish {
			next.Status = ContentStatusPublished
			t := now
			next.PublishedAt = &t
		}
		return &transitionPlan{
			kind:        transitionBranch,
			next:        next,
			prevVersion: latest.Version,
			revalidates: explicitPublish,
		}, nil
	}

	plan := &transitionPlan{
		kind:        transitionUpdateInPlace,
		next:        next,
		prevVersion: latest.Version,
	}
	if target != nil {
		next.Status = *target
		if explicitPublish {
			t := now
			next.PublishedAt = &t
			plan.revalidates = true
		}
	}
	return plan, nil
}
