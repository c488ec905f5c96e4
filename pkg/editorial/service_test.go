package editorial_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftpress/editorial/pkg/editorial"
	"github.com/draftpress/editorial/pkg/editorial/repo/memory"
)

type notifyCall struct {
	Slug   string
	Author string
}

// recordingNotifier captures async revalidation dispatches for assertions
type recordingNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
	err   error
}

func (n *recordingNotifier) Notify(ctx context.Context, slug string, authorID string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notifyCall{Slug: slug, Author: authorID})
	return n.err
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

func (n *recordingNotifier) last() notifyCall {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls[len(n.calls)-1]
}

var fixedNow = time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)

func setupServiceTest(t *testing.T) (editorial.Service, *recordingNotifier) {
	notifier := &recordingNotifier{}
	svc, err := editorial.New(
		editorial.WithRepository(memory.New()),
		editorial.WithNotifier(notifier),
		editorial.WithClock(func() time.Time { return fixedNow }),
	)
	require.NoError(t, err)
	return svc, notifier
}

func createBlog(t *testing.T, svc editorial.Service, title string) *editorial.ContentEntity {
	t.Helper()
	entity, err := svc.CreateContent(context.Background(), editorial.CreateContentRequest{
		Type:  editorial.ContentTypeBlog,
		Title: title,
		Blocks: []editorial.Block{
			{Kind: editorial.BlockKindText, Text: "some words to read"},
		},
		Tags:      []string{"test"},
		CreatedBy: "author-1",
	})
	require.NoError(t, err)
	return entity
}

func waitForNotify(t *testing.T, n *recordingNotifier, count int) {
	t.Helper()
	require.Eventually(t, func() bool { return n.count() >= count },
		2*time.Second, 10*time.Millisecond)
}

func TestService_CreateContent(t *testing.T) {
	svc, notifier := setupServiceTest(t)
	ctx := context.Background()

	t.Run("starts a lineage at version 1 draft", func(t *testing.T) {
		entity := createBlog(t, svc, "My First Post")

		assert.Equal(t, "my-first-post", entity.Slug)
		assert.Equal(t, 1, entity.Version)
		assert.Equal(t, editorial.ContentStatusDraft, entity.Status)
		assert.Equal(t, 1, entity.ReadTime)
		assert.Equal(t, fixedNow, entity.CreatedAt)
		assert.Nil(t, entity.PublishedAt)
		assert.Equal(t, "author-1", entity.CreatedBy)
		assert.Zero(t, notifier.count())
	})

	t.Run("rejects invalid type and missing title", func(t *testing.T) {
		var verr *editorial.ValidationError

		_, err := svc.CreateContent(ctx, editorial.CreateContentRequest{Type: "video", Title: "x"})
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "type", verr.Field)

		_, err = svc.CreateContent(ctx, editorial.CreateContentRequest{Type: editorial.ContentTypePage})
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "title", verr.Field)
	})

	t.Run("rejects malformed explicit slug", func(t *testing.T) {
		_, err := svc.CreateContent(ctx, editorial.CreateContentRequest{
			Type:  editorial.ContentTypePage,
			Title: "Fine Title",
			Slug:  "Not A Slug",
		})
		var verr *editorial.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "slug", verr.Field)
	})

	t.Run("conflicts on duplicate slug", func(t *testing.T) {
		createBlog(t, svc, "Duplicate Me")
		_, err := svc.CreateContent(ctx, editorial.CreateContentRequest{
			Type:  editorial.ContentTypeBlog,
			Title: "Duplicate Me",
		})
		assert.ErrorIs(t, err, editorial.ErrConflict)
	})

	t.Run("ignores type-mismatched fields", func(t *testing.T) {
		entity, err := svc.CreateContent(ctx, editorial.CreateContentRequest{
			Type:    editorial.ContentTypePage,
			Title:   "Plain Page",
			SKU:     "SKU-9",
			Excerpt: "nope",
			Tags:    []string{"nope"},
		})
		require.NoError(t, err)
		assert.Empty(t, entity.SKU)
		assert.Empty(t, entity.Excerpt)
		assert.Empty(t, entity.Tags)
	})
}

func TestService_UpdateContent_DraftStaysInPlace(t *testing.T) {
	svc, notifier := setupServiceTest(t)
	ctx := context.Background()
	createBlog(t, svc, "Draft Post")

	var result *editorial.TransitionResult
	var err error
	for _, title := range []string{"Renamed", "Renamed Again", "Renamed Once More"} {
		result, err = svc.UpdateContent(ctx, editorial.UpdateContentRequest{
			Slug:      "draft-post",
			Patch:     editorial.Patch{Title: editorial.NewField(title)},
			UpdatedBy: "author-2",
		})
		require.NoError(t, err)
		require.Equal(t, 1, result.Content.Version)
	}

	assert.Equal(t, "Renamed Once More", result.Content.Title)
	assert.Equal(t, editorial.ContentStatusDraft, result.Content.Status)
	assert.Equal(t, "author-2", result.Content.UpdatedBy)
	assert.False(t, result.Revalidated)
	assert.Zero(t, notifier.count())

	versions, err := svc.ListVersions(ctx, "draft-post")
	require.NoError(t, err)
	assert.Len(t, versions, 1)
}

func TestService_PublishContent(t *testing.T) {
	svc, notifier := setupServiceTest(t)
	ctx := context.Background()
	createBlog(t, svc, "Ship It")

	result, err := svc.PublishContent(ctx, "ship-it", "author-1")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Content.Version)
	assert.Equal(t, editorial.ContentStatusPublished, result.Content.Status)
	require.NotNil(t, result.Content.PublishedAt)
	assert.Equal(t, fixedNow, *result.Content.PublishedAt)
	assert.True(t, result.Revalidated)

	waitForNotify(t, notifier, 1)
	assert.Equal(t, notifyCall{Slug: "ship-it", Author: "author-1"}, notifier.last())

	_, err = svc.PublishContent(ctx, "missing", "author-1")
	assert.ErrorIs(t, err, editorial.ErrNotFound)
}

func TestService_UpdateContent_BranchesOnPublished(t *testing.T) {
	svc, notifier := setupServiceTest(t)
	ctx := context.Background()
	created := createBlog(t, svc, "Stable Post")

	_, err := svc.PublishContent(ctx, "stable-post", "author-1")
	require.NoError(t, err)

	result, err := svc.UpdateContent(ctx, editorial.UpdateContentRequest{
		Slug:      "stable-post",
		Patch:     editorial.Patch{Title: editorial.NewField("Edited Title")},
		UpdatedBy: "author-2",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Content.Version)
	assert.Equal(t, editorial.ContentStatusDraft, result.Content.Status)
	assert.Equal(t, "Edited Title", result.Content.Title)
	assert.NotEqual(t, created.ID, result.Content.ID)
	assert.Equal(t, "author-2", result.Content.CreatedBy)
	// PublishedAt is carried onto the branch: it is the latch that keeps
	// the slug frozen even while the latest row is a draft.
	require.NotNil(t, result.Content.PublishedAt)
	assert.Equal(t, fixedNow, *result.Content.PublishedAt)
	assert.False(t, result.Revalidated)

	// The published snapshot is untouched.
	v1, err := svc.GetContentVersion(ctx, "stable-post", 1)
	require.NoError(t, err)
	assert.Equal(t, "Stable Post", v1.Title)
	assert.Equal(t, editorial.ContentStatusPublished, v1.Status)

	waitForNotify(t, notifier, 1) // only the publish fired
	assert.Equal(t, 1, notifier.count())
}

func TestService_UpdateContent_BranchAndRepublish(t *testing.T) {
	svc, notifier := setupServiceTest(t)
	ctx := context.Background()
	createBlog(t, svc, "Live Post")

	_, err := svc.PublishContent(ctx, "live-post", "author-1")
	require.NoError(t, err)

	target := editorial.ContentStatusPublished
	result, err := svc.UpdateContent(ctx, editorial.UpdateContentRequest{
		Slug:         "live-post",
		Patch:        editorial.Patch{Title: editorial.NewField("Hotfix")},
		TargetStatus: &target,
		UpdatedBy:    "author-1",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Content.Version)
	assert.Equal(t, editorial.ContentStatusPublished, result.Content.Status)
	require.NotNil(t, result.Content.PublishedAt)
	assert.True(t, result.Revalidated)
	waitForNotify(t, notifier, 2)
}

func TestService_UpdateContent_RecomputesReadTime(t *testing.T) {
	svc, _ := setupServiceTest(t)
	ctx := context.Background()
	createBlog(t, svc, "Long Read")

	longText := ""
	for i := 0; i < 450; i++ {
		longText += "word "
	}
	result, err := svc.UpdateContent(ctx, editorial.UpdateContentRequest{
		Slug: "long-read",
		Patch: editorial.Patch{
			Blocks: editorial.NewField([]editorial.Block{
				{Kind: editorial.BlockKindText, Text: longText},
			}),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Content.ReadTime)

	// Non-body patches keep the stored value.
	result, err = svc.UpdateContent(ctx, editorial.UpdateContentRequest{
		Slug:  "long-read",
		Patch: editorial.Patch{Title: editorial.NewField("Still Long")},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Content.ReadTime)
}

func TestService_SlugChange(t *testing.T) {
	svc, _ := setupServiceTest(t)
	ctx := context.Background()

	t.Run("allowed before first publish", func(t *testing.T) {
		createBlog(t, svc, "Working Title")

		result, err := svc.UpdateContent(ctx, editorial.UpdateContentRequest{
			Slug:  "working-title",
			Patch: editorial.Patch{Slug: editorial.NewField("final-title")},
		})
		require.NoError(t, err)
		assert.Equal(t, "final-title", result.Content.Slug)

		_, err = svc.GetContent(ctx, "working-title")
		assert.ErrorIs(t, err, editorial.ErrNotFound)

		got, err := svc.GetContent(ctx, "final-title")
		require.NoError(t, err)
		assert.Equal(t, "Working Title", got.Title)
	})

	t.Run("conflicts with an existing lineage", func(t *testing.T) {
		createBlog(t, svc, "Other Post")

		_, err := svc.UpdateContent(ctx, editorial.UpdateContentRequest{
			Slug:  "final-title",
			Patch: editorial.Patch{Slug: editorial.NewField("other-post")},
		})
		assert.ErrorIs(t, err, editorial.ErrConflict)
	})

	t.Run("frozen after first publish", func(t *testing.T) {
		createBlog(t, svc, "Frozen Post")
		_, err := svc.PublishContent(ctx, "frozen-post", "author-1")
		require.NoError(t, err)
		_, err = svc.UnpublishContent(ctx, "frozen-post", "author-1")
		require.NoError(t, err)

		// Latest is a draft again, but the lineage has published once.
		result, err := svc.UpdateContent(ctx, editorial.UpdateContentRequest{
			Slug:  "frozen-post",
			Patch: editorial.Patch{Slug: editorial.NewField("thawed-post")},
		})
		require.NoError(t, err)
		assert.Equal(t, "frozen-post", result.Content.Slug)
	})

	t.Run("rejects malformed slug", func(t *testing.T) {
		createBlog(t, svc, "Messy Post")
		_, err := svc.UpdateContent(ctx, editorial.UpdateContentRequest{
			Slug:  "messy-post",
			Patch: editorial.Patch{Slug: editorial.NewField("Has Spaces")},
		})
		assert.ErrorIs(t, err, editorial.ErrInvalidSlug)
	})
}

func TestService_UnpublishContent(t *testing.T) {
	svc, notifier := setupServiceTest(t)
	ctx := context.Background()
	createBlog(t, svc, "Retractable")

	_, err := svc.PublishContent(ctx, "retractable", "author-1")
	require.NoError(t, err)

	result, err := svc.UnpublishContent(ctx, "retractable", "author-2")
	require.NoError(t, err)

	assert.Equal(t, editorial.ContentStatusDraft, result.Content.Status)
	assert.Equal(t, 1, result.Content.Version)
	assert.NotNil(t, result.Content.PublishedAt) // publish latch survives
	assert.True(t, result.Revalidated)
	waitForNotify(t, notifier, 2)

	// Second unpublish is an idempotent no-op.
	result, err = svc.UnpublishContent(ctx, "retractable", "author-2")
	require.NoError(t, err)
	assert.False(t, result.Revalidated)
	assert.Equal(t, 2, notifier.count())
}

func TestService_ArchiveContent(t *testing.T) {
	svc, notifier := setupServiceTest(t)
	ctx := context.Background()

	t.Run("archiving a draft does not revalidate", func(t *testing.T) {
		createBlog(t, svc, "Shelved Draft")

		result, err := svc.ArchiveContent(ctx, "shelved-draft", "author-1")
		require.NoError(t, err)
		assert.Equal(t, editorial.ContentStatusArchived, result.Content.Status)
		assert.False(t, result.Revalidated)
		assert.Zero(t, notifier.count())
	})

	t.Run("archiving a published row revalidates in place", func(t *testing.T) {
		createBlog(t, svc, "Retired Page")
		_, err := svc.PublishContent(ctx, "retired-page", "author-1")
		require.NoError(t, err)

		result, err := svc.ArchiveContent(ctx, "retired-page", "author-1")
		require.NoError(t, err)
		assert.Equal(t, editorial.ContentStatusArchived, result.Content.Status)
		assert.Equal(t, 1, result.Content.Version)
		assert.True(t, result.Revalidated)
		waitForNotify(t, notifier, 2)

		// Idempotent second archive.
		result, err = svc.ArchiveContent(ctx, "retired-page", "author-1")
		require.NoError(t, err)
		assert.False(t, result.Revalidated)
	})

	t.Run("archive target on published update discards the patch", func(t *testing.T) {
		createBlog(t, svc, "Immutable Snapshot")
		_, err := svc.PublishContent(ctx, "immutable-snapshot", "author-1")
		require.NoError(t, err)

		target := editorial.ContentStatusArchived
		result, err := svc.UpdateContent(ctx, editorial.UpdateContentRequest{
			Slug:         "immutable-snapshot",
			Patch:        editorial.Patch{Title: editorial.NewField("Should Not Apply")},
			TargetStatus: &target,
			UpdatedBy:    "author-1",
		})
		require.NoError(t, err)
		assert.Equal(t, editorial.ContentStatusArchived, result.Content.Status)
		assert.Equal(t, "Immutable Snapshot", result.Content.Title)
		assert.Equal(t, 1, result.Content.Version)
	})
}

func TestService_DeleteContent(t *testing.T) {
	svc, notifier := setupServiceTest(t)
	ctx := context.Background()

	t.Run("removes every version", func(t *testing.T) {
		createBlog(t, svc, "Doomed Post")
		_, err := svc.PublishContent(ctx, "doomed-post", "author-1")
		require.NoError(t, err)
		_, err = svc.UpdateContent(ctx, editorial.UpdateContentRequest{
			Slug:  "doomed-post",
			Patch: editorial.Patch{Title: editorial.NewField("v2")},
		})
		require.NoError(t, err)

		result, err := svc.DeleteContent(ctx, "doomed-post")
		require.NoError(t, err)
		assert.Equal(t, 2, result.DeletedVersionCount)
		assert.True(t, result.Revalidated)

		_, err = svc.GetContent(ctx, "doomed-post")
		assert.ErrorIs(t, err, editorial.ErrNotFound)
		_, err = svc.GetContentVersion(ctx, "doomed-post", 1)
		assert.ErrorIs(t, err, editorial.ErrNotFound)
		_, err = svc.ListVersions(ctx, "doomed-post")
		assert.ErrorIs(t, err, editorial.ErrNotFound)
	})

	t.Run("never-published lineage does not revalidate", func(t *testing.T) {
		before := notifier.count()
		createBlog(t, svc, "Quiet Draft")

		result, err := svc.DeleteContent(ctx, "quiet-draft")
		require.NoError(t, err)
		assert.Equal(t, 1, result.DeletedVersionCount)
		assert.False(t, result.Revalidated)
		assert.Equal(t, before, notifier.count())
	})

	t.Run("missing lineage is not found", func(t *testing.T) {
		_, err := svc.DeleteContent(ctx, "never-existed")
		assert.ErrorIs(t, err, editorial.ErrNotFound)
	})
}

func TestService_NotifierFailureDoesNotFailWrites(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("endpoint down")}
	svc, err := editorial.New(
		editorial.WithRepository(memory.New()),
		editorial.WithNotifier(notifier),
	)
	require.NoError(t, err)
	ctx := context.Background()

	createBlog(t, svc, "Resilient Post")
	result, err := svc.PublishContent(ctx, "resilient-post", "author-1")
	require.NoError(t, err)
	assert.True(t, result.Revalidated)
	waitForNotify(t, notifier, 1)

	// The row is published regardless of the failed dispatch.
	got, err := svc.GetContent(ctx, "resilient-post")
	require.NoError(t, err)
	assert.Equal(t, editorial.ContentStatusPublished, got.Status)
}

func TestService_Hooks(t *testing.T) {
	var statusChanges []string
	hooks := &editorial.Hooks{
		BeforeContentCreate: []editorial.BeforeContentCreateHook{
			func(hctx *editorial.HookContext, req *editorial.CreateContentRequest) error {
				if req.Title == "forbidden" {
					return errors.New("title rejected by policy")
				}
				return nil
			},
		},
		OnStatusChange: []editorial.StatusChangeHook{
			func(hctx *editorial.HookContext, slug string, oldStatus, newStatus editorial.ContentStatus) error {
				statusChanges = append(statusChanges, string(oldStatus)+"->"+string(newStatus))
				return nil
			},
		},
	}

	svc, err := editorial.New(
		editorial.WithRepository(memory.New()),
		editorial.WithHooks(hooks),
	)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.CreateContent(ctx, editorial.CreateContentRequest{
		Type:  editorial.ContentTypePage,
		Title: "forbidden",
	})
	require.Error(t, err)

	createBlog(t, svc, "Hooked Post")
	_, err = svc.PublishContent(ctx, "hooked-post", "author-1")
	require.NoError(t, err)
	_, err = svc.UnpublishContent(ctx, "hooked-post", "author-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"draft->published", "published->draft"}, statusChanges)
}
