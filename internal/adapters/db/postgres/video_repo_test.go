package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"

	customErrors "github.com/vidora/vidora/internal/domain/errors"
	"github.com/vidora/vidora/internal/domain/model"
	"github.com/vidora/vidora/internal/domain/repo"
)

func seedVideo(t *testing.T, r *VideoRepo, owner uuid.UUID, title string, views int64, published bool) model.Video {
	t.Helper()
	v := model.Video{
		ID: uuid.New(), OwnerID: owner, Title: title,
		Description: "about " + title,
		VideoURL:    "http://cdn/" + title + ".mp4", ThumbnailURL: "http://cdn/" + title + ".png",
		Views: views, Published: published,
	}
	if _, err := r.CreateVideo(context.Background(), v); err != nil {
		t.Fatalf("seed video: %v", err)
	}
	return v
}

func TestVideoRepo_CRUD(t *testing.T) {
	db := setupDB(t)
	users := NewUserRepo(db)
	videos := NewVideoRepo(db)
	ctx := context.Background()

	owner := seedUser(t, users, "owner", "o@x.com")
	v := seedVideo(t, videos, owner.ID, "intro", 0, true)

	got, err := videos.GetVideoByID(ctx, v.ID)
	if err != nil || got.Title != "intro" {
		t.Fatalf("get: %v", err)
	}

	got.Title = "renamed"
	got.Description = "new description"
	if err := videos.UpdateVideo(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = videos.GetVideoByID(ctx, v.ID)
	if got.Title != "renamed" || got.Description != "new description" {
		t.Fatal("update not persisted")
	}

	if err := videos.DeleteVideo(ctx, v.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := videos.GetVideoByID(ctx, v.ID); !customErrors.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := videos.DeleteVideo(ctx, v.ID); !customErrors.IsNotFound(err) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestVideoRepo_ListFiltersAndPagination(t *testing.T) {
	db := setupDB(t)
	users := NewUserRepo(db)
	videos := NewVideoRepo(db)
	ctx := context.Background()

	alice := seedUser(t, users, "alice", "a@x.com")
	bob := seedUser(t, users, "bob", "b@x.com")

	seedVideo(t, videos, alice.ID, "go basics", 10, true)
	seedVideo(t, videos, alice.ID, "go advanced", 30, true)
	seedVideo(t, videos, alice.ID, "hidden draft", 0, false)
	seedVideo(t, videos, bob.ID, "Cooking With GO", 20, true)

	// published only, everyone
	items, total, err := videos.ListVideos(ctx, repo.VideoFilter{
		PublishedOnly: true, Page: 1, Limit: 10,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(items) != 3 {
		t.Fatalf("want 3 published, got total=%d len=%d", total, len(items))
	}
	if items[0].OwnerHandle == "" {
		t.Fatal("owner projection missing")
	}

	// owner filter
	_, total, err = videos.ListVideos(ctx, repo.VideoFilter{
		OwnerID: &alice.ID, PublishedOnly: true, Page: 1, Limit: 10,
	})
	if err != nil || total != 2 {
		t.Fatalf("owner filter: total=%d err=%v", total, err)
	}

	// case-insensitive search over title and description
	items, _, err = videos.ListVideos(ctx, repo.VideoFilter{
		Query: "go", PublishedOnly: true, Page: 1, Limit: 10,
	})
	if err != nil || len(items) != 3 {
		t.Fatalf("search: len=%d err=%v", len(items), err)
	}

	// sort by views ascending
	items, _, err = videos.ListVideos(ctx, repo.VideoFilter{
		SortBy: "views", SortAsc: true, PublishedOnly: true, Page: 1, Limit: 10,
	})
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	if items[0].Views != 10 || items[2].Views != 30 {
		t.Fatalf("sort order wrong: %d %d %d", items[0].Views, items[1].Views, items[2].Views)
	}

	// pagination
	items, total, err = videos.ListVideos(ctx, repo.VideoFilter{
		SortBy: "views", SortAsc: true, PublishedOnly: true, Page: 2, Limit: 2,
	})
	if err != nil || total != 3 || len(items) != 1 {
		t.Fatalf("pagination: total=%d len=%d err=%v", total, len(items), err)
	}
	if items[0].Views != 30 {
		t.Fatalf("page 2 want views=30, got %d", items[0].Views)
	}
}

func TestVideoRepo_IncrementViews(t *testing.T) {
	db := setupDB(t)
	users := NewUserRepo(db)
	videos := NewVideoRepo(db)
	ctx := context.Background()

	owner := seedUser(t, users, "owner", "o@x.com")
	v := seedVideo(t, videos, owner.ID, "counted", 0, true)

	for i := 0; i < 3; i++ {
		if err := videos.IncrementViews(ctx, v.ID); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}
	got, _ := videos.GetVideoByID(ctx, v.ID)
	if got.Views != 3 {
		t.Fatalf("views want 3, got %d", got.Views)
	}

	if err := videos.IncrementViews(ctx, uuid.New()); !customErrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
