package services

import (
	"context"
	"strings"
	"testing"

	"github.com/yungbote/articlehub-backend/internal/repos"
	"github.com/yungbote/articlehub-backend/internal/repos/testutil"
	"github.com/yungbote/articlehub-backend/internal/types"
)

func TestFormatNotificationMessageTruncatesLongComments(t *testing.T) {
	long := strings.Repeat("a", 60)
	msg := formatNotificationMessage("alice", "Deadlifts", long)

	want := "alice commented on 'Deadlifts': \"" + strings.Repeat("a", 47) + "...\""
	if msg != want {
		t.Fatalf("message mismatch:\n got  %q\n want %q", msg, want)
	}

	short := formatNotificationMessage("alice", "Deadlifts", "nice read")
	if !strings.Contains(short, `"nice read"`) {
		t.Fatalf("short comments must pass through untouched, got %q", short)
	}
}

func TestNotificationListJoinsArticleAndComment(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	articleRepo := repos.NewArticleRepo(db, log)
	commentRepo := repos.NewCommentRepo(db, log)
	notificationRepo := repos.NewNotificationRepo(db, log)
	notifier := &fakeNotifier{}

	commentSvc := NewCommentService(db, log, articleRepo, commentRepo, notificationRepo, notifier)
	notificationSvc := NewNotificationService(db, log, notificationRepo)

	seedUser(t, db, "bob")
	article := seedArticle(t, db, "bob", "Fitness")

	if _, err := commentSvc.AddComment(context.Background(), "alice", article.ID, "great writeup"); err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}

	views, err := notificationSvc.List(context.Background(), "bob")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(views))
	}
	view := views[0]
	if view.Author != "alice" || view.Title != article.Title || view.Text != "great writeup" {
		t.Fatalf("unexpected notification: %+v", view)
	}
	if !strings.Contains(view.Message, "alice commented on") {
		t.Fatalf("message not rendered: %q", view.Message)
	}

	if len(notifier.notifications) != 1 || notifier.notifications[0] != "bob" {
		t.Fatalf("expected live notification pushed to bob, got %v", notifier.notifications)
	}

	if err := notificationSvc.Delete(context.Background(), view.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	views, err = notificationSvc.List(context.Background(), "bob")
	if err != nil {
		t.Fatalf("List after delete failed: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("expected empty feed after delete, got %d", len(views))
	}
}

func TestSelfCommentDoesNotNotify(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	articleRepo := repos.NewArticleRepo(db, log)
	commentRepo := repos.NewCommentRepo(db, log)
	notificationRepo := repos.NewNotificationRepo(db, log)
	notifier := &fakeNotifier{}

	commentSvc := NewCommentService(db, log, articleRepo, commentRepo, notificationRepo, notifier)
	notificationSvc := NewNotificationService(db, log, notificationRepo)

	seedUser(t, db, "bob")
	article := seedArticle(t, db, "bob", "Fitness")

	if _, err := commentSvc.AddComment(context.Background(), "bob", article.ID, "replying to myself"); err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}

	views, err := notificationSvc.List(context.Background(), "bob")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("self comments must not notify, got %d", len(views))
	}
	if len(notifier.notifications) != 0 {
		t.Fatalf("no live push expected for self comment")
	}

	var count int64
	if err := db.Model(&types.Comment{}).Count(&count).Error; err != nil {
		t.Fatalf("count comments: %v", err)
	}
	if count != 1 {
		t.Fatalf("comment itself must still be stored, got %d", count)
	}
}
