package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/articlehub-backend/internal/repos"
	"github.com/yungbote/articlehub-backend/internal/repos/testutil"
	"github.com/yungbote/articlehub-backend/internal/types"
)

func newRecommendationFixture(t *testing.T) (RecommendationService, *gorm.DB, *fakeIndex) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	articleRepo := repos.NewArticleRepo(db, log)
	interactionRepo := repos.NewInteractionEventRepo(db, log)
	answerRepo := repos.NewUserAnswerRepo(db, log)

	index := newFakeIndex()
	svc := NewRecommendationService(db, log, articleRepo, interactionRepo, answerRepo, index)
	return svc, db, index
}

func seedArticleWithID(t *testing.T, db *gorm.DB, id uint, title, author string) *types.Article {
	t.Helper()
	article := &types.Article{
		ID:        id,
		Title:     title,
		Content:   "Content long enough to demonstrate the feed payload for " + title,
		Topics:    datatypes.JSONSlice[string]{"Fitness"},
		Author:    author,
		CreatedAt: time.Now(),
	}
	if err := db.Create(article).Error; err != nil {
		t.Fatalf("seed article %d: %v", id, err)
	}
	return article
}

func TestFeedRestoresSimilarityOrder(t *testing.T) {
	svc, db, index := newRecommendationFixture(t)
	index.userVectors["alice"] = []float32{0.1}
	index.queryResult = []uint{7, 3, 9}

	// Seeded out of rank order on purpose.
	seedArticleWithID(t, db, 3, "Second best", "bob")
	seedArticleWithID(t, db, 9, "Third best", "carol")
	seedArticleWithID(t, db, 7, "Best match", "bob")

	views, err := svc.GetRecommendations(context.Background(), "alice", true)
	if err != nil {
		t.Fatalf("GetRecommendations failed: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("expected 3 articles, got %d", len(views))
	}
	for i, wantID := range []uint{7, 3, 9} {
		if views[i].ID != wantID {
			t.Fatalf("position %d: expected article %d, got %d", i, wantID, views[i].ID)
		}
	}
	if index.lastTopK != recommendationTopK {
		t.Fatalf("expected topK=%d, got %d", recommendationTopK, index.lastTopK)
	}
}

func TestFeedExcludesOwnArticlesViaIndexFilter(t *testing.T) {
	svc, _, index := newRecommendationFixture(t)
	index.userVectors["alice"] = []float32{0.1}

	if _, err := svc.GetRecommendations(context.Background(), "alice", true); err != nil {
		t.Fatalf("GetRecommendations failed: %v", err)
	}
	if index.lastExclude != "alice" {
		t.Fatalf("expected author filter for alice, got %q", index.lastExclude)
	}

	if _, err := svc.GetRecommendations(context.Background(), "alice", false); err != nil {
		t.Fatalf("GetRecommendations failed: %v", err)
	}
	if index.lastExclude != "" {
		t.Fatalf("expected no author filter, got %q", index.lastExclude)
	}
}

func TestFeedAnnotatesUserStateAndQuestions(t *testing.T) {
	svc, db, index := newRecommendationFixture(t)
	index.userVectors["alice"] = []float32{0.1}
	index.queryResult = []uint{7, 3}

	seedArticleWithID(t, db, 7, "Liked one", "bob")
	seedArticleWithID(t, db, 3, "Questioned one", "carol")

	if err := db.Create(&types.InteractionEvent{
		Username:  "alice",
		ArticleID: 7,
		Value:     types.ReactionLike,
	}).Error; err != nil {
		t.Fatalf("seed interaction: %v", err)
	}
	if err := db.Create(&types.UserAnswer{
		Username:     "alice",
		ArticleID:    3,
		QuestionText: "Why does this matter?",
		CreatedAt:    time.Now(),
	}).Error; err != nil {
		t.Fatalf("seed question: %v", err)
	}

	views, err := svc.GetRecommendations(context.Background(), "alice", true)
	if err != nil {
		t.Fatalf("GetRecommendations failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(views))
	}
	if views[0].UserAction != "like" {
		t.Fatalf("expected user_action=like on article 7, got %q", views[0].UserAction)
	}
	if views[1].UserAction != "" {
		t.Fatalf("expected no user_action on article 3, got %q", views[1].UserAction)
	}
	if views[1].Question == nil || views[1].Question.Text != "Why does this matter?" {
		t.Fatalf("expected pending question on article 3, got %+v", views[1].Question)
	}
	if views[1].Answer != nil {
		t.Fatalf("unanswered question must not expose an answer")
	}
}

func TestFeedSkipsMissingArticles(t *testing.T) {
	svc, db, index := newRecommendationFixture(t)
	index.userVectors["alice"] = []float32{0.1}
	index.queryResult = []uint{7, 42, 3}

	seedArticleWithID(t, db, 7, "Exists", "bob")
	seedArticleWithID(t, db, 3, "Also exists", "carol")

	views, err := svc.GetRecommendations(context.Background(), "alice", true)
	if err != nil {
		t.Fatalf("GetRecommendations failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected stale index entry to be skipped, got %d views", len(views))
	}
	if views[0].ID != 7 || views[1].ID != 3 {
		t.Fatalf("rank order lost after skip: %d, %d", views[0].ID, views[1].ID)
	}
}

func TestFeedEmptyIndexReturnsEmptySlice(t *testing.T) {
	svc, _, index := newRecommendationFixture(t)
	index.userVectors["alice"] = []float32{0.1}

	views, err := svc.GetRecommendations(context.Background(), "alice", true)
	if err != nil {
		t.Fatalf("GetRecommendations failed: %v", err)
	}
	if views == nil || len(views) != 0 {
		t.Fatalf("expected empty slice, got %v", views)
	}
}

func TestFeedRequiresUserEmbedding(t *testing.T) {
	svc, _, _ := newRecommendationFixture(t)

	if _, err := svc.GetRecommendations(context.Background(), "ghost", true); !errors.Is(err, ErrUserEmbeddingNotFound) {
		t.Fatalf("expected ErrUserEmbeddingNotFound, got %v", err)
	}
}

func TestSnippetTruncation(t *testing.T) {
	long := make([]rune, 0, 150)
	for i := 0; i < 150; i++ {
		long = append(long, 'x')
	}
	got := snippet(string(long))
	if len([]rune(got)) != snippetRunes+3 {
		t.Fatalf("expected %d runes, got %d", snippetRunes+3, len([]rune(got)))
	}
	if short := snippet("short"); short != "short" {
		t.Fatalf("short content must pass through, got %q", short)
	}
}
