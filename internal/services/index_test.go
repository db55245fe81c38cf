package services

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/articlehub-backend/internal/clients/pinecone"
	"github.com/yungbote/articlehub-backend/internal/repos/testutil"
)

type fakeVectorStore struct {
	upserts    map[string][]pinecone.Vector
	fetchVec   []float32
	fetchErr   error
	queryIDs   []string
	lastNS     string
	lastFilter map[string]any
}

func newFakeVectorStore() *fakeVectorStore {
	return &fakeVectorStore{upserts: make(map[string][]pinecone.Vector)}
}

func (f *fakeVectorStore) Upsert(ctx context.Context, namespace string, vectors []pinecone.Vector) error {
	f.upserts[namespace] = append(f.upserts[namespace], vectors...)
	return nil
}

func (f *fakeVectorStore) FetchOne(ctx context.Context, namespace string, id string) ([]float32, error) {
	f.lastNS = namespace
	return f.fetchVec, f.fetchErr
}

func (f *fakeVectorStore) QueryIDs(ctx context.Context, namespace string, q []float32, topK int, filter map[string]any) ([]string, error) {
	f.lastNS = namespace
	f.lastFilter = filter
	return f.queryIDs, nil
}

func TestUpsertsLandInSeparateNamespaces(t *testing.T) {
	store := newFakeVectorStore()
	index := NewRecommendationIndex(testutil.Logger(t), store)

	if err := index.UpsertUser(context.Background(), "alice", []float32{0.1}); err != nil {
		t.Fatalf("UpsertUser failed: %v", err)
	}
	if err := index.UpsertArticle(context.Background(), 12, []float32{0.2}, "bob"); err != nil {
		t.Fatalf("UpsertArticle failed: %v", err)
	}

	users := store.upserts["user-embeddings"]
	if len(users) != 1 || users[0].ID != "alice" {
		t.Fatalf("user vector misplaced: %+v", store.upserts)
	}
	articles := store.upserts["article-embeddings"]
	if len(articles) != 1 || articles[0].ID != "12" {
		t.Fatalf("article vector misplaced: %+v", store.upserts)
	}
	if author := articles[0].Metadata["author"]; author != "bob" {
		t.Fatalf("expected author metadata, got %v", author)
	}
}

func TestQueryArticlesParsesAndFilters(t *testing.T) {
	store := newFakeVectorStore()
	store.queryIDs = []string{"7", "not-a-number", "3"}
	index := NewRecommendationIndex(testutil.Logger(t), store)

	ids, err := index.QueryArticles(context.Background(), []float32{0.1}, 10, "alice")
	if err != nil {
		t.Fatalf("QueryArticles failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != 7 || ids[1] != 3 {
		t.Fatalf("bad ids: %v", ids)
	}

	author, ok := store.lastFilter["author"].(map[string]any)
	if !ok || author["$ne"] != "alice" {
		t.Fatalf("expected $ne author filter, got %v", store.lastFilter)
	}
}

func TestQueryArticlesNoFilterWithoutExclusion(t *testing.T) {
	store := newFakeVectorStore()
	index := NewRecommendationIndex(testutil.Logger(t), store)

	if _, err := index.QueryArticles(context.Background(), []float32{0.1}, 10, ""); err != nil {
		t.Fatalf("QueryArticles failed: %v", err)
	}
	if store.lastFilter != nil {
		t.Fatalf("expected nil filter, got %v", store.lastFilter)
	}
}

func TestFetchUserEmbeddingMapsNotFound(t *testing.T) {
	store := newFakeVectorStore()
	store.fetchErr = pinecone.ErrVectorNotFound
	index := NewRecommendationIndex(testutil.Logger(t), store)

	if _, err := index.FetchUserEmbedding(context.Background(), "ghost"); !errors.Is(err, ErrUserEmbeddingNotFound) {
		t.Fatalf("expected ErrUserEmbeddingNotFound, got %v", err)
	}

	store.fetchErr = errors.New("transport down")
	if _, err := index.FetchUserEmbedding(context.Background(), "alice"); errors.Is(err, ErrUserEmbeddingNotFound) {
		t.Fatalf("transport errors must not be mapped to not-found")
	}
}
