package services

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/articlehub-backend/internal/repos"
	"github.com/yungbote/articlehub-backend/internal/repos/testutil"
	"github.com/yungbote/articlehub-backend/internal/requestdata"
)

func newAuthFixture(t *testing.T) (AuthService, *fakeIndex) {
	t.Helper()
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	db := testutil.DB(t)
	log := testutil.Logger(t)
	userRepo := repos.NewUserRepo(db, log)
	index := newFakeIndex()
	return NewAuthService(db, log, userRepo, &fakeEmbedder{}, index), index
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	svc, index := newAuthFixture(t)

	user, err := svc.Register(context.Background(), RegisterInput{
		Username: "  Alice ",
		Email:    "ALICE@Example.com",
		Password: "hunter2",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Username != "alice" || user.Email != "alice@example.com" {
		t.Fatalf("inputs not normalized: %q / %q", user.Username, user.Email)
	}
	if len(user.TopicWeights) == 0 {
		t.Fatalf("new user must start with the zero weight vector")
	}
	if _, ok := index.userUpserts["alice"]; !ok {
		t.Fatalf("registration must index the initial embedding")
	}

	token, logged, err := svc.Login(context.Background(), "alice", "hunter2")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token == "" || logged.Username != "alice" {
		t.Fatalf("unexpected login result: %q %+v", token, logged)
	}

	ctx, err := svc.SetContextFromToken(context.Background(), token)
	if err != nil {
		t.Fatalf("SetContextFromToken failed: %v", err)
	}
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.Username != "alice" || rd.UserID != user.ID {
		t.Fatalf("request data not populated: %+v", rd)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, _ := newAuthFixture(t)

	if _, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Email: "a@example.com", Password: "pw"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Email: "b@example.com", Password: "pw"}); !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if _, err := svc.Register(context.Background(), RegisterInput{Username: "carol", Email: "a@example.com", Password: "pw"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	if _, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Email: "a@example.com", Password: "pw"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestSetContextFromTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthFixture(t)

	if _, err := svc.SetContextFromToken(context.Background(), "not.a.token"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUpdateUserEmailConflict(t *testing.T) {
	svc, _ := newAuthFixture(t)

	if _, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Email: "a@example.com", Password: "pw"}); err != nil {
		t.Fatalf("register alice failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), RegisterInput{Username: "bob", Email: "b@example.com", Password: "pw"}); err != nil {
		t.Fatalf("register bob failed: %v", err)
	}

	taken := "a@example.com"
	if _, err := svc.UpdateUser(context.Background(), "bob", UpdateUserInput{Email: &taken}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}

	prefs := []string{"Fitness", "Music"}
	updated, err := svc.UpdateUser(context.Background(), "bob", UpdateUserInput{TopicPreferences: prefs})
	if err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}
	if len(updated.TopicPreferences) != 2 {
		t.Fatalf("preferences not stored: %+v", updated.TopicPreferences)
	}
}
