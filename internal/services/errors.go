package services

import "errors"

var (
  // ErrUserNotFound is returned when the username has no relational row.
  ErrUserNotFound = errors.New("user not found")
  // ErrUserExists / ErrEmailExists signal registration conflicts by field.
  ErrUserExists  = errors.New("username already exists")
  ErrEmailExists = errors.New("email already exists")
  // ErrInvalidCredentials covers both unknown username and bad password.
  ErrInvalidCredentials = errors.New("invalid username or password")
  // ErrArticleNotFound is returned for an unknown article id.
  ErrArticleNotFound = errors.New("article not found")
  // ErrAnswerNotFound is returned for an unknown answer id, or when the
  // answer row belongs to a different respondent.
  ErrAnswerNotFound = errors.New("answer not found")
  // ErrAlreadyAnswered rejects a second submission for the same question.
  ErrAlreadyAnswered = errors.New("question already answered")
  // ErrUserEmbeddingNotFound means the registration-time upsert never
  // happened. Precondition violation: surface as a 404, never retry.
  ErrUserEmbeddingNotFound = errors.New("user embedding not found")
)
