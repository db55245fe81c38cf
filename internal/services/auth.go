package services

import (
  "context"
  "fmt"
  "strings"
  "time"
  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "golang.org/x/crypto/bcrypt"
  "gorm.io/datatypes"
  "gorm.io/gorm"
  "github.com/yungbote/articlehub-backend/internal/logger"
  "github.com/yungbote/articlehub-backend/internal/normalization"
  "github.com/yungbote/articlehub-backend/internal/repos"
  "github.com/yungbote/articlehub-backend/internal/requestdata"
  "github.com/yungbote/articlehub-backend/internal/types"
  "github.com/yungbote/articlehub-backend/internal/utils"
)

type RegisterInput struct {
  Username string
  Email    string
  Password string
}

type UpdateUserInput struct {
  Email            *string
  Password         *string
  TopicPreferences []string
}

type UserClaims struct {
  Username string `json:"username"`
  jwt.RegisteredClaims
}

type AuthService interface {
  Register(ctx context.Context, input RegisterInput) (*types.User, error)
  Login(ctx context.Context, username, password string) (string, *types.User, error)
  UpdateUser(ctx context.Context, username string, input UpdateUserInput) (*types.User, error)
  SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
  db        *gorm.DB
  log       *logger.Logger
  userRepo  repos.UserRepo
  embedder  PreferenceEmbedder
  index     RecommendationIndex
  jwtSecret []byte
  tokenTTL  time.Duration
}

func NewAuthService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  embedder PreferenceEmbedder,
  index RecommendationIndex,
) AuthService {
  serviceLog := log.With("service", "AuthService")
  secret := utils.GetEnv("JWT_SECRET_KEY", "", serviceLog)
  if secret == "" {
    serviceLog.Fatal("JWT_SECRET_KEY is required")
  }
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 86400, serviceLog)
  return &authService{
    db:        db,
    log:       serviceLog,
    userRepo:  userRepo,
    embedder:  embedder,
    index:     index,
    jwtSecret: []byte(secret),
    tokenTTL:  time.Duration(accessTokenTTL) * time.Second,
  }
}

func (as *authService) Register(ctx context.Context, input RegisterInput) (*types.User, error) {
  username := normalization.ParseInputString(input.Username)
  email := normalization.ParseInputString(input.Email)
  if username == "" || email == "" || input.Password == "" {
    return nil, fmt.Errorf("username, email and password are required")
  }

  hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
  if err != nil {
    return nil, fmt.Errorf("Failed to hash password: %w", err)
  }

  user := &types.User{
    ID:           uuid.New(),
    Username:     username,
    Email:        email,
    Password:     string(hashed),
    TopicWeights: types.NewTopicWeights(),
    CreatedAt:    time.Now(),
    UpdatedAt:    time.Now(),
  }

  err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    usernameTaken, eErr := as.userRepo.UsernameExists(ctx, tx, username)
    if eErr != nil {
      return fmt.Errorf("Failed to check username: %w", eErr)
    }
    if usernameTaken {
      return ErrUserExists
    }
    emailTaken, eErr := as.userRepo.EmailExists(ctx, tx, email)
    if eErr != nil {
      return fmt.Errorf("Failed to check email: %w", eErr)
    }
    if emailTaken {
      return ErrEmailExists
    }
    if _, cErr := as.userRepo.Create(ctx, tx, []*types.User{user}); cErr != nil {
      return fmt.Errorf("Failed to create user: %w", cErr)
    }
    return nil
  })
  if err != nil {
    return nil, err
  }

  // A fresh account starts from the all-zero vector; indexing it up front
  // means the feed endpoint works before the user's first reaction.
  as.syncUserEmbedding(ctx, user.Username, user.TopicWeights)
  return user, nil
}

func (as *authService) Login(ctx context.Context, username, password string) (string, *types.User, error) {
  username = normalization.ParseInputString(username)

  users, err := as.userRepo.GetByUsernames(ctx, nil, []string{username})
  if err != nil {
    return "", nil, fmt.Errorf("Failed to load user: %w", err)
  }
  if len(users) == 0 {
    return "", nil, ErrInvalidCredentials
  }
  user := users[0]

  if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
    return "", nil, ErrInvalidCredentials
  }

  now := time.Now()
  claims := UserClaims{
    Username: user.Username,
    RegisteredClaims: jwt.RegisteredClaims{
      Subject:   user.ID.String(),
      IssuedAt:  jwt.NewNumericDate(now),
      ExpiresAt: jwt.NewNumericDate(now.Add(as.tokenTTL)),
    },
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  signed, err := token.SignedString(as.jwtSecret)
  if err != nil {
    return "", nil, fmt.Errorf("Failed to sign token: %w", err)
  }
  return signed, user, nil
}

func (as *authService) UpdateUser(ctx context.Context, username string, input UpdateUserInput) (*types.User, error) {
  var updated *types.User

  err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    user, uErr := as.userRepo.GetByUsernameForUpdate(ctx, tx, username)
    if uErr != nil {
      if uErr == gorm.ErrRecordNotFound {
        return ErrUserNotFound
      }
      return fmt.Errorf("Failed to load user: %w", uErr)
    }

    fields := map[string]interface{}{}
    if input.Email != nil {
      email := normalization.ParseInputString(*input.Email)
      if email != user.Email {
        taken, eErr := as.userRepo.EmailExists(ctx, tx, email)
        if eErr != nil {
          return fmt.Errorf("Failed to check email: %w", eErr)
        }
        if taken {
          return ErrEmailExists
        }
        fields["email"] = email
        user.Email = email
      }
    }
    if input.Password != nil && *input.Password != "" {
      hashed, hErr := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
      if hErr != nil {
        return fmt.Errorf("Failed to hash password: %w", hErr)
      }
      fields["password"] = string(hashed)
      user.Password = string(hashed)
    }
    if input.TopicPreferences != nil {
      prefs := make([]string, 0, len(input.TopicPreferences))
      for _, topic := range input.TopicPreferences {
        prefs = append(prefs, strings.TrimSpace(topic))
      }
      fields["topic_preferences"] = datatypes.JSONSlice[string](prefs)
      user.TopicPreferences = datatypes.JSONSlice[string](prefs)
    }
    if len(fields) == 0 {
      updated = user
      return nil
    }
    fields["updated_at"] = time.Now()
    if wErr := as.userRepo.UpdateFields(ctx, tx, username, fields); wErr != nil {
      return fmt.Errorf("Failed to update user: %w", wErr)
    }
    updated = user
    return nil
  })
  if err != nil {
    return nil, err
  }
  return updated, nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  claims := &UserClaims{}
  token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
    if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
      return nil, fmt.Errorf("Unexpected signing method: %v", t.Header["alg"])
    }
    return as.jwtSecret, nil
  })
  if err != nil || !token.Valid {
    return ctx, ErrInvalidCredentials
  }

  userID, err := uuid.Parse(claims.Subject)
  if err != nil {
    return ctx, ErrInvalidCredentials
  }
  rd := &requestdata.RequestData{
    TokenString: tokenString,
    UserID:      userID,
    Username:    claims.Username,
  }
  return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) syncUserEmbedding(ctx context.Context, username string, weights types.TopicWeights) {
  vec, err := as.embedder.EmbedWeights(ctx, weights)
  if err != nil {
    as.log.Warn("User embedding failed", "username", username, "error", err)
    return
  }
  if err := as.index.UpsertUser(ctx, username, vec); err != nil {
    as.log.Warn("User embedding upsert failed", "username", username, "error", err)
  }
}
