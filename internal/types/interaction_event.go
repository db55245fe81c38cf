package types

const (
  ReactionLike    = 1
  ReactionDislike = -1
)

// InteractionEvent is the durable like/dislike stance of one user on one
// article. At most one row exists per (username, article_id); absence means no
// stance, the value flips on a switch and the row is deleted on a toggle-off.
type InteractionEvent struct {
  ID         uint    `gorm:"primaryKey;autoIncrement" json:"id"`
  Username   string  `gorm:"uniqueIndex:idx_interaction_user_article;not null;column:username" json:"username"`
  ArticleID  uint    `gorm:"uniqueIndex:idx_interaction_user_article;not null;column:article_id" json:"article_id"`
  Value      int     `gorm:"not null;column:value" json:"value"`
}

func (InteractionEvent) TableName() string {
  return "interaction_event"
}
