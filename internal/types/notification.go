package types

import (
  "time"
)

type Notification struct {
  ID         uint       `gorm:"primaryKey;autoIncrement" json:"id"`
  ArticleID  uint       `gorm:"index;not null;column:article_id" json:"article_id"`
  Author     string     `gorm:"not null;column:author" json:"author"`
  Time       time.Time  `gorm:"not null;column:time" json:"time"`
  CommentID  uint       `gorm:"not null;column:comment_id" json:"comment_id"`
}

func (Notification) TableName() string {
  return "notification"
}
