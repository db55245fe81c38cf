package types

import (
  "time"
)

type Comment struct {
  ID         uint       `gorm:"primaryKey;autoIncrement" json:"id"`
  Text       string     `gorm:"not null;column:text" json:"text"`
  ArticleID  uint       `gorm:"index;not null;column:article_id" json:"article_id"`
  Author     string     `gorm:"not null;column:author" json:"author"`
  CreatedAt  time.Time  `gorm:"not null" json:"created_at"`
}

func (Comment) TableName() string {
  return "comment"
}
