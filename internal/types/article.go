package types

import (
  "time"
  "gorm.io/datatypes"
)

type Article struct {
  ID            uint                         `gorm:"primaryKey;autoIncrement" json:"id"`
  Title         string                       `gorm:"not null;column:title" json:"title"`
  Content       string                       `gorm:"not null;column:content" json:"content"`
  Topics        datatypes.JSONSlice[string]  `gorm:"column:topics" json:"topics"`
  Author        string                       `gorm:"index;not null;column:author" json:"author"`
  CreatedAt     time.Time                    `gorm:"not null" json:"created_at"`
  LikeCount     int                          `gorm:"not null;default:0;column:like_count" json:"like_count"`
  DislikeCount  int                          `gorm:"not null;default:0;column:dislike_count" json:"dislike_count"`
}

func (Article) TableName() string {
  return "article"
}
