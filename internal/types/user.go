package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
)

type User struct {
  ID                uuid.UUID                    `gorm:"type:uuid;primaryKey" json:"id"`
  Username          string                       `gorm:"uniqueIndex;not null;column:username" json:"username"`
  Email             string                       `gorm:"uniqueIndex;not null;column:email" json:"email"`
  Password          string                       `gorm:"not null;column:password" json:"-"`
  TopicWeights      TopicWeights                 `gorm:"column:topic_weights" json:"topic_weights"`
  TopicPreferences  datatypes.JSONSlice[string]  `gorm:"column:topic_preferences" json:"topic_preferences"`
  CreatedAt         time.Time                    `gorm:"not null" json:"created_at"`
  UpdatedAt         time.Time                    `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
  return "user"
}
