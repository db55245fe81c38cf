package types

import (
  "time"
)

// UserAnswer is one generated reader question plus the user's answer, one row
// per (article, respondent). IsAnswered gates the one-time topic-weight bump.
type UserAnswer struct {
  ID            uint       `gorm:"primaryKey;autoIncrement" json:"id"`
  Username      string     `gorm:"index;not null;column:username" json:"username"`
  ArticleID     uint       `gorm:"index;not null;column:article_id" json:"article_id"`
  QuestionText  string     `gorm:"not null;column:question_text" json:"question_text"`
  AnswerText    string     `gorm:"column:answer_text" json:"answer_text"`
  IsAnswered    bool       `gorm:"not null;default:false;column:is_answered" json:"is_answered"`
  CreatedAt     time.Time  `gorm:"not null" json:"created_at"`
}

func (UserAnswer) TableName() string {
  return "user_answers"
}
