package model

import "time"

type AttemptStatus string

const (
	AttemptStarted   AttemptStatus = "started"
	AttemptCompleted AttemptStatus = "completed"
	AttemptAbandoned AttemptStatus = "abandoned"
)

// AttemptAnswer 单题作答，按提交顺序保存
type AttemptAnswer struct {
	QuestionID       uint   `json:"questionId"`
	SelectedOptionID string `json:"selectedOptionId"`
	IsCorrect        bool   `json:"isCorrect"`
	TimeSpent        int    `json:"timeSpent"`
}

// QuizAttempt 一次测验作答。开始时只有 AthleteID/QuizID/StartedAt，
// 完成后 CompletedAt、Score、IQLevel、IsPassed 一并写入。
// IQLevel 是本次得分对应的等级（attempt level），不是累计平均等级。
//
// swagger:model QuizAttempt
type QuizAttempt struct {
	BaseModel
	AthleteID   uint            `gorm:"index;not null" json:"athleteId"`
	QuizID      uint            `gorm:"index;not null" json:"quizId"`
	Status      AttemptStatus   `gorm:"size:20;index;default:'started'" json:"status"`
	StartedAt   time.Time       `gorm:"index" json:"startedAt"`
	CompletedAt *time.Time      `json:"completedAt"`
	Score       *int            `json:"score"`
	TimeSpent   *int            `json:"timeSpent"`
	IQLevel     *IQLevel        `gorm:"size:30" json:"iqLevel"`
	IsPassed    *bool           `json:"isPassed"`
	Answers     []AttemptAnswer `gorm:"serializer:json;type:json" json:"answers"`
}

func (QuizAttempt) TableName() string {
	return "football_iq_quiz_attempts"
}
