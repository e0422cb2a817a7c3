package model

import "time"

const MaxIQHistory = 10

type IQHistoryEntry struct {
	Date      time.Time `json:"date"`
	QuizID    uint      `json:"quizId"`
	QuizTitle string    `json:"quizTitle"`
	Score     int       `json:"score"`
	IQLevel   IQLevel   `json:"iqLevel"`
}

// IQProgress 运动员在某个位置上的累计 Football IQ。
// CurrentIQLevel 由平均分计算（overall level）。
// History 按时间倒序，最多 MaxIQHistory 条。
//
// swagger:model IQProgress
type IQProgress struct {
	BaseModel
	AthleteID        uint             `gorm:"uniqueIndex:idx_iq_progress_athlete_position;not null" json:"athleteId"`
	Position         string           `gorm:"size:50;uniqueIndex:idx_iq_progress_athlete_position;not null" json:"position"`
	CurrentIQLevel   IQLevel          `gorm:"size:30" json:"currentIqLevel"`
	QuizzesCompleted int              `gorm:"default:0" json:"quizzesCompleted"`
	QuizzesPassed    int              `gorm:"default:0" json:"quizzesPassed"`
	TotalScore       int              `gorm:"default:0" json:"totalScore"`
	AverageScore     int              `gorm:"default:0" json:"averageScore"`
	LastAttemptAt    *time.Time       `json:"lastAttemptAt"`
	History          []IQHistoryEntry `gorm:"serializer:json;type:json" json:"history"`
}

func (IQProgress) TableName() string {
	return "football_iq_progress"
}
