package model

const DefaultPassingScore = 70

type QuizDifficulty string

const (
	DifficultyBeginner     QuizDifficulty = "beginner"
	DifficultyIntermediate QuizDifficulty = "intermediate"
	DifficultyAdvanced     QuizDifficulty = "advanced"
)

func (d QuizDifficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// swagger:model Quiz
type Quiz struct {
	BaseModel
	Title        string         `gorm:"size:200;not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	Position     string         `gorm:"size:50;index;not null" json:"position"`
	Difficulty   QuizDifficulty `gorm:"size:20;index;default:'beginner'" json:"difficulty"`
	Category     string         `gorm:"size:50;index" json:"category"`
	PassingScore int            `gorm:"not null" json:"passingScore"`
	TimeLimit    int            `gorm:"default:0" json:"timeLimit"` // 秒，0 表示不限时
	IsActive     bool           `gorm:"index" json:"isActive"`
	SortOrder    int            `gorm:"default:0" json:"sortOrder"`
	CreatedBy    uint           `gorm:"index" json:"createdBy"`

	Questions []Question `gorm:"-" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "football_iq_quizzes"
}

type QuestionOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// swagger:model Question
type Question struct {
	BaseModel
	QuizID          uint             `gorm:"index;not null" json:"quizId"`
	Prompt          string           `gorm:"type:text;not null" json:"prompt"`
	Options         []QuestionOption `gorm:"serializer:json;type:json" json:"options"`
	CorrectOptionID string           `gorm:"size:50" json:"correctOptionId"`
	Explanation     string           `gorm:"type:text" json:"explanation"`
	SortOrder       int              `gorm:"default:0" json:"sortOrder"`
}

func (Question) TableName() string {
	return "football_iq_questions"
}
