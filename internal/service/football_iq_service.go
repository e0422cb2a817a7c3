package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gridiron_backend/internal/model"
	"gridiron_backend/internal/repository"
	"gridiron_backend/internal/util"
	"gridiron_backend/pkg/logger"
	"gridiron_backend/pkg/monitoring"
	"gridiron_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Leaderboard 排行榜写入/读取，Redis 未启用时为 nil
type Leaderboard interface {
	UpdateAverage(ctx context.Context, position string, athleteID uint, averageScore int) error
	TopByPosition(ctx context.Context, position string, limit int64) ([]repository.LeaderboardEntry, error)
}

type FootballIQService struct {
	QuizRepo     *repository.QuizRepository
	AttemptRepo  *repository.QuizAttemptRepository
	ProgressRepo *repository.IQProgressRepository
	Leaderboard  Leaderboard
	DB           *gorm.DB

	locks *keyedMutex
	now   func() time.Time
}

func NewFootballIQService(
	quizRepo *repository.QuizRepository,
	attemptRepo *repository.QuizAttemptRepository,
	progressRepo *repository.IQProgressRepository,
	leaderboard Leaderboard,
	db *gorm.DB,
) *FootballIQService {
	return &FootballIQService{
		QuizRepo:     quizRepo,
		AttemptRepo:  attemptRepo,
		ProgressRepo: progressRepo,
		Leaderboard:  leaderboard,
		DB:           db,
		locks:        newKeyedMutex(),
		now:          time.Now,
	}
}

// ProgressOutcome 一次完成的测验对进度记录的贡献
type ProgressOutcome struct {
	QuizID    uint
	QuizTitle string
	Score     int
	IQLevel   model.IQLevel
	IsPassed  bool
}

// CalculateScore 正确率百分比，四舍五入；没有作答时为 0
func CalculateScore(answers []model.AttemptAnswer) int {
	if len(answers) == 0 {
		return 0
	}
	correct := 0
	for _, a := range answers {
		if a.IsCorrect {
			correct++
		}
	}
	return util.RoundDiv(100*correct, len(answers))
}

// ApplyOutcome 把一次结果累加进进度记录。
// CurrentIQLevel 取平均分的等级，不是本次得分的等级。
func ApplyOutcome(p *model.IQProgress, o ProgressOutcome, at time.Time) {
	p.QuizzesCompleted++
	if o.IsPassed {
		p.QuizzesPassed++
	}
	p.TotalScore += o.Score
	p.AverageScore = util.RoundDiv(p.TotalScore, p.QuizzesCompleted)
	p.CurrentIQLevel = CalculateIQLevel(p.AverageScore)

	history := make([]model.IQHistoryEntry, 0, len(p.History)+1)
	history = append(history, model.IQHistoryEntry{
		Date:      at,
		QuizID:    o.QuizID,
		QuizTitle: o.QuizTitle,
		Score:     o.Score,
		IQLevel:   o.IQLevel,
	})
	history = append(history, p.History...)
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date.After(history[j].Date)
	})
	if len(history) > model.MaxIQHistory {
		history = history[:model.MaxIQHistory]
	}
	p.History = history
	if p.LastAttemptAt == nil || at.After(*p.LastAttemptAt) {
		p.LastAttemptAt = &at
	}
}

func progressKey(athleteID uint, position string) string {
	return fmt.Sprintf("%d:%s", athleteID, position)
}

// StartAttempt 开始一次测验
func (s *FootballIQService) StartAttempt(ctx context.Context, athleteID, quizID uint) (*model.QuizAttempt, error) {
	quiz, err := s.QuizRepo.FindByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if !quiz.IsActive {
		return nil, util.ErrQuizInactive
	}

	attempt := &model.QuizAttempt{
		AthleteID: athleteID,
		QuizID:    quizID,
		Status:    model.AttemptStarted,
		StartedAt: s.now(),
		Answers:   []model.AttemptAnswer{},
	}
	if err := s.AttemptRepo.Create(ctx, attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

// gradeAnswers 题目存在时以服务端正确答案为准，否则保留客户端提交的 isCorrect。
// 测验已知时同一题只计第一次作答。
func (s *FootballIQService) gradeAnswers(ctx context.Context, quiz *model.Quiz, answers []model.AttemptAnswer) ([]model.AttemptAnswer, error) {
	if quiz == nil || len(answers) == 0 {
		graded := make([]model.AttemptAnswer, len(answers))
		copy(graded, answers)
		return graded, nil
	}

	questions, err := s.QuizRepo.ListQuestions(ctx, quiz.ID)
	if err != nil {
		return nil, err
	}
	correct := make(map[uint]string, len(questions))
	for _, q := range questions {
		correct[q.ID] = q.CorrectOptionID
	}

	graded := make([]model.AttemptAnswer, 0, len(answers))
	seen := make(map[uint]bool, len(answers))
	for _, a := range answers {
		if seen[a.QuestionID] {
			continue
		}
		seen[a.QuestionID] = true
		if c, ok := correct[a.QuestionID]; ok {
			a.IsCorrect = a.SelectedOptionID == c
		}
		graded = append(graded, a)
	}
	return graded, nil
}

// CompleteAttempt 提交作答：计算得分、写入作答结果，并在同一事务内更新进度。
// 测验已不存在时作答仍然完成，isPassed 为 false，且因位置未知不更新进度。
func (s *FootballIQService) CompleteAttempt(ctx context.Context, attemptID uint, answers []model.AttemptAnswer, timeSpentSeconds int) (*model.QuizAttempt, error) {
	ctx, span := tracing.Tracer.Start(ctx, "FootballIQService.CompleteAttempt")
	defer span.End()
	span.SetAttributes(attribute.Int64("attempt.id", int64(attemptID)))

	if timeSpentSeconds < 0 {
		return nil, util.ErrInvalidTimeSpent
	}

	attempt, err := s.AttemptRepo.FindByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Status != model.AttemptStarted {
		return nil, util.ErrAttemptNotInProgress
	}

	quiz, err := s.QuizRepo.FindByID(ctx, attempt.QuizID)
	if err != nil {
		if !errors.Is(err, util.ErrQuizNotFound) {
			return nil, err
		}
		logger.Log.Warn("quiz missing for attempt, completing without pass/progress",
			zap.Uint("attemptId", attempt.ID),
			zap.Uint("quizId", attempt.QuizID),
		)
		quiz = nil
	}

	graded, err := s.gradeAnswers(ctx, quiz, answers)
	if err != nil {
		return nil, err
	}

	score := CalculateScore(graded)
	isPassed := quiz != nil && score >= quiz.PassingScore
	attemptLevel := CalculateIQLevel(score)

	var (
		position string
		progress *model.IQProgress
	)
	if quiz != nil {
		position = quiz.Position
	}

	if position != "" {
		unlock := s.locks.Lock(progressKey(attempt.AthleteID, position))
		defer unlock()
	}
	// 持锁后取时间，保证同一 (athlete, position) 的完成时间与提交顺序一致
	completedAt := s.now()

	completed := *attempt
	completed.Status = model.AttemptCompleted
	completed.CompletedAt = &completedAt
	completed.Score = &score
	completed.TimeSpent = &timeSpentSeconds
	completed.IQLevel = &attemptLevel
	completed.IsPassed = &isPassed
	completed.Answers = graded

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.AttemptRepo.WithTx(tx).Complete(ctx, &completed); err != nil {
			return err
		}
		if position == "" {
			return nil
		}
		p, err := s.applyProgress(ctx, tx, attempt.AthleteID, position, ProgressOutcome{
			QuizID:    quiz.ID,
			QuizTitle: quiz.Title,
			Score:     score,
			IQLevel:   attemptLevel,
			IsPassed:  isPassed,
		}, completedAt)
		if err != nil {
			return err
		}
		progress = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.RecordAttempt(position, isPassed, score)
	if progress != nil {
		s.publishLeaderboard(ctx, progress)
	}

	logger.Log.Info("quiz attempt completed",
		zap.Uint("attemptId", completed.ID),
		zap.Uint("athleteId", completed.AthleteID),
		zap.Uint("quizId", completed.QuizID),
		zap.Int("score", score),
		zap.Bool("passed", isPassed),
		zap.String("attemptLevel", string(attemptLevel)),
	)

	*attempt = completed
	return attempt, nil
}

// UpdateProgress 进度记录唯一的写入口
func (s *FootballIQService) UpdateProgress(ctx context.Context, athleteID uint, position string, outcome ProgressOutcome) (*model.IQProgress, error) {
	if position == "" {
		return nil, fmt.Errorf("%w: position is required", util.ErrInvalidQuiz)
	}
	unlock := s.locks.Lock(progressKey(athleteID, position))
	defer unlock()

	var progress *model.IQProgress
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := s.applyProgress(ctx, tx, athleteID, position, outcome, s.now())
		progress = p
		return err
	})
	if err != nil {
		return nil, err
	}
	s.publishLeaderboard(ctx, progress)
	return progress, nil
}

// applyProgress 调用方需持有 (athlete, position) 锁并处于事务中
func (s *FootballIQService) applyProgress(ctx context.Context, tx *gorm.DB, athleteID uint, position string, outcome ProgressOutcome, at time.Time) (*model.IQProgress, error) {
	repo := s.ProgressRepo.WithTx(tx)
	p, err := repo.FindForUpdate(ctx, athleteID, position)
	if errors.Is(err, util.ErrProgressNotFound) {
		p = &model.IQProgress{
			AthleteID:      athleteID,
			Position:       position,
			CurrentIQLevel: model.IQLevelRookie,
			History:        []model.IQHistoryEntry{},
		}
	} else if err != nil {
		return nil, err
	}

	ApplyOutcome(p, outcome, at)
	if err := repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *FootballIQService) publishLeaderboard(ctx context.Context, p *model.IQProgress) {
	if s.Leaderboard == nil {
		return
	}
	if err := s.Leaderboard.UpdateAverage(ctx, p.Position, p.AthleteID, p.AverageScore); err != nil {
		logger.Log.Warn("failed to update leaderboard",
			zap.Error(err),
			zap.Uint("athleteId", p.AthleteID),
			zap.String("position", p.Position),
		)
	}
}

func (s *FootballIQService) GetAttempt(ctx context.Context, attemptID uint) (*model.QuizAttempt, error) {
	return s.AttemptRepo.FindByID(ctx, attemptID)
}

func (s *FootballIQService) ListAttempts(ctx context.Context, athleteID, quizID uint) ([]model.QuizAttempt, error) {
	return s.AttemptRepo.ListByAthlete(ctx, athleteID, quizID)
}

// GetProgress position 为空时返回该运动员所有位置的记录
func (s *FootballIQService) GetProgress(ctx context.Context, athleteID uint, position string) ([]model.IQProgress, error) {
	return s.ProgressRepo.ListByAthlete(ctx, athleteID, position)
}

func (s *FootballIQService) GetProgressByID(ctx context.Context, id uint) (*model.IQProgress, error) {
	return s.ProgressRepo.FindByID(ctx, id)
}

func (s *FootballIQService) GetLeaderboard(ctx context.Context, position string, limit int64) ([]repository.LeaderboardEntry, error) {
	if s.Leaderboard == nil {
		return []repository.LeaderboardEntry{}, nil
	}
	return s.Leaderboard.TopByPosition(ctx, position, limit)
}

// SweepAbandoned 把超过 ttl 仍未提交的作答标记为 abandoned
func (s *FootballIQService) SweepAbandoned(ctx context.Context, ttl time.Duration) (int64, error) {
	n, err := s.AttemptRepo.MarkAbandoned(ctx, s.now().Add(-ttl))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		monitoring.QuizAttemptsAbandoned.Add(float64(n))
		logger.Log.Info("abandoned quiz attempts swept", zap.Int64("count", n))
	}
	return n, nil
}
