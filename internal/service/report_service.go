package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/studytrack-io/studytrack/internal/domain/models"
	"github.com/studytrack-io/studytrack/internal/domain/repository"
)

// minutesPerWeightUnit scales a subject's weight into recommended study
// minutes for the day.
const minutesPerWeightUnit = 30

const dateLayout = "2006-01-02"

// ReportService aggregates finished sessions into daily and weekly
// summaries and turns subject weights into a daily recommendation.
type ReportService struct {
	sessionRepo repository.StudySessionRepository
	subjectRepo repository.SubjectRepository
	now         func() time.Time
}

func NewReportService(sessionRepo repository.StudySessionRepository, subjectRepo repository.SubjectRepository) *ReportService {
	return &ReportService{
		sessionRepo: sessionRepo,
		subjectRepo: subjectRepo,
		now:         time.Now,
	}
}

// Daily reports the minutes studied per subject on the given day. Each
// session contributes floor(duration_sec / 60) minutes.
func (s *ReportService) Daily(ctx context.Context, userID int64, date time.Time) (*models.DailyReport, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.Add(24 * time.Hour)

	sessions, err := s.sessionRepo.FindRangeWithSubject(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	bySubject, total := aggregate(sessions)
	return &models.DailyReport{
		Date:             start.Format(dateLayout),
		TotalDurationMin: total,
		BySubject:        bySubject,
	}, nil
}

// Weekly reports the Monday-to-Sunday week containing the given day.
func (s *ReportService) Weekly(ctx context.Context, userID int64, date time.Time) (*models.WeeklyReport, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	offset := (int(day.Weekday()) + 6) % 7
	weekStart := day.AddDate(0, 0, -offset)
	weekEnd := weekStart.AddDate(0, 0, 7)

	sessions, err := s.sessionRepo.FindRangeWithSubject(ctx, userID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	bySubject, total := aggregate(sessions)
	return &models.WeeklyReport{
		WeekStart:        weekStart.Format(dateLayout),
		WeekEnd:          weekEnd.AddDate(0, 0, -1).Format(dateLayout),
		TotalDurationMin: total,
		BySubject:        bySubject,
	}, nil
}

// RecommendToday suggests study minutes per active subject, highest weight
// first.
func (s *ReportService) RecommendToday(ctx context.Context, userID int64) (*models.TodayRecommendation, error) {
	subjects, err := s.subjectRepo.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	recommended := make([]models.RecommendedSubject, 0, len(subjects))
	for _, subject := range subjects {
		recommended = append(recommended, models.RecommendedSubject{
			SubjectID:      subject.ID,
			SubjectName:    subject.Name,
			Weight:         subject.Weight,
			RecommendedMin: int(math.Round(subject.Weight * minutesPerWeightUnit)),
		})
	}
	sort.SliceStable(recommended, func(i, j int) bool {
		return recommended[i].Weight > recommended[j].Weight
	})

	return &models.TodayRecommendation{
		Today:       s.now().Format(dateLayout),
		Recommended: recommended,
	}, nil
}

// aggregate folds report sessions into per-subject minute totals, ordered
// by descending minutes. Minutes are floored per session, not per subject.
func aggregate(sessions []models.ReportSession) ([]models.SubjectDuration, int) {
	minutes := make(map[int64]int)
	names := make(map[int64]string)
	for _, sess := range sessions {
		minutes[sess.SubjectID] += sess.DurationSec / 60
		names[sess.SubjectID] = sess.SubjectName
	}

	bySubject := make([]models.SubjectDuration, 0, len(minutes))
	total := 0
	for id, min := range minutes {
		bySubject = append(bySubject, models.SubjectDuration{
			SubjectID:   id,
			SubjectName: names[id],
			DurationMin: min,
		})
		total += min
	}
	sort.Slice(bySubject, func(i, j int) bool {
		if bySubject[i].DurationMin != bySubject[j].DurationMin {
			return bySubject[i].DurationMin > bySubject[j].DurationMin
		}
		return bySubject[i].SubjectID < bySubject[j].SubjectID
	})
	return bySubject, total
}
