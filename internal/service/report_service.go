package service

import (
	"code_plus_backend/internal/model"
	"code_plus_backend/internal/repository"
	"code_plus_backend/pkg/logger"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const dashboardCacheKey = "report:dashboard"
const dashboardCacheTTL = 60 * time.Second

// ReportService aggregates the numbers the admin dashboard shows and exports
// them as CSV.
type ReportService struct {
	UserRepo     *repository.UserRepository
	CourseRepo   *repository.CourseRepository
	ProgressRepo *repository.ProgressRepository
	LeadRepo     *repository.LeadRepository
	PaymentRepo  *repository.PaymentRepository
	Redis        *redis.Client
}

func NewReportService(
	userRepo *repository.UserRepository,
	courseRepo *repository.CourseRepository,
	progressRepo *repository.ProgressRepository,
	leadRepo *repository.LeadRepository,
	paymentRepo *repository.PaymentRepository,
	redisClient *redis.Client,
) *ReportService {
	return &ReportService{
		UserRepo:     userRepo,
		CourseRepo:   courseRepo,
		ProgressRepo: progressRepo,
		LeadRepo:     leadRepo,
		PaymentRepo:  paymentRepo,
		Redis:        redisClient,
	}
}

type Dashboard struct {
	Students          int64                  `json:"students"`
	Courses           int64                  `json:"courses"`
	Leads             map[string]int64       `json:"leads"`
	TotalRevenueCents int64                  `json:"totalRevenueCents"`
	MonthlyRevenue    []repository.RevenueRow `json:"monthlyRevenue"`
	GeneratedAt       time.Time              `json:"generatedAt"`
}

// GetDashboard serves a cached snapshot when one is fresh enough; the
// aggregates behind it walk several tables.
func (s *ReportService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, dashboardCacheKey).Result()
		if err == nil {
			var dash Dashboard
			if json.Unmarshal([]byte(cached), &dash) == nil {
				return &dash, nil
			}
		}
	}

	dash, err := s.buildDashboard()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(dash); err == nil {
			if err := s.Redis.Set(ctx, dashboardCacheKey, data, dashboardCacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache dashboard", zap.Error(err))
			}
		}
	}
	return dash, nil
}

func (s *ReportService) buildDashboard() (*Dashboard, error) {
	students, err := s.UserRepo.CountByRole(model.Student)
	if err != nil {
		return nil, err
	}

	_, courses, err := s.CourseRepo.ListAll(1, 1)
	if err != nil {
		return nil, err
	}

	leads, err := s.LeadRepo.CountByStatus()
	if err != nil {
		return nil, err
	}

	totalRevenue, err := s.PaymentRepo.TotalRevenue()
	if err != nil {
		return nil, err
	}

	monthly, err := s.PaymentRepo.MonthlyRevenue()
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Students:          students,
		Courses:           courses,
		Leads:             leads,
		TotalRevenueCents: totalRevenue,
		MonthlyRevenue:    monthly,
		GeneratedAt:       time.Now(),
	}, nil
}

// CourseProgressReport lists per-student completion for one course.
type CourseProgressRow struct {
	StudentID        uint    `json:"studentId"`
	StudentName      string  `json:"studentName"`
	StudentEmail     string  `json:"studentEmail"`
	LessonsCompleted int64   `json:"lessonsCompleted"`
	LessonsTotal     int64   `json:"lessonsTotal"`
	Percent          float64 `json:"percent"`
}

func (s *ReportService) CourseProgressReport(courseID uint) ([]CourseProgressRow, error) {
	total, err := s.ProgressRepo.CountLessonsInCourse(courseID)
	if err != nil {
		return nil, err
	}

	students, _, err := s.UserRepo.ListStudents("", 1, 1000)
	if err != nil {
		return nil, err
	}

	rows := make([]CourseProgressRow, 0, len(students))
	for _, student := range students {
		completed, err := s.ProgressRepo.CountCompletedInCourse(student.ID, courseID)
		if err != nil {
			return nil, err
		}
		row := CourseProgressRow{
			StudentID:        student.ID,
			StudentName:      student.Name,
			StudentEmail:     student.Email,
			LessonsCompleted: completed,
			LessonsTotal:     total,
		}
		if total > 0 {
			row.Percent = float64(completed) / float64(total) * 100
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ProgressCSV flattens a course progress report for file export.
func (s *ReportService) ProgressCSV(courseID uint) (header []string, records [][]string, err error) {
	rows, err := s.CourseProgressReport(courseID)
	if err != nil {
		return nil, nil, err
	}

	header = []string{"student_id", "name", "email", "lessons_completed", "lessons_total", "percent"}
	records = make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			strconv.FormatUint(uint64(row.StudentID), 10),
			row.StudentName,
			row.StudentEmail,
			strconv.FormatInt(row.LessonsCompleted, 10),
			strconv.FormatInt(row.LessonsTotal, 10),
			fmt.Sprintf("%.1f", row.Percent),
		})
	}
	return header, records, nil
}

// RevenueCSV flattens monthly revenue for file export.
func (s *ReportService) RevenueCSV() (header []string, records [][]string, err error) {
	monthly, err := s.PaymentRepo.MonthlyRevenue()
	if err != nil {
		return nil, nil, err
	}

	header = []string{"month", "amount_cents", "payments"}
	records = make([][]string, 0, len(monthly))
	for _, row := range monthly {
		records = append(records, []string{
			row.Month,
			strconv.FormatInt(row.AmountCents, 10),
			strconv.FormatInt(row.Count, 10),
		})
	}
	return header, records, nil
}
