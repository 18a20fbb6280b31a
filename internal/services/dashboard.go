package services

import (
	"math"
	"time"

	"alfredoptarigan/job-tracker/internal/models"
	"alfredoptarigan/job-tracker/internal/repositories"
)

// HighPriorityScore is the score from which a job counts as high priority on
// the dashboard regardless of its priority field.
const HighPriorityScore = 80

const (
	dashboardTopJobs  = 10
	dashboardPipeline = 20
	analyticsMonths   = 12
)

var scoreBuckets = []struct {
	label    string
	min, max int
}{
	{"90-100", 90, 100},
	{"80-89", 80, 89},
	{"70-79", 70, 79},
	{"60-69", 60, 69},
	{"50-59", 50, 59},
	{"0-49", 0, 49},
}

const unscoredBucket = "unscored"

type DashboardService interface {
	Dashboard() (*models.DashboardResponse, error)
	Analytics() (*models.AnalyticsResponse, error)
}

type dashboardService struct {
	jobRepo repositories.JobRepository
	appRepo repositories.ApplicationRepository
	now     func() time.Time
}

func NewDashboardService(jobRepo repositories.JobRepository, appRepo repositories.ApplicationRepository) DashboardService {
	return &dashboardService{
		jobRepo: jobRepo,
		appRepo: appRepo,
		now:     time.Now,
	}
}

func (s *dashboardService) Dashboard() (*models.DashboardResponse, error) {
	var (
		stats models.DashboardStats
		err   error
	)

	if stats.TotalJobs, err = s.jobRepo.Count(); err != nil {
		return nil, err
	}
	if stats.HighPriority, err = s.jobRepo.CountHighPriority(HighPriorityScore); err != nil {
		return nil, err
	}
	if stats.Applications, err = s.appRepo.Count(); err != nil {
		return nil, err
	}
	if stats.Interviews, err = s.appRepo.CountInterviews(); err != nil {
		return nil, err
	}

	minScore := 0
	top, err := s.jobRepo.List(repositories.JobFilter{MinScore: &minScore, Limit: dashboardTopJobs})
	if err != nil {
		return nil, err
	}

	pipeline, err := s.jobRepo.Pipeline(dashboardPipeline)
	if err != nil {
		return nil, err
	}

	return &models.DashboardResponse{Stats: stats, TopJobs: top, Pipeline: pipeline}, nil
}

// Analytics computes the score distribution, per-source averages and the
// monthly trend over every stored job.
func (s *dashboardService) Analytics() (*models.AnalyticsResponse, error) {
	jobs, err := s.jobRepo.List(repositories.JobFilter{})
	if err != nil {
		return nil, err
	}

	return &models.AnalyticsResponse{
		ScoreDistribution: scoreDistribution(jobs),
		Sources:           sourceStats(jobs),
		Monthly:           monthlyStats(jobs, s.now()),
	}, nil
}

func scoreDistribution(jobs []models.Job) []models.BucketCount {
	counts := make(map[string]int, len(scoreBuckets)+1)
	for _, job := range jobs {
		if job.AIScore == nil {
			counts[unscoredBucket]++
			continue
		}
		for _, b := range scoreBuckets {
			if *job.AIScore >= b.min && *job.AIScore <= b.max {
				counts[b.label]++
				break
			}
		}
	}

	out := make([]models.BucketCount, 0, len(scoreBuckets)+1)
	for _, b := range scoreBuckets {
		out = append(out, models.BucketCount{Range: b.label, Count: counts[b.label]})
	}
	return append(out, models.BucketCount{Range: unscoredBucket, Count: counts[unscoredBucket]})
}

type scoreTally struct {
	count  int
	scored int
	sum    int
}

func (t *scoreTally) add(job models.Job) {
	t.count++
	if job.AIScore != nil {
		t.scored++
		t.sum += *job.AIScore
	}
}

func (t *scoreTally) average() float64 {
	if t.scored == 0 {
		return 0
	}
	return math.Round(float64(t.sum)/float64(t.scored)*10) / 10
}

// sourceStats keeps sources in order of first appearance. Jobs without a
// source are grouped as "Direct".
func sourceStats(jobs []models.Job) []models.SourceStat {
	tallies := map[string]*scoreTally{}
	var order []string
	for _, job := range jobs {
		source := orDefault(job.Source, "Direct")
		t, ok := tallies[source]
		if !ok {
			t = &scoreTally{}
			tallies[source] = t
			order = append(order, source)
		}
		t.add(job)
	}

	out := make([]models.SourceStat, 0, len(order))
	for _, source := range order {
		t := tallies[source]
		out = append(out, models.SourceStat{Source: source, Count: t.count, AverageScore: t.average()})
	}
	return out
}

// monthlyStats covers the last twelve calendar months, oldest first, and
// includes months without jobs.
func monthlyStats(jobs []models.Job, now time.Time) []models.MonthlyStat {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(analyticsMonths - 1), 0)

	tallies := make(map[string]*scoreTally, analyticsMonths)
	months := make([]string, 0, analyticsMonths)
	for i := 0; i < analyticsMonths; i++ {
		key := start.AddDate(0, i, 0).Format("2006-01")
		tallies[key] = &scoreTally{}
		months = append(months, key)
	}

	for _, job := range jobs {
		if t, ok := tallies[job.CreatedAt.In(now.Location()).Format("2006-01")]; ok {
			t.add(job)
		}
	}

	out := make([]models.MonthlyStat, 0, analyticsMonths)
	for _, month := range months {
		t := tallies[month]
		out = append(out, models.MonthlyStat{Month: month, Count: t.count, AverageScore: t.average()})
	}
	return out
}
