package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/job-tracker/internal/models"
)

func scored(score int, source string, created time.Time) models.Job {
	return models.Job{AIScore: &score, Source: source, CreatedAt: created}
}

func TestScoreDistribution(t *testing.T) {
	now := time.Now()
	jobs := []models.Job{
		scored(95, "", now),
		scored(90, "", now),
		scored(89, "", now),
		scored(50, "", now),
		scored(49, "", now),
		scored(0, "", now),
		{CreatedAt: now},
	}

	got := scoreDistribution(jobs)
	assert.Equal(t, []models.BucketCount{
		{Range: "90-100", Count: 2},
		{Range: "80-89", Count: 1},
		{Range: "70-79", Count: 0},
		{Range: "60-69", Count: 0},
		{Range: "50-59", Count: 1},
		{Range: "0-49", Count: 2},
		{Range: "unscored", Count: 1},
	}, got)
}

func TestSourceStats(t *testing.T) {
	now := time.Now()
	jobs := []models.Job{
		scored(90, "LinkedIn", now),
		scored(81, "LinkedIn", now),
		scored(70, "", now),
		{Source: "LinkedIn", CreatedAt: now},
	}

	got := sourceStats(jobs)
	assert.Equal(t, []models.SourceStat{
		{Source: "LinkedIn", Count: 3, AverageScore: 85.5},
		{Source: "Direct", Count: 1, AverageScore: 70},
	}, got)
}

func TestMonthlyStats(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	jobs := []models.Job{
		scored(80, "", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)),
		scored(71, "", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)),
		scored(60, "", time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)),
		scored(99, "", time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)),
	}

	got := monthlyStats(jobs, now)
	require.Len(t, got, 12)
	assert.Equal(t, "2024-04", got[0].Month)
	assert.Equal(t, models.MonthlyStat{Month: "2024-04", Count: 1, AverageScore: 60}, got[0])
	assert.Equal(t, models.MonthlyStat{Month: "2025-03", Count: 2, AverageScore: 75.5}, got[11])
	assert.Equal(t, models.MonthlyStat{Month: "2024-10"}, got[6])
}

func TestDashboardService(t *testing.T) {
	d := newTestDeps(t)
	high := d.createJob(t, "Head of AI", "Acme Analytics", aiLeadDescription)
	low := d.createJob(t, "Office Manager", "", "Run the office.")
	urgent := d.createJob(t, "CTO", "", "")
	closed := d.createJob(t, "Barista", "", "")

	require.NoError(t, d.jobs.UpdateScore(high.ID, 88))
	require.NoError(t, d.jobs.UpdateScore(low.ID, 30))
	require.NoError(t, d.jobs.Update(urgent.ID, map[string]interface{}{"priority": models.PriorityUrgent}))
	require.NoError(t, d.jobs.Update(closed.ID, map[string]interface{}{"status": models.JobStatusRejected}))
	require.NoError(t, d.apps.Create(&models.Application{JobID: high.ID, ApplicationDate: time.Now(), InterviewCount: 2}))

	svc := NewDashboardService(d.jobs, d.apps)
	dash, err := svc.Dashboard()
	require.NoError(t, err)

	assert.Equal(t, models.DashboardStats{TotalJobs: 4, HighPriority: 2, Applications: 1, Interviews: 2}, dash.Stats)
	require.Len(t, dash.TopJobs, 2)
	assert.Equal(t, high.ID, dash.TopJobs[0].ID)
	assert.Equal(t, low.ID, dash.TopJobs[1].ID)
	assert.Len(t, dash.Pipeline, 3)
	for _, job := range dash.Pipeline {
		assert.NotEqual(t, closed.ID, job.ID)
	}

	analytics, err := svc.Analytics()
	require.NoError(t, err)
	assert.Equal(t, 1, analytics.ScoreDistribution[1].Count)
	assert.Equal(t, 2, analytics.ScoreDistribution[6].Count)
	require.Len(t, analytics.Sources, 1)
	assert.Equal(t, models.SourceStat{Source: "Direct", Count: 4, AverageScore: 59}, analytics.Sources[0])
}
