package letter

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/job-tracker/internal/profile"
	"alfredoptarigan/job-tracker/internal/scoring"
)

var letterDate = time.Date(2025, time.March, 7, 9, 0, 0, 0, time.UTC)

func newTestComposer() *Composer {
	return NewComposer(profile.Candidate{
		Name:           "Alex Doe",
		CurrentRole:    "Head of Design",
		CurrentCompany: "Acme Labs",
		Email:          "alex@example.com",
	}, DefaultTemplates())
}

func TestComposer_SelectStyle(t *testing.T) {
	c := newTestComposer()

	tests := []struct {
		name string
		job  scoring.JobRecord
		want string
	}{
		{"executive", scoring.JobRecord{Title: "Chief Design Officer", Description: "executive leadership and strategic direction"}, StyleExecutive},
		{"ai", scoring.JobRecord{Title: "Machine Learning Lead", Description: "automation with artificial intelligence"}, StyleAI},
		{"design", scoring.JobRecord{Title: "Product Designer", Description: "user experience, design system and UI craft"}, StyleDesign},
		{"consulting", scoring.JobRecord{Title: "Consultant", Description: "process optimization for consulting clients"}, StyleConsulting},
		{"no keywords falls back to first style", scoring.JobRecord{Title: "Barista"}, StyleExecutive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.SelectStyle(&tt.job))
		})
	}
}

func TestComposer_ComposeAuto(t *testing.T) {
	c := newTestComposer()
	job := &scoring.JobRecord{
		Title:       "Product Designer",
		CompanyName: "Globex",
		Industry:    "Technology",
		Location:    "Sydney, NSW",
		Description: "Own the design system and user experience of our platform.",
	}

	l, err := c.Compose(job, Options{Date: letterDate})
	require.NoError(t, err)

	assert.Equal(t, StyleDesign, l.Style)
	assert.True(t, l.AutoSelected)
	assert.Contains(t, l.Opening, "Product Designer role at Globex")
	require.Len(t, l.Body, 3)
	assert.True(t, strings.HasPrefix(l.Body[0], "In my current role as Head of Design at Acme Labs"))
	assert.Contains(t, l.Body[2], "particularly well-suited for Globex")
	assert.Contains(t, l.CallToAction, "Globex's continued success")

	assert.True(t, strings.HasPrefix(l.FullText, "Alex Doe\nEmail: alex@example.com\n\nMarch 07, 2025\n\nHiring Manager\nGlobex\nSydney, NSW\n\nDear Hiring Manager,\n\n"))
	assert.Contains(t, l.FullText, "Sincerely,\n\nAlex Doe\n")
	assert.True(t, strings.HasSuffix(l.FullText, "Attachments: Resume, Portfolio samples\n"))
}

func TestComposer_ComposeWithOverrideAndScore(t *testing.T) {
	c := newTestComposer()
	job := &scoring.JobRecord{Title: "Product Designer", CompanyName: "Globex"}
	score := &scoring.ScoreResult{StrongMatches: []string{"Design Strategy", "UX", "Design Systems", "Roadmaps"}}

	l, err := c.Compose(job, Options{Style: StyleConsulting, ContactPerson: "Sam Lee", Score: score, Date: letterDate})
	require.NoError(t, err)

	assert.Equal(t, StyleConsulting, l.Style)
	assert.False(t, l.AutoSelected)
	require.Len(t, l.Body, 3)
	assert.Equal(t, "My strongest alignment with this role lies in Design Strategy, UX and Design Systems.", l.Body[2])
	assert.Contains(t, l.FullText, "Dear Sam Lee,")
}

func TestComposer_UnknownStyle(t *testing.T) {
	_, err := newTestComposer().Compose(&scoring.JobRecord{Title: "x"}, Options{Style: "poetry"})
	assert.True(t, errors.Is(err, ErrUnknownStyle))
}

func TestComposer_NilJob(t *testing.T) {
	_, err := newTestComposer().Compose(nil, Options{})
	var nf *scoring.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestComposer_MissingCompanyAndRole(t *testing.T) {
	c := NewComposer(profile.Candidate{}, DefaultTemplates())
	l, err := c.Compose(&scoring.JobRecord{Title: "Director"}, Options{Date: letterDate})
	require.NoError(t, err)

	assert.Contains(t, l.Opening, "at your organization")
	assert.True(t, strings.HasPrefix(l.Body[0], "In my recent work,"))
	assert.True(t, strings.HasPrefix(l.FullText, "\nMarch 07, 2025"))
}

func TestComposer_RelevantInnovation(t *testing.T) {
	c := newTestComposer()
	job := &scoring.JobRecord{Description: "We want centres of excellence for service design in large enterprises"}
	assert.Equal(t, DefaultTemplates().Innovations[2], c.relevantInnovation(job))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "CoverLetter_Acme_Co__Head_of_UX_20250307.md", FileName("Acme Co.", "Head of UX", letterDate))
}

func TestComposer_Styles(t *testing.T) {
	assert.Equal(t, []string{StyleExecutive, StyleAI, StyleDesign, StyleConsulting}, newTestComposer().Styles())
}
