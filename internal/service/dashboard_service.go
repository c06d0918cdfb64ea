package service

import (
	"context"
	"sort"

	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/model"
)

// DashboardService composes the consolidated cohort payload from the
// progress pipeline. Purely a read path; each call reclassifies the
// full student set.
type DashboardService struct {
	progress *ProgressService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(progress *ProgressService) *DashboardService {
	return &DashboardService{
		progress: progress,
	}
}

// CohortCompleteData assembles the full cohort dashboard, optionally
// filtered to cohorts admitted in the given year (0 means all).
func (s *DashboardService) CohortCompleteData(ctx context.Context, year int) (*model.CohortCompleteData, error) {
	if year != 0 && (year < 1000 || year > 9999) {
		return nil, model.NewValidationError("year", "must be a 4-digit year")
	}

	classifications, cohorts, err := s.progress.ClassifyAll(ctx, year)
	if err != nil {
		return nil, err
	}

	data := &model.CohortCompleteData{
		Students:               classifications,
		StatusDistribution:     make(map[model.StudentStatus]int),
		Distribution:           distributionOf(classifications),
		GraduationRequirements: IncompleteRequirements(classifications),
		Timeline:               timelineOf(classifications),
		CohortComparison:       CompareCohorts(classifications),
		GraduationMetrics:      GraduationMetricsOf(classifications),
		Cohorts:                cohorts,
	}

	for _, c := range classifications {
		data.StatusDistribution[c.Status]++
	}

	return data, nil
}

func timelineOf(classifications []model.StudentClassification) []model.TimelineEntry {
	byYear := make(map[int]*model.TimelineEntry)
	for _, c := range classifications {
		entry := byYear[c.CohortYear]
		if entry == nil {
			entry = &model.TimelineEntry{Year: c.CohortYear}
			byYear[c.CohortYear] = entry
		}
		if c.Regular {
			entry.Regular++
		} else {
			entry.Irregular++
		}
	}

	timeline := make([]model.TimelineEntry, 0, len(byYear))
	for _, entry := range byYear {
		timeline = append(timeline, *entry)
	}
	sort.Slice(timeline, func(i, j int) bool {
		return timeline[i].Year < timeline[j].Year
	})
	return timeline
}
