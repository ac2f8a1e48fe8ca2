// Package report derives chart-ready series from marks snapshots. Every
// function is pure and lists subjects in declared order. Aggregating an empty
// input yields common.ErrNoData instead of empty or zero series.
package report

import (
	"github.com/dmitrijs2005/markbook/internal/common"
	"github.com/dmitrijs2005/markbook/internal/models"
)

// Point is one subject's value in the average series.
type Point struct {
	Subject models.Subject
	Value   float64
}

// DistributionPoint is one subject's total and its share of the total over all
// subjects.
type DistributionPoint struct {
	Subject models.Subject
	Total   int
	Share   float64
}

// RawPoint holds one subject's marks in snapshot order.
type RawPoint struct {
	Subject models.Subject
	Scores  []int
}

// Report bundles the three series of one aggregation.
type Report struct {
	Snapshots    int
	Average      []Point
	Distribution []DistributionPoint
	Raw          []RawPoint
}

// Aggregate computes every series over snaps.
func Aggregate(snaps []models.Snapshot) (*Report, error) {
	avg, err := Average(snaps)
	if err != nil {
		return nil, err
	}
	dist, err := Distribution(snaps)
	if err != nil {
		return nil, err
	}
	raw, err := Raw(snaps)
	if err != nil {
		return nil, err
	}
	return &Report{Snapshots: len(snaps), Average: avg, Distribution: dist, Raw: raw}, nil
}

// Average returns the per-subject mean.
func Average(snaps []models.Snapshot) ([]Point, error) {
	if len(snaps) == 0 {
		return nil, common.ErrNoData
	}
	n := float64(len(snaps))
	out := make([]Point, 0, len(models.Subjects()))
	for _, subj := range models.Subjects() {
		out = append(out, Point{Subject: subj, Value: float64(sum(snaps, subj)) / n})
	}
	return out, nil
}

// Distribution returns the per-subject sum. Shares are zero when every total
// is zero.
func Distribution(snaps []models.Snapshot) ([]DistributionPoint, error) {
	if len(snaps) == 0 {
		return nil, common.ErrNoData
	}
	out := make([]DistributionPoint, 0, len(models.Subjects()))
	grand := 0
	for _, subj := range models.Subjects() {
		t := sum(snaps, subj)
		grand += t
		out = append(out, DistributionPoint{Subject: subj, Total: t})
	}
	if grand > 0 {
		for i := range out {
			out[i].Share = float64(out[i].Total) / float64(grand)
		}
	}
	return out, nil
}

// Raw returns the marks of every snapshot grouped by subject.
func Raw(snaps []models.Snapshot) ([]RawPoint, error) {
	if len(snaps) == 0 {
		return nil, common.ErrNoData
	}
	out := make([]RawPoint, 0, len(models.Subjects()))
	for _, subj := range models.Subjects() {
		scores := make([]int, len(snaps))
		for i, s := range snaps {
			scores[i] = s.Scores[subj]
		}
		out = append(out, RawPoint{Subject: subj, Scores: scores})
	}
	return out, nil
}

func sum(snaps []models.Snapshot, subj models.Subject) int {
	t := 0
	for _, s := range snaps {
		t += s.Scores[subj]
	}
	return t
}
