package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/markbook/internal/models"
)

// getScore is a test seam for GetScore.
var getScore = GetScore

// Submit asks for a mark per subject, in subject order, and stores them as the
// account's snapshot.
func (a *App) Submit(ctx context.Context) error {
	email, err := a.session.RequireAuthenticated()
	if err != nil {
		return a.fail(ctx, err)
	}

	a.println("Welcome", email)
	scores := models.Scores{}
	for _, subj := range models.Subjects() {
		v, err := getScore(a.reader, string(subj), a.out)
		if err != nil {
			return a.fail(ctx, err)
		}
		scores[subj] = v
	}

	if _, err := a.marks.Submit(ctx, email, scores); err != nil {
		return a.fail(ctx, err)
	}
	a.println("Marks submitted successfully!")
	return nil
}

// Show prints the stored marks of the signed-in account.
func (a *App) Show(ctx context.Context) error {
	email, err := a.session.RequireAuthenticated()
	if err != nil {
		return a.fail(ctx, err)
	}

	snap, err := a.marks.Fetch(ctx, email)
	if err != nil {
		return a.fail(ctx, err)
	}
	for _, subj := range models.Subjects() {
		fmt.Fprintf(a.out, "%-5s %3d\n", subj, snap.Scores[subj])
	}
	return nil
}

// Report draws the three report charts of the signed-in account.
func (a *App) Report(ctx context.Context) error {
	r, err := a.reports.Build(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}
	a.println("Your Reports are Ready!")
	renderReport(a.out, r)
	return nil
}
