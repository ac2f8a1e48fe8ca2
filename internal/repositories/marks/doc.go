// Package marks persists the single marks snapshot of each account.
//
// CSVRepository writes "<email>/marks.csv" into the account's blob namespace:
// a header row with the subject names followed by one row of integer marks.
// SQLRepository keeps one row per account in the marks table.
//
// Both refuse to write for an email that has no provisioned account and
// report a missing snapshot as common.ErrNotFound.
package marks
