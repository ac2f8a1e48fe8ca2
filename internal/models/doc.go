// Package models defines the markbook domain types: accounts, the fixed subject
// enumeration and per-account marks snapshots.
package models
