// Package accounts persists registered accounts.
//
// The store is a whole mapping from email to account. Two implementations
// exist:
//
//   - DocumentRepository keeps the mapping as one JSON document in a
//     blob.Store and rewrites it completely on every mutation. Registering also
//     provisions the account's blob namespace used by the marks store.
//   - SQLRepository keeps one row per account in an "accounts" table and
//     performs Create and Save inside a transaction.
//
// An absent store reads as an empty mapping. Unreadable or corrupt data is
// returned wrapped in common.ErrStorageFailure.
package accounts
