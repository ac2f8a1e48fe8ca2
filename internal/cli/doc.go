// Package cli is the interactive terminal front end of markbook.
//
// It wires configuration, the storage backend and the services into a REPL.
// Typical flow: register, log in, submit marks for the five subjects, then
// look at the stored marks or the report charts drawn as text bars.
//
// Commands that need a signed-in account answer "Please log in to access this
// page." until a login succeeds. The REPL is started with App.Run, which
// blocks until the user exits or input ends.
package cli
