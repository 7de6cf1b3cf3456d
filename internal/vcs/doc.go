// Package vcs keeps the store's git history.
//
// Every mutating operation ends with one commit describing it, so the
// store's full history is browsable with ordinary git tooling and can be
// synchronized by hand with git remotes. History is bookkeeping, not a
// dependency: when git is missing or the store is not a repository, the
// secret operation still completes and only the commit is skipped.
package vcs
