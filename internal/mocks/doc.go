// Package mocks provides hand-written test doubles for the store and
// collaborator interfaces. Each mock exposes Fn fields to override behavior
// per test and falls back to a simple in-memory implementation.
package mocks
