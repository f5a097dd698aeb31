package main

import (
	"context"
	"io"

	"github.com/fwojciec/wikicorpus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Categories   wikicorpus.CategoryService
	Pages        wikicorpus.PageService
	Authors      wikicorpus.AuthorService
	Documents    wikicorpus.DocumentWriter
	Corpora      wikicorpus.CorpusService
	TokenCounter wikicorpus.TokenCounter
}

// FetchCmd handles the main fetch operation.
type FetchCmd struct {
	Category        string
	Name            string
	Language        string
	Preview         bool
	Depth           int
	Threshold       int
	Keywords        []string
	SummaryFallback bool
	Authors         bool
	CycleGuard      bool
	Concurrency     int
}
