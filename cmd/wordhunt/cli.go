package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/wordhunt"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Searcher wordhunt.Searcher

	// Runs is nil when history is disabled.
	Runs wordhunt.RunService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `name:"db" env:"WORDHUNT_DB" help:"Path to the history database"`
	Verbose bool   `short:"v" help:"Log every fetch to stderr"`

	Search  SearchCmd  `cmd:"" help:"Search for a word breadth-first from a seed URL"`
	History HistoryCmd `cmd:"" help:"List recorded searches"`
	Show    ShowCmd    `cmd:"" help:"Show a recorded search with its visit trace"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a recorded search"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Seed      string        `arg:"" help:"Seed URL"`
	Word      string        `arg:"" help:"Word to look for (case-insensitive)"`
	MaxPages  int           `short:"n" name:"max-pages" default:"10" help:"Maximum number of pages to visit"`
	Timeout   time.Duration `default:"10s" env:"WORDHUNT_TIMEOUT" help:"Per-request timeout"`
	Fetcher   string        `enum:"http,colly" default:"http" help:"Page fetcher (http, colly)"`
	Text      string        `enum:"body,readability,trafilatura,markdown" default:"body" help:"Text extraction (body, readability, trafilatura, markdown)"`
	Comments  bool          `help:"Include reader comments in trafilatura text"`
	SameHost  bool          `help:"Only follow links on the page's own host"`
	NoHistory bool          `help:"Do not record the search"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Limit int    `short:"l" default:"20" help:"Maximum number of searches to list"`
	Word  string `help:"Only list searches for this word"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Search ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID string `arg:"" help:"Search ID"`
}
