package main

import (
	"flag"
	"strings"
	"time"

	"github.com/reqres-qa/reqres-contract-tests/config"
	"github.com/reqres-qa/reqres-contract-tests/framework/ldtest"

	"github.com/alessio/shellescape"
)

type commandParams struct {
	baseURL    string
	apiKey     string
	replayFile string
	timeout    time.Duration
	filters    ldtest.RegexFilters
	debug      bool
	debugAll   bool

	loaded config.Config
}

// Read parses the command line. Values from the loaded configuration are used as flag defaults,
// so anything given on the command line takes precedence.
func (c *commandParams) Read(args []string, defaults *config.Config) bool {
	c.loaded = *defaults
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.StringVar(&c.baseURL, "url", defaults.BaseURL, "base URL of the service under test")
	fs.StringVar(&c.apiKey, "api-key", defaults.APIKey, "API key sent with every request")
	fs.StringVar(&c.replayFile, "replay", defaults.ReplayFile, "serve responses from a recording instead of the network")
	fs.DurationVar(&c.timeout, "timeout", defaults.Timeout, "timeout for each HTTP request")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	// the flag set has already reported the error and printed usage
	return fs.Parse(args[1:]) == nil
}

// Apply copies the command-line values over the loaded configuration.
func (c *commandParams) Apply(cfg *config.Config) {
	cfg.BaseURL = c.baseURL
	cfg.APIKey = c.apiKey
	cfg.ReplayFile = c.replayFile
	cfg.Timeout = c.timeout
}

// RerunCommand returns a command line that runs only the given failed tests with the same
// connection settings. Settings that came from the command line are repeated; the rest are
// loaded from the environment and .env file again.
func (c *commandParams) RerunCommand(program string, failures []ldtest.TestResult) string {
	var b commandBuilder
	b.add(program)
	if c.baseURL != c.loaded.BaseURL {
		b.add("-url", c.baseURL)
	}
	if c.apiKey != c.loaded.APIKey {
		b.add("-api-key", c.apiKey)
	}
	if c.replayFile != c.loaded.ReplayFile {
		b.add("-replay", c.replayFile)
	}
	if c.timeout != c.loaded.Timeout {
		b.add("-timeout", c.timeout.String())
	}
	for _, f := range failures {
		b.add("-run", ldtest.PathMatch(f.TestID))
	}
	b.add("-debug")
	return b.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
