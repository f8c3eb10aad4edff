package main

import "time"

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URLs    []string      `name:"urls" sep:"none" help:"URL to scrape instead of the configured sources (repeatable)"`
	Out     string        `short:"o" type:"path" help:"Write JSON output to this file instead of stdout"`
	Config  string        `short:"c" type:"path" help:"Load sources from this YAML file instead of the built-in list"`
	Timeout time.Duration `short:"t" default:"45s" help:"HTTP timeout per request"`
	Rate    float64       `default:"2" help:"Maximum HTTP requests per second to one host (0 disables)"`
	Verbose bool          `short:"v" help:"Log debug output"`
}
