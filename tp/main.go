// Command tp processes a file of transaction records and prints the final
// per-client account snapshot as CSV on stdout.
//
// Usage:
//
//	tp [-log file] <transactions.csv>
//
// The run exits 0 when the stream was fully consumed, even if individual
// records were rejected and skipped; diagnostics about skipped records go
// to stderr, or to the file given with -log.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	processor "github.com/MarekSosnicki/transaction-processor"
)

var logFile = flag.String("log", "", "append diagnostics to this file instead of stderr")

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-log file] <transactions.csv>\n", os.Args[0])
		os.Exit(2)
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file %q: %v\n", *logFile, err)
			os.Exit(1)
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	in, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening input file %q: %v\n", flag.Arg(0), err)
		os.Exit(1)
	}
	defer in.Close()

	if err := processor.Process(in, os.Stdout, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", flag.Arg(0), err)
		os.Exit(1)
	}
}
