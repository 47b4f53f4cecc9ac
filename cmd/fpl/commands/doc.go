// Package commands implements the fpl command line interface.
//
// Subcommands:
//
//	calc    evaluate a single household
//	report  evaluate every household in a configuration file
//	table   print a year's guideline table
//	serve   run the HTTP API
package commands
