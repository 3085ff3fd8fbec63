package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/hbasedef/hbasedef"
	"github.com/hbasedef/hbasedef/schema"
	"github.com/hbasedef/hbasedef/util"
)

// version and revision are set via -ldflags
var version = "dev"
var revision = "HEAD"

// Return parsed options
func parseOptions(args []string) *hbasedef.Options {
	// Track parsed configs in order
	var configs []schema.GeneratorConfig

	var opts struct {
		File    []string `long:"file" description:"Read desired schema from the file, rather than stdin" value-name:"schema_file" default:"-"`
		Output  string   `short:"o" long:"output" description:"Write the generated script to the file, rather than stdout" value-name:"script_file" default:"-"`
		Export  bool     `long:"export" description:"Just dump the current schema to stdout in canonical form"`
		Debug   bool     `long:"debug" description:"Pretty-print the computed schema changes before generating"`
		Help    bool     `long:"help" description:"Show this help"`
		Version bool     `long:"version" description:"Show this version"`

		// Custom handlers for config flags to preserve order
		Config       func(string) `long:"config" description:"YAML file to specify: target_tables, skip_tables (can be specified multiple times)"`
		ConfigInline func(string) `long:"config-inline" description:"YAML object to specify: target_tables, skip_tables (can be specified multiple times)"`
	}

	opts.Config = func(path string) {
		configs = append(configs, schema.ParseGeneratorConfig(path))
	}
	opts.ConfigInline = func(yaml string) {
		configs = append(configs, schema.ParseGeneratorConfigString(yaml))
	}

	parser := flags.NewParser(&opts, flags.None)
	parser.Usage = "[OPTIONS] current.yml < desired.yml"
	args, err := parser.ParseArgs(args)
	if err != nil {
		log.Fatal(err)
	}

	if opts.Help {
		parser.WriteHelp(os.Stdout)
		os.Exit(0)
	}

	if opts.Version {
		fmt.Printf("%s (%s)\n", version, revision)
		os.Exit(0)
	}

	desiredFile, currentFile := hbasedef.ParseFiles(opts.File)

	if len(args) == 1 {
		currentFile = args[0]
	} else if len(args) > 1 {
		fmt.Printf("Multiple current schema files are given: %v\n\n", args)
		parser.WriteHelp(os.Stdout)
		os.Exit(1)
	}
	if currentFile == "" {
		fmt.Print("No current schema file is specified!\n\n")
		parser.WriteHelp(os.Stdout)
		os.Exit(1)
	}

	return &hbasedef.Options{
		DesiredFile: desiredFile,
		CurrentFile: currentFile,
		OutputFile:  opts.Output,
		Export:      opts.Export,
		Debug:       opts.Debug,
		Config:      schema.MergeGeneratorConfigs(configs),
	}
}

func main() {
	util.InitSlog()
	options := parseOptions(os.Args[1:])
	hbasedef.Run(options)
}
