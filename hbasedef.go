package hbasedef

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/k0kubun/pp/v3"
	"golang.org/x/term"

	"github.com/hbasedef/hbasedef/schema"
	"github.com/hbasedef/hbasedef/scripter"
)

type Options struct {
	DesiredFile string
	CurrentFile string
	OutputFile  string
	Export      bool
	Debug       bool
	Config      schema.GeneratorConfig
}

// Main function shared by the command
func Run(options *Options) {
	currentSource, err := ReadFile(options.CurrentFile)
	if err != nil {
		log.Fatalf("Failed to read '%s': %s", options.CurrentFile, err)
	}
	current, err := schema.ParseSchema(currentSource)
	if err != nil {
		log.Fatalf("Error in '%s': %s", options.CurrentFile, err)
	}

	if options.Export {
		out, err := schema.ExportSchema(current)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(out)
		return
	}

	desiredSource, err := ReadFile(options.DesiredFile)
	if err != nil {
		log.Fatalf("Failed to read '%s': %s", options.DesiredFile, err)
	}
	desired, err := schema.ParseSchema(desiredSource)
	if err != nil {
		log.Fatalf("Error in '%s': %s", options.DesiredFile, err)
	}

	changes := schema.FilterTables(schema.DiffSchemas(current, desired), options.Config)
	if options.Debug {
		pp.Fprintln(os.Stderr, changes)
	}
	if !hasModifications(changes) {
		fmt.Println("# Nothing is modified")
		return
	}

	script, err := scripter.Generate(changes)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := writeOutput(options.OutputFile, script); err != nil {
		log.Fatalf("Failed to write '%s': %s", options.OutputFile, err)
	}
}

func hasModifications(changes []schema.SchemaChange) bool {
	for _, c := range changes {
		if c.Type != schema.ChangeIgnore {
			return true
		}
	}
	return false
}

// TODO: Warn if both the second --file and a current argument are specified
func ParseFiles(files []string) (string, string) {
	if len(files) == 0 {
		panic("ParseFiles got empty files") // assume default:"-"
	}

	desiredFile := files[0]
	currentFile := ""
	if len(files) == 2 {
		desiredFile = files[1]
		currentFile = files[0]
	} else if len(files) > 2 {
		fmt.Printf("Expected only one or two --file options, but got: %v\n", files)
		os.Exit(1)
	}
	return desiredFile, currentFile
}

func ReadFile(filepath string) ([]byte, error) {
	if filepath == "-" {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, fmt.Errorf("stdin is not piped")
		}
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(filepath)
}

func writeOutput(filepath string, script string) error {
	if filepath == "-" {
		fmt.Print(script)
		return nil
	}
	return os.WriteFile(filepath, []byte(script), 0644)
}
