package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gqlkit/queryjson/internal/ast"
	"github.com/gqlkit/queryjson/internal/astjson"
	"github.com/gqlkit/queryjson/internal/language"
	"github.com/gqlkit/queryjson/internal/text"
)

const rootUsage = `queryjson — GraphQL query document tools

USAGE:
  queryjson <command> [flags] [file]

COMMANDS:
  encode           Parse a query document and print its canonical JSON
  check            Parse a query document and report errors
  help             Show help for any command
`

const encodeUsage = `encode FLAGS:
  -pretty      Indent the JSON output
  -out <file>  Write JSON to file (default: stdout)
  [file]       Query document to read (default: stdin)
`

const checkUsage = `check FLAGS:
  [file]  Query document to read (default: stdin)
  (Exits non-zero with the parse error on failure)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := args[0]
	cmdArgs := args[1:]
	switch cmd {
	case "encode":
		return cmdEncode(cmdArgs)
	case "check":
		return cmdCheck(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "encode":
		fmt.Print(encodeUsage)
	case "check":
		fmt.Print(checkUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

func cmdEncode(args []string) error {
	pretty := false
	outFile := ""
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.BoolVar(&pretty, "pretty", pretty, "Indent the JSON output")
	fs.StringVar(&outFile, "out", outFile, "Write JSON to file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, encodeUsage)
		return err
	}

	doc, err := loadDocument(fs.Args())
	if err != nil {
		return err
	}
	doc = ast.Detach(doc)

	var b []byte
	if pretty {
		b, err = astjson.MarshalIndent(doc, "", "  ")
	} else {
		b, err = astjson.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	b = append(b, '\n')

	if outFile == "" {
		_, err = os.Stdout.Write(b)
		return err
	}
	return os.WriteFile(outFile, b, 0644)
}

func cmdCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, checkUsage)
		return err
	}
	if _, err := loadDocument(fs.Args()); err != nil {
		return err
	}
	return nil
}

func loadDocument(args []string) (ast.Document[text.Owned], error) {
	var src []byte
	var err error
	switch len(args) {
	case 0:
		src, err = io.ReadAll(os.Stdin)
	case 1:
		src, err = os.ReadFile(args[0])
	default:
		return ast.Document[text.Owned]{}, fmt.Errorf("expected at most one file argument")
	}
	if err != nil {
		return ast.Document[text.Owned]{}, err
	}
	doc, err := language.ParseQueryAs[text.Owned](string(src))
	if err != nil {
		return ast.Document[text.Owned]{}, fmt.Errorf("parse: %w", err)
	}
	return doc, nil
}
