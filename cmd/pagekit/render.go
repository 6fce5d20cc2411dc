package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/pagekit/maintenance"
	"github.com/randalmurphal/pagekit/template"
)

func runRender(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	tmplPath := fs.String("template", "", "template file to render (required)")
	dataPath := fs.String("data", "", "YAML or JSON file holding the render context")
	strict := fs.Bool("strict", false, "fail when a referenced variable is missing")
	verbose := fs.Bool("v", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *tmplPath == "" {
		return errors.New("-template is required")
	}

	source, err := os.ReadFile(*tmplPath)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}

	ctx := template.Context{}
	if *dataPath != "" {
		ctx, err = loadData(*dataPath)
		if err != nil {
			return err
		}
	}

	if *strict {
		if err := template.ValidateVariables(template.Variables(string(source)), ctx); err != nil {
			return err
		}
	}

	engine := template.NewEngine(template.WithLogger(newLogger(stderr, *verbose)))
	out, err := engine.Compile(string(source)).Execute(ctx)
	if err != nil {
		return err
	}
	_, err = io.WriteString(stdout, out)
	return err
}

func runVars(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("vars", flag.ContinueOnError)
	fs.SetOutput(stderr)
	tmplPath := fs.String("template", "", "template file to inspect (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *tmplPath == "" {
		return errors.New("-template is required")
	}

	source, err := os.ReadFile(*tmplPath)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}
	for _, v := range template.Variables(string(source)) {
		fmt.Fprintln(stdout, v)
	}
	return nil
}

func runSchema(stdout io.Writer) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(maintenance.Schema())
}

// loadData reads a render context from a YAML or JSON file.
func loadData(path string) (template.Context, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}

	ctx := template.Context{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &ctx)
	case ".json":
		err = json.Unmarshal(raw, &ctx)
	default:
		return nil, fmt.Errorf("unsupported data file %s: want .yaml, .yml or .json", path)
	}
	if err != nil {
		return nil, fmt.Errorf("parse data %s: %w", path, err)
	}
	return ctx, nil
}
