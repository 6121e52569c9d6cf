package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/goccy/go-json"
	"github.com/jessevdk/go-flags"
	"github.com/karupanerura/pratt-calc/internal/expression"
	"github.com/karupanerura/pratt-calc/internal/server"
	"github.com/karupanerura/pratt-calc/internal/suite"
	"github.com/karupanerura/pratt-calc/internal/types"
	"github.com/mattn/go-isatty"
)

type Option struct {
	File   string `short:"f" long:"file" description:"[OPTIONAL] Suite file of named expressions (YAML or JSON)" required:"false"`
	Listen string `short:"l" long:"listen" description:"[OPTIONAL] Listen host and port to serve the evaluation API" required:"false"`
	Strict bool   `long:"strict" description:"[OPTIONAL] Reject tokens left over after the expression"`
	AST    bool   `long:"ast" description:"[OPTIONAL] Print the syntax tree instead of the value"`
	JSON   bool   `long:"json" description:"[OPTIONAL] Print the expression, syntax tree and value as JSON"`
	Debug  bool   `long:"debug" description:"[OPTIONAL] Log tokens and syntax tree while parsing"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opt Option
	parser := flags.NewParser(&opt, flags.Default)
	parser.Usage = "[OPTIONS] EXPRESSION..."
	rest, err := parser.ParseArgs(args)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return 0
		} else {
			parser.WriteHelp(stdout)
			return 1
		}
	}

	modes := 0
	for _, enabled := range []bool{opt.File != "", opt.Listen != "", len(rest) != 0} {
		if enabled {
			modes++
		}
	}
	if modes != 1 {
		parser.WriteHelp(stdout)
		return 1
	}

	// server mode
	if opt.Listen != "" {
		if err := serveEvaluations(opt.Listen); err != nil {
			log.Printf("failed to serve evaluations: %v", err)
			return 1
		}
		return 0
	}

	// suite mode
	if opt.File != "" {
		return runSuite(opt, stdout)
	}

	return evaluate(opt, strings.Join(rest, " "), stdout, stderr)
}

func evaluate(opt Option, source string, stdout, stderr io.Writer) int {
	var parse func(string) (*expression.Expr, error)
	switch {
	case opt.Debug && opt.Strict:
		parse = expression.ParseStrictWithDebugOutput
	case opt.Debug:
		parse = expression.ParseWithDebugOutput
	case opt.Strict:
		parse = expression.ParseStrict
	default:
		parse = expression.Parse
	}

	expr, err := parse(source)
	if err != nil {
		return dumpError(stderr, err)
	}
	if opt.AST && !opt.JSON {
		if _, err := fmt.Fprintln(stdout, expr.Root); err != nil {
			log.Printf("failed to dump syntax tree: %v", err)
			return 1
		}
		return 0
	}

	ret, err := expr.Evaluate()
	if err != nil {
		return dumpError(stderr, err)
	}

	if opt.JSON {
		err = dumpJSON(stdout, map[string]any{
			"expression": expr.Source,
			"ast":        expr.Root.String(),
			"result":     ret,
		})
	} else {
		_, err = fmt.Fprintln(stdout, ret)
	}
	if err != nil {
		log.Printf("failed to dump result: %v", err)
		return 1
	}
	return 0
}

func runSuite(opt Option, stdout io.Writer) int {
	s, err := suite.Load(opt.File)
	if err != nil {
		log.Printf("failed to load suite: %v", err)
		return 1
	}
	if opt.Strict {
		s.Strict = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := s.Run(ctx)
	if err != nil {
		log.Printf("failed to run suite: %v", err)
		return 1
	}
	if err = dumpJSON(stdout, report); err != nil {
		log.Printf("failed to dump suite report: %v", err)
		return 1
	}
	if report.Failed != 0 {
		return 1
	}
	return 0
}

func serveEvaluations(listen string) error {
	srv := http.Server{
		Handler: server.NewHTTPHandler(),
		Addr:    listen,
	}

	log.Printf("Listen HTTP on %s", listen)
	if err := srv.ListenAndServe(); errors.Is(err, http.ErrServerClosed) {
		return nil
	} else if err != nil {
		return err
	}
	return nil
}

func dumpError(w io.Writer, err error) int {
	var exception types.Exception
	if !errors.As(err, &exception) {
		log.Printf("failed to evaluate expression: %v", err)
		return 1
	}

	if _, err = fmt.Fprintln(w, err.Error()); err != nil {
		log.Printf("failed to dump error: %v", err)
	}
	if err = dumpJSON(w, exception.Exception()); err != nil {
		log.Printf("failed to dump error as JSON: %v", err)
	}
	return 1
}

func dumpJSON(w io.Writer, v any) error {
	opts := []json.EncodeOptionFunc{json.DisableHTMLEscape()}
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		if isatty.IsTerminal(f.Fd()) {
			opts = append(opts, json.Colorize(json.DefaultColorScheme))
		}
	}

	b, err := json.MarshalIndentWithOption(v, "", "\t", opts...)
	if err != nil {
		return fmt.Errorf("json.MarshalIndentWithOption: %w", err)
	}

	if _, err = w.Write(b); err != nil {
		return fmt.Errorf("w.Write: %w", err)
	}
	if _, err = io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("io.WriteString: %w", err)
	}
	return nil
}
