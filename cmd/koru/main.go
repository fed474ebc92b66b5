package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/urfave/cli/v2"

	koru "go.koru.dev/pkg"
)

func main() {
	app := &cli.App{
		Name:  "koru",
		Usage: "read-eval loop for the koru language front end",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "dl", Usage: "display lexer output"},
			&cli.BoolFlag{Name: "dp", Usage: "display parser output"},
			&cli.BoolFlag{Name: "dc", Usage: "display compiler output"},
			&cli.StringFlag{Name: "eval", Aliases: []string{"e"}, Usage: "process a single chunk and exit"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	r := &repl{
		session:      koru.NewSession(),
		gen:          koru.NewGenerator(),
		dumpLexer:    c.Bool("dl"),
		dumpParser:   c.Bool("dp"),
		dumpCompiler: c.Bool("dc"),
	}

	if input := c.String("eval"); input != "" {
		r.compute(input)
		return nil
	}

	rl, err := readline.New("?> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		r.compute(line)
	}
}

type repl struct {
	session *koru.Session
	gen     *koru.Generator

	dumpLexer    bool
	dumpParser   bool
	dumpCompiler bool
}

func (r *repl) compute(input string) {
	if r.dumpLexer {
		toks := koru.NewLexer(strings.NewReader(input)).RunBlocking()
		fmt.Printf("-> tokens: %v\n", toks)
	}

	funcs, err := r.session.ParseChunk(input)
	if err != nil {
		fmt.Printf("!> error parsing expression: %v\n", err)
		return
	}

	for _, fn := range funcs {
		r.report(fn)
	}
}

func (r *repl) report(fn *koru.Function) {
	switch {
	case fn.IsAnon:
		fmt.Println("parsed a top-level expression")
	case fn.Body == nil:
		fmt.Println("parsed an extern:", fn.Proto.Name)
	default:
		fmt.Println("parsed a function definition:", fn.Proto.Name)
	}

	if r.dumpParser {
		fmt.Println(fn)
	}

	if r.dumpCompiler {
		f, err := r.gen.Generate(fn)
		if err != nil {
			fmt.Printf("!> error compiling: %v\n", err)
			return
		}

		fmt.Print(f.LLString())
	}
}
