package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/lmorg/readline"

	"jeko/evaluator"
	"jeko/object"
	"jeko/parser"
	"jeko/resolver"
	"jeko/text"
)

// Start runs the interactive loop. One interpreter lives for the whole
// session, so definitions accumulate, but each line is its own little
// program with its own parse and its own resolution pass.
func Start(interpreter *evaluator.Interpreter, out io.Writer) {
	rline := readline.NewInstance()
	for {
		rline.SetPrompt(makePrompt(interpreter))
		line, err := rline.Readline()
		if err != nil {
			fmt.Fprintln(out, text.ERROR, err)
			return
		}

		line = strings.TrimSpace(line)

		if line == "" {
			continue
		}

		if line == "quit" {
			break
		}

		Do(interpreter, line, out)
	}
}

// Do feeds one chunk of source through the whole pipeline and reports
// anything that goes wrong on the way.
func Do(interpreter *evaluator.Interpreter, line string, out io.Writer) {
	p := parser.New("REPL input", line)
	statements := p.ParseProgram()
	if p.ErrorsExist() {
		for _, parseErr := range p.Errors {
			fmt.Fprintln(out, describe(parseErr))
		}
		return
	}
	locals, resolveErr := resolver.New().Resolve(statements)
	if resolveErr != nil {
		fmt.Fprintln(out, describe(resolveErr))
		return
	}
	if runtimeErr := interpreter.Run(statements, locals); runtimeErr != nil {
		fmt.Fprintln(out, text.RT_ERROR+runtimeErr.Message+text.DescribePos(runtimeErr.Token)+".")
	}
}

func describe(e *object.Error) string {
	return text.ERROR + e.Message + text.DescribePos(e.Token) + "."
}

func makePrompt(interpreter *evaluator.Interpreter) string {
	if value, ok := interpreter.Globals.Get("$prompt"); ok {
		if s, ok := value.(*object.String); ok {
			return s.Value
		}
	}
	return text.PROMPT
}
