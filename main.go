//
// Jeko version 0.1
//
// A little dynamically-typed scripting language: a resolver works out
// where every variable lives before anything runs, and a tree-walking
// evaluator does the rest.
//

package main

import (
	"fmt"
	"os"

	"jeko/initializer"
	"jeko/repl"
	"jeko/text"
)

func main() {

	interpreter := initializer.NewInterpreter()

	if len(os.Args) > 1 {
		for _, path := range os.Args[1:] {
			statements, locals, err := interpreter.Load(path)
			if err == nil {
				err = interpreter.Run(statements, locals)
			}
			if err != nil {
				fmt.Println(text.ERROR + err.Message + text.DescribePos(err.Token) + ".")
				os.Exit(1)
			}
		}
		return
	}

	fmt.Print(text.Logo())
	repl.Start(interpreter, os.Stdout)
}
