package evaluator

import (
	"os"

	"jeko/ast"
	"jeko/object"
	"jeko/parser"
	"jeko/resolver"
	"jeko/token"
)

// Load takes a script through the front half of the pipeline: read it,
// parse it, resolve it. The caller gets the statements together with
// their distance map and decides which environment to run them in.
func (i *Interpreter) Load(path string) ([]ast.Node, map[int]int, *object.Error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, object.CreateErr("eval/import/file", token.Token{Source: path}, err.Error(), path)
	}
	p := parser.New(path, string(data))
	statements := p.ParseProgram()
	if p.ErrorsExist() {
		return nil, nil, p.Errors[0]
	}
	locals, resolveErr := resolver.New().Resolve(statements)
	if resolveErr != nil {
		return nil, nil, resolveErr
	}
	return statements, locals, nil
}
