package evaluator

import (
	"os/exec"
	"strings"

	"jeko/object"
)

// makeCommandNative wraps a fixed OS command as a zero-argument native.
// The command line is tokenized by splitting on single spaces, with
// literal '"' characters stripped from each token: quoting therefore
// glues nothing together, it just vanishes. It's crude but it's what
// the language has always done, and scripts depend on it.
func makeCommandNative(name string, cmd string) *object.Native {
	return &object.Native{Name: name, Arity: 0, Fn: func(args []object.Object) object.Object {
		words := strings.Split(cmd, " ")
		for k, word := range words {
			words[k] = strings.ReplaceAll(word, "\"", "")
		}
		command := exec.Command(words[0], words[1:]...)
		out, err := command.Output()
		if err != nil {
			panic("failed to execute command '" + cmd + "': " + err.Error())
		}
		return &object.String{Value: string(out)}
	}}
}
