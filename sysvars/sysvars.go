package sysvars

import (
	"jeko/object"
	"jeko/text"
)

// DefaultView is what the evaluator falls back on if $view has somehow
// gone missing from the global environment.
const DefaultView = "color"

type sysvar = struct {
	Dflt      object.Object
	Validator func(object.Object) string
}

var Sysvars = map[string]sysvar{
	"$view": sysvar{
		Dflt: &object.String{Value: DefaultView},
		Validator: func(obj object.Object) string {
			switch obj := obj.(type) {
			case *object.String:
				if obj.Value != "color" && obj.Value != "plain" {
					return "system variable " + text.Emph("$view") + " takes values " +
						text.Emph("\"color\"") + " or " + text.Emph("\"plain\"")
				}
				return ""
			default:
				return "system variable " + text.Emph("$view") + " is of type " + text.Emph("string")
			}
		},
	},
	"$prompt": sysvar{
		Dflt: &object.String{Value: text.PROMPT},
		Validator: func(obj object.Object) string {
			switch obj.(type) {
			case *object.String:
				return ""
			default:
				return "system variable " + text.Emph("$prompt") + " is of type " + text.Emph("string")
			}
		},
	},
}
