package evaluator_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jeko/evaluator"
	"jeko/initializer"
	"jeko/object"
	"jeko/parser"
	"jeko/resolver"
)

// testInterpreter makes an interpreter that writes to a buffer, prints
// plainly, and records calls to exit instead of making them.
func testInterpreter(t *testing.T) (*evaluator.Interpreter, *bytes.Buffer, *int) {
	t.Helper()
	interpreter := initializer.NewInterpreter()
	buf := &bytes.Buffer{}
	exitCode := -1
	interpreter.Out = buf
	interpreter.Exit = func(code int) { exitCode = code }
	interpreter.Globals.Define("$view", &object.String{Value: "plain"})
	return interpreter, buf, &exitCode
}

func run(t *testing.T, interpreter *evaluator.Interpreter, input string) *object.Error {
	t.Helper()
	p := parser.New("test", input)
	statements := p.ParseProgram()
	if p.ErrorsExist() {
		t.Fatalf("unexpected parse error %q in %q", p.Errors[0].Message, input)
	}
	locals, err := resolver.New().Resolve(statements)
	if err != nil {
		t.Fatalf("unexpected resolution error %q in %q", err.Message, input)
	}
	return interpreter.Run(statements, locals)
}

func TestOutput(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"print 1 + 2 * 3;", "7\n"},
		{"print 7 / 2;", "3\n"},
		{"print 7.0 / 2;", "3.5\n"},
		{"print 7 % 3;", "1\n"},
		{"print 2.5 + 1;", "3.5\n"},
		{"print -3;", "-3\n"},
		{"print \"foo\" + \"bar\";", "foobar\n"},
		{"print \"a\" < \"b\";", "true\n"},
		{"print 1 <= 1;", "true\n"},
		{"print 1 == 1.0;", "false\n"}, // different types are never equal
		{"print [1, 2] == [1, 2];", "true\n"},
		{"print nil == nil;", "true\n"},
		{"print !0;", "true\n"},
		{"print not \"\";", "true\n"},
		{"print !\"something\";", "false\n"},
		{"print 0 or 3;", "3\n"},
		{"print 1 and 2;", "2\n"},
		{"print nil and 1;", "nil\n"},
		{"print [1, 2] + [3];", "[1, 2, 3]\n"},
		{"print [\"a\", 1];", "[\"a\", 1]\n"},
		{"var x = 1; x = x + 1; print x;", "2\n"},
		{"var x = 1; { var x = 2; print x; } print x;", "2\n1\n"},
		{"if 1 < 2 { print \"yes\"; } else { print \"no\"; }", "yes\n"},
		{"if 1 > 2 { print \"a\"; } elif 2 > 2 { print \"b\"; } else { print \"c\"; }", "c\n"},
		{"if 0: print \"t\"; else: print \"f\";", "f\n"},
		{"var i = 0; while i < 3 { print i; i = i + 1; }", "0\n1\n2\n"},
		{"var i = 0; while true { if i == 2 { break; } print i; i = i + 1; }", "0\n1\n"},
		{"fun add(x, y) { return x + y; } print add(2, 3);", "5\n"},
		{"fun f() { if true { return 1; } print \"unreachable\"; } print f();", "1\n"},
		{"fun f() { return; } print f();", "nil\n"},
		{"fun f() { } print f();", "nil\n"},
		{"print typeof(3);", "int\n"},
		{"print typeof(3.0);", "float\n"},
		{"print typeof(\"s\");", "string\n"},
		{"print str(42) + \"!\";", "42!\n"},
		{"print floor(3.7);", "3\n"},
		{"print round(2.5);", "3\n"},
		{"print len(\"hello\");", "5\n"},
		{"print len([1, 2, 3]);", "3\n"},
		{"print pop([1, 2, 3]);", "3\n"},
		{"print shift([1, 2, 3]);", "1\n"},
		{"print push([1, 2], 3);", "[1, 2, 3]\n"},
		{"print join([\"a\", \"b\", \"c\"], \"-\");", "a-b-c\n"},
		{"print num(\"3\") + 1;", "4\n"},
		{"print num(\"2.5\") + 1;", "3.5\n"},
	}

	for i, tt := range tests {
		interpreter, buf, _ := testInterpreter(t)
		if err := run(t, interpreter, tt.input); err != nil {
			t.Fatalf("tests[%d] - unexpected error %q running %q", i, err.Message, tt.input)
		}
		if buf.String() != tt.expected {
			t.Fatalf("tests[%d] - output wrong for %q. expected=%q, got=%q",
				i, tt.input, tt.expected, buf.String())
		}
	}
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		input           string
		expectedErrorId string
	}{
		{"print 1 / 0;", "eval/div/zero"},
		{"print 1 % 0;", "eval/div/zero"},
		{"print 1 + \"one\";", "eval/infix/type"},
		{"print -\"s\";", "eval/unary/type"},
		{"print missing;", "eval/ident/found"},
		{"missing = 1;", "eval/assign/found"},
		{"print 5(1);", "eval/call/type"},
		{"fun f(a) { return a; } f(1, 2);", "eval/call/arity"},
		{"len(1, 2);", "eval/native/arity"},
		{"len(1);", "eval/native/type"},
		{"print \"s\".field;", "eval/get/type"},
		{"\"s\".field = 1;", "eval/set/type"},
		{"var X = 1; class Sub < X { }", "eval/superclass/type"},
		{"{ class Local { } }", "eval/class/rebind"},
		{"import 42;", "eval/import/string"},
		{"import \"/no/such/file.jk\";", "eval/import/file"},
		{"wait \"soon\" { }", "eval/wait/time"},
		{"$view = \"neon\";", "eval/sysvar/valid"},
		{"db_query(\"SELECT 1\");", "eval/db/blank"},
	}

	for i, tt := range tests {
		interpreter, _, _ := testInterpreter(t)
		err := run(t, interpreter, tt.input)
		if err == nil {
			t.Fatalf("tests[%d] - expected error %q running %q, got none",
				i, tt.expectedErrorId, tt.input)
		}
		if err.ErrorId != tt.expectedErrorId {
			t.Fatalf("tests[%d] - errorId wrong for %q. expected=%q, got=%q",
				i, tt.input, tt.expectedErrorId, err.ErrorId)
		}
	}
}

func TestSuperclassErrorNamesTheType(t *testing.T) {
	interpreter, _, _ := testInterpreter(t)
	err := run(t, interpreter, "var X = 1; class Sub < X { }")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Message, "int") {
		t.Fatalf("expected the message to name the runtime type, got %q", err.Message)
	}
}

func TestClosures(t *testing.T) {
	interpreter, buf, _ := testInterpreter(t)
	input := `fun makeCounter() {
	var n = 0;
	return fun() {
		n = n + 1;
		return n;
	};
}
var counter = makeCounter();
print counter();
print counter();
var fresh = makeCounter();
print fresh();
print counter();`
	if err := run(t, interpreter, input); err != nil {
		t.Fatalf("unexpected error %q", err.Message)
	}
	if buf.String() != "1\n2\n1\n3\n" {
		t.Fatalf("closure state wrong: got %q", buf.String())
	}
}

func TestClosureSeesLaterMutation(t *testing.T) {
	interpreter, buf, _ := testInterpreter(t)
	input := `fun f() {
	var x = "before";
	var get = fun() { return x; };
	x = "after";
	return get();
}
print f();`
	if err := run(t, interpreter, input); err != nil {
		t.Fatalf("unexpected error %q", err.Message)
	}
	if buf.String() != "after\n" {
		t.Fatalf("expected the closure to share the captured scope, got %q", buf.String())
	}
}

func TestClosuresCapturePerIterationLocals(t *testing.T) {
	interpreter, buf, _ := testInterpreter(t)
	input := `var fs = [];
var i = 0;
while i < 3 {
	var j = i;
	fs = push(fs, fun() { return j; });
	i = i + 1;
}
var first = shift(fs);
var last = pop(fs);
print first();
print last();`
	if err := run(t, interpreter, input); err != nil {
		t.Fatalf("unexpected error %q", err.Message)
	}
	// each loop iteration runs in a fresh block scope, so each closure
	// holds its own j rather than whatever the last iteration left
	if buf.String() != "0\n2\n" {
		t.Fatalf("iteration capture wrong: got %q", buf.String())
	}
}

func TestClasses(t *testing.T) {
	interpreter, buf, _ := testInterpreter(t)
	input := `class Counter {
	init() {
		self.n = 0;
	}
	bump() {
		self.n = self.n + 1;
		return self.n;
	}
}
var c = Counter();
c.bump();
print c.bump();
print c.n;
c.n = 10;
print c.bump();
print typeof(c);`
	if err := run(t, interpreter, input); err != nil {
		t.Fatalf("unexpected error %q", err.Message)
	}
	if buf.String() != "2\n2\n11\nCounter\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestInitWithArguments(t *testing.T) {
	interpreter, buf, _ := testInterpreter(t)
	input := `class Point {
	init(x, y) {
		self.x = x;
		self.y = y;
	}
}
var p = Point(3, 4);
print p.x + p.y;`
	if err := run(t, interpreter, input); err != nil {
		t.Fatalf("unexpected error %q", err.Message)
	}
	if buf.String() != "7\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestConstructorArity(t *testing.T) {
	interpreter, _, _ := testInterpreter(t)
	err := run(t, interpreter, "class Empty { } Empty(1);")
	if err == nil || err.ErrorId != "eval/call/arity" {
		t.Fatalf("expected eval/call/arity, got %v", err)
	}
}

func TestInheritance(t *testing.T) {
	interpreter, buf, _ := testInterpreter(t)
	input := `class Animal {
	noise() { return "..."; }
	speak() { return self.noise() + "!"; }
}
class Dog < Animal {
	noise() { return "woof"; }
}
print Dog().speak();`
	if err := run(t, interpreter, input); err != nil {
		t.Fatalf("unexpected error %q", err.Message)
	}
	// self.noise() must dispatch on the dynamic type
	if buf.String() != "woof!\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestSuperBindsToTheDeclaringClass(t *testing.T) {
	interpreter, buf, _ := testInterpreter(t)
	input := `class A {
	method() { return "A method"; }
}
class B < A {
	method() { return "B method"; }
	test() { return super.method(); }
}
class C < B {
}
print C().test();`
	if err := run(t, interpreter, input); err != nil {
		t.Fatalf("unexpected error %q", err.Message)
	}
	// super starts the search above B, where test is declared, no
	// matter that the receiver is a C
	if buf.String() != "A method\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestUndefinedProperty(t *testing.T) {
	interpreter, _, _ := testInterpreter(t)
	err := run(t, interpreter, "class Empty { } print Empty().ghost;")
	if err == nil || err.ErrorId != "eval/get/found" {
		t.Fatalf("expected eval/get/found, got %v", err)
	}
}

func TestClassSelfReference(t *testing.T) {
	interpreter, buf, _ := testInterpreter(t)
	input := `class Node {
	clone() { return Node(); }
}
print typeof(Node().clone());`
	if err := run(t, interpreter, input); err != nil {
		t.Fatalf("unexpected error %q", err.Message)
	}
	if buf.String() != "Node\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestErrorsStatement(t *testing.T) {
	interpreter, buf, exitCode := testInterpreter(t)
	if err := run(t, interpreter, `errors "the sky is falling";`); err != nil {
		t.Fatalf("unexpected error %q", err.Message)
	}
	if *exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(buf.String(), "the sky is falling") {
		t.Fatalf("got %q", buf.String())
	}
}

func TestExitsStatement(t *testing.T) {
	interpreter, _, exitCode := testInterpreter(t)
	if err := run(t, interpreter, "exits;"); err != nil {
		t.Fatalf("unexpected error %q", err.Message)
	}
	if *exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", *exitCode)
	}
}

func TestInputPrintsPromptAndDiscardsLine(t *testing.T) {
	interpreter, buf, _ := testInterpreter(t)
	interpreter.SetInput(strings.NewReader("whatever they type\n"))
	if err := run(t, interpreter, `input "name?"; print "done";`); err != nil {
		t.Fatalf("unexpected error %q", err.Message)
	}
	if buf.String() != "name?\ndone\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestWaitRunsBeforeClauseFirst(t *testing.T) {
	interpreter, buf, _ := testInterpreter(t)
	input := `wait 0.02 { print "later"; } before 0.01 { print "sooner"; }`
	if err := run(t, interpreter, input); err != nil {
		t.Fatalf("unexpected error %q", err.Message)
	}
	if buf.String() != "sooner\nlater\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestBench(t *testing.T) {
	interpreter, buf, _ := testInterpreter(t)
	if err := run(t, interpreter, `bench { var i = 0; while i < 10 { i = i + 1; } }`); err != nil {
		t.Fatalf("unexpected error %q", err.Message)
	}
	if !strings.Contains(buf.String(), "bench: ") {
		t.Fatalf("got %q", buf.String())
	}
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.jk")
	lib := `fun greet(name) { return "hello " + name; }
var answer = 42;`
	if err := os.WriteFile(path, []byte(lib), 0644); err != nil {
		t.Fatal(err)
	}

	interpreter, buf, _ := testInterpreter(t)
	input := `import "` + path + `";
print greet("world");
print answer;`
	if err := run(t, interpreter, input); err != nil {
		t.Fatalf("unexpected error %q", err.Message)
	}
	if buf.String() != "hello world\n42\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestCmdFunction(t *testing.T) {
	interpreter, buf, _ := testInterpreter(t)
	input := `cmd greet = "echo \"hello\" world";
print greet();`
	if err := run(t, interpreter, input); err != nil {
		t.Fatalf("unexpected error %q", err.Message)
	}
	// quote characters are stripped from the tokens, so echo gets two
	// plain arguments; its output then has its own trailing newline
	if buf.String() != "hello world\n\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestCmdSpawnFailureIsFatal(t *testing.T) {
	interpreter, _, _ := testInterpreter(t)
	if err := run(t, interpreter, `cmd broken = "definitely-not-a-command-0x9f";`); err != nil {
		t.Fatalf("unexpected error %q", err.Message)
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic when the command cannot be spawned")
		}
	}()
	run(t, interpreter, "broken();")
}

func TestReplStyleStatePersistsAcrossRuns(t *testing.T) {
	interpreter, buf, _ := testInterpreter(t)
	if err := run(t, interpreter, "var x = 1;"); err != nil {
		t.Fatalf("unexpected error %q", err.Message)
	}
	if err := run(t, interpreter, "fun double(n) { return n * 2; }"); err != nil {
		t.Fatalf("unexpected error %q", err.Message)
	}
	if err := run(t, interpreter, "print double(x + 2);"); err != nil {
		t.Fatalf("unexpected error %q", err.Message)
	}
	if buf.String() != "6\n" {
		t.Fatalf("got %q", buf.String())
	}
}
