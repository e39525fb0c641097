// circuit-repl is an interactive shell for parsing formulas and stepping
// through circuits.
package main

import (
	"os"

	"github.com/chzyer/readline"

	"hilbert-circuits/solver"
)

var completer = readline.NewPrefixCompleter(
	readline.PcItem("help"),
	readline.PcItem("parse"),
	readline.PcItem("load"),
	readline.PcItem("goal"),
	readline.PcItem("show"),
	readline.PcItem("eval"),
	readline.PcItem("step"),
	readline.PcItem("reset"),
	readline.PcItem("fmt"),
	readline.PcItem("quit"),
)

func main() {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:       "> ",
		AutoComplete: completer,
	})
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	s := newSession(solver.New())
	out := rl.Stdout()

	println(`Hi, welcome to circuit-repl! Type "help" if you want me to explain how you use me.`)
	if len(os.Args) > 1 {
		s.exec(out, "load "+os.Args[1])
	}

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if !s.exec(out, line) {
			break
		}
	}
}
