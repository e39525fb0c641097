// circuit-dap is a Debug Adapter Protocol server that steps through the
// propagation passes of a .circuit file.
package main

import (
	"log"
	"os"

	"hilbert-circuits/config"
	"hilbert-circuits/solver"
	"hilbert-circuits/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("%s", err)
	}
	level, _ := cfg.Level()
	logger := telemetry.NewLogger(level, os.Stderr)

	s := solver.New(solver.WithMaxPasses(cfg.MaxPasses), solver.WithLogger(logger))
	if err := Serve(os.Stdin, os.Stdout, s); err != nil {
		log.Fatalf("debug adapter stopped: %s", err)
	}
}
