package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sourcegraph/jsonrpc2"

	"hilbert-circuits/board"
	"hilbert-circuits/levels"
	"hilbert-circuits/lint"
	"hilbert-circuits/logic"
	"hilbert-circuits/route"
	"hilbert-circuits/rpcserver"
	"hilbert-circuits/saves"
	"hilbert-circuits/solver"
	"hilbert-circuits/telemetry"
)

type server struct {
	solver  *solver.Solver
	lint    *lint.Engine
	store   saves.Store
	pack    *levels.Pack
	metrics *telemetry.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

func (s *server) methods() rpcserver.MethodMap {
	return rpcserver.MethodMap{
		"circuit/evaluate": rpcserver.Zu(s.Evaluate),
		"circuit/parse":    rpcserver.Zu(s.Parse),
		"circuit/ports":    rpcserver.Zu(s.Ports),
		"circuit/route":    rpcserver.Zu(s.Route),
		"circuit/lint":     rpcserver.Zu(s.Lint),
		"saves/save":       rpcserver.Zu(s.Save),
		"saves/load":       rpcserver.Zu(s.Load),
		"saves/exists":     rpcserver.Zu(s.Exists),
		"saves/info":       rpcserver.Zu(s.Info),
		"saves/record":     rpcserver.Zu(s.Record),
		"levels/list":      rpcserver.Zu(s.Levels),
		"levels/check":     rpcserver.Zu(s.Check),
	}
}

type EvaluateParams struct {
	Components []board.Component `json:"components"`
	Goal       string            `json:"goal"`
}

func (s *server) Evaluate(ctx context.Context, conn jsonrpc2.JSONRPC2, params EvaluateParams) (*solver.Result, error) {
	start := time.Now()
	res := s.solver.Evaluate(params.Components, params.Goal)
	s.metrics.ObserveResult(res, time.Since(start))
	return &res, nil
}

type ParseParams struct {
	Text string `json:"text"`
}

type ParseResult struct {
	Formula  string `json:"formula"`
	Provable bool   `json:"provable"`
}

func (s *server) Parse(ctx context.Context, conn jsonrpc2.JSONRPC2, params ParseParams) (*ParseResult, error) {
	v, err := logic.ParseGoal(params.Text)
	if err != nil {
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
	}
	return &ParseResult{Formula: v.String(), Provable: logic.IsProvable(v)}, nil
}

type PortsParams struct {
	Component board.Component `json:"component"`
}

type PlacedPort struct {
	board.Port
	At board.Point `json:"at"`
}

func (s *server) Ports(ctx context.Context, conn jsonrpc2.JSONRPC2, params PortsParams) ([]PlacedPort, error) {
	out := []PlacedPort{}
	for _, p := range board.Ports(params.Component) {
		out = append(out, PlacedPort{Port: p, At: board.AbsolutePosition(params.Component, p)})
	}
	return out, nil
}

type RouteParams struct {
	From       board.Point       `json:"from"`
	To         board.Point       `json:"to"`
	Signal     board.SignalKind  `json:"signal"`
	Components []board.Component `json:"components"`
}

func (s *server) Route(ctx context.Context, conn jsonrpc2.JSONRPC2, params RouteParams) ([]board.Component, error) {
	if params.Signal == board.Any {
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "wires carry formula or provable signals"}
	}
	return route.Route(params.From, params.To, params.Components, params.Signal)
}

type LintParams struct {
	URI  string `json:"uri"`
	Text string `json:"text"`
}

func (s *server) Lint(ctx context.Context, conn jsonrpc2.JSONRPC2, params LintParams) ([]lint.Diagnostic, error) {
	if err := s.lint.SetFileContext(params.URI, []byte(params.Text)); err != nil {
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
	}
	defer s.lint.DeleteFileContext(params.URI)

	diags, err := s.lint.Run(ctx, params.URI, lint.DefaultDiagnostics)
	if err != nil {
		return nil, err
	}
	if diags == nil {
		diags = []lint.Diagnostic{}
	}
	return diags, nil
}

type SlotParams struct {
	Slot int             `json:"slot"`
	Data *saves.SaveData `json:"data,omitempty"`
}

func (s *server) Save(ctx context.Context, conn jsonrpc2.JSONRPC2, params SlotParams) (*bool, error) {
	if params.Data == nil {
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "missing save data"}
	}
	if err := s.store.Save(ctx, params.Slot, *params.Data); err != nil {
		return nil, err
	}
	ok := true
	return &ok, nil
}

// Load returns null for an empty slot.
func (s *server) Load(ctx context.Context, conn jsonrpc2.JSONRPC2, params SlotParams) (*saves.SaveData, error) {
	data, err := s.store.Load(ctx, params.Slot)
	if errors.Is(err, saves.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *server) Exists(ctx context.Context, conn jsonrpc2.JSONRPC2, params SlotParams) (bool, error) {
	return s.store.Exists(ctx, params.Slot)
}

func (s *server) Info(ctx context.Context, conn jsonrpc2.JSONRPC2, params SlotParams) (*saves.Info, error) {
	info, err := saves.SlotInfo(ctx, s.store, params.Slot)
	if errors.Is(err, saves.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

type RecordParams struct {
	Level int              `json:"level"`
	State saves.LevelState `json:"state"`
}

func (s *server) Record(ctx context.Context, conn jsonrpc2.JSONRPC2, params RecordParams) (bool, error) {
	if err := saves.Record(ctx, s.store, params.Level, params.State, s.now()); err != nil {
		return false, err
	}
	return true, nil
}

func (s *server) Levels(ctx context.Context, conn jsonrpc2.JSONRPC2, params struct{}) ([]levels.Level, error) {
	return s.pack.Levels, nil
}

type CheckParams struct {
	Level      string            `json:"level"`
	Components []board.Component `json:"components"`
}

type CheckResult struct {
	solver.Result
	// Disallowed lists placed components the level's palette does not offer.
	Disallowed []string `json:"disallowed"`
}

func (s *server) Check(ctx context.Context, conn jsonrpc2.JSONRPC2, params CheckParams) (*CheckResult, error) {
	i, err := s.pack.Index(params.Level)
	if err != nil {
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
	}
	l := s.pack.Levels[i]

	out := &CheckResult{Disallowed: []string{}}
	for _, c := range params.Components {
		if !l.Allows(c) {
			out.Disallowed = append(out.Disallowed, c.ID)
		}
	}

	start := time.Now()
	out.Result = l.Evaluate(s.solver, params.Components)
	s.metrics.ObserveResult(out.Result, time.Since(start))
	if len(out.Disallowed) > 0 {
		out.Solved = false
		s.logger.Info("level check used locked tools", "level", l.ID, "components", fmt.Sprint(out.Disallowed))
	}
	return out, nil
}
