package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"os"
	"testing"
	"time"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hilbert-circuits/board"
	"hilbert-circuits/levels"
	"hilbert-circuits/lint"
	"hilbert-circuits/rpcserver"
	"hilbert-circuits/saves"
	"hilbert-circuits/solver"
	"hilbert-circuits/telemetry"
)

func negation() []board.Component {
	return []board.Component{
		{ID: "p", Kind: board.Atom, Name: "P", X: -15, Y: -3, W: 4, H: 4},
		{ID: "n", Kind: board.NotGate, X: -9, Y: -3, W: 4, H: 4},
		{ID: "w1", Kind: board.Wire, X: -11, Y: -1, W: 2, H: 1},
		{ID: "w2", Kind: board.Wire, X: -5, Y: -1, W: 1, H: 1},
	}
}

func dial(t *testing.T) (*jsonrpc2.Conn, *server) {
	t.Helper()
	sv := solver.New()
	s := &server{
		solver:  sv,
		lint:    lint.New(sv),
		store:   saves.NewMemoryStore(),
		pack:    levels.Default(),
		metrics: telemetry.NewMetrics(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     func() time.Time { return time.UnixMilli(1700000000000) },
	}

	srv, cli := net.Pipe()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		rpcserver.Serve(ctx, srv, s.methods(), rpcserver.WithObserver(s.metrics.ObserveRequest))
		close(done)
	}()

	noop := jsonrpc2.HandlerWithError(func(context.Context, *jsonrpc2.Conn, *jsonrpc2.Request) (interface{}, error) {
		return nil, nil
	})
	conn := jsonrpc2.NewConn(context.Background(), jsonrpc2.NewBufferedStream(cli, jsonrpc2.VSCodeObjectCodec{}), noop)
	t.Cleanup(func() {
		conn.Close()
		cancel()
		<-done
	})
	return conn, s
}

func TestEvaluate(t *testing.T) {
	conn, _ := dial(t)
	ctx := context.Background()

	var res solver.Result
	require.NoError(t, conn.Call(ctx, "circuit/evaluate", EvaluateParams{Components: negation(), Goal: "~P"}, &res))
	assert.True(t, res.Solved)
	assert.Equal(t, "¬P", res.NetSignals["w2"])

	var parsed ParseResult
	require.NoError(t, conn.Call(ctx, "circuit/parse", ParseParams{Text: "|- P -> Q"}, &parsed))
	assert.Equal(t, ParseResult{Formula: "⊢ (P → Q)", Provable: true}, parsed)

	err := conn.Call(ctx, "circuit/parse", ParseParams{Text: "P ->"}, &parsed)
	var rpcErr *jsonrpc2.Error
	require.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, int64(jsonrpc2.CodeInvalidParams), rpcErr.Code)

	var ports []PlacedPort
	require.NoError(t, conn.Call(ctx, "circuit/ports", PortsParams{Component: negation()[1]}, &ports))
	require.Len(t, ports, 2)
	assert.Equal(t, "out", ports[0].ID)
	assert.Equal(t, board.Point{X: -5, Y: -1}, ports[0].At)
	assert.Equal(t, board.Point{X: -9, Y: -1}, ports[1].At)
}

func TestRouteAndLint(t *testing.T) {
	conn, _ := dial(t)
	ctx := context.Background()

	var wires []board.Component
	require.NoError(t, conn.Call(ctx, "circuit/route", RouteParams{
		From:   board.Point{X: 0, Y: 0},
		To:     board.Point{X: 4, Y: 0},
		Signal: board.Provable,
	}, &wires))
	require.Len(t, wires, 1)
	assert.Equal(t, board.Provable, wires[0].Signal)
	assert.Equal(t, 4.0, wires[0].W)

	text, err := os.ReadFile("../../lint/testdata/broken.circuit")
	require.NoError(t, err)
	var diags []lint.Diagnostic
	require.NoError(t, conn.Call(ctx, "circuit/lint", LintParams{URI: "broken.circuit", Text: string(text)}, &diags))
	assert.Len(t, diags, 6)
}

func TestSaves(t *testing.T) {
	conn, _ := dial(t)
	ctx := context.Background()

	var data *saves.SaveData
	require.NoError(t, conn.Call(ctx, "saves/load", SlotParams{Slot: 2}, &data))
	assert.Nil(t, data)

	var exists bool
	require.NoError(t, conn.Call(ctx, "saves/exists", SlotParams{Slot: 1}, &exists))
	assert.False(t, exists)

	state := saves.LevelState{Components: negation()}
	var ok bool
	require.NoError(t, conn.Call(ctx, "saves/record", RecordParams{Level: 0, State: state}, &ok))
	assert.True(t, ok)

	require.NoError(t, conn.Call(ctx, "saves/exists", SlotParams{Slot: saves.AutoSaveSlot}, &exists))
	assert.True(t, exists)

	var info *saves.Info
	require.NoError(t, conn.Call(ctx, "saves/info", SlotParams{Slot: saves.AutoSaveSlot}, &info))
	assert.Equal(t, &saves.Info{Timestamp: 1700000000000, LevelIndex: 0}, info)

	require.NoError(t, conn.Call(ctx, "saves/load", SlotParams{Slot: saves.AutoSaveSlot}, &data))
	require.NotNil(t, data)
	assert.Equal(t, state, data.LevelStates[0])

	require.NoError(t, conn.Call(ctx, "saves/save", SlotParams{Slot: 3, Data: data}, &ok))
	require.NoError(t, conn.Call(ctx, "saves/exists", SlotParams{Slot: 3}, &exists))
	assert.True(t, exists)

	assert.Error(t, conn.Call(ctx, "saves/save", SlotParams{Slot: 4}, &ok))
}

func TestLevels(t *testing.T) {
	conn, s := dial(t)
	ctx := context.Background()

	var list []levels.Level
	require.NoError(t, conn.Call(ctx, "levels/list", nil, &list))
	assert.Equal(t, len(s.pack.Levels), len(list))
	assert.Equal(t, "negation", list[0].ID)

	var res CheckResult
	require.NoError(t, conn.Call(ctx, "levels/check", CheckParams{Level: "negation", Components: negation()}, &res))
	assert.True(t, res.Solved)
	assert.Empty(t, res.Disallowed)

	withMP := append(negation(), board.Component{ID: "mp", Kind: board.ModusPonens, X: 20, Y: 20, W: 6, H: 6})
	require.NoError(t, conn.Call(ctx, "levels/check", CheckParams{Level: "negation", Components: withMP}, &res))
	assert.False(t, res.Solved)
	assert.Equal(t, []string{"mp"}, res.Disallowed)

	assert.Error(t, conn.Call(ctx, "levels/check", CheckParams{Level: "nope"}, &res))
}
