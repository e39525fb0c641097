package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"reflect"
	"sort"
	"sync"

	"github.com/google/go-dap"

	"hilbert-circuits/board"
	"hilbert-circuits/board/nets"
	"hilbert-circuits/circuitfile"
	"hilbert-circuits/logic"
	"hilbert-circuits/solver"
)

const (
	refComponents = 1
	refNets       = 2
	refResult     = 3
)

type server struct {
	solver *solver.Solver

	program string
	doc     *circuitfile.Document
	nets    *nets.Netlist
	snaps   []solver.Snapshot
	result  solver.Result
	// pass indexes snaps; it is the pass the session is stopped after.
	pass int

	// pending events go out after the response to the current request.
	pending []dap.EventMessage
}

type connection struct {
	mu  sync.Mutex
	w   io.Writer
	seq int
	// err is the first write failure; nothing is written after it.
	err error
}

func (c *connection) send(m dap.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return
	}
	c.seq++
	switch m := m.(type) {
	case dap.ResponseMessage:
		m.GetResponse().Seq = c.seq
	case dap.EventMessage:
		m.GetEvent().Seq = c.seq
	}
	if err := dap.WriteProtocolMessage(c.w, m); err != nil {
		c.err = fmt.Errorf("writing to client: %w", err)
	}
}

func (c *connection) failed() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (s *server) later(event string, d dap.EventMessage) {
	d.GetEvent().Event = event
	d.GetEvent().Type = "event"
	s.pending = append(s.pending, d)
}

func (s *server) Initialize(ctx context.Context, conn *connection, params *dap.InitializeRequest) (*dap.InitializeResponse, error) {
	s.later("initialized", &dap.InitializedEvent{})

	return &dap.InitializeResponse{
		Body: dap.Capabilities{
			SupportsConfigurationDoneRequest: true,
			SupportsEvaluateForHovers:        true,
		},
	}, nil
}

func (s *server) Launch(ctx context.Context, conn *connection, params *dap.LaunchRequest) (*dap.LaunchResponse, error) {
	var t struct {
		Program     string `json:"program"`
		StopOnEntry bool   `json:"stopOnEntry"`
	}
	if err := json.Unmarshal(params.Arguments, &t); err != nil {
		return nil, fmt.Errorf("bad launch arguments: %w", err)
	}

	doc, err := circuitfile.LoadFile(t.Program)
	if err != nil {
		return nil, err
	}

	s.program = t.Program
	s.doc = doc
	s.nets = nets.Build(board.Wires(doc.Components))
	s.snaps, s.result = s.solver.Trace(doc.Components, doc.Goal)
	s.pass = 0

	switch {
	case len(s.snaps) == 0:
		s.finish()
	case t.StopOnEntry:
		s.stop("entry")
	default:
		s.pass = len(s.snaps) - 1
		s.finish()
	}
	return &dap.LaunchResponse{}, nil
}

func (s *server) ConfigurationDone(
	ctx context.Context, conn *connection,
	params *dap.ConfigurationDoneRequest) (*dap.ConfigurationDoneResponse, error) {

	return &dap.ConfigurationDoneResponse{}, nil
}

func (s *server) SetBreakpoints(ctx context.Context, conn *connection, params *dap.SetBreakpointsRequest) (*dap.SetBreakpointsResponse, error) {
	return &dap.SetBreakpointsResponse{}, nil
}

func (s *server) SetExceptionBreakpoints(
	ctx context.Context, conn *connection,
	params *dap.SetExceptionBreakpointsRequest) (*dap.SetExceptionBreakpointsResponse, error) {

	return &dap.SetExceptionBreakpointsResponse{}, nil
}

func (s *server) stop(reason string) {
	s.later("stopped", &dap.StoppedEvent{Body: dap.StoppedEventBody{
		Reason:            reason,
		Description:       fmt.Sprintf("after pass %d", s.pass+1),
		ThreadId:          1,
		AllThreadsStopped: true,
	}})
}

func (s *server) finish() {
	var msg string
	switch {
	case len(s.snaps) == 0:
		msg = fmt.Sprintf("goal %q does not parse; nothing to evaluate\n", s.doc.Goal)
	case s.result.Solved:
		msg = fmt.Sprintf("solved after %d passes\n", s.result.Passes)
	default:
		msg = fmt.Sprintf("not solved after %d passes (converged: %t)\n", s.result.Passes, s.result.Converged)
	}
	s.later("output", &dap.OutputEvent{Body: dap.OutputEventBody{Category: "console", Output: msg}})
	s.later("terminated", &dap.TerminatedEvent{})
}

func (s *server) step() {
	if s.pass+1 >= len(s.snaps) {
		s.finish()
		return
	}
	s.pass++
	s.stop("step")
}

func (s *server) Next(
	ctx context.Context, conn *connection,
	params *dap.NextRequest) (*dap.NextResponse, error) {

	s.step()
	return &dap.NextResponse{}, nil
}

func (s *server) StepIn(
	ctx context.Context, conn *connection,
	params *dap.StepInRequest) (*dap.StepInResponse, error) {

	s.step()
	return &dap.StepInResponse{}, nil
}

func (s *server) Continue(
	ctx context.Context, conn *connection,
	params *dap.ContinueRequest) (*dap.ContinueResponse, error) {

	if len(s.snaps) > 0 {
		s.pass = len(s.snaps) - 1
	}
	s.finish()
	return &dap.ContinueResponse{Body: dap.ContinueResponseBody{AllThreadsContinued: true}}, nil
}

func (s *server) Threads(
	ctx context.Context, conn *connection,
	params *dap.ThreadsRequest) (*dap.ThreadsResponse, error) {

	return &dap.ThreadsResponse{
		Body: dap.ThreadsResponseBody{
			Threads: []dap.Thread{
				{
					Id:   1,
					Name: "Propagation",
				},
			},
		},
	}, nil
}

func (s *server) snapshot() (solver.Snapshot, error) {
	if s.pass < 0 || s.pass >= len(s.snaps) {
		return solver.Snapshot{}, errors.New("no circuit is being stepped")
	}
	return s.snaps[s.pass], nil
}

func (s *server) StackTrace(
	ctx context.Context, conn *connection,
	params *dap.StackTraceRequest) (*dap.StackTraceResponse, error) {

	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	frames := []dap.StackFrame{{
		Id:   snap.Pass,
		Name: fmt.Sprintf("pass %d", snap.Pass),
		Line: 1,
		Source: dap.Source{
			Name: path.Base(s.program),
			Path: s.program,
		},
	}}
	return &dap.StackTraceResponse{
		Body: dap.StackTraceResponseBody{
			StackFrames: frames,
			TotalFrames: len(frames),
		},
	}, nil
}

func (s *server) Scopes(
	ctx context.Context, conn *connection,
	params *dap.ScopesRequest) (*dap.ScopesResponse, error) {

	return &dap.ScopesResponse{
		Body: dap.ScopesResponseBody{
			Scopes: []dap.Scope{
				{Name: "Components", VariablesReference: refComponents},
				{Name: "Nets", VariablesReference: refNets},
				{Name: "Result", VariablesReference: refResult, Expensive: true},
			},
		},
	}, nil
}

func shown(v string) string {
	if v == "" {
		return "∅"
	}
	return v
}

func (s *server) Variables(
	ctx context.Context, conn *connection,
	params *dap.VariablesRequest) (*dap.VariablesResponse, error) {

	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	var variables []dap.Variable
	switch params.Arguments.VariablesReference {
	case refComponents:
		for _, c := range s.doc.Components {
			if c.Kind == board.Wire {
				continue
			}
			variables = append(variables, dap.Variable{
				Name:  c.ID,
				Value: shown(snap.Values[c.ID]),
				Type:  c.Kind.String(),
			})
		}
	case refNets:
		conflicted := map[int]bool{}
		for _, n := range snap.Conflicts {
			conflicted[n] = true
		}
		for i, v := range snap.Nets {
			if conflicted[i] {
				v = solver.ErrorSignal
			}
			variables = append(variables, dap.Variable{
				Name:  solver.NetID(i),
				Value: shown(v),
				Type:  s.nets.Kind(i).String(),
			})
		}
	case refResult:
		variables = []dap.Variable{
			{Name: "solved", Value: fmt.Sprint(s.result.Solved), Type: "bool"},
			{Name: "passes", Value: fmt.Sprint(s.result.Passes), Type: "int"},
			{Name: "converged", Value: fmt.Sprint(s.result.Converged), Type: "bool"},
		}
		ports := make([]string, 0, len(s.result.ErrorPorts))
		for id := range s.result.ErrorPorts {
			ports = append(ports, id)
		}
		sort.Strings(ports)
		for _, id := range ports {
			variables = append(variables, dap.Variable{Name: "error " + id, Value: fmt.Sprint(s.result.ErrorPorts[id]), Type: "ports"})
		}
	default:
		return nil, fmt.Errorf("unknown variables reference %d", params.Arguments.VariablesReference)
	}

	return &dap.VariablesResponse{
		Body: dap.VariablesResponseBody{
			Variables: variables,
		},
	}, nil
}

// Evaluate shows a component's value at the current pass, or normalises a
// formula typed into the console.
func (s *server) Evaluate(
	ctx context.Context, conn *connection,
	params *dap.EvaluateRequest) (*dap.EvaluateResponse, error) {

	expr := params.Arguments.Expression
	if snap, err := s.snapshot(); err == nil {
		if v, ok := snap.Values[expr]; ok {
			return &dap.EvaluateResponse{Body: dap.EvaluateResponseBody{Result: v}}, nil
		}
		for _, c := range s.doc.Components {
			if c.ID == expr {
				return &dap.EvaluateResponse{Body: dap.EvaluateResponseBody{Result: shown("")}}, nil
			}
		}
	}

	v, err := logic.ParseGoal(expr)
	if err != nil {
		return nil, fmt.Errorf("not a component or formula: %w", err)
	}
	return &dap.EvaluateResponse{Body: dap.EvaluateResponseBody{Result: v.String()}}, nil
}

func (s *server) Disconnect(
	ctx context.Context, conn *connection,
	params *dap.DisconnectRequest) (*dap.DisconnectResponse, error) {

	return &dap.DisconnectResponse{}, nil
}

type method func(context.Context, *connection, dap.Message)
type methodmap map[string]method

func (s *server) zu(fn interface{}) method {
	val := reflect.ValueOf(fn)

	return func(ctx context.Context, conn *connection, params dap.Message) {
		ret := val.Call([]reflect.Value{reflect.ValueOf(ctx), reflect.ValueOf(conn), reflect.ValueOf(params)})
		if len(ret) != 2 {
			panic("unknown arity of return")
		}
		req := params.(dap.RequestMessage).GetRequest()

		if !ret[1].IsNil() {
			err := ret[1].Interface().(error)
			er := dap.ErrorResponse{}
			er.Type = "response"
			er.Command = req.Command
			er.Success = false
			er.RequestSeq = req.Seq
			er.Message = err.Error()

			s.pending = nil
			conn.send(&er)
			return
		}

		resp := ret[0].Interface().(dap.ResponseMessage)
		rresp := resp.GetResponse()
		rresp.Type = "response"
		rresp.Success = true
		rresp.Command = req.Command
		rresp.RequestSeq = req.Seq
		conn.send(resp)

		for _, ev := range s.pending {
			conn.send(ev)
		}
		s.pending = nil
	}
}

// Serve reads requests from r until the client disconnects or r ends. It
// stops with an error as soon as a message cannot be written to w.
func Serve(r io.Reader, w io.Writer, sv *solver.Solver) error {
	reader := bufio.NewReader(r)
	conn := &connection{w: w}
	s := &server{solver: sv, pass: -1}
	a := methodmap{
		"initialize":              s.zu(s.Initialize),
		"launch":                  s.zu(s.Launch),
		"configurationDone":       s.zu(s.ConfigurationDone),
		"setBreakpoints":          s.zu(s.SetBreakpoints),
		"setExceptionBreakpoints": s.zu(s.SetExceptionBreakpoints),
		"continue":                s.zu(s.Continue),
		"next":                    s.zu(s.Next),
		"stepIn":                  s.zu(s.StepIn),
		"threads":                 s.zu(s.Threads),
		"stackTrace":              s.zu(s.StackTrace),
		"scopes":                  s.zu(s.Scopes),
		"variables":               s.zu(s.Variables),
		"evaluate":                s.zu(s.Evaluate),
		"disconnect":              s.zu(s.Disconnect),
	}

	for {
		req, err := dap.ReadProtocolMessage(reader)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil
		}
		if err != nil {
			continue
		}

		ctx := context.Background()

		request, ok := req.(dap.RequestMessage)
		if !ok {
			continue
		}
		command := request.GetRequest().Command
		m, ok := a[command]
		if !ok {
			continue
		}
		m(ctx, conn, request)
		if err := conn.failed(); err != nil {
			return err
		}
		if command == "disconnect" {
			return nil
		}
	}
}
