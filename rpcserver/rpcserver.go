// Package rpcserver serves a method table over JSON-RPC 2.0 with
// Content-Length framing, the way editors talk to language servers.
package rpcserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"time"

	"github.com/sourcegraph/jsonrpc2"
)

type Method func(ctx context.Context, conn jsonrpc2.JSONRPC2, params json.RawMessage) (interface{}, error)
type MethodMap map[string]Method

type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

func (stdrwc) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func (stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}

var (
	ctxType  = reflect.TypeOf((*context.Context)(nil)).Elem()
	connType = reflect.TypeOf((*jsonrpc2.JSONRPC2)(nil)).Elem()
	errType  = reflect.TypeOf((*error)(nil)).Elem()
)

// Zu adapts a typed handler of the form
//
//	func(ctx context.Context, conn jsonrpc2.JSONRPC2, params P) (R, error)
//
// into a Method. Params are decoded into a fresh P; a handler returning
// only an error is treated as a notification. Zu panics on any other shape.
func Zu(fn interface{}) Method {
	val := reflect.ValueOf(fn)
	typ := val.Type()
	if typ.Kind() != reflect.Func || typ.NumIn() != 3 || typ.In(0) != ctxType || typ.In(1) != connType {
		panic(fmt.Sprintf("rpcserver: bad handler type %s", typ))
	}
	switch {
	case typ.NumOut() == 1 && typ.Out(0) == errType:
	case typ.NumOut() == 2 && typ.Out(1) == errType:
	default:
		panic(fmt.Sprintf("rpcserver: unknown arity of return in %s", typ))
	}

	in := typ.In(2)
	return func(ctx context.Context, conn jsonrpc2.JSONRPC2, params json.RawMessage) (interface{}, error) {
		v := reflect.New(in)
		if len(params) > 0 {
			if err := json.Unmarshal(params, v.Interface()); err != nil {
				return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
			}
		}
		ret := val.Call([]reflect.Value{reflect.ValueOf(ctx), reflect.ValueOf(conn), v.Elem()})
		errVal := ret[len(ret)-1]
		if !errVal.IsNil() {
			return nil, errVal.Interface().(error)
		}
		if len(ret) == 1 {
			return nil, nil
		}
		return ret[0].Interface(), nil
	}
}

type options struct {
	logger  *slog.Logger
	observe func(method string, err error)
}

type Option func(*options)

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithObserver is called after every request with its outcome.
func WithObserver(fn func(method string, err error)) Option {
	return func(o *options) { o.observe = fn }
}

// Handler builds the jsonrpc2 handler that dispatches to methods.
func Handler(methods MethodMap, opts ...Option) jsonrpc2.Handler {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}

	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error) {
		start := time.Now()
		m, ok := methods[req.Method]
		if !ok {
			err := &jsonrpc2.Error{Code: jsonrpc2.CodeMethodNotFound, Message: fmt.Sprintf("method not found: %s", req.Method)}
			o.logger.Warn("unknown method", "method", req.Method)
			if o.observe != nil {
				o.observe(req.Method, err)
			}
			return nil, err
		}

		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		resp, err := m(ctx, conn, params)

		o.logger.Debug("handled request", "method", req.Method, "took", time.Since(start), "err", err)
		if o.observe != nil {
			o.observe(req.Method, err)
		}
		return resp, err
	})
}

// Serve answers requests on rwc until the peer disconnects or ctx is done.
func Serve(ctx context.Context, rwc io.ReadWriteCloser, methods MethodMap, opts ...Option) error {
	conn := jsonrpc2.NewConn(ctx, jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{}), Handler(methods, opts...))
	select {
	case <-conn.DisconnectNotify():
		return nil
	case <-ctx.Done():
		conn.Close()
		return ctx.Err()
	}
}

// ServeStdio serves on the process's stdin and stdout.
func ServeStdio(ctx context.Context, methods MethodMap, opts ...Option) error {
	return Serve(ctx, stdrwc{}, methods, opts...)
}
