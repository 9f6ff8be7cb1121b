package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lifeworld/internal/core"
)

// Command selects what a Request asks the worker to do.
type Command string

const (
	CmdStart     Command = "start"
	CmdStartOnce Command = "startOnce"
	CmdStop      Command = "stop"
)

// ResponseType distinguishes per-generation notifications from the final message.
type ResponseType string

const (
	Notify   ResponseType = "notify"
	Complete ResponseType = "complete"
)

var (
	// ErrUnknownCommand is reported for requests with an unrecognised command.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrStopped is returned by RunContinuous when emit declines further results.
	ErrStopped = errors.New("run stopped")
)

// Request is the message posted to a Worker. Grid is owned by the worker once
// posted; callers hand over a copy.
type Request struct {
	Command    Command
	Width      int
	Height     int
	Algorithm  string
	Grid       []int32
	Params     []byte
	Interval   time.Duration
	Seed       int64
	Generation int
	Turns      int
}

// Response is the message a Worker emits. Notify carries a grid the receiver
// owns exclusively. Complete ends the exchange for one request.
type Response struct {
	Type       ResponseType
	Generation int
	Grid       *core.Grid
	Stats      core.Stats
	Err        error
}

// Worker runs requests on its own goroutine and reports through a channel.
// It shares no mutable state with the poster.
type Worker struct {
	engine *Engine
	inbox  chan Request
	outbox chan Response
	cancel context.CancelFunc
	done   chan struct{}
}

// Spawn starts a worker bound to ctx.
func (e *Engine) Spawn(ctx context.Context) *Worker {
	ctx, cancel := context.WithCancel(ctx)
	w := &Worker{
		engine: e,
		inbox:  make(chan Request, 1),
		outbox: make(chan Response, 1),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go w.loop(ctx)
	return w
}

// Post delivers a request. It returns false if the worker has terminated.
func (w *Worker) Post(req Request) bool {
	select {
	case w.inbox <- req:
		return true
	case <-w.done:
		return false
	}
}

// Responses returns the channel results are delivered on. It is closed once
// the worker has terminated.
func (w *Worker) Responses() <-chan Response { return w.outbox }

// Terminate stops the worker without waiting for it. Results that have not
// been received yet are abandoned.
func (w *Worker) Terminate() { w.cancel() }

func (w *Worker) loop(ctx context.Context) {
	defer close(w.done)
	defer close(w.outbox)

	var runCancel context.CancelFunc
	var runDone chan struct{}
	stopRun := func() {
		if runCancel == nil {
			return
		}
		runCancel()
		<-runDone
		runCancel, runDone = nil, nil
	}
	defer stopRun()

	for {
		select {
		case <-ctx.Done():
			return
		case req := <-w.inbox:
			switch req.Command {
			case CmdStop:
				stopRun()
			case CmdStart, CmdStartOnce:
				stopRun()
				rctx, cancel := context.WithCancel(ctx)
				done := make(chan struct{})
				runCancel, runDone = cancel, done
				go func() {
					defer close(done)
					w.run(rctx, req)
				}()
			default:
				w.send(ctx, Response{Type: Complete, Err: fmt.Errorf("%w %q", ErrUnknownCommand, req.Command)})
			}
		}
	}
}

func (w *Worker) send(ctx context.Context, r Response) bool {
	select {
	case w.outbox <- r:
		return true
	case <-ctx.Done():
		return false
	}
}

func (w *Worker) run(ctx context.Context, req Request) {
	grid, err := core.GridFromCells(req.Width, req.Height, req.Grid)
	if err != nil {
		w.send(ctx, Response{Type: Complete, Generation: req.Generation, Err: fmt.Errorf("request grid: %w", err)})
		return
	}
	params, err := core.DecodeParams(req.Params)
	if err != nil {
		w.send(ctx, Response{Type: Complete, Generation: req.Generation, Err: err})
		return
	}
	alg := core.Select(req.Algorithm, nil)
	if alg == nil {
		w.send(ctx, Response{Type: Complete, Generation: req.Generation, Err: fmt.Errorf("no algorithm for %q", req.Algorithm)})
		return
	}

	opts := RunOptions{Seed: req.Seed, Generation: req.Generation, Interval: req.Interval, Turns: req.Turns}
	if req.Command == CmdStartOnce {
		opts.Turns = 1
	}
	last := req.Generation
	err = w.engine.RunContinuous(ctx, grid, alg, params, opts, func(gen int, g *core.Grid, s core.Stats) bool {
		last = gen
		// The engine keeps reading g as the next input, so the receiver gets a copy.
		return w.send(ctx, Response{Type: Notify, Generation: gen, Grid: g.Clone(), Stats: s})
	})
	if err != nil {
		return
	}
	w.send(ctx, Response{Type: Complete, Generation: last})
}
