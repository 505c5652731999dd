package command

import (
	"context"
	"sync"

	"browsed/internal/errors"
	"browsed/internal/log"
	"browsed/internal/session"
)

type job struct {
	req   Request
	reply chan Response
}

// Dispatcher runs commands against one session, one at a time, in the order
// they are accepted. Any number of goroutines may call Dispatch.
type Dispatcher struct {
	session *session.Session
	logger  *log.Logger

	queue     chan job
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// NewDispatcher starts a dispatcher for s. Call Close to stop it.
func NewDispatcher(s *session.Session, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.Default()
	}
	d := &Dispatcher{
		session: s,
		logger:  logger.With(log.F("session", s.ID())),
		queue:   make(chan job),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go d.loop()
	return d
}

func (d *Dispatcher) loop() {
	defer close(d.stopped)
	for {
		select {
		case j := <-d.queue:
			resp := Execute(d.session, j.req)
			if !resp.OK {
				d.logger.With(log.F("command", resp.Command), log.F("error_kind", resp.ErrorKind)).
					Debugf("command failed: %s", resp.Error)
			}
			j.reply <- resp
		case <-d.done:
			return
		}
	}
}

// Dispatch queues req and waits for its response. If ctx ends before the
// command is accepted, or the dispatcher is closed, it returns a LockError
// and the command does not run. Once accepted a command always completes.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, d.rejected(req, err)
	}

	reply := make(chan Response, 1)
	select {
	case d.queue <- job{req: req, reply: reply}:
	case <-ctx.Done():
		return Response{}, d.rejected(req, ctx.Err())
	case <-d.done:
		return Response{}, errors.ErrQueueClosed
	}
	return <-reply, nil
}

func (d *Dispatcher) rejected(req Request, cause error) error {
	err := errors.NewLockError("command not accepted", "session", cause)
	d.logger.WithError(err).With(log.F("command", req.Command)).Error("command rejected")
	return err
}

// Session returns the session commands run against.
func (d *Dispatcher) Session() *session.Session {
	return d.session
}

// Close stops accepting commands and waits for the running one to finish.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.done)
	})
	<-d.stopped
}
