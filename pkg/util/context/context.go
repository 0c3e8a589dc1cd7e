package context

import (
	gocontext "context"

	"github.com/sirupsen/logrus"
)

// Context extends the regular golang context.Context interface with functionnalities such as access to logger and synthesis scope.
type Context interface {
	gocontext.Context
	Logger() *logrus.Entry
	Service() string
	Stage() string
	TaskID() string
}

// Background returns a non-nil, empty Context.
func Background() Context {
	return ctx{
		Context: gocontext.Background(),
	}
}

// FromContext returns a new context from the given go context.
func FromContext(c gocontext.Context) Context {
	return ctx{
		Context: c,
	}
}

// WithService returns a copy of the context scoped to the given service and stage.
func WithService(c Context, service, stage string) Context {
	return ctx{
		c,
		service,
		stage,
		c.TaskID(),
	}
}

// WithTaskID returns a copy of the context with a task identifier.
func WithTaskID(c Context, taskID string) Context {
	return ctx{
		c,
		c.Service(),
		c.Stage(),
		taskID,
	}
}

// WithCancel returns a copy of the context with a new Done channel and its cancel function.
func WithCancel(c Context) (Context, gocontext.CancelFunc) {
	gctx, cancel := gocontext.WithCancel(c)
	return ctx{
		gctx,
		c.Service(),
		c.Stage(),
		c.TaskID(),
	}, cancel
}

type ctx struct {
	gocontext.Context
	service string
	stage   string
	taskID  string
}

func (c ctx) Logger() *logrus.Entry {
	l := logrus.New()
	l.SetLevel(logrus.TraceLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyMsg: "message",
		},
	})
	e := logrus.NewEntry(l)
	if c.Service() != "" {
		e = e.WithField("service", c.Service())
	}
	if c.Stage() != "" {
		e = e.WithField("stage", c.Stage())
	}
	if c.TaskID() != "" {
		e = e.WithField("task", c.TaskID())
	}
	return e
}

func (c ctx) Service() string {
	return c.service
}

func (c ctx) Stage() string {
	return c.stage
}

func (c ctx) TaskID() string {
	return c.taskID
}
