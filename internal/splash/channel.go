package splash

import (
	"sync"

	"github.com/fortunelog/fortunelog-dev/pkg/types"
)

// MessageHandler answers a raw channel message. A nil reply means the method
// is not implemented.
type MessageHandler func(msg []byte) []byte

// Messenger is the bridge between the host shell and the embedded framework.
// Send delivers msg to the handler registered for channel and passes its reply,
// nil when no handler is registered, to reply.
type Messenger interface {
	SetMessageHandler(channel string, h MessageHandler)
	Send(channel string, msg []byte, reply func([]byte))
}

// Router is an in-process Messenger. Every delivery runs on its Scheduler, so
// handlers never run concurrently with each other or with animation frames.
type Router struct {
	sched Scheduler

	mu       sync.Mutex
	handlers map[string]MessageHandler
}

// NewRouter returns a Router delivering on sched.
func NewRouter(sched Scheduler) *Router {
	return &Router{sched: sched, handlers: make(map[string]MessageHandler)}
}

// SetMessageHandler registers h for channel; nil removes the handler.
func (r *Router) SetMessageHandler(channel string, h MessageHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h == nil {
		delete(r.handlers, channel)
		return
	}
	r.handlers[channel] = h
}

// Send queues msg for delivery on the scheduler.
func (r *Router) Send(channel string, msg []byte, reply func([]byte)) {
	r.sched.Post(func() {
		r.mu.Lock()
		h := r.handlers[channel]
		r.mu.Unlock()

		var out []byte
		if h != nil {
			out = h(msg)
		}
		if reply != nil {
			reply(out)
		}
	})
}

// MethodChannel dispatches method calls by name over a Messenger.
type MethodChannel struct {
	name      string
	messenger Messenger
	codec     Codec
}

// NewMethodChannel returns a channel named name. A nil codec means JSONCodec.
func NewMethodChannel(name string, messenger Messenger, codec Codec) *MethodChannel {
	if codec == nil {
		codec = JSONCodec{}
	}
	return &MethodChannel{name: name, messenger: messenger, codec: codec}
}

// Name returns the channel name.
func (c *MethodChannel) Name() string { return c.name }

// SetHandler registers h to answer calls on the channel; nil unregisters.
// Undecodable calls are answered with a "bad_call" error.
func (c *MethodChannel) SetHandler(h Handler) {
	if h == nil {
		c.messenger.SetMessageHandler(c.name, nil)
		return
	}
	c.messenger.SetMessageHandler(c.name, func(msg []byte) []byte {
		var result types.Result
		call, err := c.codec.DecodeCall(msg)
		if err != nil {
			result = types.Failure("bad_call", err.Error(), nil)
		} else {
			result = h(call)
		}
		reply, err := c.codec.EncodeResult(result)
		if err != nil {
			reply, _ = c.codec.EncodeResult(types.Failure("bad_result", err.Error(), nil))
		}
		return reply
	})
}

// Invoke sends a call and passes the decoded result to reply.
func (c *MethodChannel) Invoke(method string, args any, reply func(types.Result)) error {
	msg, err := c.codec.EncodeCall(types.MethodCall{Method: method, Arguments: args})
	if err != nil {
		return err
	}
	c.messenger.Send(c.name, msg, func(raw []byte) {
		if reply == nil {
			return
		}
		result, err := c.codec.DecodeResult(raw)
		if err != nil {
			result = types.Failure("bad_reply", err.Error(), nil)
		}
		reply(result)
	})
	return nil
}
