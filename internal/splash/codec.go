package splash

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fortunelog/fortunelog-dev/pkg/types"
)

// Codec converts method calls and results to and from channel messages.
type Codec interface {
	EncodeCall(call types.MethodCall) ([]byte, error)
	DecodeCall(msg []byte) (types.MethodCall, error)
	EncodeResult(result types.Result) ([]byte, error)
	DecodeResult(reply []byte) (types.Result, error)
}

// ErrMalformedEnvelope is returned when a reply is neither a success nor an
// error envelope.
var ErrMalformedEnvelope = errors.New("malformed result envelope")

// JSONCodec is the JSON method codec used by Flutter's JSONMethodCodec.
// Calls are {"method": name, "args": value}; success replies are [value];
// error replies are [code, message, details]; not-implemented is an empty
// reply.
type JSONCodec struct{}

var _ Codec = JSONCodec{}

func (JSONCodec) EncodeCall(call types.MethodCall) ([]byte, error) {
	return json.Marshal(call)
}

func (JSONCodec) DecodeCall(msg []byte) (types.MethodCall, error) {
	var raw struct {
		Method *string `json:"method"`
		Args   any     `json:"args"`
	}
	if err := json.Unmarshal(msg, &raw); err != nil {
		return types.MethodCall{}, fmt.Errorf("decode method call: %w", err)
	}
	if raw.Method == nil {
		return types.MethodCall{}, errors.New("decode method call: missing method")
	}
	return types.MethodCall{Method: *raw.Method, Arguments: raw.Args}, nil
}

func (JSONCodec) EncodeResult(r types.Result) ([]byte, error) {
	switch r.Kind {
	case types.ResultSuccess:
		return json.Marshal([]any{r.Value})
	case types.ResultError:
		return json.Marshal([]any{r.Code, r.Message, r.Details})
	default:
		return nil, nil
	}
}

func (JSONCodec) DecodeResult(reply []byte) (types.Result, error) {
	if len(reply) == 0 {
		return types.NotImplemented(), nil
	}
	var env []any
	if err := json.Unmarshal(reply, &env); err != nil {
		return types.Result{}, fmt.Errorf("decode result: %w", err)
	}
	switch len(env) {
	case 1:
		return types.Success(env[0]), nil
	case 3:
		code, ok := env[0].(string)
		if !ok {
			return types.Result{}, ErrMalformedEnvelope
		}
		msg, _ := env[1].(string)
		return types.Failure(code, msg, env[2]), nil
	default:
		return types.Result{}, ErrMalformedEnvelope
	}
}
