package types

// Overlay is the toolkit-specific splash view. Present attaches it above all
// other content; Dismiss fades it out asynchronously, detaches it and then
// calls onComplete. Implementations are driven from a single UI goroutine.
type Overlay interface {
	Present()
	Dismiss(onComplete func())
}

// OverlayState is the lifecycle position of a splash overlay. Transitions only
// move forward: Pending -> Presented -> Dismissing -> Removed.
type OverlayState int

// Overlay lifecycle states.
const (
	OverlayPending OverlayState = iota
	OverlayPresented
	OverlayDismissing
	OverlayRemoved
)

var overlayStateNames = [...]string{"pending", "presented", "dismissing", "removed"}

func (s OverlayState) String() string {
	if s < 0 || int(s) >= len(overlayStateNames) {
		return "unknown"
	}
	return overlayStateNames[s]
}

// Visible reports whether an overlay in this state still covers the content
// and has not been asked to go away.
func (s OverlayState) Visible() bool { return s == OverlayPresented }

// MethodCall is one inbound message on a method channel.
type MethodCall struct {
	Method    string `json:"method"`
	Arguments any    `json:"args"`
}

// ResultKind discriminates the outcome of a method call.
type ResultKind int

// Method call outcomes.
const (
	ResultSuccess ResultKind = iota
	ResultNotImplemented
	ResultError
)

func (k ResultKind) String() string {
	switch k {
	case ResultSuccess:
		return "success"
	case ResultNotImplemented:
		return "not-implemented"
	case ResultError:
		return "error"
	default:
		return "unknown"
	}
}

// Result is the reply to a MethodCall. Value is set for ResultSuccess;
// Code, Message and Details are set for ResultError.
type Result struct {
	Kind    ResultKind
	Value   any
	Code    string
	Message string
	Details any
}

// Success returns a successful result carrying value.
func Success(value any) Result { return Result{Kind: ResultSuccess, Value: value} }

// NotImplemented returns the result for an unrecognized method.
func NotImplemented() Result { return Result{Kind: ResultNotImplemented} }

// Failure returns an error result.
func Failure(code, message string, details any) Result {
	return Result{Kind: ResultError, Code: code, Message: message, Details: details}
}
