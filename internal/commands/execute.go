package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add      func(AddArgs) (Result, error)
	Skip     func() (Result, error)
	Distract func(DistractArgs) (Result, error)
	Reflect  func(ReflectArgs) (Result, error)
	Ack      func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeSkip:
		if handlers.Skip == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "skip handler not configured"}
		}
		return handlers.Skip()
	case TypeDistract:
		if handlers.Distract == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "distract handler not configured"}
		}
		return handlers.Distract(*cmd.Distract)
	case TypeReflect:
		if handlers.Reflect == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "reflect handler not configured"}
		}
		return handlers.Reflect(*cmd.Reflect)
	case TypeAck:
		if handlers.Ack == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "ack handler not configured"}
		}
		return handlers.Ack()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
