package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add   func(AddArgs) (Result, error)
	Del   func(DelArgs) (Result, error)
	Show  func(ShowArgs) (Result, error)
	Copy  func() (Result, error)
	Dates func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeDel:
		if handlers.Del == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "del handler not configured"}
		}
		return handlers.Del(*cmd.Del)
	case TypeShow:
		if handlers.Show == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "show handler not configured"}
		}
		return handlers.Show(*cmd.Show)
	case TypeCopy:
		if handlers.Copy == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "copy handler not configured"}
		}
		return handlers.Copy()
	case TypeDates:
		if handlers.Dates == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "dates handler not configured"}
		}
		return handlers.Dates()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
