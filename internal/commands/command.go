// Package commands parses the TUI command palette's text grammar:
//
//	add HH:MM-HH:MM name [/ subtask; subtask; ...]
//	del <task-id>
//	show [YYYY-MM-DD]
//	copy
//	dates
package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeAdd   Type = "add"
	TypeDel   Type = "del"
	TypeShow  Type = "show"
	TypeCopy  Type = "copy"
	TypeDates Type = "dates"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	StartTime string
	EndTime   string
	Name      string
	Subtasks  []string
}

type DelArgs struct {
	TaskID string
}

type ShowArgs struct {
	Date string
}

type Command struct {
	Type Type
	Raw  string
	Add  *AddArgs
	Del  *DelArgs
	Show *ShowArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(raw, args)
	case TypeDel:
		return parseDel(raw, args)
	case TypeShow:
		return parseShow(raw, args)
	case TypeCopy:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "copy takes no arguments"}
		}
		return Command{Type: TypeCopy, Raw: raw}, nil
	case TypeDates:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "dates takes no arguments"}
		}
		return Command{Type: TypeDates, Raw: raw}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a time range and a name"}
	}
	start, end, ok := strings.Cut(args[0], "-")
	if !ok || start == "" || end == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires HH:MM-HH:MM as its first argument"}
	}

	rest := strings.Join(args[1:], " ")
	name, subtaskPart, _ := strings.Cut(rest, " / ")
	name = strings.TrimSpace(name)
	if name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a name"}
	}

	subtasks := []string{}
	for _, st := range strings.Split(subtaskPart, ";") {
		if st = strings.TrimSpace(st); st != "" {
			subtasks = append(subtasks, st)
		}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{
		StartTime: start,
		EndTime:   end,
		Name:      name,
		Subtasks:  subtasks,
	}}, nil
}

func parseDel(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "del requires exactly one task id"}
	}
	return Command{Type: TypeDel, Raw: raw, Del: &DelArgs{TaskID: args[0]}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) > 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show takes at most one date"}
	}
	date := ""
	if len(args) == 1 {
		date = args[0]
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Date: date}}, nil
}
