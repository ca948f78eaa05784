package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeSkip     Type = "skip"
	TypeDistract Type = "distract"
	TypeReflect  Type = "reflect"
	TypeAck      Type = "ack"
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

// AddArgs adds a manual block to today's plan. Category defaults to
// study when the cat: prefix is absent.
type AddArgs struct {
	Title    string
	Category string
}

// DistractArgs logs one distraction against today.
type DistractArgs struct {
	Note string
}

// ReflectArgs fills one field of the evening reflection. Field is one
// of worked, failed, improve.
type ReflectArgs struct {
	Field string
	Text  string
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Distract *DistractArgs
	Reflect  *ReflectArgs
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
		return parseAdd(input, args)
	case TypeSkip:
		return Command{Type: TypeSkip, Raw: input}, nil
	case TypeDistract:
		return parseDistract(input, args)
	case TypeReflect:
		return parseReflect(input, args)
	case TypeAck:
		return Command{Type: TypeAck, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	category := ""
	titleParts := make([]string, 0, len(args))
	for _, arg := range args {
		if strings.HasPrefix(strings.ToLower(arg), "cat:") {
			category = strings.TrimSpace(arg[len("cat:"):])
			continue
		}
		titleParts = append(titleParts, arg)
	}
	title := strings.TrimSpace(strings.Join(titleParts, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title, Category: category}}, nil
}

func parseDistract(raw string, args []string) (Command, error) {
	note := strings.TrimSpace(strings.Join(args, " "))
	if note == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "distract requires a note"}
	}
	return Command{Type: TypeDistract, Raw: raw, Distract: &DistractArgs{Note: note}}, nil
}

func parseReflect(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "reflect requires a field and text"}
	}
	field := strings.ToLower(args[0])
	switch field {
	case "worked", "failed", "improve":
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown reflection field: %s", field)}
	}
	return Command{Type: TypeReflect, Raw: raw, Reflect: &ReflectArgs{Field: field, Text: strings.Join(args[1:], " ")}}, nil
}
