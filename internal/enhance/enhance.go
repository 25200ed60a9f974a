// Package enhance rewrites debate messages through an external
// text-generation service before the client submits them. It never touches
// room state.
package enhance

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Mode selects the rewrite style.
type Mode string

const (
	ModeFormal     Mode = "formal"
	ModePersuasive Mode = "persuasive"
	ModeConcise    Mode = "concise"
	ModeNeutral    Mode = "neutral"
)

var (
	ErrEmptyMessage = errors.New("message cannot be empty")
	ErrUnknownMode  = errors.New("unknown enhancement mode")
	ErrDisabled     = errors.New("enhancement is not configured")
)

var modeInstructions = map[Mode]string{
	ModeFormal:     "Make it more structured and articulate while keeping its conviction.",
	ModePersuasive: "Make it more persuasive with a clearer logical flow, without turning aggressive.",
	ModeConcise:    "Make it shorter and punchier while keeping the core argument.",
	ModeNeutral:    "Soften emotional language while keeping the original point.",
}

// ParseMode validates a mode name. An empty name selects ModeFormal.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeFormal, nil
	}
	m := Mode(strings.ToLower(s))
	if _, ok := modeInstructions[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
	return m, nil
}

// Enhancer rewrites a message in the given mode.
type Enhancer interface {
	Enhance(ctx context.Context, message string, mode Mode) (string, error)
}

// Prompt builds the instruction sent to the text-generation service.
func Prompt(message string, mode Mode) string {
	var b strings.Builder
	b.WriteString("You help people refine their debate arguments.\n\n")
	b.WriteString("Rewrite the message below, fixing grammar, tone and logical flow without changing its meaning.\n")
	b.WriteString("Style: ")
	b.WriteString(modeInstructions[mode])
	b.WriteString("\n\nRules:\n")
	b.WriteString("- keep roughly the same length and add no new arguments\n")
	b.WriteString("- keep the original stance\n")
	b.WriteString("- stay conversational\n\n")
	b.WriteString("Message:\n\"")
	b.WriteString(message)
	b.WriteString("\"\n\nReply with the rewritten message only.")
	return b.String()
}

// Disabled is the Enhancer used when no service is configured.
type Disabled struct{}

// Enhance always fails with ErrDisabled.
func (Disabled) Enhance(context.Context, string, Mode) (string, error) {
	return "", ErrDisabled
}
