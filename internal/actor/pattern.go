// Package actor recognizes how an actor selects its current action and
// locates actor source files.
package actor

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/mvp-joe/graphovl/internal/scan"
)

var (
	// ErrNoActionStructure indicates none of the supported action dispatch
	// idioms was found in the source.
	ErrNoActionStructure = errors.New("no actor action-based structure found")

	// ErrMalformedActionArray indicates an action function array was
	// declared but its initializer or its call site could not be located.
	ErrMalformedActionArray = errors.New("invalid array-based actor")
)

// ActionFuncField is the primary action field of raw function-pointer
// actors.
const ActionFuncField = "this->actionFunc"

// Kind identifies an action dispatch idiom.
type Kind int

const (
	// SetupAction actors change action through <prefix>_SetupAction(this, func).
	SetupAction Kind = iota + 1
	// SetAction actors change action through <prefix>_SetAction(this, play, func).
	SetAction
	// ArrayIndexed actors index a table of action functions with an integer.
	ArrayIndexed
	// RawFunctionPointer actors assign this->actionFunc directly.
	RawFunctionPointer
)

func (k Kind) String() string {
	switch k {
	case SetupAction:
		return "SetupAction"
	case SetAction:
		return "SetAction"
	case ArrayIndexed:
		return "ArrayIndexed"
	case RawFunctionPointer:
		return "RawFunctionPointer"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Pattern is the dispatch idiom of an actor. Functions and DispatchVar
// are only set for ArrayIndexed.
type Pattern struct {
	Kind Kind
	// Functions is the action function table in declaration order.
	Functions []string
	// DispatchVar is the index expression used at the table call site,
	// e.g. "this->action".
	DispatchVar string
}

// UsesDispatchCalls reports whether action changes go through a setup
// function or a raw pointer, in which case calls to _SetupAction and
// _SetAction are already represented by transitions.
func (p Pattern) UsesDispatchCalls() bool {
	return p.Kind == SetupAction || p.Kind == SetAction || p.Kind == RawFunctionPointer
}

// Prefix returns the actor prefix: the first underscore-separated segment
// of the first function ending in "_Init", or "" if there is none.
func Prefix(names []string) string {
	for _, name := range names {
		if strings.HasSuffix(name, "_Init") {
			return strings.Split(name, "_")[0]
		}
	}
	return ""
}

// Detect decides the dispatch idiom of an actor. The checks run in a fixed
// priority order: SetupAction, SetAction, ArrayIndexed, RawFunctionPointer.
func Detect(source string, names []string) (Pattern, error) {
	prefix := Prefix(names)

	if slices.Contains(names, prefix+"_SetupAction") {
		return Pattern{Kind: SetupAction}, nil
	}
	if slices.Contains(names, prefix+"_SetAction") {
		return Pattern{Kind: SetAction}, nil
	}

	funcType := regexp.QuoteMeta(prefix + "ActionFunc")
	header := regexp.MustCompile(funcType + ` (.+)\[\] = \{`).FindStringSubmatch(source)
	if header != nil {
		return detectArray(source, funcType, strings.TrimSpace(header[1]))
	}

	if strings.Contains(source, ActionFuncField) {
		return Pattern{Kind: RawFunctionPointer}, nil
	}
	return Pattern{}, ErrNoActionStructure
}

func detectArray(source, funcType, arrayName string) (Pattern, error) {
	initializer := regexp.MustCompile(funcType + ` (.+)\[\] = \{([^}]*?)\};`).FindStringSubmatch(source)
	if initializer == nil {
		return Pattern{}, fmt.Errorf("%w: action function array initializer for %s not found", ErrMalformedActionArray, arrayName)
	}

	var functions []string
	for _, element := range strings.Split(scan.StripComments(initializer[2]), ",") {
		functions = append(functions, strings.TrimSpace(element))
	}
	// A trailing comma leaves one empty element behind.
	if n := len(functions); n > 0 && functions[n-1] == "" {
		functions = functions[:n-1]
	}

	callSite := regexp.MustCompile(regexp.QuoteMeta(arrayName) + `\[(.*)\]\(`).FindStringSubmatch(source)
	if callSite == nil {
		return Pattern{}, fmt.Errorf("%w: call to action function array %s not found", ErrMalformedActionArray, arrayName)
	}

	return Pattern{
		Kind:        ArrayIndexed,
		Functions:   functions,
		DispatchVar: strings.TrimSpace(callSite[1]),
	}, nil
}
