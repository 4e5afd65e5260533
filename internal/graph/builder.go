package graph

import (
	"log"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/mvp-joe/graphovl/internal/actor"
	"github.com/mvp-joe/graphovl/internal/analysis"
	"github.com/mvp-joe/graphovl/internal/macro"
	"github.com/mvp-joe/graphovl/internal/scan"
)

// ProgressReporter reports progress during graph building.
type ProgressReporter interface {
	OnGraphBuildingStart(totalFunctions int)
	OnFunctionProcessed(processed, total int, name string)
	OnGraphBuildingComplete(nodeCount, edgeCount int, duration time.Duration)
}

// Options configures Build.
type Options struct {
	// Remove lists function names or glob patterns to leave out of the
	// graph entirely. "NULL" is always removed.
	Remove []string
	// Loners registers every function as a node, connected or not.
	Loners bool
	// Progress is optional.
	Progress ProgressReporter
}

// lifecycleSuffixes name the functions that are always graph nodes.
var lifecycleSuffixes = []string{"_Init", "_Destroy", "_Update", "_Draw"}

// IsLifecycle reports whether name is an Init, Destroy, Update or Draw
// function.
func IsLifecycle(name string) bool {
	for _, suffix := range lifecycleSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// builder holds the state of one Build call.
type builder struct {
	ctx     *analysis.Context
	opts    Options
	remove  *removalList
	model   *Model
	members []string
}

// Build constructs the call/transition graph of an analyzed actor.
func Build(ctx *analysis.Context, opts Options) *Model {
	b := &builder{
		ctx:    ctx,
		opts:   opts,
		remove: newRemovalList(opts.Remove),
		model:  NewModel(),
	}
	b.model.Pattern = ctx.Pattern().Kind.String()
	return b.build()
}

func (b *builder) build() *Model {
	startTime := time.Now()
	names := b.ctx.Names()

	if b.opts.Progress != nil {
		b.opts.Progress.OnGraphBuildingStart(len(names))
	}

	for i, name := range names {
		if IsLifecycle(name) && !b.remove.Match(name) {
			b.model.AddNode(i, name)
		}
	}

	b.members = b.indirectMembers()

	for i, name := range names {
		if !b.remove.Match(name) {
			b.processFunction(i, name)
		}

		if b.opts.Progress != nil {
			b.opts.Progress.OnFunctionProcessed(i+1, len(names), name)
		}
	}

	if b.opts.Progress != nil {
		b.opts.Progress.OnGraphBuildingComplete(len(b.model.nodes), len(b.model.edges), time.Since(startTime))
	}

	return b.model
}

func (b *builder) processFunction(index int, name string) {
	if b.opts.Loners {
		b.model.AddNode(index, name)
	}
	body := b.ctx.Body(name)

	var targets []string
	for _, target := range b.transitions(body) {
		if !b.remove.Match(target) {
			targets = append(targets, target)
		}
	}

	for _, target := range targets {
		b.addTransition(index, name, target)
	}
	b.addCalls(index, name, body)
	b.addCallbacks(index, name, body, targets)
	b.addIndirectMembers(index, name, body)
}

// transitions returns the action functions a body switches to, in order
// of appearance and without duplicates.
func (b *builder) transitions(body string) []string {
	pattern := b.ctx.Pattern()

	switch pattern.Kind {
	case actor.SetupAction:
		return dispatchTargets(body, "_SetupAction", 1)
	case actor.SetAction:
		return dispatchTargets(body, "_SetAction", 2)
	case actor.ArrayIndexed:
		var targets []string
		for _, value := range b.ctx.AssignedValues(body, pattern.DispatchVar) {
			index, err := macro.ParseInt(value)
			if err != nil {
				log.Printf("Warning: not able to parse index expression '%s'", value)
				continue
			}
			if index < 0 || index >= int64(len(pattern.Functions)) {
				log.Printf("Warning: index %d is out of range of the action function array", index)
				continue
			}
			target := pattern.Functions[index]
			if !slices.Contains(targets, target) {
				targets = append(targets, target)
			}
		}
		return targets
	case actor.RawFunctionPointer:
		return b.ctx.AssignedValues(body, actor.ActionFuncField)
	}
	return nil
}

// dispatchTargets returns the argument at position arg of every call to a
// function ending in suffix.
func dispatchTargets(body, suffix string, arg int) []string {
	var targets []string
	for _, args := range scan.DispatchArgs(body, suffix) {
		if len(args) <= arg {
			log.Printf("Warning: not enough arguments in %s call (%s)", suffix, strings.Join(args, ", "))
			continue
		}
		target := args[arg]
		if !slices.Contains(targets, target) {
			targets = append(targets, target)
		}
	}
	return targets
}

func (b *builder) addTransition(index int, name, target string) {
	targetIndex, ok := b.ctx.IndexOf(target)
	if !ok {
		log.Printf("Warning: function '%s' called by '%s' was not found. Skipping...", target, name)
		return
	}
	b.addEdge(index, name, targetIndex, target, CategoryTransition, strings.HasSuffix(name, "_Init"))
}

func (b *builder) addCalls(index int, name, body string) {
	skipDispatch := b.ctx.Pattern().UsesDispatchCalls()
	for _, call := range scan.CallNames(body) {
		callIndex, ok := b.ctx.IndexOf(call)
		if !ok || b.remove.Match(call) {
			continue
		}
		if skipDispatch && (strings.Contains(call, "_SetupAction") || strings.Contains(call, "_SetAction")) {
			continue
		}
		b.addEdge(index, name, callIndex, call, CategoryCall, false)
	}
}

func (b *builder) addCallbacks(index int, name, body string, transitions []string) {
	for _, call := range scan.Calls(body) {
		_, args := scan.SplitArgs(call)
		for _, arg := range args {
			argIndex, ok := b.ctx.IndexOf(arg)
			if !ok || b.remove.Match(arg) || slices.Contains(transitions, arg) {
				continue
			}
			b.addEdge(index, name, argIndex, arg, CategoryCallback, false)
		}
	}
}

func (b *builder) addIndirectMembers(index int, name, body string) {
	for _, member := range b.members {
		for _, value := range b.ctx.AssignedValues(body, member) {
			valueIndex, ok := b.ctx.IndexOf(value)
			if !ok || b.remove.Match(value) {
				continue
			}
			b.addEdge(index, name, valueIndex, value, CategoryIndirectMember, false)
		}
	}
}

func (b *builder) addEdge(from int, fromName string, to int, toName string, category Category, fromInit bool) {
	b.model.AddNode(from, fromName)
	b.model.AddNode(to, toName)
	b.model.AddEdge(Edge{From: from, To: to, Category: category, FromInit: fromInit})
}

// indirectMembers returns the member fields, other than the action
// field, that are assigned a known function anywhere in the source.
func (b *builder) indirectMembers() []string {
	seen := make(map[string]bool)
	for _, name := range b.ctx.Names() {
		for _, a := range scan.MemberAssignments(b.ctx.Body(name)) {
			if a.Member == actor.ActionFuncField || !b.ctx.Has(a.Value) {
				continue
			}
			seen[a.Member] = true
		}
	}

	members := make([]string, 0, len(seen))
	for member := range seen {
		members = append(members, member)
	}
	sort.Strings(members)
	return members
}
