// Package bridge turns a table of contract method descriptors into form
// groups and runs the marshal, dispatch and render cycle when a group is
// activated.
package bridge

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Mohsinsiddi/stakeforms/internal/contract"
	"github.com/Mohsinsiddi/stakeforms/internal/logging"
)

// ContractClient is the chain side of a form: read calls and mined
// transactions. *contract.Client satisfies it.
type ContractClient interface {
	Call(ctx context.Context, method string, args ...any) ([]any, error)
	Send(ctx context.Context, from common.Address, method string, args ...any) (*types.Receipt, error)
}

// Session supplies the connected accounts. Writes are sent from the first.
type Session interface {
	Accounts() []common.Address
}

type invokeFunc func(ctx context.Context, args []any) (Value, error)

// Bridge binds descriptors to contract clients.
type Bridge struct {
	session  Session
	clients  map[string]ContractClient
	approval *Approval
	log      zerolog.Logger

	mu       sync.RWMutex
	handlers map[string]invokeFunc
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithApproval enables the token approval before a.Method.
func WithApproval(a *Approval) Option {
	return func(b *Bridge) { b.approval = a }
}

// WithLogger overrides the component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(b *Bridge) { b.log = l }
}

// New creates a bridge. clients is keyed by built-in ABI id
// (contract.BuiltinStaking, contract.BuiltinProxy).
func New(session Session, clients map[string]ContractClient, opts ...Option) *Bridge {
	b := &Bridge{
		session:  session,
		clients:  clients,
		log:      logging.WithComponent("bridge"),
		handlers: make(map[string]invokeFunc),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Render builds one section per non-empty category, with one form group per
// descriptor, and binds every descriptor to its invocation function.
func (b *Bridge) Render(t *Table) []*Section {
	var sections []*Section
	for _, c := range Categories {
		descriptors := t.InCategory(c)
		if len(descriptors) == 0 {
			continue
		}
		sec := &Section{Category: c, Title: c.Title()}
		for _, d := range descriptors {
			b.register(d)
			sec.Groups = append(sec.Groups, newFormGroup(d))
		}
		sections = append(sections, sec)
	}
	return sections
}

// RenderOne builds a single group, for one-shot invocations.
func (b *Bridge) RenderOne(d *MethodDescriptor) *FormGroup {
	b.register(d)
	return newFormGroup(d)
}

func (b *Bridge) register(d *MethodDescriptor) {
	b.mu.Lock()
	b.handlers[d.Key()] = b.bind(d)
	b.mu.Unlock()
}

func (b *Bridge) bind(d *MethodDescriptor) invokeFunc {
	client, ok := b.clients[d.Category.ABI()]
	if !ok {
		return func(context.Context, []any) (Value, error) {
			return Value{}, fmt.Errorf("%w: %s", ErrNoClient, d.Category.ABI())
		}
	}

	if !d.Mutates {
		return func(ctx context.Context, args []any) (Value, error) {
			out, err := client.Call(ctx, d.Name, args...)
			if err != nil {
				return Value{}, err
			}
			return RenderOutputs(d.Method.Outputs, out), nil
		}
	}

	approve := b.approval.Applies(d)
	return func(ctx context.Context, args []any) (Value, error) {
		from, err := b.sender()
		if err != nil {
			return Value{}, err
		}
		if approve {
			if err := b.approval.run(ctx, from, args); err != nil {
				return Value{}, &approvalError{err: err}
			}
		}
		receipt, err := client.Send(ctx, from, d.Name, args...)
		if err != nil {
			return Value{}, err
		}
		return RenderReceipt(from, receipt), nil
	}
}

func (b *Bridge) sender() (common.Address, error) {
	if b.session == nil {
		return common.Address{}, ErrNoAccount
	}
	accounts := b.session.Accounts()
	if len(accounts) == 0 {
		return common.Address{}, ErrNoAccount
	}
	return accounts[0], nil
}

// Trigger marks g as in flight and returns the function that performs the
// invocation. The marker is cleared when that function returns, so callers
// must run it exactly once.
func (b *Bridge) Trigger(ctx context.Context, g *FormGroup) func() Result {
	g.begin()
	return func() Result { return b.invoke(ctx, g) }
}

// Invoke runs one activation of g and returns its result, which is also
// written to the group's output slot.
func (b *Bridge) Invoke(ctx context.Context, g *FormGroup) Result {
	return b.Trigger(ctx, g)()
}

func (b *Bridge) invoke(ctx context.Context, g *FormGroup) (res Result) {
	defer func() { g.settle(res) }()

	g.run.Lock()
	defer g.run.Unlock()
	g.clearOutput()

	d := g.Descriptor
	log := b.log.With().Str("invocation", uuid.NewString()).Str("form", d.Key()).Logger()
	start := time.Now()

	b.mu.RLock()
	handler, ok := b.handlers[d.Key()]
	b.mu.RUnlock()
	if !ok {
		return failure(Classify(d.Name, ErrNotRendered))
	}

	args, err := coerceArgs(d, g.Inputs())
	if err != nil {
		log.Debug().Err(err).Msg("marshal failed")
		return failure(Classify(d.Name, err))
	}

	log.Debug().Int("args", len(args)).Bool("mutates", d.Mutates).Msg("dispatching")
	v, err := handler(ctx, args)
	if err != nil {
		f := Classify(d.Name, err)
		log.Warn().Err(err).Str("kind", string(f.Kind)).Dur("took", time.Since(start)).Msg("invocation failed")
		return failure(f)
	}
	log.Info().Dur("took", time.Since(start)).Msg("invocation settled")
	return success(v)
}

func coerceArgs(d *MethodDescriptor, inputs []string) ([]any, error) {
	if len(inputs) != len(d.Params) {
		return nil, fmt.Errorf("%w: %s", ErrArityMismatch, d.Key())
	}
	args := make([]any, len(inputs))
	for i, h := range d.Params {
		if h.Kind == nil {
			args[i] = LooseCoerce(inputs[i])
			continue
		}
		v, err := contract.Coerce(*h.Kind, inputs[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d (%s): %w", i+1, h.Placeholder(), err)
		}
		args[i] = v
	}
	return args, nil
}
