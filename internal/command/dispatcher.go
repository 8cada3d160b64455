package command

import (
	"context"
	"errors"
	"strings"
	"time"

	"personal-finance-bot/internal/model"
	"personal-finance-bot/internal/service"
	"personal-finance-bot/pkg/logger"
)

// Command is one user request as delivered by a transport.
type Command struct {
	Name   string
	Args   []string
	ChatID int64
}

// Request is what a handler sees: services bound to the command's transaction and the caller.
type Request struct {
	Services *service.Services
	User     *model.User
	Args     []string
	Now      time.Time
}

// HandlerFunc executes one command and returns the reply. Failures that should reach the
// user are returned through reject; any error rolls the command's transaction back.
type HandlerFunc func(ctx context.Context, req Request) (string, error)

type rejection struct {
	reply string
	cause error
}

func (r *rejection) Error() string {
	if r.cause == nil {
		return "rejected: " + r.reply
	}
	return "rejected: " + r.cause.Error()
}

func (r *rejection) Unwrap() error {
	return r.cause
}

// reject turns a rule failure into the reply the user gets.
func reject(reply string, cause error) error {
	return &rejection{reply: reply, cause: cause}
}

// Dispatcher routes commands to handlers. The routing table is built once in NewDispatcher
// and only read afterwards.
type Dispatcher struct {
	store    service.Store
	handlers map[string]HandlerFunc
	clock    service.Clock
	log      logger.Logger
	metrics  *Metrics
}

// Option customises a Dispatcher.
type Option func(*Dispatcher)

// WithClock replaces time.Now.
func WithClock(clock service.Clock) Option {
	return func(d *Dispatcher) {
		d.clock = clock
	}
}

// WithLogger sets the logger used for rejected and failed commands.
func WithLogger(log logger.Logger) Option {
	return func(d *Dispatcher) {
		d.log = log
	}
}

// WithMetrics enables command counters.
func WithMetrics(metrics *Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = metrics
	}
}

func NewDispatcher(store service.Store, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		store: store,
		clock: time.Now,
		log:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.handlers = map[string]HandlerFunc{
		"start":                   handleStart,
		"help":                    handleHelp,
		"set_balance":             handleSetBalance,
		"balance":                 handleBalance,
		"add_income":              addOperation(model.CategoryIncome),
		"add_expense":             addOperation(model.CategoryExpense),
		"add_income_category":     addCategory(model.CategoryIncome),
		"add_expense_category":    addCategory(model.CategoryExpense),
		"remove_income_category":  removeCategory(model.CategoryIncome),
		"remove_expense_category": removeCategory(model.CategoryExpense),
		"list_categories":         handleListAllCategories,
		"list_income_categories":  listCategories(model.CategoryIncome),
		"list_expense_categories": listCategories(model.CategoryExpense),
		"report_expense":          handleExpenseReport,
		"budget":                  handleCurrentBudget,
		"budget_create":           handleCreateBudget,
		"budget_set_income":       editBudget(service.BudgetIncome),
		"budget_set_expenses":     editBudget(service.BudgetExpenses),
		"budget_list":             handleBudgetList,
	}
	return d
}

// Handle runs one command inside its own transaction and always returns exactly one reply.
func (d *Dispatcher) Handle(ctx context.Context, cmd Command) string {
	name := strings.ToLower(strings.TrimSpace(cmd.Name))
	handler, ok := d.handlers[name]
	if !ok {
		d.metrics.observe("unknown", outcomeUnknown)
		return msgCommandNotFound
	}

	var reply string
	err := d.store.Transaction(ctx, func(tx service.Store) error {
		services := service.New(tx, d.clock)
		user, err := services.Users.Ensure(ctx, cmd.ChatID)
		if err != nil {
			return err
		}
		reply, err = handler(ctx, Request{
			Services: services,
			User:     user,
			Args:     cmd.Args,
			Now:      d.clock(),
		})
		return err
	})

	var rejected *rejection
	switch {
	case err == nil:
		d.metrics.observe(name, outcomeOK)
		return reply
	case errors.As(err, &rejected):
		d.metrics.observe(name, outcomeRejected)
		if rejected.cause != nil {
			d.log.BusinessError("command rejected", rejected.cause, "command", name, "chat_id", cmd.ChatID)
		}
		return rejected.reply
	default:
		d.metrics.observe(name, outcomeFailed)
		d.log.InternalError("command failed", err, "command", name, "chat_id", cmd.ChatID)
		return msgInternalError
	}
}

