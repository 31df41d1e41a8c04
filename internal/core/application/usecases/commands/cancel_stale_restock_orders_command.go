package commands

import (
	"errors"
	"fmt"
	"time"

	"restock/internal/core/domain/model/restockorder"
	"restock/internal/pkg/errs"
	"restock/internal/pkg/guard"
)

var ErrCancelStaleRestockOrdersCommandIsNotConstructed = errors.New(
	"CancelStaleRestockOrdersCommand must be created via NewCancelStaleRestockOrdersCommand constructor",
)

// CancelStaleRestockOrdersCommand cancels orders the supplier left unanswered
// (CREADA or ENVIADA) for longer than olderThan, at most limit per run.
type CancelStaleRestockOrdersCommand struct { //nolint:recvcheck //using for validation
	olderThan time.Duration
	limit     int

	guard guard.ConstructorGuard
}

func NewCancelStaleRestockOrdersCommand(olderThan time.Duration, limit int) (CancelStaleRestockOrdersCommand, error) {
	cmd := CancelStaleRestockOrdersCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOlderThan(olderThan),
		cmd.setLimit(limit),
	); err != nil {
		return CancelStaleRestockOrdersCommand{}, err
	}

	return cmd, nil
}

func (c CancelStaleRestockOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCancelStaleRestockOrdersCommandIsNotConstructed)
}

func (c CancelStaleRestockOrdersCommand) OlderThan() time.Duration {
	return c.olderThan
}

func (c CancelStaleRestockOrdersCommand) Limit() int {
	return c.limit
}

func (c *CancelStaleRestockOrdersCommand) setOlderThan(olderThan time.Duration) error {
	if olderThan <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("olderThan", fmt.Errorf("%s is not positive", olderThan))
	}
	c.olderThan = olderThan
	return nil
}

func (c *CancelStaleRestockOrdersCommand) setLimit(limit int) error {
	if limit < 1 || limit > restockorder.MaxPageSize {
		return errs.NewValueIsOutOfRangeError("limit", limit, 1, restockorder.MaxPageSize)
	}
	c.limit = limit
	return nil
}
