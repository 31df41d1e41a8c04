// Package publisher combines event publishers.
package publisher

import (
	"context"
	"errors"

	"restock/internal/core/domain/model/restockorder"
	"restock/internal/core/ports"
)

// FanOut delivers every batch to each publisher in turn. A failing publisher does not
// prevent the others from receiving the batch; all failures are returned joined.
type FanOut struct {
	publishers []ports.EventPublisher
}

func NewFanOut(publishers ...ports.EventPublisher) *FanOut {
	return &FanOut{publishers: publishers}
}

func (f *FanOut) Publish(ctx context.Context, events ...restockorder.Event) error {
	var errList []error
	for _, p := range f.publishers {
		if err := p.Publish(ctx, events...); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}
