package channels

import (
	"sync"

	"github.com/AbdulWasayUl/go-country-explorer/models"
)

type Channels struct {
	ViewRequest chan models.ViewRequest
	WG          *sync.WaitGroup
}

func New() *Channels {
	const bufferSize = 100
	return &Channels{
		ViewRequest: make(chan models.ViewRequest, bufferSize),
		WG:          &sync.WaitGroup{},
	}
}

// Submit counts req as pending before queueing it, so WG.Wait covers every
// submitted request.
func (c *Channels) Submit(req models.ViewRequest) {
	c.WG.Add(1)
	c.ViewRequest <- req
}
