// Package priceStorage
package priceStorage

import (
	"container/list"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/Pawan2061/futures_service/internal/model"
)

// StreamMarketPrice stream market price updates to subscribers
type StreamMarketPrice struct {
	DataChan    chan model.Price
	Subscribers *list.List
	rwm         sync.RWMutex
}

// NewStream Constructor
func NewStream() *StreamMarketPrice {
	return &StreamMarketPrice{
		DataChan:    make(chan model.Price),
		Subscribers: list.New(),
	}
}

// AddSubscriber add new subscriber to subscribers
func (s *StreamMarketPrice) AddSubscriber(chTo chan model.Price) {
	s.rwm.Lock()
	s.Subscribers.PushBack(chTo)
	s.rwm.Unlock()
}

// StartStreaming goroutine listening the update channel and fanning out to subscriber
// channels. A subscriber that is not ready misses the update, the next one reaches it.
func (s *StreamMarketPrice) StartStreaming(ctx context.Context) {
	log.Debug("Start stream StartStreaming")
	for {
		select {
		case <-ctx.Done():
			return
		case pr := <-s.DataChan:
			s.rwm.RLock()
			for chElem := s.Subscribers.Front(); chElem != nil; chElem = chElem.Next() {
				select {
				case chElem.Value.(chan model.Price) <- pr:
				default:
					log.Debug("Subscriber is busy, drop update")
				}
			}
			s.rwm.RUnlock()
		}
	}
}
