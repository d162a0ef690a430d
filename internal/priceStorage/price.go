package priceStorage

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/Pawan2061/futures_service/internal/model"
)

// PriceStore common market price shared by the whole process. The stored value is the
// last price pushed through SetPrice; liquidation checks take their own mark price from
// the caller, so this value is reference data only.
type PriceStore struct {
	sync.RWMutex
	last   model.Price
	Stream *StreamMarketPrice
	CtxApp context.Context
}

// NewPriceStore Constructor. Starts the fan-out goroutine for subscribers.
func NewPriceStore(ctx context.Context) *PriceStore {
	prStorage := &PriceStore{
		Stream: NewStream(),
		CtxApp: ctx,
	}
	go prStorage.Stream.StartStreaming(ctx)
	return prStorage
}

// GetPrice last stored market price (zero value before the first update)
func (p *PriceStore) GetPrice() model.Price {
	p.RLock()
	defer p.RUnlock()
	return p.last
}

// SetPrice overwrite the shared market price and notify subscribers
func (p *PriceStore) SetPrice(value float64) model.Price {
	pr := model.Price{Value: value, Time: time.Now()}
	p.Lock()
	p.last = pr
	p.Unlock()
	logrus.WithField("marketPrice", value).Debug("SetPrice")
	select {
	case p.Stream.DataChan <- pr:
	case <-p.CtxApp.Done():
	}
	return pr
}

// AddSubscriber Add new subscriber channel for market price updates
func (p *PriceStore) AddSubscriber(ch chan model.Price) {
	p.Stream.AddSubscriber(ch)
}
