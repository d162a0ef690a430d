package main

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v4/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/Pawan2061/futures_service/internal/config"
	"github.com/Pawan2061/futures_service/internal/handlers"
	"github.com/Pawan2061/futures_service/internal/priceStorage"
	"github.com/Pawan2061/futures_service/internal/repository"
	"github.com/Pawan2061/futures_service/internal/service"
)

func main() {
	conf, err := config.GetConfig()
	if err != nil {
		log.WithError(err).Fatal()
	}
	level, err := log.ParseLevel(conf.LogLevel)
	if err != nil {
		log.WithError(err).Fatal()
	}
	log.SetLevel(level)

	var positionRep *repository.PositionRepository
	if conf.JournalEnabled() {
		pool, err := pgxpool.Connect(context.Background(), conf.GetConnStringPostgres())
		if err != nil {
			log.WithError(err).Fatal()
		}
		positionRep = &repository.PositionRepository{Pool: pool}
		if err = positionRep.EnsureSchema(context.Background()); err != nil {
			log.WithError(err).Fatal()
		}
	}

	prStore := priceStorage.NewPriceStore(context.Background())

	ledger := service.NewLedger(context.Background(), positionRep)
	if positionRep != nil {
		go ledger.WriteJournal(context.Background())
	}

	watcher := service.NewLiquidationWatcher(ledger)
	prStore.AddSubscriber(watcher.Chan())
	go watcher.Run(context.Background())

	router := handlers.NewRouter(
		&handlers.PositionHandler{Ledger: ledger},
		&handlers.MarketHandler{PriceStore: prStore},
	)

	log.Info("Futures service HTTP server start")
	log.Info("Addr Listen: :", conf.FuturesServicePortHTTP)
	log.Info(http.ListenAndServe(":"+conf.FuturesServicePortHTTP, router))
	log.Info("Futures service HTTP server Stop")
}
