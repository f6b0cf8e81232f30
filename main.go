package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang/glog"

	"github.com/microcosm-cc/catalogue/cache"
	conf "github.com/microcosm-cc/catalogue/config"
	h "github.com/microcosm-cc/catalogue/helpers"
	"github.com/microcosm-cc/catalogue/models"
	"github.com/microcosm-cc/catalogue/server"
)

var configFile = flag.String(
	"config",
	conf.DefaultFilePath,
	"path to the config file",
)

func main() {

	// Parse flags, also used to init glog
	flag.Parse()

	// 100 megabytes max before rolling the log files
	glog.MaxSize = 1024 * 1024 * 100

	if err := conf.Load(*configFile); err != nil {
		glog.Fatalf("could not read config file %s %+v", *configFile, err)
	}
	glog.Infof("starting in %s", conf.ConfigStrings[conf.Environment])

	if glog.V(2) {
		glog.Info("Initialising store connection")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := h.ConnectStore(ctx, h.DBConfig{
		Host:     conf.ConfigStrings[conf.DatabaseHost],
		Port:     conf.ConfigInt64s[conf.DatabasePort],
		Database: conf.ConfigStrings[conf.DatabaseName],
		Username: conf.ConfigStrings[conf.DatabaseUsername],
		Password: conf.ConfigStrings[conf.DatabasePassword],
	})
	cancel()
	if err != nil {
		glog.Fatalf("could not connect to the store %+v", err)
	}

	if glog.V(2) {
		glog.Info("Initialising cache connection")
	}
	mc := cache.New(
		conf.ConfigStrings[conf.MemcachedHost],
		conf.ConfigInt64s[conf.MemcachedPort],
	)

	catalog := models.NewCatalog(store, mc)

	// Catch closing signal, flush logs and close the store connection
	sigc := make(chan os.Signal, 1)
	signal.Notify(
		sigc,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	go func() {
		<-sigc
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := store.Close(ctx); err != nil {
			glog.Errorf("store.Close() %+v", err)
		}
		cancel()
		glog.Flush()
		os.Exit(1)
	}()

	if glog.V(2) {
		glog.Infof(
			"Starting server on port %d",
			conf.ConfigInt64s[conf.ListenPort],
		)
	}
	server.StartServer(conf.ConfigInt64s[conf.ListenPort], catalog)
}
