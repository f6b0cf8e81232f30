package server

import (
	"fmt"
	"net/http"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/robfig/cron"

	"github.com/microcosm-cc/catalogue/models"
)

// StartServer owns the http process and cron jobs
func StartServer(port int64, catalog *models.Catalog) {

	// Set up the cron jobs
	c := cron.New()
	for schedule, job := range jobs(catalog) {
		c.AddFunc(schedule, job)
	}
	c.Start()

	r := mux.NewRouter()
	for _, route := range apiRoutes(catalog) {
		r.HandleFunc(route.path, route.handler)
	}

	http.Handle("/", r)

	// Start the HTTP server
	glog.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", port), nil))
}
