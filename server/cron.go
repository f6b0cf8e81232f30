package server

import (
	"context"

	"github.com/golang/glog"

	"github.com/microcosm-cc/catalogue/models"
)

// Field name   | Mandatory? | Allowed values  | Allowed special characters
// ----------   | ---------- | --------------  | --------------------------
// Seconds      | Yes        | 0-59            | * / , -
// Minutes      | Yes        | 0-59            | * / , -
// Hours        | Yes        | 0-23            | * / , -
// Day of month | Yes        | 1-31            | * / , - ?
// Month        | Yes        | 1-12 or JAN-DEC | * / , -
// Day of week  | Yes        | 0-6 or SUN-SAT  | * / , - ?

// jobs warms the list-all caches so that the first read after an expiry does
// not pay the full scan. Each job is best effort, a failed warm just leaves
// the next reader to fill the cache.
func jobs(catalog *models.Catalog) map[string]func() {
	return map[string]func(){
		//SS MI HH  DOM MON DOW
		"  0 15     *    *   *   *": func() { // Every hour at quarter past
			if _, _, err := catalog.AllArtists(context.Background()); err != nil {
				glog.Errorf("warm AllArtists %+v", err)
			}
		},
		"  0 20     *    *   *   *": func() { // Every hour at twenty past
			if _, _, err := catalog.AllAlbums(context.Background()); err != nil {
				glog.Errorf("warm AllAlbums %+v", err)
			}
		},
		"  0 25     *    *   *   *": func() { // Every hour at twenty-five past
			if _, _, err := catalog.AllCompanies(context.Background()); err != nil {
				glog.Errorf("warm AllCompanies %+v", err)
			}
		},
	}
}
