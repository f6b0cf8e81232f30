// Package audit writes a single line per catalogue mutation so that the
// write history of any document can be recovered from the logs
package audit

import (
	"github.com/golang/glog"
)

// Create records that a document was created
func Create(kind string, id string) {
	glog.Infof("C %s %s", kind, id)
}

// Update records that a document was updated
func Update(kind string, id string) {
	glog.Infof("U %s %s", kind, id)
}

// Delete records that a document was deleted
func Delete(kind string, id string) {
	glog.Infof("D %s %s", kind, id)
}
