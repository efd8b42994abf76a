// Package export streams the rows of one resolved worksheet through the
// cell transcoder and into a registered record sink.
package export

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/darianmavgo/mkcsv/export/common"
)

var (
	driversMu sync.RWMutex
	drivers   = make(map[string]common.Driver)
)

// Register makes a sink driver available by the provided name.
// If Register is called twice with the same name or if driver is nil, it panics.
func Register(name string, driver common.Driver) {
	driversMu.Lock()
	defer driversMu.Unlock()
	if driver == nil {
		panic("export: Register driver is nil")
	}
	if _, dup := drivers[name]; dup {
		panic("export: Register called twice for driver " + name)
	}
	drivers[name] = driver
}

// Open opens a sink by driver name, targeting the given output stream.
func Open(driverName string, w io.Writer, config *common.ExportConfig) (common.RecordWriter, error) {
	driversMu.RLock()
	driver, ok := drivers[driverName]
	driversMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("export: unknown driver %q (forgotten import?)", driverName)
	}
	return driver.Open(w, config)
}

// Drivers returns a sorted list of the names of the registered drivers.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()
	list := make([]string, 0, len(drivers))
	for name := range drivers {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}
