package all

import (
	// Import all the sink drivers so they register themselves
	_ "github.com/darianmavgo/mkcsv/export/csv"
	_ "github.com/darianmavgo/mkcsv/export/html"
	_ "github.com/darianmavgo/mkcsv/export/sqlite"
)
