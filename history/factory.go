package history

import (
	"fmt"

	"github.com/dethan3/tickeye/history/duckdb"
	"github.com/dethan3/tickeye/model"
)

func NewRecorder(cfg model.DBConfig) (Recorder, error) {
	switch cfg.Type {
	case model.DBTypeDuckDB:
		return duckdb.NewDriver(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported db type: %s", cfg.Type)
	}
}
