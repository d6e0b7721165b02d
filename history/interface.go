package history

import (
	"time"

	"github.com/dethan3/tickeye/model"
)

// Recorder 行情历史存储，落库是可选功能，由 --db 参数开启
type Recorder interface {
	Connect() error
	Close() error

	InitSchema() error

	SaveQuotes(records []*model.QuoteRecord) error
	SaveAttempts(attempts []*model.SourceAttempt) error

	QueryQuotes(code string, from *time.Time) ([]model.QuoteRecord, error)
	QueryAttempts(code string, from *time.Time) ([]model.SourceAttempt, error)
	LatestFetchTime() (time.Time, error)
}
