package dbx

import (
	"fmt"
	"time"
)

// timestampLayouts are the text forms SQLite uses for CURRENT_TIMESTAMP and
// that drivers emit when a column has no declared time type.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
}

// Timestamp scans a time column that may arrive as time.Time, text or
// unix seconds. Text without a zone is read as UTC.
type Timestamp struct {
	Time *time.Time
}

func (ts Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*ts.Time = v
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	case int64:
		*ts.Time = time.Unix(v, 0).UTC()
		return nil
	case nil:
		*ts.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("dbx: cannot scan %T into timestamp", src)
	}
}

func (ts Timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			*ts.Time = t
			return nil
		}
	}
	return fmt.Errorf("dbx: unrecognised timestamp %q", s)
}
