package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/roomescape-reservation/internal/model"
)

// sqlDate decodes a DATE column.  MySQL with parseTime=true hands over a
// time.Time, SQLite hands over text; both end up as midnight UTC.
type sqlDate struct {
	t time.Time
}

func (d *sqlDate) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		d.t = model.TruncateDate(v)
		return nil
	case []byte:
		return d.parse(string(v))
	case string:
		return d.parse(v)
	case nil:
		d.t = time.Time{}
		return nil
	}
	return fmt.Errorf("unsupported DATE value of type %T", src)
}

func (d *sqlDate) parse(s string) error {
	s = strings.TrimSpace(s)
	if len(s) > len(model.DateLayout) {
		s = s[:len(model.DateLayout)]
	}
	t, err := model.ParseDate(s)
	if err != nil {
		return err
	}
	d.t = t
	return nil
}

// sqlClock decodes a TIME column.  MySQL returns TIME as text even with
// parseTime enabled, so the text path is the common one.
type sqlClock struct {
	t model.TimeOfDay
}

func (c *sqlClock) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		c.t = model.TimeOfDay{Hour: v.Hour(), Minute: v.Minute()}
		return nil
	case []byte:
		return c.parse(string(v))
	case string:
		return c.parse(v)
	}
	return fmt.Errorf("unsupported TIME value of type %T", src)
}

func (c *sqlClock) parse(s string) error {
	t, err := model.ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	c.t = t
	return nil
}

// dateValue and clockValue are the text forms written to DATE and TIME
// columns.  Both drivers accept them and SQLite compares them correctly
// as strings.
func dateValue(t time.Time) string { return t.Format(model.DateLayout) }

func clockValue(t model.TimeOfDay) string {
	return fmt.Sprintf("%02d:%02d:00", t.Hour, t.Minute)
}
