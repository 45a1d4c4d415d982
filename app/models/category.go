package models

import "time"

func (c *Category) Validate() error {
	return validate.Struct(c)
}

func (c *Category) BeforeCreate() {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
}

func (l *Location) Validate() error {
	return validate.Struct(l)
}

func (l *Location) BeforeCreate() {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
}
