package postgres

import "time"

type userRow struct {
	ID        string
	Email     string
	Username  string
	Name      string
	CreatedAt time.Time
}
