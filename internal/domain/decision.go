package domain

import "time"

// Decision is a directed like/dislike edge. At most one row exists per
// ordered (from, to) pair; a repeated swipe overwrites is_like.
type Decision struct {
	ID         int       `json:"id" db:"id"`
	FromUserID int64     `json:"from_user_id" db:"from_user_id"`
	ToUserID   int64     `json:"to_user_id" db:"to_user_id"`
	IsLike     bool      `json:"is_like" db:"is_like"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
