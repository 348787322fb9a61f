package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Post struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UserID    uuid.UUID
	Course    string
	Score     int32
	Caption   *string // nil if user didn't provide it
}

// Post as it appears in the feed: with author username and like count
type FeedPost struct {
	Post
	Author string
	Likes  int64
}

type Like struct {
	ID        uuid.UUID
	CreatedAt time.Time
	PostID    uuid.UUID
	UserID    uuid.UUID
}

// Per course aggregate over all posted scores
type CourseStats struct {
	Course       string
	Rounds       int64
	AverageScore decimal.Decimal
}
