package models

// Follow is a directed edge meaning "follower's feed includes followed's
// recipes". The composite primary key keeps one edge per ordered pair.
// A user may follow themselves.
type Follow struct {
	FollowerID uint `json:"follower_id" gorm:"primaryKey;autoIncrement:false"`
	FollowedID uint `json:"followed_id" gorm:"primaryKey;autoIncrement:false;index"`
}

func (Follow) TableName() string {
	return "followers"
}
