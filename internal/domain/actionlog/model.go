package actionlog

import "time"

// Entry is one immutable line of a group's history.
type Entry struct {
	ID         string    `gorm:"type:uuid;primaryKey"`
	GroupID    string    `gorm:"type:uuid;not null;index:idx_action_logs_group_time,priority:1"`
	LogMessage string    `gorm:"type:text;not null"`
	Timestamp  time.Time `gorm:"not null;index:idx_action_logs_group_time,priority:2"`
}

func (Entry) TableName() string {
	return "action_logs"
}
