package entities

import "time"

// DelayReport - просрочка сдачи бюллетеня организацией за период.
type DelayReport struct {
	ID               uint64     `json:"id"`
	Bulletin         uint64     `json:"bulletin"`
	BulletinName     string     `json:"bulletin_name"`
	Organization     uint64     `json:"organization"`
	OrganizationName string     `json:"organization_name"`
	Period           string     `json:"period"`
	Deadline         time.Time  `json:"deadline"`
	SubmittedAt      *time.Time `json:"submitted_at"`
	DelayDays        int        `json:"delay_days"`
}
