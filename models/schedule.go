package models

import "time"

// WorkingHoursEntry is one weekday window of a doctor's recurring schedule.
// DayOfWeek follows time.Weekday numbering (0 = Sunday). Times are "HH:MM".
type WorkingHoursEntry struct {
	ID        string    `bson:"id" json:"id"`
	DoctorID  string    `bson:"doctor_id" json:"doctorId"`
	DayOfWeek int       `bson:"day_of_week" json:"dayOfWeek"`
	StartTime string    `bson:"start_time" json:"startTime"`
	EndTime   string    `bson:"end_time" json:"endTime"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// VacationRange is a doctor blackout period. Both bounds are inclusive
// calendar dates in "2006-01-02" form.
type VacationRange struct {
	ID        string    `bson:"id" json:"id"`
	DoctorID  string    `bson:"doctor_id" json:"doctorId"`
	StartDate string    `bson:"start_date" json:"startDate"`
	EndDate   string    `bson:"end_date" json:"endDate"`
	Reason    string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
