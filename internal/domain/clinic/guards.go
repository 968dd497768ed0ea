package clinic

import "time"

// doctorAvailable reports whether the doctor's schedule is free at the
// candidate instant. Conflict is exact instant equality, not interval
// overlap: appointments one second apart do not collide. excludeID names
// an appointment to ignore, used when an appointment is re-validated
// against its own doctor during an update; pass 0 on creation.
func doctorAvailable(schedule []Slot, candidate time.Time, excludeID int64) bool {
	for _, slot := range schedule {
		if slot.AppointmentID == excludeID {
			continue
		}
		if slot.StartsAt.Equal(candidate) {
			return false
		}
	}
	return true
}

// mutable reports whether an appointment with the given stored instant
// may still be rescheduled or cancelled. An instant at or before now is
// elapsed; the appointment is frozen from that point on, even for
// updates that would move it back into the future.
func mutable(storedAt, now time.Time) bool {
	return storedAt.After(now)
}
