package application

import (
	"errors"

	"github.com/example/session-planner/internal/persistence"
	"github.com/example/session-planner/internal/scheduler"
)

func toApplicationSessionType(stored persistence.SessionType) SessionType {
	return SessionType{
		ID:        stored.ID,
		Name:      stored.Name,
		Category:  stored.Category,
		Priority:  stored.Priority,
		CreatedAt: stored.CreatedAt,
		UpdatedAt: stored.UpdatedAt,
	}
}

func toApplicationSession(stored persistence.Session, typeName string) Session {
	return Session{
		ID:              stored.ID,
		TypeID:          stored.TypeID,
		TypeName:        typeName,
		Start:           stored.Start,
		DurationMinutes: stored.DurationMinutes,
		Completed:       stored.Completed,
		CreatedAt:       stored.CreatedAt,
		UpdatedAt:       stored.UpdatedAt,
	}
}

func toApplicationWindow(stored persistence.AvailabilityWindow) AvailabilityWindow {
	return AvailabilityWindow{
		ID:        stored.ID,
		Weekday:   stored.Weekday,
		Start:     stored.Start,
		End:       stored.End,
		CreatedAt: stored.CreatedAt,
		UpdatedAt: stored.UpdatedAt,
	}
}

// toSchedulerSessions joins stored sessions with their types into the single
// value shape the planning algorithms consume. Sessions whose type is missing
// from the map keep zero type fields rather than being dropped; they still
// occupy time.
func toSchedulerSessions(sessions []persistence.Session, types map[string]persistence.SessionType) []scheduler.Session {
	converted := make([]scheduler.Session, 0, len(sessions))
	for _, session := range sessions {
		entry := scheduler.Session{
			ID:              session.ID,
			TypeID:          session.TypeID,
			Start:           session.Start,
			DurationMinutes: session.DurationMinutes,
			Completed:       session.Completed,
		}
		if sessionType, ok := types[session.TypeID]; ok {
			entry.TypeName = sessionType.Name
			entry.TypePriority = sessionType.Priority
		}
		converted = append(converted, entry)
	}
	return converted
}

func toConflictResult(conflicts []scheduler.Conflict) ConflictResult {
	result := ConflictResult{Conflict: len(conflicts) > 0}
	for _, conflict := range conflicts {
		result.Sessions = append(result.Sessions, ConflictingSession{
			SessionID:       conflict.SessionID,
			TypeName:        conflict.TypeName,
			Start:           conflict.Start,
			DurationMinutes: conflict.DurationMinutes,
		})
	}
	return result
}

func mapRepoError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, persistence.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, persistence.ErrDuplicate):
		return ErrAlreadyExists
	case errors.Is(err, persistence.ErrForeignKeyViolation):
		return ErrNotFound
	case errors.Is(err, persistence.ErrConstraintViolation):
		vErr := &ValidationError{}
		vErr.add("input", "violates a storage constraint")
		return vErr
	}
	return err
}
