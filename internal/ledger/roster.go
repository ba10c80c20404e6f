package ledger

import (
	"context"
	"strings"

	"github.com/tit-academy/crm-api/internal/models"
	appErrors "github.com/tit-academy/crm-api/pkg/errors"
)

// GetUser returns the user with the given id.
func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	return &user, nil
}

// GetUserByEmail performs a case-insensitive email lookup.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			u := user
			return &u, nil
		}
	}
	return nil, appErrors.ErrNotFound
}

// CreateUser inserts a new account. Email uniqueness is enforced here because
// the map carries no index.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return appErrors.ErrConflict
		}
	}
	if user.ID == "" {
		user.ID = newID()
	}
	user.CreatedAt = stamp(user.CreatedAt)
	s.users[user.ID] = *user
	return nil
}

// GetGroups lists all groups.
func (s *Store) GetGroups(ctx context.Context) ([]models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make([]models.Group, 0, len(s.groups))
	for _, group := range s.groups {
		groups = append(groups, group)
	}
	return groups, nil
}

// GetGroup returns the group with the given id.
func (s *Store) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	group, ok := s.groups[id]
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	return &group, nil
}

// CreateGroup inserts a new group.
func (s *Store) CreateGroup(ctx context.Context, group *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if group.ID == "" {
		group.ID = newID()
	}
	group.CreatedAt = stamp(group.CreatedAt)
	s.groups[group.ID] = *group
	return nil
}

// UpdateGroup replaces an existing group record.
func (s *Store) UpdateGroup(ctx context.Context, group *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[group.ID]; !ok {
		return appErrors.ErrNotFound
	}
	s.groups[group.ID] = *group
	return nil
}

// DeleteGroup removes a group. Students keep their dangling group reference;
// it resolves to absent on read.
func (s *Store) DeleteGroup(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[id]; !ok {
		return appErrors.ErrNotFound
	}
	delete(s.groups, id)
	return nil
}

// GetStudents lists all students.
func (s *Store) GetStudents(ctx context.Context) ([]models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	students := make([]models.Student, 0, len(s.students))
	for _, student := range s.students {
		students = append(students, student)
	}
	return students, nil
}

// GetStudent returns the student with the given id.
func (s *Store) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	student, ok := s.students[id]
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	return &student, nil
}

// GetStudentByUserID resolves the student owned by a user account.
func (s *Store) GetStudentByUserID(ctx context.Context, userID string) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, student := range s.students {
		if student.UserID == userID {
			st := student
			return &st, nil
		}
	}
	return nil, appErrors.ErrNotFound
}

// GetStudentByStudentID resolves a student by the human-readable code.
func (s *Store) GetStudentByStudentID(ctx context.Context, code string) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, student := range s.students {
		if student.StudentID == code {
			st := student
			return &st, nil
		}
	}
	return nil, appErrors.ErrNotFound
}

// CreateStudent inserts a new student record.
func (s *Store) CreateStudent(ctx context.Context, student *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.students {
		if existing.StudentID == student.StudentID {
			return appErrors.ErrConflict
		}
	}
	if student.ID == "" {
		student.ID = newID()
	}
	student.CreatedAt = stamp(student.CreatedAt)
	s.students[student.ID] = *student
	return nil
}

// UpdateStudent replaces an existing student record. Direct writes do not
// re-validate balances; only the ledger pathways clamp.
func (s *Store) UpdateStudent(ctx context.Context, student *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.students[student.ID]; !ok {
		return appErrors.ErrNotFound
	}
	s.students[student.ID] = *student
	return nil
}

// DeleteStudent removes a student. Medal and purchase history is retained.
func (s *Store) DeleteStudent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.students[id]; !ok {
		return appErrors.ErrNotFound
	}
	delete(s.students, id)
	return nil
}

// GetAttendance lists attendance records, optionally filtered by student or
// group.
func (s *Store) GetAttendance(ctx context.Context, filter models.AttendanceFilter) ([]models.Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]models.Attendance, 0, len(s.attendance))
	for _, record := range s.attendance {
		if filter.StudentID != "" && record.StudentID != filter.StudentID {
			continue
		}
		if filter.GroupID != "" && record.GroupID != filter.GroupID {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// GetAttendanceRecord returns a single attendance record.
func (s *Store) GetAttendanceRecord(ctx context.Context, id string) (*models.Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.attendance[id]
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	return &record, nil
}

// CreateAttendance inserts a new attendance record.
func (s *Store) CreateAttendance(ctx context.Context, record *models.Attendance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.ID == "" {
		record.ID = newID()
	}
	record.CreatedAt = stamp(record.CreatedAt)
	s.attendance[record.ID] = *record
	return nil
}

// UpdateAttendance replaces an existing attendance record.
func (s *Store) UpdateAttendance(ctx context.Context, record *models.Attendance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.attendance[record.ID]; !ok {
		return appErrors.ErrNotFound
	}
	s.attendance[record.ID] = *record
	return nil
}
