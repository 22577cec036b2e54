// file: internals/features/school/grading/dto/grading_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"controlescolar_backend/internals/features/school/grading/model"
	service "controlescolar_backend/internals/features/school/grading/service"
)

/* ========================================================
   Requests
======================================================== */

type SaveManualScoreRequest struct {
	EnrollmentID uuid.UUID `json:"enrollment_id" validate:"required"`
	UnitIndex    int       `json:"unit_index" validate:"min=1"`
	ExamScore    *float64  `json:"exam_score" validate:"omitempty,min=0,max=100"`
	ConductScore *float64  `json:"conduct_score" validate:"omitempty,min=0,max=100"`
}

type RecalculateRequest struct {
	StudentID    uuid.UUID `json:"student_id" validate:"required"`
	CourseLoadID uuid.UUID `json:"course_load_id" validate:"required"`
	UnitIndex    int       `json:"unit_index" validate:"min=1"`
}

type ActivityCreateRequest struct {
	CourseLoadID uuid.UUID  `json:"course_load_id" validate:"required"`
	UnitIndex    int        `json:"unit_index" validate:"min=1"`
	Category     string     `json:"category" validate:"required,oneof=tarea examen conducta"`
	Title        string     `json:"title" validate:"required,min=1,max=180"`
	MaxScore     float64    `json:"max_score" validate:"gt=0"`
	DueAt        *time.Time `json:"due_at"`
}

type ActivityUpdateRequest struct {
	Title    *string    `json:"title" validate:"omitempty,min=1,max=180"`
	MaxScore *float64   `json:"max_score" validate:"omitempty,gt=0"`
	IsActive *bool      `json:"is_active"`
	DueAt    *time.Time `json:"due_at"`
}

// La validación contra el máximo de la actividad se hace en el
// controller, donde la actividad ya está cargada.
type SubmissionUpsertRequest struct {
	ActivityID uuid.UUID  `json:"activity_id" validate:"required"`
	StudentID  uuid.UUID  `json:"student_id" validate:"required"`
	Score      float64    `json:"score" validate:"min=0"`
	GradedBy   *uuid.UUID `json:"graded_by"`
}

/* ========================================================
   Responses
======================================================== */

type UnitGradeResponse struct {
	UnitGradeID   uuid.UUID `json:"unit_grade_id"`
	EnrollmentID  uuid.UUID `json:"enrollment_id"`
	StudentID     uuid.UUID `json:"student_id"`
	CourseUnitID  uuid.UUID `json:"course_unit_id"`
	TaskScore     float64   `json:"task_score"`
	ConductScore  float64   `json:"conduct_score"`
	ExamScore     *float64  `json:"exam_score"`
	AttendancePct float64   `json:"attendance_pct"`
	ExamEligible  bool      `json:"exam_eligible"`
	UnitAverage   *float64  `json:"unit_average"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ToUnitGradeResponse(m *model.UnitGradeModel) UnitGradeResponse {
	return UnitGradeResponse{
		UnitGradeID:   m.UnitGradesID,
		EnrollmentID:  m.UnitGradesEnrollmentID,
		StudentID:     m.UnitGradesStudentID,
		CourseUnitID:  m.UnitGradesCourseUnitID,
		TaskScore:     m.UnitGradesTaskScore,
		ConductScore:  m.UnitGradesConductScore,
		ExamScore:     m.UnitGradesExamScore,
		AttendancePct: m.UnitGradesAttendancePct,
		ExamEligible:  m.UnitGradesExamEligible,
		UnitAverage:   m.UnitGradesUnitAverage,
		UpdatedAt:     m.UnitGradesUpdatedAt,
	}
}

// GroupGradeRow es un renglón de la vista de calificaciones del grupo.
type GroupGradeRow struct {
	StudentID     uuid.UUID `json:"student_id"`
	StudentName   string    `json:"student_name"`
	EnrollmentID  uuid.UUID `json:"enrollment_id"`
	AttendancePct float64   `json:"attendance_pct"`
	ExamEligible  bool      `json:"exam_eligible"`
	TaskScore     float64   `json:"task_score"`
	ConductScore  float64   `json:"conduct_score"`
	ExamScore     *float64  `json:"exam_score"`
	UnitAverage   *float64  `json:"unit_average"`
}

type BreakdownResponse struct {
	StudentID    uuid.UUID              `json:"student_id"`
	CourseLoadID uuid.UUID              `json:"course_load_id"`
	UnitIndex    int                    `json:"unit_index"`
	Category     string                 `json:"category"`
	Items        []service.ActivityItem `json:"items"`
	Score        float64                `json:"score"`
}
