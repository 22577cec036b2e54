// file: internals/features/school/attendance/controller/attendance_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	attendanceModel "controlescolar_backend/internals/features/school/attendance/model"
	attendanceService "controlescolar_backend/internals/features/school/attendance/service"
	helper "controlescolar_backend/internals/helpers"
)

type AttendanceController struct {
	DB          *gorm.DB
	Validator   *validator.Validate
	Eligibility *attendanceService.EligibilityService
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{
		DB:          db,
		Validator:   validator.New(),
		Eligibility: attendanceService.NewEligibilityService(),
	}
}

type sessionCreateRequest struct {
	CareerID    uuid.UUID `json:"career_id" validate:"required"`
	GroupID     uuid.UUID `json:"group_id" validate:"required"`
	PeriodID    uuid.UUID `json:"period_id" validate:"required"`
	SubjectName string    `json:"subject_name" validate:"required,min=1,max=120"`
	Date        time.Time `json:"date" validate:"required"`
	Topic       *string   `json:"topic" validate:"omitempty,max=180"`
}

type recordUpsertRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	SessionID uuid.UUID `json:"session_id" validate:"required"`
	Date      time.Time `json:"date" validate:"required"`
	Status    string    `json:"status" validate:"required,oneof=presente ausente retardo justificado"`
}

// POST /attendance/sessions
func (ctl *AttendanceController) CreateSession(c *fiber.Ctx) error {
	var req sessionCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Cuerpo de petición inválido")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	session := attendanceModel.ClassSessionModel{
		ClassSessionsCareerID:    req.CareerID,
		ClassSessionsGroupID:     req.GroupID,
		ClassSessionsPeriodID:    req.PeriodID,
		ClassSessionsSubjectName: req.SubjectName,
		ClassSessionsDate:        req.Date,
		ClassSessionsTopic:       req.Topic,
	}
	if err := ctl.DB.Create(&session).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Error creando la sesión")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Sesión creada", session)
}

// PUT /attendance/records — upsert por (alumno, sesión, fecha)
func (ctl *AttendanceController) UpsertRecord(c *fiber.Ctx) error {
	var req recordUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Cuerpo de petición inválido")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var record attendanceModel.AttendanceRecordModel
	err := ctl.DB.First(&record,
		"attendance_records_student_id = ? AND attendance_records_session_id = ? AND attendance_records_date = ?",
		req.StudentID, req.SessionID, req.Date).Error
	switch {
	case err == nil:
		record.AttendanceRecordsStatus = req.Status
		if err := ctl.DB.Save(&record).Error; err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Error guardando la asistencia")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		record = attendanceModel.AttendanceRecordModel{
			AttendanceRecordsStudentID: req.StudentID,
			AttendanceRecordsSessionID: req.SessionID,
			AttendanceRecordsDate:      req.Date,
			AttendanceRecordsStatus:    req.Status,
		}
		if err := ctl.DB.Create(&record).Error; err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Error guardando la asistencia")
		}
	default:
		return helper.Error(c, fiber.StatusInternalServerError, "Error consultando la asistencia")
	}

	return helper.Success(c, "Asistencia guardada", record)
}

// GET /attendance/eligibility?student_id=&course_load_id=
// Siempre se calcula al momento; nunca se sirve un valor cacheado.
func (ctl *AttendanceController) GetEligibility(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(strings.TrimSpace(c.Query("student_id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "student_id inválido")
	}
	courseLoadID, err := uuid.Parse(strings.TrimSpace(c.Query("course_load_id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "course_load_id inválido")
	}

	elig, err := ctl.Eligibility.Compute(ctl.DB, studentID, courseLoadID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Elegibilidad de examen", elig)
}
