// file: internals/features/school/academics/controller/academics_controller.go
package controller

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	model "controlescolar_backend/internals/features/school/academics/model"
	helper "controlescolar_backend/internals/helpers"
)

// AcademicsController agrupa el CRUD delgado de catálogo: periodos,
// carreras, grupos, materias, alumnos, cargas y unidades. Es tubería de
// captura; el motor de calificaciones vive en grading/.
type AcademicsController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAcademicsController(db *gorm.DB) *AcademicsController {
	return &AcademicsController{
		DB:        db,
		Validator: validator.New(),
	}
}

/* ========================================================
   Periodos
======================================================== */

type periodCreateRequest struct {
	Name     string     `json:"name" validate:"required,min=1,max=80"`
	StartsOn *time.Time `json:"starts_on"`
	EndsOn   *time.Time `json:"ends_on"`
}

func (ctl *AcademicsController) CreatePeriod(c *fiber.Ctx) error {
	var req periodCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Cuerpo de petición inválido")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	period := model.GradingPeriodModel{
		GradingPeriodsName:     req.Name,
		GradingPeriodsStartsOn: req.StartsOn,
		GradingPeriodsEndsOn:   req.EndsOn,
	}
	if err := ctl.DB.Create(&period).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Error creando el periodo")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Periodo creado", period)
}

func (ctl *AcademicsController) ListPeriods(c *fiber.Ctx) error {
	var periods []model.GradingPeriodModel
	if err := ctl.DB.Order("grading_periods_created_at DESC").Find(&periods).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Error consultando periodos")
	}
	return helper.Success(c, "Periodos", periods)
}

/* ========================================================
   Carreras / materias / alumnos
======================================================== */

type nameRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

func (ctl *AcademicsController) CreateCareer(c *fiber.Ctx) error {
	var req nameRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Cuerpo de petición inválido")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	career := model.CareerModel{CareersName: req.Name}
	if err := ctl.DB.Create(&career).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Error creando la carrera")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Carrera creada", career)
}

func (ctl *AcademicsController) CreateSubject(c *fiber.Ctx) error {
	var req nameRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Cuerpo de petición inválido")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	subject := model.SubjectModel{SubjectsName: req.Name}
	if err := ctl.DB.Create(&subject).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Error creando la materia")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Materia creada", subject)
}

type studentCreateRequest struct {
	FullName      string `json:"full_name" validate:"required,min=1,max=180"`
	ControlNumber string `json:"control_number" validate:"required,min=1,max=32"`
}

func (ctl *AcademicsController) CreateStudent(c *fiber.Ctx) error {
	var req studentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Cuerpo de petición inválido")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	student := model.StudentModel{
		StudentsFullName:      req.FullName,
		StudentsControlNumber: req.ControlNumber,
	}
	if err := ctl.DB.Create(&student).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Error creando el alumno")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Alumno creado", student)
}

/* ========================================================
   Grupos
======================================================== */

type groupCreateRequest struct {
	CareerID   uuid.UUID `json:"career_id" validate:"required"`
	PeriodID   uuid.UUID `json:"period_id" validate:"required"`
	GradeLevel int       `json:"grade_level" validate:"min=1"`
	Letter     string    `json:"letter" validate:"required,min=1,max=4"`
}

func (ctl *AcademicsController) CreateGroup(c *fiber.Ctx) error {
	var req groupCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Cuerpo de petición inválido")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	group := model.GroupModel{
		GroupsCareerID:   req.CareerID,
		GroupsPeriodID:   req.PeriodID,
		GroupsGradeLevel: req.GradeLevel,
		GroupsLetter:     strings.ToUpper(req.Letter),
	}
	if err := ctl.DB.Create(&group).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Error creando el grupo")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Grupo creado", group)
}

/* ========================================================
   Cargas académicas y unidades
======================================================== */

type courseLoadCreateRequest struct {
	GroupID   uuid.UUID `json:"group_id" validate:"required"`
	SubjectID uuid.UUID `json:"subject_id" validate:"required"`
	PeriodID  uuid.UUID `json:"period_id" validate:"required"`
}

func (ctl *AcademicsController) CreateCourseLoad(c *fiber.Ctx) error {
	var req courseLoadCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Cuerpo de petición inválido")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	load := model.CourseLoadModel{
		CourseLoadsGroupID:   req.GroupID,
		CourseLoadsSubjectID: req.SubjectID,
		CourseLoadsPeriodID:  req.PeriodID,
	}
	if err := ctl.DB.Create(&load).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Error creando la carga académica")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Carga académica creada", load)
}

type courseUnitCreateRequest struct {
	CourseLoadID  uuid.UUID `json:"course_load_id" validate:"required"`
	Label         string    `json:"label" validate:"required,min=1,max=80"`
	OrderIndex    int       `json:"order_index" validate:"min=1"`
	WeightPercent int       `json:"weight_percent" validate:"min=0,max=100"`
}

// Los pesos de las unidades deberían sumar 100 por carga; a propósito
// no se valida aquí (el agregador normaliza con lo calculado).
func (ctl *AcademicsController) CreateCourseUnit(c *fiber.Ctx) error {
	var req courseUnitCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Cuerpo de petición inválido")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	unit := model.CourseUnitModel{
		CourseUnitsCourseLoadID:  req.CourseLoadID,
		CourseUnitsLabel:         req.Label,
		CourseUnitsOrderIndex:    req.OrderIndex,
		CourseUnitsWeightPercent: req.WeightPercent,
	}
	if err := ctl.DB.Create(&unit).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Error creando la unidad")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Unidad creada", unit)
}

func (ctl *AcademicsController) ListCourseUnits(c *fiber.Ctx) error {
	courseLoadID, err := uuid.Parse(strings.TrimSpace(c.Query("course_load_id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "course_load_id inválido")
	}
	var units []model.CourseUnitModel
	if err := ctl.DB.
		Where("course_units_course_load_id = ?", courseLoadID).
		Order("course_units_order_index ASC").
		Find(&units).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Error consultando unidades")
	}
	return helper.Success(c, "Unidades", units)
}
