// file: internals/features/school/grading/service/final_average_service.go
package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	academicsModel "controlescolar_backend/internals/features/school/academics/model"
	model "controlescolar_backend/internals/features/school/grading/model"
	helper "controlescolar_backend/internals/helpers"
)

// FinalAverageService combina los promedios de unidad (cada uno con su
// peso) en el promedio final de la carga académica.
type FinalAverageService struct{}

func NewFinalAverageService() *FinalAverageService {
	return &FinalAverageService{}
}

// Recompute calcula y persiste el promedio final de la inscripción.
// Sólo las unidades con promedio calculado aportan al denominador: una
// carga con unidades en curso no se arrastra artificialmente a cero.
// Sin ninguna unidad calculada el promedio es 0.
func (s *FinalAverageService) Recompute(tx *gorm.DB, enrollment *model.EnrollmentModel) (float64, error) {
	if enrollment.EnrollmentsCourseLoadID == nil {
		return 0, nil
	}

	var units []academicsModel.CourseUnitModel
	if err := tx.
		Where("course_units_course_load_id = ?", *enrollment.EnrollmentsCourseLoadID).
		Order("course_units_order_index ASC").
		Find(&units).Error; err != nil {
		return 0, err
	}

	unitIDs := make([]uuid.UUID, 0, len(units))
	weightByUnit := make(map[uuid.UUID]float64, len(units))
	for _, u := range units {
		unitIDs = append(unitIDs, u.CourseUnitsID)
		weightByUnit[u.CourseUnitsID] = float64(u.CourseUnitsWeightPercent)
	}

	var final float64
	if len(unitIDs) > 0 {
		var grades []model.UnitGradeModel
		if err := tx.
			Where("unit_grades_student_id = ? AND unit_grades_course_unit_id IN ?",
				enrollment.EnrollmentsStudentID, unitIDs).
			Find(&grades).Error; err != nil {
			return 0, err
		}

		var sum, den float64
		for _, g := range grades {
			if g.UnitGradesUnitAverage == nil {
				continue
			}
			w := weightByUnit[g.UnitGradesCourseUnitID]
			if w <= 0 {
				continue
			}
			// El promedio de unidad vive en escala 0-10; el peso opera
			// sobre la escala 0-100.
			sum += (*g.UnitGradesUnitAverage * 10) * w
			den += w
		}
		if den > 0 {
			final = helper.Round(sum/den/10, 2)
		}
	}

	enrollment.EnrollmentsFinalAverage = &final
	if err := tx.Model(&model.EnrollmentModel{}).
		Where("enrollments_id = ?", enrollment.EnrollmentsID).
		Update("enrollments_final_average", final).Error; err != nil {
		return 0, err
	}
	return final, nil
}
